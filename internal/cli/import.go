package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sadopc/liftlog/internal/export"
)

var errImportDeclined = errors.New("import cancelled")

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace history with an export file",
	Long: `Import a .json or .json.gz export. This replaces your whole history
and star ledger. The file is validated first; nothing changes if any part
of it is invalid.

Examples:
  liftlog import backup.json
  liftlog import backup.json.gz --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var importYes bool

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runImport(cmd *cobra.Command, args []string) error {
	p, err := export.FromFile(args[0])
	if err != nil {
		return err
	}

	e, err := openEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	current := e.tracker.History().Len()
	fmt.Fprintf(out, "File has %d days and %s.\n", len(p.History), p.StarsOrRecompute())

	if !importYes && current > 0 {
		ok, err := confirm(fmt.Sprintf("Replace your %d logged days?", current))
		if err != nil {
			return err
		}
		if !ok {
			return errImportDeclined
		}
	}

	if err := e.tracker.ImportPayload(p); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Imported %d days\n", len(p.History))
	return nil
}

// confirm asks on a terminal; without one it refuses so scripts must pass --yes.
func confirm(msg string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, fmt.Errorf("%s: stdin is not a terminal, pass --yes", msg)
	}
	ok := false
	prompt := &survey.Confirm{Message: msg, Default: false}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, err
	}
	return ok, nil
}
