package cli

import (
	"github.com/spf13/cobra"
)

var version = "0.3.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "liftlog",
	Short: "A terminal strength-training log",
	Long: `liftlog walks you through the A/B/C full-body rotation set by set,
times your rest, keeps your history and personal records, and pays out
stars you can spend in the reward shop.

Run without arguments to open the tracker.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate("liftlog version {{.Version}}\n")

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/liftlog/config.yaml)")
}
