package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sadopc/liftlog/internal/records"
	"github.com/sadopc/liftlog/internal/rewards"
	"github.com/sadopc/liftlog/internal/workout"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Show personal records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(false)
		if err != nil {
			return err
		}
		defer e.Close()

		recs := e.tracker.Records()
		if len(recs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No records yet. Finish a workout first.")
			return nil
		}
		printRecords(cmd.OutOrStdout(), recs, e.store.WeightUnit())
		return nil
	},
}

var starsCmd = &cobra.Command{
	Use:   "stars",
	Short: "Show the star ledger and what it can buy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(false)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		st := e.tracker.History().Stars()
		fmt.Fprintf(out, "★ %s = %d points\n\n", st, rewards.Points(st))

		w := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
		for _, r := range rewards.Catalog {
			mark := " "
			if rewards.Affordable(st, r) {
				mark = "✓"
			}
			fmt.Fprintf(w, "%s\t%s\t%d pts\t%s\n", mark, r.Name, r.Cost, r.Description)
		}
		return w.Flush()
	},
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the next workout in the rotation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(false)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		wk := e.tracker.NextWorkout()
		fmt.Fprintf(out, "Next: %s (%s)\n", wk.Name, wk.Focus)
		for i, tmpl := range wk.Exercises {
			ex := workout.Resolve(tmpl, "")
			pair := ""
			if tmpl.IsSuperset {
				pair = "  ↳ superset"
			}
			fmt.Fprintf(out, "  %d. %s  %d×%s%s\n", i+1, ex.Name, ex.Sets, ex.RepRange, pair)
		}
		if e.tracker.HasSaved() {
			fmt.Fprintln(out, "\nA workout is in progress; open liftlog to resume it.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(starsCmd)
	rootCmd.AddCommand(nextCmd)
}

func printRecords(out io.Writer, recs []records.Record, unit string) {
	w := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "EXERCISE\tBEST\tDATE")
	for _, r := range recs {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Exercise, r.Format(unit), r.Date.Local().Format("Jan 2, 2006"))
	}
	w.Flush()
}
