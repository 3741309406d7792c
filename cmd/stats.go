package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/fractiz/internal/taskgen"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-mode practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.EventRepo().ModeStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(stats) == 0 {
			fmt.Fprintln(out, "No practice recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "MODE\tTASKS\tSOLVED\tATTEMPTS\tHINTS\tSOLVE RATE")
		var tasks, solved int
		for _, s := range stats {
			rate := 0.0
			if s.Tasks > 0 {
				rate = 100 * float64(s.Solved) / float64(s.Tasks)
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%.0f%%\n",
				taskgen.Mode(s.Mode).Title(), s.Tasks, s.Solved, s.Attempts, s.Hints, rate)
			tasks += s.Tasks
			solved += s.Solved
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nTotal: %d solved of %d tasks\n", solved, tasks)
		return nil
	},
}
