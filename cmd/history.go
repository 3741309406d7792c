package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/fractiz/internal/store"
	"github.com/abhisek/fractiz/internal/taskgen"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		mode, _ := cmd.Flags().GetString("mode")
		if mode != "" {
			if _, err := taskgen.ParseMode(mode); err != nil {
				return err
			}
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		records, err := st.EventRepo().RecentTasks(cmd.Context(), store.QueryOpts{Limit: limit, Mode: mode})
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No tasks recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tMODE\tTASK\tANSWER\tSTATUS\tATTEMPTS\tHINTS")
		for _, r := range records {
			status := "open"
			if r.Solved {
				status = "solved"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\n",
				r.Timestamp.Local().Format("2006-01-02 15:04"),
				r.Mode, r.TaskText, r.Result, status, r.Attempts, r.Hints)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of tasks to show")
	historyCmd.Flags().StringP("mode", "m", "", "Only show this mode")
}
