package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/fractiz/internal/fraction"
	"github.com/abhisek/fractiz/internal/solution"
	"github.com/abhisek/fractiz/internal/taskgen"
)

var solveCmd = &cobra.Command{
	Use:   "solve <mode> <operand> [operand]",
	Short: "Print the worked solution of a task",
	Example: `  fractiz solve add 2/3 3/4
  fractiz solve subtract "2 1/4" "1 3/4"
  fractiz solve reduce 6/15
  fractiz solve improper_to_mixed 11/4`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := taskFromArgs(args)
		if err != nil {
			return err
		}
		profile, err := loadProfile(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %s\n\n", task.Prompt(), task)
		fmt.Fprintln(out, solution.Render(solution.Build(task, profile.Solution)))
		return nil
	},
}

// taskFromArgs builds a task from "<mode> <operand>...".
func taskFromArgs(args []string) (*taskgen.Task, error) {
	mode, err := taskgen.ParseMode(args[0])
	if err != nil {
		return nil, err
	}
	ops := make([]fraction.Rational, 0, len(args)-1)
	for _, a := range args[1:] {
		r, err := fraction.Parse(a)
		if err != nil {
			return nil, err
		}
		ops = append(ops, r)
	}
	return taskgen.NewTask(mode, ops...)
}
