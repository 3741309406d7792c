package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/fractiz/internal/checker"
	"github.com/abhisek/fractiz/internal/taskgen"
)

var checkCmd = &cobra.Command{
	Use:   "check <mode> <operand> [operand] --answer <answer>",
	Short: "Classify an answer to a task",
	Long: "Check an answer the way the trainer does. Binary modes take the two\n" +
		"rewritten operands joined by the task operator; other modes take one\n" +
		"mixed number or fraction.",
	Example: `  fractiz check add 2/3 3/4 --answer "8/12 + 9/12"
  fractiz check add 2/3 3/4 --answer "8/12 + 9/12" --require-carry
  fractiz check reduce 6/15 --answer 2/5`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := taskFromArgs(args)
		if err != nil {
			return err
		}
		raw, _ := cmd.Flags().GetString("answer")
		answer, err := checker.ParseAnswer(task.Mode, raw)
		if err != nil {
			return err
		}

		profile, err := loadProfile(cmd)
		if err != nil {
			return err
		}
		presetName := string(task.Mode)
		if !task.Binary() && task.Mode != taskgen.ModeReduce {
			presetName = "convert"
		}
		preset, err := profile.Preset(presetName)
		if err != nil {
			return err
		}
		policy := profile.Policy(preset)
		flags := cmd.Flags()
		if flags.Changed("require-lcm") {
			policy.RequireLCM, _ = flags.GetBool("require-lcm")
		}
		if flags.Changed("require-carry") {
			policy.RequireCarry, _ = flags.GetBool("require-carry")
		}
		if flags.Changed("per-operand") {
			if on, _ := flags.GetBool("per-operand"); on {
				policy.Strategy = checker.StrategyPerOperand
			} else {
				policy.Strategy = checker.StrategyFinalValue
			}
		}

		fb := checker.Check(task, answer, policy)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "task:     %s\n", task)
		fmt.Fprintf(out, "state:    %s\n", fb.State)
		fmt.Fprintf(out, "accepted: %t\n", fb.Accepted)
		if fb.Value.Den > 0 {
			fmt.Fprintf(out, "value:    %s\n", fb.Value)
		}
		fmt.Fprintf(out, "message:  %s\n", fb.Message)
		return nil
	},
}

func init() {
	checkCmd.Flags().StringP("answer", "a", "", "Answer to classify")
	checkCmd.Flags().Bool("require-lcm", false, "Demand the least common denominator")
	checkCmd.Flags().Bool("require-carry", false, "Demand a proper fractional part")
	checkCmd.Flags().Bool("per-operand", false, "Judge each rewritten operand separately")
	_ = checkCmd.MarkFlagRequired("answer")
}
