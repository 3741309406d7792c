package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/fractiz/internal/taskgen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print randomly generated tasks",
	Example: `  fractiz generate --mode subtract --count 5
  fractiz generate --mode coprime-add --seed 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("mode")
		count, _ := cmd.Flags().GetInt("count")
		seed, _ := cmd.Flags().GetUint64("seed")
		withAnswers, _ := cmd.Flags().GetBool("answers")
		if count < 1 {
			return fmt.Errorf("--count must be at least 1")
		}
		if !cmd.Flags().Changed("seed") {
			seed = uint64(time.Now().UnixNano())
		}

		profile, err := loadProfile(cmd)
		if err != nil {
			return err
		}
		preset, err := profile.Preset(name)
		if err != nil {
			return err
		}

		gen := taskgen.NewSeeded(seed)
		out := cmd.OutOrStdout()
		for i := range count {
			task, err := gen.Generate(preset.Mode, preset.Config)
			if err != nil {
				return fmt.Errorf("task %d: %w", i+1, err)
			}
			if withAnswers {
				fmt.Fprintf(out, "%-28s %s\n", task, task.Result.Mixed())
			} else {
				fmt.Fprintln(out, task)
			}
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringP("mode", "m", "add", "Preset or mode to generate")
	generateCmd.Flags().IntP("count", "n", 10, "Number of tasks")
	generateCmd.Flags().Uint64("seed", 0, "Seed for reproducible output")
	generateCmd.Flags().Bool("answers", false, "Print the expected result next to each task")
}
