package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session",
	Long: "Start the trainer. With --mode the session starts right away; " +
		"otherwise the menu is shown.",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, _ := cmd.Flags().GetString("mode")
		return runApp(cmd, mode)
	},
}

func init() {
	playCmd.Flags().StringP("mode", "m", "", fmt.Sprintf("Preset or mode to practise (%s)", strings.Join(presetNames(), ", ")))
}
