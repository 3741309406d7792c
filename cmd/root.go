package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/fractiz/internal/config"
	"github.com/abhisek/fractiz/internal/logger"
	"github.com/abhisek/fractiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "fractiz",
	Short: "Fraction trainer for the terminal",
	Long: "fractiz: practise adding, subtracting, reducing and converting fractions " +
		"with feedback on every step and worked solutions.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FRACTIZ_DB)")
	rootCmd.PersistentFlags().String("config", "", "Path to the profile file (overrides FRACTIZ_CONFIG)")
	rootCmd.PersistentFlags().String("profile", "", "Difficulty profile from the config file")
	rootCmd.PersistentFlags().String("log-file", "", "Log file (overrides FRACTIZ_LOG_FILE)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides FRACTIZ_LOG_LEVEL)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then FRACTIZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// loadProfile reads the profile named by --profile from the --config file.
func loadProfile(cmd *cobra.Command) (*config.Profile, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	name, _ := cmd.Flags().GetString("profile")
	return config.Load(path, name)
}

func newLogger(cmd *cobra.Command) (*logger.Logger, error) {
	path, _ := cmd.Flags().GetString("log-file")
	level, _ := cmd.Flags().GetString("log-level")
	if level == "" {
		level = os.Getenv("FRACTIZ_LOG_LEVEL")
	}
	return logger.New(logger.Options{Path: path, Level: level})
}
