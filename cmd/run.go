package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/fractiz/internal/app"
	"github.com/abhisek/fractiz/internal/config"
	"github.com/abhisek/fractiz/internal/llm"
	"github.com/abhisek/fractiz/internal/logger"
	"github.com/abhisek/fractiz/internal/screens/practice"
	"github.com/abhisek/fractiz/internal/store"
	"github.com/abhisek/fractiz/internal/taskgen"
	"github.com/abhisek/fractiz/internal/tutor"
)

// runApp opens the store, builds dependencies, and launches the TUI. A
// non-empty preset skips the menu.
func runApp(cmd *cobra.Command, presetName string) error {
	log, err := newLogger(cmd)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer log.Sync()

	profile, err := loadProfile(cmd)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()
	eventRepo := st.EventRepo()

	opts := app.Options{
		Deps: practice.Deps{
			Profile: profile,
			Repo:    eventRepo,
			Tutor:   newTutor(cmd, profile, eventRepo, log),
			Log:     log,
		},
	}
	if presetName != "" {
		preset, err := profile.Preset(presetName)
		if err != nil {
			return err
		}
		opts.Preset = &preset
	}

	log.Info("starting", "profile", profile.Name, "preset", presetName, "llm", opts.Deps.Tutor.LLMEnabled())
	return app.Run(opts)
}

// newTutor wires an LLM into the hint service when FRACTIZ_LLM_PROVIDER is
// set, or when the profile asks for LLM hints and a vendor key is found.
// Without one the tutor serves builtin hints.
func newTutor(cmd *cobra.Command, profile *config.Profile, repo store.EventRepo, log *logger.Logger) *tutor.Service {
	var cfg llm.Config
	switch {
	case llm.Configured():
		cfg = llm.ConfigFromEnv()
	case profile.LLMHints:
		var ok bool
		if cfg, ok = llm.DiscoverConfig(); !ok {
			fmt.Fprintln(os.Stderr, "Profile asks for LLM hints but no API key was found; using builtin hints.")
			return tutor.NewService(nil, tutor.DefaultConfig(), log)
		}
	default:
		return tutor.NewService(nil, tutor.DefaultConfig(), log)
	}

	provider, err := llm.NewProvider(cmd.Context(), cfg, repo, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Hints will come from the builtin tutor.")
		log.Warn("llm provider unavailable", "provider", cfg.Provider, "error", err)
		return tutor.NewService(nil, tutor.DefaultConfig(), log)
	}
	log.Info("llm provider selected", "provider", cfg.Provider, "model", provider.ModelID())
	return tutor.NewService(provider, tutor.DefaultConfig(), log)
}

// presetNames lists the menu presets for flag help.
func presetNames() []string {
	var names []string
	for _, p := range taskgen.Presets() {
		names = append(names, p.Name)
	}
	return names
}
