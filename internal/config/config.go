// Package config loads difficulty profiles from a YAML file. A profile
// overrides the built-in task configs and checker policies per preset.
//
// Example file:
//
//	profile: strict
//	profiles:
//	  strict:
//	    history_size: 50
//	    pre_reduce: true
//	    presets:
//	      add:
//	        task:
//	          max_denominator: 12
//	        policy:
//	          require_lcm: true
//	          accept_reducible: false
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/fractiz/internal/checker"
	"github.com/abhisek/fractiz/internal/session"
	"github.com/abhisek/fractiz/internal/solution"
	"github.com/abhisek/fractiz/internal/taskgen"
)

// DefaultProfile is the name of the built-in profile.
const DefaultProfile = "default"

// ErrUnknownProfile is returned when the requested profile is not defined.
var ErrUnknownProfile = errors.New("unknown profile")

// file is the on-disk layout.
type file struct {
	Profile  string                 `yaml:"profile"`
	Profiles map[string]profileSpec `yaml:"profiles"`
}

type profileSpec struct {
	HistorySize int                   `yaml:"history_size"`
	PreReduce   bool                  `yaml:"pre_reduce"`
	LLMHints    bool                  `yaml:"llm_hints"`
	Presets     map[string]presetSpec `yaml:"presets"`
}

// presetSpec keeps the raw nodes so they can be decoded on top of the
// built-in defaults; absent keys keep their default values.
type presetSpec struct {
	Task   yaml.Node `yaml:"task"`
	Policy yaml.Node `yaml:"policy"`
}

// Profile is a resolved difficulty profile.
type Profile struct {
	Name        string
	HistorySize int
	Solution    solution.Options

	// LLMHints enables LLM rephrasing of hints when a provider is
	// configured.
	LLMHints bool

	tasks    map[string]taskgen.Config
	policies map[string]checker.Policy
}

// Builtin returns the default profile.
func Builtin() *Profile {
	return &Profile{
		Name:        DefaultProfile,
		HistorySize: session.DefaultHistorySize,
		tasks:       map[string]taskgen.Config{},
		policies:    map[string]checker.Policy{},
	}
}

// Preset returns the named preset with the profile's task config applied.
func (p *Profile) Preset(name string) (taskgen.Preset, error) {
	preset, ok := taskgen.PresetByName(name)
	if !ok {
		return taskgen.Preset{}, fmt.Errorf("unknown preset %q", name)
	}
	if cfg, ok := p.tasks[name]; ok {
		preset.Config = cfg
	}
	return preset, nil
}

// Policy returns the checker policy for a preset.
func (p *Profile) Policy(preset taskgen.Preset) checker.Policy {
	if pol, ok := p.policies[preset.Name]; ok {
		return pol
	}
	return checker.DefaultPolicy(preset.Mode)
}

// Load reads the profile called name from the YAML file at path. An empty
// name selects the file's "profile" key, then DefaultProfile. A missing
// file yields the built-in profile.
func Load(path, name string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if name == "" || name == DefaultProfile {
			return Builtin(), nil
		}
		return nil, fmt.Errorf("%w %q: config file %s does not exist", ErrUnknownProfile, name, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, name)
}

// Parse resolves a profile from YAML content.
func Parse(data []byte, name string) (*Profile, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if name == "" {
		name = f.Profile
	}
	if name == "" {
		name = DefaultProfile
	}

	prof, ok := f.Profiles[name]
	if !ok {
		if name == DefaultProfile {
			return Builtin(), nil
		}
		return nil, fmt.Errorf("%w %q (defined: %v)", ErrUnknownProfile, name, profileNames(f))
	}

	p := Builtin()
	p.Name = name
	if prof.HistorySize > 0 {
		p.HistorySize = prof.HistorySize
	}
	p.Solution.PreReduce = prof.PreReduce
	p.LLMHints = prof.LLMHints

	for presetName, ps := range prof.Presets {
		preset, ok := taskgen.PresetByName(presetName)
		if !ok {
			return nil, fmt.Errorf("profile %q: unknown preset %q", name, presetName)
		}

		cfg := preset.Config
		if !ps.Task.IsZero() {
			if err := ps.Task.Decode(&cfg); err != nil {
				return nil, fmt.Errorf("profile %q preset %q task: %w", name, presetName, err)
			}
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("profile %q preset %q: %w", name, presetName, err)
			}
			p.tasks[presetName] = cfg
		}

		if !ps.Policy.IsZero() {
			pol := checker.DefaultPolicy(preset.Mode)
			if err := ps.Policy.Decode(&pol); err != nil {
				return nil, fmt.Errorf("profile %q preset %q policy: %w", name, presetName, err)
			}
			switch pol.Strategy {
			case checker.StrategyFinalValue, checker.StrategyPerOperand:
			default:
				return nil, fmt.Errorf("profile %q preset %q: unknown strategy %q", name, presetName, pol.Strategy)
			}
			p.policies[presetName] = pol
		}
	}
	return p, nil
}

func profileNames(f file) []string {
	names := make([]string, 0, len(f.Profiles))
	for n := range f.Profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DefaultPath resolves the config file path in priority order:
// 1. FRACTIZ_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/fractiz/config.yaml
// 3. ~/.config/fractiz/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv("FRACTIZ_CONFIG"); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "fractiz", "config.yaml"), nil
}
