package taskgen

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Config.Validate for impossible ranges.
var ErrInvalidConfig = errors.New("invalid task config")

// DenominatorPolicy constrains how the two denominators of a binary task
// relate to each other.
type DenominatorPolicy string

const (
	// DenominatorsDistinct requires d1 != d2.
	DenominatorsDistinct DenominatorPolicy = "distinct"

	// DenominatorsCoprime requires gcd(d1, d2) = 1.
	DenominatorsCoprime DenominatorPolicy = "coprime"
)

// Config is the difficulty of a mode. Zero bounds mean "unbounded" where
// noted.
type Config struct {
	// MinDenominator and MaxDenominator bound every drawn denominator
	// (for reduce mode, the denominator of the reduced answer).
	MinDenominator int `yaml:"min_denominator"`
	MaxDenominator int `yaml:"max_denominator"`

	// MaxCommonDenominator bounds lcm(d1, d2) of binary tasks. 0 = unbounded.
	MaxCommonDenominator int `yaml:"max_common_denominator"`

	Denominators DenominatorPolicy `yaml:"denominators"`

	// AllowWhole gives binary-task operands whole parts.
	AllowWhole bool `yaml:"allow_whole"`

	// MinWhole and MaxWhole bound the whole parts of both operands in
	// addition, the minuend's whole part in subtraction and the mixed
	// number in mixed_to_improper. The subtrahend's whole part is drawn
	// from [0, minuend whole].
	MinWhole int `yaml:"min_whole"`
	MaxWhole int `yaml:"max_whole"`

	// StrictlyPositive requires a subtraction result above zero.
	StrictlyPositive bool `yaml:"strictly_positive"`

	// MinMultiplier and MaxMultiplier bound k in reduce mode.
	MinMultiplier int `yaml:"min_multiplier"`
	MaxMultiplier int `yaml:"max_multiplier"`

	// MaxTaskDenominator bounds d*k in reduce mode. 0 = unbounded.
	MaxTaskDenominator int `yaml:"max_task_denominator"`

	// MaxImproperNumerator bounds the numerator in improper_to_mixed.
	MaxImproperNumerator int `yaml:"max_improper_numerator"`

	// MaxAttempts is the reject-and-retry budget per task.
	MaxAttempts int `yaml:"max_attempts"`
}

const defaultMaxAttempts = 1000

// DefaultConfig returns the standard difficulty for a mode.
func DefaultConfig(mode Mode) Config {
	switch mode {
	case ModeSubtract:
		return Config{
			MinDenominator:   3,
			MaxDenominator:   8,
			Denominators:     DenominatorsDistinct,
			AllowWhole:       true,
			MinWhole:         1,
			MaxWhole:         3,
			StrictlyPositive: true,
			MaxAttempts:      defaultMaxAttempts,
		}
	case ModeReduce:
		return Config{
			MinDenominator:     3,
			MaxDenominator:     12,
			MinMultiplier:      2,
			MaxMultiplier:      8,
			MaxTaskDenominator: 100,
			MaxAttempts:        defaultMaxAttempts,
		}
	case ModeMixedToImproper, ModeImproperToMixed, ModeConvert:
		return Config{
			MinDenominator:       2,
			MaxDenominator:       10,
			MinWhole:             1,
			MaxWhole:             5,
			MaxImproperNumerator: 5*10 + 10 - 1,
			MaxAttempts:          defaultMaxAttempts,
		}
	default:
		return Config{
			MinDenominator:       4,
			MaxDenominator:       15,
			MaxCommonDenominator: 100,
			Denominators:         DenominatorsDistinct,
			MaxAttempts:          defaultMaxAttempts,
		}
	}
}

// Validate rejects configurations no draw could ever satisfy.
func (c Config) Validate() error {
	switch {
	case c.MinDenominator < 2:
		return fmt.Errorf("%w: min_denominator %d must be at least 2", ErrInvalidConfig, c.MinDenominator)
	case c.MaxDenominator < c.MinDenominator:
		return fmt.Errorf("%w: max_denominator %d below min_denominator %d", ErrInvalidConfig, c.MaxDenominator, c.MinDenominator)
	case c.MaxCommonDenominator < 0:
		return fmt.Errorf("%w: max_common_denominator must not be negative", ErrInvalidConfig)
	case c.Denominators != "" && c.Denominators != DenominatorsDistinct && c.Denominators != DenominatorsCoprime:
		return fmt.Errorf("%w: unknown denominators policy %q", ErrInvalidConfig, c.Denominators)
	case c.MinWhole < 0:
		return fmt.Errorf("%w: min_whole must not be negative", ErrInvalidConfig)
	case c.MaxWhole < c.MinWhole:
		return fmt.Errorf("%w: max_whole %d below min_whole %d", ErrInvalidConfig, c.MaxWhole, c.MinWhole)
	case c.MaxMultiplier < c.MinMultiplier:
		return fmt.Errorf("%w: max_multiplier %d below min_multiplier %d", ErrInvalidConfig, c.MaxMultiplier, c.MinMultiplier)
	case c.MaxAttempts < 1:
		return fmt.Errorf("%w: max_attempts must be positive", ErrInvalidConfig)
	}
	return nil
}

// validateFor adds the checks that only make sense for one mode.
func (c Config) validateFor(mode Mode) error {
	if err := c.Validate(); err != nil {
		return err
	}
	switch mode {
	case ModeReduce:
		if c.MinMultiplier < 2 {
			return fmt.Errorf("%w: min_multiplier %d must be at least 2", ErrInvalidConfig, c.MinMultiplier)
		}
	case ModeMixedToImproper, ModeConvert:
		if c.MinWhole < 1 {
			return fmt.Errorf("%w: min_whole must be at least 1 for conversions", ErrInvalidConfig)
		}
	}
	if (mode == ModeImproperToMixed || mode == ModeConvert) && c.MaxImproperNumerator <= c.MinDenominator {
		return fmt.Errorf("%w: max_improper_numerator %d leaves no improper fraction", ErrInvalidConfig, c.MaxImproperNumerator)
	}
	return nil
}

// Preset is a named mode plus difficulty offered in the menu.
type Preset struct {
	Name   string
	Title  string
	Mode   Mode
	Config Config
}

// Presets returns the built-in practice variants in menu order.
func Presets() []Preset {
	coprime := DefaultConfig(ModeAdd)
	coprime.MaxDenominator = 12
	coprime.MaxCommonDenominator = 100
	coprime.Denominators = DenominatorsCoprime

	mixed := DefaultConfig(ModeAdd)
	mixed.MinDenominator = 3
	mixed.MaxDenominator = 8
	mixed.MaxCommonDenominator = 0
	mixed.AllowWhole = true
	mixed.MinWhole = 0
	mixed.MaxWhole = 2

	return []Preset{
		{Name: "add", Title: "Add fractions", Mode: ModeAdd, Config: DefaultConfig(ModeAdd)},
		{Name: "subtract", Title: "Subtract mixed numbers", Mode: ModeSubtract, Config: DefaultConfig(ModeSubtract)},
		{Name: "reduce", Title: "Reduce fractions", Mode: ModeReduce, Config: DefaultConfig(ModeReduce)},
		{Name: "convert", Title: "Mixed and improper", Mode: ModeConvert, Config: DefaultConfig(ModeConvert)},
		{Name: "mixed-add", Title: "Add mixed numbers", Mode: ModeAdd, Config: mixed},
		{Name: "coprime-add", Title: "Add with coprime denominators", Mode: ModeAdd, Config: coprime},
	}
}

// PresetByName looks up a built-in preset. Mode names resolve to the
// preset of the same name.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, true
		}
	}
	if m, err := ParseMode(name); err == nil {
		return Preset{Name: name, Title: m.Title(), Mode: m, Config: DefaultConfig(m)}, true
	}
	return Preset{}, false
}
