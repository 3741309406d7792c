package taskgen

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/fractiz/internal/fraction"
)

// ErrUnsatisfiable is wrapped by GenerationError when every attempt was
// rejected.
var ErrUnsatisfiable = errors.New("no task satisfies the config")

// GenerationError reports an exhausted retry budget.
type GenerationError struct {
	Mode     Mode
	Attempts int
	Last     *ValidationError
}

func (e *GenerationError) Error() string {
	msg := fmt.Sprintf("generate %s task: %d attempts rejected", e.Mode, e.Attempts)
	if e.Last != nil {
		msg += ", last: " + e.Last.Error()
	}
	return msg + ": " + ErrUnsatisfiable.Error()
}

func (e *GenerationError) Unwrap() error { return ErrUnsatisfiable }

// Generator draws tasks from a random source. It is not safe for
// concurrent use; each practice session owns one.
type Generator struct {
	rng *rand.Rand
	now func() time.Time

	// attempts is the number of candidates the last Generate call drew.
	attempts int
}

// New creates a Generator. Pass a seeded source for reproducible tasks.
func New(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src), now: time.Now}
}

// NewSeeded creates a Generator over a PCG source with the given seed.
func NewSeeded(seed uint64) *Generator {
	return New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Attempts returns how many candidates the last Generate call drew.
func (g *Generator) Attempts() int {
	return g.attempts
}

// Generate draws candidates for mode until one passes the mode's
// validators or cfg.MaxAttempts is used up.
func (g *Generator) Generate(mode Mode, cfg Config) (*Task, error) {
	if mode == ModeConvert {
		mode = ModeMixedToImproper
		if g.rng.IntN(2) == 1 {
			mode = ModeImproperToMixed
		}
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	if err := cfg.validateFor(mode); err != nil {
		return nil, err
	}

	validators := Validators(mode)
	var last *ValidationError
	g.attempts = 0

attempts:
	for range cfg.MaxAttempts {
		g.attempts++
		t := g.draw(mode, cfg)
		for _, v := range validators {
			if verr := v.Validate(t, cfg); verr != nil {
				last = verr
				continue attempts
			}
		}
		t.ID = uuid.NewString()
		t.CreatedAt = g.now()
		return t, nil
	}

	return nil, &GenerationError{Mode: mode, Attempts: g.attempts, Last: last}
}

func (g *Generator) draw(mode Mode, cfg Config) *Task {
	switch mode {
	case ModeAdd, ModeSubtract:
		return g.drawBinary(mode, cfg)
	case ModeReduce:
		return g.drawReduce(cfg)
	case ModeMixedToImproper:
		d := g.between(cfg.MinDenominator, cfg.MaxDenominator)
		n := g.between(1, d-1)
		w := g.between(cfg.MinWhole, cfg.MaxWhole)
		a := fraction.New(fraction.FromMixed(w, n, d), d)
		return &Task{Mode: mode, A: a, Result: a.Reduced()}
	default:
		d := g.between(cfg.MinDenominator, cfg.MaxDenominator)
		n := g.between(d+1, max(d+1, cfg.MaxImproperNumerator))
		a := fraction.New(n, d)
		return &Task{Mode: ModeImproperToMixed, A: a, Result: a.Reduced()}
	}
}

func (g *Generator) drawBinary(mode Mode, cfg Config) *Task {
	d1 := g.between(cfg.MinDenominator, cfg.MaxDenominator)
	d2 := g.between(cfg.MinDenominator, cfg.MaxDenominator)
	n1 := g.between(1, d1-1)
	n2 := g.between(1, d2-1)

	var w1, w2 int
	if cfg.AllowWhole {
		w1 = g.between(cfg.MinWhole, cfg.MaxWhole)
		if mode == ModeSubtract {
			w2 = g.between(0, w1)
		} else {
			w2 = g.between(cfg.MinWhole, cfg.MaxWhole)
		}
	}

	a := fraction.New(fraction.FromMixed(w1, n1, d1), d1)
	b := fraction.New(fraction.FromMixed(w2, n2, d2), d2)

	var result fraction.Rational
	if mode == ModeSubtract {
		result = a.Sub(b).Reduced()
	} else {
		result = a.Add(b).Reduced()
	}
	return &Task{Mode: mode, A: a, B: b, Result: result}
}

func (g *Generator) drawReduce(cfg Config) *Task {
	d := g.between(cfg.MinDenominator, cfg.MaxDenominator)
	n := g.between(1, d-1)
	k := g.between(cfg.MinMultiplier, cfg.MaxMultiplier)
	return &Task{
		Mode:       ModeReduce,
		A:          fraction.New(n*k, d*k),
		Result:     fraction.New(n, d),
		Multiplier: k,
	}
}

// between returns a uniform integer in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.IntN(hi-lo+1)
}
