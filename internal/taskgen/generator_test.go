package taskgen

import (
	"errors"
	"testing"

	"github.com/abhisek/fractiz/internal/fraction"
)

const samples = 300

func TestGenerate_Add(t *testing.T) {
	g := NewSeeded(1)
	cfg := DefaultConfig(ModeAdd)
	for range samples {
		task, err := g.Generate(ModeAdd, cfg)
		if err != nil {
			t.Fatalf("Generate(add) error: %v", err)
		}
		d1, d2 := task.A.Den, task.B.Den
		if d1 == d2 {
			t.Errorf("%s: equal denominators", task)
		}
		if d1 < 4 || d1 > 15 || d2 < 4 || d2 > 15 {
			t.Errorf("%s: denominator out of [4, 15]", task)
		}
		if task.LCM() > 100 {
			t.Errorf("%s: lcm %d exceeds 100", task, task.LCM())
		}
		if task.A.Num < 1 || task.A.Num >= d1 || task.B.Num < 1 || task.B.Num >= d2 {
			t.Errorf("%s: numerator out of range", task)
		}
		if !task.Result.IsReduced() || !task.Result.Equivalent(task.A.Add(task.B)) {
			t.Errorf("%s: wrong result %s", task, task.Result)
		}
		if task.ID == "" || task.CreatedAt.IsZero() {
			t.Errorf("%s: missing id or timestamp", task)
		}
	}
}

func TestGenerate_Subtract(t *testing.T) {
	g := NewSeeded(2)
	cfg := DefaultConfig(ModeSubtract)
	for range samples {
		task, err := g.Generate(ModeSubtract, cfg)
		if err != nil {
			t.Fatalf("Generate(subtract) error: %v", err)
		}
		if task.Result.Num <= 0 {
			t.Errorf("%s: result %s not positive", task, task.Result)
		}
		a, b := task.A.Mixed(), task.B.Mixed()
		if a.Whole < 1 || a.Whole > 3 {
			t.Errorf("%s: minuend whole %d out of [1, 3]", task, a.Whole)
		}
		if b.Whole > a.Whole {
			t.Errorf("%s: subtrahend whole exceeds minuend whole", task)
		}
		if task.A.Den == task.B.Den {
			t.Errorf("%s: equal denominators", task)
		}
	}
}

func TestGenerate_AddWholeParts(t *testing.T) {
	g := NewSeeded(7)
	cfg := DefaultConfig(ModeAdd)
	cfg.AllowWhole = true
	cfg.MinWhole = 1
	cfg.MaxWhole = 2
	for range samples {
		task, err := g.Generate(ModeAdd, cfg)
		if err != nil {
			t.Fatalf("Generate error: %v", err)
		}
		for _, m := range []fraction.Mixed{task.A.Mixed(), task.B.Mixed()} {
			if m.Whole < 1 || m.Whole > 2 {
				t.Errorf("%s: whole part %d out of [1, 2]", task, m.Whole)
			}
		}
	}
}

func TestGenerate_SubtractNonNegative(t *testing.T) {
	g := NewSeeded(3)
	cfg := DefaultConfig(ModeSubtract)
	cfg.AllowWhole = false
	cfg.StrictlyPositive = false
	for range samples {
		task, err := g.Generate(ModeSubtract, cfg)
		if err != nil {
			t.Fatalf("Generate error: %v", err)
		}
		if task.Result.Num < 0 {
			t.Errorf("%s: negative result %s", task, task.Result)
		}
	}
}

func TestGenerate_Reduce(t *testing.T) {
	g := NewSeeded(4)
	cfg := DefaultConfig(ModeReduce)
	for range samples {
		task, err := g.Generate(ModeReduce, cfg)
		if err != nil {
			t.Fatalf("Generate(reduce) error: %v", err)
		}
		if got := fraction.GCD(task.A.Num, task.A.Den); got != task.Multiplier {
			t.Errorf("%s: gcd %d, multiplier %d", task, got, task.Multiplier)
		}
		if task.A.Reduced() != task.Result {
			t.Errorf("%s: reduces to %s, result %s", task, task.A.Reduced(), task.Result)
		}
		if task.A.Den > 100 {
			t.Errorf("%s: task denominator above 100", task)
		}
		if task.Multiplier < 2 || task.Multiplier > 8 {
			t.Errorf("%s: multiplier %d out of [2, 8]", task, task.Multiplier)
		}
	}
}

func TestGenerate_Conversions(t *testing.T) {
	g := NewSeeded(5)
	cfg := DefaultConfig(ModeConvert)
	seen := map[Mode]bool{}
	for range samples {
		task, err := g.Generate(ModeConvert, cfg)
		if err != nil {
			t.Fatalf("Generate(convert) error: %v", err)
		}
		seen[task.Mode] = true
		switch task.Mode {
		case ModeMixedToImproper:
			m := task.A.Mixed()
			if m.Whole < 1 || m.Whole > 5 || m.Num == 0 {
				t.Errorf("%s: bad mixed operand", task)
			}
		case ModeImproperToMixed:
			if task.A.Num <= task.A.Den || task.A.Num%task.A.Den == 0 || task.A.Num > 59 {
				t.Errorf("%s: bad improper operand", task)
			}
		default:
			t.Errorf("convert produced mode %q", task.Mode)
		}
	}
	if !seen[ModeMixedToImproper] || !seen[ModeImproperToMixed] {
		t.Errorf("convert did not produce both directions: %v", seen)
	}
}

func TestGenerate_CoprimePreset(t *testing.T) {
	p, ok := PresetByName("coprime-add")
	if !ok {
		t.Fatal("coprime-add preset missing")
	}
	g := NewSeeded(6)
	for range samples {
		task, err := g.Generate(p.Mode, p.Config)
		if err != nil {
			t.Fatalf("Generate error: %v", err)
		}
		if fraction.GCD(task.A.Den, task.B.Den) != 1 {
			t.Errorf("%s: denominators not coprime", task)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a, b := NewSeeded(42), NewSeeded(42)
	for range 20 {
		ta, err := a.Generate(ModeAdd, DefaultConfig(ModeAdd))
		if err != nil {
			t.Fatal(err)
		}
		tb, err := b.Generate(ModeAdd, DefaultConfig(ModeAdd))
		if err != nil {
			t.Fatal(err)
		}
		if ta.A != tb.A || ta.B != tb.B {
			t.Fatalf("same seed produced %s and %s", ta, tb)
		}
	}
}

func TestGenerate_Unsatisfiable(t *testing.T) {
	cfg := DefaultConfig(ModeAdd)
	cfg.MinDenominator = 5
	cfg.MaxDenominator = 5
	cfg.MaxAttempts = 50

	g := NewSeeded(7)
	_, err := g.Generate(ModeAdd, cfg)
	if !errors.Is(err, ErrUnsatisfiable) {
		t.Fatalf("expected ErrUnsatisfiable, got %v", err)
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %T", err)
	}
	if genErr.Attempts != 50 || genErr.Mode != ModeAdd {
		t.Errorf("GenerationError = %+v", genErr)
	}
	if genErr.Last == nil || genErr.Last.Validator != "denominators" {
		t.Errorf("last rejection = %v, want denominators", genErr.Last)
	}
}

func TestGenerate_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig(ModeAdd)
	cfg.MaxDenominator = 2
	_, err := NewSeeded(8).Generate(ModeAdd, cfg)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestGenerate_UnknownMode(t *testing.T) {
	if _, err := NewSeeded(9).Generate(Mode("divide"), DefaultConfig(ModeAdd)); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
