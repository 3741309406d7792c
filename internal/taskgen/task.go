package taskgen

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/fractiz/internal/fraction"
)

// NewTask builds a task from given operands, e.g. for the solve and check
// commands. Operands are not validated against any Config; they only have
// to make sense for the mode.
func NewTask(mode Mode, operands ...fraction.Rational) (*Task, error) {
	if mode == ModeConvert {
		return nil, fmt.Errorf("mode %q needs a direction: %s or %s", mode, ModeMixedToImproper, ModeImproperToMixed)
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}

	want := 1
	if mode.Binary() {
		want = 2
	}
	if len(operands) != want {
		return nil, fmt.Errorf("%s task takes %d operand(s), got %d", mode, want, len(operands))
	}
	for _, op := range operands {
		if op.Den <= 0 {
			return nil, fmt.Errorf("operand %s: denominator must be positive", op)
		}
		if op.Num < 0 {
			return nil, fmt.Errorf("operand %s: negative operands are not supported", op)
		}
	}

	t := &Task{ID: uuid.NewString(), Mode: mode, A: operands[0], CreatedAt: time.Now()}
	switch mode {
	case ModeAdd:
		t.B = operands[1]
		t.Result = t.A.Add(t.B).Reduced()
	case ModeSubtract:
		t.B = operands[1]
		if t.A.Cmp(t.B) < 0 {
			return nil, fmt.Errorf("%s - %s would be negative", t.A, t.B)
		}
		t.Result = t.A.Sub(t.B).Reduced()
	case ModeReduce:
		t.Result = t.A.Reduced()
		if t.A.Num > 0 {
			t.Multiplier = fraction.GCD(t.A.Num, t.A.Den)
		}
	default:
		t.Result = t.A.Reduced()
	}
	return t, nil
}
