package taskgen

import (
	"fmt"

	"github.com/abhisek/fractiz/internal/fraction"
)

// Validator checks a candidate task against the difficulty config.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for error messages and logging,
	// e.g. "denominators" or "common-denominator".
	Name() string

	// Validate returns nil if the candidate passes.
	Validate(t *Task, cfg Config) *ValidationError
}

// ValidationError describes why a candidate was rejected.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// Validators returns the rejection chain for a mode, in execution order.
func Validators(mode Mode) []Validator {
	switch mode {
	case ModeAdd:
		return []Validator{&DenominatorPolicyValidator{}, &CommonDenominatorValidator{}}
	case ModeSubtract:
		return []Validator{&DenominatorPolicyValidator{}, &CommonDenominatorValidator{}, &DifferenceValidator{}}
	case ModeReduce:
		return []Validator{&CoprimeAnswerValidator{}, &TaskDenominatorValidator{}}
	case ModeImproperToMixed:
		return []Validator{&ImproperNumeratorValidator{}}
	default:
		return nil
	}
}

// DenominatorPolicyValidator enforces Config.Denominators on binary tasks.
type DenominatorPolicyValidator struct{}

func (v *DenominatorPolicyValidator) Name() string { return "denominators" }

func (v *DenominatorPolicyValidator) Validate(t *Task, cfg Config) *ValidationError {
	d1, d2 := t.A.Den, t.B.Den
	if cfg.Denominators == DenominatorsCoprime {
		if fraction.GCD(d1, d2) != 1 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("denominators %d and %d are not coprime", d1, d2),
			}
		}
		return nil
	}
	if d1 == d2 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("denominators are both %d", d1),
		}
	}
	return nil
}

// CommonDenominatorValidator bounds the least common denominator.
type CommonDenominatorValidator struct{}

func (v *CommonDenominatorValidator) Name() string { return "common-denominator" }

func (v *CommonDenominatorValidator) Validate(t *Task, cfg Config) *ValidationError {
	if cfg.MaxCommonDenominator == 0 {
		return nil
	}
	if l := t.LCM(); l > cfg.MaxCommonDenominator {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("common denominator %d exceeds %d", l, cfg.MaxCommonDenominator),
		}
	}
	return nil
}

// DifferenceValidator keeps subtraction results non-negative, or positive
// under Config.StrictlyPositive.
type DifferenceValidator struct{}

func (v *DifferenceValidator) Name() string { return "difference" }

func (v *DifferenceValidator) Validate(t *Task, cfg Config) *ValidationError {
	c := t.A.Cmp(t.B)
	if c < 0 || (c == 0 && cfg.StrictlyPositive) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("%s - %s is not positive", t.A.Mixed(), t.B.Mixed()),
		}
	}
	return nil
}

// CoprimeAnswerValidator requires the reduce-mode answer to be in lowest
// terms, so the multiplier equals the GCD of the task fraction.
type CoprimeAnswerValidator struct{}

func (v *CoprimeAnswerValidator) Name() string { return "coprime-answer" }

func (v *CoprimeAnswerValidator) Validate(t *Task, _ Config) *ValidationError {
	if !t.Result.IsReduced() {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("answer %s is not in lowest terms", t.Result),
		}
	}
	return nil
}

// TaskDenominatorValidator bounds the scaled denominator of a reduce task.
type TaskDenominatorValidator struct{}

func (v *TaskDenominatorValidator) Name() string { return "task-denominator" }

func (v *TaskDenominatorValidator) Validate(t *Task, cfg Config) *ValidationError {
	if cfg.MaxTaskDenominator == 0 {
		return nil
	}
	if t.A.Den > cfg.MaxTaskDenominator {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("task denominator %d exceeds %d", t.A.Den, cfg.MaxTaskDenominator),
		}
	}
	return nil
}

// ImproperNumeratorValidator requires a genuinely improper fraction that
// does not divide evenly, so the mixed form has a fraction part.
type ImproperNumeratorValidator struct{}

func (v *ImproperNumeratorValidator) Name() string { return "improper-numerator" }

func (v *ImproperNumeratorValidator) Validate(t *Task, cfg Config) *ValidationError {
	if cfg.MaxImproperNumerator > 0 && t.A.Num > cfg.MaxImproperNumerator {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("numerator %d exceeds %d", t.A.Num, cfg.MaxImproperNumerator),
		}
	}
	if t.A.Num <= t.A.Den {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("%s is not improper", t.A),
		}
	}
	if t.A.Num%t.A.Den == 0 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("%s is a whole number", t.A),
		}
	}
	return nil
}
