// Package taskgen draws random fraction tasks under the pedagogical
// constraints of each practice mode.
package taskgen

import (
	"fmt"
	"time"

	"github.com/abhisek/fractiz/internal/fraction"
)

// Mode is the kind of exercise a task belongs to.
type Mode string

const (
	ModeAdd             Mode = "add"
	ModeSubtract        Mode = "subtract"
	ModeReduce          Mode = "reduce"
	ModeMixedToImproper Mode = "mixed_to_improper"
	ModeImproperToMixed Mode = "improper_to_mixed"

	// ModeConvert is not a task mode. The generator resolves it to one of
	// the two conversion modes at random for every task.
	ModeConvert Mode = "convert"
)

// Modes lists the concrete task modes in menu order.
func Modes() []Mode {
	return []Mode{ModeAdd, ModeSubtract, ModeReduce, ModeMixedToImproper, ModeImproperToMixed}
}

// ParseMode converts a CLI or config string into a Mode. "convert" is
// accepted as well.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if m == ModeConvert {
		return m, nil
	}
	for _, known := range Modes() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Binary reports whether tasks of this mode have two operands.
func (m Mode) Binary() bool {
	return m == ModeAdd || m == ModeSubtract
}

// Title is the human-readable mode name.
func (m Mode) Title() string {
	switch m {
	case ModeAdd:
		return "Addition"
	case ModeSubtract:
		return "Subtraction"
	case ModeReduce:
		return "Reduce"
	case ModeMixedToImproper:
		return "Mixed to improper"
	case ModeImproperToMixed:
		return "Improper to mixed"
	case ModeConvert:
		return "Convert"
	default:
		return string(m)
	}
}

// Task is one generated exercise. Tasks are immutable after generation.
type Task struct {
	// ID uniquely identifies the task in the event log.
	ID string

	Mode Mode

	// A and B are the operands as improper fractions. B is the zero value
	// for single-operand modes.
	A fraction.Rational
	B fraction.Rational

	// Result is the expected answer in lowest terms.
	Result fraction.Rational

	// Multiplier is the factor k a reduce task was scaled by.
	Multiplier int

	CreatedAt time.Time
}

// Binary reports whether the task has two operands.
func (t *Task) Binary() bool {
	return t.Mode.Binary()
}

// LCM returns the least common denominator of a binary task's operands,
// or the operand denominator for single-operand tasks.
func (t *Task) LCM() int {
	if !t.Binary() {
		return t.A.Den
	}
	return fraction.LCM(t.A.Den, t.B.Den)
}

// Operator returns "+" or "-" for binary tasks and "" otherwise.
func (t *Task) Operator() string {
	switch t.Mode {
	case ModeAdd:
		return "+"
	case ModeSubtract:
		return "-"
	default:
		return ""
	}
}

// Operands returns the mixed decomposition of each operand.
func (t *Task) Operands() []fraction.Mixed {
	if t.Binary() {
		return []fraction.Mixed{t.A.Mixed(), t.B.Mixed()}
	}
	return []fraction.Mixed{t.A.Mixed()}
}

// Prompt is the instruction shown above the task.
func (t *Task) Prompt() string {
	switch t.Mode {
	case ModeAdd:
		return "Add the fractions"
	case ModeSubtract:
		return "Subtract the fractions"
	case ModeReduce:
		return "Reduce the fraction"
	case ModeMixedToImproper:
		return "Write as an improper fraction"
	case ModeImproperToMixed:
		return "Write as a mixed number"
	default:
		return ""
	}
}

// String renders the task the way the learner sees it, e.g.
// "2/3 + 3/4 = ?" or "11/4 = ? (mixed)".
func (t *Task) String() string {
	switch t.Mode {
	case ModeAdd, ModeSubtract:
		return fmt.Sprintf("%s %s %s = ?", t.A.Mixed(), t.Operator(), t.B.Mixed())
	case ModeReduce:
		return fmt.Sprintf("%s = ?", t.A)
	case ModeMixedToImproper:
		return fmt.Sprintf("%s = ?", t.A.Mixed())
	case ModeImproperToMixed:
		return fmt.Sprintf("%s = ?", t.A)
	default:
		return string(t.Mode)
	}
}
