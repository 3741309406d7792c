// Package checker classifies a learner's in-progress answer against a
// task. Every edit of the answer controls is checked, so the result is a
// feedback state rather than a plain right/wrong.
package checker

import (
	"fmt"

	"github.com/abhisek/fractiz/internal/fraction"
	"github.com/abhisek/fractiz/internal/taskgen"
)

// State is the classification of an answer.
type State string

const (
	StateInvalidDenominator        State = "invalid_denominator"
	StateNeedCommonDenominator     State = "need_common_denominator"
	StateNotLeastCommonDenominator State = "not_least_common_denominator"
	StateWrongConversion           State = "wrong_conversion"
	StateWrongSum                  State = "wrong_sum"
	StateNeedsCarryOrReduce        State = "needs_carry_or_reduce"
	StateCorrectButReducible       State = "correct_but_reducible"
	StateCorrect                   State = "correct"
	StateWrongForm                 State = "wrong_form"
	StateIncorrect                 State = "incorrect"
)

// Answer holds the live values of the answer controls. Single-operand
// modes use only the first triple.
type Answer struct {
	Whole1, Num1, Den1 int
	Whole2, Num2, Den2 int
}

// First returns the first triple as a Rational. ok is false when the
// denominator is not positive.
func (a Answer) First() (fraction.Rational, bool) {
	if a.Den1 <= 0 {
		return fraction.Rational{}, false
	}
	return fraction.New(fraction.FromMixed(a.Whole1, a.Num1, a.Den1), a.Den1), true
}

// Second returns the second triple as a Rational.
func (a Answer) Second() (fraction.Rational, bool) {
	if a.Den2 <= 0 {
		return fraction.Rational{}, false
	}
	return fraction.New(fraction.FromMixed(a.Whole2, a.Num2, a.Den2), a.Den2), true
}

func (a Answer) String() string {
	return fmt.Sprintf("%d %d/%d | %d %d/%d", a.Whole1, a.Num1, a.Den1, a.Whole2, a.Num2, a.Den2)
}

// Feedback is the result of Check.
type Feedback struct {
	State State

	// Accepted means the task is solved and the controls should lock.
	Accepted bool

	// Message is the learner-facing text for State.
	Message string

	// Value is the value the answer denotes; for binary tasks the combined
	// result over the common denominator. Zero when a denominator is
	// invalid.
	Value fraction.Rational
}

// Strategy selects how a binary answer is judged.
type Strategy string

const (
	// StrategyFinalValue judges only the combined value.
	StrategyFinalValue Strategy = "final_value"

	// StrategyPerOperand first requires each rewritten operand to equal
	// the task operand.
	StrategyPerOperand Strategy = "per_operand"
)

// Policy tunes how strict the checker is.
type Policy struct {
	Strategy Strategy `yaml:"strategy"`

	// RequireLCM demands the least common denominator rather than any
	// common one.
	RequireLCM bool `yaml:"require_lcm"`

	// RequireCarry reports a correct value whose fraction part is not yet
	// proper as needs_carry_or_reduce.
	RequireCarry bool `yaml:"require_carry"`

	// AcceptReducible makes correct_but_reducible an accepted state in
	// add and subtract modes.
	AcceptReducible bool `yaml:"accept_reducible"`
}

// DefaultPolicy returns the lenient policy: the final value counts, any
// common denominator works and reducible answers are accepted.
func DefaultPolicy(taskgen.Mode) Policy {
	return Policy{
		Strategy:        StrategyFinalValue,
		AcceptReducible: true,
	}
}
