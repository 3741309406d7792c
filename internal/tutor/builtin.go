// Package tutor produces hints for the current answer state. Hints are
// built from the task and feedback, and optionally rephrased by an LLM.
package tutor

import (
	"fmt"

	"github.com/abhisek/fractiz/internal/checker"
	"github.com/abhisek/fractiz/internal/fraction"
	"github.com/abhisek/fractiz/internal/taskgen"
)

// Builtin returns the deterministic hint for fb. It names the concrete
// numbers of the task where that helps.
func Builtin(task *taskgen.Task, answer checker.Answer, fb checker.Feedback) string {
	a, b := task.A, task.B
	switch fb.State {
	case checker.StateCorrect:
		return "Solved. Press n for a new task."

	case checker.StateInvalidDenominator:
		return "A denominator counts equal parts, so it has to be at least 1."

	case checker.StateNeedCommonDenominator:
		return fmt.Sprintf("Fractions with denominators %d and %d can't be combined yet. Rewrite both over a shared denominator such as %d.",
			a.Den, b.Den, task.LCM())

	case checker.StateNotLeastCommonDenominator:
		return fmt.Sprintf("%d works, but %d is the smallest number that both %d and %d divide.",
			answer.Den1, task.LCM(), a.Den, b.Den)

	case checker.StateWrongConversion:
		if h := conversionHint(task, answer); h != "" {
			return h
		}
		return "Multiply numerator and denominator by the same number so the value stays the same."

	case checker.StateWrongSum:
		if task.Mode == taskgen.ModeSubtract {
			return "With equal denominators, subtract the numerators. Borrow one whole if the first numerator is smaller."
		}
		return "With equal denominators, add the numerators and keep the denominator."

	case checker.StateNeedsCarryOrReduce:
		if task.Mode == taskgen.ModeSubtract && answer.Num1 < answer.Num2 {
			return fmt.Sprintf("%d/%d is smaller than %d/%d. Borrow one whole from %d as %d/%d.",
				answer.Num1, answer.Den1, answer.Num2, answer.Den2, answer.Whole1, answer.Den1, answer.Den1)
		}
		v := fb.Value
		w, n := fraction.ToMixed(v.Num, v.Den)
		return fmt.Sprintf("The value is right. %d/%d holds %d whole(s): write %d and keep %d/%d.",
			v.Num, v.Den, w, w, n, v.Den)

	case checker.StateCorrectButReducible:
		v := fb.Value
		_, n := fraction.ToMixed(v.Num, v.Den)
		if n > 0 && fraction.GCD(n, v.Den) > 1 {
			g := fraction.GCD(n, v.Den)
			return fmt.Sprintf("%d and %d share the factor %d. Divide both by it.", n, v.Den, g)
		}
		return "Numerator and denominator still share a factor. Divide both by it."

	case checker.StateWrongForm:
		return wrongForm(task)
	}
	return firstStep(task)
}

// conversionHint points at the first operand whose rewritten form changed
// value.
func conversionHint(task *taskgen.Task, answer checker.Answer) string {
	ops := []struct {
		orig fraction.Rational
		got  func() (fraction.Rational, bool)
	}{
		{task.A, answer.First},
		{task.B, answer.Second},
	}
	for _, op := range ops {
		got, ok := op.got()
		if !ok || got.Equivalent(op.orig) || got.Den%op.orig.Den != 0 {
			continue
		}
		return fmt.Sprintf("To write %s over %d, multiply its numerator by %d too.",
			op.orig.Mixed(), got.Den, got.Den/op.orig.Den)
	}
	return ""
}

func wrongForm(task *taskgen.Task) string {
	switch task.Mode {
	case taskgen.ModeReduce:
		n, d := task.A.Num, task.A.Den
		return fmt.Sprintf("That is equal to %d/%d but not fully reduced. Keep dividing by common factors.", n, d)
	case taskgen.ModeMixedToImproper:
		return "An improper fraction has no whole part. Move everything into the numerator."
	case taskgen.ModeImproperToMixed:
		return "In a mixed number the fraction part is smaller than 1. Take out every whole."
	}
	return "Write the answer as a mixed number in lowest terms."
}

// firstStep suggests where to begin.
func firstStep(task *taskgen.Task) string {
	a := task.A
	switch task.Mode {
	case taskgen.ModeAdd, taskgen.ModeSubtract:
		if a.Den == task.B.Den {
			return "The denominators already match. Work with the numerators."
		}
		return fmt.Sprintf("Start with the least common multiple of %d and %d.", a.Den, task.B.Den)
	case taskgen.ModeReduce:
		return fmt.Sprintf("Find the greatest common divisor of %d and %d, then divide both by it.", a.Num, a.Den)
	case taskgen.ModeMixedToImproper:
		m := a.Mixed()
		return fmt.Sprintf("Multiply the whole part %d by %d and add %d.", m.Whole, m.Den, m.Num)
	case taskgen.ModeImproperToMixed:
		return fmt.Sprintf("How many times does %d fit into %d? What is left over?", a.Den, a.Num)
	}
	return "Try again step by step."
}
