package checker

import (
	"fmt"

	"github.com/abhisek/fractiz/internal/fraction"
	"github.com/abhisek/fractiz/internal/taskgen"
)

// Check classifies answer against task. It always returns a state;
// anything not matched by a rule is incorrect.
func Check(task *taskgen.Task, answer Answer, p Policy) Feedback {
	switch task.Mode {
	case taskgen.ModeAdd, taskgen.ModeSubtract:
		return checkBinary(task, answer, p)
	case taskgen.ModeReduce:
		return checkReduce(task, answer)
	case taskgen.ModeMixedToImproper:
		return checkToImproper(task, answer)
	case taskgen.ModeImproperToMixed:
		return checkToMixed(task, answer)
	default:
		return feedback(StateIncorrect, false, fraction.Rational{}, "")
	}
}

// StartingAnswer returns the control values loaded for a fresh task: the
// operands themselves for add and subtract, the unreduced fraction for
// reduce, and 0 0/1 for conversions.
func StartingAnswer(task *taskgen.Task) Answer {
	switch task.Mode {
	case taskgen.ModeAdd, taskgen.ModeSubtract:
		a, b := task.A.Mixed(), task.B.Mixed()
		return Answer{
			Whole1: a.Whole, Num1: a.Num, Den1: a.Den,
			Whole2: b.Whole, Num2: b.Num, Den2: b.Den,
		}
	case taskgen.ModeReduce:
		return Answer{Num1: task.A.Num, Den1: task.A.Den, Den2: 1}
	default:
		return Answer{Den1: 1, Den2: 1}
	}
}

func checkBinary(task *taskgen.Task, a Answer, p Policy) Feedback {
	if a.Den1 <= 0 || a.Den2 <= 0 {
		return feedback(StateInvalidDenominator, false, fraction.Rational{}, "")
	}
	if a.Den1 != a.Den2 {
		return feedback(StateNeedCommonDenominator, false, fraction.Rational{}, "")
	}

	d := a.Den1
	lcm := task.LCM()
	if p.RequireLCM && d != lcm {
		return feedback(StateNotLeastCommonDenominator, false, fraction.Rational{},
			fmt.Sprintf("Use the least common denominator, %d.", lcm))
	}

	first, _ := a.First()
	second, _ := a.Second()
	if p.Strategy == StrategyPerOperand {
		if !first.Equivalent(task.A) {
			return feedback(StateWrongConversion, false, fraction.Rational{},
				fmt.Sprintf("%s is not equal to %s. Check how you expanded it.", first.Mixed(), task.A.Mixed()))
		}
		if !second.Equivalent(task.B) {
			return feedback(StateWrongConversion, false, fraction.Rational{},
				fmt.Sprintf("%s is not equal to %s. Check how you expanded it.", second.Mixed(), task.B.Mixed()))
		}
	}

	var value fraction.Rational
	var fracPart int
	if task.Mode == taskgen.ModeSubtract {
		value = fraction.New(first.Num-second.Num, d)
		fracPart = a.Num1 - a.Num2
	} else {
		value = fraction.New(first.Num+second.Num, d)
		fracPart = a.Num1 + a.Num2
	}

	if value.Reduced() == task.Result {
		switch {
		case p.RequireCarry && (fracPart >= d || fracPart < 0):
			return feedback(StateNeedsCarryOrReduce, false, value, "")
		case !value.IsReduced():
			return feedback(StateCorrectButReducible, p.AcceptReducible, value, "")
		default:
			return feedback(StateCorrect, true, value, "")
		}
	}

	if d == lcm {
		return feedback(StateWrongSum, false, value, wrongSumMessage(task.Mode))
	}
	return feedback(StateIncorrect, false, value, "")
}

func checkReduce(task *taskgen.Task, a Answer) Feedback {
	value, ok := a.First()
	if !ok {
		return feedback(StateInvalidDenominator, false, fraction.Rational{}, "")
	}
	switch {
	case a.Whole1 == 0 && value == task.Result:
		return feedback(StateCorrect, true, value, "")
	case value.Equivalent(task.Result):
		return feedback(StateCorrectButReducible, false, value, "Equal, but it can be reduced further.")
	default:
		return feedback(StateIncorrect, false, value, "")
	}
}

func checkToImproper(task *taskgen.Task, a Answer) Feedback {
	value, ok := a.First()
	if !ok {
		return feedback(StateInvalidDenominator, false, fraction.Rational{}, "")
	}
	if a.Whole1 != 0 {
		return feedback(StateWrongForm, false, value, "An improper fraction has no whole part.")
	}
	if value.Equivalent(task.A) {
		return feedback(StateCorrect, true, value, "")
	}
	return feedback(StateIncorrect, false, value, "")
}

func checkToMixed(task *taskgen.Task, a Answer) Feedback {
	value, ok := a.First()
	if !ok {
		return feedback(StateInvalidDenominator, false, fraction.Rational{}, "")
	}
	if a.Num1 >= a.Den1 {
		return feedback(StateWrongForm, false, value, "The fraction part must be smaller than the denominator.")
	}
	want := task.A.Mixed()
	remainder := fraction.New(a.Num1, a.Den1)
	if a.Whole1 == want.Whole && remainder.Equivalent(fraction.New(want.Num, want.Den)) {
		return feedback(StateCorrect, true, value, "")
	}
	return feedback(StateIncorrect, false, value, "")
}

func wrongSumMessage(mode taskgen.Mode) string {
	if mode == taskgen.ModeSubtract {
		return "The denominator is right. Check the difference of the numerators."
	}
	return "The denominator is right. Check the sum of the numerators."
}

var defaultMessages = map[State]string{
	StateInvalidDenominator:        "A denominator must be at least 1.",
	StateNeedCommonDenominator:     "Bring the fractions to a common denominator.",
	StateNotLeastCommonDenominator: "Use the least common denominator.",
	StateWrongConversion:           "One of the fractions changed its value.",
	StateWrongSum:                  "Check the numerators.",
	StateNeedsCarryOrReduce:        "Right value! Now take out the whole part.",
	StateCorrectButReducible:       "Correct, but reduce the answer.",
	StateCorrect:                   "Correct!",
	StateWrongForm:                 "The answer is not in the right form.",
	StateIncorrect:                 "Not quite. Try again.",
}

func feedback(s State, accepted bool, value fraction.Rational, msg string) Feedback {
	if msg == "" {
		msg = defaultMessages[s]
	}
	return Feedback{State: s, Accepted: accepted, Message: msg, Value: value}
}

// Message returns the default learner-facing text for a state.
func Message(s State) string {
	return defaultMessages[s]
}
