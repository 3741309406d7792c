package checker

import (
	"testing"

	"github.com/abhisek/fractiz/internal/fraction"
	"github.com/abhisek/fractiz/internal/taskgen"
)

func addTask(a, b string) *taskgen.Task {
	ra, rb := fraction.MustParse(a), fraction.MustParse(b)
	return &taskgen.Task{Mode: taskgen.ModeAdd, A: ra, B: rb, Result: ra.Add(rb).Reduced()}
}

func subTask(a, b string) *taskgen.Task {
	ra, rb := fraction.MustParse(a), fraction.MustParse(b)
	return &taskgen.Task{Mode: taskgen.ModeSubtract, A: ra, B: rb, Result: ra.Sub(rb).Reduced()}
}

func TestCheck_AddScenario(t *testing.T) {
	task := addTask("2/3", "3/4")
	lcmAnswer := Answer{Num1: 8, Den1: 12, Num2: 9, Den2: 12}

	tests := []struct {
		name   string
		answer Answer
		policy Policy
		want   State
		accept bool
	}{
		{"starting answer", StartingAnswer(task), DefaultPolicy(taskgen.ModeAdd), StateNeedCommonDenominator, false},
		{"lcm default policy", lcmAnswer, DefaultPolicy(taskgen.ModeAdd), StateCorrect, true},
		{"lcm require carry", lcmAnswer, Policy{RequireCarry: true, AcceptReducible: true}, StateNeedsCarryOrReduce, false},
		{"larger common denominator", Answer{Num1: 16, Den1: 24, Num2: 18, Den2: 24}, DefaultPolicy(taskgen.ModeAdd), StateCorrectButReducible, true},
		{"larger common denominator require lcm", Answer{Num1: 16, Den1: 24, Num2: 18, Den2: 24}, Policy{RequireLCM: true}, StateNotLeastCommonDenominator, false},
		{"wrong sum at lcm", Answer{Num1: 8, Den1: 12, Num2: 8, Den2: 12}, DefaultPolicy(taskgen.ModeAdd), StateWrongSum, false},
		{"wrong at other denominator", Answer{Num1: 1, Den1: 24, Num2: 1, Den2: 24}, DefaultPolicy(taskgen.ModeAdd), StateIncorrect, false},
		{"zero denominator", Answer{Num1: 8, Den1: 0, Num2: 9, Den2: 12}, DefaultPolicy(taskgen.ModeAdd), StateInvalidDenominator, false},
		{"per operand wrong conversion", Answer{Num1: 7, Den1: 12, Num2: 10, Den2: 12}, Policy{Strategy: StrategyPerOperand}, StateWrongConversion, false},
		{"per operand correct", lcmAnswer, Policy{Strategy: StrategyPerOperand}, StateCorrect, true},
		{"carried answer", Answer{Whole1: 1, Num1: 5, Den1: 12, Den2: 12}, Policy{RequireCarry: true}, StateCorrect, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := Check(task, tc.answer, tc.policy)
			if fb.State != tc.want {
				t.Errorf("Check(%v) state = %s, want %s", tc.answer, fb.State, tc.want)
			}
			if fb.Accepted != tc.accept {
				t.Errorf("Check(%v) accepted = %v, want %v", tc.answer, fb.Accepted, tc.accept)
			}
			if fb.Message == "" {
				t.Error("empty feedback message")
			}
		})
	}
}

func TestCheck_ReducibleNotAcceptedByPolicy(t *testing.T) {
	task := addTask("1/4", "1/12")
	fb := Check(task, Answer{Num1: 3, Den1: 12, Num2: 1, Den2: 12}, Policy{})
	if fb.State != StateCorrectButReducible || fb.Accepted {
		t.Errorf("got %s accepted=%v, want correct_but_reducible not accepted", fb.State, fb.Accepted)
	}
	if fb.Value != fraction.New(4, 12) {
		t.Errorf("value = %v, want 4/12", fb.Value)
	}
}

func TestCheck_SubtractBorrow(t *testing.T) {
	task := subTask("2 1/4", "1 3/4")
	if task.Result != fraction.New(1, 2) {
		t.Fatalf("result = %v, want 1/2", task.Result)
	}

	fb := Check(task, StartingAnswer(task), DefaultPolicy(taskgen.ModeSubtract))
	if fb.State != StateCorrectButReducible || !fb.Accepted {
		t.Errorf("starting answer: got %s, want accepted correct_but_reducible", fb.State)
	}

	fb = Check(task, StartingAnswer(task), Policy{RequireCarry: true})
	if fb.State != StateNeedsCarryOrReduce {
		t.Errorf("unborrowed with RequireCarry: got %s, want needs_carry_or_reduce", fb.State)
	}

	borrowed := Answer{Whole1: 1, Num1: 5, Den1: 4, Whole2: 1, Num2: 3, Den2: 4}
	fb = Check(task, borrowed, Policy{RequireCarry: true, AcceptReducible: true})
	if fb.State != StateCorrectButReducible {
		t.Errorf("borrowed: got %s, want correct_but_reducible", fb.State)
	}

	wrong := Answer{Whole1: 2, Num1: 1, Den1: 4, Whole2: 1, Num2: 1, Den2: 4}
	if got := Check(task, wrong, DefaultPolicy(taskgen.ModeSubtract)).State; got != StateWrongSum {
		t.Errorf("wrong difference: got %s, want wrong_sum", got)
	}
}

func TestCheck_Reduce(t *testing.T) {
	task := &taskgen.Task{Mode: taskgen.ModeReduce, A: fraction.New(6, 15), Result: fraction.New(2, 5), Multiplier: 3}

	tests := []struct {
		answer Answer
		want   State
		accept bool
	}{
		{StartingAnswer(task), StateCorrectButReducible, false},
		{Answer{Num1: 2, Den1: 5}, StateCorrect, true},
		{Answer{Num1: 4, Den1: 10}, StateCorrectButReducible, false},
		{Answer{Num1: 1, Den1: 5}, StateIncorrect, false},
		{Answer{Num1: 2, Den1: 0}, StateInvalidDenominator, false},
	}
	for _, tc := range tests {
		fb := Check(task, tc.answer, DefaultPolicy(taskgen.ModeReduce))
		if fb.State != tc.want || fb.Accepted != tc.accept {
			t.Errorf("Check(%v) = %s/%v, want %s/%v", tc.answer, fb.State, fb.Accepted, tc.want, tc.accept)
		}
	}
}

func TestCheck_MixedToImproper(t *testing.T) {
	task := &taskgen.Task{Mode: taskgen.ModeMixedToImproper, A: fraction.New(11, 4), Result: fraction.New(11, 4)}

	tests := []struct {
		answer Answer
		want   State
	}{
		{StartingAnswer(task), StateIncorrect},
		{Answer{Num1: 11, Den1: 4}, StateCorrect},
		{Answer{Num1: 22, Den1: 8}, StateCorrect},
		{Answer{Whole1: 2, Num1: 3, Den1: 4}, StateWrongForm},
		{Answer{Num1: 10, Den1: 4}, StateIncorrect},
		{Answer{Num1: 11}, StateInvalidDenominator},
	}
	for _, tc := range tests {
		if got := Check(task, tc.answer, Policy{}).State; got != tc.want {
			t.Errorf("Check(%v) = %s, want %s", tc.answer, got, tc.want)
		}
	}
}

func TestCheck_ImproperToMixed(t *testing.T) {
	task := &taskgen.Task{Mode: taskgen.ModeImproperToMixed, A: fraction.New(11, 4), Result: fraction.New(11, 4)}

	tests := []struct {
		answer Answer
		want   State
	}{
		{Answer{Whole1: 2, Num1: 3, Den1: 4}, StateCorrect},
		{Answer{Whole1: 2, Num1: 6, Den1: 8}, StateCorrect},
		{Answer{Num1: 11, Den1: 4}, StateWrongForm},
		{Answer{Whole1: 1, Num1: 3, Den1: 4}, StateIncorrect},
		{Answer{Whole1: 2, Num1: 1, Den1: 4}, StateIncorrect},
		{Answer{Whole1: 2, Num1: 3}, StateInvalidDenominator},
	}
	for _, tc := range tests {
		if got := Check(task, tc.answer, Policy{}).State; got != tc.want {
			t.Errorf("Check(%v) = %s, want %s", tc.answer, got, tc.want)
		}
	}
}

func TestCheck_GeneratedAddAtLCM(t *testing.T) {
	g := taskgen.NewSeeded(11)
	for range 200 {
		task, err := g.Generate(taskgen.ModeAdd, taskgen.DefaultConfig(taskgen.ModeAdd))
		if err != nil {
			t.Fatal(err)
		}
		l := task.LCM()
		a, _ := task.A.ExpandTo(l)
		b, _ := task.B.ExpandTo(l)
		fb := Check(task, Answer{Num1: a.Num, Den1: l, Num2: b.Num, Den2: l}, DefaultPolicy(taskgen.ModeAdd))
		if fb.State != StateCorrect && fb.State != StateCorrectButReducible {
			t.Errorf("%s at lcm %d: state %s", task, l, fb.State)
		}
	}
}

func TestStartingAnswer(t *testing.T) {
	sub := subTask("2 1/4", "1 3/4")
	want := Answer{Whole1: 2, Num1: 1, Den1: 4, Whole2: 1, Num2: 3, Den2: 4}
	if got := StartingAnswer(sub); got != want {
		t.Errorf("StartingAnswer(subtract) = %v, want %v", got, want)
	}

	conv := &taskgen.Task{Mode: taskgen.ModeImproperToMixed, A: fraction.New(11, 4)}
	if got := StartingAnswer(conv); got.Whole1 != 0 || got.Num1 != 0 || got.Den1 != 1 {
		t.Errorf("StartingAnswer(conversion) = %v, want 0 0/1", got)
	}
}
