package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/fractiz/internal/checker"
	"github.com/abhisek/fractiz/internal/fraction"
	"github.com/abhisek/fractiz/internal/llm"
	"github.com/abhisek/fractiz/internal/taskgen"
)

func addTask() *taskgen.Task {
	return &taskgen.Task{
		ID:     "t1",
		Mode:   taskgen.ModeAdd,
		A:      fraction.New(2, 3),
		B:      fraction.New(3, 4),
		Result: fraction.New(17, 12),
	}
}

func subTask() *taskgen.Task {
	return &taskgen.Task{
		ID:     "t2",
		Mode:   taskgen.ModeSubtract,
		A:      fraction.MustParse("2 1/4"),
		B:      fraction.MustParse("1 3/4"),
		Result: fraction.New(1, 2),
	}
}

func reduceTask() *taskgen.Task {
	return &taskgen.Task{
		ID:         "t3",
		Mode:       taskgen.ModeReduce,
		A:          fraction.New(6, 15),
		Result:     fraction.New(2, 5),
		Multiplier: 3,
	}
}

func TestBuiltin(t *testing.T) {
	perOperand := checker.Policy{Strategy: checker.StrategyPerOperand, AcceptReducible: true}
	strict := checker.Policy{Strategy: checker.StrategyFinalValue, RequireLCM: true, RequireCarry: true}

	tests := []struct {
		name   string
		task   *taskgen.Task
		answer checker.Answer
		policy checker.Policy
		state  checker.State
		want   string
	}{
		{"start", addTask(), checker.Answer{Num1: 2, Den1: 3, Num2: 3, Den2: 4}, strict,
			checker.StateNeedCommonDenominator, "such as 12"},
		{"zero denominator", addTask(), checker.Answer{Num1: 2, Den1: 0, Num2: 3, Den2: 4}, strict,
			checker.StateInvalidDenominator, "at least 1"},
		{"not least", addTask(), checker.Answer{Num1: 16, Den1: 24, Num2: 18, Den2: 24}, strict,
			checker.StateNotLeastCommonDenominator, "24 works, but 12"},
		{"bad expansion", addTask(), checker.Answer{Num1: 2, Den1: 12, Num2: 9, Den2: 12}, perOperand,
			checker.StateWrongConversion, "To write 2/3 over 12, multiply its numerator by 4"},
		{"carry", addTask(), checker.Answer{Num1: 8, Den1: 12, Num2: 9, Den2: 12}, strict,
			checker.StateNeedsCarryOrReduce, "17/12 holds 1 whole(s)"},
		{"borrow", subTask(), checker.Answer{Whole1: 2, Num1: 1, Den1: 4, Whole2: 1, Num2: 3, Den2: 4}, strict,
			checker.StateNeedsCarryOrReduce, "Borrow one whole from 2 as 4/4"},
		{"wrong sum", subTask(), checker.Answer{Whole1: 2, Num1: 1, Den1: 4, Whole2: 1, Num2: 1, Den2: 4}, strict,
			checker.StateWrongSum, "subtract the numerators"},
		{"reducible", reduceTask(), checker.Answer{Num1: 6, Den1: 15}, checker.Policy{},
			checker.StateCorrectButReducible, "6 and 15 share the factor 3"},
		{"reduce incorrect", reduceTask(), checker.Answer{Num1: 1, Den1: 5}, checker.Policy{},
			checker.StateIncorrect, "greatest common divisor of 6 and 15"},
		{"solved", reduceTask(), checker.Answer{Num1: 2, Den1: 5}, checker.Policy{},
			checker.StateCorrect, "Solved"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := checker.Check(tt.task, tt.answer, tt.policy)
			require.Equal(t, tt.state, fb.State)
			got := Builtin(tt.task, tt.answer, fb)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Builtin() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestBuiltin_Conversions(t *testing.T) {
	toImproper := &taskgen.Task{Mode: taskgen.ModeMixedToImproper, A: fraction.New(11, 4), Result: fraction.New(11, 4)}
	fb := checker.Check(toImproper, checker.Answer{Whole1: 2, Num1: 3, Den1: 4}, checker.Policy{})
	require.Equal(t, checker.StateWrongForm, fb.State)
	assert.Contains(t, Builtin(toImproper, checker.Answer{}, fb), "no whole part")

	fb = checker.Check(toImproper, checker.Answer{Num1: 10, Den1: 4}, checker.Policy{})
	assert.Contains(t, Builtin(toImproper, checker.Answer{}, fb), "Multiply the whole part 2 by 4 and add 3")

	toMixed := &taskgen.Task{Mode: taskgen.ModeImproperToMixed, A: fraction.New(11, 4), Result: fraction.New(11, 4)}
	fb = checker.Check(toMixed, checker.Answer{Whole1: 1, Num1: 3, Den1: 4}, checker.Policy{})
	assert.Contains(t, Builtin(toMixed, checker.Answer{}, fb), "How many times does 4 fit into 11")
}

func TestService_NoProvider(t *testing.T) {
	s := NewService(nil, DefaultConfig(), nil)
	assert.False(t, s.LLMEnabled())

	task := addTask()
	ans := checker.StartingAnswer(task)
	fb := checker.Check(task, ans, checker.DefaultPolicy(task.Mode))
	h, err := s.Hint(context.Background(), task, ans, fb)
	require.NoError(t, err)
	assert.Equal(t, SourceBuiltin, h.Source)
	assert.Equal(t, Builtin(task, ans, fb), h.Text)
}

func TestService_LLMRephrase(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"hint":"Thirds and quarters both fit into twelfths. Try rewriting each fraction over 12."}`),
	})
	s := NewService(mock, DefaultConfig(), nil)
	require.True(t, s.LLMEnabled())

	task := addTask()
	ans := checker.StartingAnswer(task)
	fb := checker.Check(task, ans, checker.DefaultPolicy(task.Mode))
	h, err := s.Hint(context.Background(), task, ans, fb)
	require.NoError(t, err)

	assert.Equal(t, "mock", h.Source)
	assert.Contains(t, h.Text, "twelfths")

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, HintSchema, req.Schema)
	assert.Contains(t, req.Messages[0].Content, "2/3 + 3/4 = ?")
	assert.Contains(t, req.Messages[0].Content, string(checker.StateNeedCommonDenominator))
	assert.Contains(t, req.Messages[0].Content, "Student answer: 0 2/3 + 0 3/4")
}

func TestService_FallsBack(t *testing.T) {
	task := addTask()
	ans := checker.StartingAnswer(task)
	fb := checker.Check(task, ans, checker.DefaultPolicy(task.Mode))
	builtin := Builtin(task, ans, fb)

	t.Run("provider error", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}})
		h, err := NewService(mock, DefaultConfig(), nil).Hint(context.Background(), task, ans, fb)
		var rl *llm.ErrRateLimit
		assert.True(t, errors.As(err, &rl))
		assert.Equal(t, builtin, h.Text)
		assert.Equal(t, SourceBuiltin, h.Source)
	})

	t.Run("schema violation", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"text":"hi"}`)})
		h, err := NewService(mock, DefaultConfig(), nil).Hint(context.Background(), task, ans, fb)
		assert.Error(t, err)
		assert.Equal(t, builtin, h.Text)
	})

	t.Run("answer leaked", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"hint":"It comes out as 1 5/12."}`)})
		h, err := NewService(mock, DefaultConfig(), nil).Hint(context.Background(), task, ans, fb)
		assert.NoError(t, err)
		assert.Equal(t, builtin, h.Text)
	})
}

func TestService_SkipsSolved(t *testing.T) {
	mock := llm.NewMockProvider()
	task := reduceTask()
	ans := checker.Answer{Num1: 2, Den1: 5}
	fb := checker.Check(task, ans, checker.Policy{})

	h, err := NewService(mock, DefaultConfig(), nil).Hint(context.Background(), task, ans, fb)
	require.NoError(t, err)
	assert.Equal(t, SourceBuiltin, h.Source)
	assert.Zero(t, mock.CallCount())
}
