package taskgen

import (
	"testing"

	"github.com/abhisek/fractiz/internal/fraction"
)

func TestNewTask(t *testing.T) {
	tests := []struct {
		mode     Mode
		operands []string
		result   string
		text     string
	}{
		{ModeAdd, []string{"2/3", "3/4"}, "17/12", "2/3 + 3/4 = ?"},
		{ModeSubtract, []string{"2 1/4", "1 3/4"}, "1/2", "2 1/4 - 1 3/4 = ?"},
		{ModeReduce, []string{"6/15"}, "2/5", "6/15 = ?"},
		{ModeImproperToMixed, []string{"11/4"}, "11/4", "11/4 = ?"},
		{ModeMixedToImproper, []string{"2 3/4"}, "11/4", "2 3/4 = ?"},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			ops := make([]fraction.Rational, len(tt.operands))
			for i, s := range tt.operands {
				ops[i] = fraction.MustParse(s)
			}
			task, err := NewTask(tt.mode, ops...)
			if err != nil {
				t.Fatalf("NewTask: %v", err)
			}
			if task.Result.String() != tt.result {
				t.Errorf("result = %s, want %s", task.Result, tt.result)
			}
			if task.String() != tt.text {
				t.Errorf("text = %q, want %q", task.String(), tt.text)
			}
			if task.ID == "" {
				t.Error("missing id")
			}
		})
	}
}

func TestNewTask_ReduceMultiplier(t *testing.T) {
	task, err := NewTask(ModeReduce, fraction.New(6, 15))
	if err != nil {
		t.Fatal(err)
	}
	if task.Multiplier != 3 {
		t.Errorf("multiplier = %d, want 3", task.Multiplier)
	}
}

func TestNewTask_Errors(t *testing.T) {
	half := fraction.New(1, 2)
	tests := []struct {
		name     string
		mode     Mode
		operands []fraction.Rational
	}{
		{"convert is ambiguous", ModeConvert, []fraction.Rational{half}},
		{"unknown mode", Mode("divide"), []fraction.Rational{half, half}},
		{"missing operand", ModeAdd, []fraction.Rational{half}},
		{"extra operand", ModeReduce, []fraction.Rational{half, half}},
		{"negative operand", ModeAdd, []fraction.Rational{half, {Num: -1, Den: 2}}},
		{"negative difference", ModeSubtract, []fraction.Rational{fraction.New(1, 4), fraction.New(3, 4)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTask(tt.mode, tt.operands...); err == nil {
				t.Error("expected error")
			}
		})
	}
}
