package session

import (
	"github.com/abhisek/fractiz/internal/checker"
	"github.com/abhisek/fractiz/internal/solution"
	"github.com/abhisek/fractiz/internal/taskgen"
)

// Field names one answer control.
type Field int

const (
	FieldWhole1 Field = iota
	FieldNum1
	FieldDen1
	FieldWhole2
	FieldNum2
	FieldDen2
)

// Limits bounds the live control values.
type Limits struct {
	MaxWhole int
	MaxNum   int
	MaxDen   int
}

// maxDenominator is the largest denominator a control accepts unless the
// task's common denominator is larger.
const maxDenominator = 100

// LimitsFor returns the control bounds for a task. The denominator range
// always reaches the task's common denominator.
func LimitsFor(t *taskgen.Task, cfg taskgen.Config) Limits {
	maxDen := max(maxDenominator, t.LCM())
	l := Limits{MaxWhole: 99, MaxDen: maxDen, MaxNum: maxDen}
	switch t.Mode {
	case taskgen.ModeAdd, taskgen.ModeSubtract:
		l.MaxNum = 2 * maxDen
	case taskgen.ModeMixedToImproper, taskgen.ModeImproperToMixed:
		l.MaxNum = max(cfg.MaxImproperNumerator, maxDen-1, t.A.Num)
	}
	return l
}

// Fields returns the controls a mode shows, in focus order.
func Fields(mode taskgen.Mode) []Field {
	switch mode {
	case taskgen.ModeAdd, taskgen.ModeSubtract:
		return []Field{FieldWhole1, FieldNum1, FieldDen1, FieldWhole2, FieldNum2, FieldDen2}
	case taskgen.ModeImproperToMixed:
		return []Field{FieldWhole1, FieldNum1, FieldDen1}
	default:
		return []Field{FieldNum1, FieldDen1}
	}
}

// Push makes task the current entry. Entries after the cursor are
// dropped and the oldest entries fall off beyond MaxHistory.
func (s *SessionState) Push(task *taskgen.Task) *Entry {
	e := &Entry{Task: task, Answer: checker.StartingAnswer(task)}
	e.Feedback = checker.Check(task, e.Answer, s.Policy)

	s.History = append(s.History[:s.Cursor+1], e)
	if over := len(s.History) - s.MaxHistory; over > 0 {
		s.History = s.History[over:]
	}
	s.Cursor = len(s.History) - 1

	s.TotalTasks++
	s.modeResult(task.Mode).Attempted++
	return e
}

// Back moves to the previous task. It returns false at the oldest entry.
func (s *SessionState) Back() bool {
	if !s.CanGoBack() {
		return false
	}
	s.Cursor--
	return true
}

// Forward moves to the next task. It returns false at the newest entry.
func (s *SessionState) Forward() bool {
	if !s.CanGoForward() {
		return false
	}
	s.Cursor++
	return true
}

// Value returns the current value of a control.
func (s *SessionState) Value(f Field) int {
	e := s.Current()
	if e == nil {
		return 0
	}
	return *fieldPtr(&e.Answer, f)
}

// Set stores a control value, clamped to the mode's limits, and
// re-checks the answer. It returns true when the value changed.
// A locked entry ignores edits.
func (s *SessionState) Set(f Field, v int) bool {
	e := s.Current()
	if e == nil || e.Locked {
		return false
	}
	v = clamp(f, v, LimitsFor(e.Task, s.Preset.Config))
	p := fieldPtr(&e.Answer, f)
	if *p == v {
		return false
	}
	*p = v
	e.Edits++
	s.recheck(e)
	return true
}

// Adjust adds delta to a control value.
func (s *SessionState) Adjust(f Field, delta int) bool {
	return s.Set(f, s.Value(f)+delta)
}

// SetAnswer replaces the whole answer, clamping every control.
func (s *SessionState) SetAnswer(a checker.Answer) {
	e := s.Current()
	if e == nil || e.Locked {
		return
	}
	limits := LimitsFor(e.Task, s.Preset.Config)
	for f := FieldWhole1; f <= FieldDen2; f++ {
		p := fieldPtr(&a, f)
		*p = clamp(f, *p, limits)
	}
	if a == e.Answer {
		return
	}
	e.Answer = a
	e.Edits++
	s.recheck(e)
}

// Solution returns the worked solution of the current task, building it
// on first use.
func (s *SessionState) Solution() []solution.Step {
	e := s.Current()
	if e == nil {
		return nil
	}
	if e.Steps == nil {
		e.Steps = solution.Build(e.Task, s.Options)
	}
	e.SolutionViewed = true
	if e.Revealed == 0 && len(e.Steps) > 0 {
		e.Revealed = 1
	}
	return e.Steps
}

// RevealNext shows one more solution step. It returns false when every
// step is already visible.
func (s *SessionState) RevealNext() bool {
	steps := s.Solution()
	e := s.Current()
	if e == nil || e.Revealed >= len(steps) {
		return false
	}
	e.Revealed++
	return true
}

// RevealAll shows every solution step.
func (s *SessionState) RevealAll() {
	steps := s.Solution()
	if e := s.Current(); e != nil {
		e.Revealed = len(steps)
	}
}

// RecordHint counts a hint for the current task.
func (s *SessionState) RecordHint() {
	e := s.Current()
	if e == nil {
		return
	}
	e.HintsUsed++
	s.TotalHints++
}

func (s *SessionState) recheck(e *Entry) {
	e.Feedback = checker.Check(e.Task, e.Answer, s.Policy)
	if e.Feedback.Accepted {
		e.Locked = true
		s.TotalSolved++
		s.modeResult(e.Task.Mode).Solved++
	}
}

func clamp(f Field, v int, l Limits) int {
	lo, hi := 0, l.MaxNum
	switch f {
	case FieldWhole1, FieldWhole2:
		hi = l.MaxWhole
	case FieldDen1, FieldDen2:
		lo, hi = 1, l.MaxDen
	}
	return min(max(v, lo), hi)
}

func fieldPtr(a *checker.Answer, f Field) *int {
	switch f {
	case FieldWhole1:
		return &a.Whole1
	case FieldNum1:
		return &a.Num1
	case FieldDen1:
		return &a.Den1
	case FieldWhole2:
		return &a.Whole2
	case FieldNum2:
		return &a.Num2
	default:
		return &a.Den2
	}
}
