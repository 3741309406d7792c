package solution

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fractiz/internal/checker"
	"github.com/abhisek/fractiz/internal/fraction"
	"github.com/abhisek/fractiz/internal/router"
	"github.com/abhisek/fractiz/internal/session"
	sol "github.com/abhisek/fractiz/internal/solution"
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

func newTestScreen(t *testing.T) (*Screen, *session.SessionState) {
	t.Helper()
	preset, _ := taskgen.PresetByName("add")
	state := session.NewSessionState("s1", preset, checker.DefaultPolicy(taskgen.ModeAdd), sol.Options{}, 0)
	state.Push(addTask())
	s := New(state)
	s.Init()
	return s, state
}

func TestReveal(t *testing.T) {
	s, state := newTestScreen(t)
	total := len(state.Current().Steps)
	if total < 3 {
		t.Fatalf("expected a multi-step solution, got %d steps", total)
	}
	if s.Revealed() != 1 {
		t.Errorf("revealed after open = %d, want 1", s.Revealed())
	}
	if !state.Current().SolutionViewed {
		t.Error("opening the screen should mark the solution viewed")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if s.Revealed() != 2 {
		t.Errorf("revealed after space = %d, want 2", s.Revealed())
	}

	s.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if s.Revealed() != total {
		t.Errorf("revealed after a = %d, want %d", s.Revealed(), total)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if s.Revealed() != total {
		t.Errorf("space past the end changed revealed to %d", s.Revealed())
	}

	view := s.View(100, 40)
	for _, want := range []string{"2/3 + 3/4 = ?", "Step 1", "Answer: 1 5/12", "→"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestRevealStateSurvivesReopen(t *testing.T) {
	s, state := newTestScreen(t)
	s.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})

	again := New(state)
	again.Init()
	if again.Revealed() != 2 {
		t.Errorf("revealed after reopen = %d, want 2", again.Revealed())
	}
}

func TestEscPops(t *testing.T) {
	s, _ := newTestScreen(t)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestRender(t *testing.T) {
	out := Render([]sol.Step{
		{Emphasis: sol.Bold, Text: "Step 1: Reduce"},
		{Emphasis: sol.Normal, Text: "6/15" + sol.Arrow + "2/5"},
	})
	if !strings.Contains(out, "Step 1: Reduce") || !strings.Contains(out, "6/15  →  ") || !strings.Contains(out, "2/5") {
		t.Errorf("render = %q", out)
	}
}
