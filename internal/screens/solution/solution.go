// Package solution is the worked-solution screen. Steps are revealed one
// at a time in a scrollable viewport.
package solution

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fractiz/internal/router"
	"github.com/abhisek/fractiz/internal/screen"
	"github.com/abhisek/fractiz/internal/session"
	sol "github.com/abhisek/fractiz/internal/solution"
	"github.com/abhisek/fractiz/internal/ui/layout"
	"github.com/abhisek/fractiz/internal/ui/theme"
)

// Screen shows the solution of the session's current task.
type Screen struct {
	state *session.SessionState
	vp    viewport.Model
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

func New(state *session.SessionState) *Screen {
	return &Screen{
		state: state,
		vp:    viewport.New(viewport.WithWidth(layout.MinWidth), viewport.WithHeight(layout.ContentHeight(layout.MinHeight)-2)),
	}
}

func (s *Screen) Init() tea.Cmd {
	s.state.Solution()
	s.refresh()
	return nil
}

func (s *Screen) Title() string {
	return "Solution"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Space", Description: "Next step"},
		{Key: "a", Description: "Show all"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "space", " ", "enter":
			if s.state.RevealNext() {
				s.refresh()
				s.vp.GotoBottom()
			}
			return s, nil
		case "a":
			s.state.RevealAll()
			s.refresh()
			return s, nil
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	e := s.state.Current()
	if e == nil {
		return ""
	}
	head := theme.Title.Render(e.Task.String()) + "\n" +
		theme.Hint.Render(fmt.Sprintf("step %d of %d", e.Revealed, len(e.Steps)))

	s.vp.SetWidth(max(width-4, 10))
	s.vp.SetHeight(max(height-lipgloss.Height(head)-2, 3))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, head) + "\n\n" +
		lipgloss.NewStyle().PaddingLeft(2).Render(s.vp.View())
}

// Revealed returns the number of visible steps.
func (s *Screen) Revealed() int {
	if e := s.state.Current(); e != nil {
		return e.Revealed
	}
	return 0
}

func (s *Screen) refresh() {
	e := s.state.Current()
	if e == nil {
		return
	}
	s.vp.SetContent(Render(e.Steps[:e.Revealed]))
}

// Render styles steps for the terminal. Headings and the answer are
// emphasised and transformations use a real arrow.
func Render(steps []sol.Step) string {
	var b strings.Builder
	for i, st := range steps {
		if st.Emphasis == sol.Bold {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(theme.Emphasis.Render(st.Text))
			b.WriteString("\n")
			continue
		}
		for _, line := range st.Lines() {
			if from, to, ok := sol.ParseArrow(line); ok {
				line = from + "  →  " + theme.Correct.Render(to)
			}
			b.WriteString("  " + theme.Body.Render(line) + "\n")
		}
	}
	return b.String()
}
