package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fractiz/internal/router"
	"github.com/abhisek/fractiz/internal/screen"
	"github.com/abhisek/fractiz/internal/session"
	"github.com/abhisek/fractiz/internal/ui/components"
	"github.com/abhisek/fractiz/internal/ui/layout"
	"github.com/abhisek/fractiz/internal/ui/theme"
)

// SummaryScreen shows the tallies of a finished practice session.
type SummaryScreen struct {
	summary *session.SessionSummary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

func New(summary *session.SessionSummary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder
	b.WriteString(center(theme.Title.Render("Session complete!")))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center(theme.Hint.Render(fmt.Sprintf("Duration: %d:%02d", mins, secs))))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Tasks: %d      Solved: %d      Hints: %d      Accuracy: %.0f%%",
		sum.TotalTasks, sum.TotalSolved, sum.TotalHints, sum.Accuracy*100)
	b.WriteString(center(theme.Body.Render(stats)))
	b.WriteString("\n\n")

	if len(sum.ModeResults) == 0 {
		return b.String()
	}

	barWidth := min(width-8, 60)
	b.WriteString(center(theme.Hint.Render("Modes")))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", barWidth))))
	b.WriteString("\n\n")

	for _, mr := range sum.ModeResults {
		if mr.Attempted == 0 {
			continue
		}
		label := fmt.Sprintf("%-18s %2d/%-2d", mr.Mode.Title(), mr.Solved, mr.Attempted)
		bar := components.NewProgressBar(label, float64(mr.Solved)/float64(mr.Attempted), true, barWidth)
		b.WriteString(center(bar.View()))
		b.WriteString("\n")
	}
	return b.String()
}
