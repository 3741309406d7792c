package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fractiz/internal/router"
	"github.com/abhisek/fractiz/internal/screen"
	"github.com/abhisek/fractiz/internal/store"
	"github.com/abhisek/fractiz/internal/taskgen"
	"github.com/abhisek/fractiz/internal/ui/layout"
	"github.com/abhisek/fractiz/internal/ui/theme"
)

// Limit is the number of tasks loaded.
const Limit = 50

type historyLoadedMsg struct {
	Tasks []store.TaskRecord
	Stats []store.ModeStats
	Err   error
}

// HistoryScreen lists recent tasks from the event log.
type HistoryScreen struct {
	eventRepo store.EventRepo
	tasks     []store.TaskRecord
	stats     []store.ModeStats
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		ctx := context.Background()

		tasks, err := repo.RecentTasks(ctx, store.QueryOpts{Limit: Limit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		stats, err := repo.ModeStats(ctx)
		if err != nil {
			return historyLoadedMsg{Tasks: tasks}
		}
		return historyLoadedMsg{Tasks: tasks, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.tasks = msg.Tasks
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.tasks)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return centered.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	}
	if !s.loaded {
		return centered.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.tasks) == 0 {
		return centered.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No tasks yet. Start practising!")
	}

	var b strings.Builder
	b.WriteString("\n")
	if line := s.statsLine(); line != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(line)))
		b.WriteString("\n\n")
	}

	// Keep the selection on screen; expanded rows take two lines.
	rows := max(height-4, 1)
	first := max(s.selected-rows+1, 0)

	for i := first; i < len(s.tasks) && i < first+rows; i++ {
		task := s.tasks[i]
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
		}

		result := theme.Incorrect.Render("open  ")
		if task.Solved {
			result = theme.Correct.Render("solved")
		}
		line := fmt.Sprintf("%s%s  %-18s %-22s ", prefix, task.Timestamp.Format("Jan 02 15:04"),
			taskgen.Mode(task.Mode).Title(), task.TaskText)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)+result))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("answer %s   %s   %s",
				task.Result, plural(task.Attempts, "attempt"), plural(task.Hints, "hint"))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(detail)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (s *HistoryScreen) statsLine() string {
	parts := make([]string, 0, len(s.stats))
	for _, st := range s.stats {
		parts = append(parts, fmt.Sprintf("%s %d/%d", taskgen.Mode(st.Mode).Title(), st.Solved, st.Tasks))
	}
	return strings.Join(parts, "   ")
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
