package practice

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/fractiz/internal/checker"
	"github.com/abhisek/fractiz/internal/session"
	"github.com/abhisek/fractiz/internal/taskgen"
	"github.com/abhisek/fractiz/internal/tutor"
	"github.com/abhisek/fractiz/internal/ui/components"
	"github.com/abhisek/fractiz/internal/ui/layout"
	"github.com/abhisek/fractiz/internal/ui/theme"
)

func (s *Screen) KeyHints() []layout.KeyHint {
	e := s.state.Current()
	if e == nil || e.Locked {
		return []layout.KeyHint{
			{Key: "n", Description: "New task"},
			{Key: "s", Description: "Solution"},
			{Key: "[ ]", Description: "History"},
			{Key: "Esc", Description: "Finish"},
		}
	}
	return []layout.KeyHint{
		{Key: "0-9 +/-", Description: "Edit"},
		{Key: "Tab", Description: "Next field"},
		{Key: "h", Description: "Hint"},
		{Key: "s", Description: "Solution"},
		{Key: "n", Description: "New task"},
		{Key: "[ ]", Description: "History"},
		{Key: "Esc", Description: "Finish"},
	}
}

// Status is shown on the right of the header.
func (s *Screen) Status() string {
	return fmt.Sprintf("solved %d/%d", s.state.TotalSolved, s.state.TotalTasks)
}

func (s *Screen) View(width, height int) string {
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	if s.errMsg != "" {
		return "\n\n" + center(theme.Incorrect.Render("Could not make a task: "+s.errMsg)) +
			"\n\n" + center(theme.Hint.Render("n to try again, esc to finish"))
	}
	e := s.state.Current()
	if e == nil {
		return ""
	}

	pos, total := s.state.Position()
	var b strings.Builder
	b.WriteString(center(theme.Subtitle.Render(fmt.Sprintf("%s   (task %d of %d)", e.Task.Prompt(), pos, total))))
	b.WriteString("\n\n")
	b.WriteString(center(renderTask(e.Task)))
	b.WriteString("\n\n")
	b.WriteString(center(s.renderAnswer(e)))
	b.WriteString("\n\n")
	b.WriteString(center(renderFeedback(e.Feedback)))
	b.WriteString("\n")

	switch {
	case s.hintPending:
		b.WriteString("\n" + center(theme.Hint.Render("Thinking of a hint...")))
	case s.hint != "":
		hint := lipgloss.NewStyle().Width(min(width-8, 70)).Render("Hint: " + s.hint)
		if s.hintSource != "" && s.hintSource != tutor.SourceBuiltin {
			hint += "\n" + theme.Hint.Render("("+s.hintSource+")")
		}
		b.WriteString("\n" + center(theme.Card.Render(hint)))
	}
	return b.String()
}

// renderTask draws the operands as stacked fractions.
func renderTask(t *taskgen.Task) string {
	var parts []string
	switch t.Mode {
	case taskgen.ModeAdd, taskgen.ModeSubtract:
		a, b := t.A.Mixed(), t.B.Mixed()
		parts = []string{
			components.StackedMixed(a.Whole, a.Num, a.Den),
			"  " + t.Operator() + "  ",
			components.StackedMixed(b.Whole, b.Num, b.Den),
		}
	case taskgen.ModeMixedToImproper:
		m := t.A.Mixed()
		parts = []string{components.StackedMixed(m.Whole, m.Num, m.Den)}
	default:
		parts = []string{components.Stacked(strconv.Itoa(t.A.Num), strconv.Itoa(t.A.Den))}
	}
	parts = append(parts, "  =  ?")
	return theme.Body.Render(lipgloss.JoinHorizontal(lipgloss.Center, parts...))
}

func (s *Screen) renderAnswer(e *session.Entry) string {
	field := func(f session.Field) (string, bool) {
		for i, ff := range s.fields {
			if ff == f {
				return s.inputs[i].View(), true
			}
		}
		return "", false
	}
	triple := func(w, n, d session.Field) string {
		num, _ := field(n)
		den, _ := field(d)
		frac := components.Stacked(num, den)
		if whole, ok := field(w); ok {
			return lipgloss.JoinHorizontal(lipgloss.Center, whole+" ", frac)
		}
		return frac
	}

	parts := []string{triple(session.FieldWhole1, session.FieldNum1, session.FieldDen1)}
	if e.Task.Binary() {
		parts = append(parts, "  "+e.Task.Operator()+"  ", triple(session.FieldWhole2, session.FieldNum2, session.FieldDen2))
		if v := e.Feedback.Value; v.Den > 0 {
			m := v.Mixed()
			parts = append(parts, "  =  ", components.StackedMixed(m.Whole, m.Num, m.Den))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func renderFeedback(fb checker.Feedback) string {
	msg := fb.Message
	if msg == "" {
		msg = checker.Message(fb.State)
	}
	switch {
	case fb.Accepted:
		return theme.Correct.Render("✓ " + msg)
	case fb.State == checker.StateCorrectButReducible,
		fb.State == checker.StateNeedsCarryOrReduce,
		fb.State == checker.StateNotLeastCommonDenominator,
		fb.State == checker.StateNeedCommonDenominator:
		return theme.Pending.Render(msg)
	default:
		return theme.Incorrect.Render(msg)
	}
}
