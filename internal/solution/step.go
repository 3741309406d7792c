// Package solution builds worked, step-by-step solutions for tasks.
package solution

import (
	"fmt"
	"strings"
)

// Emphasis controls how a step is rendered.
type Emphasis string

const (
	Normal Emphasis = "normal"
	Bold   Emphasis = "bold"
)

// Arrow separates the two sides of a transformation line, e.g.
// "2/3 + 3/4 -> 8/12 + 9/12".
const Arrow = " -> "

// Step is one block of a worked solution. Text may span several lines.
type Step struct {
	Emphasis Emphasis
	Text     string
}

// Lines splits the step text into lines.
func (s Step) Lines() []string {
	return strings.Split(s.Text, "\n")
}

// ParseArrow splits a transformation line into its two sides. ok is false
// for lines without an arrow.
func ParseArrow(line string) (from, to string, ok bool) {
	from, to, ok = strings.Cut(line, Arrow)
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(from), strings.TrimSpace(to), true
}

// Render formats steps as plain text for the terminal.
func Render(steps []Step) string {
	var b strings.Builder
	for i, s := range steps {
		if s.Emphasis == Bold {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(s.Text)
			b.WriteString("\n")
			continue
		}
		for _, line := range s.Lines() {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// steps accumulates a solution and numbers its headings.
type steps struct {
	list    []Step
	heading int
}

func (s *steps) section(title string) {
	s.heading++
	s.list = append(s.list, Step{Emphasis: Bold, Text: fmt.Sprintf("Step %d: %s", s.heading, title)})
}

func (s *steps) say(format string, args ...any) {
	s.list = append(s.list, Step{Emphasis: Normal, Text: fmt.Sprintf(format, args...)})
}

func (s *steps) answer(v fmt.Stringer) {
	s.list = append(s.list, Step{Emphasis: Bold, Text: "Answer: " + v.String()})
}
