package tutor

import (
	"fmt"
	"strings"

	"github.com/abhisek/fractiz/internal/checker"
	"github.com/abhisek/fractiz/internal/llm"
	"github.com/abhisek/fractiz/internal/taskgen"
)

const systemPrompt = `You coach a student practising fraction arithmetic. You see the task, the student's current answer and a draft hint. Rewrite the hint so it is friendly and specific, at most two sentences. Never state the final answer. Use plain ASCII: / for fractions, no LaTeX.`

// HintSchema is the structured output requested from the model.
var HintSchema = &llm.Schema{
	Name:        "fraction-hint",
	Description: "One short hint for the student's next step",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint": map[string]any{
				"type":        "string",
				"description": "The hint, one or two sentences",
				"minLength":   1,
				"maxLength":   400,
			},
		},
		"required":             []any{"hint"},
		"additionalProperties": false,
	},
}

func userMessage(task *taskgen.Task, answer checker.Answer, fb checker.Feedback, draft string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task (%s): %s\n", task.Mode.Title(), task)
	fmt.Fprintf(&b, "Student answer: %s\n", describeAnswer(task, answer))
	fmt.Fprintf(&b, "Checker verdict: %s (%s)\n", fb.State, fb.Message)
	fmt.Fprintf(&b, "Draft hint: %s\n", draft)
	return b.String()
}

func describeAnswer(task *taskgen.Task, a checker.Answer) string {
	first := fmt.Sprintf("%d %d/%d", a.Whole1, a.Num1, a.Den1)
	if !task.Binary() {
		return first
	}
	return fmt.Sprintf("%s %s %d %d/%d", first, task.Operator(), a.Whole2, a.Num2, a.Den2)
}
