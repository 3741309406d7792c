package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/fractiz/internal/checker"
	"github.com/abhisek/fractiz/internal/llm"
	"github.com/abhisek/fractiz/internal/logger"
	"github.com/abhisek/fractiz/internal/taskgen"
)

// SourceBuiltin marks hints that did not come from a model.
const SourceBuiltin = "builtin"

type Hint struct {
	Text string

	// Source is SourceBuiltin or the model ID that phrased the hint.
	Source string
}

type Config struct {
	MaxTokens   int
	Temperature float64
}

func DefaultConfig() Config {
	return Config{MaxTokens: 256, Temperature: 0.4}
}

// Service hands out hints. Without a provider it only serves Builtin.
type Service struct {
	provider llm.Provider
	cfg      Config
	log      *logger.Logger
}

func NewService(provider llm.Provider, cfg Config, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{provider: provider, cfg: cfg, log: log}
}

// LLMEnabled reports whether hints are sent to a model.
func (s *Service) LLMEnabled() bool {
	return s != nil && s.provider != nil
}

// Hint returns a hint for the answer state. When the model call fails the
// builtin hint is returned together with the error.
func (s *Service) Hint(ctx context.Context, task *taskgen.Task, answer checker.Answer, fb checker.Feedback) (Hint, error) {
	base := Hint{Text: Builtin(task, answer, fb), Source: SourceBuiltin}
	if !s.LLMEnabled() || fb.State == checker.StateCorrect {
		return base, nil
	}

	req := llm.UserPrompt(systemPrompt, userMessage(task, answer, fb, base.Text))
	req.Schema = HintSchema
	req.MaxTokens = s.cfg.MaxTokens
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "hint"), req)
	if err != nil {
		s.log.Warn("llm hint failed, using builtin", "task_id", task.ID, "state", fb.State, "error", err)
		return base, fmt.Errorf("hint generation: %w", err)
	}

	var out hintOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return base, fmt.Errorf("parse hint response: %w", err)
	}
	text := strings.TrimSpace(out.Hint)
	if text == "" || revealsAnswer(text, task) {
		s.log.Info("llm hint rejected, using builtin", "task_id", task.ID, "hint", text)
		return base, nil
	}
	return Hint{Text: text, Source: resp.Model}, nil
}

type hintOutput struct {
	Hint string `json:"hint"`
}

// revealsAnswer catches hints that spell out the final result.
func revealsAnswer(text string, task *taskgen.Task) bool {
	res := task.Result
	candidates := []string{res.String(), res.Mixed().String()}
	for _, c := range candidates {
		if strings.Contains(c, "/") && strings.Contains(text, c) {
			return true
		}
	}
	return false
}
