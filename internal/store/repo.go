package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int    // max results (0 = unlimited)
	Mode      string // only this mode ("" = all)
	SessionID string // only this session ("" = all)
}

// TaskEventData records a generated task shown to the learner.
type TaskEventData struct {
	SessionID  string
	TaskID     string
	Mode       string
	TaskText   string
	OperandA   string
	OperandB   string
	Result     string
	Multiplier int
}

// AttemptEventData records a checked answer. Only state changes are
// logged, not every keystroke.
type AttemptEventData struct {
	SessionID string
	TaskID    string
	Mode      string
	Answer    string
	State     string
	Accepted  bool
	Edits     int
}

// HintEventData records a hint shown to the learner.
type HintEventData struct {
	SessionID string
	TaskID    string
	Mode      string
	State     string
	Hint      string
	Source    string // "builtin" or the LLM model ID
}

// SessionEventData records the start or end of a practice session.
type SessionEventData struct {
	SessionID    string
	Action       string // "start" or "end"
	Preset       string
	Tasks        int
	Solved       int
	Hints        int
	DurationSecs int
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// TaskRecord is a task from the log with its outcome.
type TaskRecord struct {
	ID        int
	Timestamp time.Time
	SessionID string
	TaskID    string
	Mode      string
	TaskText  string
	Result    string
	Solved    bool
	Attempts  int
	Hints     int
}

// ModeStats aggregates the log per mode.
type ModeStats struct {
	Mode     string
	Tasks    int
	Solved   int
	Attempts int
	Hints    int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendTask(ctx context.Context, data TaskEventData) error
	AppendAttempt(ctx context.Context, data AttemptEventData) error
	AppendHint(ctx context.Context, data HintEventData) error
	AppendSession(ctx context.Context, data SessionEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentTasks returns tasks newest first.
	RecentTasks(ctx context.Context, opts QueryOpts) ([]TaskRecord, error)

	// ModeStats returns per-mode totals ordered by mode.
	ModeStats(ctx context.Context) ([]ModeStats, error)

	// QueryLLMEvents returns LLM events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
