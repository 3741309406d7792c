package session

import "time"

// SessionSummary holds the data displayed on the summary screen.
type SessionSummary struct {
	Duration    time.Duration
	TotalTasks  int
	TotalSolved int
	TotalHints  int
	Accuracy    float64
	ModeResults []ModeResult
}

// BuildSummary creates a SessionSummary from the current session state.
func BuildSummary(state *SessionState) *SessionSummary {
	results := make([]ModeResult, 0, len(state.modeOrder))
	for _, m := range state.modeOrder {
		results = append(results, *state.PerMode[m])
	}

	var accuracy float64
	if state.TotalTasks > 0 {
		accuracy = float64(state.TotalSolved) / float64(state.TotalTasks)
	}

	return &SessionSummary{
		Duration:    time.Since(state.StartTime),
		TotalTasks:  state.TotalTasks,
		TotalSolved: state.TotalSolved,
		TotalHints:  state.TotalHints,
		Accuracy:    accuracy,
		ModeResults: results,
	}
}
