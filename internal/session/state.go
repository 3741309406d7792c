// Package session holds the state of one practice session: the task
// history, the live answer, feedback and tallies. It is owned by a single
// Bubble Tea model and mutated only from its Update method.
package session

import (
	"time"

	"github.com/abhisek/fractiz/internal/checker"
	"github.com/abhisek/fractiz/internal/solution"
	"github.com/abhisek/fractiz/internal/taskgen"
)

// DefaultHistorySize is the number of tasks kept for back/forward
// navigation.
const DefaultHistorySize = 100

// Entry is one task in the history together with everything the learner
// did on it.
type Entry struct {
	Task     *taskgen.Task
	Answer   checker.Answer
	Feedback checker.Feedback

	// Locked is set once the answer was accepted; edits are ignored.
	Locked bool

	// Edits counts answer changes on this task.
	Edits int

	// HintsUsed counts hints shown for this task.
	HintsUsed int

	// Steps is the worked solution, built on first request.
	Steps []solution.Step

	// Revealed is the number of solution steps shown so far.
	Revealed int

	// SolutionViewed is set once the solution screen was opened.
	SolutionViewed bool
}

// ModeResult tallies one mode within a session.
type ModeResult struct {
	Mode      taskgen.Mode
	Attempted int
	Solved    int
}

// SessionState is the single owned state struct of a practice session.
type SessionState struct {
	// SessionID is the UUID for this session.
	SessionID string

	// Preset is the mode and difficulty being practised.
	Preset taskgen.Preset

	// Policy is the checker strictness.
	Policy checker.Policy

	// Options tunes the worked solutions.
	Options solution.Options

	// History holds the tasks of this session, oldest first.
	History []*Entry

	// Cursor is the index of the current entry in History, -1 when empty.
	Cursor int

	// MaxHistory caps len(History).
	MaxHistory int

	// StartTime is when the session began.
	StartTime time.Time

	// TotalTasks is the number of tasks presented.
	TotalTasks int

	// TotalSolved is the number of tasks whose answer was accepted.
	TotalSolved int

	// TotalHints is the number of hints shown.
	TotalHints int

	// PerMode tracks per-mode stats for the summary screen.
	PerMode map[taskgen.Mode]*ModeResult

	// modeOrder remembers the order modes first appeared in.
	modeOrder []taskgen.Mode
}

// NewSessionState creates an empty session. historySize <= 0 selects
// DefaultHistorySize.
func NewSessionState(sessionID string, preset taskgen.Preset, policy checker.Policy, opts solution.Options, historySize int) *SessionState {
	if historySize <= 0 {
		historySize = DefaultHistorySize
	}
	return &SessionState{
		SessionID:  sessionID,
		Preset:     preset,
		Policy:     policy,
		Options:    opts,
		Cursor:     -1,
		MaxHistory: historySize,
		StartTime:  time.Now(),
		PerMode:    make(map[taskgen.Mode]*ModeResult),
	}
}

// Current returns the entry under the cursor, or nil before the first task.
func (s *SessionState) Current() *Entry {
	if s.Cursor < 0 || s.Cursor >= len(s.History) {
		return nil
	}
	return s.History[s.Cursor]
}

// CanGoBack reports whether an older task exists.
func (s *SessionState) CanGoBack() bool {
	return s.Cursor > 0
}

// CanGoForward reports whether a newer task exists.
func (s *SessionState) CanGoForward() bool {
	return s.Cursor >= 0 && s.Cursor < len(s.History)-1
}

// Position returns the 1-based cursor position and the history length.
func (s *SessionState) Position() (int, int) {
	return s.Cursor + 1, len(s.History)
}

func (s *SessionState) modeResult(m taskgen.Mode) *ModeResult {
	r, ok := s.PerMode[m]
	if !ok {
		r = &ModeResult{Mode: m}
		s.PerMode[m] = r
		s.modeOrder = append(s.modeOrder, m)
	}
	return r
}
