// Package practice is the main trainer screen: one task at a time with
// live feedback on every edit of the answer fields.
package practice

import (
	"context"
	"math/rand/v2"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/fractiz/internal/checker"
	"github.com/abhisek/fractiz/internal/config"
	"github.com/abhisek/fractiz/internal/logger"
	"github.com/abhisek/fractiz/internal/router"
	"github.com/abhisek/fractiz/internal/screen"
	"github.com/abhisek/fractiz/internal/screens/solution"
	"github.com/abhisek/fractiz/internal/screens/summary"
	"github.com/abhisek/fractiz/internal/session"
	"github.com/abhisek/fractiz/internal/store"
	"github.com/abhisek/fractiz/internal/taskgen"
	"github.com/abhisek/fractiz/internal/tutor"
	"github.com/abhisek/fractiz/internal/ui/components"
)

// hintTimeout bounds one tutor request including retries.
const hintTimeout = 45 * time.Second

// Deps are the services a practice session uses. Repo and Tutor may be
// nil: nothing is persisted and only builtin hints are shown.
type Deps struct {
	Profile *config.Profile
	Repo    store.EventRepo
	Tutor   *tutor.Service
	Log     *logger.Logger

	// Source seeds the task generator; nil seeds from the clock.
	Source rand.Source
}

// Screen implements screen.Screen for a practice session.
type Screen struct {
	state *session.SessionState
	gen   *taskgen.Generator
	repo  store.EventRepo
	tutor *tutor.Service
	log   *logger.Logger

	fields []session.Field
	inputs []components.NumberField
	focus  int

	hint        string
	hintSource  string
	hintPending bool
	errMsg      string

	// logged is the last feedback state written per task, so only state
	// changes become attempt events.
	logged map[string]checker.State
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.Navigable       = (*Screen)(nil)
)

func New(preset taskgen.Preset, deps Deps) *Screen {
	profile := deps.Profile
	if profile == nil {
		profile = config.Builtin()
	}
	log := deps.Log
	if log == nil {
		log = logger.NewNop()
	}
	src := deps.Source
	if src == nil {
		seed := uint64(time.Now().UnixNano())
		src = rand.NewPCG(seed, seed>>1)
	}
	svc := deps.Tutor
	if svc == nil {
		svc = tutor.NewService(nil, tutor.DefaultConfig(), log)
	}

	id := uuid.NewString()
	return &Screen{
		state:  session.NewSessionState(id, preset, profile.Policy(preset), profile.Solution, profile.HistorySize),
		gen:    taskgen.New(src),
		repo:   deps.Repo,
		tutor:  svc,
		log:    log.With("session_id", id, "preset", preset.Name),
		logged: make(map[string]checker.State),
	}
}

// State exposes the session for the summary and tests.
func (s *Screen) State() *session.SessionState {
	return s.state
}

func (s *Screen) Init() tea.Cmd {
	s.log.Info("session started", "mode", s.state.Preset.Mode)
	start := store.SessionEventData{
		SessionID: s.state.SessionID,
		Action:    "start",
		Preset:    s.state.Preset.Name,
	}
	return tea.Batch(
		s.persist("session_start", func(ctx context.Context, r store.EventRepo) error {
			return r.AppendSession(ctx, start)
		}),
		s.newTask(),
	)
}

func (s *Screen) Title() string {
	return s.state.Preset.Title
}

// CapturesEscape keeps esc for ending the session through the summary.
func (s *Screen) CapturesEscape() bool {
	return true
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case hintReadyMsg:
		return s, s.handleHint(msg)

	case persistedMsg:
		if msg.Err != nil {
			s.log.Error("store write failed", "event", msg.Event, "error", msg.Err)
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	if key == "esc" {
		return s, s.end()
	}
	if s.errMsg != "" {
		if key == "n" {
			s.errMsg = ""
			return s, s.newTask()
		}
		return s, nil
	}

	switch key {
	case "n":
		return s, s.newTask()
	case "[":
		if s.state.Back() {
			s.resetInputs()
		}
		return s, nil
	case "]":
		if s.state.Forward() {
			s.resetInputs()
		}
		return s, nil
	case "s":
		if s.state.Current() == nil {
			return s, nil
		}
		st := s.state
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: solution.New(st)} }
	case "h", "?":
		return s, s.requestHint()
	case "tab", "right":
		s.moveFocus(1)
		return s, nil
	case "shift+tab", "left":
		s.moveFocus(-1)
		return s, nil
	case "+", "=", "up":
		return s, s.adjust(1)
	case "-", "down":
		return s, s.adjust(-1)
	}

	if !components.Accepts(key) || len(s.inputs) == 0 {
		return s, nil
	}
	var (
		cmd     tea.Cmd
		changed bool
	)
	s.inputs[s.focus], cmd, changed = s.inputs[s.focus].Update(msg)
	if !changed {
		return s, cmd
	}
	v, ok := s.inputs[s.focus].Int()
	if !ok {
		return s, cmd
	}
	return s, tea.Batch(cmd, s.set(s.fields[s.focus], v))
}

// newTask generates a task, pushes it onto the history and resets the
// fields.
func (s *Screen) newTask() tea.Cmd {
	preset := s.state.Preset
	task, err := s.gen.Generate(preset.Mode, preset.Config)
	if err != nil {
		s.errMsg = err.Error()
		s.log.Error("task generation failed", "mode", preset.Mode, "attempts", s.gen.Attempts(), "error", err)
		return nil
	}
	e := s.state.Push(task)
	s.logged[task.ID] = e.Feedback.State
	s.resetInputs()
	s.log.Info("task generated", "task_id", task.ID, "mode", task.Mode, "task", task.String(), "attempts", s.gen.Attempts())

	data := store.TaskEventData{
		SessionID:  s.state.SessionID,
		TaskID:     task.ID,
		Mode:       string(task.Mode),
		TaskText:   task.String(),
		OperandA:   task.A.String(),
		Result:     task.Result.String(),
		Multiplier: task.Multiplier,
	}
	if task.Binary() {
		data.OperandB = task.B.String()
	}
	return s.persist("task", func(ctx context.Context, r store.EventRepo) error {
		return r.AppendTask(ctx, data)
	})
}

// resetInputs rebuilds the fields for the current entry.
func (s *Screen) resetInputs() {
	s.hint, s.hintSource, s.hintPending = "", "", false
	e := s.state.Current()
	if e == nil {
		s.fields, s.inputs = nil, nil
		return
	}
	s.fields = session.Fields(e.Task.Mode)
	s.inputs = make([]components.NumberField, len(s.fields))
	s.focus = 0
	for i, f := range s.fields {
		width := 3
		if f == session.FieldWhole1 || f == session.FieldWhole2 {
			width = 2
		}
		s.inputs[i] = components.NewNumberField(s.state.Value(f), width)
		s.inputs[i].Locked = e.Locked
		if e.Task.Binary() && f == session.FieldDen1 {
			s.focus = i
		}
	}
	s.inputs[s.focus].Focus()
}

func (s *Screen) moveFocus(delta int) {
	if len(s.inputs) == 0 {
		return
	}
	s.inputs[s.focus].Blur()
	s.focus = (s.focus + delta + len(s.inputs)) % len(s.inputs)
	s.inputs[s.focus].Focus()
}

func (s *Screen) adjust(delta int) tea.Cmd {
	if len(s.fields) == 0 {
		return nil
	}
	f := s.fields[s.focus]
	return s.set(f, s.state.Value(f)+delta)
}

// set stores a field value, shows the clamped result and records state
// changes.
func (s *Screen) set(f session.Field, v int) tea.Cmd {
	changed := s.state.Set(f, v)
	s.inputs[s.focus].Sync(s.state.Value(f))
	if !changed {
		return nil
	}

	e := s.state.Current()
	if s.logged[e.Task.ID] == e.Feedback.State {
		return nil
	}
	s.logged[e.Task.ID] = e.Feedback.State
	s.hint, s.hintSource = "", ""

	if e.Locked {
		for i := range s.inputs {
			s.inputs[i].Locked = true
		}
		s.log.Info("answer accepted", "task_id", e.Task.ID, "state", e.Feedback.State, "edits", e.Edits, "hints", e.HintsUsed)
	}

	data := store.AttemptEventData{
		SessionID: s.state.SessionID,
		TaskID:    e.Task.ID,
		Mode:      string(e.Task.Mode),
		Answer:    e.Answer.String(),
		State:     string(e.Feedback.State),
		Accepted:  e.Feedback.Accepted,
		Edits:     e.Edits,
	}
	return s.persist("attempt", func(ctx context.Context, r store.EventRepo) error {
		return r.AppendAttempt(ctx, data)
	})
}

func (s *Screen) requestHint() tea.Cmd {
	e := s.state.Current()
	if e == nil || s.hintPending {
		return nil
	}
	s.state.RecordHint()
	s.hintPending = true
	s.log.Info("hint requested", "task_id", e.Task.ID, "state", e.Feedback.State, "llm", s.tutor.LLMEnabled())

	svc := s.tutor
	task, answer, fb := e.Task, e.Answer, e.Feedback
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), hintTimeout)
		defer cancel()
		h, err := svc.Hint(ctx, task, answer, fb)
		return hintReadyMsg{TaskID: task.ID, Mode: task.Mode, State: fb.State, Hint: h, Err: err}
	}
}

func (s *Screen) handleHint(msg hintReadyMsg) tea.Cmd {
	if msg.Err != nil {
		s.log.Warn("tutor hint fell back to builtin", "task_id", msg.TaskID, "error", msg.Err)
	}
	e := s.state.Current()
	if e != nil && e.Task.ID == msg.TaskID {
		s.hintPending = false
		s.hint, s.hintSource = msg.Hint.Text, msg.Hint.Source
	}

	data := store.HintEventData{
		SessionID: s.state.SessionID,
		TaskID:    msg.TaskID,
		Mode:      string(msg.Mode),
		State:     string(msg.State),
		Hint:      msg.Hint.Text,
		Source:    msg.Hint.Source,
	}
	return s.persist("hint", func(ctx context.Context, r store.EventRepo) error {
		return r.AppendHint(ctx, data)
	})
}

// end closes the session and replaces the screen with its summary.
func (s *Screen) end() tea.Cmd {
	sum := session.BuildSummary(s.state)
	s.log.Info("session ended", "tasks", sum.TotalTasks, "solved", sum.TotalSolved, "hints", sum.TotalHints)

	data := store.SessionEventData{
		SessionID:    s.state.SessionID,
		Action:       "end",
		Preset:       s.state.Preset.Name,
		Tasks:        sum.TotalTasks,
		Solved:       sum.TotalSolved,
		Hints:        sum.TotalHints,
		DurationSecs: int(sum.Duration.Seconds()),
	}
	return tea.Batch(
		s.persist("session_end", func(ctx context.Context, r store.EventRepo) error {
			return r.AppendSession(ctx, data)
		}),
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: summary.New(sum)} },
	)
}

// persist runs a store write off the update loop.
func (s *Screen) persist(event string, write func(context.Context, store.EventRepo) error) tea.Cmd {
	if s.repo == nil {
		return nil
	}
	repo := s.repo
	return func() tea.Msg {
		return persistedMsg{Event: event, Err: write(context.Background(), repo)}
	}
}
