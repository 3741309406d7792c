package practice

import (
	"github.com/abhisek/fractiz/internal/checker"
	"github.com/abhisek/fractiz/internal/taskgen"
	"github.com/abhisek/fractiz/internal/tutor"
)

// hintReadyMsg carries a hint back from the tutor.
type hintReadyMsg struct {
	TaskID string
	Mode   taskgen.Mode
	State  checker.State
	Hint   tutor.Hint
	Err    error
}

// persistedMsg reports the outcome of an event write.
type persistedMsg struct {
	Event string
	Err   error
}
