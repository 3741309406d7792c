package components

import (
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fractiz/internal/ui/theme"
)

// NumberField is a small digits-only input for one answer control. The
// textinput is the edit buffer; the field draws itself so it lines up in
// a stacked fraction.
type NumberField struct {
	Model  textinput.Model
	Width  int
	Locked bool
}

// NewNumberField creates a blurred field holding v.
func NewNumberField(v, width int) NumberField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = width
	ti.SetVirtualCursor(false)
	ti.SetValue(strconv.Itoa(v))
	return NumberField{Model: ti, Width: width}
}

// Focus focuses the buffer. The cursor is never drawn, so the blink
// command is dropped.
func (f *NumberField) Focus() {
	_ = f.Model.Focus()
}

func (f *NumberField) Blur() {
	f.Model.Blur()
}

func (f NumberField) Focused() bool {
	return f.Model.Focused()
}

// Accepts reports whether the key edits a field.
func Accepts(key string) bool {
	if key == "backspace" {
		return true
	}
	return len(key) == 1 && key[0] >= '0' && key[0] <= '9'
}

// Update feeds an editing key to the field and reports whether the text
// changed.
func (f NumberField) Update(msg tea.Msg) (NumberField, tea.Cmd, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || f.Locked || !Accepts(kmsg.String()) {
		return f, nil, false
	}
	before := f.Model.Value()
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd, f.Model.Value() != before
}

// Int parses the field. ok is false while the field is empty.
func (f NumberField) Int() (int, bool) {
	n, err := strconv.Atoi(f.Model.Value())
	if err != nil {
		return 0, false
	}
	return n, true
}

// Sync overwrites the text with v unless it already reads as v.
func (f *NumberField) Sync(v int) {
	if n, ok := f.Int(); ok && n == v {
		return
	}
	f.Model.SetValue(strconv.Itoa(v))
	f.Model.CursorEnd()
}

func (f NumberField) View() string {
	text := f.Model.Value()
	for len(text) < f.Width {
		text = " " + text
	}
	text = " " + text + " "
	switch {
	case f.Locked:
		return theme.FieldLocked.Render(text)
	case f.Focused():
		return theme.FieldFocused.Render(text)
	default:
		return theme.FieldBlurred.Render(text)
	}
}
