package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fractiz/internal/config"
	"github.com/abhisek/fractiz/internal/router"
	"github.com/abhisek/fractiz/internal/screen"
	"github.com/abhisek/fractiz/internal/screens/history"
	"github.com/abhisek/fractiz/internal/screens/practice"
	"github.com/abhisek/fractiz/internal/taskgen"
	"github.com/abhisek/fractiz/internal/ui/components"
	"github.com/abhisek/fractiz/internal/ui/theme"
)

const banner = "f r a c t i z"

// HomeScreen is the preset menu.
type HomeScreen struct {
	menu    components.Menu
	profile string
	llm     bool
	errMsg  string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New builds the menu: one entry per preset of the profile, then History
// and Quit.
func New(deps practice.Deps) *HomeScreen {
	profile := deps.Profile
	if profile == nil {
		profile = config.Builtin()
		deps.Profile = profile
	}
	h := &HomeScreen{profile: profile.Name, llm: deps.Tutor.LLMEnabled()}

	var items []components.MenuItem
	for _, p := range taskgen.Presets() {
		preset, err := profile.Preset(p.Name)
		if err != nil {
			h.errMsg = err.Error()
			continue
		}
		items = append(items, components.MenuItem{
			Label:  preset.Title,
			Detail: detail(preset),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: practice.New(preset, deps)}
				}
			},
		})
	}
	items = append(items,
		components.MenuItem{
			Label:    "History",
			Disabled: deps.Repo == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(deps.Repo)}
				}
			},
		},
		components.MenuItem{
			Label:  "Quit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)

	h.menu = components.NewMenu(items)
	return h
}

// detail summarises a preset's difficulty for the menu.
func detail(p taskgen.Preset) string {
	if p.Config.Denominators == taskgen.DenominatorsCoprime {
		return "coprime denominators"
	}
	if p.Mode.Binary() && p.Config.AllowWhole {
		return "with whole parts"
	}
	return ""
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "q" {
		return h, tea.Quit
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	center := func(s string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
	}

	var sections []string
	sections = append(sections, center(theme.Title.Render(banner)))
	sections = append(sections, center(theme.Subtitle.Render(components.StackedMixed(1, 3, 4)+"\n\nAdd, subtract, reduce and convert fractions")))
	sections = append(sections, center(theme.Card.Render(strings.TrimRight(h.menu.View(), "\n"))))

	status := "profile " + h.profile
	if h.llm {
		status += " · tutor hints on"
	}
	sections = append(sections, center(theme.Hint.Render(status)))
	if h.errMsg != "" {
		sections = append(sections, center(theme.Incorrect.Render(h.errMsg)))
	}

	return lipgloss.PlaceVertical(height, lipgloss.Center, strings.Join(sections, "\n\n"))
}

func (h *HomeScreen) Title() string {
	return "Home"
}
