package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/numbernexus/internal/screen"
	"github.com/abhisek/numbernexus/internal/screens/home"
	"github.com/abhisek/numbernexus/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	stack  *screen.Stack
	status layout.Status
	width  int
	height int
}

// newAppModel creates an AppModel rooted at root.
func newAppModel(root screen.Screen) AppModel {
	return AppModel{stack: screen.NewStack(root)}
}

func (m AppModel) Init() tea.Cmd {
	return m.stack.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.StatusMsg:
		m.status = layout.Status(msg)
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.stack.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.stack.Depth() > 1 {
				return m, screen.Pop
			}
			return m, nil
		}
	}

	cmd := m.stack.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the frame: header, active screen and footer.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.stack.Active()
	header := layout.RenderHeader(active.Title(), m.status, m.width)

	hints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	} else if m.stack.Depth() > 1 {
		hints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.stack.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the terminal UI on the home screen and blocks until the
// player quits.
func Run(env screen.Env) error {
	p := tea.NewProgram(newAppModel(home.New(env)))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
