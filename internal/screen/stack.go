package screen

import tea "charm.land/bubbletea/v2"

// PushMsg requests a new screen on top of the stack.
type PushMsg struct {
	Screen Screen
}

// PopMsg requests the active screen be removed.
type PopMsg struct{}

// ReplaceMsg swaps the active screen without growing the stack.
type ReplaceMsg struct {
	Screen Screen
}

// Push returns a command that pushes s.
func Push(s Screen) tea.Cmd {
	return func() tea.Msg { return PushMsg{Screen: s} }
}

// Pop returns a command that pops the active screen.
func Pop() tea.Msg {
	return PopMsg{}
}

// Stack manages the screens of the app. The bottom screen is never popped.
type Stack struct {
	screens []Screen
}

// NewStack creates a Stack with the given root screen.
func NewStack(root Screen) *Stack {
	return &Stack{screens: []Screen{root}}
}

// Push adds s on top of the stack and calls its Init.
func (st *Stack) Push(s Screen) tea.Cmd {
	st.screens = append(st.screens, s)
	return s.Init()
}

// Pop removes the top screen and resumes the one below it. No-op at the
// root.
func (st *Stack) Pop() tea.Cmd {
	if len(st.screens) <= 1 {
		return nil
	}
	st.screens = st.screens[:len(st.screens)-1]
	if r, ok := st.Active().(Resumer); ok {
		return r.Resume()
	}
	return nil
}

// Replace swaps the top screen for s and calls its Init.
func (st *Stack) Replace(s Screen) tea.Cmd {
	st.screens[len(st.screens)-1] = s
	return s.Init()
}

// Active returns the top screen.
func (st *Stack) Active() Screen {
	return st.screens[len(st.screens)-1]
}

// Depth returns the number of screens on the stack.
func (st *Stack) Depth() int {
	return len(st.screens)
}

// Update handles navigation messages and forwards everything else to the
// active screen.
func (st *Stack) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushMsg:
		return st.Push(msg.Screen)
	case PopMsg:
		return st.Pop()
	case ReplaceMsg:
		return st.Replace(msg.Screen)
	}

	updated, cmd := st.Active().Update(msg)
	st.screens[len(st.screens)-1] = updated
	return cmd
}

// View renders the active screen.
func (st *Stack) View(width, height int) string {
	return st.Active().View(width, height)
}
