package app

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type promptKind int

const (
	promptRepeat promptKind = iota
	promptDelay
)

// prompt is the one-line input for typing a repeat count or a delay.
type prompt struct {
	kind  promptKind
	input textinput.Model
}

func (m *Model) openPrompt(kind promptKind) tea.Cmd {
	in := textinput.New()
	in.CharLimit = 16
	switch kind {
	case promptRepeat:
		in.Prompt = "repeat count: "
		in.Placeholder = strconv.Itoa(m.status.RepeatTarget)
	case promptDelay:
		in.Prompt = "delay (s): "
		in.Placeholder = strconv.FormatFloat(m.status.Shift.Seconds(), 'f', 1, 64)
	}
	in.Focus()
	m.prompt = &prompt{kind: kind, input: in}
	return textinput.Blink
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompt = nil
		return m, nil
	case tea.KeyEnter:
		p := m.prompt
		m.prompt = nil
		m.submitPrompt(p.kind, p.input.Value())
		m.refresh()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	p := *m.prompt
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	m.prompt = &p
	return m, cmd
}

// submitPrompt applies typed input. Invalid input falls back to the default
// value; the warning arrives through the subscription.
func (m *Model) submitPrompt(kind promptKind, value string) {
	var err error
	switch kind {
	case promptRepeat:
		err = m.svc.SetRepeatTargetText(value)
	case promptDelay:
		err = m.svc.SetTimeShiftText(value)
	}
	if err != nil {
		m.opts.Log.Debugw("invalid prompt input", "value", value, "error", err)
	}
}
