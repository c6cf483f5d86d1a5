package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zachkp/portfolio/internal/contactform"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.message.SetWidth(max(20, min(msg.Width-4, 72)))
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case SubmitDoneMsg:
		m.pending = false
		var verr *contactform.ValidationError
		if errors.As(msg.Err, &verr) {
			m.setFocus(firstInvalid(verr.Errors))
		}
		m.syncFromForm()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyCtrlT:
		m.styles = newStyles(m.theme.Toggle())
		return m, nil
	}

	if m.pending {
		return m, nil
	}

	if m.form.Status().Terminal() {
		if msg.Type == tea.KeyEnter {
			if err := m.form.Reset(); err == nil {
				m.syncFromForm()
				m.setFocus(0)
			}
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyTab:
		m.setFocus(m.focus + 1)
		return m, nil
	case tea.KeyShiftTab:
		m.setFocus(m.focus - 1)
		return m, nil
	case tea.KeyCtrlS:
		m.pending = true
		return m, m.submit()
	case tea.KeyEnter:
		if m.focus == focusSubmit {
			m.pending = true
			return m, m.submit()
		}
		if m.focus < len(m.inputs) {
			m.setFocus(m.focus + 1)
			return m, nil
		}
	}

	return m.updateFocused(msg)
}

// updateFocused forwards a key to the focused widget and copies an edited
// value into the workflow, which clears that field's error.
func (m Model) updateFocused(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.focus < len(m.inputs):
		field := fieldOrder[m.focus]
		before := m.inputs[m.focus].Value()
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		if after := m.inputs[m.focus].Value(); after != before {
			m.form.Update(field, after)
		}
	case m.focus == int(contactform.Message):
		before := m.message.Value()
		m.message, cmd = m.message.Update(msg)
		if after := m.message.Value(); after != before {
			m.form.Update(contactform.Message, after)
		}
	}
	return m, cmd
}

func firstInvalid(errs contactform.FieldErrors) int {
	for idx, f := range fieldOrder {
		if errs.Get(f) != "" {
			return idx
		}
	}
	return 0
}
