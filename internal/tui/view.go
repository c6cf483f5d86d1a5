package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/portfolio/internal/contactform"
)

// View renders exactly one of the form, the success panel or the error panel.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.form.Snapshot()
	sections := []string{m.styles.title.Render("Get In Touch")}

	switch snap.Status.State {
	case contactform.StateSuccess:
		sections = append(sections, m.styles.success.Render(
			"Message sent!\nThank you for reaching out. I'll get back to you soon."),
			m.styles.help.Render("enter: send another message • ctrl+t: theme • esc: quit"))
	case contactform.StateError:
		sections = append(sections, m.styles.failure.Render(
			"Something went wrong\nYour message could not be sent. Please try again later."),
			m.styles.help.Render("enter: try again • ctrl+t: theme • esc: quit"))
	default:
		sections = append(sections, m.formView(snap)...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) formView(snap contactform.Snapshot) []string {
	var out []string
	for idx, f := range fieldOrder {
		var widget string
		if idx < len(m.inputs) {
			widget = m.inputs[idx].View()
		} else {
			widget = m.message.View()
		}
		out = append(out, m.styles.label.Render(f.Label()), widget)
		if msg := snap.Errors.Get(f); msg != "" {
			out = append(out, m.styles.errText.Render(msg))
		}
	}

	switch {
	case snap.Submitting() || m.pending:
		out = append(out, m.styles.button.Render(m.spinner.View()+" Sending..."))
	case m.focus == focusSubmit:
		out = append(out, m.styles.focused.Render("Send Message"))
	default:
		out = append(out, m.styles.button.Render("Send Message"))
	}

	help := []string{"tab: next field", "ctrl+s: send", "ctrl+t: " + m.nextTheme() + " theme", "esc: quit"}
	out = append(out, m.styles.help.Render(strings.Join(help, " • ")))
	return out
}

func (m Model) nextTheme() string {
	if m.styles.dark {
		return "light"
	}
	return "dark"
}
