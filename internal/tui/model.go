// Package tui is a terminal front end for the contact form. It drives the same
// contactform.Workflow the site uses and follows the saved theme preference.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zachkp/portfolio/internal/contactform"
	"github.com/Zachkp/portfolio/internal/theme"
)

// focusSubmit is the focus index of the send button, after the inputs.
const focusSubmit = int(contactform.Message) + 1

var fieldOrder = contactform.AllFields

// SubmitDoneMsg carries the outcome of a submission started by the model.
type SubmitDoneMsg struct {
	Err error
}

// Model is the Bubbletea state for the contact form screen.
type Model struct {
	ctx   context.Context
	form  *contactform.Workflow
	theme *theme.Manager

	inputs  []textinput.Model
	message textarea.Model
	spinner spinner.Model
	focus   int
	styles  styles

	// pending is set from the moment a submit is issued until its result arrives.
	pending  bool
	quitting bool
	width    int
}

// New builds the form screen. ctx is passed to every submission.
func New(ctx context.Context, form *contactform.Workflow, mgr *theme.Manager) Model {
	m := Model{
		ctx:     ctx,
		form:    form,
		theme:   mgr,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		styles:  newStyles(mgr.IsDark()),
	}

	for _, f := range []contactform.Field{contactform.FirstName, contactform.LastName, contactform.Email} {
		in := textinput.New()
		in.Placeholder = f.Label()
		in.CharLimit = 254
		in.Prompt = "› "
		m.inputs = append(m.inputs, in)
	}

	m.message = textarea.New()
	m.message.Placeholder = "What would you like to talk about?"
	m.message.ShowLineNumbers = false
	m.message.SetHeight(5)
	m.message.CharLimit = 5000

	m.syncFromForm()
	m.setFocus(0)
	return m
}

// Init starts the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Snapshot exposes the workflow state the view renders from.
func (m Model) Snapshot() contactform.Snapshot {
	return m.form.Snapshot()
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

func (m *Model) setFocus(i int) {
	m.focus = (i + focusSubmit + 1) % (focusSubmit + 1)
	for idx := range m.inputs {
		if idx == m.focus {
			m.inputs[idx].Focus()
		} else {
			m.inputs[idx].Blur()
		}
	}
	if m.focus == int(contactform.Message) {
		m.message.Focus()
	} else {
		m.message.Blur()
	}
}

// syncFromForm copies the workflow's field values into the widgets.
func (m *Model) syncFromForm() {
	fields := m.form.Fields()
	for idx := range m.inputs {
		m.inputs[idx].SetValue(fields.Get(fieldOrder[idx]))
	}
	m.message.SetValue(fields.Message)
}

func (m Model) submit() tea.Cmd {
	form, ctx := m.form, m.ctx
	return func() tea.Msg {
		return SubmitDoneMsg{Err: form.Submit(ctx)}
	}
}
