package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lmoreno/mesa/internal/model"
	"github.com/lmoreno/mesa/internal/ui"
)

// form is the inline multi-field create/edit bar shown under the list.
// Tab cycles fields, enter submits, esc cancels. On a validation
// failure the field contents stay put and the notice is shown inline.
type form struct {
	target tab
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
	errMsg string
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	return ti
}

func (m Model) newForm(t tab) *form {
	f := &form{target: t}
	switch t {
	case tabMenu:
		f.title = "Add dish"
		f.labels = []string{"name", "price", "category", "image"}
		f.inputs = []textinput.Model{
			newInput("Paella..."), newInput("12.50"),
			newInput("Arroces"), newInput("https:// (optional)"),
		}
	case tabReservations:
		f.title = "Add reservation"
		f.labels = []string{"name", "date", "guests"}
		f.inputs = []textinput.Model{
			newInput("Name..."), newInput("2026-09-01"), newInput("2"),
		}
	case tabReviews:
		f.title = "Add review"
		f.labels = []string{"name", "text"}
		f.inputs = []textinput.Model{
			newInput("Name..."), newInput("How was it?"),
		}
	default:
		f.title = "Contact profile"
		f.labels = []string{"name", "email"}
		f.inputs = []textinput.Model{
			newInput("Name..."), newInput("name@example.com"),
		}
		// Editing starts from the current profile.
		if profile, ok := m.app.Contact.Get(); ok {
			f.inputs[0].SetValue(profile.Name)
			f.inputs[1].SetValue(profile.Email)
		}
	}
	f.inputs[0].Focus()
	return f
}

func (f *form) values() []string {
	vals := make([]string, len(f.inputs))
	for i := range f.inputs {
		vals[i] = f.inputs[i].Value()
	}
	return vals
}

func (f *form) next(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) height() int { return len(f.inputs) + 3 }

func (f *form) view() string {
	t := ui.Current()
	title := f.title
	if f.errMsg != "" {
		title += "  " + t.Error.Render(f.errMsg)
	}
	lines := []string{title}
	for i := range f.inputs {
		label := t.Muted.Render(padLabel(f.labels[i]))
		lines = append(lines, label+" "+f.inputs[i].View())
	}
	lines = append(lines, t.Help.Render("enter save · tab next field · esc cancel"))
	return ui.Panel(lines)
}

func padLabel(s string) string {
	const w = 9
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}

// updateForm handles all input while a form is open.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	f := m.form
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.form = nil
			return m, nil
		case "tab", "down":
			f.next(1)
			return m, nil
		case "shift+tab", "up":
			f.next(-1)
			return m, nil
		case "enter":
			return m.submitForm()
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return m, cmd
}

// submitForm routes the form fields to the right repository. Success
// closes the form and re-renders; failure keeps the form contents and
// shows the first unmet condition.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	f := m.form
	v := f.values()
	var err error
	switch f.target {
	case tabMenu:
		_, err = m.app.Menu.Create(model.ParseMenuItem(v[0], v[1], v[2], v[3]))
	case tabReservations:
		_, err = m.app.Reservations.Create(model.ParseReservation(v[0], v[1], v[2]))
	case tabReviews:
		_, err = m.app.Reviews.Create(model.ParseReview(v[0], v[1]))
	default:
		err = m.app.Contact.Save(model.ParseContactProfile(v[0], v[1]))
	}
	if err != nil {
		f.errMsg = err.Error()
		return m, nil
	}
	m.form = nil
	m.refresh(f.target)
	switch {
	case m.noticeFor(f.target) != "":
		m.status = m.noticeFor(f.target)
	case f.target == tabContact:
		m.status = "message sent, thanks for getting in touch"
	default:
		m.status = "added"
	}
	return m, nil
}
