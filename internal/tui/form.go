package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/model"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldDue
	fieldCount
)

var errEmptyTitle = errors.New("title cannot be empty")

// form edits the three user-owned fields of a todo. editID is empty when
// the form creates a new todo; orig holds the text an edit form opened with.
type form struct {
	editID string
	inputs [fieldCount]textinput.Model
	orig   [fieldCount]string
	focus  int
	err    string
	loc    *time.Location
}

func newForm(loc *time.Location, now time.Time) *form {
	f := &form{loc: loc}
	labels := [fieldCount]string{"New item title...", "Description (optional)", "YYYY-MM-DD, today, tomorrow"}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = labels[i]
		ti.CharLimit = 200
		f.inputs[i] = ti
	}
	f.inputs[fieldDescription].CharLimit = 1000
	f.inputs[fieldDue].SetValue(now.In(loc).Format(model.DateOnly))
	f.inputs[fieldTitle].Focus()
	return f
}

func editForm(td model.Todo, loc *time.Location, now time.Time) *form {
	f := newForm(loc, now)
	f.editID = td.ID
	f.inputs[fieldTitle].SetValue(td.Title)
	f.inputs[fieldTitle].CursorEnd()
	f.inputs[fieldDescription].SetValue(td.Description)
	due := ""
	if !td.DueDate.IsZero() {
		local := td.DueDate.In(loc)
		due = local.Format(model.DateOnly)
		if local.Hour() != 0 || local.Minute() != 0 {
			due = local.Format("2006-01-02 15:04")
		}
	}
	f.inputs[fieldDue].SetValue(due)
	for i, in := range f.inputs {
		f.orig[i] = in.Value()
	}
	return f
}

func (f *form) setFocus(i int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (i + fieldCount) % fieldCount
	return f.inputs[f.focus].Focus()
}

// values validates the inputs. The title is required here; the store
// accepts whatever it is given.
func (f *form) values() (title, desc string, due time.Time, err error) {
	title = strings.TrimSpace(f.inputs[fieldTitle].Value())
	if title == "" {
		return "", "", time.Time{}, errEmptyTitle
	}
	desc = strings.TrimSpace(f.inputs[fieldDescription].Value())
	due, err = model.ParseUserDate(f.inputs[fieldDue].Value(), f.loc)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return title, desc, due, nil
}

// patch returns the fields whose text differs from what the form opened
// with. Untouched fields keep their stored value exactly.
func (f *form) patch() (model.Patch, error) {
	title, desc, due, err := f.values()
	if err != nil {
		return model.Patch{}, err
	}
	var p model.Patch
	if f.changed(fieldTitle) {
		p.Title = &title
	}
	if f.changed(fieldDescription) {
		p.Description = &desc
	}
	if f.changed(fieldDue) {
		p.DueDate = &due
	}
	return p, nil
}

func (f *form) changed(i int) bool { return f.inputs[i].Value() != f.orig[i] }

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) view() string {
	heading := "Add new item"
	if f.editID != "" {
		heading = "Edit item"
	}
	if f.err != "" {
		heading += " - " + errorStyle.Render(f.err)
	}
	names := [fieldCount]string{"Title", "Description", "Due"}
	lines := []string{heading}
	for i, in := range f.inputs {
		lines = append(lines, labelStyle.Render(names[i])+in.View())
	}
	lines = append(lines, helpStyle.Render("tab next • ctrl+s save • esc cancel"))
	return strings.Join(lines, "\n")
}
