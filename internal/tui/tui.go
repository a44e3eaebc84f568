// Package tui is the interactive list. Every action goes straight to the
// store, so there is nothing to save on quit.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/ui"
)

// listItem adapts a Todo to bubbles/list.Item.
type listItem struct {
	todo model.Todo
	due  string
}

func (i listItem) Title() string {
	box := boxUnchecked
	if i.todo.Completed {
		box = boxChecked
	}
	return fmt.Sprintf("%s %s", box, i.todo.Title)
}
func (i listItem) Description() string { return i.todo.Description }
func (i listItem) FilterValue() string { return i.todo.Title + " " + i.todo.Description }

// Custom delegate to control how items render (single line)
type itemDelegate struct {
	now func() time.Time
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	boxStyled := mutedStyle.Render(boxUnchecked)
	textStyled := it.todo.Title
	if it.todo.Completed {
		boxStyled = successStyle.Render(boxChecked)
		textStyled = doneStyle.Render(textStyled)
	}
	line := fmt.Sprintf("%s %s", boxStyled, textStyled)
	if it.due != "" {
		dueStyle := mutedStyle
		if it.todo.Overdue(d.now()) {
			dueStyle = errorStyle
		}
		line += "  " + dueStyle.Render(it.due)
	}
	if it.todo.Description != "" {
		line += "  " + helpStyle.Render(firstLine(it.todo.Description))
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + "…"
	}
	return s
}

type Option func(*Model)

// WithClock fixes "now" for due-date labels and form defaults.
func WithClock(now func() time.Time) Option { return func(m *Model) { m.now = now } }

// WithLocation sets the zone bare dates typed in the form belong to.
func WithLocation(loc *time.Location) Option { return func(m *Model) { m.loc = loc } }

type Model struct {
	store store.TodoStore
	list  list.Model
	form  *form

	now    func() time.Time
	loc    *time.Location
	width  int
	height int
}

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	toggleBind = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	deleteBind = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
)

// New builds the model over s.
func New(s store.TodoStore, opts ...Option) Model {
	m := Model{store: s, now: time.Now, loc: time.Local, width: 80, height: 24}
	for _, o := range opts {
		o(&m)
	}

	l := list.New(nil, itemDelegate{now: m.now}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")
	extra := func() []key.Binding { return []key.Binding{toggleBind, addBind, editBind, deleteBind} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	m.list = l
	m.resize()
	m.refresh()
	return m
}

// Run starts the program and blocks until the user quits.
func Run(s store.TodoStore, opts ...Option) error {
	_, err := tea.NewProgram(New(s, opts...), tea.WithAltScreen()).Run()
	return err
}

// refresh rebuilds list items and the header from the store.
func (m *Model) refresh() tea.Cmd {
	todos := m.store.Todos()
	now := m.now()
	items := make([]list.Item, 0, len(todos))
	for _, td := range todos {
		items = append(items, listItem{todo: td, due: ui.DueLabel(td.DueDate, now)})
	}
	cmd := m.list.SetItems(items)
	if n := len(m.list.VisibleItems()); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}

	dn, pn := ui.Stats(todos)
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), dn,
		pendingStyle.Render("•"), pn,
		accentStyle.Render("Total"), len(todos),
	)
	return cmd
}

func (m Model) selected() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.todo, true
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}
	if m.form != nil {
		return m.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch km.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.list.FilterState() == list.Unfiltered {
			return m, tea.Quit
		}
	case " ", "space":
		if td, ok := m.selected(); ok {
			m.store.Toggle(td.ID)
			cmd := m.refresh()
			return m, cmd
		}
		return m, nil
	case "d":
		if td, ok := m.selected(); ok {
			m.store.Remove(td.ID)
			cmd := m.refresh()
			return m, cmd
		}
		return m, nil
	case "a":
		m.form = newForm(m.loc, m.now())
		m.resize()
		return m, nil
	case "e":
		if td, ok := m.selected(); ok {
			m.form = editForm(td, m.loc, m.now())
			m.resize()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.form.update(msg)
	}
	switch km.String() {
	case "esc":
		m.form = nil
		m.resize()
		return m, nil
	case "tab", "down":
		return m, m.form.setFocus(m.form.focus + 1)
	case "shift+tab", "up":
		return m, m.form.setFocus(m.form.focus - 1)
	case "enter", "ctrl+s":
		if km.String() == "enter" && m.form.focus < fieldDue {
			return m, m.form.setFocus(m.form.focus + 1)
		}
		return m.submit()
	}
	return m, m.form.update(msg)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.form.editID != "" {
		p, err := m.form.patch()
		if err != nil {
			m.form.err = err.Error()
			return m, nil
		}
		if !p.Empty() {
			m.store.Edit(m.form.editID, p)
		}
	} else {
		title, desc, due, err := m.form.values()
		if err != nil {
			m.form.err = err.Error()
			return m, nil
		}
		m.store.Add(model.Draft{Title: title, Description: desc, DueDate: due})
	}
	m.form = nil
	m.resize()
	cmd := m.refresh()
	return m, cmd
}

func (m *Model) resize() {
	listHeight := m.height - 4
	if m.form != nil {
		listHeight -= fieldCount + 4
	}
	if listHeight < 3 {
		listHeight = 3
	}
	m.list.SetSize(m.width-4, listHeight)
}

func (m Model) View() string {
	content := m.list.View()
	if m.form != nil {
		content += "\n" + panelString(m.form.view())
	}
	return panelString(content)
}
