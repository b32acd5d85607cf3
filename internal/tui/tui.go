// Package tui is the interactive front of mesa: four tabs (menu,
// reservations, reviews, contact) over the shared application state.
// The bubbletea Update loop is the single dispatcher: every user
// action becomes a repository mutation followed by a re-render, and
// every mutation is persisted by the repository before the next frame.
package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lmoreno/mesa/internal/app"
	"github.com/lmoreno/mesa/internal/ui"
	"github.com/lmoreno/mesa/internal/view"
)

type tab int

const (
	tabMenu tab = iota
	tabReservations
	tabReviews
	tabContact
	tabCount
)

func (t tab) title() string {
	switch t {
	case tabMenu:
		return "Menu"
	case tabReservations:
		return "Reservations"
	case tabReviews:
		return "Reviews"
	default:
		return "Contact"
	}
}

// entry adapts a view node to bubbles/list.Item.
type entry struct{ node view.Node }

func (e entry) Title() string       { return e.node.Text }
func (e entry) Description() string { return "" }
func (e entry) FilterValue() string { return e.node.Name + " " + e.node.Category }

// Single-line delegate: one record, one row.
type entryDelegate struct{}

func (d entryDelegate) Height() int                               { return 1 }
func (d entryDelegate) Spacing() int                              { return 0 }
func (d entryDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d entryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	e, _ := item.(entry)
	t := ui.Current()
	prefix := "  "
	line := e.node.Text
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

// collectionLoadedMsg reports one collection's initial load. Loads run
// as commands so a slow menu seed fetch suspends only the menu tab.
type collectionLoadedMsg struct {
	tab    tab
	notice string
}

type Model struct {
	app *app.App

	active  tab
	lists   [3]list.Model // menu, reservations, reviews
	loaded  [tabCount]bool
	menuCat string // active exact-match category filter, "" = all

	form     *form
	status   string // footer notice, cleared on next action
	width    int
	height   int
	quitting bool
}

// New builds the TUI over already-constructed application state.
func New(a *app.App) Model {
	m := Model{app: a}
	for i := range m.lists {
		l := list.New(nil, entryDelegate{}, 0, 0)
		l.SetShowHelp(true)
		l.SetShowPagination(true)
		l.SetShowStatusBar(true)
		l.SetFilteringEnabled(true)
		l.Styles.Title = ui.Current().Title
		l.Styles.HelpStyle = ui.Current().Help
		l.Styles.PaginationStyle = ui.Current().Help
		l.FilterInput.Prompt = "/ "
		m.lists[i] = l
	}
	m.lists[tabMenu].SetStatusBarItemName("dish", "dishes")
	m.lists[tabReservations].SetStatusBarItemName("reservation", "reservations")
	m.lists[tabReviews].SetStatusBarItemName("review", "reviews")

	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	delBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	catBind := key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category"))
	tabBind := key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab"))
	extra := func() []key.Binding { return []key.Binding{addBind, delBind, catBind, tabBind} }
	for i := range m.lists {
		m.lists[i].AdditionalShortHelpKeys = extra
		m.lists[i].AdditionalFullHelpKeys = extra
	}
	return m
}

// Init kicks off one load command per collection. The contact profile
// load is local-only and cheap, so it rides along with reviews.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadCmd(tabMenu),
		m.loadCmd(tabReservations),
		m.loadCmd(tabReviews),
		m.loadCmd(tabContact),
	)
}

func (m Model) loadCmd(t tab) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var notice string
		switch t {
		case tabMenu:
			m.app.Menu.Load(ctx)
			notice = m.app.Menu.Notice()
		case tabReservations:
			m.app.Reservations.Load(ctx)
		case tabReviews:
			m.app.Reviews.Load(ctx)
		case tabContact:
			m.app.Contact.Load()
		}
		return collectionLoadedMsg{tab: t, notice: notice}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case collectionLoadedMsg:
		m.loaded[msg.tab] = true
		if msg.notice != "" {
			m.status = msg.notice
		}
		m.refresh(msg.tab)
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// While the list filter prompt is open, keys belong to it.
		if m.active != tabContact && m.lists[m.active].FilterState() == list.Filtering {
			return m.updateList(msg)
		}
		switch keyMsg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "tab", "right":
			m.active = (m.active + 1) % tabCount
			return m, nil
		case "shift+tab", "left":
			m.active = (m.active + tabCount - 1) % tabCount
			return m, nil
		case "1", "2", "3", "4":
			m.active = tab(int(keyMsg.String()[0] - '1'))
			return m, nil
		case "a":
			if !m.loaded[m.active] {
				return m, nil
			}
			m.status = ""
			m.form = m.newForm(m.active)
			return m, nil
		case "d":
			m.status = ""
			m.deleteSelected()
			return m, nil
		case "c":
			if m.active == tabMenu {
				m.cycleCategory()
			}
			return m, nil
		}
	}
	return m.updateList(msg)
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.active == tabContact {
		return m, nil
	}
	var cmd tea.Cmd
	m.lists[m.active], cmd = m.lists[m.active].Update(msg)
	return m, cmd
}

// deleteSelected removes the record under the cursor of the active
// list. A delete on the contact tab or an empty list is ignored.
func (m *Model) deleteSelected() {
	if m.active == tabContact {
		return
	}
	l := &m.lists[m.active]
	it, ok := l.SelectedItem().(entry)
	if !ok || it.node.ID == "" {
		return
	}
	var removed int
	switch m.active {
	case tabMenu:
		removed = m.app.Menu.Remove(it.node.ID)
	case tabReservations:
		removed = m.app.Reservations.Remove(it.node.ID)
	case tabReviews:
		removed = m.app.Reviews.Remove(it.node.ID)
	}
	if removed > 0 {
		m.refresh(m.active)
		if notice := m.noticeFor(m.active); notice != "" {
			m.status = notice
		} else {
			m.status = "removed"
		}
	}
}

// noticeFor reports the active repository's pending warning, if any. A
// mutation that could not be written to disk still stands in memory,
// and the warning has to reach the footer rather than only the log.
func (m Model) noticeFor(t tab) string {
	switch t {
	case tabMenu:
		return m.app.Menu.Notice()
	case tabReservations:
		return m.app.Reservations.Notice()
	case tabReviews:
		return m.app.Reviews.Notice()
	default:
		return m.app.Contact.Notice()
	}
}

// cycleCategory advances the menu's exact-match category filter: all
// dishes, then each category in collection order, then back to all.
func (m *Model) cycleCategory() {
	cats := []string{""}
	seen := map[string]bool{}
	for _, it := range m.app.Menu.Items() {
		if !seen[it.Category] {
			seen[it.Category] = true
			cats = append(cats, it.Category)
		}
	}
	for i, c := range cats {
		if c == m.menuCat {
			m.menuCat = cats[(i+1)%len(cats)]
			m.refresh(tabMenu)
			return
		}
	}
	m.menuCat = ""
	m.refresh(tabMenu)
}

// refresh rebuilds one tab's list from its repository. Rendering is a
// wholesale replacement: SetItems drops every previous node.
func (m *Model) refresh(t tab) {
	var nodes []view.Node
	switch t {
	case tabMenu:
		nodes = view.Render(m.app.Menu.Items(), view.Filter{Category: m.menuCat}, view.MenuNode, "")
	case tabReservations:
		nodes = view.Render(m.app.Reservations.Items(), view.Filter{}, view.ReservationNode, "")
	case tabReviews:
		nodes = view.Render(m.app.Reviews.Items(), view.Filter{}, view.ReviewNode, "")
	default:
		return
	}
	items := make([]list.Item, 0, len(nodes))
	for _, n := range nodes {
		if n.ID == "" {
			continue // placeholder; the list renders its own empty state
		}
		items = append(items, entry{node: n})
	}
	m.lists[t].SetItems(items)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	w, h := m.width, m.height
	if w == 0 {
		w, h = 80, 24
	}

	header := m.headerView()
	footer := m.footerView()
	contentHeight := h - lipgloss.Height(header) - lipgloss.Height(footer) - 2
	if m.form != nil {
		contentHeight -= m.form.height()
	}

	var content string
	switch {
	case m.active == tabContact:
		content = m.contactView()
	case !m.loaded[m.active]:
		content = ui.Current().Muted.Render("loading " + m.active.title() + "...")
	default:
		l := m.lists[m.active]
		l.SetSize(w-4, max(contentHeight, 3))
		content = l.View()
	}
	if m.form != nil {
		content += "\n" + m.form.view()
	}
	return header + "\n" + content + "\n" + footer
}

func (m Model) headerView() string {
	t := ui.Current()
	title := "mesa"
	if profile, ok := m.app.Contact.Get(); ok {
		title = "Welcome, " + view.Sanitize(profile.Name)
	}
	parts := make([]string, 0, int(tabCount))
	for i := tab(0); i < tabCount; i++ {
		label := fmt.Sprintf("%d:%s", i+1, i.title())
		if i == m.active {
			parts = append(parts, t.Selected.Render(" "+label+" "))
		} else {
			parts = append(parts, t.Muted.Render(" "+label+" "))
		}
	}
	return t.Title.Render(title) + "  " + lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) footerView() string {
	t := ui.Current()
	stamp := t.Muted.Render(app.Today())
	if m.status == "" {
		return stamp
	}
	return stamp + "  " + t.Pending.Render(m.status)
}

func (m Model) contactView() string {
	t := ui.Current()
	profile, ok := m.app.Contact.Get()
	if !ok {
		return ui.Panel([]string{
			t.Muted.Render("no contact profile yet"),
			t.Help.Render("press a to create one"),
		})
	}
	return ui.Panel([]string{
		t.Title.Render("Contact profile"),
		"name:  " + view.Sanitize(profile.Name),
		"email: " + view.Sanitize(profile.Email),
		t.Help.Render("press a to edit"),
	})
}

// Run starts the interactive program.
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
