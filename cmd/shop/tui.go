package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lista/internal/client"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	boxChecked   = "☑"
	boxUnchecked = "☐"
)

// shopItem adapts a list item to bubbles/list.Item.
type shopItem struct {
	item client.Item
}

func (s shopItem) Title() string {
	box := boxUnchecked
	if s.item.Checked {
		box = boxChecked
	}
	line := fmt.Sprintf("%s %s", box, s.item.Name)
	if s.item.Quantity > 1 {
		line += fmt.Sprintf(" ×%d", s.item.Quantity)
	}
	return line
}

func (s shopItem) Description() string { return "" }
func (s shopItem) FilterValue() string { return s.item.Name }

// Single-line delegate in the spirit of a checklist.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	it, _ := li.(shopItem)

	box := mutedStyle.Render(boxUnchecked)
	text := it.item.Name
	if it.item.Quantity > 1 {
		text += fmt.Sprintf(" ×%d", it.item.Quantity)
	}
	if it.item.Checked {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+box+" "+text)
}

type mode int

const (
	modeViewing mode = iota
	modeAdding
	modeEditing
	modeJoining
)

type snapshotMsg []client.Item

type subClosedMsg struct{}

type copyExpiredMsg struct{}

type model struct {
	api      *client.Client
	resolver *client.Resolver
	session  *client.Session
	sub      *client.Subscription

	list      list.Model
	nameInput textinput.Model
	qtyInput  textinput.Model

	mode     mode
	focusQty bool
	inputErr string
	status   string
	copied   bool

	width, height int
}

func newModel(api *client.Client, resolver *client.Resolver, token string) model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear checked")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "copy token")),
		key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),
		key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "join")),
		key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "leave")),
	}
	l.AdditionalShortHelpKeys = func() []key.Binding { return bindings[:4] }
	l.AdditionalFullHelpKeys = func() []key.Binding { return bindings }

	name := textinput.New()
	name.Prompt = "> "
	name.Placeholder = "Item name..."
	name.CharLimit = 256

	qty := textinput.New()
	qty.Prompt = "× "
	qty.Placeholder = "1"
	qty.CharLimit = 6

	return model{
		api:       api,
		resolver:  resolver,
		session:   client.NewSession(api, token),
		sub:       api.Watch(context.Background(), token),
		list:      l,
		nameInput: name,
		qtyInput:  qty,
	}
}

// Commands

func waitForSnapshot(sub *client.Subscription) tea.Cmd {
	return func() tea.Msg {
		items, ok := <-sub.Snapshots()
		if !ok {
			return subClosedMsg{}
		}
		return snapshotMsg(items)
	}
}

func expireCopied() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return copyExpiredMsg{}
	})
}

func (m model) Init() tea.Cmd {
	return waitForSnapshot(m.sub)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case snapshotMsg:
		m.session.ApplySnapshot(msg)
		m.refreshList()
		return m, waitForSnapshot(m.sub)

	case subClosedMsg:
		return m, nil

	case copyExpiredMsg:
		m.copied = false
		return m, nil
	}

	switch m.mode {
	case modeAdding, modeEditing:
		return m.updateInput(msg)
	case modeJoining:
		return m.updateJoin(msg)
	}
	return m.updateViewing(msg)
}

func (m model) updateViewing(msg tea.Msg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch keyMsg.String() {
		case "q", "esc", "ctrl+c":
			if m.sub != nil {
				m.sub.Close()
			}
			return m, tea.Quit

		case " ":
			if it, ok := m.selected(); ok {
				if err := m.session.Toggle(ctx, it); err != nil {
					m.status = err.Error()
				}
			}
			return m, nil

		case "d":
			if it, ok := m.selected(); ok {
				if err := m.session.DeleteItem(ctx, it.ID); err != nil {
					m.status = err.Error()
				}
			}
			return m, nil

		case "c":
			removed, err := m.session.ClearChecked(ctx)
			if err != nil {
				m.status = err.Error()
			} else {
				m.status = fmt.Sprintf("cleared %d checked", removed)
			}
			return m, nil

		case "a":
			m.mode = modeAdding
			m.inputErr = ""
			name, qty := m.session.NewItemDraft()
			m.startInput(name, qty)
			return m, nil

		case "e":
			if it, ok := m.selected(); ok {
				m.session.StartEdit(it)
				m.mode = modeEditing
				m.inputErr = ""
				name, qty := m.session.EditDraft()
				m.startInput(name, qty)
			}
			return m, nil

		case "s":
			m.session.SetSort(nextSort(m.session.Sort()))
			m.refreshList()
			return m, nil

		case "t":
			if client.CopyToClipboard(m.session.Token()) {
				m.copied = true
				return m, expireCopied()
			}
			m.status = "clipboard unavailable"
			return m, nil

		case "y":
			url := client.ShareURL(m.api.BaseURL(), m.session.Token())
			if client.CopyToClipboard(url) {
				m.copied = true
				return m, expireCopied()
			}
			m.status = "clipboard unavailable"
			return m, nil

		case "J":
			m.mode = modeJoining
			m.inputErr = ""
			m.nameInput.SetValue("")
			m.nameInput.Placeholder = "Share token or link..."
			m.nameInput.Focus()
			return m, nil

		case "L":
			if !m.resolver.IsShared() {
				return m, nil
			}
			if err := m.resolver.LeaveShared(); err != nil {
				m.status = err.Error()
				return m, nil
			}
			return m, m.switchToken()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return m.submitInput()
		case "tab", "shift+tab":
			m.focusQty = !m.focusQty
			if m.focusQty {
				m.nameInput.Blur()
				m.qtyInput.Focus()
			} else {
				m.qtyInput.Blur()
				m.nameInput.Focus()
			}
			return m, nil
		case "esc":
			if m.mode == modeEditing {
				m.session.CancelEdit()
			}
			m.mode = modeViewing
			m.blurInputs()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focusQty {
		m.qtyInput, cmd = m.qtyInput.Update(msg)
	} else {
		m.nameInput, cmd = m.nameInput.Update(msg)
	}
	return m, cmd
}

func (m model) submitInput() (tea.Model, tea.Cmd) {
	ctx := context.Background()
	name := m.nameInput.Value()
	qty := m.qtyInput.Value()

	if strings.TrimSpace(name) == "" {
		m.inputErr = "Name cannot be empty"
		return m, nil
	}

	var err error
	if m.mode == modeAdding {
		m.session.SetNewItemDraft(name, qty)
		err = m.session.AddItem(ctx)
	} else {
		m.session.SetEditDraft(name, qty)
		err = m.session.SaveEdit(ctx)
	}
	if err != nil {
		m.inputErr = err.Error()
		return m, nil
	}

	m.mode = modeViewing
	m.blurInputs()
	return m, nil
}

func (m model) updateJoin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			token := client.ExtractShareToken(m.nameInput.Value())
			if token == "" {
				m.inputErr = "Paste a share token or link"
				return m, nil
			}
			if err := m.resolver.Join(token); err != nil {
				m.inputErr = err.Error()
				return m, nil
			}
			m.mode = modeViewing
			m.blurInputs()
			return m, m.switchToken()
		case "esc":
			m.mode = modeViewing
			m.blurInputs()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// switchToken rebuilds the session on the resolver's active token and
// reopens the subscription, dropping the old list's snapshot stream.
func (m *model) switchToken() tea.Cmd {
	token, err := m.resolver.ActiveToken()
	if err != nil {
		m.status = err.Error()
		return nil
	}
	if m.sub != nil {
		m.sub.Close()
	}
	m.session = client.NewSession(m.api, token)
	m.sub = m.api.Watch(context.Background(), token)
	m.list.SetItems(nil)
	return waitForSnapshot(m.sub)
}

func (m *model) startInput(name, qty string) {
	m.nameInput.SetValue(name)
	m.nameInput.Placeholder = "Item name..."
	m.nameInput.CursorEnd()
	m.qtyInput.SetValue(qty)
	m.focusQty = false
	m.qtyInput.Blur()
	m.nameInput.Focus()
}

func (m *model) blurInputs() {
	m.nameInput.SetValue("")
	m.qtyInput.SetValue("")
	m.nameInput.Blur()
	m.qtyInput.Blur()
	m.focusQty = false
	m.inputErr = ""
}

func (m *model) selected() (client.Item, bool) {
	if it, ok := m.list.SelectedItem().(shopItem); ok {
		return it.item, true
	}
	return client.Item{}, false
}

// refreshList projects the session's sorted items into the list widget,
// keeping the cursor on the same item across snapshot replacements.
func (m *model) refreshList() {
	selectedID := ""
	if it, ok := m.selected(); ok {
		selectedID = it.ID
	}

	items := m.session.Items()
	li := make([]list.Item, 0, len(items))
	cursor := m.list.Index()
	for i, it := range items {
		if it.ID == selectedID {
			cursor = i
		}
		li = append(li, shopItem{item: it})
	}
	m.list.SetItems(li)
	if cursor >= 0 && cursor < len(li) {
		m.list.Select(cursor)
	}
	m.list.Title = m.headerTitle(items)
}

func (m *model) headerTitle(items []client.Item) string {
	checked := 0
	for _, it := range items {
		if it.Checked {
			checked++
		}
	}

	name := "My list"
	if m.resolver.IsShared() {
		name = "Shared list"
	}

	return fmt.Sprintf("%s   %s %d/%d   %s",
		titleStyle.Render(name),
		successStyle.Render("✔"), checked, len(items),
		mutedStyle.Render("sort: "+string(m.session.Sort())),
	)
}

func nextSort(opt client.SortOption) client.SortOption {
	switch opt {
	case client.SortDefault:
		return client.SortUncheckedFirst
	case client.SortUncheckedFirst:
		return client.SortAlphabetical
	default:
		return client.SortDefault
	}
}

func (m model) View() string {
	w, h := m.width, m.height
	if w == 0 {
		w, h = 80, 24
	}

	listHeight := h - 4
	if m.mode != modeViewing {
		listHeight = h - 7
	}
	m.list.SetSize(w-2, listHeight)

	var content string
	if m.session.Loading() {
		content = mutedStyle.Render("Loading...")
	} else {
		content = m.list.View()
	}

	if m.mode != modeViewing {
		content += "\n" + m.inputBar()
	}

	status := ""
	if m.copied {
		status = successStyle.Render("✔ copied")
	} else if m.status != "" {
		status = mutedStyle.Render(m.status)
	}
	if status != "" {
		content += "\n" + status
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(content)
}

func (m model) inputBar() string {
	title := ""
	body := ""
	switch m.mode {
	case modeAdding:
		title = "Add item"
		body = m.nameInput.View() + "  " + m.qtyInput.View()
	case modeEditing:
		title = "Edit item"
		body = m.nameInput.View() + "  " + m.qtyInput.View()
	case modeJoining:
		title = "Join shared list"
		body = m.nameInput.View()
	}
	if m.inputErr != "" {
		title += " — " + errorStyle.Render(m.inputErr)
	}

	bar := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return bar.Render(accentStyle.Render(title) + "\n" + body)
}
