package tui

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phanxgames/willowkit/texture"
)

type pane int

const (
	paneOptions pane = iota
	paneGroups
	paneItems
	paneSettings
	numPanes
)

// itemRow is one line of the item list: a directory foldout or a path.
type itemRow struct {
	dir  string
	path string
}

func (r itemRow) isDir() bool { return r.path == "" }

// Model is the texture manager. Session operations that touch the source
// run as commands; while one is in flight the model ignores input and View
// does not read the session.
type Model struct {
	ctx     context.Context
	session *texture.Session
	keys    keyMap
	help    help.Model
	list    viewport.Model
	input   textinput.Model

	focus       pane
	optCursor   int
	groupCursor int
	itemCursor  int
	fieldCursor int
	rows        []itemRow
	editing     bool

	busy    bool
	frame   string
	status  string
	changed bool
	width   int
	height  int
}

// New returns a model over session. The first Init rescans the source.
func New(ctx context.Context, session *texture.Session) *Model {
	in := textinput.New()
	in.Placeholder = "value"
	in.CharLimit = 32
	in.Width = 20

	return &Model{
		ctx:     ctx,
		session: session,
		keys:    defaultKeyMap(),
		help:    help.New(),
		list:    viewport.New(40, 16),
		input:   in,
		width:   120,
		height:  30,
	}
}

// OptionsChanged reports whether the grouping mask was edited.
func (m *Model) OptionsChanged() bool {
	return m.changed
}

// Session returns the model's session.
func (m *Model) Session() *texture.Session {
	return m.session
}

type opDoneMsg struct {
	op  string
	err error
}

// run starts fn as a command and blocks input until it reports back.
func (m *Model) run(op string, fn func() error) tea.Cmd {
	m.busy = true
	m.status = op + "..."
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn()}
	}
}

func (m *Model) refreshCmd() tea.Cmd {
	return m.run("scanning", func() error { return m.session.Refresh(m.ctx) })
}

func (m *Model) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.list.Width = max(msg.Width/3-4, 10)
		m.list.Height = max(msg.Height-8, 3)
		return m, nil

	case opDoneMsg:
		m.busy = false
		if msg.err != nil {
			log.Printf("texmgr: %s: %v", msg.op, msg.err)
			m.status = fmt.Sprintf("%s failed: %v", msg.op, msg.err)
		} else {
			m.status = msg.op + " done"
		}
		m.syncCursors()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		if m.editing {
			return m.updateInput(msg)
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Next):
		m.focus = (m.focus + 1) % numPanes
	case key.Matches(msg, m.keys.Prev):
		m.focus = (m.focus + numPanes - 1) % numPanes
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Left):
		m.stepDraft(-1)
	case key.Matches(msg, m.keys.Right):
		m.stepDraft(1)
	case key.Matches(msg, m.keys.Select):
		return m, m.selectAtCursor()
	case key.Matches(msg, m.keys.Edit):
		return m, m.startEdit()
	case key.Matches(msg, m.keys.Apply):
		if m.session.Dirty() {
			return m, m.run("applying", func() error { return m.session.Apply(m.ctx) })
		}
	case key.Matches(msg, m.keys.Revert):
		m.session.Revert()
		m.status = "reverted"
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCmd()
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.stopEdit()
		return m, nil
	case msg.Type == tea.KeyEnter:
		d := m.session.Draft()
		if err := d.Set(texture.FieldNames[m.fieldCursor], m.input.Value()); err != nil {
			m.status = err.Error()
		} else {
			_ = m.session.SetDraft(d)
			m.status = ""
		}
		m.stopEdit()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) startEdit() tea.Cmd {
	if m.focus != paneSettings {
		return nil
	}
	if _, ok := m.session.SelectedItem(); !ok {
		return nil
	}
	m.editing = true
	m.input.SetValue(fieldValue(m.session.Draft(), m.fieldCursor))
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) stopEdit() {
	m.editing = false
	m.input.Blur()
}

func (m *Model) move(delta int) {
	clamp := func(v, n int) int { return min(max(v+delta, 0), max(n-1, 0)) }
	switch m.focus {
	case paneOptions:
		m.optCursor = clamp(m.optCursor, len(texture.OptionNames()))
	case paneGroups:
		m.groupCursor = clamp(m.groupCursor, m.session.Partition().Len())
	case paneItems:
		m.itemCursor = clamp(m.itemCursor, len(m.rows))
		m.scrollList()
	case paneSettings:
		m.fieldCursor = clamp(m.fieldCursor, numFields)
	}
}

func (m *Model) stepDraft(delta int) {
	if m.focus != paneSettings {
		return
	}
	if _, ok := m.session.SelectedItem(); !ok {
		return
	}
	d := m.session.Draft()
	stepField(&d, m.fieldCursor, delta)
	_ = m.session.SetDraft(d)
}

func (m *Model) selectAtCursor() tea.Cmd {
	switch m.focus {
	case paneOptions:
		flag := texture.GroupOption(1) << m.optCursor
		opts := m.session.Options() ^ flag
		m.changed = true
		return m.run("regrouping", func() error { return m.session.SetOptions(m.ctx, opts) })

	case paneGroups:
		groups := m.session.Partition().Groups()
		if m.groupCursor >= len(groups) {
			return nil
		}
		if err := m.session.SelectGroup(groups[m.groupCursor].Key); err != nil {
			m.status = err.Error()
			return nil
		}
		m.itemCursor = 0
		m.rebuildRows()
		m.focus = paneItems

	case paneItems:
		if m.itemCursor >= len(m.rows) {
			return nil
		}
		r := m.rows[m.itemCursor]
		if r.isDir() {
			m.session.ToggleDir(r.dir)
			m.rebuildRows()
			return nil
		}
		if err := m.session.SelectItem(r.path); err != nil {
			m.status = err.Error()
			return nil
		}
		m.focus = paneSettings

	case paneSettings:
		return m.startEdit()
	}
	return nil
}

// syncCursors points the cursors back at the session's selection after a
// rebuild.
func (m *Model) syncCursors() {
	m.groupCursor = 0
	if g, ok := m.session.SelectedGroup(); ok {
		for i, other := range m.session.Partition().Groups() {
			if other == g {
				m.groupCursor = i
				break
			}
		}
	}
	m.rebuildRows()
	m.itemCursor = 0
	if p, ok := m.session.SelectedItem(); ok {
		for i, r := range m.rows {
			if r.path == p {
				m.itemCursor = i
				break
			}
		}
	}
	m.scrollList()
}

func (m *Model) rebuildRows() {
	m.rows = m.rows[:0]
	g, ok := m.session.SelectedGroup()
	if !ok {
		return
	}
	for _, d := range g.Directories() {
		m.rows = append(m.rows, itemRow{dir: d.Dir})
		if !m.session.Expanded(d.Dir) {
			continue
		}
		for _, p := range d.Paths {
			m.rows = append(m.rows, itemRow{dir: d.Dir, path: p})
		}
	}
	m.itemCursor = min(m.itemCursor, max(len(m.rows)-1, 0))
}

func (m *Model) scrollList() {
	if m.itemCursor < m.list.YOffset {
		m.list.SetYOffset(m.itemCursor)
	} else if m.itemCursor >= m.list.YOffset+m.list.Height {
		m.list.SetYOffset(m.itemCursor - m.list.Height + 1)
	}
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	focusStyle    = paneStyle.BorderForeground(lipgloss.Color("212"))
)

func (m *Model) View() string {
	if m.busy {
		return m.frame + "\n" + dimStyle.Render(m.status)
	}
	m.frame = m.render()
	return m.frame + "\n" + m.footer()
}

func (m *Model) render() string {
	colW := max(m.width/3-4, 20)
	left := lipgloss.JoinVertical(lipgloss.Left,
		m.box(paneOptions, colW, m.renderOptions()),
		m.box(paneGroups, colW, m.renderGroups()),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		left,
		m.box(paneItems, colW, m.renderItems()),
		m.box(paneSettings, colW, m.renderSettings()),
	)
}

func (m *Model) box(p pane, w int, body string) string {
	st := paneStyle
	if m.focus == p {
		st = focusStyle
	}
	return st.Width(w).Render(body)
}

func (m *Model) line(p pane, cursor bool, selected bool, text string) string {
	prefix := "  "
	if cursor && m.focus == p {
		prefix = cursorStyle.Render("> ")
	}
	if selected {
		text = selectedStyle.Render(text)
	}
	return prefix + text
}

func (m *Model) renderOptions() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Group By") + "\n")
	opts := m.session.Options()
	for i, name := range texture.OptionNames() {
		box := "[ ]"
		if opts.Has(texture.GroupOption(1) << i) {
			box = "[x]"
		}
		b.WriteString(m.line(paneOptions, i == m.optCursor, false, box+" "+name) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderGroups() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Groups") + "\n")
	groups := m.session.Partition().Groups()
	if len(groups) == 0 {
		b.WriteString(dimStyle.Render("No textures found."))
		return b.String()
	}
	sel, hasSel := m.session.SelectedGroup()
	for i, g := range groups {
		label := fmt.Sprintf("%s (%d)", g.Key, g.Len())
		b.WriteString(m.line(paneGroups, i == m.groupCursor, hasSel && g == sel, label) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderItems() string {
	title := titleStyle.Render("Textures")
	if msg := m.session.GroupMessage(); msg != "" {
		return title + "\n" + dimStyle.Render(msg)
	}
	if _, ok := m.session.SelectedGroup(); !ok {
		return title + "\n" + dimStyle.Render("Select a group.")
	}
	cur, _ := m.session.SelectedItem()
	var b strings.Builder
	for i, r := range m.rows {
		if r.isDir() {
			arrow := "▾"
			if !m.session.Expanded(r.dir) {
				arrow = "▸"
			}
			b.WriteString(m.line(paneItems, i == m.itemCursor, false, arrow+" "+r.dir+"/") + "\n")
			continue
		}
		name := r.path[strings.LastIndex(r.path, "/")+1:]
		b.WriteString(m.line(paneItems, i == m.itemCursor, r.path == cur, "    "+name) + "\n")
	}
	m.list.SetContent(strings.TrimRight(b.String(), "\n"))
	return title + "\n" + m.list.View()
}

func (m *Model) renderSettings() string {
	title := titleStyle.Render("Import Settings")
	if msg := m.session.ItemMessage(); msg != "" {
		return title + "\n" + dimStyle.Render(msg)
	}
	path, _ := m.session.SelectedItem()
	draft := m.session.Draft()
	stored, _ := m.session.Stored(path)

	var b strings.Builder
	b.WriteString(title + "\n" + dimStyle.Render(path) + "\n\n")
	for f := 0; f < numFields; f++ {
		val := fieldValue(draft, f)
		if m.editing && f == m.fieldCursor {
			val = m.input.View()
		} else if val != fieldValue(stored, f) {
			val += "*"
		}
		b.WriteString(m.line(paneSettings, f == m.fieldCursor, false,
			fmt.Sprintf("%-16s %s", fieldLabels[f], val)) + "\n")
	}
	if m.session.Dirty() {
		b.WriteString("\n" + dimStyle.Render("a: apply  r: revert"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) footer() string {
	out := m.help.View(m.keys)
	if m.status != "" {
		out = dimStyle.Render(m.status) + "\n" + out
	}
	return out
}
