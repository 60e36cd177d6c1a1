package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phanxgames/willowkit/texture"
)

type fakeSource struct {
	paths    []string
	settings map[string]texture.ImportSettings
}

func (f *fakeSource) Paths(context.Context) ([]string, error) { return f.paths, nil }

func (f *fakeSource) Settings(_ context.Context, p string) (texture.ImportSettings, error) {
	return f.settings[p], nil
}

func (f *fakeSource) WriteBack(_ context.Context, p string, s texture.ImportSettings) error {
	f.settings[p] = s
	return nil
}

func newTestModel(t *testing.T) (*Model, *fakeSource) {
	t.Helper()
	spr := texture.DefaultSettings()
	spr.Type = texture.TypeSprite
	src := &fakeSource{
		paths: []string{"ui/a.png", "ui/b.png", "bg/c.png"},
		settings: map[string]texture.ImportSettings{
			"ui/a.png": spr,
			"ui/b.png": spr,
			"bg/c.png": texture.DefaultSettings(),
		},
	}
	m := New(context.Background(), texture.NewSession(src, texture.GroupTextureType))
	drain(t, m, m.Init())
	return m, src
}

// drain runs cmd synchronously and feeds its message back, as the program
// loop would.
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		if _, ok := msg.(opDoneMsg); !ok {
			return
		}
		_, cmd = m.Update(msg)
	}
}

func press(t *testing.T, m *Model, keys ...string) {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd := m.Update(msg)
		drain(t, m, cmd)
	}
}

func TestModelInitScans(t *testing.T) {
	m, _ := newTestModel(t)
	if m.busy {
		t.Fatal("model should be idle after the scan")
	}
	if n := m.session.Partition().Len(); n != 2 {
		t.Errorf("groups = %d, want 2", n)
	}
	v := m.View()
	if !strings.Contains(v, "Sprite (2)") || !strings.Contains(v, "Default (1)") {
		t.Errorf("view missing group labels:\n%s", v)
	}
	if !strings.Contains(v, texture.MsgNoItem) {
		t.Error("view should prompt for a texture")
	}
}

func TestModelToggleOption(t *testing.T) {
	m, _ := newTestModel(t)
	// Cursor starts on "type"; toggling it leaves an empty mask.
	press(t, m, "enter")
	if m.session.Options() != texture.GroupNone {
		t.Fatalf("options = %v, want none", m.session.Options())
	}
	if !m.OptionsChanged() {
		t.Error("OptionsChanged should be set")
	}
	if !strings.Contains(m.View(), texture.NoCriteria) {
		t.Error("view should show the no-criteria group")
	}
}

func TestModelSelectAndApply(t *testing.T) {
	m, src := newTestModel(t)
	press(t, m, "tab", "enter") // groups pane, select Sprite
	if g, ok := m.session.SelectedGroup(); !ok || g.Key.String() != "Sprite" {
		t.Fatalf("selected group = %v, %v", g, ok)
	}
	if m.focus != paneItems || len(m.rows) != 3 {
		t.Fatalf("focus = %d rows = %v", m.focus, m.rows)
	}
	press(t, m, "down", "enter") // row 0 is the ui/ foldout
	if p, _ := m.session.SelectedItem(); p != "ui/a.png" {
		t.Fatalf("selected item = %q", p)
	}
	if m.focus != paneSettings {
		t.Fatal("focus should move to settings")
	}

	press(t, m, "right") // Sprite -> Cursor
	if m.session.Draft().Type != texture.TypeCursor || !m.session.Dirty() {
		t.Fatalf("draft type = %v", m.session.Draft().Type)
	}
	press(t, m, "a")
	if src.settings["ui/a.png"].Type != texture.TypeCursor {
		t.Error("apply did not write back")
	}
	g, _ := m.session.SelectedGroup()
	if g.Key.String() != "Cursor" {
		t.Errorf("selection should follow the item, got %s", g.Key)
	}
	// ui/a.png is scanned first, so its new group leads the partition.
	if m.groupCursor != 0 {
		t.Errorf("group cursor = %d, want 0", m.groupCursor)
	}
}

func TestModelTypedEdit(t *testing.T) {
	m, _ := newTestModel(t)
	press(t, m, "tab", "enter", "down", "enter")
	press(t, m, "down", "down", "down") // Max Size
	press(t, m, "e")
	if !m.editing {
		t.Fatal("should be editing")
	}
	m.input.SetValue("256")
	press(t, m, "enter")
	if m.editing || m.session.Draft().MaxSize != 256 {
		t.Errorf("MaxSize = %d editing = %v", m.session.Draft().MaxSize, m.editing)
	}

	press(t, m, "e")
	m.input.SetValue("huge")
	press(t, m, "enter")
	if m.session.Draft().MaxSize != 256 || m.status == "" {
		t.Error("bad value should be rejected with a status message")
	}
	press(t, m, "r")
	if m.session.Dirty() {
		t.Error("revert should clear the draft")
	}
}

func TestModelFoldout(t *testing.T) {
	m, _ := newTestModel(t)
	press(t, m, "tab", "enter", "enter") // select Sprite, toggle ui/
	if m.session.Expanded("ui") || len(m.rows) != 1 {
		t.Errorf("rows after collapse = %v", m.rows)
	}
}

func TestStepField(t *testing.T) {
	s := texture.DefaultSettings()
	stepField(&s, fieldMaxSize, 1)
	if s.MaxSize != 4096 {
		t.Errorf("MaxSize = %d, want 4096", s.MaxSize)
	}
	s.MaxSize = 513
	stepField(&s, fieldMaxSize, -1)
	if s.MaxSize != 512 {
		t.Errorf("MaxSize = %d, want 512", s.MaxSize)
	}
	s.MaxSize = texture.MaxMaxSize
	stepField(&s, fieldMaxSize, 1)
	if s.MaxSize != texture.MaxMaxSize {
		t.Errorf("MaxSize = %d, want clamp", s.MaxSize)
	}
	s.Wrap = texture.WrapRepeat
	stepField(&s, fieldWrap, -1)
	if s.Wrap != texture.WrapMirrorOnce {
		t.Errorf("Wrap = %v, want wrap-around", s.Wrap)
	}
	s.AnisoLevel = 0
	stepField(&s, fieldAniso, -1)
	if s.AnisoLevel != 0 {
		t.Errorf("AnisoLevel = %d", s.AnisoLevel)
	}
}
