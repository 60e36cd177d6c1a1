package texture

import (
	"context"
	"fmt"
)

// Pane messages shown when there is nothing to list or edit.
const (
	MsgEmptyGroup = "No textures in this group."
	MsgNoItem     = "Select a texture on the left."
)

// Session holds the texture manager's state: the current mask and partition,
// the selection, the settings draft of the selected item and the directory
// foldouts. It is not safe for concurrent use.
type Session struct {
	src  Source
	opts GroupOption
	part *Partition

	stored map[string]ImportSettings

	group    Key
	hasGroup bool
	item     string
	hasItem  bool
	draft    ImportSettings

	collapsed map[string]bool
}

// NewSession returns a session over src grouping by opts. The partition is
// empty until Refresh is called.
func NewSession(src Source, opts GroupOption) *Session {
	return &Session{
		src:       src,
		opts:      opts,
		part:      Build(nil, opts),
		stored:    make(map[string]ImportSettings),
		collapsed: make(map[string]bool),
	}
}

// Options returns the current mask.
func (s *Session) Options() GroupOption {
	return s.opts
}

// Partition returns the current partition.
func (s *Session) Partition() *Partition {
	return s.part
}

// rebuild re-reads the source and partitions it under opts. On error the
// session keeps its previous mask and partition.
func (s *Session) rebuild(ctx context.Context, opts GroupOption) error {
	items, err := Collect(ctx, s.src)
	if err != nil {
		return err
	}
	stored := make(map[string]ImportSettings, len(items))
	for _, it := range items {
		stored[it.Path] = it.Settings
	}
	s.opts = opts
	s.stored = stored
	s.part = Build(items, opts)
	return nil
}

// Refresh rebuilds the partition from the source and clears the selection.
func (s *Session) Refresh(ctx context.Context) error {
	if err := s.rebuild(ctx, s.opts); err != nil {
		return err
	}
	s.ClearSelection()
	return nil
}

// SetOptions changes the mask and rebuilds. The selected group survives only
// if a key equal to it exists in the new partition; since keys built under
// different masks are never equal, a real mask change clears the selection.
func (s *Session) SetOptions(ctx context.Context, opts GroupOption) error {
	if err := s.rebuild(ctx, opts); err != nil {
		return err
	}
	if !s.hasGroup {
		return nil
	}
	g, ok := s.part.Lookup(s.group)
	if !ok {
		s.ClearSelection()
		return nil
	}
	s.group = g.Key
	if s.hasItem && !g.Contains(s.item) {
		s.clearItem()
	}
	return nil
}

// SelectGroup selects the group with key k and clears the item selection.
func (s *Session) SelectGroup(k Key) error {
	g, ok := s.part.Lookup(k)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGroup, k)
	}
	s.group, s.hasGroup = g.Key, true
	s.clearItem()
	return nil
}

// SelectedGroup returns the selected group, if it is still present.
func (s *Session) SelectedGroup() (*Group, bool) {
	if !s.hasGroup {
		return nil, false
	}
	return s.part.Lookup(s.group)
}

// SelectItem selects a path in the selected group and loads its stored
// settings into the draft.
func (s *Session) SelectItem(path string) error {
	g, ok := s.SelectedGroup()
	if !ok || !g.Contains(path) {
		return fmt.Errorf("%w: %s", ErrNotInGroup, path)
	}
	s.item, s.hasItem = path, true
	s.draft = s.stored[path]
	return nil
}

// SelectedItem returns the selected path.
func (s *Session) SelectedItem() (string, bool) {
	return s.item, s.hasItem
}

// ClearSelection drops both the group and the item selection.
func (s *Session) ClearSelection() {
	s.group, s.hasGroup = Key{}, false
	s.clearItem()
}

func (s *Session) clearItem() {
	s.item, s.hasItem = "", false
	s.draft = ImportSettings{}
}

// Stored returns the settings last read from the source for path.
func (s *Session) Stored(path string) (ImportSettings, bool) {
	st, ok := s.stored[path]
	return st, ok
}

// Draft returns the pending settings of the selected item.
func (s *Session) Draft() ImportSettings {
	return s.draft
}

// SetDraft replaces the pending settings of the selected item.
func (s *Session) SetDraft(st ImportSettings) error {
	if !s.hasItem {
		return ErrNoSelection
	}
	s.draft = st
	return nil
}

// Dirty reports whether the draft differs from the stored settings.
func (s *Session) Dirty() bool {
	return s.hasItem && s.draft != s.stored[s.item]
}

// Revert discards the draft.
func (s *Session) Revert() {
	if s.hasItem {
		s.draft = s.stored[s.item]
	}
}

// Apply validates the draft, writes it back and rebuilds. The item stays
// selected: if its key changed, the selection follows it into the group that
// now holds it.
func (s *Session) Apply(ctx context.Context) error {
	if !s.hasItem {
		return ErrNoSelection
	}
	if err := s.draft.Validate(); err != nil {
		return err
	}
	path := s.item
	if err := s.src.WriteBack(ctx, path, s.draft); err != nil {
		return fmt.Errorf("texture: write back %s: %w", path, err)
	}
	prev, hadGroup := s.group, s.hasGroup
	if err := s.rebuild(ctx, s.opts); err != nil {
		return err
	}

	if g, ok := s.part.Find(path); ok {
		s.group, s.hasGroup = g.Key, true
		s.item, s.hasItem = path, true
		s.draft = s.stored[path]
		return nil
	}
	// The item left the partition; keep the old group if it still exists.
	s.clearItem()
	if g, ok := s.part.Lookup(prev); hadGroup && ok {
		s.group = g.Key
	} else {
		s.group, s.hasGroup = Key{}, false
	}
	return nil
}

// Expanded reports whether a directory foldout is open. Foldouts start open.
func (s *Session) Expanded(dir string) bool {
	return !s.collapsed[dir]
}

// ToggleDir opens or closes a directory foldout.
func (s *Session) ToggleDir(dir string) {
	if s.collapsed[dir] {
		delete(s.collapsed, dir)
	} else {
		s.collapsed[dir] = true
	}
}

// GroupMessage returns the text for the item list pane when there is nothing
// to list, or "" when the selected group has items. No message is shown
// while no group is selected.
func (s *Session) GroupMessage() string {
	if !s.hasGroup {
		return ""
	}
	if g, ok := s.SelectedGroup(); !ok || g.Len() == 0 {
		return MsgEmptyGroup
	}
	return ""
}

// ItemMessage returns the text for the settings pane when no item is
// selected, or "".
func (s *Session) ItemMessage() string {
	if !s.hasItem {
		return MsgNoItem
	}
	return ""
}
