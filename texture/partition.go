package texture

import (
	"path"
	"sort"
)

// Item is one texture asset and its current import settings.
type Item struct {
	Path     string
	Settings ImportSettings
}

// Group is one bucket of a Partition: the shared key and the member paths in
// input order.
type Group struct {
	Key   Key
	Paths []string
}

// Len returns the number of paths in the group.
func (g *Group) Len() int {
	return len(g.Paths)
}

// Contains reports whether p is a member of the group.
func (g *Group) Contains(p string) bool {
	for _, q := range g.Paths {
		if q == p {
			return true
		}
	}
	return false
}

// DirGroup is the subset of a group's paths sharing one directory.
type DirGroup struct {
	Dir   string
	Paths []string
}

// Directories buckets the group's paths by directory. Directories are sorted
// ascending; paths keep their group order.
func (g *Group) Directories() []DirGroup {
	idx := make(map[string]int)
	var out []DirGroup
	for _, p := range g.Paths {
		dir := path.Dir(p)
		i, ok := idx[dir]
		if !ok {
			i = len(out)
			idx[dir] = i
			out = append(out, DirGroup{Dir: dir})
		}
		out[i].Paths = append(out[i].Paths, p)
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Dir < out[b].Dir })
	return out
}

// Partition maps grouping keys to the paths that share them. Groups are kept
// in the order their key was first seen.
type Partition struct {
	opts   GroupOption
	groups []*Group
	byHash map[int32][]int
	byPath map[string]int
}

// Build partitions items by their key under opts. It always builds from
// scratch; a mask or item change means calling Build again.
func Build(items []Item, opts GroupOption) *Partition {
	p := &Partition{
		opts:   opts,
		byHash: make(map[int32][]int),
		byPath: make(map[string]int, len(items)),
	}
	for _, it := range items {
		k := NewKey(it.Settings, opts)
		i := p.index(k)
		if i < 0 {
			i = len(p.groups)
			p.groups = append(p.groups, &Group{Key: k})
			h := k.Hash()
			p.byHash[h] = append(p.byHash[h], i)
		}
		g := p.groups[i]
		g.Paths = append(g.Paths, it.Path)
		p.byPath[it.Path] = i
	}
	return p
}

// index returns the position of the group whose key equals k, or -1.
func (p *Partition) index(k Key) int {
	for _, i := range p.byHash[k.Hash()] {
		if p.groups[i].Key.Equal(k) {
			return i
		}
	}
	return -1
}

// Options returns the mask the partition was built under.
func (p *Partition) Options() GroupOption {
	return p.opts
}

// Groups returns the groups in first-seen order. The slice is shared; do not
// modify it.
func (p *Partition) Groups() []*Group {
	return p.groups
}

// Len returns the number of groups.
func (p *Partition) Len() int {
	return len(p.groups)
}

// Lookup returns the group whose key equals k.
func (p *Partition) Lookup(k Key) (*Group, bool) {
	i := p.index(k)
	if i < 0 {
		return nil, false
	}
	return p.groups[i], true
}

// Find returns the group containing the path.
func (p *Partition) Find(path string) (*Group, bool) {
	i, ok := p.byPath[path]
	if !ok {
		return nil, false
	}
	return p.groups[i], true
}
