package texture

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// GroupOption is a bitmask selecting which import settings take part in
// grouping. Values can be combined with bitwise OR.
type GroupOption uint8

const (
	GroupTextureType GroupOption = 1 << iota
	GroupReadable
	GroupFilterMode
	GroupMaxSize
	GroupWrapMode
	GroupAnisoLevel
	GroupCompression
	GroupMipMaps

	GroupNone GroupOption = 0
	GroupAll              = GroupTextureType | GroupReadable | GroupFilterMode | GroupMaxSize |
		GroupWrapMode | GroupAnisoLevel | GroupCompression | GroupMipMaps
)

// optionNames lists every flag in the fixed attribute order with its name.
var optionNames = [...]struct {
	flag GroupOption
	name string
}{
	{GroupTextureType, "type"},
	{GroupReadable, "readable"},
	{GroupFilterMode, "filter"},
	{GroupMaxSize, "maxsize"},
	{GroupWrapMode, "wrap"},
	{GroupAnisoLevel, "aniso"},
	{GroupCompression, "compression"},
	{GroupMipMaps, "mipmaps"},
}

// Has reports whether every flag in f is set.
func (o GroupOption) Has(f GroupOption) bool {
	return o&f == f
}

// Names returns the names of the set flags in attribute order.
func (o GroupOption) Names() []string {
	var out []string
	for _, on := range optionNames {
		if o.Has(on.flag) {
			out = append(out, on.name)
		}
	}
	return out
}

func (o GroupOption) String() string {
	switch o {
	case GroupNone:
		return "none"
	case GroupAll:
		return "all"
	}
	return strings.Join(o.Names(), ",")
}

// OptionNames returns every flag name in attribute order.
func OptionNames() []string {
	return GroupAll.Names()
}

// ParseGroupOptions parses flag names into a mask. Each element may itself
// be a comma-separated list. "all" and "none" select every or no flag.
// An unknown name fails with ErrUnknownOption and the closest valid name.
func ParseGroupOptions(names []string) (GroupOption, error) {
	var o GroupOption
	for _, item := range names {
		for _, name := range strings.Split(item, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			switch name {
			case "":
				continue
			case "all":
				o = GroupAll
				continue
			case "none":
				o = GroupNone
				continue
			}
			f, ok := lookupOption(name)
			if !ok {
				return 0, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownOption, name, suggestOption(name))
			}
			o |= f
		}
	}
	return o, nil
}

func lookupOption(name string) (GroupOption, bool) {
	for _, on := range optionNames {
		if on.name == name {
			return on.flag, true
		}
	}
	return 0, false
}

// suggestOption returns the option name with the smallest edit distance.
func suggestOption(name string) string {
	best, bestDist := "", -1
	for _, on := range optionNames {
		d := levenshtein.ComputeDistance(name, on.name)
		if bestDist < 0 || d < bestDist {
			best, bestDist = on.name, d
		}
	}
	return best
}

// maxSizeBucket is the width of the MaxSize equivalence buckets.
const maxSizeBucket = 32

// Key is the grouping key of one texture under a mask. It captures every
// import setting, but only the attributes selected by the mask take part in
// Equal, Hash and String.
//
// Keys are not comparable with ==; use Equal.
type Key struct {
	_        [0]func()
	opts     GroupOption
	settings ImportSettings
}

// NewKey captures s under opts. MaxSize is truncated to a multiple of 32 so
// sizes in the same 32-wide bucket compare equal.
func NewKey(s ImportSettings, opts GroupOption) Key {
	s.MaxSize = s.MaxSize / maxSizeBucket * maxSizeBucket
	return Key{opts: opts, settings: s}
}

// Options returns the mask the key was built under.
func (k Key) Options() GroupOption {
	return k.opts
}

// Settings returns the captured settings, MaxSize normalized.
func (k Key) Settings() ImportSettings {
	return k.settings
}

// Equal reports whether k and o were built under the same mask and agree on
// every masked attribute. Keys from different masks are never equal.
func (k Key) Equal(o Key) bool {
	if k.opts != o.opts {
		return false
	}
	a, b := &k.settings, &o.settings
	switch {
	case k.opts.Has(GroupTextureType) && a.Type != b.Type:
		return false
	case k.opts.Has(GroupReadable) && a.Readable != b.Readable:
		return false
	case k.opts.Has(GroupFilterMode) && a.Filter != b.Filter:
		return false
	case k.opts.Has(GroupMaxSize) && a.MaxSize != b.MaxSize:
		return false
	case k.opts.Has(GroupWrapMode) && a.Wrap != b.Wrap:
		return false
	case k.opts.Has(GroupAnisoLevel) && a.AnisoLevel != b.AnisoLevel:
		return false
	case k.opts.Has(GroupCompression) && a.Compression != b.Compression:
		return false
	case k.opts.Has(GroupMipMaps) && a.MipMaps != b.MipMaps:
		return false
	}
	return true
}

// Hash returns a hash consistent with Equal: it is seeded with the mask and
// folds in the masked attributes in attribute order as h = h*31 + field.
// Arithmetic wraps.
func (k Key) Hash() int32 {
	s := &k.settings
	h := int32(k.opts)
	if k.opts.Has(GroupTextureType) {
		h = h*31 + int32(s.Type)
	}
	if k.opts.Has(GroupReadable) {
		h = h*31 + boolHash(s.Readable)
	}
	if k.opts.Has(GroupFilterMode) {
		h = h*31 + int32(s.Filter)
	}
	if k.opts.Has(GroupMaxSize) {
		h = h*31 + int32(s.MaxSize)
	}
	if k.opts.Has(GroupWrapMode) {
		h = h*31 + int32(s.Wrap)
	}
	if k.opts.Has(GroupAnisoLevel) {
		h = h*31 + int32(s.AnisoLevel)
	}
	if k.opts.Has(GroupCompression) {
		h = h*31 + int32(s.Compression)
	}
	if k.opts.Has(GroupMipMaps) {
		h = h*31 + boolHash(s.MipMaps)
	}
	return h
}

func boolHash(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// NoCriteria is the label of a key built under an empty mask.
const NoCriteria = "<No Criteria>"

// String lists the masked attributes in attribute order, e.g.
// "Sprite, Non-Readable, 512px". An empty mask yields NoCriteria.
func (k Key) String() string {
	s := &k.settings
	var parts []string
	if k.opts.Has(GroupTextureType) {
		parts = append(parts, s.Type.String())
	}
	if k.opts.Has(GroupReadable) {
		if s.Readable {
			parts = append(parts, "Readable")
		} else {
			parts = append(parts, "Non-Readable")
		}
	}
	if k.opts.Has(GroupFilterMode) {
		parts = append(parts, s.Filter.String())
	}
	if k.opts.Has(GroupMaxSize) {
		parts = append(parts, strconv.Itoa(s.MaxSize)+"px")
	}
	if k.opts.Has(GroupWrapMode) {
		parts = append(parts, s.Wrap.String())
	}
	if k.opts.Has(GroupAnisoLevel) {
		parts = append(parts, "Aniso:"+strconv.Itoa(s.AnisoLevel))
	}
	if k.opts.Has(GroupCompression) {
		parts = append(parts, s.Compression.String())
	}
	if k.opts.Has(GroupMipMaps) {
		if s.MipMaps {
			parts = append(parts, "MipMaps On")
		} else {
			parts = append(parts, "MipMaps Off")
		}
	}
	if len(parts) == 0 {
		return NoCriteria
	}
	return strings.Join(parts, ", ")
}
