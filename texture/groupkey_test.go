package texture

import (
	"errors"
	"strings"
	"testing"
)

func sprite(maxSize int) ImportSettings {
	s := DefaultSettings()
	s.Type = TypeSprite
	s.MaxSize = maxSize
	return s
}

func TestGroupOptionBits(t *testing.T) {
	want := []GroupOption{
		GroupTextureType, GroupReadable, GroupFilterMode, GroupMaxSize,
		GroupWrapMode, GroupAnisoLevel, GroupCompression, GroupMipMaps,
	}
	for i, f := range want {
		if f != 1<<i {
			t.Errorf("flag %d = %d, want %d", i, f, 1<<i)
		}
	}
	if GroupAll != 0xff {
		t.Errorf("GroupAll = %#x, want 0xff", uint8(GroupAll))
	}
}

func TestGroupOptionString(t *testing.T) {
	if s := (GroupTextureType | GroupMaxSize).String(); s != "type,maxsize" {
		t.Errorf("String = %q", s)
	}
	if GroupNone.String() != "none" || GroupAll.String() != "all" {
		t.Error("none/all names wrong")
	}
	if n := len(OptionNames()); n != 8 {
		t.Errorf("OptionNames len = %d, want 8", n)
	}
}

func TestParseGroupOptions(t *testing.T) {
	o, err := ParseGroupOptions([]string{"Type, maxsize", "mipmaps"})
	if err != nil {
		t.Fatalf("ParseGroupOptions: %v", err)
	}
	if o != GroupTextureType|GroupMaxSize|GroupMipMaps {
		t.Errorf("mask = %v", o)
	}

	o, err = ParseGroupOptions([]string{"all"})
	if err != nil || o != GroupAll {
		t.Errorf("all = %v, %v", o, err)
	}
	o, err = ParseGroupOptions([]string{"all", "none", "wrap"})
	if err != nil || o != GroupWrapMode {
		t.Errorf("none then wrap = %v, %v", o, err)
	}
	o, err = ParseGroupOptions(nil)
	if err != nil || o != GroupNone {
		t.Errorf("empty = %v, %v", o, err)
	}
}

func TestParseGroupOptionsSuggests(t *testing.T) {
	_, err := ParseGroupOptions([]string{"filtr"})
	if !errors.Is(err, ErrUnknownOption) {
		t.Fatalf("err = %v, want ErrUnknownOption", err)
	}
	if !strings.Contains(err.Error(), `"filter"`) {
		t.Errorf("err = %q, want suggestion of filter", err)
	}
}

func TestKeyMaxSizeBucketing(t *testing.T) {
	opts := GroupMaxSize
	a := NewKey(sprite(513), opts)
	b := NewKey(sprite(540), opts)
	c := NewKey(sprite(544), opts)
	if !a.Equal(b) {
		t.Error("513 and 540 should share the 512 bucket")
	}
	if a.Equal(c) {
		t.Error("544 should fall in the next bucket")
	}
	if a.Settings().MaxSize != 512 {
		t.Errorf("normalized MaxSize = %d, want 512", a.Settings().MaxSize)
	}
}

func TestKeyIgnoresUnmaskedAttributes(t *testing.T) {
	a := sprite(512)
	b := a
	b.Readable = true
	b.Filter = FilterPoint
	b.Wrap = WrapClamp
	b.AnisoLevel = 9
	b.Compression = CompressionNone
	b.MipMaps = false

	opts := GroupTextureType | GroupMaxSize
	if !NewKey(a, opts).Equal(NewKey(b, opts)) {
		t.Error("unmasked differences should not matter")
	}
	if NewKey(a, GroupAll).Equal(NewKey(b, GroupAll)) {
		t.Error("differences under GroupAll should matter")
	}
}

func TestKeyEachMaskedAttributeMatters(t *testing.T) {
	base := DefaultSettings()
	mutate := map[GroupOption]func(*ImportSettings){
		GroupTextureType: func(s *ImportSettings) { s.Type = TypeNormalMap },
		GroupReadable:    func(s *ImportSettings) { s.Readable = !s.Readable },
		GroupFilterMode:  func(s *ImportSettings) { s.Filter = FilterTrilinear },
		GroupMaxSize:     func(s *ImportSettings) { s.MaxSize = 1024 },
		GroupWrapMode:    func(s *ImportSettings) { s.Wrap = WrapMirror },
		GroupAnisoLevel:  func(s *ImportSettings) { s.AnisoLevel = 4 },
		GroupCompression: func(s *ImportSettings) { s.Compression = CompressionHighQuality },
		GroupMipMaps:     func(s *ImportSettings) { s.MipMaps = !s.MipMaps },
	}
	for flag, fn := range mutate {
		other := base
		fn(&other)
		if NewKey(base, flag).Equal(NewKey(other, flag)) {
			t.Errorf("%v: change should break equality", flag)
		}
		if !NewKey(base, GroupAll&^flag).Equal(NewKey(other, GroupAll&^flag)) {
			t.Errorf("%v: change should be ignored when unmasked", flag)
		}
	}
}

func TestKeyDifferentMasksNeverEqual(t *testing.T) {
	s := DefaultSettings()
	if NewKey(s, GroupTextureType).Equal(NewKey(s, GroupTextureType|GroupReadable)) {
		t.Error("keys with different masks should differ")
	}
	if !NewKey(s, GroupNone).Equal(NewKey(sprite(64), GroupNone)) {
		t.Error("empty-mask keys should all be equal")
	}
}

func TestKeyHashConsistentWithEqual(t *testing.T) {
	settings := []ImportSettings{
		DefaultSettings(), sprite(513), sprite(540), sprite(2048),
		{Type: TypeCursor, Readable: true, MaxSize: 32, AnisoLevel: 16, MipMaps: true},
	}
	masks := []GroupOption{GroupNone, GroupAll, GroupTextureType | GroupMaxSize, GroupReadable | GroupMipMaps}
	for _, m := range masks {
		for _, a := range settings {
			for _, b := range settings {
				ka, kb := NewKey(a, m), NewKey(b, m)
				if ka.Equal(kb) && ka.Hash() != kb.Hash() {
					t.Errorf("mask %v: equal keys hash %d and %d", m, ka.Hash(), kb.Hash())
				}
			}
		}
	}
}

func TestKeyHashFormula(t *testing.T) {
	s := sprite(513)
	k := NewKey(s, GroupTextureType|GroupMaxSize)
	want := (int32(GroupTextureType|GroupMaxSize)*31+int32(TypeSprite))*31 + 512
	if k.Hash() != want {
		t.Errorf("Hash = %d, want %d", k.Hash(), want)
	}
	if NewKey(s, GroupNone).Hash() != 0 {
		t.Error("empty mask hash should be the zero seed")
	}
}

func TestKeyString(t *testing.T) {
	k := NewKey(sprite(540), GroupTextureType|GroupReadable|GroupMaxSize)
	if got := k.String(); got != "Sprite, Non-Readable, 512px" {
		t.Errorf("String = %q", got)
	}

	s := DefaultSettings()
	s.Readable = true
	s.AnisoLevel = 4
	if got := NewKey(s, GroupAll).String(); got != "Default, Readable, Bilinear, 2048px, Repeat, Aniso:4, Compressed, MipMaps On" {
		t.Errorf("String = %q", got)
	}
	s.MipMaps = false
	if got := NewKey(s, GroupMipMaps).String(); got != "MipMaps Off" {
		t.Errorf("String = %q", got)
	}
}

func TestKeyStringEmptyMask(t *testing.T) {
	for _, s := range []ImportSettings{DefaultSettings(), sprite(64), {}} {
		if got := NewKey(s, GroupNone).String(); got != NoCriteria {
			t.Errorf("String = %q, want %q", got, NoCriteria)
		}
	}
}
