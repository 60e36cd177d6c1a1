package texture

import (
	"fmt"
	"strconv"
	"strings"
)

// TextureType is the importer's texture usage.
type TextureType uint8

const (
	TypeDefault TextureType = iota
	TypeNormalMap
	TypeEditorGUI
	TypeSprite
	TypeCursor
	TypeCookie
	TypeLightmap
	TypeSingleChannel
)

var textureTypeNames = [...]string{"Default", "NormalMap", "EditorGUI", "Sprite", "Cursor", "Cookie", "Lightmap", "SingleChannel"}

func (t TextureType) String() string { return enumName(textureTypeNames[:], int(t)) }

// ParseTextureType parses a type name case-insensitively.
func ParseTextureType(s string) (TextureType, error) {
	i, err := parseEnum("texture type", textureTypeNames[:], s)
	return TextureType(i), err
}

// FilterMode is the sampling filter.
type FilterMode uint8

const (
	FilterPoint FilterMode = iota
	FilterBilinear
	FilterTrilinear
)

var filterModeNames = [...]string{"Point", "Bilinear", "Trilinear"}

func (f FilterMode) String() string { return enumName(filterModeNames[:], int(f)) }

// ParseFilterMode parses a filter mode name case-insensitively.
func ParseFilterMode(s string) (FilterMode, error) {
	i, err := parseEnum("filter mode", filterModeNames[:], s)
	return FilterMode(i), err
}

// WrapMode is the texture addressing mode.
type WrapMode uint8

const (
	WrapRepeat WrapMode = iota
	WrapClamp
	WrapMirror
	WrapMirrorOnce
)

var wrapModeNames = [...]string{"Repeat", "Clamp", "Mirror", "MirrorOnce"}

func (w WrapMode) String() string { return enumName(wrapModeNames[:], int(w)) }

// ParseWrapMode parses a wrap mode name case-insensitively.
func ParseWrapMode(s string) (WrapMode, error) {
	i, err := parseEnum("wrap mode", wrapModeNames[:], s)
	return WrapMode(i), err
}

// Compression is the importer's compression quality.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionNormal
	CompressionHighQuality
	CompressionLowQuality
)

var compressionNames = [...]string{"Uncompressed", "Compressed", "CompressedHQ", "CompressedLQ"}

func (c Compression) String() string { return enumName(compressionNames[:], int(c)) }

// ParseCompression parses a compression name case-insensitively.
func ParseCompression(s string) (Compression, error) {
	i, err := parseEnum("compression", compressionNames[:], s)
	return Compression(i), err
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("Unknown(%d)", i)
	}
	return names[i]
}

func parseEnum(what string, names []string, s string) (int, error) {
	s = strings.TrimSpace(s)
	for i, n := range names {
		if strings.EqualFold(n, s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("texture: unknown %s %q (want one of %s): %w",
		what, s, strings.Join(names, ", "), ErrInvalidSettings)
}

// Size limits for ImportSettings.MaxSize and AnisoLevel.
const (
	MinMaxSize    = 32
	MaxMaxSize    = 16384
	MaxAnisoLevel = 16
)

// ImportSettings is the attribute set of one imported texture.
type ImportSettings struct {
	Type        TextureType
	Readable    bool
	Filter      FilterMode
	MaxSize     int
	Wrap        WrapMode
	AnisoLevel  int
	Compression Compression
	MipMaps     bool
}

// DefaultSettings returns the settings a texture gets on first import.
func DefaultSettings() ImportSettings {
	return ImportSettings{
		Type:        TypeDefault,
		Filter:      FilterBilinear,
		MaxSize:     2048,
		Wrap:        WrapRepeat,
		AnisoLevel:  1,
		Compression: CompressionNormal,
		MipMaps:     true,
	}
}

// Validate checks that every field holds a value the importer accepts.
func (s ImportSettings) Validate() error {
	switch {
	case int(s.Type) >= len(textureTypeNames):
		return fmt.Errorf("texture: type %d out of range: %w", s.Type, ErrInvalidSettings)
	case int(s.Filter) >= len(filterModeNames):
		return fmt.Errorf("texture: filter mode %d out of range: %w", s.Filter, ErrInvalidSettings)
	case int(s.Wrap) >= len(wrapModeNames):
		return fmt.Errorf("texture: wrap mode %d out of range: %w", s.Wrap, ErrInvalidSettings)
	case int(s.Compression) >= len(compressionNames):
		return fmt.Errorf("texture: compression %d out of range: %w", s.Compression, ErrInvalidSettings)
	case s.MaxSize < MinMaxSize || s.MaxSize > MaxMaxSize || s.MaxSize&(s.MaxSize-1) != 0:
		return fmt.Errorf("texture: max size %d is not a power of two in [%d, %d]: %w",
			s.MaxSize, MinMaxSize, MaxMaxSize, ErrInvalidSettings)
	case s.AnisoLevel < 0 || s.AnisoLevel > MaxAnisoLevel:
		return fmt.Errorf("texture: aniso level %d not in [0, %d]: %w", s.AnisoLevel, MaxAnisoLevel, ErrInvalidSettings)
	}
	return nil
}

// FieldNames lists the names accepted by Set, in attribute order.
var FieldNames = []string{"type", "readable", "filter", "max_size", "wrap", "aniso_level", "compression", "mipmaps"}

// Set assigns one field from its text form. Field names are those in
// FieldNames; "maxsize" and "aniso" are accepted as aliases. The result is
// not validated.
func (s *ImportSettings) Set(field, value string) error {
	value = strings.TrimSpace(value)
	var err error
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "type":
		s.Type, err = ParseTextureType(value)
	case "readable":
		s.Readable, err = parseBool(value)
	case "filter":
		s.Filter, err = ParseFilterMode(value)
	case "max_size", "maxsize":
		s.MaxSize, err = parseInt(value)
	case "wrap":
		s.Wrap, err = ParseWrapMode(value)
	case "aniso_level", "aniso":
		s.AnisoLevel, err = parseInt(value)
	case "compression":
		s.Compression, err = ParseCompression(value)
	case "mipmaps":
		s.MipMaps, err = parseBool(value)
	default:
		return fmt.Errorf("texture: unknown field %q (want one of %s): %w",
			field, strings.Join(FieldNames, ", "), ErrInvalidSettings)
	}
	return err
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("texture: bad boolean %q: %w", v, ErrInvalidSettings)
	}
	return b, nil
}

func parseInt(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("texture: bad integer %q: %w", v, ErrInvalidSettings)
	}
	return n, nil
}
