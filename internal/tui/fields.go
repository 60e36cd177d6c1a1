package tui

import (
	"strconv"

	"github.com/phanxgames/willowkit/texture"
)

// Settings pane rows, in texture.FieldNames order.
const (
	fieldType = iota
	fieldReadable
	fieldFilter
	fieldMaxSize
	fieldWrap
	fieldAniso
	fieldCompression
	fieldMipMaps
	numFields
)

var fieldLabels = [numFields]string{
	"Texture Type", "Read/Write", "Filter Mode", "Max Size",
	"Wrap Mode", "Aniso Level", "Compression", "Generate MipMaps",
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func fieldValue(s texture.ImportSettings, f int) string {
	switch f {
	case fieldType:
		return s.Type.String()
	case fieldReadable:
		return onOff(s.Readable)
	case fieldFilter:
		return s.Filter.String()
	case fieldMaxSize:
		return strconv.Itoa(s.MaxSize)
	case fieldWrap:
		return s.Wrap.String()
	case fieldAniso:
		return strconv.Itoa(s.AnisoLevel)
	case fieldCompression:
		return s.Compression.String()
	case fieldMipMaps:
		return onOff(s.MipMaps)
	}
	return ""
}

func wrapStep(v, delta, n int) int {
	return ((v+delta)%n + n) % n
}

// stepField moves a field to its previous (delta < 0) or next value. Enums
// wrap around, MaxSize moves between powers of two and AnisoLevel is clamped.
func stepField(s *texture.ImportSettings, f, delta int) {
	switch f {
	case fieldType:
		s.Type = texture.TextureType(wrapStep(int(s.Type), delta, int(texture.TypeSingleChannel)+1))
	case fieldReadable:
		s.Readable = !s.Readable
	case fieldFilter:
		s.Filter = texture.FilterMode(wrapStep(int(s.Filter), delta, int(texture.FilterTrilinear)+1))
	case fieldMaxSize:
		size := texture.MinMaxSize
		for size < s.MaxSize && size < texture.MaxMaxSize {
			size *= 2
		}
		if delta > 0 && size == s.MaxSize {
			size *= 2
		} else if delta < 0 {
			size /= 2
		}
		s.MaxSize = min(max(size, texture.MinMaxSize), texture.MaxMaxSize)
	case fieldWrap:
		s.Wrap = texture.WrapMode(wrapStep(int(s.Wrap), delta, int(texture.WrapMirrorOnce)+1))
	case fieldAniso:
		s.AnisoLevel = min(max(s.AnisoLevel+delta, 0), texture.MaxAnisoLevel)
	case fieldCompression:
		s.Compression = texture.Compression(wrapStep(int(s.Compression), delta, int(texture.CompressionLowQuality)+1))
	case fieldMipMaps:
		s.MipMaps = !s.MipMaps
	}
}
