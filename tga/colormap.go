package tga

import (
	"errors"
	"fmt"
	"io"
)

// Color map errors
var (
	ErrShortColorMap = errors.New("tga: color map data ends before the map is complete")
)

// ColorMap is the image's palette, expanded to one normalized 4-byte
// BGRA value per entry. The alpha byte is always populated using the
// same depth expansion applied to pixels, whether or not the final
// image wants an alpha channel, so lookups never branch on entry depth.
type ColorMap struct {
	entries []byte // 4 bytes per entry: B, G, R, A
	length  int
}

// LoadColorMap reads the color map described by h from src and expands
// every entry to its normalized BGRA form. The whole map is read with
// one bulk read; it is small and loaded eagerly before pixel decoding
// begins.
func LoadColorMap(h *Header, src io.ReadSeeker) (*ColorMap, error) {
	if _, err := src.Seek(int64(h.ColorMapDataOffset()), io.SeekStart); err != nil {
		return nil, fmt.Errorf("tga: seeking color map: %w", err)
	}

	bytesPerEntry := h.BytesPerColorMapEntry()
	raw := make([]byte, h.ColorMapLength*bytesPerEntry)
	if _, err := io.ReadFull(src, raw); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrShortColorMap
		}
		return nil, fmt.Errorf("tga: reading color map: %w", err)
	}

	m := &ColorMap{
		entries: make([]byte, h.ColorMapLength*4),
		length:  h.ColorMapLength,
	}
	for i := 0; i < m.length; i++ {
		err := convertPixel(raw[i*bytesPerEntry:], m.entries[i*4:], bytesPerEntry, true, nil)
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Len returns the number of entries in the map.
func (m *ColorMap) Len() int {
	return m.length
}

// At returns entry i's normalized channels. Raw index bytes are not
// range-validated by the format, so indexes at or past Len resolve to
// entry 0 rather than failing the decode.
func (m *ColorMap) At(i int) (b, g, r, a byte) {
	e := m.lookup(i)
	return e[0], e[1], e[2], e[3]
}

// lookup returns the 4-byte normalized entry for a raw index byte,
// clamping out-of-range indexes to entry 0.
func (m *ColorMap) lookup(i int) []byte {
	if i < 0 || i >= m.length {
		i = 0
	}
	return m.entries[i*4 : i*4+4]
}
