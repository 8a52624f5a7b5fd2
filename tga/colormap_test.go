package tga

import (
	"bytes"
	"errors"
	"testing"
)

func colorMappedHeader(length, bitsPerEntry int) *Header {
	return &Header{
		ColorMapType:         1,
		ImageType:            TypeColorMapped,
		ColorMapLength:       length,
		BitsPerColorMapEntry: bitsPerEntry,
		Width:                1,
		Height:               1,
		BitsPerPixel:         8,
	}
}

func TestLoadColorMap24(t *testing.T) {
	h := colorMappedHeader(2, 24)
	data := buildTGA(h, []byte{
		1, 2, 3, // entry 0
		10, 20, 30, // entry 1
	})

	m, err := LoadColorMap(h, bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.Len())
	}
	if b, g, r, a := m.At(1); b != 10 || g != 20 || r != 30 || a != 0xFF {
		t.Errorf("entry 1 = (%d,%d,%d,%d), want (10,20,30,255)", b, g, r, a)
	}
	// The alpha byte is populated even though 24-bit entries carry none.
	if _, _, _, a := m.At(0); a != 0xFF {
		t.Errorf("entry 0 alpha = %d, want 255", a)
	}
}

func TestLoadColorMap16(t *testing.T) {
	// Word 0xFC00: B=0, G=0, R=31, attribute bit set.
	h := colorMappedHeader(1, 16)
	data := buildTGA(h, []byte{0x00, 0xFC})

	m, err := LoadColorMap(h, bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	b, g, r, a := m.At(0)
	if b != 0 || g != 0 || r != 0xF8 {
		t.Errorf("entry 0 BGR = (%d,%d,%d), want (0,0,248)", b, g, r)
	}
	// The attribute bit lands in the alpha byte verbatim.
	if a != 1 {
		t.Errorf("entry 0 alpha = %d, want 1", a)
	}
}

func TestLoadColorMap32(t *testing.T) {
	h := colorMappedHeader(1, 32)
	data := buildTGA(h, []byte{5, 6, 7, 8})

	m, err := LoadColorMap(h, bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b, g, r, a := m.At(0); b != 5 || g != 6 || r != 7 || a != 8 {
		t.Errorf("entry 0 = (%d,%d,%d,%d), want (5,6,7,8)", b, g, r, a)
	}
}

func TestLoadColorMapRespectsIDField(t *testing.T) {
	h := colorMappedHeader(1, 24)
	h.IDLength = 4
	data := buildTGA(h, []byte("name"), []byte{9, 8, 7})

	m, err := LoadColorMap(h, bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b, g, r, _ := m.At(0); b != 9 || g != 8 || r != 7 {
		t.Errorf("entry 0 BGR = (%d,%d,%d), want (9,8,7)", b, g, r)
	}
}

func TestLoadColorMapShort(t *testing.T) {
	h := colorMappedHeader(4, 24)
	data := buildTGA(h, []byte{1, 2, 3, 4, 5}) // 5 of 12 bytes

	if _, err := LoadColorMap(h, bytes.NewReader(data)); !errors.Is(err, ErrShortColorMap) {
		t.Errorf("short map: err = %v, want ErrShortColorMap", err)
	}
}

func TestColorMapAtClamps(t *testing.T) {
	m := &ColorMap{entries: []byte{1, 2, 3, 4, 5, 6, 7, 8}, length: 2}
	for _, i := range []int{2, 100, 255, -1} {
		if b, g, r, a := m.At(i); b != 1 || g != 2 || r != 3 || a != 4 {
			t.Errorf("At(%d) = (%d,%d,%d,%d), want entry 0", i, b, g, r, a)
		}
	}
}
