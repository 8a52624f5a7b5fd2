// Package tga implements a decoder for Truevision TGA (Targa) images.
//
// True-color and color-mapped images at 8, 15, 16, 24 and 32 bits per
// pixel are supported, uncompressed or run-length encoded, in either
// scan-line orientation. Pixels decode to interleaved BGR or BGRA
// bytes, the layout the format stores natively. Monochrome image types
// and encoding are not supported.
//
// Example usage:
//
//	f, _ := os.Open("texture.tga")
//	img, err := tga.Decode(f)
package tga

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Header errors
var (
	ErrInvalidHeader   = errors.New("tga: invalid header")
	ErrNoImageData     = errors.New("tga: file contains no image data")
	ErrUnsupportedType = errors.New("tga: unsupported image type")
)

// TGA image type codes stored in the header's third byte.
const (
	TypeNoImage        = 0
	TypeColorMapped    = 1
	TypeTrueColor      = 2
	TypeMonochrome     = 3
	TypeRLEColorMapped = 9
	TypeRLETrueColor   = 10
	TypeRLEMonochrome  = 11
)

// HeaderSize is the size of the fixed TGA header in bytes.
const HeaderSize = 18

// Header holds the parsed fixed-size TGA header. All multi-byte fields
// are little-endian in the file. A Header is immutable for the
// lifetime of a decode.
type Header struct {
	// IDLength is the size of the image ID field that follows the
	// fixed header.
	IDLength int

	// ColorMapType is 1 when a color map is present, 0 otherwise.
	ColorMapType int

	// ImageType is one of the Type* codes.
	ImageType int

	// ColorMapOrigin is the index of the first color map entry.
	ColorMapOrigin int

	// ColorMapLength is the number of color map entries.
	ColorMapLength int

	// BitsPerColorMapEntry is the stored size of one color map entry
	// (15, 16, 24 or 32).
	BitsPerColorMapEntry int

	// XOrigin and YOrigin place the image on the screen. The decoder
	// does not use them.
	XOrigin int
	YOrigin int

	// Width and Height are the image dimensions in pixels.
	Width  int
	Height int

	// BitsPerPixel is the stored pixel depth (8, 15, 16, 24 or 32).
	BitsPerPixel int

	// Descriptor holds the attribute-bit count in bits 0-3 and the
	// screen origin in bit 5 (set = top-left).
	Descriptor byte
}

// ReadHeader parses the fixed 18-byte header from r and validates that
// the image is one this package can decode.
func ReadHeader(r io.Reader) (*Header, error) {
	h, err := ParseHeader(r)
	if err != nil {
		return nil, err
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// ParseHeader parses the fixed 18-byte header from r without checking
// whether the image is decodable. Inspection tooling uses this to
// describe files the decoder would reject.
func ParseHeader(r io.Reader) (*Header, error) {
	var raw [HeaderSize]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return nil, fmt.Errorf("tga: reading header: %w", err)
	}
	h := &Header{
		IDLength:             int(raw[0]),
		ColorMapType:         int(raw[1]),
		ImageType:            int(raw[2]),
		ColorMapOrigin:       int(binary.LittleEndian.Uint16(raw[3:5])),
		ColorMapLength:       int(binary.LittleEndian.Uint16(raw[5:7])),
		BitsPerColorMapEntry: int(raw[7]),
		XOrigin:              int(binary.LittleEndian.Uint16(raw[8:10])),
		YOrigin:              int(binary.LittleEndian.Uint16(raw[10:12])),
		Width:                int(binary.LittleEndian.Uint16(raw[12:14])),
		Height:               int(binary.LittleEndian.Uint16(raw[14:16])),
		BitsPerPixel:         int(raw[16]),
		Descriptor:           raw[17],
	}
	return h, nil
}

// Validate checks the header describes an image this decoder handles.
func (h *Header) Validate() error {
	switch h.ImageType {
	case TypeNoImage:
		return ErrNoImageData
	case TypeColorMapped, TypeTrueColor, TypeRLEColorMapped, TypeRLETrueColor:
	default:
		return fmt.Errorf("%w: type %d", ErrUnsupportedType, h.ImageType)
	}
	if h.Width <= 0 || h.Height <= 0 {
		return fmt.Errorf("%w: %dx%d image", ErrInvalidHeader, h.Width, h.Height)
	}
	switch h.BitsPerPixel {
	case 8, 15, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d bits per pixel", ErrInvalidHeader, h.BitsPerPixel)
	}
	if h.HasColorMap() {
		if h.BitsPerPixel != 8 {
			return fmt.Errorf("%w: %d-bit color map indexes", ErrInvalidHeader, h.BitsPerPixel)
		}
		if h.ColorMapLength <= 0 || h.ColorMapLength > 256 {
			return fmt.Errorf("%w: color map with %d entries", ErrInvalidHeader, h.ColorMapLength)
		}
		switch h.BitsPerColorMapEntry {
		case 8, 15, 16, 24, 32:
		default:
			return fmt.Errorf("%w: %d bits per color map entry", ErrInvalidHeader, h.BitsPerColorMapEntry)
		}
	} else if h.ImageType == TypeColorMapped || h.ImageType == TypeRLEColorMapped {
		return fmt.Errorf("%w: color-mapped image without a color map", ErrInvalidHeader)
	}
	return nil
}

// HasColorMap reports whether a color map is present.
func (h *Header) HasColorMap() bool {
	return h.ColorMapType == 1
}

// Compressed reports whether the pixel data is run-length encoded.
func (h *Header) Compressed() bool {
	return h.ImageType == TypeRLEColorMapped || h.ImageType == TypeRLETrueColor
}

// BottomToTop reports whether stored rows run bottom-to-top
// (descriptor bit 5 clear, the format's historical default).
func (h *Header) BottomToTop() bool {
	return h.Descriptor&0x20 == 0
}

// AttributeBits returns the per-pixel attribute (alpha) bit count from
// the descriptor.
func (h *Header) AttributeBits() int {
	return int(h.Descriptor & 0x0F)
}

// BytesPerPixel returns the stored size of one pixel, rounding 15-bit
// pixels up to 2 bytes.
func (h *Header) BytesPerPixel() int {
	return (h.BitsPerPixel + 7) / 8
}

// BytesPerColorMapEntry returns the stored size of one color map entry.
func (h *Header) BytesPerColorMapEntry() int {
	return (h.BitsPerColorMapEntry + 7) / 8
}

// SamplesPerPixel reports how many samples a decoded pixel carries.
// Sources with an explicit alpha channel (32-bit pixels, 16-bit pixels
// with an attribute bit, or a 32-bit color map) decode to four
// samples; everything else decodes to three.
func (h *Header) SamplesPerPixel() int {
	switch {
	case h.BitsPerPixel == 32:
		return 4
	case h.BitsPerPixel == 16 && h.AttributeBits() > 0:
		return 4
	case h.HasColorMap() && h.BitsPerColorMapEntry == 32:
		return 4
	}
	return 3
}

// ColorMapDataOffset returns the absolute file offset of the color map
// data.
func (h *Header) ColorMapDataOffset() int {
	return HeaderSize + h.IDLength
}

// PixelDataOffset returns the absolute file offset of the pixel data.
func (h *Header) PixelDataOffset() int {
	mapBytes := 0
	if h.HasColorMap() {
		mapBytes = h.ColorMapLength * h.BytesPerColorMapEntry()
	}
	return h.ColorMapDataOffset() + mapBytes
}
