// Package tgautil provides TGA-specific utility functions.
//
// This package offers higher-level operations for working with TGA
// files: file summaries, TGA 2.0 footer detection, and transparent
// handling of gzip-compressed textures (.tga.gz), a common shape for
// game asset archives.
//
// Example usage:
//
//	info, _ := tgautil.GetFileInfo("texture.tga")
//	fmt.Printf("Size: %dx%d, %d bpp, %s\n",
//		info.Width, info.Height, info.BitsPerPixel, info.TypeName)
package tgautil

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/mrjoshuak/go-targa/tga"
)

// FooterSize is the size of the optional TGA 2.0 file footer.
const FooterSize = 26

// footerMagic sits at offset 8 of the footer, terminated by a NUL.
const footerMagic = "TRUEVISION-XFILE."

// FileInfo provides a summary of a TGA file.
type FileInfo struct {
	Path           string
	Width          int
	Height         int
	BitsPerPixel   int
	ImageType      int
	TypeName       string
	Compressed     bool
	ColorMapped    bool
	ColorMapLength int
	BottomToTop    bool
	HasAlpha       bool
	HasFooter      bool
	Gzipped        bool
}

// typeNames maps TGA image type codes to readable descriptions,
// including the types this library does not decode.
var typeNames = map[int]string{
	tga.TypeNoImage:        "no image data",
	tga.TypeColorMapped:    "uncompressed color-mapped",
	tga.TypeTrueColor:      "uncompressed true-color",
	tga.TypeMonochrome:     "uncompressed monochrome",
	tga.TypeRLEColorMapped: "run-length encoded color-mapped",
	tga.TypeRLETrueColor:   "run-length encoded true-color",
	tga.TypeRLEMonochrome:  "run-length encoded monochrome",
	32:                     "Huffman/Delta/RLE color-mapped",
	33:                     "Huffman/Delta/RLE color-mapped, quadtree",
}

// TypeName returns a readable description of a TGA image type code.
func TypeName(imageType int) string {
	if name, ok := typeNames[imageType]; ok {
		return name
	}
	return fmt.Sprintf("unknown type %d", imageType)
}

// isGzip reports whether data starts with the gzip magic bytes.
func isGzip(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1F && data[1] == 0x8B
}

// OpenSeekable loads the file at path into memory and returns a
// seekable reader over its TGA bytes. A gzip-compressed file is
// decompressed transparently; gzipped reports whether that happened.
// The decoder needs random access for the color map and pixel data
// offsets, which a gzip stream cannot provide directly.
func OpenSeekable(path string) (r *bytes.Reader, gzipped bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	if !isGzip(data) {
		return bytes.NewReader(data), false, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, true, fmt.Errorf("tgautil: opening gzip stream: %w", err)
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, true, fmt.Errorf("tgautil: decompressing %s: %w", path, err)
	}
	return bytes.NewReader(raw), true, nil
}

// DecodeFile decodes the TGA file at path, transparently handling
// gzip-compressed files.
func DecodeFile(path string) (image.Image, error) {
	r, _, err := OpenSeekable(path)
	if err != nil {
		return nil, err
	}
	return tga.Decode(r)
}

// HasFooter reports whether the stream ends with a TGA 2.0 footer.
// The read position is restored afterwards.
func HasFooter(r io.ReadSeeker) (bool, error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return false, err
	}
	defer r.Seek(pos, io.SeekStart)

	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return false, err
	}
	if end < FooterSize {
		return false, nil
	}
	var footer [FooterSize]byte
	if _, err := r.Seek(end-FooterSize, io.SeekStart); err != nil {
		return false, err
	}
	if _, err := io.ReadFull(r, footer[:]); err != nil {
		return false, err
	}
	return string(footer[8:8+len(footerMagic)]) == footerMagic && footer[25] == 0, nil
}

// GetFileInfo summarizes the TGA file at path without decoding its
// pixels.
func GetFileInfo(path string) (*FileInfo, error) {
	r, gzipped, err := OpenSeekable(path)
	if err != nil {
		return nil, err
	}
	h, err := tga.ParseHeader(r)
	if err != nil {
		return nil, err
	}
	hasFooter, err := HasFooter(r)
	if err != nil {
		return nil, err
	}
	return &FileInfo{
		Path:           path,
		Width:          h.Width,
		Height:         h.Height,
		BitsPerPixel:   h.BitsPerPixel,
		ImageType:      h.ImageType,
		TypeName:       TypeName(h.ImageType),
		Compressed:     h.Compressed(),
		ColorMapped:    h.HasColorMap(),
		ColorMapLength: h.ColorMapLength,
		BottomToTop:    h.BottomToTop(),
		HasAlpha:       h.SamplesPerPixel() == 4,
		HasFooter:      hasFooter,
		Gzipped:        gzipped,
	}, nil
}
