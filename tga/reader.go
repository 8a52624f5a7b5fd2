package tga

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"os"
)

// High-level API errors
var (
	ErrTruncated = errors.New("tga: pixel data ends before the image is complete")
)

// TGA files carry no magic header bytes, so this package does not call
// image.RegisterFormat: a zero-byte magic would make the registry try
// every other format first and then claim arbitrary data as TGA. Call
// Decode directly instead of going through image.Decode.

// BGRAImage is an image.Image over the interleaved BGR or BGRA byte
// raster the TGA decoder writes natively.
type BGRAImage struct {
	// Pix holds the image's samples in B, G, R(, A) order.
	Pix []byte
	// Stride is the number of bytes per pixel, 3 or 4.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

// NewBGRAImage creates an image with the given bounds, with four bytes
// per pixel when withAlpha is set and three otherwise.
func NewBGRAImage(r image.Rectangle, withAlpha bool) *BGRAImage {
	stride := 3
	if withAlpha {
		stride = 4
	}
	return &BGRAImage{
		Pix:    make([]byte, r.Dx()*r.Dy()*stride),
		Stride: stride,
		Rect:   r,
	}
}

// Bounds returns the domain for which At can return non-zero color.
func (img *BGRAImage) Bounds() image.Rectangle {
	return img.Rect
}

// ColorModel returns the image's color model.
func (img *BGRAImage) ColorModel() color.Model {
	return color.RGBAModel
}

// At returns the color of the pixel at (x, y). Images without an
// alpha channel report fully opaque pixels. Note that 16-bit sources
// store their attribute bit verbatim, so their alpha byte is 0 or 1.
func (img *BGRAImage) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(img.Rect)) {
		return color.RGBA{}
	}
	i := img.PixOffset(x, y)
	c := color.RGBA{
		B: img.Pix[i+0],
		G: img.Pix[i+1],
		R: img.Pix[i+2],
		A: opaque,
	}
	if img.Stride == 4 {
		c.A = img.Pix[i+3]
	}
	return c
}

// PixOffset returns the index of the first element of Pix for pixel
// (x, y).
func (img *BGRAImage) PixOffset(x, y int) int {
	return (y-img.Rect.Min.Y)*img.Rect.Dx()*img.Stride + (x-img.Rect.Min.X)*img.Stride
}

// Opaque reports whether the image carries no alpha channel.
func (img *BGRAImage) Opaque() bool {
	return img.Stride == 3
}

// DecodeConfig returns the dimensions and color model of a TGA image
// without decoding its pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.RGBAModel,
		Width:      h.Width,
		Height:     h.Height,
	}, nil
}

// Decode reads a TGA image from r. The image must start at the
// beginning of the stream: color map and pixel data are addressed by
// absolute offsets. When r is not seekable the whole stream is
// buffered in memory first.
//
// Unlike DecodePixels, Decode fails with ErrTruncated when the source
// ends before the image is complete.
func Decode(r io.Reader) (image.Image, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		rs = bytes.NewReader(data)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	h, err := ReadHeader(rs)
	if err != nil {
		return nil, err
	}
	wantAlpha := h.SamplesPerPixel() == 4
	img := NewBGRAImage(image.Rect(0, 0, h.Width, h.Height), wantAlpha)
	n, err := DecodePixels(h, rs, img.Pix, wantAlpha)
	if err != nil {
		return nil, err
	}
	if n != len(img.Pix) {
		return nil, ErrTruncated
	}
	return img, nil
}

// OpenFile decodes the TGA file at path.
func OpenFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
