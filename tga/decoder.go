package tga

import (
	"errors"
	"fmt"
	"io"

	"github.com/mrjoshuak/go-targa/internal/window"
)

// Decoder errors
var (
	ErrShortBuffer = errors.New("tga: destination buffer too small")
)

// rleState tracks the run-length packet currently being emitted.
// remaining counts the pixels still owed by the open packet; zero
// means the next pixel starts with a fresh control byte.
type rleState struct {
	rawMode   bool
	remaining int
}

// next positions the window so its next bytesPerPixel bytes are the
// current pixel's source bytes, reading a control byte when no packet
// is open. exhausted reports that the source ended first.
func (st *rleState) next(win *window.Window, bytesPerPixel int) (exhausted bool, err error) {
	if st.remaining > 0 {
		st.remaining--
		if !st.rawMode {
			// Run packet: re-present the previous pixel's bytes. The
			// window is never refilled while a run is open, so the
			// bytes are still in place.
			win.Replay(bytesPerPixel)
			return false, nil
		}
		return win.EnsureAvailable(bytesPerPixel)
	}
	// New packet: need the control byte plus one whole pixel.
	if exhausted, err = win.EnsureAvailable(bytesPerPixel + 1); exhausted || err != nil {
		return exhausted, err
	}
	c := win.Take(1)[0]
	st.rawMode = c&0x80 == 0
	st.remaining = int(c & 0x7F)
	return false, nil
}

// DecodePixels decodes the image described by h from src into pix as
// interleaved BGR (wantAlpha false) or BGRA (wantAlpha true) bytes,
// row-major. It returns the number of destination bytes written.
//
// A source that ends before the image is complete is not an error at
// this layer: decoding stops, the remaining destination bytes are left
// untouched, and the returned count is short. Callers that require a
// complete image must compare the count against
// h.Width*h.Height*(3 or 4).
func DecodePixels(h *Header, src io.ReadSeeker, pix []byte, wantAlpha bool) (int, error) {
	return DecodePixelsBuffered(h, src, pix, wantAlpha, 0)
}

// DecodePixelsBuffered is DecodePixels with an explicit input window
// capacity in bytes; 0 selects the default. Output is identical for
// any capacity, so this exists for tests that force refill boundaries.
func DecodePixelsBuffered(h *Header, src io.ReadSeeker, pix []byte, wantAlpha bool, capacity int) (int, error) {
	bytesPerPixel := h.BytesPerPixel()
	if bytesPerPixel < 1 || bytesPerPixel > 4 {
		return 0, ErrUnsupportedDepth
	}
	if bytesPerPixel == 4 && !wantAlpha {
		return 0, ErrAlphaDiscard
	}

	bytesPerOutputPixel := 3
	if wantAlpha {
		bytesPerOutputPixel = 4
	}
	bytesPerOutputRow := h.Width * bytesPerOutputPixel
	if len(pix) < h.Height*bytesPerOutputRow {
		return 0, ErrShortBuffer
	}

	var cm *ColorMap
	if h.HasColorMap() {
		var err error
		if cm, err = LoadColorMap(h, src); err != nil {
			return 0, err
		}
	}

	if _, err := src.Seek(int64(h.PixelDataOffset()), io.SeekStart); err != nil {
		return 0, fmt.Errorf("tga: seeking pixel data: %w", err)
	}

	win := window.New(src, capacity)
	compressed := h.Compressed()
	var st rleState
	written := 0

	for y := 0; y < h.Height; y++ {
		// Decoding is strictly row-major in stream order; only the
		// destination row index depends on the orientation flag.
		row := y
		if h.BottomToTop() {
			row = h.Height - 1 - y
		}
		dst := pix[row*bytesPerOutputRow : (row+1)*bytesPerOutputRow]

		for x := 0; x < h.Width; x++ {
			var exhausted bool
			var err error
			if compressed {
				exhausted, err = st.next(win, bytesPerPixel)
			} else {
				exhausted, err = win.EnsureAvailable(bytesPerPixel)
			}
			if err != nil {
				return written, err
			}
			if exhausted {
				return written, nil
			}
			raw := win.Take(bytesPerPixel)
			if err := convertPixel(raw, dst[x*bytesPerOutputPixel:], bytesPerPixel, wantAlpha, cm); err != nil {
				return written, err
			}
			written += bytesPerOutputPixel
		}
	}
	return written, nil
}
