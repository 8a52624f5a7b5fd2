// Package window implements the sliding input buffer used by the TGA
// pixel decoder.
//
// A Window holds a bounded run of not-yet-consumed source bytes.
// Refills work by compaction: the unread bytes are moved to the front
// of the backing buffer and bulk reads fill the remaining capacity,
// so no input byte is ever lost or duplicated across a refill. A consumer may also re-present bytes it has already taken
// (Replay), which is how run-length packets repeat their literal pixel
// without touching the source again.
package window

import "io"

// DefaultCapacity is the backing buffer size used when the caller does
// not choose one. It is at least 16 KiB and a multiple of both 3 and 4,
// so whole 24- and 32-bit pixels never straddle a refill boundary in
// uncompressed streams.
const DefaultCapacity = 8192 * 6

// Window is a fixed-capacity byte window over a source stream.
// The bytes between the read cursor and the valid limit are unread
// input; cursor <= limit <= capacity always holds.
type Window struct {
	src    io.Reader
	buf    []byte
	cursor int
	limit  int
}

// New creates a Window over src. A capacity <= 0 selects
// DefaultCapacity. Smaller capacities are honored as given (tests use
// them to force refill boundaries), except that the window never goes
// below 8 bytes so any whole pixel plus a control byte fits.
func New(src io.Reader, capacity int) *Window {
	if capacity <= 0 {
		capacity = DefaultCapacity
	} else if capacity < 8 {
		capacity = 8
	}
	return &Window{src: src, buf: make([]byte, capacity)}
}

// Available returns the number of unread bytes currently in the window.
func (w *Window) Available() int {
	return w.limit - w.cursor
}

// Capacity returns the size of the backing buffer.
func (w *Window) Capacity() int {
	return len(w.buf)
}

// EnsureAvailable makes sure at least min unread bytes are present.
// If they already are, nothing happens. Otherwise the unread bytes are
// compacted to the front of the buffer and bulk reads fill the
// remaining capacity until min is reached. When the source runs out of
// data first, exhausted is true; the unread bytes (possibly none) are
// still the ones from before the call.
func (w *Window) EnsureAvailable(min int) (exhausted bool, err error) {
	remaining := w.limit - w.cursor
	if remaining >= min {
		return false, nil
	}
	if remaining > 0 && w.cursor > 0 {
		copy(w.buf, w.buf[w.cursor:w.limit])
	}
	w.cursor = 0
	w.limit = remaining
	for w.limit < min {
		n, err := w.src.Read(w.buf[w.limit:])
		w.limit += n
		if err == io.EOF {
			if w.limit < min {
				return true, nil
			}
			break
		}
		if err != nil {
			return false, err
		}
	}
	return false, nil
}

// Take returns the next n unread bytes and advances the cursor past
// them. The caller must have established availability with
// EnsureAvailable; the returned slice aliases the window's buffer and
// is valid until the next refill.
func (w *Window) Take(n int) []byte {
	b := w.buf[w.cursor : w.cursor+n]
	w.cursor += n
	return b
}

// Replay moves the cursor back n bytes so the same bytes are taken
// again. It never touches the source. The caller must have taken at
// least n bytes from the current window contents since the last
// refill; Replay panics if the window cannot honor that.
func (w *Window) Replay(n int) {
	if n > w.cursor {
		panic("window: replay without a matching take")
	}
	w.cursor -= n
}
