package window

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// chunkReader returns at most chunk bytes per Read call, to exercise
// partial reads from the source.
type chunkReader struct {
	data  []byte
	chunk int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := r.chunk
	if n > len(p) {
		n = len(p)
	}
	if n > len(r.data) {
		n = len(r.data)
	}
	copy(p, r.data[:n])
	r.data = r.data[n:]
	return n, nil
}

func sequence(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func TestDefaultCapacity(t *testing.T) {
	if DefaultCapacity < 16*1024 {
		t.Errorf("DefaultCapacity = %d, want at least 16 KiB", DefaultCapacity)
	}
	if DefaultCapacity%3 != 0 || DefaultCapacity%4 != 0 {
		t.Errorf("DefaultCapacity = %d, want a multiple of 3 and 4", DefaultCapacity)
	}
	w := New(bytes.NewReader(nil), 0)
	if w.Capacity() != DefaultCapacity {
		t.Errorf("New(r, 0) capacity = %d, want %d", w.Capacity(), DefaultCapacity)
	}
}

func TestEnsureAvailableNoop(t *testing.T) {
	w := New(bytes.NewReader(sequence(20)), 12)
	if exhausted, err := w.EnsureAvailable(6); exhausted || err != nil {
		t.Fatalf("EnsureAvailable(6) = %v, %v", exhausted, err)
	}
	avail := w.Available()

	// Enough bytes are present, so a smaller request must not refill.
	if exhausted, err := w.EnsureAvailable(3); exhausted || err != nil {
		t.Fatalf("EnsureAvailable(3) = %v, %v", exhausted, err)
	}
	if w.Available() != avail {
		t.Errorf("no-op EnsureAvailable changed availability: %d != %d", w.Available(), avail)
	}
}

func TestTakePreservesStreamAcrossRefills(t *testing.T) {
	src := sequence(200)
	w := New(&chunkReader{data: src, chunk: 5}, 12)

	var got []byte
	for {
		exhausted, err := w.EnsureAvailable(3)
		if err != nil {
			t.Fatal(err)
		}
		if exhausted {
			break
		}
		got = append(got, w.Take(3)...)
	}
	// 200 is not a multiple of 3; the trailing partial pixel is dropped.
	if !bytes.Equal(got, src[:198]) {
		t.Errorf("bytes lost or duplicated across refills:\ngot  %v\nwant %v", got, src[:198])
	}
}

func TestReplay(t *testing.T) {
	w := New(bytes.NewReader(sequence(20)), 12)
	if exhausted, err := w.EnsureAvailable(6); exhausted || err != nil {
		t.Fatalf("EnsureAvailable(6) = %v, %v", exhausted, err)
	}

	first := append([]byte(nil), w.Take(3)...)
	w.Replay(3)
	again := w.Take(3)
	if !bytes.Equal(first, again) {
		t.Errorf("Replay(3) then Take(3) = %v, want %v", again, first)
	}
	next := w.Take(3)
	if !bytes.Equal(next, []byte{3, 4, 5}) {
		t.Errorf("Take after replayed pixel = %v, want [3 4 5]", next)
	}
}

func TestReplayWithoutTakePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Replay past the cursor did not panic")
		}
	}()
	w := New(bytes.NewReader(sequence(20)), 12)
	w.EnsureAvailable(6)
	w.Take(3)
	w.Replay(4)
}

func TestExhaustion(t *testing.T) {
	w := New(bytes.NewReader(sequence(5)), 12)
	if exhausted, err := w.EnsureAvailable(3); exhausted || err != nil {
		t.Fatalf("EnsureAvailable(3) = %v, %v", exhausted, err)
	}
	w.Take(3)

	// Two unread bytes remain and the source is done.
	exhausted, err := w.EnsureAvailable(3)
	if err != nil {
		t.Fatal(err)
	}
	if !exhausted {
		t.Error("EnsureAvailable(3) with 2 bytes left at EOF: exhausted = false")
	}
	if w.Available() != 2 {
		t.Errorf("exhaustion dropped unread bytes: Available = %d, want 2", w.Available())
	}
}

func TestExhaustionEmpty(t *testing.T) {
	w := New(bytes.NewReader(nil), 12)
	exhausted, err := w.EnsureAvailable(1)
	if err != nil {
		t.Fatal(err)
	}
	if !exhausted {
		t.Error("EnsureAvailable on an empty source: exhausted = false")
	}
}

type failingReader struct{ err error }

func (r *failingReader) Read(p []byte) (int, error) { return 0, r.err }

func TestReadErrorPropagates(t *testing.T) {
	boom := errors.New("disk on fire")
	w := New(&failingReader{err: boom}, 12)
	if _, err := w.EnsureAvailable(1); !errors.Is(err, boom) {
		t.Errorf("EnsureAvailable error = %v, want %v", err, boom)
	}
}
