package tga

import "errors"

// RLE stream errors
var (
	ErrRLETruncated = errors.New("tga: truncated RLE packet")
	ErrRLEOverflow  = errors.New("tga: RLE stream decodes past the image end")
)

// StreamAudit summarizes the packet structure of a run-length encoded
// pixel stream without converting any samples. It is used by strict
// validation to flag streams that decode correctly but are malformed
// by the letter of the format.
type StreamAudit struct {
	// Packets counts all control bytes seen, split into the two kinds.
	Packets    int
	RunPackets int
	RawPackets int

	// Pixels is the number of pixels the packets cover. It can exceed
	// Width*Height when the last packet overruns the image.
	Pixels int

	// RowCrossings counts packets whose pixels span a row boundary.
	// The format forbids these, but virtually every decoder (this one
	// included) accepts them.
	RowCrossings int

	// Truncated is set when the stream ends inside a packet or before
	// the image is covered.
	Truncated bool

	// TrailingBytes is the number of stream bytes left after the image
	// is fully covered.
	TrailingBytes int
}

// AuditRLE walks the packet structure of data, an RLE pixel stream for
// a width x height image at bytesPerPixel, and reports what it finds.
// It never fails: malformed streams are described, not rejected.
func AuditRLE(data []byte, bytesPerPixel, width, height int) StreamAudit {
	var audit StreamAudit
	totalPixels := width * height
	i := 0
	for audit.Pixels < totalPixels {
		if i >= len(data) {
			audit.Truncated = true
			return audit
		}
		c := data[i]
		i++
		count := int(c&0x7F) + 1

		need := bytesPerPixel
		if c&0x80 == 0 {
			need = count * bytesPerPixel
			audit.RawPackets++
		} else {
			audit.RunPackets++
		}
		audit.Packets++

		if (audit.Pixels%width)+count > width {
			audit.RowCrossings++
		}
		audit.Pixels += count

		if i+need > len(data) {
			audit.Truncated = true
			return audit
		}
		i += need
	}
	audit.TrailingBytes = len(data) - i
	return audit
}

// ExpandRLE decompresses an RLE pixel stream into its raw pixel bytes,
// without sample conversion. pixels is the expected pixel count; the
// result is exactly pixels*bytesPerPixel bytes or an error.
func ExpandRLE(data []byte, bytesPerPixel, pixels int) ([]byte, error) {
	dst := make([]byte, 0, pixels*bytesPerPixel)
	limit := pixels * bytesPerPixel
	i := 0
	for len(dst) < limit {
		if i >= len(data) {
			return nil, ErrRLETruncated
		}
		c := data[i]
		i++
		count := int(c&0x7F) + 1
		if len(dst)+count*bytesPerPixel > limit {
			return nil, ErrRLEOverflow
		}

		if c&0x80 != 0 {
			// Run: one literal pixel repeated count times.
			if i+bytesPerPixel > len(data) {
				return nil, ErrRLETruncated
			}
			px := data[i : i+bytesPerPixel]
			i += bytesPerPixel
			for n := 0; n < count; n++ {
				dst = append(dst, px...)
			}
		} else {
			// Raw: count literal pixels copied through.
			need := count * bytesPerPixel
			if i+need > len(data) {
				return nil, ErrRLETruncated
			}
			dst = append(dst, data[i:i+need]...)
			i += need
		}
	}
	return dst, nil
}
