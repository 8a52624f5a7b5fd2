package tga

import "errors"

// Conversion errors
var (
	ErrUnsupportedDepth = errors.New("tga: unsupported pixel depth")
	ErrAlphaDiscard     = errors.New("tga: discarding an explicit alpha channel is not supported")
)

// opaque is the alpha value substituted when the source carries no
// alpha information.
const opaque = 0xFF

// convertPixel converts one raw pixel into normalized BGR(A) bytes.
// src holds at least bytesPerPixel raw bytes; dst receives 3 bytes, or
// 4 when wantAlpha is set. cm is nil for images without a color map.
func convertPixel(src, dst []byte, bytesPerPixel int, wantAlpha bool, cm *ColorMap) error {
	switch bytesPerPixel {
	case 1:
		if cm != nil {
			e := cm.lookup(int(src[0]))
			dst[0], dst[1], dst[2] = e[0], e[1], e[2]
			if wantAlpha {
				dst[3] = e[3]
			}
			return nil
		}
		// No color map: the byte is a grayscale value.
		v := src[0]
		dst[0], dst[1], dst[2] = v, v, v
		if wantAlpha {
			dst[3] = opaque
		}
	case 2:
		// Little-endian 5-5-5(-1) word. Each 5-bit channel is shifted
		// into the high bits of its byte; the low 3 bits stay zero.
		d := uint16(src[0]) | uint16(src[1])<<8
		dst[0] = byte(d&0x1F) << 3
		dst[1] = byte(d>>5&0x1F) << 3
		dst[2] = byte(d>>10&0x1F) << 3
		if wantAlpha {
			// The single attribute bit is kept verbatim (0 or 1),
			// never scaled to the 0-255 range.
			dst[3] = byte(d >> 15)
		}
	case 3:
		// Stored order is already B, G, R.
		dst[0], dst[1], dst[2] = src[0], src[1], src[2]
		if wantAlpha {
			dst[3] = opaque
		}
	case 4:
		if !wantAlpha {
			return ErrAlphaDiscard
		}
		dst[0], dst[1], dst[2], dst[3] = src[0], src[1], src[2], src[3]
	default:
		return ErrUnsupportedDepth
	}
	return nil
}
