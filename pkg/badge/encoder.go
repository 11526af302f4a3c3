package badge

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// Wire layout of the 64-byte upload header.
const (
	headerSize = 64

	offMagic      = 0  // "wang\0\0"
	offBlink      = 6  // bit i set = message i blinks
	offBorder     = 7  // bit i set = message i has an animated border
	offSpeedMode  = 8  // 8 bytes, speed<<4 | mode
	offLengths    = 16 // 8 big-endian uint16, message width in byte columns
	offTimestamp  = 38 // year%100, month, day, hour, minute, second
	timestampSize = 6
)

var magic = [6]byte{'w', 'a', 'n', 'g', 0, 0}

// MaxFrames is the number of message slots in the upload header.
const MaxFrames = 8

// maxColumns is the largest message length the header can describe.
const maxColumns = 0xFFFF

// MaxWidth is the widest message in pixels the header can describe.
const MaxWidth = maxColumns * 8

var (
	// ErrTooManyFrames is returned when more than MaxFrames frames are encoded.
	ErrTooManyFrames = errors.New("badge holds at most 8 messages")

	// ErrFrameTooWide is returned when a frame is wider than the header can describe.
	ErrFrameTooWide = errors.New("message too wide")
)

// Encoder builds the byte stream for one upload. Frames are added in display
// order; Bytes returns the header followed by the frame data, padded to a
// whole number of reports.
type Encoder struct {
	header [headerSize]byte
	body   bytes.Buffer
	count  int
}

// NewEncoder creates an encoder whose header carries the given timestamp.
func NewEncoder(t time.Time) *Encoder {
	e := &Encoder{}
	copy(e.header[offMagic:], magic[:])
	e.header[offTimestamp] = byte(t.Year() % 100)
	e.header[offTimestamp+1] = byte(t.Month())
	e.header[offTimestamp+2] = byte(t.Day())
	e.header[offTimestamp+3] = byte(t.Hour())
	e.header[offTimestamp+4] = byte(t.Minute())
	e.header[offTimestamp+5] = byte(t.Second())
	return e
}

// AddFrame appends one message to the upload.
func (e *Encoder) AddFrame(style Style, bmp Bitmap) error {
	if e.count >= MaxFrames {
		return ErrTooManyFrames
	}
	cols := bmp.Columns()
	if cols > maxColumns {
		return fmt.Errorf("%w: %d pixels", ErrFrameTooWide, bmp.Width())
	}

	i := e.count
	if style.Flags.Blink {
		e.header[offBlink] |= 1 << i
	}
	if style.Flags.Border {
		e.header[offBorder] |= 1 << i
	}
	e.header[offSpeedMode+i] = byte(style.Speed)<<4 | byte(style.Mode)&0x0F
	binary.BigEndian.PutUint16(e.header[offLengths+2*i:], uint16(cols))

	e.body.Write(encodeColumns(bmp))
	e.count++

	debugf("Encoded frame %d: %d columns, %s", i, cols, style)
	return nil
}

// Len returns the number of frames added so far.
func (e *Encoder) Len() int {
	return e.count
}

// Bytes returns the complete upload, zero padded to a multiple of ReportSize.
func (e *Encoder) Bytes() []byte {
	size := headerSize + e.body.Len()
	if rem := size % ReportSize; rem != 0 {
		size += ReportSize - rem
	}
	out := make([]byte, size)
	copy(out, e.header[:])
	copy(out[headerSize:], e.body.Bytes())
	return out
}

// Encode converts a payload into the bytes sent to the badge, stamped with
// the current time.
func Encode(p Payload) ([]byte, error) {
	return EncodeAt(p, time.Now())
}

// EncodeAt is Encode with an explicit header timestamp.
func EncodeAt(p Payload, t time.Time) ([]byte, error) {
	e := NewEncoder(t)
	for i, f := range p.frames {
		if err := e.AddFrame(f.Style, f.Bitmap); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i+1, err)
		}
	}
	return e.Bytes(), nil
}

// encodeColumns converts a bitmap to the badge's column format.
//
// The wire format is:
//  1. The bitmap is cut into byte columns 8 pixels wide, left to right.
//  2. Each byte column is Height bytes, one per display row, top row first.
//  3. Within a byte the most significant bit is the leftmost pixel.
//
// Bitmap rows are shifted down by the bitmap's Top; rows that fall outside
// the display are dropped.
func encodeColumns(bmp Bitmap) []byte {
	cols := bmp.Columns()
	out := make([]byte, cols*Height)

	for col := 0; col < cols; col++ {
		for row := 0; row < Height; row++ {
			y := row - bmp.Top()
			var b byte
			for bit := 0; bit < 8; bit++ {
				if bmp.At(col*8+bit, y) {
					b |= 0x80 >> bit
				}
			}
			out[col*Height+row] = b
		}
	}

	return out
}
