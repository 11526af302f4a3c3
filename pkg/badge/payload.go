package badge

// Frame is one message ready for encoding: a style and the bitmap it applies to.
type Frame struct {
	Style  Style
	Bitmap Bitmap
}

// Payload is an ordered list of frames making up one upload. The order of
// frames is the order the badge shows them in.
//
// Payload is a value type. Append never modifies the receiver, so a payload
// that has been handed to a transport cannot change underneath it.
type Payload struct {
	frames []Frame
}

// NewPayload returns an empty payload. An empty payload is valid; it encodes
// to a header that announces no messages.
func NewPayload() Payload {
	return Payload{}
}

// Append returns a payload with a new frame added at the end.
func (p Payload) Append(style Style, bitmap Bitmap) Payload {
	frames := make([]Frame, len(p.frames), len(p.frames)+1)
	copy(frames, p.frames)
	frames = append(frames, Frame{Style: style, Bitmap: bitmap})
	debugf("Frame %d appended: %s width=%d", len(frames)-1, style, bitmap.Width())
	return Payload{frames: frames}
}

// Len returns the number of frames.
func (p Payload) Len() int {
	return len(p.frames)
}

// Frames returns a copy of the frames in display order.
func (p Payload) Frames() []Frame {
	out := make([]Frame, len(p.frames))
	copy(out, p.frames)
	return out
}
