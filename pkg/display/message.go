package display

import (
	"github.com/sagostin/ledbadge/pkg/badge"
	"github.com/sagostin/ledbadge/pkg/font"
)

// ContentKind tells which field of Content is set.
type ContentKind int

const (
	ContentText ContentKind = iota
	ContentPixels
)

func (k ContentKind) String() string {
	switch k {
	case ContentText:
		return "text"
	case ContentPixels:
		return "pixels"
	default:
		return "unknown"
	}
}

// Content is what one message shows: either text or raw pixels.
type Content struct {
	Kind ContentKind

	Text string

	Pixels []bool
	Width  int
}

// Text returns text content.
func Text(s string) Content {
	return Content{Kind: ContentText, Text: s}
}

// Pixels returns raw pixel content, row-major with the given width.
func Pixels(pixels []bool, width int) Content {
	px := make([]bool, len(pixels))
	copy(px, pixels)
	return Content{Kind: ContentPixels, Pixels: px, Width: width}
}

// BitmapContent converts a bitmap into pixel content. Only the bitmap's
// own rows are kept; its vertical placement is not.
func BitmapContent(b badge.Bitmap) Content {
	px := make([]bool, b.Width()*b.Height())
	for _, p := range b.Points() {
		px[p.Y*b.Width()+p.X] = true
	}
	return Content{Kind: ContentPixels, Pixels: px, Width: b.Width()}
}

// Message is one entry of a batch.
type Message struct {
	Content Content

	Speed   int      // speed level 0..7, anything else uses the default
	Mode    string   // animation key, unknown keys scroll left
	Effects []string // "flashing", "border", "inverted"

	// Font is only used for text content.
	FontFamily  int
	FontSubtype string
}

// DefaultMessage returns a message with the default style and the 5x8 font.
func DefaultMessage(c Content) Message {
	return Message{
		Content:     c,
		Speed:       int(badge.DefaultSpeed),
		Mode:        badge.DefaultMode.String(),
		FontFamily:  int(font.FixedMono),
		FontSubtype: "5x8",
	}
}
