package font

import (
	"fmt"
	"image"

	"github.com/sagostin/ledbadge/pkg/badge"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// alphaThreshold is the coverage at which an anti-aliased pixel turns on.
const alphaThreshold = 0x80

// Face returns the drawing face for the font.
func (s Spec) Face() (xfont.Face, error) {
	if s.newFace == nil {
		return nil, &ResolutionError{Family: int(s.Family), Subtype: s.Subtype, Pos: -1, Reason: "font not loaded"}
	}
	return s.newFace()
}

// Check returns a ResolutionError for the first character of text the font
// cannot draw.
func (s Spec) Check(text string) error {
	for i, r := range text {
		if !s.Covers(r) {
			return &ResolutionError{Family: int(s.Family), Subtype: s.Subtype, Rune: r, Pos: i}
		}
	}
	return nil
}

// MeasureText returns the width in pixels of the rendered text.
func MeasureText(s Spec, text string) (int, error) {
	if err := s.Check(text); err != nil {
		return 0, err
	}
	face, err := s.Face()
	if err != nil {
		return 0, err
	}
	return xfont.MeasureString(face, text).Ceil(), nil
}

// Rasterize renders text as a single line. The bitmap is exactly as wide as
// the text's advance and CellHeight rows tall, placed so the glyph baseline
// falls on the font's Baseline row. With invert every pixel of the cell is
// flipped, so the text is drawn dark on a lit background.
//
// Empty text gives a zero-width bitmap. Characters the font cannot draw
// fail the whole call.
func Rasterize(text string, s Spec, invert bool) (badge.Bitmap, error) {
	width, err := MeasureText(s, text)
	if err != nil {
		return badge.Bitmap{}, err
	}
	if width > badge.MaxWidth {
		return badge.Bitmap{}, fmt.Errorf("%w: %d pixels, at most %d", badge.ErrFrameTooWide, width, badge.MaxWidth)
	}
	face, err := s.Face()
	if err != nil {
		return badge.Bitmap{}, err
	}

	dst := image.NewAlpha(image.Rect(0, 0, width, s.CellHeight))
	if width > 0 {
		d := xfont.Drawer{
			Dst:  dst,
			Src:  image.Opaque,
			Face: face,
			Dot:  fixed.P(0, s.Ascent),
		}
		d.DrawString(text)
	}

	c := badge.NewCanvas(width, s.CellHeight)
	c.SetTop(s.Top())
	for y := 0; y < s.CellHeight; y++ {
		for x := 0; x < width; x++ {
			on := dst.AlphaAt(x, y).A >= alphaThreshold
			c.SetPixel(x, y, on != invert)
		}
	}
	return c.Bitmap(), nil
}
