package badge

import (
	"fmt"
	"image"
)

// Bitmap is a finished 1-bit image for one message.
//
// Pixels are addressed as (x, y) with y counted from the bitmap's first row.
// Top is the display row that first row is placed on; rendered text uses it
// to put the font baseline on its row, raw bitmaps start at row 0. Rows that
// end up outside the display are clipped when the bitmap is encoded.
//
// A Bitmap is never modified after it is created. Use a Canvas to draw one.
type Bitmap struct {
	width  int
	height int
	top    int
	pix    []bool // row-major, width*height
}

// Width returns the width in pixels.
func (b Bitmap) Width() int { return b.width }

// Height returns the height in pixels.
func (b Bitmap) Height() int { return b.height }

// Top returns the display row of the bitmap's first row.
func (b Bitmap) Top() int { return b.top }

// Columns returns the number of 8-pixel byte columns the bitmap occupies on
// the wire, ceil(width/8).
func (b Bitmap) Columns() int {
	return (b.width + 7) / 8
}

// At reports whether the pixel at (x, y) is on.
// Returns false for out-of-bounds coordinates.
func (b Bitmap) At(x, y int) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return false
	}
	return b.pix[y*b.width+x]
}

// Points returns the coordinates of all pixels that are on, in row-major order.
func (b Bitmap) Points() []image.Point {
	var pts []image.Point
	for i, on := range b.pix {
		if on {
			pts = append(pts, image.Pt(i%b.width, i/b.width))
		}
	}
	return pts
}

// WithTop returns a copy of the bitmap placed on a different display row.
func (b Bitmap) WithTop(top int) Bitmap {
	b.top = top
	return b
}

// String draws the bitmap with '#' and '.', one line per row.
func (b Bitmap) String() string {
	buf := make([]byte, 0, (b.width+1)*b.height)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.At(x, y) {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

// FromPixels wraps caller supplied pixels into a Bitmap.
//
// pixels is row-major: entry i is the pixel at (i mod width, i div width).
// The height is ceil(len(pixels)/width); a short last row is padded with
// off pixels. width must be positive and at most MaxWidth.
func FromPixels(pixels []bool, width int) (Bitmap, error) {
	if width <= 0 {
		return Bitmap{}, fmt.Errorf("bitmap width must be positive, got %d", width)
	}
	if width > MaxWidth {
		return Bitmap{}, fmt.Errorf("%w: %d pixels, at most %d", ErrFrameTooWide, width, MaxWidth)
	}

	height := (len(pixels) + width - 1) / width
	c := NewCanvas(width, height)
	for i, on := range pixels {
		if on {
			c.SetPixel(i%width, i/width, true)
		}
	}
	return c.Bitmap(), nil
}

// Canvas is a mutable pixel buffer used while drawing a message.
// Call Bitmap to obtain the finished, immutable result.
type Canvas struct {
	width  int
	height int
	top    int
	data   []bool
}

// NewCanvas creates a new empty canvas. Negative sizes are treated as zero
// and the width is clamped to MaxWidth.
func NewCanvas(width, height int) *Canvas {
	width = min(max(width, 0), MaxWidth)
	if height < 0 {
		height = 0
	}
	return &Canvas{
		width:  width,
		height: height,
		data:   make([]bool, width*height),
	}
}

// Width of the canvas in pixels.
func (c *Canvas) Width() int { return c.width }

// Height of the canvas in pixels.
func (c *Canvas) Height() int { return c.height }

// SetTop sets the display row the canvas' first row is placed on.
func (c *Canvas) SetTop(top int) {
	c.top = top
}

// Clear resets all pixels to off.
func (c *Canvas) Clear() {
	clear(c.data)
}

// SetPixel sets a pixel at (x, y) to on or off.
// Coordinates are clipped to canvas bounds.
func (c *Canvas) SetPixel(x, y int, on bool) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.data[y*c.width+x] = on
}

// GetPixel returns the state of a pixel at (x, y).
// Returns false for out-of-bounds coordinates.
func (c *Canvas) GetPixel(x, y int) bool {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return false
	}
	return c.data[y*c.width+x]
}

// InvertAll inverts every pixel of the canvas, background included.
func (c *Canvas) InvertAll() {
	for i := range c.data {
		c.data[i] = !c.data[i]
	}
}

// Bounds returns the canvas rectangle, (0,0)-(width,height).
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// FillRect sets every pixel inside r. The part of r outside the canvas is
// ignored.
func (c *Canvas) FillRect(r image.Rectangle, on bool) {
	r = r.Canon().Intersect(c.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := c.data[y*c.width : (y+1)*c.width]
		for x := r.Min.X; x < r.Max.X; x++ {
			row[x] = on
		}
	}
}

// DrawRect draws the one pixel outline just inside r.
func (c *Canvas) DrawRect(r image.Rectangle, on bool) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	c.FillRect(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), on)
	c.FillRect(image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), on)
	c.FillRect(image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), on)
	c.FillRect(image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), on)
}

// Bitmap returns an immutable snapshot of the canvas. Later drawing on the
// canvas does not affect the returned bitmap.
func (c *Canvas) Bitmap() Bitmap {
	pix := make([]bool, len(c.data))
	copy(pix, c.data)
	return Bitmap{
		width:  c.width,
		height: c.height,
		top:    c.top,
		pix:    pix,
	}
}
