package display

import (
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"

	"github.com/sagostin/ledbadge/pkg/badge"
)

// ParseBitstring reads a bitmap drawn with characters. Rows are separated
// by whitespace, '/' or ','. '1', '#' and 'X' are lit pixels; '0', '.',
// '-' and '_' are dark. All rows must have the same width.
//
//	"#...#/#...#/#####"
func ParseBitstring(s string) (Content, error) {
	rows := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '/' || r == ','
	})
	if len(rows) == 0 {
		return Content{}, fmt.Errorf("empty bit string")
	}

	width := len(rows[0])
	pixels := make([]bool, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return Content{}, fmt.Errorf("row %d is %d pixels wide, expected %d", y+1, len(row), width)
		}
		for x := 0; x < len(row); x++ {
			switch row[x] {
			case '1', '#', 'X':
				pixels = append(pixels, true)
			case '0', '.', '-', '_':
				pixels = append(pixels, false)
			default:
				return Content{}, fmt.Errorf("row %d: unexpected character %q at column %d", y+1, row[x], x+1)
			}
		}
	}
	return Content{Kind: ContentPixels, Pixels: pixels, Width: width}, nil
}

// DecodeBase64Bitmap decodes a packed 1-bit bitmap. Each row is
// ceil(width/8) bytes, most significant bit leftmost; rows follow each
// other top to bottom.
func DecodeBase64Bitmap(width int, s string) (Content, error) {
	if width <= 0 {
		return Content{}, fmt.Errorf("bitmap width must be positive, got %d", width)
	}
	if width > badge.MaxWidth {
		return Content{}, fmt.Errorf("%w: %d pixels, at most %d", badge.ErrFrameTooWide, width, badge.MaxWidth)
	}
	data, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		return Content{}, fmt.Errorf("decode base64: %w", err)
	}

	stride := (width + 7) / 8
	if len(data) == 0 || len(data)%stride != 0 {
		return Content{}, fmt.Errorf("%d bytes is not a whole number of %d byte rows", len(data), stride)
	}

	height := len(data) / stride
	pixels := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if data[y*stride+x/8]&(0x80>>(x%8)) != 0 {
				pixels[y*width+x] = true
			}
		}
	}
	return Content{Kind: ContentPixels, Pixels: pixels, Width: width}, nil
}

// LoadImage reads a PNG, JPEG, GIF or SVG file and converts it to pixel
// content at most badge.Height rows tall.
func LoadImage(path string) (Content, error) {
	f, err := os.Open(path)
	if err != nil {
		return Content{}, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return ReadSVG(f)
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return Content{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return ImageContent(img), nil
}

// ImageContent converts an image to pixel content. Images taller than the
// display are scaled down to badge.Height rows. A pixel is lit when its
// luminance over a black background is at least half.
func ImageContent(img image.Image) Content {
	img = fitHeight(img)
	b := img.Bounds()

	pixels := make([]bool, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			pixels[(y-b.Min.Y)*b.Dx()+(x-b.Min.X)] = g.Y >= 0x80
		}
	}
	return Content{Kind: ContentPixels, Pixels: pixels, Width: b.Dx()}
}

func fitHeight(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dy() <= badge.Height {
		return img
	}
	w := int(math.Round(float64(b.Dx()) * badge.Height / float64(b.Dy())))
	if w < 1 {
		w = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, badge.Height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// ReadSVG renders an SVG document badge.Height rows tall, keeping its
// aspect ratio. Every painted pixel with at least half coverage is lit,
// whatever its color.
func ReadSVG(r io.Reader) (Content, error) {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return Content{}, fmt.Errorf("parse svg: %w", err)
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return Content{}, fmt.Errorf("svg has an empty view box")
	}

	h := badge.Height
	w := int(math.Round(icon.ViewBox.W * float64(h) / icon.ViewBox.H))
	if w < 1 {
		w = 1
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	pixels := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pixels[y*w+x] = rgba.RGBAAt(x, y).A >= 0x80
		}
	}
	return Content{Kind: ContentPixels, Pixels: pixels, Width: w}, nil
}
