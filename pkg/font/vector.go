package font

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// vectorSize is the point size at 72 DPI, so one point is one LED.
const vectorSize = 10

// ttfSource parses an embedded TrueType font on first use.
type ttfSource struct {
	name string
	data []byte

	once sync.Once
	font *truetype.Font
	err  error
}

var (
	goRegularTTF = &ttfSource{name: "Go Regular", data: goregular.TTF}
	goBoldTTF    = &ttfSource{name: "Go Bold", data: gobold.TTF}
	goMonoTTF    = &ttfSource{name: "Go Mono", data: gomono.TTF}
)

func (s *ttfSource) load() (*truetype.Font, error) {
	s.once.Do(func() {
		s.font, s.err = truetype.Parse(s.data)
		if s.err != nil {
			s.err = fmt.Errorf("parse %s: %w", s.name, s.err)
		}
	})
	return s.font, s.err
}

// vectorCovers reports coverage from the font's character map. Index 0 is
// the missing glyph.
func vectorCovers(src *ttfSource) func(rune) bool {
	return func(r rune) bool {
		f, err := src.load()
		if err != nil {
			return false
		}
		return f.Index(r) != 0
	}
}

// vectorFace returns a new face per call; truetype faces keep a glyph cache
// and must not be shared between goroutines.
func vectorFace(src *ttfSource) func() (xfont.Face, error) {
	return func() (xfont.Face, error) {
		f, err := src.load()
		if err != nil {
			return nil, err
		}
		return truetype.NewFace(f, &truetype.Options{
			Size:    vectorSize,
			DPI:     72,
			Hinting: xfont.HintingFull,
		}), nil
	}
}
