package font

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/zachomedia/go-bdf"
	xfont "golang.org/x/image/font"
)

var (
	//go:embed fonts/5x8.bdf
	bdf5x8 []byte
	//go:embed fonts/6x9.bdf
	bdf6x9 []byte
	//go:embed fonts/6x10.bdf
	bdf6x10 []byte
	//go:embed fonts/spleen-5x8.bdf
	bdfSpleen5x8 []byte
	//go:embed fonts/lucasfont-alternate.bdf
	bdfLucasfont []byte
)

// bdfSource parses an embedded BDF font on first use.
type bdfSource struct {
	name string
	data []byte

	once sync.Once
	font *bdf.Font
	err  error
}

var (
	mono5x8Src   = &bdfSource{name: "5x8", data: bdf5x8}
	mono6x9Src   = &bdfSource{name: "6x9", data: bdf6x9}
	fixed6x10Src = &bdfSource{name: "6x10", data: bdf6x10}
	spleen5x8Src = &bdfSource{name: "spleen 5x8", data: bdfSpleen5x8}
	lucasfontSrc = &bdfSource{name: "lucasfont alternate", data: bdfLucasfont}
)

func (s *bdfSource) load() (*bdf.Font, error) {
	s.once.Do(func() {
		s.font, s.err = bdf.Parse(s.data)
		if s.err != nil {
			s.err = fmt.Errorf("parse %s: %w", s.name, s.err)
		}
	})
	return s.font, s.err
}

// bdfCovers reports coverage from the encodings present in the file. The
// face itself falls back to DEFAULT_CHAR, so it cannot be asked.
func bdfCovers(src *bdfSource) func(rune) bool {
	return func(r rune) bool {
		f, err := src.load()
		if err != nil {
			return false
		}
		_, ok := f.CharMap[r]
		return ok
	}
}

// bdfFace returns a face over the parsed font. BDF faces hold no state, so
// every call shares the same font.
func bdfFace(src *bdfSource) func() (xfont.Face, error) {
	return func() (xfont.Face, error) {
		f, err := src.load()
		if err != nil {
			return nil, err
		}
		return f.NewFace(), nil
	}
}
