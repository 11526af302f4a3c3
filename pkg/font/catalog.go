// Package font provides the fonts available for badge messages and renders
// text into badge bitmaps.
//
// Fonts are addressed by a family code and a subtype key, the way messages
// are stored by the badge applications. Resolution is strict: an unknown
// family, an unknown subtype or a character the font cannot draw is an
// error, never a silent substitution.
package font

import (
	"fmt"

	"github.com/sagostin/ledbadge/pkg/badge"
	xfont "golang.org/x/image/font"
)

// Family selects between the two kinds of fonts.
type Family int

const (
	// FixedMono fonts have one fixed-size cell per character.
	FixedMono Family = iota
	// VectorBitmap fonts may have variable advances. The family holds
	// compact bitmap faces as well as outline fonts rendered to 1-bit
	// pixels.
	VectorBitmap
)

func (f Family) String() string {
	switch f {
	case FixedMono:
		return "FixedMono"
	case VectorBitmap:
		return "VectorBitmap"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// ID names one concrete font. The set is closed; Lookup is the only way to
// turn user input into an ID.
type ID int

const (
	Mono5x8 ID = iota
	Mono6x9
	LucasfontAlternate
	Spleen5x8
	Fixed6x10
	GoRegular
	GoBold
	GoMono
)

// Spec is a resolved font: its identity and the fixed pixel metrics used to
// place rendered text on the display.
type Spec struct {
	ID      ID
	Family  Family
	Subtype string

	// CellHeight is the height of the rendered bitmap in pixels.
	CellHeight int

	// Ascent is the number of cell rows above the glyph baseline.
	Ascent int

	// Baseline is the display row the glyph baseline is placed on. Glyph
	// bodies end on the row above it, descenders start on it.
	Baseline int

	covers  func(r rune) bool
	newFace func() (xfont.Face, error)
}

// Top returns the display row of the first cell row.
func (s Spec) Top() int {
	return s.Baseline - s.Ascent
}

// Covers reports whether the font has a glyph for r.
func (s Spec) Covers(r rune) bool {
	if s.covers == nil {
		return false
	}
	return s.covers(r)
}

// String returns "family/subtype".
func (s Spec) String() string {
	return s.Family.String() + "/" + s.Subtype
}

// ResolutionError reports an unknown font or a character a font cannot draw.
type ResolutionError struct {
	Family  int
	Subtype string
	Rune    rune
	Pos     int // byte offset of Rune in the text, -1 when not about a character
	Reason  string
}

func (e *ResolutionError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("font %d/%q cannot draw %q at offset %d", e.Family, e.Subtype, e.Rune, e.Pos)
	}
	return fmt.Sprintf("font %d/%q: %s", e.Family, e.Subtype, e.Reason)
}

// catalog lists every known font in ID order. The bitmap faces sit where
// the badge applications draw them, so saved messages look the same.
var catalog = []Spec{
	{ID: Mono5x8, Family: FixedMono, Subtype: "5x8",
		CellHeight: 8, Ascent: 7, Baseline: badge.TextBaseline,
		covers: bdfCovers(mono5x8Src), newFace: bdfFace(mono5x8Src)},
	{ID: Mono6x9, Family: FixedMono, Subtype: "6x9",
		CellHeight: 9, Ascent: 7, Baseline: 8,
		covers: bdfCovers(mono6x9Src), newFace: bdfFace(mono6x9Src)},
	{ID: LucasfontAlternate, Family: VectorBitmap, Subtype: "lucasfont alternate tf",
		CellHeight: 9, Ascent: 7, Baseline: 8,
		covers: bdfCovers(lucasfontSrc), newFace: bdfFace(lucasfontSrc)},
	{ID: Spleen5x8, Family: VectorBitmap, Subtype: "spleen 5x8 me",
		CellHeight: 8, Ascent: 7, Baseline: 8,
		covers: bdfCovers(spleen5x8Src), newFace: bdfFace(spleen5x8Src)},
	{ID: Fixed6x10, Family: VectorBitmap, Subtype: "6x10 tf",
		CellHeight: 10, Ascent: 8, Baseline: 7,
		covers: bdfCovers(fixed6x10Src), newFace: bdfFace(fixed6x10Src)},
	{ID: GoRegular, Family: VectorBitmap, Subtype: "go regular",
		CellHeight: badge.Height, Ascent: 9, Baseline: badge.TextBaseline,
		covers: vectorCovers(goRegularTTF), newFace: vectorFace(goRegularTTF)},
	{ID: GoBold, Family: VectorBitmap, Subtype: "go bold",
		CellHeight: badge.Height, Ascent: 9, Baseline: badge.TextBaseline,
		covers: vectorCovers(goBoldTTF), newFace: vectorFace(goBoldTTF)},
	{ID: GoMono, Family: VectorBitmap, Subtype: "go mono",
		CellHeight: badge.Height, Ascent: 9, Baseline: badge.TextBaseline,
		covers: vectorCovers(goMonoTTF), newFace: vectorFace(goMonoTTF)},
}

// Lookup resolves a family code (0 = FixedMono, 1 = VectorBitmap) and a
// subtype key to a font. Subtype keys are matched exactly.
func Lookup(familyCode int, subtypeKey string) (Spec, error) {
	if familyCode != int(FixedMono) && familyCode != int(VectorBitmap) {
		return Spec{}, &ResolutionError{Family: familyCode, Subtype: subtypeKey, Pos: -1, Reason: "unknown font family"}
	}
	for _, s := range catalog {
		if int(s.Family) == familyCode && s.Subtype == subtypeKey {
			return s, nil
		}
	}
	return Spec{}, &ResolutionError{Family: familyCode, Subtype: subtypeKey, Pos: -1, Reason: "unknown font subtype"}
}

// All returns every known font in ID order.
func All() []Spec {
	out := make([]Spec, len(catalog))
	copy(out, catalog)
	return out
}

// Subtypes returns the subtype keys known for a family.
func Subtypes(f Family) []string {
	var keys []string
	for _, s := range catalog {
		if s.Family == f {
			keys = append(keys, s.Subtype)
		}
	}
	return keys
}
