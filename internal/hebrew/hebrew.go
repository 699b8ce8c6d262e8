// Package hebrew holds the text rules shared by every converter: root letter
// normalization, binyan detection, and case-insensitive matching.
package hebrew

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/hyperifyio/hebcard/internal/card"
)

// Maqaf is the Hebrew hyphen placed between root letters.
const Maqaf = '־'

// Glyphs for the binyanim that have no slot in the Gender field.
const (
	PualGlyph  = "פֻּעַ"
	HufalGlyph = "הֻפְ"
)

type binyan struct {
	name  string
	glyph string
}

// checked in this order; the first hit wins
var binyanim = []binyan{
	{"Pa'al", card.PaalGlyph},
	{"Pi'el", card.PielGlyph},
	{"Hif'il", card.HifilGlyph},
	{"Hitpa'el", card.HitpaelGlyph},
	{"Nif'al", card.NifalGlyph},
	{"Pu'al", PualGlyph},
	{"Huf'al", HufalGlyph},
}

// LegacyBinyanGlyphs is the cheat list printed after a verb by the debug
// command.
var LegacyBinyanGlyphs = []string{
	card.PaalGlyph,
	card.PielGlyph,
	card.HifilGlyph,
	card.HitpaelGlyph,
	card.NifalGlyph,
}

// NormalizeRoot turns the root text from a page into the Shoresh field.
// A nil or empty input means no root was found. Otherwise ASCII hyphens
// become maqaf and all whitespace is dropped, which may leave a present but
// empty root.
func NormalizeRoot(raw *string) card.Shoresh {
	if raw == nil || *raw == "" {
		return card.NoRoot
	}
	s := strings.ReplaceAll(*raw, "-", string(Maqaf))
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return card.RootOf(s)
}

// ExtractBinyan returns the glyph of the first binyan named in text, or "".
func ExtractBinyan(text string) string {
	for _, b := range binyanim {
		if ContainsFold(text, b.name) {
			return b.glyph
		}
	}
	return ""
}

// ContainsFold reports whether substr is within s under Unicode case folding.
func ContainsFold(s, substr string) bool {
	fold := cases.Fold()
	return strings.Contains(fold.String(s), fold.String(substr))
}
