package card

import "encoding/json"

// GenderKind says what the Gender field is carrying. Nouns store a gender
// glyph there and verbs store their binyan; everything else is unclassified.
type GenderKind int

const (
	KindUnclassified GenderKind = iota
	KindNounGender
	KindVerbBinyan
)

// Glyphs accepted in the Gender field.
const (
	Feminine  = "נ"
	Masculine = "ז"

	PaalGlyph    = "פָּעַ"
	PielGlyph    = "פִּעֵ"
	HifilGlyph   = "הִפְ"
	HitpaelGlyph = "הִתְ"
	NifalGlyph   = "נִפְ"
)

var validGlyphs = map[string]struct{}{
	"":           {},
	Feminine:     {},
	Masculine:    {},
	PaalGlyph:    {},
	PielGlyph:    {},
	HifilGlyph:   {},
	HitpaelGlyph: {},
	NifalGlyph:   {},
}

// Gender is the tagged value behind the exported Gender field.
type Gender struct {
	Kind  GenderKind
	Glyph string
}

// Unclassified is the empty Gender.
var Unclassified = Gender{}

// NounGenderOf tags a noun gender glyph.
func NounGenderOf(glyph string) Gender {
	if glyph == "" {
		return Unclassified
	}
	return Gender{Kind: KindNounGender, Glyph: glyph}
}

// BinyanOf tags a verb binyan glyph.
func BinyanOf(glyph string) Gender {
	if glyph == "" {
		return Unclassified
	}
	return Gender{Kind: KindVerbBinyan, Glyph: glyph}
}

// Valid reports whether the glyph is one the editor accepts. Pu'al and
// Huf'al glyphs are not.
func (g Gender) Valid() bool {
	_, ok := validGlyphs[g.Glyph]
	return ok
}

func (g Gender) String() string { return g.Glyph }

func (g Gender) MarshalJSON() ([]byte, error) { return json.Marshal(g.Glyph) }

// MarshalJSON encodes an absent root as null.
func (s Shoresh) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}
