// Package extract turns a dictionary entry page into a card.Record.
//
// Each converter trusts the page layout it was written against: a missing
// element fails the whole conversion with a *MissingStructureError, and no
// partial record is ever returned.
package extract

import (
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/hebcard/internal/card"
	"github.com/hyperifyio/hebcard/internal/hebrew"
	"github.com/hyperifyio/hebcard/internal/inflect"
)

// Result is a converted page.
type Result struct {
	Kind   Kind
	Record card.Record
	// GenderToken is the last word of the "Noun ..." paragraph. Only nouns
	// set it, and only when the paragraph exists.
	GenderToken *string
}

// Convert classifies the page by its subheader and runs the matching
// converter.
func Convert(p *Page) (Result, error) {
	sub, err := p.Subheader()
	if err != nil {
		return Result{}, err
	}
	kind, err := Classify(sub)
	if err != nil {
		return Result{}, err
	}
	log.Debug().Str("kind", kind.String()).Str("subheader", strings.TrimSpace(sub)).Msg("classified page")
	return ConvertAs(kind, p)
}

// ConvertAs runs the converter for kind without looking at the subheader
// for classification.
func ConvertAs(kind Kind, p *Page) (Result, error) {
	switch kind {
	case KindVerb:
		return ConvertVerb(p)
	case KindNoun:
		return ConvertNoun(p)
	case KindAdjective:
		return ConvertAdjective(p)
	}
	return Result{}, fmt.Errorf("%w: %v", ErrUnsupportedPartOfSpeech, kind)
}

// ConvertVerb reads every conjugation cell, renders the grid, and uses the
// infinitive as the headword. The binyan goes in the Gender field.
func ConvertVerb(p *Page) (Result, error) {
	root, err := findText(p.doc.Selection, "", "span.menukad")
	if err != nil {
		return Result{}, err
	}
	def, err := p.definition()
	if err != nil {
		return Result{}, err
	}

	cells := make(map[string]template.HTML, len(inflect.Slots))
	var inf string
	for _, s := range inflect.Slots {
		f, err := slotForm(p.doc.Selection, s.ID, false)
		if err != nil {
			return Result{}, err
		}
		cells[s.Var] = inflect.Ruby(f.word, f.pronunciation)
		if s.ID == inflect.Infinitive {
			inf = f.word
		}
	}

	// a page without a subheader has no binyan
	sub, err := p.Subheader()
	if err != nil && !errors.Is(err, ErrMissingStructure) {
		return Result{}, err
	}
	table, err := inflect.Render(cells)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Kind: KindVerb,
		Record: card.New(card.Fields{
			Hebrew:       inf,
			Definition:   def,
			Gender:       card.BinyanOf(hebrew.ExtractBinyan(sub)),
			PartOfSpeech: card.Verb,
			Shoresh:      hebrew.NormalizeRoot(&root),
			Inflections:  table,
		}),
	}, nil
}

// ConvertNoun reads the singular and, when the page has one, the plural.
func ConvertNoun(p *Page) (Result, error) {
	root, err := p.rootText()
	if err != nil {
		return Result{}, err
	}
	def, err := p.definition()
	if err != nil {
		return Result{}, err
	}
	t, err := p.table()
	if err != nil {
		return Result{}, err
	}
	sg, err := slotForm(t, "s", false)
	if err != nil {
		return Result{}, err
	}
	var pl form
	if t.Find(`div[id="p"]`).Length() > 0 {
		if pl, err = slotForm(t, "p", false); err != nil {
			return Result{}, err
		}
	}

	var token *string
	if para, ok := p.lastParagraph("Noun"); ok {
		words := strings.Split(para.Text(), " ")
		token = &words[len(words)-1]
	}

	return Result{
		Kind: KindNoun,
		Record: card.New(card.Fields{
			Hebrew:       sg.word,
			Definition:   def,
			Gender:       nounGender(token),
			PartOfSpeech: card.Noun,
			Shoresh:      hebrew.NormalizeRoot(root),
			Inflections:  pl.word,
			Extended:     sg.pronunciation + ", " + pl.pronunciation,
		}),
		GenderToken: token,
	}, nil
}

// nounGender resolves the gender token. "fem" is tested first, so a token
// naming both genders is feminine.
func nounGender(token *string) card.Gender {
	switch {
	case token == nil:
		return card.Unclassified
	case strings.Contains(*token, "fem"):
		return card.NounGenderOf(card.Feminine)
	case strings.Contains(*token, "mas"):
		return card.NounGenderOf(card.Masculine)
	}
	return card.Unclassified
}

// adjective cells, masculine then feminine
var adjectiveSlots = [4]string{"ms-a", "mp-a", "fs-a", "fp-a"}

// ConvertAdjective joins masculine and feminine forms with " / ". Adjectives
// carry the noun tag and no gender.
func ConvertAdjective(p *Page) (Result, error) {
	root, err := p.rootText()
	if err != nil {
		return Result{}, err
	}
	def, err := p.definition()
	if err != nil {
		return Result{}, err
	}
	t, err := p.table()
	if err != nil {
		return Result{}, err
	}
	var forms [4]form
	for i, id := range adjectiveSlots {
		if forms[i], err = slotForm(t, id, true); err != nil {
			return Result{}, err
		}
	}
	ms, mp, fs, fp := forms[0], forms[1], forms[2], forms[3]

	return Result{
		Kind: KindAdjective,
		Record: card.New(card.Fields{
			Hebrew:       ms.word + " / " + fs.word,
			Definition:   def,
			Gender:       card.Unclassified,
			PartOfSpeech: card.Noun,
			Shoresh:      hebrew.NormalizeRoot(root),
			Inflections:  mp.word + " / " + fp.word,
			Extended:     ms.pronunciation + " / " + fs.pronunciation + "\n" + mp.pronunciation + " / " + fp.pronunciation,
		}),
	}, nil
}
