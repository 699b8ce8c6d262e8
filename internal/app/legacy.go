package app

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hyperifyio/hebcard/internal/card"
	"github.com/hyperifyio/hebcard/internal/extract"
	"github.com/hyperifyio/hebcard/internal/hebrew"
)

// WriteLegacy prints a converted page one value per line in the order the
// old debug script used. The order differs per part of speech and is not
// the card field order.
func WriteLegacy(w io.Writer, res extract.Result) error {
	bw := bufio.NewWriter(w)
	r := res.Record
	line := func(s string) { fmt.Fprintln(bw, s) }
	root := func() {
		if tag, ok := r.Tag(); ok {
			line(tag)
		}
	}

	switch res.Kind {
	case extract.KindVerb:
		line(r.Inflections)
		line(r.Hebrew)
		line(r.Definition)
		root()
		for _, g := range hebrew.LegacyBinyanGlyphs {
			line(g)
		}
	case extract.KindNoun:
		line(r.Hebrew)
		line(r.Definition)
		line(legacyNounGender(res.GenderToken))
		root()
		line(r.Inflections)
		line(r.Extended)
	case extract.KindAdjective:
		line(r.Hebrew)
		line(r.Definition)
		line(card.Masculine)
		root()
		line(r.Inflections)
		// Extended already holds the singular and plural pronunciation lines.
		for _, l := range strings.Split(r.Extended, "\n") {
			line(l)
		}
	default:
		return fmt.Errorf("%w: %v", extract.ErrUnsupportedPartOfSpeech, res.Kind)
	}
	return bw.Flush()
}

// legacyNounGender is the debug script's rule: feminine when the token says
// so, masculine otherwise. A page without the paragraph prints a blank line.
func legacyNounGender(token *string) string {
	if token == nil {
		return ""
	}
	if strings.Contains(*token, "fem") {
		return card.Feminine
	}
	return card.Masculine
}
