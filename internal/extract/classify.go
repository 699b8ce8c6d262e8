package extract

import (
	"fmt"

	"github.com/hyperifyio/hebcard/internal/hebrew"
)

// Kind selects a converter.
type Kind int

const (
	KindNoun Kind = iota + 1
	KindVerb
	KindAdjective
)

func (k Kind) String() string {
	switch k {
	case KindNoun:
		return "noun"
	case KindVerb:
		return "verb"
	case KindAdjective:
		return "adjective"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindFromCode maps the one-letter codes of the debug command. Unknown codes
// report ok=false.
func KindFromCode(code string) (Kind, bool) {
	switch code {
	case "n":
		return KindNoun, true
	case "v":
		return KindVerb, true
	case "a":
		return KindAdjective, true
	}
	return 0, false
}

// Classify picks the converter for a subheader. "noun" is checked before
// "verb" and "verb" before "adjective"; the first substring hit wins.
func Classify(subheader string) (Kind, error) {
	switch {
	case hebrew.ContainsFold(subheader, "noun"):
		return KindNoun, nil
	case hebrew.ContainsFold(subheader, "verb"):
		return KindVerb, nil
	case hebrew.ContainsFold(subheader, "adjective"):
		return KindAdjective, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedPartOfSpeech, subheader)
}
