package store

import (
	"time"

	"github.com/hyperifyio/hebcard/internal/card"
)

// Note is one flashcard as the editor sees it: positional fields plus tags.
type Note struct {
	GUID      string
	URL       string
	Fields    [card.NumFields]string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SetField writes a field by position. Out of range positions are ignored,
// the same as an editor with fewer fields.
func (n *Note) SetField(i int, v string) {
	if i < 0 || i >= len(n.Fields) {
		return
	}
	n.Fields[i] = v
}

// AddTag appends tag unless the note already has it.
func (n *Note) AddTag(tag string) {
	for _, t := range n.Tags {
		if t == tag {
			return
		}
	}
	n.Tags = append(n.Tags, tag)
}

// Hebrew is the headword field.
func (n *Note) Hebrew() string { return n.Fields[card.FieldHebrew] }
