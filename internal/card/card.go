package card

// PartOfSpeech is the grammatical tag stored in the PartOfSpeech field.
type PartOfSpeech string

const (
	Noun      PartOfSpeech = "n"
	Verb      PartOfSpeech = "v"
	Adjective PartOfSpeech = "a"
	NoPOS     PartOfSpeech = ""
)

// Valid reports whether p is one of the accepted tags.
func (p PartOfSpeech) Valid() bool {
	switch p {
	case Noun, Verb, Adjective, NoPOS:
		return true
	}
	return false
}

// Shoresh holds normalized root letters. A zero Shoresh means no root was
// found on the page, which is distinct from a root that normalized to "".
type Shoresh struct {
	Value string
	Valid bool
}

// RootOf returns a present Shoresh.
func RootOf(s string) Shoresh { return Shoresh{Value: s, Valid: true} }

// NoRoot is the absent Shoresh.
var NoRoot = Shoresh{}

// NumFields is the length of the sequence handed to a sink.
const NumFields = 9

// Field indexes into the sequence returned by Record.Fields.
const (
	FieldHebrew = iota
	FieldDefinition
	FieldGender
	FieldPartOfSpeech
	FieldShoresh
	FieldAudio
	FieldInflections
	FieldExtended
	FieldImage
)

// FieldNames lists field names in sequence order.
var FieldNames = [NumFields]string{
	"Hebrew",
	"Definition",
	"Gender",
	"PartOfSpeech",
	"Shoresh",
	"Audio",
	"Inflections",
	"Extended",
	"Image",
}

// Fields is the unvalidated input to New.
type Fields struct {
	Hebrew       string
	Definition   string
	Gender       Gender
	PartOfSpeech PartOfSpeech
	Shoresh      Shoresh
	Inflections  string
	Extended     string
}

// Record is one flashcard worth of extracted data. Build it with New; the
// zero value is a valid empty record. Audio and Image are placeholders and
// always serialize to "".
type Record struct {
	Hebrew       string       `json:"hebrew"`
	Definition   string       `json:"definition"`
	Gender       Gender       `json:"gender"`
	PartOfSpeech PartOfSpeech `json:"part_of_speech"`
	Shoresh      Shoresh      `json:"shoresh"`
	Audio        string       `json:"audio"`
	Inflections  string       `json:"inflections"`
	Extended     string       `json:"extended"`
	Image        string       `json:"image"`
}

// New validates f and returns the record. A Gender glyph or PartOfSpeech
// outside the accepted set is reset to "" rather than rejected.
func New(f Fields) Record {
	g := f.Gender
	if !g.Valid() {
		g = Unclassified
	}
	pos := f.PartOfSpeech
	if !pos.Valid() {
		pos = NoPOS
	}
	return Record{
		Hebrew:       f.Hebrew,
		Definition:   f.Definition,
		Gender:       g,
		PartOfSpeech: pos,
		Shoresh:      f.Shoresh,
		Inflections:  f.Inflections,
		Extended:     f.Extended,
	}
}

// Fields returns the record as the positional sequence consumed by the
// flashcard editor. An absent Shoresh becomes "".
func (r Record) Fields() []string {
	return []string{
		r.Hebrew,
		r.Definition,
		r.Gender.String(),
		string(r.PartOfSpeech),
		r.Shoresh.Value,
		r.Audio,
		r.Inflections,
		r.Extended,
		r.Image,
	}
}

// Tag returns the Shoresh to attach as a note tag, if one was found.
func (r Record) Tag() (string, bool) {
	return r.Shoresh.Value, r.Shoresh.Valid
}
