package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedPartOfSpeech is returned when the subheader names no
	// part of speech we can convert.
	ErrUnsupportedPartOfSpeech = errors.New("unsupported part of speech")
	// ErrMissingStructure is matched by every MissingStructureError.
	ErrMissingStructure = errors.New("missing expected structure")
)

// MissingStructureError names the element a converter expected but the page
// did not have. Slot is the conjugation cell id or paragraph prefix being
// read, empty for page-level elements.
type MissingStructureError struct {
	Slot    string
	Element string
}

func (e *MissingStructureError) Error() string {
	if e.Slot == "" {
		return fmt.Sprintf("%v: %s", ErrMissingStructure, e.Element)
	}
	return fmt.Sprintf("%v: %s in slot %s", ErrMissingStructure, e.Element, e.Slot)
}

func (e *MissingStructureError) Is(target error) bool { return target == ErrMissingStructure }

func missing(slot, element string) error {
	return &MissingStructureError{Slot: slot, Element: element}
}
