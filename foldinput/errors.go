package foldinput

import "fmt"

// ErrEmptySequence is returned when a mandatory sequence is blank
var ErrEmptySequence = fmt.Errorf("sequence is empty")

// UnsupportedBaseError is returned when the terminal base of a mandatory
// methylation has no CCD code
type UnsupportedBaseError struct {
	Base     rune
	Position int
}

func (e *UnsupportedBaseError) Error() string {
	return fmt.Sprintf("unexpected base for methylation: %q at position %d", e.Base, e.Position)
}
