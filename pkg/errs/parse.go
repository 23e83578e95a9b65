package errs

import (
	"errors"
	"fmt"
)

var ErrExtractionParse = errors.New("can't parse version candidate")

// ExtractionParseError describes a single marker occurrence that did not yield a version.
// Index is the position of the marker token in the token sequence.
type ExtractionParseError struct {
	Index int
	Token string
	Err   error
}

func NewExtractionParseError(index int, token string, err error) error {
	return ExtractionParseError{Index: index, Token: token, Err: err}
}

func (e ExtractionParseError) Error() string {
	return fmt.Sprintf("%s at token %d ('%s'): %s", ErrExtractionParse.Error(), e.Index, e.Token, e.Err)
}

func (e ExtractionParseError) Is(target error) bool { return target == ErrExtractionParse }

func (e ExtractionParseError) Unwrap() error { return e.Err }
