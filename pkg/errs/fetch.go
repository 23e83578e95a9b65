package errs

import (
	"errors"
	"fmt"
)

var ErrFetch = errors.New("can't fetch the update page")

type FetchError struct {
	URL string
	Err error
}

func NewFetchError(url string, err error) error {
	return FetchError{URL: url, Err: err}
}

func (e FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s '%s'", ErrFetch.Error(), e.URL)
	}
	return fmt.Sprintf("%s '%s': %s", ErrFetch.Error(), e.URL, e.Err)
}

func (e FetchError) Is(target error) bool { return target == ErrFetch }

func (e FetchError) Unwrap() error { return e.Err }
