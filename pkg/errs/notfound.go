package errs

import (
	"errors"
	"fmt"
)

var ErrVersionNotFound = errors.New("no acceptable version found")

func NewVersionNotFound(link string) VersionNotFoundError {
	return VersionNotFoundError{
		link: link,
	}
}

type VersionNotFoundError struct {
	link string
}

func (e VersionNotFoundError) Error() string {
	return fmt.Sprintf("%s on the page '%s'", ErrVersionNotFound.Error(), e.link)
}

func (e VersionNotFoundError) Is(target error) bool { return target == ErrVersionNotFound }
