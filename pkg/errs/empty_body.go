package errs

import "errors"

var ErrEmptyBody = errors.New("empty response body")
