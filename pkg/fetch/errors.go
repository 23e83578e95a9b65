package fetch

import "fmt"

var ErrPageTooLarge = fmt.Errorf("page exceeds the %d bytes limit", maxPageSize)

type StatusCodeError struct {
	StatusCode int
	Link       string
}

func (e *StatusCodeError) Error() string {
	return fmt.Sprintf("statusCode %v for the link %s", e.StatusCode, e.Link)
}
