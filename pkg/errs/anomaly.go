package errs

import (
	"errors"
	"fmt"
)

// ErrAnomaly is never returned as a run failure. It is attached to the error-level
// log entry written when the installed version is newer than the advertised one.
var ErrAnomaly = errors.New("current patch newer than latest")

type AnomalyError struct {
	Current string
	Latest  string
}

func NewAnomaly(current, latest string) error {
	return AnomalyError{Current: current, Latest: latest}
}

func (e AnomalyError) Error() string {
	return fmt.Sprintf("%s: current '%s', latest '%s'", ErrAnomaly.Error(), e.Current, e.Latest)
}

func (e AnomalyError) Is(target error) bool { return target == ErrAnomaly }
