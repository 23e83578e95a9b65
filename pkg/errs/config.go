package errs

import (
	"errors"
	"fmt"
)

var ErrConfiguration = errors.New("configuration error")

type ConfigurationError struct {
	Key    string
	Reason string
	Err    error
}

func NewConfigurationError(key, reason string) error {
	return ConfigurationError{Key: key, Reason: reason}
}

// WrapConfigurationError reports err as the reason key can't be used.
func WrapConfigurationError(key string, err error) error {
	return ConfigurationError{Key: key, Reason: err.Error(), Err: err}
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("%s: '%s' %s", ErrConfiguration.Error(), e.Key, e.Reason)
}

func (e ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

func (e ConfigurationError) Unwrap() error { return e.Err }
