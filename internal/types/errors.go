package types

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrConfigMissing means no resolution tier supplied a required value.
	// The wrapped message names every env var and document path checked.
	ErrConfigMissing = errors.New("configuration missing")

	// ErrConfigFileInvalid means the client document exists but failed to
	// parse or is not a mapping at the top level.
	ErrConfigFileInvalid = errors.New("configuration file invalid")

	ErrInvalidBackend = errors.New("invalid backend")
	ErrStoreAccess    = errors.New("client store read/write error")
)

func Err(typedError error, innerErr error, msgTemplate string, args ...any) error {
	if msgTemplate == "" {
		return errors.Join(typedError, innerErr)
	} else {
		return errors.Join(typedError, innerErr, fmt.Errorf(msgTemplate, args...))
	}
}
