package metadata

import (
	"errors"
	"fmt"
)

var (
	ErrArgumentInvalid = errors.New("argument invalid")
	ErrModuleExists    = errors.New("module already loaded")
	ErrModuleNotFound  = errors.New("module not found")
	ErrTypeNotFound    = errors.New("type not found")
)

// TypeNotFoundError is returned by Assembly.Type when ThrowOnError is requested.
type TypeNotFoundError struct {
	TypeName string
	Err      error
}

func (e *TypeNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("type not found: %q: %v", e.TypeName, e.Err)
	}
	return fmt.Sprintf("type not found: %q", e.TypeName)
}

func (e *TypeNotFoundError) Is(target error) bool {
	return target == ErrTypeNotFound
}

func (e *TypeNotFoundError) Unwrap() error {
	return e.Err
}
