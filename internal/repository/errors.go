package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an expected local file is missing or cannot
// be parsed.
var ErrNotFound = errors.New("not found")

type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s not found: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s not found", e.Path)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// ParseError reports a malformed JSON document that must not be silently
// replaced.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
