// Package errors defines the error categories shared by every layer. Domain errors
// wrap one of the categories so handlers can pick a status code with Is, without
// knowing the concrete error.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")

	// ErrAuthenticationFailed means a payload's MAC did not verify under the supplied
	// key. Callers must not learn anything else about the payload.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrTimeout means a bounded operation, such as factoring p-1, ran out of time.
	ErrTimeout = errors.New("timeout")
)

func New(message string) error {
	return errors.New(message)
}

// Wrap prefixes err with message, keeping it matchable with Is. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}
