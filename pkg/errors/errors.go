// Package errors defines the sentinel errors shared across the search
// engine and its corpus collaborators.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrCorpusUnavailable indicates the corpus source failed to supply
	// articles. The engine keeps serving from its previous snapshot.
	ErrCorpusUnavailable = errors.New("corpus unavailable")

	// ErrMalformedCorpus indicates the source returned a payload that
	// could not be decoded into article records.
	ErrMalformedCorpus = errors.New("malformed corpus payload")

	// ErrNotBuilt indicates a query arrived before the first successful
	// index build.
	ErrNotBuilt = errors.New("index not built")
)

// AppError pairs a sentinel with operation context.
type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New wraps a sentinel with a message.
func New(sentinel error, message string) *AppError {
	return &AppError{Err: sentinel, Message: message}
}

// Newf wraps a sentinel with a formatted message.
func Newf(sentinel error, format string, args ...any) *AppError {
	return &AppError{Err: sentinel, Message: fmt.Sprintf(format, args...)}
}
