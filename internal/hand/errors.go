package hand

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/mahjongg/internal/meld"
)

var (
	// ErrMalformedInput means the caller passed a hand that cannot be read.
	ErrMalformedInput = errors.New("malformed hand")
	// ErrInvalidMeld means a meld token is not a valid meld.
	ErrInvalidMeld = errors.New("invalid meld")
	// ErrRecursiveEvaluation means evaluating a hand needed its own result.
	ErrRecursiveEvaluation = errors.New("recursive hand evaluation")
)

// MalformedInputError describes an encoded hand that violates the grammar.
type MalformedInputError struct {
	Input  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed hand %q: %s", e.Input, e.Reason)
}

func (e *MalformedInputError) Unwrap() error {
	return ErrMalformedInput
}

func malformed(input, format string, args ...any) error {
	return &MalformedInputError{Input: input, Reason: fmt.Sprintf(format, args...)}
}

// InvalidMeldError lists every invalid meld of a hand.
type InvalidMeldError struct {
	Input string
	Melds []*meld.InvalidError
}

func (e *InvalidMeldError) Error() string {
	parts := make([]string, len(e.Melds))
	for i, m := range e.Melds {
		parts[i] = fmt.Sprintf("%s (%s)", m.Text, m.Reason)
	}
	return fmt.Sprintf("hand %q has invalid melds: %s", e.Input, strings.Join(parts, ", "))
}

func (e *InvalidMeldError) Unwrap() error {
	return ErrInvalidMeld
}

// RecursiveEvaluationError is returned by the cache when a hand is requested
// while it is still being evaluated.
type RecursiveEvaluationError struct {
	Input string
}

func (e *RecursiveEvaluationError) Error() string {
	return fmt.Sprintf("hand %q requested while being evaluated", e.Input)
}

func (e *RecursiveEvaluationError) Unwrap() error {
	return ErrRecursiveEvaluation
}
