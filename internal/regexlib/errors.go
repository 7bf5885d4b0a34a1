package regexlib

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyAlphabet       = errors.New("empty alphabet")
	ErrEmptyExpression     = errors.New("empty expression")
	ErrMalformedExpression = errors.New("malformed expression")
	ErrUnknownSymbol       = errors.New("unknown symbol")
	ErrInvalidSymbol       = errors.New("invalid alphabet symbol")
	ErrTooManyStates       = errors.New("too many DFA states")
)

// SyntaxError pins a failure to a byte offset of the normalized expression
// (whitespace removed) or, for ErrInvalidSymbol, of the alphabet entry list.
type SyntaxError struct {
	Err    error
	Offset int
	Detail string
}

func (e *SyntaxError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
	}
	return fmt.Sprintf("%v at offset %d: %s", e.Err, e.Offset, e.Detail)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

func syntaxErr(err error, offset int, format string, args ...any) error {
	return &SyntaxError{Err: err, Offset: offset, Detail: fmt.Sprintf(format, args...)}
}

// Kind maps an error returned by this package to a stable identifier
// suitable for API responses.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyAlphabet):
		return "empty-alphabet"
	case errors.Is(err, ErrEmptyExpression):
		return "empty-expression"
	case errors.Is(err, ErrMalformedExpression):
		return "malformed-expression"
	case errors.Is(err, ErrUnknownSymbol):
		return "unknown-symbol"
	case errors.Is(err, ErrInvalidSymbol):
		return "invalid-symbol"
	case errors.Is(err, ErrTooManyStates):
		return "too-many-states"
	default:
		return "internal"
	}
}

// IsInputError reports whether err was caused by the caller's alphabet or
// expression rather than by the engine itself.
func IsInputError(err error) bool {
	k := Kind(err)
	return k != "" && k != "internal"
}
