package component

import (
	"errors"
	"fmt"

	"github.com/zostay/go-mailenc/message/encoder"
)

// Component is a header field body, or part of one, that can write itself.
type Component interface {
	Encode(e *encoder.Encoder) error
}

// Func adapts a plain function to Component.
type Func func(e *encoder.Encoder) error

// Encode calls f.
func (f Func) Encode(e *encoder.Encoder) error {
	return f(e)
}

var (
	// ErrNonEncodable is matched by every NonEncodableError.
	ErrNonEncodable = errors.New("value cannot be encoded")

	// ErrNotASCII is the reason given when non-ASCII text is found where
	// no fallback exists for ASCII mail.
	ErrNotASCII = errors.New("non-ASCII text in ASCII mail")

	// ErrControlChar is the reason given when a control character cannot be
	// escaped.
	ErrControlChar = errors.New("control character")

	// ErrEmpty is the reason given when a value must not be empty.
	ErrEmpty = errors.New("empty value")

	// ErrDomainLiteral is the reason given for domain literals, which are
	// not supported.
	ErrDomainLiteral = errors.New("domain literals are not supported")

	// ErrInvalidSyntax is the reason given when a value does not follow its
	// grammar.
	ErrInvalidSyntax = errors.New("invalid syntax")
)

// NonEncodableError reports a component value that cannot be written, even
// after quoting or encoded-word fallback.
type NonEncodableError struct {
	Component string
	Value     string
	Reason    error
}

// Error describes the component, the value, and the reason.
func (err *NonEncodableError) Error() string {
	return fmt.Sprintf("cannot encode %s %q: %v", err.Component, err.Value, err.Reason)
}

// Unwrap returns the reason.
func (err *NonEncodableError) Unwrap() error {
	return err.Reason
}

// Is matches ErrNonEncodable.
func (err *NonEncodableError) Is(target error) bool {
	return target == ErrNonEncodable
}

func nonEncodable(component, value string, reason error) error {
	return &NonEncodableError{Component: component, Value: value, Reason: reason}
}
