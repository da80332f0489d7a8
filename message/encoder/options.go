package encoder

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/zostay/go-mailenc/message/chars"
	"github.com/zostay/go-mailenc/message/encword"
)

const (
	// DefaultLineLimit is the soft line length limit of RFC 5322.
	DefaultLineLimit = 78

	// HardLineLimit is the line length (excluding CRLF) no line may exceed.
	HardLineLimit = 998
)

var (
	// ErrLineLimitTooShort is returned by New when the line limit could not
	// hold a single encoded-word and the leading white space before it.
	ErrLineLimitTooShort = errors.New("line limit must be longer than the encoded-word limit")

	// ErrLineLimitTooLong is returned by New when the line limit is beyond the
	// hard limit of RFC 5322.
	ErrLineLimitTooLong = errors.New("line limit must not exceed 998")
)

// Option configures an Encoder.
type Option func(*Encoder)

// WithMailType sets the mail type. The default is chars.ASCII.
func WithMailType(mt chars.MailType) Option {
	return func(e *Encoder) {
		e.mailType = mt
	}
}

// WithLineLimit sets the soft line limit. The default is DefaultLineLimit.
func WithLineLimit(n int) Option {
	return func(e *Encoder) {
		e.limit = n
	}
}

// WithLogger sets the logger used to report lines that could not be folded.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Encoder) {
		e.logger = logger
	}
}

func (e *Encoder) validate() error {
	if e.limit <= encword.MaxLength {
		return ErrLineLimitTooShort
	}
	if e.limit > HardLineLimit {
		return ErrLineLimitTooLong
	}
	return nil
}
