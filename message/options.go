package message

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/zostay/go-mailenc/message/chars"
	"github.com/zostay/go-mailenc/message/encoder"
	"github.com/zostay/go-mailenc/message/header/component"
	"github.com/zostay/go-mailenc/message/transfer"
)

type options struct {
	mailType    chars.MailType
	lineLimit   int
	logger      zerolog.Logger
	registry    *transfer.Registry
	concurrency int
	ids         *component.MessageIDGenerator
	clock       func() time.Time
	generate    bool
}

// Option configures Resolve and Encode. Options that do not apply to a call
// are ignored by it.
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{
		mailType:    chars.ASCII,
		lineLimit:   encoder.DefaultLineLimit,
		logger:      zerolog.Nop(),
		registry:    transfer.DefaultRegistry,
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithMailType sets the mail type used by Encode. The default is chars.ASCII.
func WithMailType(mt chars.MailType) Option {
	return func(o *options) {
		o.mailType = mt
	}
}

// WithLineLimit sets the soft line limit used by Encode.
func WithLineLimit(n int) Option {
	return func(o *options) {
		o.lineLimit = n
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegistry sets the transfer encodings available. The default is
// transfer.DefaultRegistry.
func WithRegistry(reg *transfer.Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// WithConcurrency limits the number of bodies Resolve loads at once. A limit
// below 1 means no limit. The default is GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithGeneratedHeaders makes Encode add Date and Message-ID fields to the
// top-level header when they are missing. A nil generator skips Message-ID
// and a nil clock means time.Now.
func WithGeneratedHeaders(ids *component.MessageIDGenerator, clock func() time.Time) Option {
	return func(o *options) {
		o.generate = true
		o.ids = ids
		o.clock = clock
		if o.clock == nil {
			o.clock = time.Now
		}
	}
}
