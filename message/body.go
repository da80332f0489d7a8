package message

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/zostay/go-mailenc/message/file"
	"github.com/zostay/go-mailenc/message/header/param"
	"github.com/zostay/go-mailenc/message/transfer"
)

// Source loads the data of a body. Load is called at most once per Resolve and
// may be called from any goroutine.
type Source interface {
	Load(ctx context.Context) (*file.Buffer, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (*file.Buffer, error)

// Load calls f.
func (f SourceFunc) Load(ctx context.Context) (*file.Buffer, error) {
	return f(ctx)
}

// FileSource loads a file from disk. The file name, modification date and size
// are kept in the buffer metadata.
type FileSource struct {
	Path string

	// MediaType is used as-is when set. Otherwise it is guessed from the file
	// extension, falling back to application/octet-stream.
	MediaType *param.Value
}

// Load reads the file.
func (fs FileSource) Load(ctx context.Context) (*file.Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(fs.Path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(fs.Path)
	if err != nil {
		return nil, err
	}

	mt := fs.MediaType
	if mt == nil {
		if guess := mime.TypeByExtension(filepath.Ext(fs.Path)); guess != "" {
			mt, _ = param.Parse(guess)
		}
	}

	buf := file.New(mt, data)
	modTime := info.ModTime()
	size := info.Size()
	buf.Meta = file.Meta{
		FileName:         filepath.Base(fs.Path),
		ModificationDate: &modTime,
		Size:             &size,
	}
	return buf, nil
}

// State is where a Body is on its way to being written.
type State int

const (
	Pending  State = iota // waiting for its Source
	Resolved              // raw data loaded, not transfer encoded
	Encoded               // transfer encoded, ready to write
	Failed                // loading or encoding failed
)

var stateNames = map[State]string{
	Pending:  "pending",
	Resolved: "resolved",
	Encoded:  "encoded",
	Failed:   "failed",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Body is the data of a SingleBody. Resolve moves it from Pending through
// Resolved to Encoded, or to Failed.
type Body struct {
	// Preferred is the transfer encoding to apply. With transfer.None, the
	// Content-Transfer-Encoding field of the mail is used when there is one,
	// otherwise an encoding is selected from the media type.
	Preferred transfer.Encoding

	source Source
	buf    *file.Buffer
	enc    *transfer.Encoded
	err    error
}

// NewBody returns a Resolved body holding buf.
func NewBody(buf *file.Buffer) *Body {
	return &Body{buf: buf}
}

// NewPendingBody returns a Pending body to be loaded from src.
func NewPendingBody(src Source) *Body {
	return &Body{source: src}
}

// NewEncodedBody returns a body that has already been transfer encoded.
func NewEncodedBody(enc *transfer.Encoded) *Body {
	return &Body{enc: enc, Preferred: enc.Encoding}
}

// State returns the current state.
func (b *Body) State() State {
	switch {
	case b.err != nil:
		return Failed
	case b.enc != nil:
		return Encoded
	case b.buf != nil:
		return Resolved
	}
	return Pending
}

// Buffer returns the raw data, or nil before it is loaded. A body created
// with NewEncodedBody has no raw data.
func (b *Body) Buffer() *file.Buffer {
	return b.buf
}

// Encoded returns the transfer encoded data, or nil before it is encoded.
func (b *Body) Encoded() *transfer.Encoded {
	return b.enc
}

// Err returns the failure of a Failed body.
func (b *Body) Err() error {
	return b.err
}

func (b *Body) fail(err error) error {
	b.err = err
	return fmt.Errorf("%w: %w", ErrBodyFailed, err)
}

// resolve loads and encodes the body with the preferred encoding. It must not
// run concurrently with anything else touching b.
func (b *Body) resolve(ctx context.Context, reg *transfer.Registry, preferred transfer.Encoding) error {
	switch b.State() {
	case Failed:
		return fmt.Errorf("%w: %w", ErrBodyFailed, b.err)
	case Encoded:
		return nil
	case Pending:
		if b.source == nil {
			return b.fail(ErrNoSource)
		}
		buf, err := b.source.Load(ctx)
		if err != nil {
			return b.fail(err)
		}
		if buf == nil {
			buf = file.New(nil, nil)
		}
		b.buf = buf
	}

	enc, err := reg.Encode(b.buf, preferred)
	if err != nil {
		return b.fail(err)
	}
	b.enc = enc
	return nil
}

// transferEncoded returns the encoded data without changing b. Raw data is
// encoded on the fly.
func (b *Body) transferEncoded(reg *transfer.Registry, preferred transfer.Encoding) (*transfer.Encoded, error) {
	switch b.State() {
	case Failed:
		return nil, fmt.Errorf("%w: %w", ErrBodyFailed, b.err)
	case Encoded:
		return b.enc, nil
	case Resolved:
		return reg.Encode(b.buf, preferred)
	}
	return nil, ErrUnresolvedBody
}
