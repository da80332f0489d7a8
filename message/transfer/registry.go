package transfer

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/zostay/go-mailenc/message/file"
)

// ErrUnknownEncoding is matched by every UnknownEncodingError.
var ErrUnknownEncoding = errors.New("unknown transfer encoding")

// UnknownEncodingError is returned when a registry has no Transcoding for the
// requested encoding.
type UnknownEncodingError struct {
	Encoding Encoding
}

// Error names the missing encoding.
func (err *UnknownEncodingError) Error() string {
	return fmt.Sprintf("%s %q", ErrUnknownEncoding, string(err.Encoding))
}

// Unwrap returns ErrUnknownEncoding.
func (err *UnknownEncodingError) Unwrap() error {
	return ErrUnknownEncoding
}

// AsIsTranscoder is just a shortcut to a no-op encoder/decoder.
var AsIsTranscoder = Transcoding{Encoder: NewAsIsEncoder, Decoder: NewAsIsDecoder}

// Registry maps encodings to their Transcoding. A Registry is immutable and
// safe for concurrent use.
type Registry struct {
	ts map[Encoding]Transcoding
}

// DefaultRegistry holds the encodings of RFC 2045.
var DefaultRegistry = NewRegistry(nil)

// NewRegistry builds a registry of the RFC 2045 encodings plus the given
// extensions. An extension with the name of a standard encoding replaces it.
func NewRegistry(ext map[Encoding]Transcoding) *Registry {
	ts := map[Encoding]Transcoding{
		Bit7:   {Check: Check7Bit, Encoder: NewAsIsEncoder, Decoder: NewAsIsDecoder},
		Bit8:   {Check: Check8Bit, Encoder: NewAsIsEncoder, Decoder: NewAsIsDecoder},
		Binary: AsIsTranscoder,
		QuotedPrintable: {
			Encoder:       NewQuotedPrintableEncoder,
			BinaryEncoder: NewBinaryQuotedPrintableEncoder,
			Decoder:       NewQuotedPrintableDecoder,
		},
		Base64: {Encoder: NewBase64Encoder, Decoder: NewBase64Decoder},
	}
	for enc, tc := range ext {
		ts[ParseEncoding(string(enc))] = tc
	}
	return &Registry{ts}
}

// Lookup returns the Transcoding for the encoding.
func (r *Registry) Lookup(enc Encoding) (Transcoding, error) {
	tc, has := r.ts[ParseEncoding(string(enc))]
	if !has {
		return Transcoding{}, &UnknownEncodingError{enc}
	}
	return tc, nil
}

// Encodings returns the number of registered encodings.
func (r *Registry) Encodings() int {
	return len(r.ts)
}

// Encode transfer encodes the buffer with the preferred encoding, or the one
// chosen by Select when preferred is None. The data is validated first.
func (r *Registry) Encode(buf *file.Buffer, preferred Encoding) (*Encoded, error) {
	enc := ParseEncoding(string(preferred))
	if enc == None {
		enc = Select(buf)
	}

	tc, err := r.Lookup(enc)
	if err != nil {
		return nil, err
	}

	if tc.Check != nil {
		if err := tc.Check(buf.Data); err != nil {
			return nil, err
		}
	}

	out := &bytes.Buffer{}
	out.Grow(len(buf.Data))
	newEncoder := tc.Encoder
	if tc.BinaryEncoder != nil && (buf.MediaType == nil || !buf.MediaType.IsText()) {
		newEncoder = tc.BinaryEncoder
	}

	w := newEncoder(out)
	if _, err := w.Write(buf.Data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return &Encoded{Encoding: enc, Buffer: buf.WithData(out.Bytes())}, nil
}

// Decode reverses Encode.
func (r *Registry) Decode(e *Encoded) (*file.Buffer, error) {
	tc, err := r.Lookup(e.Encoding)
	if err != nil {
		return nil, err
	}

	out := &bytes.Buffer{}
	if _, err := out.ReadFrom(tc.Decoder(bytes.NewReader(e.Data()))); err != nil {
		return nil, err
	}
	return e.Buffer.WithData(out.Bytes()), nil
}
