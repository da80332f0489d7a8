package transfer

import (
	"io"
	"strings"

	"github.com/zostay/go-mailenc/message/file"
)

// Encoding is a Content-Transfer-Encoding token.
type Encoding string

const (
	None            Encoding = ""                 // no preference, select one
	Bit7            Encoding = "7bit"             // bytes will be left as-is
	Bit8            Encoding = "8bit"             // bytes will be left as-is
	Binary          Encoding = "binary"           // bytes will be left as-is
	QuotedPrintable Encoding = "quoted-printable" // bytes will be transformed between quoted-printable and binary data
	Base64          Encoding = "base64"           // bytes will be transformed between base64 and binary data
)

// ParseEncoding normalizes a header value into an Encoding.
func ParseEncoding(s string) Encoding {
	return Encoding(strings.ToLower(strings.TrimSpace(s)))
}

// String returns the token.
func (enc Encoding) String() string {
	return string(enc)
}

// IsIdentity reports whether the encoding leaves bytes unchanged.
func (enc Encoding) IsIdentity() bool {
	return enc == Bit7 || enc == Bit8 || enc == Binary
}

// Transcoding is a set of functions that can be used to validate data and
// transform it to and from a transfer encoding.
type Transcoding struct {
	// Check validates the unencoded data for the encoding. It may be nil
	// when every input is acceptable.
	Check func([]byte) error

	// Encoder returns an io.WriteCloser, which will encode binary data and
	// write the encoded form to the given io.Writer. You must call Close() on
	// the returned io.WriteCloser when you are finished.
	Encoder func(io.Writer) io.WriteCloser

	// BinaryEncoder, when set, is used in place of Encoder for data whose
	// media type is not text/*.
	BinaryEncoder func(io.Writer) io.WriteCloser

	// Decoder returns an io.Reader, which will read from the given io.Reader
	// when read and decode the encoded data back into binary form.
	Decoder func(io.Reader) io.Reader
}

// Encoded is a file.Buffer after transfer encoding. The Buffer holds the
// encoded bytes and keeps the media type and metadata of the original.
type Encoded struct {
	Encoding Encoding
	Buffer   *file.Buffer
}

// Data returns the encoded bytes.
func (e *Encoded) Data() []byte {
	return e.Buffer.Data
}

// Select picks the encoding for a buffer: 7bit for text/* with a us-ascii or
// missing charset, quoted-printable for any other text/*, and base64 for
// everything else.
func Select(buf *file.Buffer) Encoding {
	if buf.MediaType == nil || !buf.MediaType.IsText() {
		return Base64
	}

	switch strings.ToLower(buf.MediaType.Charset()) {
	case "", "us-ascii":
		return Bit7
	}
	return QuotedPrintable
}
