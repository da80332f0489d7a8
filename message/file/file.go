// Package file holds the in-memory representation of body data: the bytes
// along with the media type describing them and the metadata that ends up in
// a Content-Disposition header.
package file

import (
	"time"

	"github.com/zostay/go-mailenc/message/header/param"
)

// DefaultMediaType is used for a Buffer created without a media type.
const DefaultMediaType = "application/octet-stream"

// Meta is the optional metadata of a file. Zero values are omitted.
type Meta struct {
	FileName         string
	CreationDate     *time.Time
	ModificationDate *time.Time
	ReadDate         *time.Time
	Size             *int64
}

// IsZero reports whether no metadata is set.
func (m Meta) IsZero() bool {
	return m.FileName == "" && m.CreationDate == nil &&
		m.ModificationDate == nil && m.ReadDate == nil && m.Size == nil
}

// Buffer is body data with its media type. A Buffer is not modified once it is
// handed to the encoder.
type Buffer struct {
	MediaType *param.Value
	Data      []byte
	Meta      Meta
}

// New returns a Buffer. A nil media type becomes DefaultMediaType.
func New(mediaType *param.Value, data []byte) *Buffer {
	if mediaType == nil {
		mediaType = param.New(DefaultMediaType, nil)
	}
	return &Buffer{MediaType: mediaType, Data: data}
}

// NewText returns a text/plain Buffer with the given charset. An empty charset
// means us-ascii.
func NewText(charset, text string) *Buffer {
	if charset == "" {
		charset = "us-ascii"
	}
	return New(param.New("text/plain", map[string]string{param.Charset: charset}), []byte(text))
}

// Len returns the number of data bytes.
func (b *Buffer) Len() int {
	return len(b.Data)
}

// WithData returns a copy of the Buffer carrying different data.
func (b *Buffer) WithData(data []byte) *Buffer {
	return &Buffer{MediaType: b.MediaType, Data: data, Meta: b.Meta}
}
