package component

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zostay/go-mailenc/message/chars"
	"github.com/zostay/go-mailenc/message/encoder"
	"github.com/zostay/go-mailenc/message/file"
	"github.com/zostay/go-mailenc/message/header/param"
	"github.com/zostay/go-mailenc/message/transfer"
)

// MediaType is the body of a Content-Type header.
type MediaType struct {
	*param.Value
}

// NewMediaType wraps a parameterized value.
func NewMediaType(v *param.Value) MediaType {
	return MediaType{v}
}

// ParseMediaType parses s, e.g. "text/plain; charset=utf-8".
func ParseMediaType(s string) (MediaType, error) {
	v, err := param.Parse(s)
	if err != nil {
		return MediaType{}, err
	}
	return MediaType{v}, nil
}

func checkParamValue(component, v string) error {
	for _, r := range v {
		switch {
		case r == '\t':
		case chars.IsCtl(r):
			return nonEncodable(component, v, ErrControlChar)
		case r >= 0x80:
			return nonEncodable(component, v, ErrNotASCII)
		}
	}
	return nil
}

// writeParam writes `; key=value` with a fold point before the key.
func writeParam(e *encoder.Encoder, k, v string) {
	e.WriteChar(';')
	e.WriteFWS()
	e.WriteString(k)
	e.WriteChar('=')
	e.WriteString(param.Quote(v))
}

// Encode writes `type/subtype` followed by the parameters in sorted order.
// Parameter values that are not tokens are quoted. Media types are always
// ASCII.
func (mt MediaType) Encode(e *encoder.Encoder) error {
	if mt.Value == nil {
		return nonEncodable("media type", "", ErrEmpty)
	}
	if !chars.IsToken(mt.Type()) || !chars.IsToken(mt.Subtype()) {
		return nonEncodable("media type", mt.MediaType(), ErrInvalidSyntax)
	}

	e.WriteString(mt.MediaType())
	for _, k := range mt.Keys() {
		v := mt.Parameter(k)
		if !chars.IsToken(k) {
			return nonEncodable("media type parameter", k, ErrInvalidSyntax)
		}
		if err := checkParamValue("media type parameter", v); err != nil {
			return err
		}
		writeParam(e, k, v)
	}
	return nil
}

// Disposition kinds.
const (
	Inline     = "inline"
	Attachment = "attachment"
)

// Disposition is the body of a Content-Disposition header.
type Disposition struct {
	Kind string
	Meta file.Meta
}

// NewDisposition returns a Disposition of the kind carrying the file metadata.
func NewDisposition(kind string, meta file.Meta) Disposition {
	return Disposition{Kind: kind, Meta: meta}
}

// isAttrChar reports whether b may appear unescaped in an RFC 2231 value.
func isAttrChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') ||
		strings.IndexByte("!#$&+-.^_`|~", b) >= 0
}

// extValue returns the RFC 2231 extended value for s in utf-8.
func extValue(s string) string {
	sb := &strings.Builder{}
	sb.WriteString("utf-8''")
	for i := 0; i < len(s); i++ {
		if isAttrChar(s[i]) {
			sb.WriteByte(s[i])
			continue
		}
		fmt.Fprintf(sb, "%%%02X", s[i])
	}
	return sb.String()
}

// Encode writes the kind and the known metadata as parameters. A non-ASCII
// file name is written as an RFC 2231 extended parameter.
func (d Disposition) Encode(e *encoder.Encoder) error {
	kind := strings.ToLower(d.Kind)
	if !chars.IsToken(kind) {
		return nonEncodable("disposition", d.Kind, ErrInvalidSyntax)
	}
	e.WriteString(kind)

	if fn := d.Meta.FileName; fn != "" {
		if chars.IsASCII(fn) {
			if err := checkParamValue("file name", fn); err != nil {
				return err
			}
			writeParam(e, param.Filename, fn)
		} else {
			e.WriteChar(';')
			e.WriteFWS()
			e.WriteString(param.Filename + "*=" + extValue(fn))
		}
	}

	dates := []struct {
		name string
		t    *time.Time
	}{
		{param.CreationDate, d.Meta.CreationDate},
		{param.ModificationDate, d.Meta.ModificationDate},
		{param.ReadDate, d.Meta.ReadDate},
	}
	for _, dt := range dates {
		if dt.t != nil {
			e.WriteChar(';')
			e.WriteFWS()
			e.WriteString(dt.name + `="` + dt.t.Format(DateFormat) + `"`)
		}
	}

	if d.Meta.Size != nil {
		writeParam(e, param.Size, strconv.FormatInt(*d.Meta.Size, 10))
	}
	return nil
}

// TransferEncoding is the body of a Content-Transfer-Encoding header.
type TransferEncoding struct {
	transfer.Encoding
}

// NewTransferEncoding wraps enc.
func NewTransferEncoding(enc transfer.Encoding) TransferEncoding {
	return TransferEncoding{enc}
}

// Encode writes the encoding token.
func (te TransferEncoding) Encode(e *encoder.Encoder) error {
	s := te.String()
	if !chars.IsToken(s) {
		return nonEncodable("transfer encoding", s, ErrInvalidSyntax)
	}
	e.WriteString(s)
	return nil
}
