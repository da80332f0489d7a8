package param

import (
	"mime"
	"sort"
	"strings"

	"github.com/zostay/go-mailenc/message/chars"
)

const (
	// Charset is the name of the charset parameter that may be present in the
	// Content-Type header.
	Charset = "charset"

	// Boundary is the name of the boundary parameter that may be present in
	// the Content-Type header.
	Boundary = "boundary"

	// Filename is the name of the filename parameter that may be present in
	// the Content-Disposition header.
	Filename = "filename"

	// CreationDate, ModificationDate, ReadDate, and Size are the remaining
	// Content-Disposition parameters of RFC 2183.
	CreationDate     = "creation-date"
	ModificationDate = "modification-date"
	ReadDate         = "read-date"
	Size             = "size"
)

// Value represents a parsed parameterized header field, such as is used in the
// Content-Type and Content-Disposition headers. A Value object is immutable:
// You cannot change it in place. However, a Modify() function is provided to
// perform transformation of a Value into a new Value.
//
// The primary value and the parameter names are kept in lower case.
type Value struct {
	v  string
	ps map[string]string
}

// Parse takes a header field body, parses it as a Value and returns it. If an
// error occurs in the process, it returns an error.
func Parse(v string) (*Value, error) {
	mt, ps, err := mime.ParseMediaType(v)
	if err != nil {
		return nil, err
	}

	return &Value{mt, ps}, nil
}

// New creates a new parameterized header field with the given parameters,
// which may be nil.
func New(v string, ps map[string]string) *Value {
	pv := &Value{strings.ToLower(v), make(map[string]string, len(ps))}
	for k, val := range ps {
		pv.ps[strings.ToLower(k)] = val
	}
	return pv
}

// Modifier is a modification to apply to a Value when calling the Modify()
// function.
type Modifier func(*Value)

// Change is a Modifier that replaces the primary value of the Value.
func Change(value string) Modifier {
	return func(pv *Value) {
		pv.v = strings.ToLower(value)
	}
}

// Set is a Modifier that sets a parameter with the given name on the Value.
func Set(name, value string) Modifier {
	return func(pv *Value) {
		pv.ps[strings.ToLower(name)] = value
	}
}

// Delete is a Modifier that removes the parameter with the given name from the
// Value.
func Delete(name string) Modifier {
	return func(pv *Value) {
		delete(pv.ps, strings.ToLower(name))
	}
}

// Modify clones a Value, applies the given modifications (if any) and returns
// the new Value. You can pass multiple changes to this function:
//
//	v, _ := param.Parse("multipart/mixed; boundary=abc123; charset=latin1")
//	nv := param.Modify(v, param.Change("multipart/alternative"), param.Set("charset", "utf-8"))
func Modify(pv *Value, changes ...Modifier) *Value {
	c := pv.Clone()
	for _, change := range changes {
		change(c)
	}
	return c
}

// Value returns the primary value of the Value. This is the value before the
// first semi-colon.
func (pv *Value) Value() string {
	return pv.v
}

// MediaType is a synonym for Value() and returns the Content-Type value, e.g.,
// "text/html", "image/jpeg", "multipart/mixed", etc.
func (pv *Value) MediaType() string {
	return pv.v
}

// Disposition is a synonym for Value() and returns the Content-Disposition,
// either "inline" or "attachment".
func (pv *Value) Disposition() string {
	return pv.v
}

// Type returns the part of MediaType() before the slash or an empty string
// when there is no slash.
func (pv *Value) Type() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return pv.v[:ix]
	}
	return ""
}

// Subtype returns the part of MediaType() after the slash or an empty string
// when there is no slash.
func (pv *Value) Subtype() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return pv.v[ix+1:]
	}
	return ""
}

// IsMultipart reports whether the media type is multipart/*.
func (pv *Value) IsMultipart() bool {
	return pv.Type() == "multipart"
}

// IsText reports whether the media type is text/*.
func (pv *Value) IsText() bool {
	return pv.Type() == "text"
}

// Parameters returns the parameters encoded on this Value as a map. Do not
// modify this map.
func (pv *Value) Parameters() map[string]string {
	return pv.ps
}

// Keys returns the parameter names in sorted order. This is the order in
// which parameters are written.
func (pv *Value) Keys() []string {
	ks := make([]string, 0, len(pv.ps))
	for k := range pv.ps {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

// Parameter returns the value of the parameter with the given name.
func (pv *Value) Parameter(k string) string {
	return pv.ps[strings.ToLower(k)]
}

// HasParameter reports whether the parameter is set, even to an empty value.
func (pv *Value) HasParameter(k string) bool {
	_, has := pv.ps[strings.ToLower(k)]
	return has
}

// Filename returns the value of the "filename" parameter.
func (pv *Value) Filename() string {
	return pv.ps[Filename]
}

// Charset returns the value of the "charset" parameter.
func (pv *Value) Charset() string {
	return pv.ps[Charset]
}

// Boundary returns the value of the "boundary" parameter.
func (pv *Value) Boundary() string {
	return pv.ps[Boundary]
}

// Quote returns s as it would appear as a parameter value: unchanged when it
// is a token, otherwise as a quoted-string.
func Quote(s string) string {
	if chars.IsToken(s) {
		return s
	}

	sb := &strings.Builder{}
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	sb.WriteByte('"')
	return sb.String()
}

// String returns the serialized value of the Value including the primary value
// and all parameters, without any folding.
func (pv *Value) String() string {
	parts := make([]string, 0, len(pv.ps)+1)
	parts = append(parts, pv.v)
	for _, k := range pv.Keys() {
		parts = append(parts, k+"="+Quote(pv.ps[k]))
	}
	return strings.Join(parts, "; ")
}

// Clone returns a deep copy of the Value.
func (pv *Value) Clone() *Value {
	c := &Value{v: pv.v, ps: make(map[string]string, len(pv.ps))}
	for k, v := range pv.ps {
		c.ps[k] = v
	}
	return c
}
