package message

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/zostay/go-mailenc/message/encoder"
	"github.com/zostay/go-mailenc/message/file"
	"github.com/zostay/go-mailenc/message/header"
	"github.com/zostay/go-mailenc/message/header/component"
	"github.com/zostay/go-mailenc/message/header/param"
)

// Errors returned while resolving or encoding a Mail. They are wrapped in a
// *PartError naming the mail they belong to.
var (
	// ErrNoBody is returned for a nil mail or a mail without a body.
	ErrNoBody = errors.New("mail has no body")

	// ErrNoSource is returned when a pending body has no Source to load from.
	ErrNoSource = errors.New("pending body has no source")

	// ErrUnresolvedBody is returned by Encode for a body that is still
	// pending. Call Resolve first.
	ErrUnresolvedBody = errors.New("body has not been resolved")

	// ErrBodyFailed wraps the error a body failed to load or encode with.
	ErrBodyFailed = errors.New("body failed")

	// ErrEmptyMultipart is returned for a multipart body without parts.
	ErrEmptyMultipart = errors.New("multipart body has no parts")

	// ErrNoContentType is returned for a multipart body whose mail has no
	// Content-Type field.
	ErrNoContentType = errors.New("multipart mail has no content type")

	// ErrNoBoundary is returned when a multipart content type has no boundary
	// parameter.
	ErrNoBoundary = errors.New("multipart content type has no boundary")

	// ErrBadBoundary is returned for a boundary that is not 1 to 70 bchars or
	// ends in a space.
	ErrBadBoundary = errors.New("invalid multipart boundary")

	// ErrBodyShapeMismatch is returned when a single body has a multipart
	// content type or a multipart body has some other content type.
	ErrBodyShapeMismatch = errors.New("content type does not match the body")
)

// PartError places an error at a mail in the tree. Path holds the index of
// each part on the way down from the top-level mail and is empty for the
// top-level mail itself.
type PartError struct {
	Path []int
	Err  error
}

// PathString returns the path as dotted indexes, or "top" for the top-level
// mail.
func (err *PartError) PathString() string {
	if len(err.Path) == 0 {
		return "top"
	}
	ps := make([]string, len(err.Path))
	for i, n := range err.Path {
		ps[i] = strconv.Itoa(n)
	}
	return strings.Join(ps, ".")
}

// Error returns the error message.
func (err *PartError) Error() string {
	return fmt.Sprintf("mail part %s: %v", err.PathString(), err.Err)
}

// Unwrap returns the nested error.
func (err *PartError) Unwrap() error {
	return err.Err
}

// Encode serializes the mail. The outermost mail gets a MIME-Version: 1.0
// field first, then every header field follows in insertion order. Single
// bodies get a Content-Type field when they have none and a
// Content-Transfer-Encoding field matching their encoded data.
//
// Bodies must be Resolved or Encoded; bodies that are only Resolved are
// transfer encoded on the fly. The tree is not modified. On error no bytes
// are returned.
func Encode(m *Mail, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	e, err := encoder.New(
		encoder.WithMailType(o.mailType),
		encoder.WithLineLimit(o.lineLimit),
		encoder.WithLogger(o.logger),
	)
	if err != nil {
		return nil, err
	}

	w := &mailWriter{e: e, opts: o}
	if err := w.writeMail(m, nil); err != nil {
		return nil, err
	}

	out := make([]byte, e.Len())
	copy(out, e.Bytes())
	return out, nil
}

type mailWriter struct {
	e    *encoder.Encoder
	opts *options
}

func (w *mailWriter) writeMail(m *Mail, path []int) error {
	if m == nil || m.Body == nil {
		return &PartError{path, ErrNoBody}
	}

	var err error
	switch body := m.Body.(type) {
	case *SingleBody:
		err = w.writeSingle(m, body, path)
	case *MultipleBodies:
		err = w.writeMultiple(m, body, path)
	}

	var perr *PartError
	if err != nil && !errors.As(err, &perr) {
		err = &PartError{path, err}
	}
	return err
}

// isContentField is true for the fields that belong in a MIME part.
func isContentField(name string) bool {
	n := strings.ToLower(name)
	return strings.HasPrefix(n, "content-") || strings.HasPrefix(n, "x-")
}

// writeHeader writes the header fields of m. Fields named in skip are left
// out. The top-level mail starts with MIME-Version and any generated fields.
func (w *mailWriter) writeHeader(m *Mail, path []int, skip ...string) error {
	top := len(path) == 0
	if top {
		skip = append(skip, header.MIMEVersion)
		if err := w.writeField(header.MIMEVersion, component.NewUnstructured("1.0")); err != nil {
			return err
		}
		if err := w.writeGenerated(m); err != nil {
			return err
		}
	}

fields:
	for _, f := range m.Header.Fields() {
		for _, s := range skip {
			if strings.EqualFold(f.Name, s) {
				w.opts.logger.Debug().Str("field", f.Name).Ints("path", path).Msg("header field replaced")
				continue fields
			}
		}

		if !top && !isContentField(f.Name) {
			w.opts.logger.Warn().
				Str("field", f.Name).
				Ints("path", path).
				Msg("non-content header field in a MIME part")
		}

		if err := f.Encode(w.e); err != nil {
			return err
		}
	}
	return nil
}

func (w *mailWriter) writeGenerated(m *Mail) error {
	if !w.opts.generate {
		return nil
	}
	if !m.Header.Has(header.Date) {
		if err := w.writeField(header.Date, component.NewDateTime(w.opts.clock())); err != nil {
			return err
		}
	}
	if w.opts.ids != nil && !m.Header.Has(header.MessageID) {
		if err := w.writeField(header.MessageID, w.opts.ids.Generate()); err != nil {
			return err
		}
	}
	return nil
}

func (w *mailWriter) writeField(name string, body component.Component) error {
	f := &header.Field{Name: name, Body: body}
	return f.Encode(w.e)
}

func (w *mailWriter) writeSingle(m *Mail, body *SingleBody, path []int) error {
	if body.Body == nil {
		return ErrNoBody
	}

	enc, err := body.Body.transferEncoded(w.opts.registry, preferredEncoding(m, body.Body))
	if err != nil {
		return err
	}

	mt := enc.Buffer.MediaType
	if mt == nil {
		mt = param.New(file.DefaultMediaType, nil)
	}

	hasType := m.Header.Has(header.ContentType)
	if hasType {
		ct, err := m.Header.GetContentType()
		if err != nil {
			return &header.FieldError{Name: header.ContentType, Err: err}
		}
		mt = ct
	}
	if mt.IsMultipart() {
		return ErrBodyShapeMismatch
	}

	if err := w.writeHeader(m, path, header.ContentTransferEncoding); err != nil {
		return err
	}
	if !hasType {
		if err := w.writeField(header.ContentType, component.NewMediaType(mt)); err != nil {
			return err
		}
	}
	if meta := enc.Buffer.Meta; !meta.IsZero() && !m.Header.Has(header.ContentDisposition) {
		if err := w.writeField(header.ContentDisposition, component.NewDisposition(component.Attachment, meta)); err != nil {
			return err
		}
	}
	if err := w.writeField(header.ContentTransferEncoding, component.NewTransferEncoding(enc.Encoding)); err != nil {
		return err
	}

	w.e.WriteBlankLine()
	w.e.WriteBody(enc.Data())
	return nil
}

func (w *mailWriter) boundary(m *Mail) (string, error) {
	if !m.Header.Has(header.ContentType) {
		return "", ErrNoContentType
	}
	ct, err := m.Header.GetContentType()
	if err != nil {
		return "", &header.FieldError{Name: header.ContentType, Err: err}
	}
	if !ct.IsMultipart() {
		return "", ErrBodyShapeMismatch
	}

	b := ct.Boundary()
	switch {
	case b == "":
		return "", ErrNoBoundary
	case !ValidBoundary(b):
		return "", ErrBadBoundary
	}
	return b, nil
}

func (w *mailWriter) writeMultiple(m *Mail, body *MultipleBodies, path []int) error {
	b, err := w.boundary(m)
	if err != nil {
		return err
	}
	if len(body.Bodies) == 0 {
		return ErrEmptyMultipart
	}
	if body.HiddenText != "" {
		w.opts.logger.Warn().Ints("path", path).Msg("hidden text of a multipart body is dropped")
	}

	if err := w.writeHeader(m, path); err != nil {
		return err
	}
	w.e.WriteBlankLine()

	for i, child := range body.Bodies {
		w.e.WriteNewLine()
		w.e.WriteString("--" + b + encoder.CRLF)

		childPath := append(path[:len(path):len(path)], i)
		if err := w.writeMail(child, childPath); err != nil {
			return err
		}
	}

	w.e.WriteNewLine()
	w.e.WriteString("--" + b + "--" + encoder.CRLF)
	return nil
}
