package message

import (
	"github.com/zostay/go-mailenc/message/chars"
	"github.com/zostay/go-mailenc/message/file"
	"github.com/zostay/go-mailenc/message/header"
	"github.com/zostay/go-mailenc/message/header/param"
	"github.com/zostay/go-mailenc/message/transfer"
)

// Mail is a header plus a body. A top-level Mail is a whole message, a Mail
// inside MultipleBodies is a MIME part.
type Mail struct {
	Header header.Header
	Body   Part
}

// Part is the body of a Mail. It is either a *SingleBody or a
// *MultipleBodies. No other implementations exist, so a type switch over
// those two is exhaustive.
type Part interface {
	isPart()
}

// SingleBody is a leaf body.
type SingleBody struct {
	Body *Body
}

// MultipleBodies is a multipart body. HiddenText is the preamble some
// multipart messages carry. It is never written.
type MultipleBodies struct {
	Bodies     []*Mail
	HiddenText string
}

func (*SingleBody) isPart()     {}
func (*MultipleBodies) isPart() {}

// IsMultipart returns true when the body is a *MultipleBodies.
func (m *Mail) IsMultipart() bool {
	_, ok := m.Body.(*MultipleBodies)
	return ok
}

// Children returns the sub-mails of a multipart mail and nil for any other.
func (m *Mail) Children() []*Mail {
	if mb, ok := m.Body.(*MultipleBodies); ok {
		return mb.Bodies
	}
	return nil
}

// NewSingle returns a Mail with an empty header and the body.
func NewSingle(body *Body) *Mail {
	return &Mail{Body: &SingleBody{body}}
}

// NewText returns a text/plain Mail. The charset is us-ascii when the text
// is all ASCII, otherwise utf-8.
func NewText(text string) *Mail {
	charset := "utf-8"
	if chars.IsASCII(text) {
		charset = "us-ascii"
	}
	return NewSingle(NewBody(file.NewText(charset, text)))
}

// AttachmentFile returns a Mail whose body is read from the file at path when
// the mail is resolved. A nil media type is guessed from the file extension.
// Use transfer.None to let the encoding be selected.
//
// The file metadata ends up in a generated Content-Disposition: attachment
// header unless the header already has a Content-Disposition field.
func AttachmentFile(path string, mediaType *param.Value, enc transfer.Encoding) *Mail {
	b := NewPendingBody(FileSource{Path: path, MediaType: mediaType})
	b.Preferred = enc
	return NewSingle(b)
}

// NewMultipart returns a multipart/subtype Mail holding the parts. The
// Content-Type header carries a freshly generated boundary.
func NewMultipart(subtype string, parts ...*Mail) *Mail {
	m := &Mail{Body: &MultipleBodies{Bodies: parts}}
	m.Header.SetContentType(param.New("multipart/"+subtype, map[string]string{
		param.Boundary: GenerateBoundary(),
	}))
	return m
}

// MultipartAlternative returns a multipart/alternative Mail.
func MultipartAlternative(parts ...*Mail) *Mail {
	return NewMultipart("alternative", parts...)
}

// MultipartMixed returns a multipart/mixed Mail.
func MultipartMixed(parts ...*Mail) *Mail {
	return NewMultipart("mixed", parts...)
}

// preferredEncoding is the encoding asked for by the body or, failing that, by
// the Content-Transfer-Encoding field of the mail.
func preferredEncoding(m *Mail, b *Body) transfer.Encoding {
	if b.Preferred != transfer.None {
		return b.Preferred
	}
	if te, err := m.Header.GetTransferEncoding(); err == nil {
		return te
	}
	return transfer.None
}
