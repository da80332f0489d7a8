package component

import (
	"strings"

	"golang.org/x/net/idna"

	"github.com/zostay/go-mailenc/message/chars"
	"github.com/zostay/go-mailenc/message/encoder"
)

// Domain is the domain of an email address or a message id.
type Domain struct {
	Input
}

// NewDomain returns a Domain owning s.
func NewDomain(s string) Domain {
	return Domain{Owned(s)}
}

// ASCII returns the domain as it is written in ASCII mail: unchanged when it
// is already ASCII, otherwise converted to punycode labels.
func (d Domain) ASCII() (string, error) {
	s := d.String()
	if chars.IsASCII(s) {
		return s, nil
	}
	a, err := idna.ToASCII(s)
	if err != nil {
		return "", nonEncodable("domain", s, err)
	}
	return a, nil
}

// Encode writes the domain. Non-ASCII domains are written raw in
// internationalized mail and as punycode otherwise.
func (d Domain) Encode(e *encoder.Encoder) error {
	s := d.String()
	switch {
	case s == "":
		return nonEncodable("domain", s, ErrEmpty)
	case strings.HasPrefix(s, "["):
		return nonEncodable("domain", s, ErrDomainLiteral)
	}

	if e.MailType() == chars.Internationalized && chars.IsDotAtom(s, chars.Internationalized) {
		e.WriteString(s)
		return nil
	}

	a, err := d.ASCII()
	if err != nil {
		return err
	}
	if !chars.IsDotAtom(a, chars.ASCII) {
		return nonEncodable("domain", s, ErrInvalidSyntax)
	}
	e.WriteString(a)
	return nil
}

// LocalPart is the part of an email address before the @.
type LocalPart struct {
	Input
}

// NewLocalPart returns a LocalPart owning s. Surrounding double quotes are
// removed and quoted-pairs unescaped, so both `"john doe"` and `john doe`
// name the same local part.
func NewLocalPart(s string) LocalPart {
	return LocalPart{Owned(unquote(s))}
}

func unquote(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	s = s[1 : len(s)-1]
	if !strings.Contains(s, `\`) {
		return s
	}
	sb := &strings.Builder{}
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// Encode writes the local part as a dot-atom when possible and as a
// quoted-string otherwise. Local parts are never written as encoded-words.
func (lp LocalPart) Encode(e *encoder.Encoder) error {
	s := lp.String()
	mt := e.MailType()
	if chars.IsDotAtom(s, mt) {
		e.WriteString(s)
		return nil
	}

	for _, r := range s {
		switch {
		case r == '\t':
		case chars.IsCtl(r):
			return nonEncodable("local part", s, ErrControlChar)
		case r >= 0x80 && mt != chars.Internationalized:
			return nonEncodable("local part", s, ErrNotASCII)
		}
	}

	e.WriteChar('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			e.WriteChar('\\')
		}
		e.WriteChar(s[i])
	}
	e.WriteChar('"')
	return nil
}

// Email is an addr-spec: local part, @, and domain.
type Email struct {
	LocalPart LocalPart
	Domain    Domain
}

// NewEmail splits s on its last @ and returns the Email.
func NewEmail(s string) (Email, error) {
	ix := strings.LastIndexByte(s, '@')
	if ix <= 0 || ix == len(s)-1 {
		return Email{}, nonEncodable("email", s, ErrInvalidSyntax)
	}
	return Email{NewLocalPart(s[:ix]), NewDomain(s[ix+1:])}, nil
}

// MustEmail is NewEmail that panics on error.
func MustEmail(s string) Email {
	em, err := NewEmail(s)
	if err != nil {
		panic(err)
	}
	return em
}

// String returns local@domain without quoting.
func (em Email) String() string {
	return em.LocalPart.String() + "@" + em.Domain.String()
}

// Encode writes local@domain.
func (em Email) Encode(e *encoder.Encoder) error {
	if err := em.LocalPart.Encode(e); err != nil {
		return err
	}
	e.WriteChar('@')
	return em.Domain.Encode(e)
}
