package component

import "github.com/zostay/go-mailenc/message/encoder"

// Path is the body of a Return-Path header: an email in angle brackets, or
// "<>" for the null path.
type Path struct {
	Email *Email
}

// NewPath returns the path for the email. An empty string gives the null path.
func NewPath(email string) (Path, error) {
	if email == "" {
		return Path{}, nil
	}
	em, err := NewEmail(email)
	if err != nil {
		return Path{}, err
	}
	return Path{&em}, nil
}

// Encode writes "<email>" with fold points on both sides.
func (p Path) Encode(e *encoder.Encoder) error {
	e.NoteOptionalFWS()
	e.WriteChar('<')
	if p.Email != nil {
		if err := p.Email.Encode(e); err != nil {
			return err
		}
	}
	e.WriteChar('>')
	e.NoteOptionalFWS()
	return nil
}

// ReceivedToken is one item of a Received header: a word, an email in angle
// brackets, or a domain. Exactly one field is set.
type ReceivedToken struct {
	Word   *Word
	Email  *Email
	Domain *Domain
}

// ReceivedWord returns a ReceivedToken holding a word.
func ReceivedWord(s string) ReceivedToken {
	w := NewWord(s)
	return ReceivedToken{Word: &w}
}

// ReceivedEmail returns a ReceivedToken holding an email.
func ReceivedEmail(em Email) ReceivedToken {
	return ReceivedToken{Email: &em}
}

// ReceivedDomain returns a ReceivedToken holding a domain.
func ReceivedDomain(s string) ReceivedToken {
	d := NewDomain(s)
	return ReceivedToken{Domain: &d}
}

// Encode writes whichever item is set.
func (rt ReceivedToken) Encode(e *encoder.Encoder) error {
	switch {
	case rt.Word != nil:
		return rt.Word.Encode(e)
	case rt.Email != nil:
		e.WriteChar('<')
		if err := rt.Email.Encode(e); err != nil {
			return err
		}
		e.WriteChar('>')
		return nil
	case rt.Domain != nil:
		return rt.Domain.Encode(e)
	}
	return nonEncodable("received token", "", ErrEmpty)
}

// Received is the body of a Received header: tokens, a semicolon, and the
// date the mail was received.
type Received struct {
	Tokens []ReceivedToken
	Date   DateTime
}

// Encode writes the tokens separated by FWS followed by "; date".
func (r Received) Encode(e *encoder.Encoder) error {
	for i, tok := range r.Tokens {
		if i > 0 {
			e.WriteFWS()
		}
		if err := tok.Encode(e); err != nil {
			return err
		}
	}
	e.WriteChar(';')
	e.WriteFWS()
	return r.Date.Encode(e)
}
