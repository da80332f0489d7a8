package component

import (
	"fmt"
	"math/rand"
	"strings"
	"sync/atomic"

	"github.com/zostay/go-mailenc/message/chars"
	"github.com/zostay/go-mailenc/message/encoder"
)

// MessageID is a msg-id without its angle brackets, e.g. "abc.1@example.com".
type MessageID struct {
	Input
}

// NewMessageID returns a MessageID owning id. Surrounding angle brackets are
// removed.
func NewMessageID(id string) MessageID {
	id = strings.TrimSpace(id)
	id = strings.TrimSuffix(strings.TrimPrefix(id, "<"), ">")
	return MessageID{Owned(id)}
}

func (id MessageID) validate(mt chars.MailType) error {
	s := id.String()
	ix := strings.LastIndexByte(s, '@')
	if ix < 0 {
		return nonEncodable("message id", s, ErrInvalidSyntax)
	}

	left, right := s[:ix], s[ix+1:]
	if !chars.IsDotAtom(left, mt) {
		return nonEncodable("message id", s, ErrInvalidSyntax)
	}

	if strings.HasPrefix(right, "[") && strings.HasSuffix(right, "]") {
		for _, r := range right[1 : len(right)-1] {
			if !chars.IsDText(r, mt) {
				return nonEncodable("message id", s, ErrInvalidSyntax)
			}
		}
		return nil
	}
	if !chars.IsDotAtom(right, mt) {
		return nonEncodable("message id", s, ErrInvalidSyntax)
	}
	return nil
}

// Encode writes "<id>" with fold points on both sides.
func (id MessageID) Encode(e *encoder.Encoder) error {
	if err := id.validate(e.MailType()); err != nil {
		return err
	}
	e.NoteOptionalFWS()
	e.WriteChar('<')
	e.WriteString(id.String())
	e.WriteChar('>')
	e.NoteOptionalFWS()
	return nil
}

// MessageIDList is a list of message ids separated by FWS, as used in
// References and In-Reply-To.
type MessageIDList []MessageID

// Encode writes the ids separated by FWS.
func (ml MessageIDList) Encode(e *encoder.Encoder) error {
	if len(ml) == 0 {
		return nonEncodable("message id list", "", ErrEmpty)
	}
	for i, id := range ml {
		if i > 0 {
			e.WriteFWS()
		}
		if err := id.Encode(e); err != nil {
			return err
		}
	}
	return nil
}

// idCounter is shared by every generator in the process.
var idCounter atomic.Uint64

const uniqueChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// MessageIDGenerator creates message ids and content ids unique to this
// process within one domain.
type MessageIDGenerator struct {
	domain string
	unique string
}

// NewMessageIDGenerator returns a generator for the domain.
func NewMessageIDGenerator(domain string) *MessageIDGenerator {
	b := make([]byte, 16)
	for i := range b {
		b[i] = uniqueChars[rand.Intn(len(uniqueChars))]
	}
	return &MessageIDGenerator{domain: domain, unique: string(b)}
}

// NewMessageIDGeneratorWithUnique returns a generator with a fixed unique
// part. The unique part must be a dot-atom.
func NewMessageIDGeneratorWithUnique(domain, unique string) *MessageIDGenerator {
	return &MessageIDGenerator{domain: domain, unique: unique}
}

// Domain returns the domain the ids are generated in.
func (g *MessageIDGenerator) Domain() string {
	return g.domain
}

// Generate returns a new message id "{unique}.{counter}@{domain}".
func (g *MessageIDGenerator) Generate() MessageID {
	c := idCounter.Add(1)
	return MessageID{Owned(fmt.Sprintf("%s.%d@%s", g.unique, c, g.domain))}
}

// GenerateContentIDs returns n content ids "{unique}.{counter}.{i}@{domain}"
// sharing one counter value, one for each part of a mail.
func (g *MessageIDGenerator) GenerateContentIDs(n int) []MessageID {
	c := idCounter.Add(1)
	ids := make([]MessageID, n)
	for i := range ids {
		ids[i] = MessageID{Owned(fmt.Sprintf("%s.%d.%d@%s", g.unique, c, i, g.domain))}
	}
	return ids
}
