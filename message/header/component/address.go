package component

import (
	"fmt"
	"strings"

	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/go-mailenc/message/encoder"
)

// Address is either a Mailbox or a Group.
type Address interface {
	Component
	isAddress()
}

// Mailbox is an email address with an optional display name.
type Mailbox struct {
	Name  Phrase
	Email Email
}

// NewMailbox returns a Mailbox. An empty name leaves the display name out.
func NewMailbox(name, email string) (Mailbox, error) {
	em, err := NewEmail(email)
	if err != nil {
		return Mailbox{}, err
	}
	return Mailbox{NewPhrase(name), em}, nil
}

// MustMailbox is NewMailbox that panics on error.
func MustMailbox(name, email string) Mailbox {
	mb, err := NewMailbox(name, email)
	if err != nil {
		panic(err)
	}
	return mb
}

func (Mailbox) isAddress() {}

// Encode writes `name <email>` or the bare email when there is no name.
func (mb Mailbox) Encode(e *encoder.Encoder) error {
	if len(mb.Name) == 0 {
		return mb.Email.Encode(e)
	}

	if err := mb.Name.Encode(e); err != nil {
		return err
	}
	e.WriteFWS()
	e.WriteChar('<')
	if err := mb.Email.Encode(e); err != nil {
		return err
	}
	e.WriteChar('>')
	return nil
}

// MailboxList is a non-empty list of mailboxes.
type MailboxList []Mailbox

// Encode writes the mailboxes separated by a comma and FWS.
func (ml MailboxList) Encode(e *encoder.Encoder) error {
	if len(ml) == 0 {
		return nonEncodable("mailbox list", "", ErrEmpty)
	}
	return ml.encodeMembers(e)
}

func (ml MailboxList) encodeMembers(e *encoder.Encoder) error {
	for i, mb := range ml {
		if i > 0 {
			e.WriteChar(',')
			e.WriteFWS()
		}
		if err := mb.Encode(e); err != nil {
			return err
		}
	}
	return nil
}

// Group is a named, possibly empty, list of mailboxes.
type Group struct {
	Name    Phrase
	Members MailboxList
}

func (Group) isAddress() {}

// Encode writes `name: member, member;`.
func (g Group) Encode(e *encoder.Encoder) error {
	if err := g.Name.Encode(e); err != nil {
		return err
	}
	e.WriteChar(':')
	if len(g.Members) > 0 {
		e.WriteFWS()
		if err := g.Members.encodeMembers(e); err != nil {
			return err
		}
	}
	e.WriteChar(';')
	return nil
}

// AddressList is a non-empty list of addresses.
type AddressList []Address

// Encode writes the addresses separated by a comma and FWS.
func (al AddressList) Encode(e *encoder.Encoder) error {
	if len(al) == 0 {
		return nonEncodable("address list", "", ErrEmpty)
	}
	for i, a := range al {
		if i > 0 {
			e.WriteChar(',')
			e.WriteFWS()
		}
		if err := a.Encode(e); err != nil {
			return err
		}
	}
	return nil
}

// Mailboxes returns every mailbox in the list, including group members.
func (al AddressList) Mailboxes() MailboxList {
	ml := MailboxList{}
	for _, a := range al {
		switch v := a.(type) {
		case Mailbox:
			ml = append(ml, v)
		case Group:
			ml = append(ml, v.Members...)
		}
	}
	return ml
}

// grouper is implemented by the group addresses of go-addr.
type grouper interface {
	DisplayName() string
	MailboxList() addr.MailboxList
}

// parser keeps the position in the source text so that the components it
// builds are views into it.
type parser struct {
	src *Source
	pos int
}

func (p *parser) find(s string) Input {
	in, next := p.src.Find(s, p.pos)
	if in.IsView() {
		p.pos = next
	}
	return in
}

// phraseWords splits the display name text of an address into its words.
// A quoted-string is one word, unquoted. Comments are dropped.
func phraseWords(s string) []string {
	var words []string
	for i := 0; i < len(s); {
		switch c := s[i]; {
		case c == ' ' || c == '\t':
			i++

		case c == '(':
			depth := 0
			for ; i < len(s); i++ {
				if s[i] == '\\' {
					i++
					continue
				}
				if s[i] == '(' {
					depth++
				} else if s[i] == ')' {
					depth--
					if depth == 0 {
						i++
						break
					}
				}
			}

		case c == '"':
			j := i + 1
			for ; j < len(s) && s[j] != '"'; j++ {
				if s[j] == '\\' {
					j++
				}
			}
			if j < len(s) {
				j++
			}
			if w := unquote(s[i:j]); w != "" && w != `"` {
				words = append(words, w)
			}
			i = j

		default:
			j := i
			for j < len(s) && !strings.ContainsRune(" \t\"(", rune(s[j])) {
				j++
			}
			words = append(words, s[i:j])
			i = j
		}
	}
	return words
}

func (p *parser) phrase(s string) Phrase {
	ph := Phrase{}
	for _, w := range phraseWords(s) {
		ph = append(ph, Word{p.find(w)})
	}
	return ph
}

func (p *parser) email(s string) (Email, error) {
	ix := strings.LastIndexByte(s, '@')
	if ix <= 0 || ix == len(s)-1 {
		return Email{}, nonEncodable("email", s, ErrInvalidSyntax)
	}

	local, domain := s[:ix], s[ix+1:]
	var lp LocalPart
	if uq := unquote(local); uq != local {
		lp = LocalPart{Owned(uq)}
		p.find(local)
	} else {
		lp = LocalPart{p.find(local)}
	}
	return Email{lp, Domain{p.find(domain)}}, nil
}

func (p *parser) mailbox(name, address string) (Mailbox, error) {
	ph := p.phrase(name)
	em, err := p.email(address)
	if err != nil {
		return Mailbox{}, err
	}
	return Mailbox{ph, em}, nil
}

// originalName is the display name text of a mailbox as it was written, which
// is everything before the angle address.
func originalName(original, displayName string) string {
	if original == "" {
		return displayName
	}
	if ix := strings.LastIndexByte(original, '<'); ix >= 0 {
		return original[:ix]
	}
	return ""
}

type mailboxLike interface {
	DisplayName() string
	Address() string
	OriginalString() string
}

func (p *parser) mailboxFrom(m mailboxLike) (Mailbox, error) {
	return p.mailbox(originalName(m.OriginalString(), m.DisplayName()), m.Address())
}

func (p *parser) address(a addr.Address) (Address, error) {
	if g, isGroup := a.(grouper); isGroup {
		name := g.DisplayName()
		if orig := a.OriginalString(); orig != "" {
			if ix := strings.IndexByte(orig, ':'); ix >= 0 {
				name = orig[:ix]
			}
		}

		grp := Group{Name: p.phrase(name)}
		for _, m := range g.MailboxList() {
			mb, err := p.mailboxFrom(m)
			if err != nil {
				return nil, err
			}
			grp.Members = append(grp.Members, mb)
		}
		return grp, nil
	}

	if m, isMailbox := a.(mailboxLike); isMailbox {
		return p.mailboxFrom(m)
	}

	return nil, nonEncodable("address", fmt.Sprint(a), ErrInvalidSyntax)
}

// strictAddressList runs the go-addr parser, which panics on some valid input
// such as a group holding a bare addr-spec.
func strictAddressList(s string) (al AddressList, err error) {
	defer func() {
		if r := recover(); r != nil {
			al = nil
			err = nonEncodable("address list", s, fmt.Errorf("%w: %v", ErrInvalidSyntax, r))
		}
	}()

	pal, err := addr.ParseEmailAddressList(s)
	if err != nil {
		return nil, err
	}

	p := &parser{src: NewSource(s)}
	al = make(AddressList, 0, len(pal))
	for _, a := range pal {
		ca, err := p.address(a)
		if err != nil {
			return nil, err
		}
		al = append(al, ca)
	}
	return al, nil
}

// lenientMailbox reads `name <email>` or a bare email.
func (p *parser) lenientMailbox(s string) (Mailbox, error) {
	lt, gt := strings.LastIndexByte(s, '<'), strings.LastIndexByte(s, '>')
	if lt >= 0 && gt > lt {
		return p.mailbox(s[:lt], strings.TrimSpace(s[lt+1:gt]))
	}
	return p.mailbox("", strings.TrimSpace(s))
}

// lenientAddressList splits s on commas, taking `name: members;` as a group.
// Quoted commas are not respected.
func lenientAddressList(s string) (AddressList, error) {
	p := &parser{src: NewSource(s)}
	al := AddressList{}

	members := func(body string) (MailboxList, error) {
		ml := MailboxList{}
		for _, piece := range strings.Split(body, ",") {
			if strings.TrimSpace(piece) == "" {
				continue
			}
			mb, err := p.lenientMailbox(piece)
			if err != nil {
				return nil, err
			}
			ml = append(ml, mb)
		}
		return ml, nil
	}

	rest := s
	for {
		rest = strings.TrimLeft(rest, " \t\r\n,")
		if rest == "" {
			break
		}

		if ix := strings.IndexByte(rest, ':'); ix > 0 && !strings.ContainsAny(rest[:ix], "<>@,\"") {
			grp := Group{Name: p.phrase(rest[:ix])}
			body := rest[ix+1:]
			rest = ""
			if end := strings.IndexByte(body, ';'); end >= 0 {
				body, rest = body[:end], body[end+1:]
			}
			ml, err := members(body)
			if err != nil {
				return nil, err
			}
			grp.Members = ml
			al = append(al, grp)
			continue
		}

		piece := rest
		rest = ""
		if end := strings.IndexByte(piece, ','); end >= 0 {
			piece, rest = piece[:end], piece[end+1:]
		}
		mb, err := p.lenientMailbox(piece)
		if err != nil {
			return nil, err
		}
		al = append(al, mb)
	}

	if len(al) == 0 {
		return nil, nonEncodable("address list", s, ErrEmpty)
	}
	return al, nil
}

// ParseAddressList parses an RFC 5322 address list. The returned components
// refer into a single Source holding s.
//
// A strict parse is attempted first. If that fails, a lenient parse splitting
// on commas is attempted, and its error is returned when it fails too.
func ParseAddressList(s string) (AddressList, error) {
	al, err := strictAddressList(s)
	if err == nil {
		return al, nil
	}
	return lenientAddressList(s)
}

// ParseMailbox parses a single mailbox such as `"John" <john@example.com>`.
func ParseMailbox(s string) (Mailbox, error) {
	ml, err := ParseMailboxList(s)
	if err != nil {
		return Mailbox{}, err
	}
	if len(ml) != 1 {
		return Mailbox{}, nonEncodable("mailbox", s, ErrInvalidSyntax)
	}
	return ml[0], nil
}

// ParseMailboxList parses a list that must not contain groups.
func ParseMailboxList(s string) (MailboxList, error) {
	al, err := ParseAddressList(s)
	if err != nil {
		return nil, err
	}
	ml := make(MailboxList, 0, len(al))
	for _, a := range al {
		mb, isMailbox := a.(Mailbox)
		if !isMailbox {
			return nil, nonEncodable("mailbox list", s, ErrInvalidSyntax)
		}
		ml = append(ml, mb)
	}
	return ml, nil
}
