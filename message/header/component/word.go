package component

import (
	"strings"

	"github.com/zostay/go-mailenc/message/chars"
	"github.com/zostay/go-mailenc/message/encoder"
	"github.com/zostay/go-mailenc/message/encword"
)

// Word is a single atom of a phrase.
type Word struct {
	Input
}

// NewWord returns a Word owning s.
func NewWord(s string) Word {
	return Word{Owned(s)}
}

// needsEncoding reports whether the word has to become an encoded-word. Text
// starting with "=?" is always encoded so it cannot be mistaken for one.
func needsEncoding(s string, mt chars.MailType) bool {
	return strings.HasPrefix(s, "=?") || !chars.AllAText(s, mt)
}

// Encode writes the word raw when it is atext and as an encoded-word in
// phrase context otherwise.
func (w Word) Encode(e *encoder.Encoder) error {
	s := w.String()
	if s == "" {
		return nonEncodable("word", s, ErrEmpty)
	}
	if needsEncoding(s, e.MailType()) {
		e.WriteEncodedWord(s, encword.Phrase)
		return nil
	}
	e.WriteString(s)
	return nil
}

// Phrase is a display name or similar ordered list of words.
type Phrase []Word

// NewPhrase splits s on white space into a Phrase.
func NewPhrase(s string) Phrase {
	fs := strings.FieldsFunc(s, chars.IsSpace)
	p := make(Phrase, 0, len(fs))
	for _, f := range fs {
		p = append(p, NewWord(f))
	}
	return p
}

// String joins the words with single spaces.
func (p Phrase) String() string {
	ss := make([]string, len(p))
	for i, w := range p {
		ss[i] = w.String()
	}
	return strings.Join(ss, " ")
}

// Encode writes the words separated by FWS. Adjacent words that need encoding
// are combined into one run of encoded-words, so the space between them
// survives decoding.
func (p Phrase) Encode(e *encoder.Encoder) error {
	if len(p) == 0 {
		return nonEncodable("phrase", "", ErrEmpty)
	}

	mt := e.MailType()
	for i := 0; i < len(p); {
		if i > 0 {
			e.WriteFWS()
		}

		s := p[i].String()
		if s == "" {
			return nonEncodable("phrase", p.String(), ErrEmpty)
		}
		if !needsEncoding(s, mt) {
			e.WriteString(s)
			i++
			continue
		}

		run := []string{s}
		for i++; i < len(p) && needsEncoding(p[i].String(), mt); i++ {
			run = append(run, p[i].String())
		}
		e.WriteEncodedWord(strings.Join(run, " "), encword.Phrase)
	}
	return nil
}

// PhraseList is a comma separated list of phrases, as used by Keywords.
type PhraseList []Phrase

// Encode writes the phrases separated by a comma and FWS.
func (pl PhraseList) Encode(e *encoder.Encoder) error {
	if len(pl) == 0 {
		return nonEncodable("phrase list", "", ErrEmpty)
	}
	for i, p := range pl {
		if i > 0 {
			e.WriteChar(',')
			e.WriteFWS()
		}
		if err := p.Encode(e); err != nil {
			return err
		}
	}
	return nil
}
