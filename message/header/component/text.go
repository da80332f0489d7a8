package component

import (
	"strings"

	"github.com/zostay/go-mailenc/message/chars"
	"github.com/zostay/go-mailenc/message/encoder"
	"github.com/zostay/go-mailenc/message/encword"
)

// segment is a run of either white space or non-white space.
type segment struct {
	text  string
	space bool
}

func segments(s string) []segment {
	segs := []segment{}
	start := 0
	for i := 1; i <= len(s); i++ {
		if i == len(s) || isSpaceByte(s[i]) != isSpaceByte(s[start]) {
			segs = append(segs, segment{s[start:i], isSpaceByte(s[start])})
			start = i
		}
	}
	return segs
}

func isSpaceByte(b byte) bool {
	return chars.IsSpace(rune(b))
}

// writeSpace writes a white space run. The first byte is the fold point. CR
// and LF cannot appear in a header body and are written as spaces.
func writeSpace(e *encoder.Encoder, ws string) {
	for i := 0; i < len(ws); i++ {
		c := ws[i]
		if c != '\t' {
			c = ' '
		}
		if i == 0 {
			e.WriteFWSChar(c)
		} else {
			e.WriteChar(c)
		}
	}
}

// writeText writes words and the white space between them, turning every
// word that fails raw into encoded-words of the given context. Adjacent
// encoded words are merged together with the white space between them.
func writeText(e *encoder.Encoder, s string, ctx encword.Context, raw func(string) bool) {
	segs := segments(strings.TrimFunc(s, chars.IsSpace))
	for i := 0; i < len(segs); {
		seg := segs[i]
		switch {
		case seg.space:
			writeSpace(e, seg.text)
			i++
		case raw(seg.text):
			e.WriteString(seg.text)
			i++
		default:
			end := i + 1
			for end+1 < len(segs) && !raw(segs[end+1].text) {
				end += 2
			}
			run := &strings.Builder{}
			for _, sg := range segs[i:end] {
				run.WriteString(sg.text)
			}
			e.WriteEncodedWord(run.String(), ctx)
			i = end
		}
	}
}

// Unstructured is free text, such as the body of a Subject header.
type Unstructured struct {
	Input
}

// NewUnstructured returns Unstructured text owning s.
func NewUnstructured(s string) Unstructured {
	return Unstructured{Owned(s)}
}

// Encode writes the text. Leading and trailing white space is dropped, other
// white space is kept as it is with each run offering a fold point. Words that
// are not visible characters in the mail type become encoded-words.
func (u Unstructured) Encode(e *encoder.Encoder) error {
	mt := e.MailType()
	writeText(e, u.String(), encword.Text, func(w string) bool {
		if strings.HasPrefix(w, "=?") {
			return false
		}
		for _, r := range w {
			if !chars.IsVChar(r, mt) {
				return false
			}
		}
		return true
	})
	return nil
}

// Comment is a parenthesized comment, e.g. inside a Received header.
type Comment struct {
	Input
}

// NewComment returns a Comment owning s, which excludes the parentheses.
func NewComment(s string) Comment {
	return Comment{Owned(s)}
}

// Encode writes "(" text ")". Words with characters that are not ctext become
// encoded-words in comment context.
func (c Comment) Encode(e *encoder.Encoder) error {
	mt := e.MailType()
	e.WriteChar('(')
	writeText(e, c.String(), encword.Comment, func(w string) bool {
		if strings.HasPrefix(w, "=?") {
			return false
		}
		for _, r := range w {
			if !chars.IsCText(r, mt) {
				return false
			}
		}
		return true
	})
	e.WriteChar(')')
	return nil
}
