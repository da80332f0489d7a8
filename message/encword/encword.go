package encword

import (
	"strings"
	"unicode/utf8"

	"github.com/zostay/go-mailenc/message/chars"
)

// Context names the part of a header an encoded-word appears in. Each context
// restricts the characters that may appear literally in the encoded text.
type Context int

const (
	Phrase  Context = iota // inside a phrase, e.g. a display name
	Text                   // inside unstructured text, e.g. a Subject
	Comment                // inside a parenthesized comment
)

// String returns the lower case name of the context.
func (c Context) String() string {
	switch c {
	case Phrase:
		return "phrase"
	case Text:
		return "text"
	case Comment:
		return "comment"
	}
	return "unknown"
}

const (
	// MaxLength is the maximum length of a single encoded-word.
	MaxLength = 75

	prefix   = "=?utf-8?Q?"
	suffix   = "?="
	overhead = len(prefix) + len(suffix)

	// MaxText is the number of encoded text bytes that fit into one word.
	MaxText = MaxLength - overhead

	upperhex = "0123456789ABCDEF"
)

// literal reports whether the byte may be written unescaped into the Q text
// of a word in the given context. The space is handled separately.
func literal(b byte, ctx Context) bool {
	switch ctx {
	case Phrase:
		return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') ||
			(b >= 'A' && b <= 'Z') || b == '!' || b == '*' || b == '+' ||
			b == '-' || b == '/'
	case Comment:
		if b == '(' || b == ')' || b == '"' || b == '\\' {
			return false
		}
	}
	return chars.IsASCIIVChar(rune(b)) && b != '=' && b != '?' && b != '_'
}

// encodedLen returns the length of the Q form of the given bytes.
func encodedLen(s string, ctx Context) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || literal(s[i], ctx) {
			n++
		} else {
			n += 3
		}
	}
	return n
}

func qencode(sb *strings.Builder, s string, ctx Context) {
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b == ' ':
			sb.WriteByte('_')
		case literal(b, ctx):
			sb.WriteByte(b)
		default:
			sb.WriteByte('=')
			sb.WriteByte(upperhex[b>>4])
			sb.WriteByte(upperhex[b&0x0f])
		}
	}
}

// Encode turns the whole of text into a single encoded-word. The result may
// exceed MaxLength; use Split when the limit must hold.
func Encode(text string, ctx Context) string {
	sb := &strings.Builder{}
	sb.Grow(overhead + encodedLen(text, ctx))
	sb.WriteString(prefix)
	qencode(sb, text, ctx)
	sb.WriteString(suffix)
	return sb.String()
}

// Split encodes text as a sequence of encoded-words, each no longer than
// MaxLength. A UTF-8 sequence is never divided between two words. The first
// word is limited to room bytes when room leaves space for at least one
// character; otherwise, like every other word, it is limited to MaxLength.
func Split(text string, ctx Context, room int) []string {
	if text == "" {
		return []string{prefix + suffix}
	}

	limit := MaxText
	if r := room - overhead; r < limit {
		limit = r
	}

	words := []string{}
	start, n := 0, 0
	for i := 0; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])
		rl := encodedLen(text[i:i+size], ctx)
		if n+rl > limit && n > 0 {
			words = append(words, Encode(text[start:i], ctx))
			start, n = i, 0
			limit = MaxText
		} else if n == 0 && rl > limit {
			// the room given for the first word is too small for anything
			limit = MaxText
		}
		n += rl
		i += size
	}
	return append(words, Encode(text[start:], ctx))
}
