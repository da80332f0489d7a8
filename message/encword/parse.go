package encword

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/zostay/go-mailenc/message/chars"
)

var (
	// ErrMalformed is matched by every ParseError.
	ErrMalformed = errors.New("malformed encoded-word")

	// ErrUnknownCharset is returned by Decode when the charset named by the
	// word is not known.
	ErrUnknownCharset = errors.New("unknown charset in encoded-word")

	// ErrUnknownEncoding is returned by Decode when the word is neither Q nor
	// B encoded.
	ErrUnknownEncoding = errors.New("unknown encoding in encoded-word")
)

// ParseError describes why a string is not an encoded-word.
type ParseError struct {
	Word   string
	Reason string
}

// Error returns the reason along with the offending word.
func (err *ParseError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrMalformed, err.Word, err.Reason)
}

// Unwrap returns ErrMalformed.
func (err *ParseError) Unwrap() error {
	return ErrMalformed
}

func isTokenChar(r rune) bool {
	return chars.IsASCIIVChar(r) && !chars.IsESpecial(r)
}

func validText(r rune, ctx Context) bool {
	if !chars.IsASCIIVChar(r) || r == '?' {
		return false
	}
	switch ctx {
	case Phrase:
		return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') || strings.ContainsRune("!*+-/=_", r)
	case Comment:
		return r != '(' && r != ')' && r != '"'
	}
	return true
}

// Parse checks that word follows the encoded-word grammar for the given
// context and returns its three parts.
func Parse(word string, ctx Context) (charset, encoding, text string, err error) {
	fail := func(reason string) (string, string, string, error) {
		return "", "", "", &ParseError{Word: word, Reason: reason}
	}

	if len(word) > MaxLength {
		return fail("longer than 75 characters")
	}
	if !strings.HasPrefix(word, "=?") || !strings.HasSuffix(word, "?=") || len(word) < 6 {
		return fail("missing =? or ?= delimiters")
	}

	parts := strings.SplitN(word[2:len(word)-2], "?", 3)
	if len(parts) != 3 {
		return fail("expected charset, encoding, and text")
	}

	for i, tok := range parts[:2] {
		if tok == "" {
			return fail("empty token")
		}
		for _, r := range tok {
			if !isTokenChar(r) {
				return fail(fmt.Sprintf("bad character %q in token %d", r, i+1))
			}
		}
	}

	for _, r := range parts[2] {
		if !validText(r, ctx) {
			return fail(fmt.Sprintf("character %q not permitted in %s", r, ctx))
		}
	}

	return parts[0], parts[1], parts[2], nil
}

// IsEncodedWord reports whether word is an encoded-word valid in the context.
func IsEncodedWord(word string, ctx Context) bool {
	_, _, _, err := Parse(word, ctx)
	return err == nil
}

func unhex(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

func qdecode(word, s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '_':
			out = append(out, ' ')
		case '=':
			if i+2 >= len(s) {
				return nil, &ParseError{Word: word, Reason: "truncated escape"}
			}
			hi, ok1 := unhex(s[i+1])
			lo, ok2 := unhex(s[i+2])
			if !ok1 || !ok2 {
				return nil, &ParseError{Word: word, Reason: "bad escape"}
			}
			out = append(out, hi<<4|lo)
			i += 2
		default:
			out = append(out, c)
		}
	}
	return out, nil
}

// Decode decodes a single encoded-word in any context.
func Decode(word string) (string, error) {
	charset, enc, text, err := Parse(word, Text)
	if err != nil {
		return "", err
	}

	var raw []byte
	switch strings.ToUpper(enc) {
	case "Q":
		raw, err = qdecode(word, text)
	case "B":
		raw, err = base64.StdEncoding.DecodeString(text)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
	}
	if err != nil {
		return "", err
	}

	// RFC 2231 allows a language suffix on the charset
	if ix := strings.IndexByte(charset, '*'); ix >= 0 {
		charset = charset[:ix]
	}

	switch strings.ToLower(charset) {
	case "utf-8", "us-ascii":
		return string(raw), nil
	}

	cs, err := htmlindex.Get(charset)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownCharset, charset)
	}

	dec, err := io.ReadAll(cs.NewDecoder().Reader(bytes.NewReader(raw)))
	if err != nil {
		return "", err
	}
	return string(dec), nil
}
