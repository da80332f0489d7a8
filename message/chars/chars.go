package chars

import "unicode/utf8"

// IsWS reports whether r is WSP (space or horizontal tab).
func IsWS(r rune) bool {
	return r == ' ' || r == '\t'
}

// IsSpace reports whether r is WSP, CR, or LF.
func IsSpace(r rune) bool {
	return IsWS(r) || r == '\r' || r == '\n'
}

// IsASCIIVChar reports whether r is a visible US-ASCII character (0x21-0x7E).
func IsASCIIVChar(r rune) bool {
	return r >= '!' && r <= '~'
}

// isUTF8NonASCII is the RFC 6532 extension point. Anything encoded in more
// than one byte qualifies.
func isUTF8NonASCII(r rune) bool {
	return r >= utf8.RuneSelf && r != utf8.RuneError
}

// IsVChar reports whether r is VCHAR for the given mail type.
func IsVChar(r rune, mt MailType) bool {
	if IsASCIIVChar(r) {
		return true
	}
	return mt == Internationalized && isUTF8NonASCII(r)
}

// IsCtl reports whether r is an ASCII control character (0x00-0x1F, 0x7F).
func IsCtl(r rune) bool {
	return (r >= 0 && r < ' ') || r == 0x7F
}

// IsSpecial reports whether r is one of the RFC 5322 specials.
func IsSpecial(r rune) bool {
	switch r {
	case '(', ')', '<', '>', '[', ']', ':', ';', '@', '\\', ',', '.', '"':
		return true
	}
	return false
}

// IsTSpecial reports whether r is one of the RFC 2045 tspecials.
func IsTSpecial(r rune) bool {
	switch r {
	case '(', ')', '<', '>', '@', ',', ';', ':', '\\', '"', '/', '[', ']', '?', '=':
		return true
	}
	return false
}

// IsESpecial reports whether r is one of the RFC 2047 especials.
func IsESpecial(r rune) bool {
	switch r {
	case '(', ')', '<', '>', '@', ',', ';', ':', '"', '/', '[', ']', '?', '.', '=':
		return true
	}
	return false
}

// IsTokenChar reports whether r may appear in an RFC 2045 token.
func IsTokenChar(r rune) bool {
	return IsASCIIVChar(r) && !IsTSpecial(r)
}

// IsAText reports whether r is atext for the given mail type.
func IsAText(r rune, mt MailType) bool {
	if IsASCIIVChar(r) {
		return !IsSpecial(r)
	}
	return mt == Internationalized && isUTF8NonASCII(r)
}

// IsCText reports whether r may appear unescaped in a comment.
func IsCText(r rune, mt MailType) bool {
	if IsASCIIVChar(r) {
		return r != '(' && r != ')' && r != '\\'
	}
	return mt == Internationalized && isUTF8NonASCII(r)
}

// IsQText reports whether r may appear unescaped in a quoted-string.
func IsQText(r rune, mt MailType) bool {
	if IsASCIIVChar(r) {
		return r != '"' && r != '\\'
	}
	return mt == Internationalized && isUTF8NonASCII(r)
}

// IsDText reports whether r may appear unescaped in a domain literal.
func IsDText(r rune, mt MailType) bool {
	if IsASCIIVChar(r) {
		return r != '[' && r != ']' && r != '\\'
	}
	return mt == Internationalized && isUTF8NonASCII(r)
}

// IsASCII reports whether every byte of s is below 0x80.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// AllAText reports whether s is non-empty and made only of atext.
func AllAText(s string, mt MailType) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !IsAText(r, mt) {
			return false
		}
	}
	return true
}

// IsDotAtom reports whether s is a dot-atom-text: atext runs separated by
// single dots with no leading or trailing dot.
func IsDotAtom(s string, mt MailType) bool {
	if s == "" {
		return false
	}
	prevDot := true
	for _, r := range s {
		if r == '.' {
			if prevDot {
				return false
			}
			prevDot = true
			continue
		}
		if !IsAText(r, mt) {
			return false
		}
		prevDot = false
	}
	return !prevDot
}

// IsToken reports whether s is a non-empty RFC 2045 token.
func IsToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !IsTokenChar(r) {
			return false
		}
	}
	return true
}
