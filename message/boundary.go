package message

import (
	"math/rand"
	"strings"
)

// BoundaryLength is the length of a generated boundary. A boundary parameter
// of this length, quoted, still fits on a folded line of 78 characters.
const BoundaryLength = 66

// boundaryPrefix is neither valid base64 nor valid quoted-printable, so an
// encoded body never contains a generated boundary.
const boundaryPrefix = "=_"

const (
	bcharsNoSpace = "'()+_,-./:=?" +
		"0123456789" +
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		"abcdefghijklmnopqrstuvwxyz"
	bchars = " " + bcharsNoSpace
)

// GenerateBoundary will generate a random MIME boundary that is probably unique
// in most circumstances. It starts with "=_", is made of RFC 2046 bchars and
// never ends in a space.
func GenerateBoundary() string {
	b := make([]byte, BoundaryLength)
	copy(b, boundaryPrefix)
	for i := len(boundaryPrefix); i < BoundaryLength-1; i++ {
		b[i] = bchars[rand.Intn(len(bchars))]
	}
	b[BoundaryLength-1] = bcharsNoSpace[rand.Intn(len(bcharsNoSpace))]
	return string(b)
}

// ValidBoundary reports whether b is an RFC 2046 boundary: 1 to 70 bchars not
// ending in a space.
func ValidBoundary(b string) bool {
	if len(b) < 1 || len(b) > 70 || b[len(b)-1] == ' ' {
		return false
	}
	for i := 0; i < len(b); i++ {
		if !strings.ContainsRune(bchars, rune(b[i])) {
			return false
		}
	}
	return true
}
