package chars

import "fmt"

// MailType selects between mail restricted to US-ASCII headers and mail that
// may carry UTF-8 in headers as permitted by RFC 6532.
type MailType int

const (
	ASCII             MailType = iota // headers must be 7-bit ASCII
	Internationalized                 // headers may contain raw UTF-8
)

// String returns the name used for the mail type in configuration.
func (mt MailType) String() string {
	switch mt {
	case ASCII:
		return "ascii"
	case Internationalized:
		return "internationalized"
	}
	return fmt.Sprintf("MailType(%d)", int(mt))
}

// ParseMailType is the inverse of String. It accepts "ascii" and
// "internationalized" (or the short forms "7bit" and "utf8").
func ParseMailType(s string) (MailType, error) {
	switch s {
	case "ascii", "7bit", "":
		return ASCII, nil
	case "internationalized", "utf8", "utf-8":
		return Internationalized, nil
	}
	return ASCII, fmt.Errorf("unknown mail type %q", s)
}

// IsInternationalized returns true for Internationalized.
func (mt MailType) IsInternationalized() bool {
	return mt == Internationalized
}
