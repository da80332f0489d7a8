package component

import (
	"net/mail"
	"time"

	"github.com/araddon/dateparse"

	"github.com/zostay/go-mailenc/message/encoder"
)

// DateFormat is the RFC 5322 date-time layout.
const DateFormat = "Mon, 02 Jan 2006 15:04:05 -0700"

// DateTime is a point in time written as an RFC 5322 date-time.
type DateTime struct {
	time.Time
}

// NewDateTime wraps t.
func NewDateTime(t time.Time) DateTime {
	return DateTime{t}
}

// ParseDateTime parses s as an RFC 5322 date. If that fails, a much more
// lenient parser is tried.
func ParseDateTime(s string) (DateTime, error) {
	t, err := mail.ParseDate(s)
	if err == nil {
		return DateTime{t}, nil
	}

	t, err = dateparse.ParseAny(s)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{t}, nil
}

// String returns the formatted date.
func (dt DateTime) String() string {
	return dt.Format(DateFormat)
}

// Encode writes the formatted date.
func (dt DateTime) Encode(e *encoder.Encoder) error {
	if dt.IsZero() {
		return nonEncodable("date-time", "", ErrEmpty)
	}
	e.WriteString(dt.String())
	return nil
}
