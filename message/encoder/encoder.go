package encoder

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/zostay/go-mailenc/message/chars"
	"github.com/zostay/go-mailenc/message/encword"
)

// CRLF is the only line break written by the Encoder.
const CRLF = "\r\n"

// minEncodedRoom is the least room on a line worth starting an encoded-word
// in. With less room left, the word is written whole and the line is folded in
// front of it.
const minEncodedRoom = 24

var (
	// ErrNotAText is returned by TryWriteAText for text that is not atext in
	// the mail type of the Encoder.
	ErrNotAText = errors.New("not atext")

	// ErrNotInternationalized is returned by TryWriteUTF8 when the mail type
	// does not allow raw UTF-8.
	ErrNotInternationalized = errors.New("mail type does not allow UTF-8")
)

// Encoder is a growable byte buffer that knows about lines and fold points.
// An Encoder is not safe for concurrent use.
type Encoder struct {
	buf       []byte
	lineStart int
	lastFWS   int
	nameFWS   int
	mailType  chars.MailType
	limit     int
	has8bit   bool
	logger    zerolog.Logger
}

// New returns an empty Encoder.
func New(opts ...Option) (*Encoder, error) {
	e := &Encoder{
		lastFWS:  -1,
		nameFWS:  -1,
		mailType: chars.ASCII,
		limit:    DefaultLineLimit,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// MailType returns the mail type fixed at construction.
func (e *Encoder) MailType() chars.MailType {
	return e.mailType
}

// Logger returns the logger fixed at construction.
func (e *Encoder) Logger() zerolog.Logger {
	return e.logger
}

// Has8Bit reports whether any byte at or above 0x80 has been written.
func (e *Encoder) Has8Bit() bool {
	return e.has8bit
}

// Bytes returns the bytes written so far. The slice aliases the buffer.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Len returns the number of bytes written.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// LineLength returns the number of bytes since the last CRLF.
func (e *Encoder) LineLength() int {
	return len(e.buf) - e.lineStart
}

// HasFoldPoint reports whether a fold point is recorded on the current line.
func (e *Encoder) HasFoldPoint() bool {
	return e.lastFWS >= 0
}

// WriteChar appends a single byte. A LF directly following a CR ends the
// line and forgets the fold point.
func (e *Encoder) WriteChar(b byte) {
	if b >= 0x80 {
		e.has8bit = true
	}
	e.buf = append(e.buf, b)
	if b == '\n' && len(e.buf) > 1 && e.buf[len(e.buf)-2] == '\r' {
		e.lineStart = len(e.buf)
		e.lastFWS = -1
	}
}

// WriteString appends s byte for byte as WriteChar does.
func (e *Encoder) WriteString(s string) {
	for i := 0; i < len(s); i++ {
		e.WriteChar(s[i])
	}
}

// WriteNewLine writes a CRLF unless the current line is empty.
func (e *Encoder) WriteNewLine() {
	if e.LineLength() == 0 {
		return
	}
	e.WriteString(CRLF)
}

// WriteBlankLine ends the current line, if needed, and writes an empty line.
func (e *Encoder) WriteBlankLine() {
	e.WriteNewLine()
	e.WriteString(CRLF)
}

// WriteFieldName writes `name:` and the FWS that follows it. The automatic
// folding done while writing the field body only folds at that FWS when the
// rest of the line then fits within the limit.
func (e *Encoder) WriteFieldName(name string) {
	e.WriteString(name)
	e.WriteChar(':')
	e.WriteFWS()
	e.nameFWS = e.lastFWS
}

// WriteFWS writes a single space and records it as the fold point.
func (e *Encoder) WriteFWS() {
	e.WriteFWSChar(' ')
}

// WriteFWSChar is WriteFWS with an explicit space or tab. Any other byte is
// written as a space.
func (e *Encoder) WriteFWSChar(c byte) {
	if !chars.IsWS(rune(c)) {
		c = ' '
	}
	e.foldIfNeeded()
	e.lastFWS = len(e.buf)
	e.WriteChar(c)
}

// NoteOptionalFWS records the current position as a fold point without
// writing anything. Directly after a space or tab, that white space becomes
// the fold point instead.
func (e *Encoder) NoteOptionalFWS() {
	e.foldIfNeeded()
	if n := len(e.buf); n > e.lineStart && chars.IsWS(rune(e.buf[n-1])) {
		e.lastFWS = n - 1
		return
	}
	e.lastFWS = len(e.buf)
}

// foldIfNeeded folds at the recorded fold point when the line is too long.
func (e *Encoder) foldIfNeeded() {
	if e.LineLength() <= e.limit || e.lastFWS < 0 {
		return
	}
	if e.lastFWS == e.nameFWS && len(e.buf)-e.lastFWS > e.limit {
		return
	}
	e.BreakLineOnLastFWS()
}

// BreakLineOnLastFWS folds the current line at the recorded fold point and
// forgets it. It does nothing when there is no fold point.
func (e *Encoder) BreakLineOnLastFWS() {
	pos := e.lastFWS
	e.lastFWS = -1
	if pos < e.lineStart || pos > len(e.buf) {
		return
	}

	// a fold must not leave a line of only white space on either side
	if pos == e.lineStart || len(bytes.TrimLeft(e.buf[pos:], " \t")) == 0 {
		return
	}

	ins := []byte(CRLF + " ")
	if pos < len(e.buf) && chars.IsWS(rune(e.buf[pos])) {
		ins = ins[:2]
	}

	e.buf = append(e.buf[:pos], append(ins, e.buf[pos:]...)...)
	e.lineStart = pos + 2
}

// TryWriteAText writes s when it is non-empty atext for the mail type.
// Otherwise nothing is written and an error wrapping ErrNotAText is returned.
func (e *Encoder) TryWriteAText(s string) error {
	if !chars.AllAText(s, e.mailType) {
		return fmt.Errorf("%w in %s mail: %q", ErrNotAText, e.mailType, s)
	}
	e.WriteString(s)
	return nil
}

// TryWriteUTF8 writes s raw when the mail type is Internationalized.
// Otherwise nothing is written and ErrNotInternationalized is returned.
func (e *Encoder) TryWriteUTF8(s string) error {
	if e.mailType != chars.Internationalized {
		return ErrNotInternationalized
	}
	e.WriteString(s)
	return nil
}

// WriteEncodedWord writes text as one or more encoded-words joined by FWS.
// The first word is sized to the room left on the line when there is enough
// of it.
func (e *Encoder) WriteEncodedWord(text string, ctx encword.Context) {
	room := e.limit - e.LineLength()
	if room < minEncodedRoom {
		room = encword.MaxLength
	}
	for i, w := range encword.Split(text, ctx, room) {
		if i > 0 {
			e.WriteFWS()
		}
		e.WriteString(w)
		e.foldIfNeeded()
	}
}

// FinishHeader folds the current line if it is too long and ends it. White
// space at the end of the line, such as the FWS after the name of a field with
// an empty body, is dropped.
func (e *Encoder) FinishHeader() {
	e.foldIfNeeded()
	end := len(e.buf)
	for end > e.lineStart && chars.IsWS(rune(e.buf[end-1])) {
		end--
	}
	e.buf = e.buf[:end]
	if e.LineLength() > e.limit {
		e.logger.Warn().
			Int("length", e.LineLength()).
			Int("limit", e.limit).
			Msg("header line could not be folded below the limit")
	}
	e.WriteNewLine()
	e.lastFWS = -1
	e.nameFWS = -1
}

// WriteBody appends body bytes unchanged.
func (e *Encoder) WriteBody(data []byte) {
	if len(data) == 0 {
		return
	}
	if !e.has8bit {
		for _, b := range data {
			if b >= 0x80 {
				e.has8bit = true
				break
			}
		}
	}

	prev := byte(0)
	if len(e.buf) > 0 {
		prev = e.buf[len(e.buf)-1]
	}
	base := len(e.buf)
	e.buf = append(e.buf, data...)

	if ix := bytes.LastIndex(data, []byte(CRLF)); ix >= 0 {
		e.lineStart = base + ix + 2
		e.lastFWS = -1
	} else if prev == '\r' && data[0] == '\n' {
		e.lineStart = base + 1
		e.lastFWS = -1
	}
}
