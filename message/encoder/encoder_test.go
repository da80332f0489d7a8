package encoder_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailenc/message/chars"
	"github.com/zostay/go-mailenc/message/encoder"
	"github.com/zostay/go-mailenc/message/encword"
)

func newEncoder(t *testing.T, opts ...encoder.Option) *encoder.Encoder {
	t.Helper()
	e, err := encoder.New(opts...)
	require.NoError(t, err)
	return e
}

func lines(b []byte) []string {
	return strings.Split(strings.TrimSuffix(string(b), "\r\n"), "\r\n")
}

func TestNew(t *testing.T) {
	t.Parallel()

	e := newEncoder(t)
	assert.Equal(t, chars.ASCII, e.MailType())
	assert.Equal(t, 0, e.LineLength())

	_, err := encoder.New(encoder.WithLineLimit(40))
	assert.ErrorIs(t, err, encoder.ErrLineLimitTooShort)

	_, err = encoder.New(encoder.WithLineLimit(1200))
	assert.ErrorIs(t, err, encoder.ErrLineLimitTooLong)

	e = newEncoder(t, encoder.WithMailType(chars.Internationalized))
	assert.Equal(t, chars.Internationalized, e.MailType())
}

func TestEncoder_LineTracking(t *testing.T) {
	t.Parallel()

	e := newEncoder(t)
	e.WriteString("abc")
	assert.Equal(t, 3, e.LineLength())

	e.WriteNewLine()
	assert.Equal(t, 0, e.LineLength())
	assert.Equal(t, "abc\r\n", string(e.Bytes()))

	// no second CRLF on an empty line
	e.WriteNewLine()
	assert.Equal(t, "abc\r\n", string(e.Bytes()))

	// a lone LF is not a line break
	e.WriteString("x\ny")
	assert.Equal(t, 3, e.LineLength())

	e.WriteBlankLine()
	assert.Equal(t, "abc\r\nx\ny\r\n\r\n", string(e.Bytes()))
}

func TestEncoder_BreakLineOnLastFWS(t *testing.T) {
	t.Parallel()

	e := newEncoder(t)
	e.WriteString("Subject:")
	e.WriteFWS()
	e.WriteString("word")
	e.BreakLineOnLastFWS()
	assert.Equal(t, "Subject:\r\n word", string(e.Bytes()))
	assert.Equal(t, 5, e.LineLength())
	assert.False(t, e.HasFoldPoint())

	// no fold point means nothing happens
	e.BreakLineOnLastFWS()
	assert.Equal(t, "Subject:\r\n word", string(e.Bytes()))

	e = newEncoder(t)
	e.WriteString("<a@b>")
	e.NoteOptionalFWS()
	e.WriteString("<c@d>")
	e.BreakLineOnLastFWS()
	assert.Equal(t, "<a@b>\r\n <c@d>", string(e.Bytes()))
	assert.Equal(t, 6, e.LineLength())
}

func TestEncoder_FWSCharTab(t *testing.T) {
	t.Parallel()

	e := newEncoder(t)
	e.WriteString("a")
	e.WriteFWSChar('\t')
	e.WriteString("b")
	e.BreakLineOnLastFWS()
	assert.Equal(t, "a\r\n\tb", string(e.Bytes()))
}

func TestEncoder_Folding(t *testing.T) {
	t.Parallel()

	e := newEncoder(t)
	e.WriteString("Subject:")
	for i := 0; i < 40; i++ {
		e.WriteFWS()
		e.WriteString("lorem")
	}
	e.FinishHeader()

	out := lines(e.Bytes())
	require.Greater(t, len(out), 1)
	for i, l := range out {
		assert.LessOrEqual(t, len(l), encoder.DefaultLineLimit, "line %d", i)
		if i > 0 {
			assert.True(t, strings.HasPrefix(l, " "), "line %d", i)
		}
	}

	unfolded := strings.ReplaceAll(strings.TrimSuffix(string(e.Bytes()), "\r\n"), "\r\n", "")
	assert.Equal(t, "Subject:"+strings.Repeat(" lorem", 40), unfolded)
}

func TestEncoder_ShortHeaderNotFolded(t *testing.T) {
	t.Parallel()

	e := newEncoder(t)
	e.WriteString("Subject:")
	e.WriteFWS()
	e.WriteString("Hello")
	e.WriteFWS()
	e.WriteString("World")
	e.FinishHeader()
	assert.Equal(t, "Subject: Hello World\r\n", string(e.Bytes()))
}

func TestEncoder_Unfoldable(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 100)
	e := newEncoder(t)
	e.WriteString("X-Long:")
	e.WriteString(long)
	e.FinishHeader()
	assert.Equal(t, "X-Long:"+long+"\r\n", string(e.Bytes()))
}

func TestEncoder_TryWrite(t *testing.T) {
	t.Parallel()

	e := newEncoder(t)
	assert.NoError(t, e.TryWriteAText("abc"))
	assert.ErrorIs(t, e.TryWriteAText("a b"), encoder.ErrNotAText)

	err := e.TryWriteAText("ä")
	assert.ErrorIs(t, err, encoder.ErrNotAText)
	assert.Contains(t, err.Error(), `"ä"`)

	assert.ErrorIs(t, e.TryWriteUTF8("ä"), encoder.ErrNotInternationalized)
	assert.Equal(t, "abc", string(e.Bytes()))
	assert.False(t, e.Has8Bit())

	e = newEncoder(t, encoder.WithMailType(chars.Internationalized))
	assert.NoError(t, e.TryWriteAText("ä"))
	assert.NoError(t, e.TryWriteUTF8("ö ü"))
	assert.Equal(t, "äö ü", string(e.Bytes()))
	assert.True(t, e.Has8Bit())
}

func TestEncoder_WriteFieldName(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 80)
	e := newEncoder(t)
	e.WriteFieldName("Subject")
	e.WriteString(long)
	e.WriteFWS()
	e.WriteString("end")
	e.FinishHeader()
	assert.Equal(t, "Subject: "+long+"\r\n end\r\n", string(e.Bytes()))

	// a fold after the name is still made when the rest then fits
	short := strings.Repeat("x", 72)
	e = newEncoder(t)
	e.WriteFieldName("Subject")
	e.WriteString(short)
	e.FinishHeader()
	assert.Equal(t, "Subject:\r\n "+short+"\r\n", string(e.Bytes()))

	e = newEncoder(t)
	e.WriteFieldName("Subject")
	e.FinishHeader()
	assert.Equal(t, "Subject:\r\n", string(e.Bytes()))
}

func TestEncoder_WriteEncodedWord(t *testing.T) {
	t.Parallel()

	e := newEncoder(t)
	e.WriteString("Subject:")
	e.WriteFWS()
	e.WriteEncodedWord(strings.Repeat("Ünïcödé ", 12), encword.Text)
	e.FinishHeader()

	out := lines(e.Bytes())
	require.Greater(t, len(out), 1)
	for i, l := range out {
		assert.LessOrEqual(t, len(l), encoder.DefaultLineLimit, "line %d", i)
		for _, w := range strings.Fields(strings.TrimPrefix(l, "Subject:")) {
			assert.LessOrEqual(t, len(w), encword.MaxLength)
			assert.True(t, encword.IsEncodedWord(w, encword.Text), w)
		}
	}
	assert.False(t, e.Has8Bit())
}

func TestEncoder_WriteBody(t *testing.T) {
	t.Parallel()

	e := newEncoder(t)
	e.WriteBody([]byte("line one\r\nline two"))
	assert.Equal(t, 8, e.LineLength())

	e.WriteBody([]byte("\r\n"))
	assert.Equal(t, 0, e.LineLength())

	e.WriteBody([]byte{0xff})
	assert.True(t, e.Has8Bit())
	assert.Equal(t, 1, e.LineLength())
	assert.Equal(t, 21, e.Len())
}

func TestEncoder_NoteOptionalFWSAfterSpace(t *testing.T) {
	t.Parallel()

	e := newEncoder(t)
	e.WriteString("Message-ID:")
	e.WriteFWS()
	e.NoteOptionalFWS()
	e.WriteString("<id@example.com>")
	e.BreakLineOnLastFWS()
	assert.Equal(t, "Message-ID:\r\n <id@example.com>", string(e.Bytes()))
}

func TestEncoder_NoFoldAtEnd(t *testing.T) {
	t.Parallel()

	e := newEncoder(t)
	e.WriteString("References:")
	e.WriteFWS()
	e.WriteString("<" + strings.Repeat("a", 80) + "@example.com>")
	e.NoteOptionalFWS()
	e.FinishHeader()

	out := string(e.Bytes())
	assert.Equal(t, 2, strings.Count(out, "\r\n"), out)
	assert.False(t, strings.Contains(out, "\r\n \r\n"))
	assert.True(t, strings.HasPrefix(out, "References:\r\n <"))
}
