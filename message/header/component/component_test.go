package component_test

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailenc/message/chars"
	"github.com/zostay/go-mailenc/message/encoder"
	"github.com/zostay/go-mailenc/message/file"
	"github.com/zostay/go-mailenc/message/header/component"
	"github.com/zostay/go-mailenc/message/header/param"
)

func encode(t *testing.T, c component.Component, mt chars.MailType) (string, error) {
	t.Helper()
	e, err := encoder.New(encoder.WithMailType(mt))
	require.NoError(t, err)
	err = c.Encode(e)
	return string(e.Bytes()), err
}

func ascii(t *testing.T, c component.Component) string {
	t.Helper()
	out, err := encode(t, c, chars.ASCII)
	require.NoError(t, err)
	return out
}

func intl(t *testing.T, c component.Component) string {
	t.Helper()
	out, err := encode(t, c, chars.Internationalized)
	require.NoError(t, err)
	return out
}

var testDate = time.Date(2024, 3, 5, 9, 7, 2, 0, time.UTC)

func TestSource(t *testing.T) {
	t.Parallel()

	src := component.NewSource("John <john@example.com>")
	in := src.View(component.Span{Start: 6, End: 10})
	assert.True(t, in.IsView())
	assert.Equal(t, "john", in.String())
	assert.Equal(t, 4, in.Len())
	assert.Equal(t, component.Span{Start: 6, End: 10}, in.Span())

	found, next := src.Find("example", 0)
	assert.True(t, found.IsView())
	assert.Equal(t, 18, next)

	missing, next := src.Find("nope", 3)
	assert.False(t, missing.IsView())
	assert.Equal(t, "nope", missing.String())
	assert.Equal(t, 3, next)

	clamped := src.View(component.Span{Start: -1, End: 100})
	assert.Equal(t, src.Text(), clamped.String())
}

func TestDomain(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "example.com", ascii(t, component.NewDomain("example.com")))
	assert.Equal(t, "xn--mnchen-3ya.de", ascii(t, component.NewDomain("münchen.de")))
	assert.Equal(t, "münchen.de", intl(t, component.NewDomain("münchen.de")))

	_, err := encode(t, component.NewDomain("[192.0.2.1]"), chars.ASCII)
	assert.ErrorIs(t, err, component.ErrDomainLiteral)

	_, err = encode(t, component.NewDomain(""), chars.ASCII)
	assert.ErrorIs(t, err, component.ErrEmpty)

	_, err = encode(t, component.NewDomain("exa mple.com"), chars.ASCII)
	assert.ErrorIs(t, err, component.ErrInvalidSyntax)
	assert.ErrorIs(t, err, component.ErrNonEncodable)
}

func TestLocalPart(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "john.doe", ascii(t, component.NewLocalPart("john.doe")))
	assert.Equal(t, `"john doe"`, ascii(t, component.NewLocalPart("john doe")))
	assert.Equal(t, `"john doe"`, ascii(t, component.NewLocalPart(`"john doe"`)))
	assert.Equal(t, `"a\"b"`, ascii(t, component.NewLocalPart(`a"b`)))
	assert.Equal(t, `"a..b"`, ascii(t, component.NewLocalPart("a..b")))
	assert.Equal(t, "jürgen", intl(t, component.NewLocalPart("jürgen")))

	_, err := encode(t, component.NewLocalPart("a\x01b"), chars.ASCII)
	assert.ErrorIs(t, err, component.ErrControlChar)

	_, err = encode(t, component.NewLocalPart("jürgen"), chars.ASCII)
	assert.ErrorIs(t, err, component.ErrNotASCII)

	var nerr *component.NonEncodableError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "local part", nerr.Component)
	assert.Equal(t, "jürgen", nerr.Value)
}

func TestEmail(t *testing.T) {
	t.Parallel()

	em, err := component.NewEmail("john@example.com")
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", ascii(t, em))
	assert.Equal(t, "john@example.com", em.String())

	assert.Equal(t, `"john doe"@xn--mnchen-3ya.de`, ascii(t, component.MustEmail("john doe@münchen.de")))

	for _, bad := range []string{"no-at", "@example.com", "john@"} {
		_, err := component.NewEmail(bad)
		assert.ErrorIs(t, err, component.ErrInvalidSyntax, bad)
	}
}

func TestPhrase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "John Doe", ascii(t, component.NewPhrase("John  Doe")))
	assert.Equal(t, "=?utf-8?Q?J=C3=BCrgen_M=C3=BCller?=", ascii(t, component.NewPhrase("Jürgen Müller")))
	assert.Equal(t, "=?utf-8?Q?Dr=2E_J=C3=BCrgen?= Smith", ascii(t, component.NewPhrase("Dr. Jürgen Smith")))
	assert.Equal(t, "Jürgen Müller", intl(t, component.NewPhrase("Jürgen Müller")))
	assert.Equal(t, "=?utf-8?Q?=3D=3Ffoo=3F=3D?=", ascii(t, component.NewWord("=?foo?=")))

	_, err := encode(t, component.Phrase{}, chars.ASCII)
	assert.ErrorIs(t, err, component.ErrEmpty)

	_, err = encode(t, component.NewWord(""), chars.ASCII)
	assert.ErrorIs(t, err, component.ErrEmpty)
}

func TestPhraseList(t *testing.T) {
	t.Parallel()

	pl := component.PhraseList{component.NewPhrase("mail"), component.NewPhrase("go code")}
	assert.Equal(t, "mail, go code", ascii(t, pl))

	_, err := encode(t, component.PhraseList{}, chars.ASCII)
	assert.ErrorIs(t, err, component.ErrEmpty)
}

func TestUnstructured(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hello", ascii(t, component.NewUnstructured("Hello")))
	assert.Equal(t, "Hello   World", ascii(t, component.NewUnstructured("  Hello   World \t")))
	assert.Equal(t, "a\tb", ascii(t, component.NewUnstructured("a\tb")))
	assert.Equal(t, "Re: [list] a.b, c", ascii(t, component.NewUnstructured("Re: [list] a.b, c")))
	assert.Equal(t, "=?utf-8?Q?Caf=C3=A9?= au lait", ascii(t, component.NewUnstructured("Café au lait")))
	assert.Equal(t,
		"=?utf-8?Q?Gr=C3=BC=C3=9Fe?= aus =?utf-8?Q?M=C3=BCnchen?=",
		ascii(t, component.NewUnstructured("Grüße aus München")))
	assert.Equal(t, "=?utf-8?Q?=C3=9Cber_=C3=96l?=", ascii(t, component.NewUnstructured("Über Öl")))
	assert.Equal(t, "Grüße aus München", intl(t, component.NewUnstructured("Grüße aus München")))
	assert.Equal(t, "", ascii(t, component.NewUnstructured("   ")))
}

func TestComment(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "(a comment)", ascii(t, component.NewComment("a comment")))
	assert.Equal(t, "(=?utf-8?Q?=C3=BCn=C3=AF?=)", ascii(t, component.NewComment("ünï")))
	assert.Equal(t, "(=?utf-8?Q?=28x=29?=)", ascii(t, component.NewComment("(x)")))
	assert.Equal(t, "(ünï)", intl(t, component.NewComment("ünï")))
}

func TestMailbox(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "John Doe <john@example.com>", ascii(t, component.MustMailbox("John Doe", "john@example.com")))
	assert.Equal(t, "john@example.com", ascii(t, component.MustMailbox("", "john@example.com")))
	assert.Equal(t,
		"=?utf-8?Q?J=C3=BCrgen?= <j@example.com>",
		ascii(t, component.MustMailbox("Jürgen", "j@example.com")))

	_, err := component.NewMailbox("x", "bad")
	assert.Error(t, err)
}

func TestGroup(t *testing.T) {
	t.Parallel()

	g := component.Group{
		Name: component.NewPhrase("Team"),
		Members: component.MailboxList{
			component.MustMailbox("", "a@example.com"),
			component.MustMailbox("B", "b@example.com"),
		},
	}
	assert.Equal(t, "Team: a@example.com, B <b@example.com>;", ascii(t, g))

	empty := component.Group{Name: component.NewPhrase("Undisclosed recipients")}
	assert.Equal(t, "Undisclosed recipients:;", ascii(t, empty))

	al := component.AddressList{component.MustMailbox("", "c@example.com"), g}
	assert.Equal(t, "c@example.com, Team: a@example.com, B <b@example.com>;", ascii(t, al))
	assert.Len(t, al.Mailboxes(), 3)
}

func TestMailboxList(t *testing.T) {
	t.Parallel()

	_, err := encode(t, component.MailboxList{}, chars.ASCII)
	assert.ErrorIs(t, err, component.ErrEmpty)

	_, err = encode(t, component.AddressList{}, chars.ASCII)
	assert.ErrorIs(t, err, component.ErrEmpty)
}

func TestAddressList_Folding(t *testing.T) {
	t.Parallel()

	al := component.AddressList{}
	for i := 0; i < 8; i++ {
		al = append(al, component.MustMailbox("Recipient Number", "recipient@example.com"))
	}

	e, err := encoder.New()
	require.NoError(t, err)
	e.WriteString("To:")
	e.WriteFWS()
	require.NoError(t, al.Encode(e))
	e.FinishHeader()

	lines := strings.Split(strings.TrimSuffix(string(e.Bytes()), "\r\n"), "\r\n")
	require.Greater(t, len(lines), 1)
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), 78)
		assert.NotEqual(t, "", strings.TrimSpace(l))
	}
}

func TestParseAddressList(t *testing.T) {
	t.Parallel()

	al, err := component.ParseAddressList(`"Doe, John" <john@example.com>, jane@example.com`)
	require.NoError(t, err)
	require.Len(t, al, 2)

	out := ascii(t, al)
	assert.Contains(t, out, "<john@example.com>, jane@example.com")

	mbs := al.Mailboxes()
	require.Len(t, mbs, 2)
	assert.True(t, mbs[0].Email.LocalPart.IsView())
	assert.True(t, mbs[0].Email.Domain.IsView())
	assert.Equal(t, "john@example.com", mbs[0].Email.String())
	assert.Equal(t, "jane@example.com", mbs[1].Email.String())
}

func TestParseMailbox(t *testing.T) {
	t.Parallel()

	mb, err := component.ParseMailbox("John <john@example.com>")
	require.NoError(t, err)
	assert.Equal(t, "John <john@example.com>", ascii(t, mb))

	ml, err := component.ParseMailboxList("a@example.com, b@example.com")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com, b@example.com", ascii(t, ml))
}

func TestParseAddressList_DisplayNames(t *testing.T) {
	t.Parallel()

	al, err := component.ParseAddressList("Juergen Example <juergen@example.com>")
	require.NoError(t, err)
	assert.Equal(t, "Juergen Example <juergen@example.com>", ascii(t, al))

	al, err = component.ParseAddressList("Team: B C <b@example.com>, d@example.com;")
	require.NoError(t, err)
	assert.Equal(t, "Team: B C <b@example.com>, d@example.com;", ascii(t, al))

	mb, err := component.ParseMailbox("Juergen  Example <juergen@example.com>")
	require.NoError(t, err)
	assert.Equal(t, "Juergen Example", mb.Name.String())
	require.Len(t, mb.Name, 2)
	assert.True(t, mb.Name[0].IsView())
	assert.True(t, mb.Name[1].IsView())

	al, err = component.ParseAddressList(`"Doe, John" <john@example.com>`)
	require.NoError(t, err)
	mbs := al.Mailboxes()
	require.Len(t, mbs, 1)
	assert.Equal(t, "Doe, John", mbs[0].Name.String())
}

func TestParseAddressList_GroupWithAddrSpec(t *testing.T) {
	t.Parallel()

	var (
		al  component.AddressList
		err error
	)
	assert.NotPanics(t, func() {
		al, err = component.ParseAddressList("Team: a@example.com;")
	})
	require.NoError(t, err)
	require.Len(t, al, 1)
	assert.IsType(t, component.Group{}, al[0])
	assert.Equal(t, "Team: a@example.com;", ascii(t, al))

	assert.NotPanics(t, func() {
		al, err = component.ParseAddressList("Team: a@example.com, B <b@example.com>;, c@example.com")
	})
	require.NoError(t, err)
	assert.Equal(t, "Team: a@example.com, B <b@example.com>;, c@example.com", ascii(t, al))
	assert.Len(t, al.Mailboxes(), 3)
}

func TestParseAddressList_Errors(t *testing.T) {
	t.Parallel()

	_, err := component.ParseAddressList("no address here")
	assert.ErrorIs(t, err, component.ErrInvalidSyntax)

	_, err = component.ParseAddressList("")
	assert.Error(t, err)

	_, err = component.ParseMailbox("a@example.com, b@example.com")
	assert.ErrorIs(t, err, component.ErrInvalidSyntax)
}

func TestDateTime(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Tue, 05 Mar 2024 09:07:02 +0000", ascii(t, component.NewDateTime(testDate)))

	dt, err := component.ParseDateTime("Tue, 05 Mar 2024 09:07:02 +0000")
	require.NoError(t, err)
	assert.True(t, testDate.Equal(dt.Time))

	dt, err = component.ParseDateTime("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, 2024, dt.Year())
	assert.Equal(t, time.March, dt.Month())
	assert.Equal(t, 5, dt.Day())

	_, err = component.ParseDateTime("not a date")
	assert.Error(t, err)

	_, err = encode(t, component.DateTime{}, chars.ASCII)
	assert.ErrorIs(t, err, component.ErrEmpty)
}

func TestMessageID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<abc.1@example.com>", ascii(t, component.NewMessageID("<abc.1@example.com>")))
	assert.Equal(t, "<abc@[192.0.2.1]>", ascii(t, component.NewMessageID("abc@[192.0.2.1]")))

	for _, bad := range []string{"no-at", "a b@example.com", "a@exa mple"} {
		_, err := encode(t, component.NewMessageID(bad), chars.ASCII)
		assert.ErrorIs(t, err, component.ErrInvalidSyntax, bad)
	}

	ml := component.MessageIDList{
		component.NewMessageID("a@example.com"),
		component.NewMessageID("b@example.com"),
	}
	assert.Equal(t, "<a@example.com> <b@example.com>", ascii(t, ml))

	_, err := encode(t, component.MessageIDList{}, chars.ASCII)
	assert.ErrorIs(t, err, component.ErrEmpty)
}

func TestMessageIDGenerator(t *testing.T) {
	t.Parallel()

	g := component.NewMessageIDGeneratorWithUnique("example.com", "u1")
	assert.Equal(t, "example.com", g.Domain())

	a, b := g.Generate(), g.Generate()
	idRx := regexp.MustCompile(`^u1\.\d+@example\.com$`)
	assert.Regexp(t, idRx, a.String())
	assert.Regexp(t, idRx, b.String())
	assert.NotEqual(t, a.String(), b.String())

	cids := g.GenerateContentIDs(2)
	require.Len(t, cids, 2)
	assert.Regexp(t, `^u1\.\d+\.0@example\.com$`, cids[0].String())
	assert.Regexp(t, `^u1\.\d+\.1@example\.com$`, cids[1].String())
	assert.Equal(t,
		strings.TrimSuffix(cids[0].String(), ".0@example.com"),
		strings.TrimSuffix(cids[1].String(), ".1@example.com"))

	r := component.NewMessageIDGenerator("example.com").Generate()
	assert.Regexp(t, `^[a-z0-9]{16}\.\d+@example\.com$`, r.String())
	assert.Equal(t, "<"+r.String()+">", ascii(t, r))
}

func TestPath(t *testing.T) {
	t.Parallel()

	p, err := component.NewPath("john@example.com")
	require.NoError(t, err)
	assert.Equal(t, "<john@example.com>", ascii(t, p))

	p, err = component.NewPath("")
	require.NoError(t, err)
	assert.Equal(t, "<>", ascii(t, p))
}

func TestMediaType(t *testing.T) {
	t.Parallel()

	mt := component.NewMediaType(param.New("text/plain", map[string]string{"charset": "utf-8"}))
	assert.Equal(t, "text/plain; charset=utf-8", ascii(t, mt))

	mt, err := component.ParseMediaType(`multipart/mixed; boundary="=_abc"`)
	require.NoError(t, err)
	assert.Equal(t, `multipart/mixed; boundary="=_abc"`, ascii(t, mt))

	_, err = component.ParseMediaType("text:plain")
	assert.Error(t, err)

	_, err = encode(t, component.NewMediaType(param.New("text/plain", map[string]string{"name": "Grüße"})), chars.ASCII)
	assert.ErrorIs(t, err, component.ErrNotASCII)

	_, err = encode(t, component.NewMediaType(param.New("text", nil)), chars.ASCII)
	assert.ErrorIs(t, err, component.ErrInvalidSyntax)
}

func TestDisposition(t *testing.T) {
	t.Parallel()

	size := int64(1024)
	d := component.NewDisposition(component.Attachment, file.Meta{FileName: "report.pdf", Size: &size})
	assert.Equal(t, "attachment; filename=report.pdf; size=1024", ascii(t, d))

	d = component.NewDisposition(component.Attachment, file.Meta{FileName: "my report.pdf"})
	assert.Equal(t, `attachment; filename="my report.pdf"`, ascii(t, d))

	d = component.NewDisposition(component.Attachment, file.Meta{FileName: "für.pdf"})
	assert.Equal(t, "attachment; filename*=utf-8''f%C3%BCr.pdf", ascii(t, d))

	d = component.NewDisposition(component.Inline, file.Meta{CreationDate: &testDate})
	assert.Equal(t, `inline; creation-date="Tue, 05 Mar 2024 09:07:02 +0000"`, ascii(t, d))

	_, err := encode(t, component.NewDisposition("", file.Meta{}), chars.ASCII)
	assert.ErrorIs(t, err, component.ErrInvalidSyntax)
}

func TestTransferEncoding(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "base64", ascii(t, component.NewTransferEncoding("base64")))

	_, err := encode(t, component.NewTransferEncoding("x y"), chars.ASCII)
	assert.ErrorIs(t, err, component.ErrInvalidSyntax)
}

func TestReceived(t *testing.T) {
	t.Parallel()

	r := component.Received{
		Tokens: []component.ReceivedToken{
			component.ReceivedWord("from"),
			component.ReceivedDomain("mail.example.com"),
			component.ReceivedWord("for"),
			component.ReceivedEmail(component.MustEmail("john@example.com")),
		},
		Date: component.NewDateTime(testDate),
	}
	assert.Equal(t,
		"from mail.example.com for <john@example.com>; Tue, 05 Mar 2024 09:07:02 +0000",
		ascii(t, r))

	_, err := encode(t, component.ReceivedToken{}, chars.ASCII)
	assert.ErrorIs(t, err, component.ErrEmpty)
}

func TestFunc(t *testing.T) {
	t.Parallel()

	f := component.Func(func(e *encoder.Encoder) error {
		e.WriteString("raw")
		return nil
	})
	assert.Equal(t, "raw", ascii(t, f))
}
