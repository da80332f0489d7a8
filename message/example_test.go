package message_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/zostay/go-mailenc/message"
	"github.com/zostay/go-mailenc/message/file"
	"github.com/zostay/go-mailenc/message/header/component"
	"github.com/zostay/go-mailenc/message/header/param"
)

func ExampleEncode() {
	m := message.NewText("Hello World!")
	m.Header.SetFrom(component.MustMailbox("Jürgen", "juergen@example.com"))
	m.Header.SetSubject("A message to nowhere")

	out, err := message.Encode(m)
	if err != nil {
		panic(err)
	}
	fmt.Print(strings.ReplaceAll(string(out), "\r\n", "\n"))

	// Output:
	// MIME-Version: 1.0
	// From: =?utf-8?Q?J=C3=BCrgen?= <juergen@example.com>
	// Subject: A message to nowhere
	// Content-Type: text/plain; charset=us-ascii
	// Content-Transfer-Encoding: 7bit
	//
	// Hello World!
}

func ExampleResolve() {
	load := message.SourceFunc(func(ctx context.Context) (*file.Buffer, error) {
		return file.New(param.New("text/csv", nil), []byte("a,b\r\n1,2\r\n")), nil
	})

	m := &message.Mail{Body: &message.MultipleBodies{Bodies: []*message.Mail{
		message.NewText("See the attached table."),
		message.NewSingle(message.NewPendingBody(load)),
	}}}
	m.Header.SetContentType(param.New("multipart/mixed", map[string]string{param.Boundary: "frontier"}))

	if err := message.Resolve(context.Background(), m); err != nil {
		panic(err)
	}

	out, err := message.Encode(m)
	if err != nil {
		panic(err)
	}
	fmt.Print(strings.ReplaceAll(string(out), "\r\n", "\n"))

	// Output:
	// MIME-Version: 1.0
	// Content-Type: multipart/mixed; boundary=frontier
	//
	// --frontier
	// Content-Type: text/plain; charset=us-ascii
	// Content-Transfer-Encoding: 7bit
	//
	// See the attached table.
	// --frontier
	// Content-Type: text/csv
	// Content-Transfer-Encoding: 7bit
	//
	// a,b
	// 1,2
	// --frontier--
}
