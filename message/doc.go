// Package message is the heart of this library. It holds the Mail tree, a
// header and either a single body or a list of sub-mails, and turns it into
// the bytes of an RFC 5322 message with RFC 2045 and RFC 2046 MIME framing.
//
// Encoding happens in two phases. Resolve loads every pending body through its
// Source, concurrently, and applies a content transfer encoding to it. Encode
// then writes the whole tree synchronously:
//
//	m := message.MultipartMixed(
//	  message.NewText("Hello World!"),
//	  message.AttachmentFile("report.pdf", nil, transfer.None),
//	)
//	m.Header.SetSubject("The report")
//
//	if err := message.Resolve(ctx, m); err != nil {
//	  panic(err)
//	}
//
//	out, err := message.Encode(m)
//	if err != nil {
//	  panic(err)
//	}
//
// Bodies built from an in-memory file.Buffer need no Resolve call. Encode
// transfer encodes them as it goes without changing the tree.
package message
