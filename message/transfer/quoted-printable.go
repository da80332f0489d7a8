package transfer

import (
	"io"
	"mime/quotedprintable"
)

// NewQuotedPrintableEncoder returns an io.WriteCloser that writes the
// quoted-printable form of text to w. Line breaks in the input, LF or CRLF,
// become hard CRLF line breaks and long lines get soft breaks at 76 columns.
func NewQuotedPrintableEncoder(w io.Writer) io.WriteCloser {
	qpw := quotedprintable.NewWriter(w)
	return &writer{qpw, qpw}
}

// NewBinaryQuotedPrintableEncoder is NewQuotedPrintableEncoder for data that
// is not text. Every CR and LF is escaped.
func NewBinaryQuotedPrintableEncoder(w io.Writer) io.WriteCloser {
	qpw := quotedprintable.NewWriter(w)
	qpw.Binary = true
	return &writer{qpw, qpw}
}

// NewQuotedPrintableDecoder returns an io.Reader that decodes the
// quoted-printable data read from r.
func NewQuotedPrintableDecoder(r io.Reader) io.Reader {
	return quotedprintable.NewReader(r)
}
