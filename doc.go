// Package mailenc is the root of a library that writes mail in the Internet
// Message Format of RFC 5322, with the MIME extensions of RFCs 2045 to 2047.
//
// The work is done by the packages below message:
//
//   - message builds the tree of a mail from a header and either a single
//     body or a list of parts, resolves bodies loaded from files concurrently
//     with Resolve, and serializes the tree with Encode.
//   - message/header holds header fields and their typed setters.
//   - message/header/component has the structured field bodies: addresses,
//     dates, message IDs, phrases, media types and the rest.
//   - message/header/param is the parameterized value of Content-Type and
//     Content-Disposition.
//   - message/encoder folds header lines and writes the bytes of a mail.
//   - message/encword produces RFC 2047 encoded-words.
//   - message/transfer applies the Content-Transfer-Encodings.
//   - message/walker and message/walk visit the parts of a mail.
//
// The mailenc command in tools/mailenc encodes mails described by YAML files.
package mailenc
