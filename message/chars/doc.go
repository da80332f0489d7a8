// Package chars holds the character classes of RFC 5322, RFC 2045, RFC 2047
// and RFC 6532 that the rest of the encoder uses to decide whether text can be
// written raw, needs quoting, or must be turned into an encoded-word.
//
// Every predicate that depends on the mail type takes a MailType. In
// Internationalized mode any non-ASCII rune is accepted wherever the
// corresponding ASCII class would reject it, which is how RFC 6532 extends the
// grammar of RFC 5322.
package chars
