// Package encword implements RFC 2047 encoded-words. Encoding always produces
// the Q form with the utf-8 charset, escaping whatever is not literally
// permitted in the context the word is going to appear in (a phrase,
// unstructured text, or a comment). Decoding is best effort and is provided
// for checking output, it accepts both the Q and B forms and any charset known
// to golang.org/x/text.
package encword
