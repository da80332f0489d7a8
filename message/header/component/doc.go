// Package component contains the structured values that make up header field
// bodies: domains, email addresses, phrases, unstructured text, dates, message
// ids, media types, and the rest. Every component knows how to write itself
// into an encoder.Encoder, choosing for each word whether it can be written
// raw, must be quoted, or has to become an RFC 2047 encoded-word, and marking
// the places where the line may be folded.
//
// Text held by a component is an Input, which either owns its string or is a
// Span into a shared Source. Parsing helpers, such as ParseAddressList, return
// components whose inputs are views into the parsed string.
package component
