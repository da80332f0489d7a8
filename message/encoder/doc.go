// Package encoder provides the Encoder, the byte buffer every part of a mail is
// written into. Besides collecting bytes it tracks the length of the current
// line and the most recent place where folding white space may be inserted, so
// that header components can be written from left to right and folded at 78
// columns without backtracking on their own.
//
// Folding works by remembering one fold point. Before a new fold point is
// recorded, after an encoded-word is written, and when a header is finished,
// the encoder checks whether the current line has grown past the limit. If it
// has, a CRLF is inserted at the remembered fold point. If the fold point holds
// a space or tab, the CRLF goes in front of it so that it becomes the leading
// white space of the continuation line. Otherwise, "CRLF SP" is inserted.
//
// Lines longer than the limit are still possible when no fold point is
// available. The encoder never breaks a line anywhere else.
package encoder
