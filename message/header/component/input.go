package component

import "strings"

// Source owns a piece of text that several components refer to, such as a
// header field body that has been parsed into an address list.
type Source struct {
	text string
}

// NewSource returns a Source holding text.
func NewSource(text string) *Source {
	return &Source{text}
}

// Text returns the whole text.
func (s *Source) Text() string {
	return s.text
}

// Span is a range of byte offsets [Start, End) into a Source.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes in the span.
func (sp Span) Len() int {
	return sp.End - sp.Start
}

// View returns an Input for the span. Offsets are clamped to the text.
func (s *Source) View(sp Span) Input {
	if sp.Start < 0 {
		sp.Start = 0
	}
	if sp.End > len(s.text) {
		sp.End = len(s.text)
	}
	if sp.End < sp.Start {
		sp.End = sp.Start
	}
	return Input{src: s, span: sp}
}

// Find returns a view of the first occurrence of sub at or after offset from,
// and the offset just past it. When sub is not found, the Input owns sub and
// from is returned unchanged.
func (s *Source) Find(sub string, from int) (Input, int) {
	if from < 0 || from > len(s.text) {
		return Owned(sub), from
	}
	ix := strings.Index(s.text[from:], sub)
	if ix < 0 {
		return Owned(sub), from
	}
	start := from + ix
	return s.View(Span{start, start + len(sub)}), start + len(sub)
}

// Input is the text of a component. The zero value is the empty owned string.
type Input struct {
	owned string
	src   *Source
	span  Span
}

// Owned returns an Input that owns s.
func Owned(s string) Input {
	return Input{owned: s}
}

// String returns the text.
func (in Input) String() string {
	if in.src != nil {
		return in.src.text[in.span.Start:in.span.End]
	}
	return in.owned
}

// IsView reports whether the Input refers into a Source.
func (in Input) IsView() bool {
	return in.src != nil
}

// Span returns the span of a view. It is the zero Span for owned text.
func (in Input) Span() Span {
	return in.span
}

// Len returns the length of the text in bytes.
func (in Input) Len() int {
	if in.src != nil {
		return in.span.Len()
	}
	return len(in.owned)
}
