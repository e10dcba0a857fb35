package chartparse

import "fmt"

// --- Lexeme sources --------------------------------------------------------

// LexemeSource is a pull-based producer of lexemes. A parser calls NextLexeme
// once for every input position it wants to advance to. The second return value
// is false as soon as the input is exhausted; sources must keep returning false
// from then on.
//
// Parsers never rewind a source, therefore a source may be lazy and
// potentially expensive, e.g. reading from a network connection.
type LexemeSource interface {
	NextLexeme() (string, bool)
}

// LexemeFunc adapts an ordinary function to the LexemeSource interface.
type LexemeFunc func() (string, bool)

// NextLexeme is part of interface LexemeSource.
func (f LexemeFunc) NextLexeme() (string, bool) {
	return f()
}

// Lexemes creates a source over a fixed sequence of lexemes.
//
//    src := chartparse.Lexemes("3", "+", "2")
//
func Lexemes(lexemes ...string) LexemeSource {
	pos := 0
	return LexemeFunc(func() (string, bool) {
		if pos >= len(lexemes) {
			return "", false
		}
		pos++
		return lexemes[pos-1], true
	})
}

// Drain reads a source until it is exhausted and returns all lexemes read.
func Drain(src LexemeSource) []string {
	var lexemes []string
	for {
		l, ok := src.NextLexeme()
		if !ok {
			return lexemes
		}
		lexemes = append(lexemes, l)
	}
}

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. We do not define any constants here, as
// it is up to applications to define them.
type TokType int

// Tokens represent input tokens. They are produced by a scanner and carry a
// lexeme, which is what parsers see of them. Token types are informational for
// scanners; parsers decide about terminals by matching lexemes only.
//
// An example would be a token for a floating point numer:
//
//    TokType = Float       // identifier for this kind of tokens (appliation specific)
//    Lexeme  = "3.1416"    // lexeme how it appeared in the input stream
//    Span    = 67…73       // occured from position 67 in the input stream
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. For every
// terminal and non-terminal, a parse tree will track which input positions
// this symbol covers. A span denotes a start position and the position just
// behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is true for (0…0).
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering both s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
