/*
Package scanner provides lexeme sources for chart parsers.

Parsers of package earley consume lexemes only, i.e. strings pulled from a
chartparse.LexemeSource. Scanners of this package are lexeme sources, and
additionally tokenizers: NextToken delivers the token behind a lexeme, with its
token type and its span within the input. Both views consume the same input, so
clients use either one or the other.

Lexeme sources provided here are

    - GoScanner:         lexemes following the lexical rules of Go
    - CategoryTokenizer: runs of runes of the same category
    - Fields:            input split at white space

An adapter for lexmachine lives in sub-package lexmach. Other tokenizers become
lexeme sources with Source(…), and WithContext(…) puts a deadline on any source.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/npillmayer/chartparse"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chartparse.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("chartparse.scanner")
}

// Token types of GoScanner. EOF is the token type signalling the end of input
// for all tokenizers.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Tokenizer is a scanner producing tokens. Tokenizers signal the end of input
// with a token of type EOF and stay there.
type Tokenizer interface {
	NextToken() chartparse.Token
	SetErrorHandler(func(error))
}

// Token is the token type of the scanners in this package.
type Token struct {
	Kind   chartparse.TokType
	Text   string
	Extent chartparse.Span
}

// MakeToken creates a token from its parts.
func MakeToken(kind chartparse.TokType, text string, extent chartparse.Span) Token {
	return Token{Kind: kind, Text: text, Extent: extent}
}

// TokType is part of interface chartparse.Token.
func (t Token) TokType() chartparse.TokType {
	return t.Kind
}

// Lexeme is part of interface chartparse.Token.
func (t Token) Lexeme() string {
	return t.Text
}

// Span is part of interface chartparse.Token.
func (t Token) Span() chartparse.Span {
	return t.Extent
}

func (t Token) String() string {
	return fmt.Sprintf("%q%v", t.Text, t.Extent)
}

// --- Go scanner ------------------------------------------------------------

// GoScanner splits input into lexemes following the lexical rules of Go,
// i.e. identifiers, numbers, strings, characters and operators of one rune each.
// White space and comments are skipped, unless option SkipComments(false)
// is set.
type GoScanner struct {
	sc      scanner.Scanner
	onError func(error)
	unify   bool // report raw strings and chars as strings
	eof     bool
	count   int // number of tokens delivered
}

var _ Tokenizer = (*GoScanner)(nil)
var _ chartparse.LexemeSource = (*GoScanner)(nil)

// NewGoScanner creates a scanner for input. sourceID is used in error messages.
func NewGoScanner(sourceID string, input io.Reader, opts ...Option) *GoScanner {
	gs := &GoScanner{onError: logError}
	gs.sc.Init(input)
	gs.sc.Filename = sourceID
	gs.sc.Error = func(s *scanner.Scanner, msg string) {
		gs.onError(&ScanError{Pos: s.Pos(), Msg: msg})
	}
	for _, opt := range opts {
		opt(gs)
	}
	return gs
}

// ScanError is reported to the error handler of a scanner for malformed input.
type ScanError struct {
	Pos scanner.Position
	Msg string
}

func (e *ScanError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// SetErrorHandler sets an error handler for malformed input. Scanning continues
// after errors. A nil handler logs errors with trace level Error.
func (gs *GoScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		h = logError
	}
	gs.onError = h
}

// NextToken is part of the Tokenizer interface.
func (gs *GoScanner) NextToken() chartparse.Token {
	if gs.eof {
		pos := uint64(gs.sc.Pos().Offset)
		return MakeToken(EOF, "", chartparse.Span{pos, pos})
	}
	kind := gs.sc.Scan()
	if kind == EOF {
		gs.eof = true
		tracer().Debugf("%s: end of input after %d tokens", gs.sc.Filename, gs.count)
	} else {
		gs.count++
	}
	if gs.unify && (kind == RawString || kind == Char) {
		kind = String
	}
	from, to := uint64(gs.sc.Position.Offset), uint64(gs.sc.Pos().Offset)
	return MakeToken(chartparse.TokType(kind), gs.sc.TokenText(), chartparse.Span{from, to})
}

// NextLexeme is part of interface chartparse.LexemeSource.
func (gs *GoScanner) NextLexeme() (string, bool) {
	token := gs.NextToken()
	if token.TokType() == EOF {
		return "", false
	}
	return token.Lexeme(), true
}

// Count returns the number of tokens delivered so far.
func (gs *GoScanner) Count() int {
	return gs.count
}

// --- Options ---------------------------------------------------------------

// Option configures a GoScanner.
type Option func(gs *GoScanner)

// SkipComments sets or clears mode-flag SkipComments. Comments are skipped by
// default; otherwise a comment is a lexeme of its own.
func SkipComments(b bool) Option {
	return func(gs *GoScanner) {
		if b {
			gs.sc.Mode |= scanner.ScanComments | scanner.SkipComments
		} else {
			gs.sc.Mode = (gs.sc.Mode | scanner.ScanComments) &^ scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// raw strings and single chars are reported as tokens of type String.
func UnifyStrings(b bool) Option {
	return func(gs *GoScanner) {
		gs.unify = b
	}
}
