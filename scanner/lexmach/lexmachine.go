package lexmach

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/npillmayer/chartparse"
	"github.com/npillmayer/chartparse/grammar"
	"github.com/npillmayer/chartparse/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'chartparse.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("chartparse.scanner")
}

// Pattern describes lexemes by a lexmachine regular expression. Lexemes
// matching a pattern are tokens of type Name, or are dropped if the
// pattern is a skip pattern.
type Pattern struct {
	Name   string
	Regexp string
	Skip   bool
}

// Class is a pattern for a class of lexemes, e.g. identifiers.
func Class(name string, regexp string) Pattern {
	return Pattern{Name: name, Regexp: regexp}
}

// Skip is a pattern for input between lexemes, e.g. white space or comments.
func Skip(regexp string) Pattern {
	return Pattern{Name: "skip", Regexp: regexp, Skip: true}
}

// Lexer is a DFA for the literal terminals of a grammar plus lexeme classes.
// Literals take precedence over classes for matches of equal length, thus
// keywords are not scanned as identifiers.
type Lexer struct {
	lexer *lexmachine.Lexer
	names []string // token names, index is token type
}

// NewLexer creates a lexer for grammar g. Every literal terminal of g (see
// grammar.Symbol.Literal) becomes a token type of its own. Terminals with
// other matchers need a class pattern which produces their lexemes.
//
// NewLexer will return an error if compiling the DFA failed.
func NewLexer(g *grammar.Grammar, patterns ...Pattern) (*Lexer, error) {
	lx := &Lexer{
		lexer: lexmachine.NewLexer(),
		names: []string{"<none>"},
	}
	literals := make(map[string]bool)
	for _, T := range g.Terminals() {
		text, ok := T.Literal()
		if !ok || text == "" || literals[text] {
			continue
		}
		literals[text] = true
		lx.lexer.Add([]byte(quote(text)), lx.emit(text))
	}
	for _, p := range patterns {
		if p.Skip {
			lx.lexer.Add([]byte(p.Regexp), skip)
			continue
		}
		lx.lexer.Add([]byte(p.Regexp), lx.emit(p.Name))
	}
	if err := lx.lexer.Compile(); err != nil {
		tracer().Errorf("error compiling DFA for %s: %v", g.Name(), err)
		return nil, err
	}
	tracer().Debugf("lexer for %s has token types %v", g.Name(), lx.names[1:])
	return lx, nil
}

// emit registers a token type and returns an action producing tokens of it.
func (lx *Lexer) emit(name string) lexmachine.Action {
	typ := len(lx.names)
	lx.names = append(lx.names, name)
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(typ, string(m.Bytes), m), nil
	}
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// quote escapes a literal for lexmachine. Letters and digits stand for
// themselves, every other rune is escaped.
func quote(text string) string {
	var b strings.Builder
	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r < unicode.MaxASCII {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// TokenName returns the name of a token type: the text of a literal or the
// name of a class.
func (lx *Lexer) TokenName(typ chartparse.TokType) string {
	if typ == scanner.EOF {
		return "EOF"
	}
	if typ <= 0 || int(typ) >= len(lx.names) {
		return fmt.Sprintf("<token type %d>", typ)
	}
	return lx.names[typ]
}

// Scanner creates a scanner for an input.
func (lx *Lexer) Scanner(input string) (*Scanner, error) {
	s, err := lx.lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &Scanner{lexer: lx, sc: s, onError: logError}, nil
}

// --- Scanner ---------------------------------------------------------------

// Scanner delivers the tokens of one input. It is a scanner.Tokenizer and a
// chartparse.LexemeSource.
type Scanner struct {
	lexer   *Lexer
	sc      *lexmachine.Scanner
	onError func(error)
	eof     bool
}

var _ scanner.Tokenizer = (*Scanner)(nil)
var _ chartparse.LexemeSource = (*Scanner)(nil)

// SetErrorHandler sets an error handler for input no pattern matches.
// Such input is skipped. A nil handler logs errors with trace level Error.
func (s *Scanner) SetErrorHandler(h func(error)) {
	if h == nil {
		h = logError
	}
	s.onError = h
}

func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NextToken is part of the scanner.Tokenizer interface.
func (s *Scanner) NextToken() chartparse.Token {
	end := chartparse.Span{uint64(s.sc.TC), uint64(s.sc.TC)}
	if s.eof {
		return scanner.MakeToken(scanner.EOF, "", end)
	}
	tok, err, eof := s.sc.Next()
	for err != nil {
		s.onError(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			s.sc.TC = ui.FailTC
		} else {
			s.sc.TC++
		}
		tok, err, eof = s.sc.Next()
	}
	if eof {
		s.eof = true
		return scanner.MakeToken(scanner.EOF, "", end)
	}
	token := tok.(*lexmachine.Token)
	lexeme := string(token.Lexeme)
	tracer().Debugf("%s %q @%d", s.lexer.TokenName(chartparse.TokType(token.Type)), lexeme, token.TC)
	return scanner.MakeToken(
		chartparse.TokType(token.Type),
		lexeme,
		chartparse.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
	)
}

// NextLexeme is part of interface chartparse.LexemeSource.
func (s *Scanner) NextLexeme() (string, bool) {
	token := s.NextToken()
	if token.TokType() == scanner.EOF {
		return "", false
	}
	return token.Lexeme(), true
}
