package earley

import (
	"errors"
	"fmt"
	"strings"
)

// ParseError is returned by a parser if the input is not a sentence of the
// grammar. It is not a failure of the parser, but a diagnostic about the input.
type ParseError struct {
	Position int      // number of lexemes successfully consumed
	Lexeme   string   // the lexeme which could not be scanned
	AtEnd    bool     // input ended before the start symbol has been recognized
	Expected []string // names of terminals expected at Position, sorted
}

func (e *ParseError) Error() string {
	var expected string
	if len(e.Expected) == 0 {
		expected = "expected end of input"
	} else {
		quoted := make([]string, len(e.Expected))
		for i, name := range e.Expected {
			quoted[i] = fmt.Sprintf("%q", name)
		}
		expected = "expected one of [" + strings.Join(quoted, ", ") + "]"
	}
	if e.AtEnd {
		return fmt.Sprintf("parse error at position %d: unexpected end of input, %s",
			e.Position, expected)
	}
	return fmt.Sprintf("parse error at position %d: unexpected lexeme %q, %s",
		e.Position, e.Lexeme, expected)
}

// ErrUnknownSymbol is returned for tree extraction with a target which is not a
// non-terminal of the grammar.
var ErrUnknownSymbol = errors.New("unknown non-terminal")

// ErrNoParse is returned for tree extraction from a chart for which parsing
// has failed.
var ErrNoParse = errors.New("input has not been accepted by the parser")
