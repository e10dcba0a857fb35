package scanner

import (
	"bufio"
	"context"
	"io"

	"github.com/npillmayer/chartparse"
)

// Source adapts a tokenizer to a lexeme source. The source is exhausted as soon
// as the tokenizer returns a token of type EOF. Tokenizers which are lexeme
// sources already are returned as they are.
func Source(t Tokenizer) chartparse.LexemeSource {
	if src, ok := t.(chartparse.LexemeSource); ok {
		return src
	}
	done := false
	return chartparse.LexemeFunc(func() (string, bool) {
		if done {
			return "", false
		}
		token := t.NextToken()
		if token.TokType() == EOF {
			done = true
			return "", false
		}
		tracer().Debugf("lexeme %q @%v", token.Lexeme(), token.Span())
		return token.Lexeme(), true
	})
}

// Fields creates a lexeme source splitting input at white space, as defined by
// unicode.IsSpace. Read errors other than io.EOF end the input and are reported
// to errorHandler, if it is non-nil.
func Fields(input io.Reader, errorHandler func(error)) chartparse.LexemeSource {
	sc := bufio.NewScanner(input)
	sc.Split(bufio.ScanWords)
	done := false
	return chartparse.LexemeFunc(func() (string, bool) {
		if done {
			return "", false
		}
		if sc.Scan() {
			return sc.Text(), true
		}
		done = true
		if err := sc.Err(); err != nil {
			if errorHandler == nil {
				errorHandler = logError
			}
			errorHandler(err)
		}
		return "", false
	})
}

// WithContext bounds a lexeme source by a context: once ctx is done, the
// returned source reports the end of input. Parsers have no cancellation of
// their own; this is the way to put a deadline on a parse.
//
// src is not read concurrently, so a blocking source will delay cancellation
// until it returns.
func WithContext(ctx context.Context, src chartparse.LexemeSource) chartparse.LexemeSource {
	return chartparse.LexemeFunc(func() (string, bool) {
		if err := ctx.Err(); err != nil {
			tracer().Infof("lexeme source cancelled: %v", err)
			return "", false
		}
		return src.NextLexeme()
	})
}
