package scanner

import (
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/npillmayer/chartparse"
	"github.com/npillmayer/chartparse/earley"
	"github.com/npillmayer/chartparse/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatSeqReader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.scanner")
	defer teardown()
	//
	cats := Categories("ab", "0123456789", " ", "+-", "(")
	reader := NewCatSeqReader(strings.NewReader("ab12 ++(?"))
	for i, expected := range []struct {
		text string
		cat  CatCode
		span chartparse.Span
	}{
		{"ab", 1, chartparse.Span{0, 2}},
		{"12", 2, chartparse.Span{2, 4}},
		{" ", 3, chartparse.Span{4, 5}},
		{"++", 4, chartparse.Span{5, 7}},
		{"(", 5, chartparse.Span{7, 8}},
		{"?", IllegalCatCode, chartparse.Span{8, 9}},
	} {
		reader.ResetOutput()
		csq, err := reader.Next(cats)
		require.NoError(t, err, "sequence #%d", i)
		assert.Equal(t, expected.cat, csq.Cat, expected.text)
		assert.Equal(t, len(expected.text), csq.Length, expected.text)
		assert.Equal(t, expected.text, reader.OutputString())
		assert.Equal(t, expected.span, reader.Span(), expected.text)
	}
	_, err := reader.Next(cats)
	assert.Equal(t, io.EOF, err)
}

func TestCategoryTokenizer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.scanner")
	defer teardown()
	//
	input := "x1 + 42*(y)"
	tok := NewCategoryTokenizer(strings.NewReader(input), UnicodeCategories, CatSpace)
	var lexemes []string
	var cats []chartparse.TokType
	for token := tok.NextToken(); token.TokType() != EOF; token = tok.NextToken() {
		lexemes = append(lexemes, token.Lexeme())
		cats = append(cats, token.TokType())
	}
	expected := []string{"x", "1", "+", "42", "*", "(", "y", ")"}
	if strings.Join(lexemes, " ") != strings.Join(expected, " ") {
		t.Errorf("expected lexemes %v, have %v", expected, lexemes)
	}
	if len(cats) > 3 && cats[3] != chartparse.TokType(CatDigit) {
		t.Errorf("expected 42 to be of category digit, is %d", cats[3])
	}
	if tok.NextToken().TokType() != EOF {
		t.Errorf("expected tokenizer to stay at EOF")
	}
}

func assignGrammar(t *testing.T) *grammar.Grammar {
	id := grammar.Regexp(regexp.MustCompile(`^[a-z]+$`))
	num := grammar.Regexp(regexp.MustCompile(`^[0-9]+$`))
	b := grammar.NewBuilder("Assignments")
	b.LHS("Assign").T("id", id).T(":=", nil).N("Expr").End()
	b.LHS("Expr").N("Expr").T("*", nil).N("Factor").End()
	b.LHS("Expr").N("Factor").End()
	b.LHS("Factor").T("id", nil).End()
	b.LHS("Factor").T("num", num).End()
	b.LHS("Factor").T("(", nil).N("Expr").T(")", nil).End()
	g, err := b.Grammar("Assign")
	require.NoError(t, err)
	return g
}

func TestCategoryParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.scanner")
	defer teardown()
	//
	g := assignGrammar(t)
	cats := Categories("abcdefghijklmnopqrstuvwxyz", "0123456789", ":=", "*", "(", ")", " \t")
	tokenizer := func(input string) *CategoryTokenizer {
		return NewCategoryTokenizer(strings.NewReader(input), cats, 7)
	}
	chart, err := earley.NewParser(g).Parse(Source(tokenizer("x := 42*(y*z)")))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", ":=", "42", "*", "(", "y", "*", "z", ")"}, chart.Lexemes())
	trees, err := chart.Trees("Assign")
	require.NoError(t, err)
	require.Len(t, trees, 1)
	assert.Equal(t, "(Assign x := (Expr (Expr (Factor 42)) * "+
		"(Factor ( (Expr (Expr (Factor y)) * (Factor z)) ))))", trees[0].SExpr())
	//
	_, err = earley.NewParser(g).Parse(Source(tokenizer("x := 4 2")))
	var perr *earley.ParseError
	if assert.True(t, errors.As(err, &perr)) {
		assert.Equal(t, 3, perr.Position)
		assert.Equal(t, "2", perr.Lexeme)
		assert.Equal(t, []string{"*"}, perr.Expected)
	}
}
