package scanner

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/chartparse"
)

// --- Category codes --------------------------------------------------------

// CatCode is a category code for runes.
type CatCode int16

// IllegalCatCode is the category of runes unknown to a categorizer.
const IllegalCatCode CatCode = 0

// RuneCategorizer assigns category codes to runes. Runes of a loner category
// never form sequences, i.e. every one of them is a token of its own.
type RuneCategorizer interface {
	Cat(r rune) (cat CatCode, isLoner bool)
}

// Categories creates a categorizer from strings of runes. Runes of the
// string at index i receive category i+1. A string consisting of a single rune
// makes a loner category.
//
//    Categories("abc…z", "0123456789", "+-*/", "(", ")")
//
func Categories(c ...string) RuneCategorizer {
	return catStrings(c)
}

type catStrings []string

func (ct catStrings) Cat(r rune) (CatCode, bool) {
	for i, s := range ct {
		if strings.ContainsRune(s, r) {
			return CatCode(i + 1), utf8.RuneCountInString(s) == 1
		}
	}
	return IllegalCatCode, true
}

// Category codes of the Unicode categorizer.
const (
	CatLetter CatCode = iota + 1
	CatDigit
	CatSpace
	CatSymbol
)

// UnicodeCategories is a categorizer which forms words of letters and numbers of
// digits. White space is CatSpace, every other rune is a loner of category
// CatSymbol.
var UnicodeCategories RuneCategorizer = unicodeCats{}

type unicodeCats struct{}

func (unicodeCats) Cat(r rune) (CatCode, bool) {
	switch {
	case unicode.IsLetter(r) || r == '_':
		return CatLetter, false
	case unicode.IsDigit(r):
		return CatDigit, false
	case unicode.IsSpace(r):
		return CatSpace, false
	}
	return CatSymbol, true
}

// CatSeq is a run of runes of the same category.
type CatSeq struct {
	Cat    CatCode // catcode of all runes in this sequence
	Length int     // length of sequence in terms of runes
}

// --- Category sequence reader ----------------------------------------------

// CatSeqReader reads runs of runes of the same category.
type CatSeqReader struct {
	isEof      bool
	hasNext    bool
	next       rune
	start, end uint64 // as bytes index
	reader     io.RuneReader
	writer     bytes.Buffer
}

// NewCatSeqReader creates a category sequence reader for an input.
func NewCatSeqReader(r io.RuneReader) *CatSeqReader {
	csr := &CatSeqReader{
		reader: r,
	}
	return csr
}

// Next reads the next sequence of runes of equal category. The runes read are
// appended to the output, see OutputString. At end of input, Next returns
// io.EOF.
func (rs *CatSeqReader) Next(rc RuneCategorizer) (csq CatSeq, err error) {
	var r rune
	r, err = rs.lookahead()
	if err != nil && err != io.EOF {
		csq.Length = 0
		return csq, fmt.Errorf("scanner cannot read sequence (%w)", err)
	} else if err == io.EOF {
		return csq, io.EOF
	}
	var isLoner bool
	csq.Cat, isLoner = rc.Cat(r)
	if isLoner { // rune category is not allowed to form sequences
		rs.match(r)
		csq.Length = 1
		return
	}
	cc := csq.Cat
	for cc == csq.Cat {
		rs.match(r)
		csq.Length++
		r, err = rs.lookahead()
		if err != nil {
			if err == io.EOF {
				err = nil
			}
			return
		}
		var loner bool
		if cc, loner = rc.Cat(r); loner {
			return
		}
	}
	return
}

// OutputString returns the runes read since the last call to ResetOutput.
func (rs *CatSeqReader) OutputString() string {
	return rs.writer.String()
}

// ResetOutput clears the output.
func (rs *CatSeqReader) ResetOutput() {
	if rs == nil {
		return
	}
	rs.writer.Reset()
	rs.start = rs.end
}

// Span returns the byte positions of the current output.
func (rs *CatSeqReader) Span() chartparse.Span {
	return chartparse.Span{rs.start, rs.end}
}

func (rs *CatSeqReader) lookahead() (r rune, err error) {
	if rs == nil || rs.isEof {
		return utf8.RuneError, io.EOF
	}
	if rs.hasNext {
		return rs.next, nil
	}
	r, _, err = rs.reader.ReadRune()
	if err == io.EOF {
		tracer().Debugf("EOF for category input")
		rs.isEof = true
		return utf8.RuneError, io.EOF
	} else if err != nil {
		return 0, err
	}
	rs.next, rs.hasNext = r, true
	return
}

func (rs *CatSeqReader) match(r rune) {
	if rs == nil {
		return
	}
	rs.writer.WriteRune(r)
	rs.end += uint64(utf8.RuneLen(r))
	rs.hasNext = false
}

// --- Category tokenizer ----------------------------------------------------

// CategoryTokenizer is a tokenizer producing runs of runes of equal category
// as tokens. The token type of a token is its category code.
type CategoryTokenizer struct {
	reader *CatSeqReader
	cats   RuneCategorizer
	skip   map[CatCode]bool
	Error  func(error)
}

var _ Tokenizer = (*CategoryTokenizer)(nil)
var _ chartparse.LexemeSource = (*CategoryTokenizer)(nil)

// NewCategoryTokenizer creates a tokenizer for input, using categorizer rc.
// Sequences of categories in skip will not be reported as tokens.
//
//    t := NewCategoryTokenizer(strings.NewReader("x1 + 42"), UnicodeCategories, CatSpace)
//
func NewCategoryTokenizer(input io.RuneReader, rc RuneCategorizer, skip ...CatCode) *CategoryTokenizer {
	t := &CategoryTokenizer{
		reader: NewCatSeqReader(input),
		cats:   rc,
		skip:   make(map[CatCode]bool, len(skip)),
		Error:  logError,
	}
	for _, c := range skip {
		t.skip[c] = true
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *CategoryTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface. Read errors are reported to
// the error handler and end the input.
func (t *CategoryTokenizer) NextToken() chartparse.Token {
	for {
		t.reader.ResetOutput()
		csq, err := t.reader.Next(t.cats)
		if err != nil {
			if err != io.EOF {
				t.Error(err)
			}
			pos := t.reader.Span().To()
			return MakeToken(EOF, "", chartparse.Span{pos, pos})
		}
		if t.skip[csq.Cat] {
			continue
		}
		return MakeToken(chartparse.TokType(csq.Cat), t.reader.OutputString(), t.reader.Span())
	}
}

// NextLexeme is part of interface chartparse.LexemeSource.
func (t *CategoryTokenizer) NextLexeme() (string, bool) {
	token := t.NextToken()
	if token.TokType() == EOF {
		return "", false
	}
	return token.Lexeme(), true
}
