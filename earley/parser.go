package earley

import (
	"github.com/npillmayer/chartparse"
	"github.com/npillmayer/chartparse/grammar"
	"golang.org/x/tools/container/intsets"
)

// Parser is an Earley-parser for a grammar. Parsers do not keep any state
// between parse runs and may be shared between goroutines.
type Parser struct {
	g            *grammar.Grammar
	traceColumns bool
}

// Option configures a parser.
type Option func(p *Parser)

// TraceColumns lets the parser dump every column of the chart after it has
// been completed, with trace level Debug.
func TraceColumns(b bool) Option {
	return func(p *Parser) {
		p.traceColumns = b
	}
}

// NewParser creates an Earley-parser for a grammar.
func NewParser(g *grammar.Grammar, opts ...Option) *Parser {
	p := &Parser{g: g}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Grammar returns the grammar of a parser.
func (p *Parser) Grammar() *grammar.Grammar {
	return p.g
}

// Parse reads lexemes from src and recognizes them as a sentence of the
// parser's grammar.
//
// Lexemes are pulled one at a time, and src is never read past the first lexeme
// which cannot be scanned. If the input is not a sentence of the grammar, Parse
// returns a *ParseError. The chart is returned in either case, to allow
// for inspection.
func (p *Parser) Parse(src chartparse.LexemeSource) (*Chart, error) {
	chart := newChart(p.g)
	col := chart.appendColumn("")
	start := p.g.Start()
	col.predicted.Insert(start.Serial())
	p.g.EachRuleFor(start, func(r *grammar.Rule) {
		col.add(r, 0, 0, nil)
	})
	tracer().Debugf("=== parse with grammar %q ===", p.g.Name())
	for {
		p.process(chart, col)
		if p.traceColumns {
			dumpColumn(col)
		}
		lexeme, ok := src.NextLexeme()
		if !ok {
			break
		}
		next := p.scan(chart, col, lexeme)
		if next == nil {
			chart.err = &ParseError{
				Position: col.index,
				Lexeme:   lexeme,
				Expected: col.expected(),
			}
			tracer().Infof("%v", chart.err)
			return chart, chart.err
		}
		col = next
	}
	if !chart.recognized() {
		chart.err = &ParseError{
			Position: col.index,
			AtEnd:    true,
			Expected: col.expected(),
		}
		tracer().Infof("%v", chart.err)
		return chart, chart.err
	}
	tracer().Infof("accepted input of length %d, chart has %d items", chart.Len(), chart.Size())
	return chart, nil
}

// process runs prediction and completion for a column until no more items are
// added. Items are processed in order of insertion, with the column's item
// list serving as the work-list.
//
// Completions of epsilon-rules happen within the column in which they have been
// predicted. Items waiting for a non-terminal N therefore check the column for
// already completed items of N as well.
func (p *Parser) process(chart *Chart, col *column) {
	for id := 0; id < len(col.items); id++ {
		it := col.items[id]
		if it.completed() {
			p.complete(chart, col, id)
			continue
		}
		sym := it.peek()
		if sym.IsTerminal() {
			col.scanning = append(col.scanning, id)
			continue
		}
		p.predict(col, id, sym)
	}
}

// predict adds items [N ➞ • γ, i] for every rule of N, if they have not been
// predicted before in column i. Item id is waiting for N.
func (p *Parser) predict(col *column, id int, N *grammar.Symbol) {
	n := N.Serial()
	col.waiting[n] = append(col.waiting[n], id)
	if col.predicted.Insert(n) {
		p.g.EachRuleFor(N, func(r *grammar.Rule) {
			col.add(r, 0, col.index, nil)
		})
	}
	it := col.items[id]
	for _, c := range col.completed[completion{symbol: n, origin: col.index}] {
		col.add(it.rule, it.dot+1, it.origin, &backpointer{predCol: col.index, pred: id, child: c})
	}
}

// complete advances every item of the origin column which is waiting for
// the LHS of the completed item id.
func (p *Parser) complete(chart *Chart, col *column, id int) {
	it := col.items[id]
	A := it.rule.LHS().Serial()
	key := completion{symbol: A, origin: it.origin}
	col.completed[key] = append(col.completed[key], id)
	origin := chart.columns[it.origin]
	for _, w := range origin.waiting[A] {
		wt := origin.items[w]
		col.add(wt.rule, wt.dot+1, wt.origin, &backpointer{predCol: it.origin, pred: w, child: id})
	}
}

// scan matches lexeme against the terminals items of col are waiting for.
// Returns the new column, or nil if no terminal matched.
func (p *Parser) scan(chart *Chart, col *column, lexeme string) *column {
	var tested, matched intsets.Sparse // matchers are called once per terminal
	var next *column
	for _, id := range col.scanning {
		it := col.items[id]
		t := it.peek()
		if tested.Insert(t.Serial()) && t.Matches(lexeme) {
			matched.Insert(t.Serial())
		}
		if !matched.Has(t.Serial()) {
			continue
		}
		if next == nil {
			next = chart.appendColumn(lexeme)
		}
		next.add(it.rule, it.dot+1, it.origin, &backpointer{predCol: col.index, pred: id, child: scanned})
	}
	if next != nil {
		tracer().Debugf("scanned %q into column %d", lexeme, next.index)
	}
	return next
}
