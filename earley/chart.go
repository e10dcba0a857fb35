package earley

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/chartparse/grammar"
	"golang.org/x/tools/container/intsets"
)

// column is an Earley set, i.e. the set of items valid after consuming
// a number of lexemes. Items are referenced by their index.
type column struct {
	index     int
	lexeme    string // lexeme which has been scanned to reach this column
	items     []*item
	byKey     map[itemKey]int
	links     map[link]struct{}
	predicted intsets.Sparse      // serials of non-terminals predicted in this column
	waiting   map[int][]int       // non-terminal serial → items with the non-terminal after the dot
	completed map[completion][]int // completed items by (LHS serial, origin)
	scanning  []int               // items with a terminal after the dot
}

// completion indexes completed items by LHS and origin.
type completion struct {
	symbol int
	origin int
}

// link is a back-pointer of a specific item.
type link struct {
	item int
	bp   backpointer
}

func newColumn(index int, lexeme string) *column {
	return &column{
		index:     index,
		lexeme:    lexeme,
		byKey:     make(map[itemKey]int),
		links:     make(map[link]struct{}),
		waiting:   make(map[int][]int),
		completed: make(map[completion][]int),
	}
}

// add inserts item [rule, dot, origin] into a column, if it is not already
// present, and merges bp into its back-pointers. Returns the index of the item.
func (col *column) add(rule *grammar.Rule, dot int, origin int, bp *backpointer) int {
	k := itemKey{rule: rule.Serial(), dot: dot, origin: origin}
	id, found := col.byKey[k]
	if !found {
		id = len(col.items)
		col.items = append(col.items, &item{rule: rule, dot: dot, origin: origin})
		col.byKey[k] = id
	}
	if bp != nil {
		l := link{item: id, bp: *bp}
		if _, dup := col.links[l]; !dup {
			col.links[l] = struct{}{}
			it := col.items[id]
			it.bps = append(it.bps, *bp)
		}
	}
	return id
}

// expected returns the sorted names of the terminals items of this column are
// waiting for.
func (col *column) expected() []string {
	set := treeset.NewWithStringComparator()
	for _, id := range col.scanning {
		set.Add(col.items[id].peek().Name())
	}
	names := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		names = append(names, v.(string))
	}
	return names
}

// --- Chart -----------------------------------------------------------------

// Chart is the result of a parse run. It holds one column of Earley items
// for every input position 0…n, where n is the number of lexemes consumed.
//
// A chart is the input for tree extraction, see Trees. It is created by a
// parser and not modified afterwards.
type Chart struct {
	g       *grammar.Grammar
	columns []*column
	err     error // parse error, if any
}

func newChart(g *grammar.Grammar) *Chart {
	return &Chart{g: g}
}

func (c *Chart) appendColumn(lexeme string) *column {
	col := newColumn(len(c.columns), lexeme)
	c.columns = append(c.columns, col)
	return col
}

func (c *Chart) last() *column {
	return c.columns[len(c.columns)-1]
}

// Grammar returns the grammar a chart has been built for.
func (c *Chart) Grammar() *grammar.Grammar {
	return c.g
}

// Len returns the number of lexemes consumed, i.e. the index of the last column.
func (c *Chart) Len() int {
	return len(c.columns) - 1
}

// Lexemes returns the lexemes consumed during parsing, in input order.
func (c *Chart) Lexemes() []string {
	lexemes := make([]string, 0, len(c.columns)-1)
	for _, col := range c.columns[1:] {
		lexemes = append(lexemes, col.lexeme)
	}
	return lexemes
}

// Err returns the error which stopped parsing, or nil.
func (c *Chart) Err() error {
	return c.err
}

// Accepted is true if the input has been recognized as a sentence of
// the grammar.
func (c *Chart) Accepted() bool {
	return c.err == nil && c.recognized()
}

// recognized checks if the last column contains a completed item for the start
// symbol, spanning the whole input.
func (c *Chart) recognized() bool {
	start := completion{symbol: c.g.Start().Serial(), origin: 0}
	return len(c.last().completed[start]) > 0
}

// Size returns the total number of items in the chart.
func (c *Chart) Size() int {
	n := 0
	for _, col := range c.columns {
		n += len(col.items)
	}
	return n
}

// Ambiguous is true if an accepted input has more than one parse tree for the
// start symbol of the grammar. It does not enumerate the trees, but looks for
// items with more than one derivation.
func (c *Chart) Ambiguous() bool {
	if !c.Accepted() {
		return false
	}
	last := c.last()
	roots := last.completed[completion{symbol: c.g.Start().Serial(), origin: 0}]
	if len(roots) > 1 {
		return true
	}
	visited := make([]intsets.Sparse, len(c.columns))
	var ambiguous func(col, id int) bool
	ambiguous = func(col, id int) bool {
		if !visited[col].Insert(id) {
			return false
		}
		it := c.columns[col].items[id]
		if len(it.bps) > 1 {
			return true
		}
		for _, bp := range it.bps {
			if ambiguous(bp.predCol, bp.pred) {
				return true
			}
			if bp.child != scanned && ambiguous(col, bp.child) {
				return true
			}
		}
		return false
	}
	return ambiguous(last.index, roots[0])
}
