package earley

import (
	"fmt"

	"github.com/npillmayer/chartparse"
	"github.com/npillmayer/chartparse/grammar"
	"github.com/npillmayer/chartparse/tree"
	"github.com/npillmayer/schuko/gconf"
)

// TreeOption configures tree extraction.
type TreeOption func(x *extractor)

// MaxTrees limits the number of trees to extract. n = 0 means no limit,
// which is the default.
func MaxTrees(n int) TreeOption {
	return func(x *extractor) {
		if n >= 0 {
			x.max = n
		}
	}
}

/*
Trees walks backwards over the items of the chart and returns all parse trees for
a top-level non-terminal target, which is usually the start symbol of the grammar.
Returns ErrUnknownSymbol if target is not a non-terminal of the grammar, and
ErrNoParse if parsing has failed. Extracting trees for a non-terminal which did
not derive the complete input results in an empty slice.

A good overview of how to construct a parse forest from Earley-items may be found in
"Parsing Techniques" by  Dick Grune and Ceriel J.H. Jacobs
(https://dickgrune.com/Books/PTAPG_2nd_Edition/), Section 7.2.1.2.
A very approachable summary is given by a tutorial by Loup Vaillant
(http://loup-vaillant.fr/tutorials/earley-parsing/parser):

Imagine we have an item like this ('a', 'b', and 'c' are symbols, and 'i' is an integer):

    Foo -> a b c •  (i)

The fact that this item even exist means the following items also exist somewhere:

    Foo ->   a   b • c  (i)
    Foo ->   a • b   c  (i)
    Foo -> • a   b   c  (i)

To advance an item one step, you need two things: an un-advanced version of the
item, and a completed something: either a completed state, or a successful scan.

The parser records both of them as a back-pointer of the advanced item. Starting
at a completed item, the rightmost child is given by the back-pointers' completed
items (or scanned terminals), the remaining children by the back-pointers'
un-advanced items. Every back-pointer of an item is an alternative derivation,
which makes the trees for an item the union over its back-pointers of the cross
product of prefix alternatives and rightmost-child alternatives.

Trees for a completed item are memoized, so shared sub-derivations will be
expanded only once. A derivation never re-enters an item it is currently
expanding, which cuts cycles of cyclic grammars (e.g., A ➞ A).
*/
func (c *Chart) Trees(target string, opts ...TreeOption) ([]*tree.Subtree, error) {
	sym := c.g.Symbol(target)
	if sym == nil || sym.IsTerminal() {
		return nil, fmt.Errorf("%w: %q is not a non-terminal of grammar %q",
			ErrUnknownSymbol, target, c.g.Name())
	}
	if c.err != nil {
		return nil, ErrNoParse
	}
	x := &extractor{
		chart:    c,
		nodes:    make(map[itemRef][]*tree.Subtree),
		prefixes: make(map[itemRef][][]*tree.Subtree),
	}
	for _, opt := range opts {
		opt(x)
	}
	tracer().Debugf("=== Trees for %s ===============================", target)
	last := c.last()
	var trees []*tree.Subtree
	for _, id := range last.completed[completion{symbol: sym.Serial(), origin: 0}] {
		for _, t := range x.trees(last.index, id) {
			if x.full(len(trees)) {
				return trees, nil
			}
			trees = append(trees, t)
		}
	}
	tracer().Infof("%d tree(s) for %s", len(trees), target)
	return trees, nil
}

// extractor builds parse trees from a chart.
type extractor struct {
	chart    *Chart
	max      int
	nodes    map[itemRef][]*tree.Subtree   // trees for completed items
	prefixes map[itemRef][][]*tree.Subtree // children sequences left of the dot
	active   itemset                       // completed items currently being expanded
	cuts     int                           // number of cycles cut so far
}

func (x *extractor) full(n int) bool {
	return x.max > 0 && n >= x.max
}

// trees returns the alternative trees for a completed item.
func (x *extractor) trees(col, id int) []*tree.Subtree {
	ref := itemRef{col: col, id: id}
	if ts, ok := x.nodes[ref]; ok {
		return ts
	}
	it := x.chart.columns[col].items[id]
	if x.active.contains(ref) {
		tracer().Debugf("cycle at item %v in column %d", it, col)
		x.cuts++
		return nil
	}
	x.active = x.active.add(ref)
	cuts := x.cuts
	lhs := it.rule.LHS().Name()
	span := chartparse.Span{uint64(it.origin), uint64(col)}
	var ts []*tree.Subtree
	for _, children := range x.expand(col, id) {
		ts = append(ts, tree.Node(lhs, it.rule.String(), it.rule.Serial(), span, children))
	}
	x.active.delete(ref)
	// Trees depending on a cut cycle are valid only in context and are not
	// memoized. Re-expansion is bounded: an item is never entered twice while
	// it is active.
	if x.cuts == cuts {
		x.nodes[ref] = ts
	}
	return ts
}

// expand returns the alternative sequences of children for the part of an item's
// rule left of the dot.
func (x *extractor) expand(col, id int) [][]*tree.Subtree {
	it := x.chart.columns[col].items[id]
	if it.dot == 0 {
		return [][]*tree.Subtree{nil}
	}
	ref := itemRef{col: col, id: id}
	if seqs, ok := x.prefixes[ref]; ok {
		return seqs
	}
	if len(it.bps) == 0 {
		stuck(fmt.Sprintf("item %v in column %d has no derivation", it, col))
		return nil
	}
	cuts := x.cuts
	var seqs [][]*tree.Subtree
	for _, bp := range it.bps {
		if !x.consistent(it, col, bp) {
			continue
		}
		var rightmost []*tree.Subtree
		if bp.child == scanned {
			rightmost = []*tree.Subtree{x.leaf(it.rule.At(it.dot-1), col)}
		} else {
			rightmost = x.trees(col, bp.child)
		}
		if len(rightmost) == 0 {
			continue
		}
		for _, prefix := range x.expand(bp.predCol, bp.pred) {
			for _, child := range rightmost {
				if x.full(len(seqs)) {
					break
				}
				seq := make([]*tree.Subtree, len(prefix)+1)
				copy(seq, prefix)
				seq[len(prefix)] = child
				seqs = append(seqs, seq)
			}
		}
	}
	if x.cuts == cuts { // see trees
		x.prefixes[ref] = seqs
	}
	return seqs
}

// leaf creates a leaf for a terminal, which has been scanned to reach column col.
func (x *extractor) leaf(t *grammar.Symbol, col int) *tree.Subtree {
	return tree.Leaf(t.Name(), x.chart.columns[col].lexeme, uint64(col-1))
}

// consistent checks a back-pointer of item it in column col.
func (x *extractor) consistent(it *item, col int, bp backpointer) bool {
	pred := x.chart.columns[bp.predCol].items[bp.pred]
	if pred.rule != it.rule || pred.dot != it.dot-1 || pred.origin != it.origin {
		return !stuck(fmt.Sprintf("predecessor %v does not match item %v", pred, it))
	}
	if bp.child == scanned {
		if bp.predCol != col-1 {
			return !stuck(fmt.Sprintf("terminal for item %v not scanned from previous column", it))
		}
		return true
	}
	child := x.chart.columns[col].items[bp.child]
	if !child.completed() || child.rule.LHS() != it.rule.At(it.dot-1) || child.origin != bp.predCol {
		return !stuck(fmt.Sprintf("completed item %v does not match item %v", child, it))
	}
	return true
}

// stuck reports an inconsistency of a chart. If configuration flag
// panic-on-parser-stuck is set, it will panic.
func stuck(msg string) bool {
	tracer().Errorf(msg)
	if gconf.GetBool("panic-on-parser-stuck") {
		panic(`Earley-parser is stuck.

Configuration flag panic-on-parser-stuck is set to true. It is aimed at helping
to debug a parser and do a post-mortem of why it got stuck. However, if this is
a production environment and you did not expect this to panic, please unset
panic-on-parser-stuck to its default (false).

` + msg)
	}
	return true
}
