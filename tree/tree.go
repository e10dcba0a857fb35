package tree

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/npillmayer/chartparse"
)

// Subtree is a node of a parse tree, either a leaf or a rule node.
type Subtree struct {
	symbol     string // terminal name or LHS of rule
	lexeme     string // leafs only
	production string // rule nodes only
	rule       int    // -1 for leafs
	children   []*Subtree
	extent     chartparse.Span
}

// Leaf creates a leaf for a terminal, which matched lexeme at input position pos.
func Leaf(terminal string, lexeme string, pos uint64) *Subtree {
	return &Subtree{
		symbol: terminal,
		lexeme: lexeme,
		rule:   -1,
		extent: chartparse.Span{pos, pos + 1},
	}
}

// Node creates a rule node. lhs is the left-hand side symbol of the rule,
// production is the rule's descriptor and rule its serial number.
// extent is the span of input covered by the node; for epsilon-rules it is a
// null span.
func Node(lhs string, production string, rule int, extent chartparse.Span,
	children []*Subtree) *Subtree {
	//
	return &Subtree{
		symbol:     lhs,
		production: production,
		rule:       rule,
		children:   children,
		extent:     extent,
	}
}

// IsLeaf is true for terminal leafs.
func (t *Subtree) IsLeaf() bool {
	return t.rule < 0
}

// Symbol returns the terminal name of a leaf or the left-hand side of a node's
// rule.
func (t *Subtree) Symbol() string {
	return t.symbol
}

// Lexeme returns the lexeme a leaf matched. It is empty for nodes.
func (t *Subtree) Lexeme() string {
	return t.lexeme
}

// Production returns the descriptor of a node's rule, i.e. "lhs -> a b c".
// It is empty for leafs.
func (t *Subtree) Production() string {
	return t.production
}

// Rule returns the serial number of a node's rule, or -1 for leafs.
func (t *Subtree) Rule() int {
	return t.rule
}

// Children returns the children of a node. The returned slice must not be
// modified.
func (t *Subtree) Children() []*Subtree {
	return t.children
}

// Child returns the child at position i, or nil.
func (t *Subtree) Child(i int) *Subtree {
	if i < 0 || i >= len(t.children) {
		return nil
	}
	return t.children[i]
}

// Span returns the span of input lexemes covered by a subtree.
func (t *Subtree) Span() chartparse.Span {
	return t.extent
}

// Leaves returns the leafs of a subtree from left to right.
func (t *Subtree) Leaves() []*Subtree {
	var leaves []*Subtree
	t.collect(&leaves)
	return leaves
}

func (t *Subtree) collect(leaves *[]*Subtree) {
	if t.IsLeaf() {
		*leaves = append(*leaves, t)
		return
	}
	for _, ch := range t.children {
		ch.collect(leaves)
	}
}

// Lexemes returns the lexemes of the leafs of a subtree from left to right.
// For a complete parse tree this is the input the tree has been parsed from.
func (t *Subtree) Lexemes() []string {
	leaves := t.Leaves()
	lexemes := make([]string, len(leaves))
	for i, l := range leaves {
		lexemes[i] = l.lexeme
	}
	return lexemes
}

// Depth returns the height of a subtree. Leafs have depth 0, a node has depth 1
// plus the maximum depth of its children.
func (t *Subtree) Depth() int {
	if t.IsLeaf() {
		return 0
	}
	d := 0
	for _, ch := range t.children {
		if chd := ch.Depth(); chd > d {
			d = chd
		}
	}
	return d + 1
}

// Size returns the number of leafs and nodes of a subtree.
func (t *Subtree) Size() int {
	n := 1
	for _, ch := range t.children {
		n += ch.Size()
	}
	return n
}

// Equal checks if two subtrees are structurally identical, including rule
// serials, lexemes and spans.
func Equal(t1, t2 *Subtree) bool {
	if t1 == t2 {
		return true
	}
	if t1 == nil || t2 == nil {
		return false
	}
	if t1.symbol != t2.symbol || t1.lexeme != t2.lexeme || t1.rule != t2.rule ||
		t1.extent != t2.extent || len(t1.children) != len(t2.children) {
		return false
	}
	for i := range t1.children {
		if !Equal(t1.children[i], t2.children[i]) {
			return false
		}
	}
	return true
}

// String returns a debug representation of a subtree:
//
//     Node("Number -> 0", [Leaf("0", "0")])
//
func (t *Subtree) String() string {
	var b bytes.Buffer
	t.debug(&b)
	return b.String()
}

func (t *Subtree) debug(b *bytes.Buffer) {
	if t.IsLeaf() {
		fmt.Fprintf(b, "Leaf(%q, %q)", t.symbol, t.lexeme)
		return
	}
	fmt.Fprintf(b, "Node(%q, [", t.production)
	for i, ch := range t.children {
		if i > 0 {
			b.WriteString(", ")
		}
		ch.debug(b)
	}
	b.WriteString("])")
}

// SExpr returns a subtree as an S-expression, with rule nodes represented as
// lists headed by their left-hand side symbol and leafs by their lexemes:
//
//     (E (E (N 3)) + (N 2))
//
func (t *Subtree) SExpr() string {
	var b strings.Builder
	t.sexpr(&b)
	return b.String()
}

func (t *Subtree) sexpr(b *strings.Builder) {
	if t.IsLeaf() {
		b.WriteString(t.lexeme)
		return
	}
	b.WriteString("(")
	b.WriteString(t.symbol)
	for _, ch := range t.children {
		b.WriteString(" ")
		ch.sexpr(b)
	}
	b.WriteString(")")
}
