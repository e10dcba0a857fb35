package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"github.com/npillmayer/chartparse"
)

// Direction lets clients decide wether children nodes should be traversed left-to-right
// (default) or right-to-left.
type Direction int

// Children nodes may be traversed left-to-right (default) or right-to-left.
const (
	LtoR Direction = 1
	RtoL Direction = -1
)

// Breakmode is a client hint wether to stop traversing on break-signals or not.
type Breakmode int

// Setting Continue will always traverse a complete (sub-)tree. Break will skip
// traversing sub-tree as soon as an Enter-function signals a break.
const (
	Continue Breakmode = iota
	Break
)

// RuleNode represents a node occuring during a parse tree walk.
type RuleNode struct {
	node  *Subtree
	Value interface{} // user-defined value of a node
}

// Subtree returns the parse tree node a RuleNode refers to.
func (rnode *RuleNode) Subtree() *Subtree {
	return rnode.node
}

// Symbol returns the terminal name or the left-hand side of the reduced rule.
func (rnode *RuleNode) Symbol() string {
	return rnode.node.symbol
}

// Span returns the span of input symbols this rule covers.
func (rnode *RuleNode) Span() chartparse.Span {
	return rnode.node.extent
}

// --- Listener --------------------------------------------------------------

// Listener is a type for walking a parse tree.
//
// Arguments are:
//
//     - *Subtree:    the tree node at the current position
//     - []*RuleNode: the children of the node, in order of the rule's right-hand side
//     - RuleCtxt:    contextual information for the node
//
// EnterRule returns a boolean value indicating if the traversal should continue to
// the children of this node. ExitRule and Terminal may return user-defined values
// to be propagated upwards of the tree. When ExitRule is called, the Value fields
// of the children nodes hold the values returned for the children.
type Listener interface {
	EnterRule(*Subtree, []*RuleNode, RuleCtxt) bool
	ExitRule(*Subtree, []*RuleNode, RuleCtxt) interface{}
	Terminal(*Subtree, RuleCtxt) interface{}
	MakeAttrs(*Subtree) interface{}
}

// RuleCtxt is a context structure for Listeners.
type RuleCtxt struct {
	Span      chartparse.Span // span of input symbols covered by this rule
	Level     int             // nesting level
	RuleIndex int             // -1 for terminals
	Attrs     interface{}     // client-defined attributes local to node
}

func makeCtxt(span chartparse.Span, level int, rule int, attrs interface{}) RuleCtxt {
	return RuleCtxt{
		Span:      span,
		Level:     level,
		RuleIndex: rule,
		Attrs:     attrs,
	}
}

// --- Walker ----------------------------------------------------------------

// Walk traverses a tree top-down, applying Listener-methods for all nodes
// encountered. It returns a user-defined value, calculated by the listener.
// Break mode is Continue.
func Walk(root *Subtree, listener Listener, dir Direction) interface{} {
	return WalkWithBreaks(root, listener, dir, Continue)
}

// WalkWithBreaks traverses a tree top-down, as does Walk. With breakmode Break,
// children of nodes for which EnterRule returns false will be skipped.
func WalkWithBreaks(root *Subtree, listener Listener, dir Direction, breakmode Breakmode) interface{} {
	if root == nil {
		return nil
	}
	if dir != RtoL {
		dir = LtoR
	}
	tracer().Debugf("Walk starting at node %v", root.symbol)
	return traverseTopDown(root, listener, dir, breakmode, 0)
}

func traverseTopDown(node *Subtree, listener Listener, dir Direction, breakmode Breakmode, level int) interface{} {
	if node.IsLeaf() {
		ctxt := makeCtxt(node.extent, level, -1, nil)
		return listener.Terminal(node, ctxt)
	}
	tracer().Debugf(">>> %s", node.production)
	rhsNodes := make([]*RuleNode, len(node.children))
	for i, ch := range node.children {
		rhsNodes[i] = &RuleNode{node: ch}
	}
	localAttributes := listener.MakeAttrs(node)
	ctxt := makeCtxt(node.extent, level, node.rule, localAttributes)
	doContinue := listener.EnterRule(node, rhsNodes, ctxt)
	if doContinue || breakmode == Continue {
		i, end := 0, len(rhsNodes)
		if dir == RtoL {
			i, end = len(rhsNodes)-1, -1
		}
		for ; i != end; i += int(dir) {
			chvalue := traverseTopDown(rhsNodes[i].node, listener, dir, breakmode, level+1)
			tracer().Debugf("child value[%d] = %v", i, chvalue)
			rhsNodes[i].Value = chvalue
		}
	}
	value := listener.ExitRule(node, rhsNodes, ctxt)
	tracer().Debugf("<<< %s", node.production)
	return value
}
