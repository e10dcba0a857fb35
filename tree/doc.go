/*
Package tree implements parse trees as produced by chart parsers.

A parse tree consists of subtrees, which are either leafs or nodes. A leaf
represents a terminal of a grammar, together with the lexeme it matched. A
node represents the application of a grammar rule. Its children correspond
1:1, in order, to the right-hand side symbols of the rule.

    Node("E -> E + N", [Node("E -> N", …), Leaf("+", "+"), Node("N -> 1", …)])

Nodes carry the serial number of the rule which created them. Clients should
branch on rule serials instead of the production descriptor string, which is
intended for humans. For ambiguous grammars, the serial number is also what
tells apart the trees for rules with identical descriptors.

Subtrees are read-only values. Parsers may share identical subtrees between
trees of a parse forest.

Walking a Tree

Clients wishing to evaluate a parse tree may walk it with a Listener:

    value := tree.Walk(root, listener, tree.LtoR)

EnterRule is called top-down, ExitRule and Terminal bottom-up, propagating
user-defined values upwards. This is the way e.g. an arithmetic expression
grammar will compute the value of an expression.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chartparse.tree'.
func tracer() tracing.Trace {
	return tracing.Select("chartparse.tree")
}
