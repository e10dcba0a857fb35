/*
Package grammar implements context-free grammars for chart parsing.

Building a Grammar

Grammars are specified using a grammar builder object. Clients declare
symbols and add rules. Non-terminals are identified by name only. Terminals
carry a matcher, i.e. a predicate deciding whether a lexeme of the input is an
instance of the terminal. Grammars may contain epsilon-productions and may be
ambiguous or left-recursive.

Example:

    b := grammar.NewBuilder("Sums")
    b.Terminal("+", nil)                        // literal terminal "+"
    b.Terminal("number", grammar.Regexp(num))   // terminal defined by a predicate
    b.Rule("E", "E", "+", "N")                  // E  ->  E + N
    b.Rule("E", "N")                            // E  ->  N
    b.Rule("N", "number")                       // N  ->  number
    g, err := b.Grammar("E")

Rules may alternatively be given in a fluent style, declaring symbols on the fly:

    b.LHS("E").N("E").T("+", nil).N("N").End()  // E  ->  E + N
    b.LHS("R").Epsilon()                        // R  ->

Symbols referenced on the right-hand side of a rule have to be declared before
the grammar is finalized; otherwise Grammar(…) returns an *UndeclaredSymbolError.

This results in the following trivial grammar:

   g.Dump()

   0: [E] ::= [E + N]
   1: [E] ::= [N]
   2: [N] ::= [number]

A grammar is immutable once built. It may be shared between any number
of parsers and parse runs, including concurrent ones.

Rules carry a serial number, which is their position in declaration order.
Serials are stable for a grammar and are meant to be used by clients to
branch on the production which created a parse tree node.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chartparse.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("chartparse.grammar")
}
