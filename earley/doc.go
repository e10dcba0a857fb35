/*
Package earley provides an Earley-Parser.

Earley's algorithm for parsing ambiguous grammars has been known since 1968.
Despite its benefits, until recently it has lead a reclusive life outside
the mainstream discussion about parsers. Many textbooks on parsing do not even
discuss it (the "Dragon book" only mentions it in the appendix).

A very accessible and practical discussion has been done by Loup Vaillant
in a superb blog series (http://loup-vaillant.fr/tutorials/earley-parsing/),
and it even boasts an implementation in Lua/OCaml. Another practical
discussion may be found in "Parsing Techniques" by Dick Grune and
Ceriel J.H. Jacobs, section 7.2.

The parser of this package works on grammars built with package grammar.
Terminals of these grammars are predicates over lexemes, so the parser does not
need any kind of token values: it pulls lexemes (strings) from a
chartparse.LexemeSource, one at a time.

    parser := earley.NewParser(g)
    chart, err := parser.Parse(chartparse.Lexemes("3", "+", "2"))
    if err != nil {
        var perr *earley.ParseError
        if errors.As(err, &perr) {
            fmt.Printf("syntax error at %d, expected one of %v", perr.Position, perr.Expected)
        }
    }
    trees, err := chart.Trees("E")

Parsing results in a chart, i.e. one column of Earley items per input position.
Items are never stored twice in a column. If an item is derived in more than one
way, the ways are merged into its set of back-pointers. This keeps the parser
polynomial (cubic in the worst case, quadratic for unambiguous grammars), even for
highly ambiguous grammars.

A chart is the input for tree extraction. Trees(…) enumerates every parse tree
for a top-level symbol. An ambiguous grammar yields more than one tree, and the
parser never silently decides between them. Clients who are not interested in
all of the trees may restrict extraction with option MaxTrees.

Parsers hold no state of their own between calls of Parse, and grammars are
immutable. A parser may therefore be used by concurrent goroutines.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package earley

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chartparse.earley'.
func tracer() tracing.Trace {
	return tracing.Select("chartparse.earley")
}
