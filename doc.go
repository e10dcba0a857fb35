/*
Package chartparse is a toolbox for general context-free parsing.

Chartparse recognizes sentences of arbitrary context-free grammars, including
ambiguous and left-recursive ones, and produces every parse tree of a sentence.
Terminals are not token categories, but predicates over lexemes, evaluated at
parse time. Package structure is as follows:

■ grammar: Package grammar holds symbols, rules and grammars, together with a
builder to assemble grammars programmatically.

■ earley: Package earley implements an Earley chart parser and the extraction of
parse trees from a finished chart.

■ tree: Package tree defines parse tree nodes and ways to walk them.

■ scanner: Package scanner provides lexeme sources for the parser.

■ ebnf: Package ebnf compiles grammars written in Go's EBNF dialect.

The base package contains the types for feeding input into a parser.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package chartparse
