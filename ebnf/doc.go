/*
Package ebnf compiles grammars written in EBNF into grammars for chart parsers.

The EBNF dialect is the one used by the Go language specification, as implemented
by package golang.org/x/exp/ebnf:

    Production  = name "=" [ Expression ] "." .
    Expression  = Alternative { "|" Alternative } .
    Alternative = Term { Term } .
    Term        = name | token [ "…" token ] | Group | Option | Repetition .
    Group       = "(" Expression ")" .
    Option      = "[" Expression "]" .
    Repetition  = "{" Expression "}" .

Every production becomes a non-terminal, and every top-level alternative of a
production becomes a rule, in order of appearance. Quoted tokens become
terminals matching the token literally, ranges "a" … "z" become terminals
matching a single character. A token terminal is named by the token's text,
except where a production or a plugged terminal has the same name; then the
terminal's name is the quoted text, e.g. `"expr"` for a token "expr" within a
grammar with a production expr. Names which are not defined by a production have to
be plugged in as terminals by the client:

    g, err := ebnf.Compile("sums", strings.NewReader(`
        Sum = Sum "+" number | number .
    `), "Sum", ebnf.PlugTerminal("number", grammar.Regexp(numberRegexp)))

Groups, options and repetitions are compiled to helper non-terminals. A
repetition { x } compiles to a left-recursive helper R with rules R ➞ ε and
R ➞ R x. Helper names are derived from the content of the sub-expression, so
identical sub-expressions share a helper, while different sub-expressions never
collide.

Compiled grammars do not carry any lexical productions. The EBNF is applied to
lexemes, as produced by a lexeme source, not to characters.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ebnf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chartparse.ebnf'.
func tracer() tracing.Trace {
	return tracing.Select("chartparse.ebnf")
}
