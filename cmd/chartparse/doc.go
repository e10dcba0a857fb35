/*
Command chartparse is a small workbench for grammars written in EBNF.
It compiles a grammar, parses input with the Earley parser and displays
every parse tree.

Usage:

    chartparse check <grammar.ebnf> --start S
    chartparse parse <grammar.ebnf> --start S [--lexer fields|go|category] [--format tree|sexpr|debug] input…
    chartparse repl  <grammar.ebnf> --start S

Names of a grammar which are not defined by a production may be bound to
regular expressions with --plug name=regexp. Input for parse is taken from the
command line or, if none is given, from stdin. repl reads input line by line
and quits on <ctrl>D.

Tracing is controlled with --trace [Debug|Info|Error].

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chartparse.cli'
func tracer() tracing.Trace {
	return tracing.Select("chartparse.cli")
}
