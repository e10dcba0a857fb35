/*
Package lexmach generates lexeme sources for grammars, using the lexmachine
scanner generator.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

A lexer is derived from a grammar: every literal terminal (see
grammar.Symbol.Literal) is a token type of its own. Terminals with predicates,
e.g. grammar.Regexp, cannot be turned into a DFA. Clients add lexmachine patterns
for them, together with patterns for input to skip.

	lx, err := lexmach.NewLexer(g,
		lexmach.Skip(`( |\t|\n)+`),
		lexmach.Class("id", `[a-z]+`),
		lexmach.Class("num", `[0-9]+`),
	)

Literals are matched in preference to classes if both match the same input,
thus a literal "if" is not scanned as an id. NewLexer will return an error if
compiling the DFA failed.

A scanner is created for each input. It is a chartparse.LexemeSource and may be
handed to a parser directly.

	sc, err := lx.Scanner("x = 42")
	if err != nil {
		// do error handling
	}
	chart, err := earley.NewParser(g).Parse(sc)

Scanners deliver tokens as well, with token types named by Lexer.TokenName.
Input matching no pattern is reported to the scanner's error handler and skipped.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
