package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/npillmayer/chartparse"
	"github.com/npillmayer/chartparse/earley"
	"github.com/npillmayer/chartparse/grammar"
	"github.com/npillmayer/chartparse/scanner"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// parseFlags are the flags shared by parse and repl.
type parseFlags struct {
	lexer   string
	format  string
	max     int
	timeout time.Duration
}

func (pf *parseFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&pf.lexer, "lexer", "fields", "lexer to split input into lexemes [fields|go|category]")
	cmd.Flags().StringVar(&pf.format, "format", "tree", "output format of parse trees [tree|sexpr|indent|debug]")
	cmd.Flags().IntVar(&pf.max, "max-trees", 0, "maximum number of trees to display, 0 for all")
	cmd.Flags().DurationVar(&pf.timeout, "timeout", 0, "stop reading input after a timeout, 0 for none")
}

func newParseCmd() *cobra.Command {
	gf := &grammarFlags{}
	pf := &parseFlags{}
	cmd := &cobra.Command{
		Use:          "parse <grammar.ebnf> [input…]",
		Short:        "Parse input and display all parse trees",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := gf.load(args[0])
			if err != nil {
				return err
			}
			var input io.Reader = os.Stdin
			if len(args) > 1 {
				input = strings.NewReader(strings.Join(args[1:], " "))
			}
			return pf.run(g, "input", input)
		},
	}
	gf.register(cmd)
	pf.register(cmd)
	return cmd
}

// source creates a lexeme source for input, according to the --lexer flag.
func (pf *parseFlags) source(name string, input io.Reader) (chartparse.LexemeSource, error) {
	onError := func(err error) {
		pterm.Error.Println(err.Error())
	}
	switch pf.lexer {
	case "fields":
		return scanner.Fields(input, onError), nil
	case "go":
		gs := scanner.NewGoScanner(name, input)
		gs.SetErrorHandler(onError)
		return gs, nil
	case "category":
		t := scanner.NewCategoryTokenizer(bufio.NewReader(input), scanner.UnicodeCategories, scanner.CatSpace)
		t.SetErrorHandler(onError)
		return scanner.Source(t), nil
	}
	return nil, fmt.Errorf("unknown lexer %q, use one of fields|go|category", pf.lexer)
}

// run parses input with grammar g and displays the resulting trees.
func (pf *parseFlags) run(g *grammar.Grammar, name string, input io.Reader) error {
	src, err := pf.source(name, input)
	if err != nil {
		return err
	}
	if pf.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), pf.timeout)
		defer cancel()
		src = scanner.WithContext(ctx, src)
	}
	debug := tracer().GetTraceLevel() == tracing.LevelDebug
	chart, err := earley.NewParser(g, earley.TraceColumns(debug)).Parse(src)
	if err != nil {
		var perr *earley.ParseError
		if errors.As(err, &perr) && debug {
			chart.Dump()
		}
		return err
	}
	tracer().Infof("Successfully parsed %d lexemes", chart.Len())
	trees, err := chart.Trees(g.Start().Name(), earley.MaxTrees(pf.max))
	if err != nil {
		return err
	}
	if chart.Ambiguous() {
		pterm.Info.Printf("input is ambiguous, displaying %d trees\n", len(trees))
	}
	for i, t := range trees {
		if len(trees) > 1 {
			pterm.Println(fmt.Sprintf("tree #%d", i+1))
		}
		if err := display(os.Stdout, t, pf.format); err != nil {
			return err
		}
	}
	return nil
}
