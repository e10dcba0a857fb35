package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/chartparse/grammar"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newReplCmd() *cobra.Command {
	gf := &grammarFlags{}
	pf := &parseFlags{}
	cmd := &cobra.Command{
		Use:          "repl <grammar.ebnf>",
		Short:        "Parse input interactively, line by line",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := gf.load(args[0])
			if err != nil {
				return err
			}
			repl, err := readline.New(g.Start().Name() + "> ")
			if err != nil {
				return err
			}
			defer repl.Close()
			intp := &Intp{g: g, flags: pf, repl: repl}
			pterm.Info.Println("Welcome to chartparse")
			tracer().Infof("Quit with <ctrl>D")
			intp.REPL()
			return nil
		},
	}
	gf.register(cmd)
	pf.register(cmd)
	return cmd
}

// Intp is our interpreter object
type Intp struct {
	g     *grammar.Grammar
	flags *parseFlags
	repl  *readline.Instance
	lines int
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		intp.lines++
		if err := intp.flags.run(intp.g, "line", strings.NewReader(line)); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
	tracer().Infof("parsed %d lines", intp.lines)
	println("Good bye!")
}
