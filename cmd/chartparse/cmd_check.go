package main

import (
	"fmt"
	"regexp"

	"github.com/npillmayer/chartparse/ebnf"
	"github.com/npillmayer/chartparse/grammar"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// grammarFlags are the flags shared by all commands which load a grammar.
type grammarFlags struct {
	start string
	plug  map[string]string
}

func (gf *grammarFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&gf.start, "start", "", "start symbol of the grammar (required)")
	cmd.Flags().StringToStringVar(&gf.plug, "plug", nil, "bind a name to a terminal matching a regular expression, name=regexp")
	cmd.MarkFlagRequired("start")
}

// load compiles the EBNF grammar in filename.
func (gf *grammarFlags) load(filename string) (*grammar.Grammar, error) {
	var opts []ebnf.Option
	for name, expr := range gf.plug {
		re, err := regexp.Compile("^(?:" + expr + ")$")
		if err != nil {
			return nil, fmt.Errorf("terminal %s: %w", name, err)
		}
		opts = append(opts, ebnf.PlugTerminal(name, grammar.Regexp(re)))
	}
	g, err := ebnf.Load(filename, gf.start, opts...)
	if err != nil {
		return nil, err
	}
	g.Dump() // only visible in debug mode
	return g, nil
}

func newCheckCmd() *cobra.Command {
	gf := &grammarFlags{}
	cmd := &cobra.Command{
		Use:          "check <grammar.ebnf>",
		Short:        "Compile an EBNF grammar and list its rules",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := gf.load(args[0])
			if err != nil {
				return err
			}
			pterm.Info.Printf("grammar %s has %d symbols and %d rules, start symbol is %s\n",
				g.Name(), g.SymbolCount(), g.RuleCount(), g.Start())
			ll := pterm.LeveledList{{Level: 0, Text: g.Name()}}
			for _, N := range g.NonTerminals() {
				ll = append(ll, pterm.LeveledListItem{Level: 1, Text: N.Name()})
				for _, r := range g.RulesFor(N) {
					ll = append(ll, pterm.LeveledListItem{
						Level: 2,
						Text:  fmt.Sprintf("%3d: %s", r.Serial(), r),
					})
				}
			}
			pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render()
			return nil
		},
	}
	gf.register(cmd)
	return cmd
}
