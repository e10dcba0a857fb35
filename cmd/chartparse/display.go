package main

import (
	"fmt"
	"io"

	"github.com/npillmayer/chartparse/tree"
	"github.com/pterm/pterm"
)

// display writes a parse tree to w in one of the output formats.
// Format "tree" always renders to the terminal.
func display(w io.Writer, t *tree.Subtree, format string) error {
	switch format {
	case "tree":
		root := pterm.NewTreeFromLeveledList(leveledList(t))
		pterm.DefaultTree.WithRoot(root).Render()
		return nil
	case "sexpr":
		_, err := fmt.Fprintln(w, t.SExpr())
		return err
	case "indent":
		return tree.Print(w, t)
	case "debug":
		_, err := fmt.Fprintln(w, t.String())
		return err
	}
	return fmt.Errorf("unknown output format %q, use one of tree|sexpr|indent|debug", format)
}

// leveledList flattens a tree into pterm's input for tree rendering.
func leveledList(t *tree.Subtree) pterm.LeveledList {
	ll := &leveler{}
	tree.Walk(t, ll, tree.LtoR)
	return ll.items
}

// leveler is a tree listener collecting one list item per node.
type leveler struct {
	items pterm.LeveledList
}

func (ll *leveler) EnterRule(node *tree.Subtree, _ []*tree.RuleNode, ctxt tree.RuleCtxt) bool {
	ll.items = append(ll.items, pterm.LeveledListItem{
		Level: ctxt.Level,
		Text:  fmt.Sprintf("%s  %s", node.Production(), ctxt.Span),
	})
	return true
}

func (ll *leveler) ExitRule(*tree.Subtree, []*tree.RuleNode, tree.RuleCtxt) interface{} {
	return nil
}

func (ll *leveler) Terminal(leaf *tree.Subtree, ctxt tree.RuleCtxt) interface{} {
	ll.items = append(ll.items, pterm.LeveledListItem{
		Level: ctxt.Level,
		Text:  fmt.Sprintf("%s %q", leaf.Symbol(), leaf.Lexeme()),
	})
	return nil
}

func (ll *leveler) MakeAttrs(*tree.Subtree) interface{} {
	return nil
}
