package grammar

import (
	"bytes"
	"fmt"
	"strings"
)

// Rule is a production of a grammar. The right-hand side may be empty, which
// makes the rule an epsilon-rule.
type Rule struct {
	serial int
	lhs    *Symbol
	rhs    []*Symbol
}

// Serial returns the ordinal number of a rule within its grammar. Rules are
// numbered in declaration order, starting at 0.
func (r *Rule) Serial() int {
	return r.serial
}

// LHS returns the left-hand side symbol of a rule.
func (r *Rule) LHS() *Symbol {
	return r.lhs
}

// RHS returns a copy of the right-hand side symbols of a rule.
func (r *Rule) RHS() []*Symbol {
	return append([]*Symbol(nil), r.rhs...)
}

// Len returns the number of symbols of the right-hand side.
func (r *Rule) Len() int {
	return len(r.rhs)
}

// At returns the right-hand side symbol at position i, or nil if i is
// out of range.
func (r *Rule) At(i int) *Symbol {
	if i < 0 || i >= len(r.rhs) {
		return nil
	}
	return r.rhs[i]
}

// IsEpsilon is true for rules with an empty right-hand side.
func (r *Rule) IsEpsilon() bool {
	return len(r.rhs) == 0
}

// String returns the production descriptor of a rule, i.e.
// "lhs -> a b c". Epsilon-rules are rendered as "lhs ->".
func (r *Rule) String() string {
	if len(r.rhs) == 0 {
		return r.lhs.name + " ->"
	}
	names := make([]string, len(r.rhs))
	for i, sym := range r.rhs {
		names[i] = sym.name
	}
	return r.lhs.name + " -> " + strings.Join(names, " ")
}

// --- Grammar ---------------------------------------------------------------

// Grammar is an immutable context-free grammar. Create one with a Builder.
type Grammar struct {
	name     string
	start    *Symbol
	symbols  []*Symbol // indexed by serial
	byName   map[string]*Symbol
	rules    []*Rule   // indexed by serial
	rulesFor [][]*Rule // indexed by symbol serial, in declaration order
}

// Name returns the name of a grammar.
func (g *Grammar) Name() string {
	return g.name
}

// Start returns the start symbol of a grammar.
func (g *Grammar) Start() *Symbol {
	return g.start
}

// Symbol returns the symbol for a name, or nil if no symbol has been declared
// under this name.
func (g *Grammar) Symbol(name string) *Symbol {
	return g.byName[name]
}

// SymbolCount returns the number of symbols, terminals and non-terminals.
func (g *Grammar) SymbolCount() int {
	return len(g.symbols)
}

// Rule returns the rule with serial number n, or nil.
func (g *Grammar) Rule(n int) *Rule {
	if n < 0 || n >= len(g.rules) {
		return nil
	}
	return g.rules[n]
}

// RuleCount returns the number of rules of a grammar.
func (g *Grammar) RuleCount() int {
	return len(g.rules)
}

// RulesFor returns the rules with left-hand side sym, in declaration order.
// The result is empty for terminals and for symbols of other grammars.
func (g *Grammar) RulesFor(sym *Symbol) []*Rule {
	if !g.owns(sym) {
		return nil
	}
	return append([]*Rule(nil), g.rulesFor[sym.serial]...)
}

// EachRuleFor calls f for every rule with left-hand side sym, in declaration
// order. It is the allocation-free variant of RulesFor.
func (g *Grammar) EachRuleFor(sym *Symbol, f func(*Rule)) {
	if !g.owns(sym) {
		return
	}
	for _, r := range g.rulesFor[sym.serial] {
		f(r)
	}
}

// EachSymbol calls f for every symbol, in declaration order.
func (g *Grammar) EachSymbol(f func(*Symbol)) {
	for _, sym := range g.symbols {
		f(sym)
	}
}

// Terminals returns all terminal symbols in declaration order.
func (g *Grammar) Terminals() []*Symbol {
	var terms []*Symbol
	for _, sym := range g.symbols {
		if sym.IsTerminal() {
			terms = append(terms, sym)
		}
	}
	return terms
}

// NonTerminals returns all non-terminal symbols in declaration order.
func (g *Grammar) NonTerminals() []*Symbol {
	var nonterms []*Symbol
	for _, sym := range g.symbols {
		if !sym.IsTerminal() {
			nonterms = append(nonterms, sym)
		}
	}
	return nonterms
}

func (g *Grammar) owns(sym *Symbol) bool {
	return sym != nil && sym.serial < len(g.symbols) && g.symbols[sym.serial] == sym
}

// Dump is a debugging helper, printing the rules of a grammar with trace level Debug.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.name)
	tracer().Debugf("start symbol is %s", g.start)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.serial, ruleString(r))
	}
	tracer().Debugf("-------------------------------------------------------")
}

func (g *Grammar) String() string {
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("grammar %q, start %s\n", g.name, g.start))
	for _, r := range g.rules {
		b.WriteString(fmt.Sprintf("%3d: %s\n", r.serial, ruleString(r)))
	}
	return b.String()
}

func ruleString(r *Rule) string {
	names := make([]string, len(r.rhs))
	for i, sym := range r.rhs {
		names[i] = sym.name
	}
	return fmt.Sprintf("[%s] ::= [%s]", r.lhs.name, strings.Join(names, " "))
}
