package grammar

import (
	"errors"
	"fmt"
)

// UndeclaredSymbolError is returned when finalizing a grammar which
// references a symbol that has never been declared.
type UndeclaredSymbolError struct {
	Name string // name of the symbol
	Rule string // rule referencing the symbol; empty for the start symbol
}

func (e *UndeclaredSymbolError) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("undeclared start symbol %q", e.Name)
	}
	return fmt.Sprintf("undeclared symbol %q in rule %s", e.Name, e.Rule)
}

// SymbolConflictError is returned when finalizing a grammar for which a
// symbol has been declared in incompatible ways, e.g. a terminal predicate has
// been attached twice.
type SymbolConflictError struct {
	Name   string
	Reason string
}

func (e *SymbolConflictError) Error() string {
	return fmt.Sprintf("conflicting declarations for symbol %q: %s", e.Name, e.Reason)
}

// ErrBuilderFinalized is returned by a builder which has already produced a
// grammar. Builders are single-use.
var ErrBuilderFinalized = errors.New("grammar builder has already been finalized")

// --- Builder ---------------------------------------------------------------

// Builder is a mutable accumulator for symbols and rules. Builder methods may
// be chained. Errors are remembered and reported by Grammar(…); once an error
// occured, subsequent declarations are ignored.
type Builder struct {
	name    string
	symbols *SymbolTable
	rules   []ruleDecl
	hasLHS  map[string]bool
	err     error
	done    bool
}

// a rule in declaration, referencing symbols by name
type ruleDecl struct {
	lhs string
	rhs []string
}

// NewBuilder creates a builder for a grammar with a given name.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:    name,
		symbols: NewSymbolTable(),
		hasLHS:  make(map[string]bool),
	}
}

// Symbol declares a non-terminal. Declaring a name more than once is
// harmless, as is declaring a name which has already been declared as a terminal.
// This makes Symbol usable for forward declarations.
func (b *Builder) Symbol(name string) *Builder {
	if !b.ok() {
		return b
	}
	if _, found := b.symbols.ResolveOrDefine(name); !found {
		tracer().Debugf("declared non-terminal %s", name)
	}
	return b
}

// Terminal declares a terminal with a matcher. If m is nil, the terminal will
// match lexemes identical to its name and is a literal terminal.
//
// A terminal may be declared only once. Re-declaring a non-terminal as a
// terminal is allowed as long as no rule for it has been added.
func (b *Builder) Terminal(name string, m Matcher) *Builder {
	if m == nil {
		return b.Literal(name, name)
	}
	b.terminal(name, m, "", false)
	return b
}

// Literal declares a terminal name which matches exactly the lexeme text.
// Scanners may ask a grammar for its literal terminals, see Symbol.Literal.
func (b *Builder) Literal(name string, text string) *Builder {
	b.terminal(name, Literal(text), text, true)
	return b
}

func (b *Builder) terminal(name string, m Matcher, text string, isLit bool) {
	if !b.ok() {
		return
	}
	if sym := b.symbols.Resolve(name); sym != nil {
		if sym.IsTerminal() {
			b.fail(&SymbolConflictError{Name: name, Reason: "terminal declared more than once"})
			return
		}
		if b.hasLHS[name] {
			b.fail(&SymbolConflictError{Name: name, Reason: "non-terminal with rules re-declared as terminal"})
			return
		}
	}
	sym, _ := b.symbols.Define(name, m)
	sym.literal, sym.isLit = text, isLit
	tracer().Debugf("declared terminal %s", name)
}

// Declared is true if a symbol of this name has been declared.
func (b *Builder) Declared(name string) bool {
	return b.symbols.Resolve(name) != nil
}

// Rule adds a rule lhs → rhs. If lhs is not yet known, it is declared as a
// non-terminal. Symbols on the right-hand side are referenced by name and will
// be checked by Grammar(…). An empty rhs adds an epsilon-rule.
func (b *Builder) Rule(lhs string, rhs ...string) *Builder {
	b.addRule(lhs, rhs)
	return b
}

func (b *Builder) addRule(lhs string, rhs []string) int {
	if !b.ok() {
		return -1
	}
	sym, _ := b.symbols.ResolveOrDefine(lhs)
	if sym.IsTerminal() {
		b.fail(&SymbolConflictError{Name: lhs, Reason: "terminal used as left-hand side of a rule"})
		return -1
	}
	b.hasLHS[lhs] = true
	b.rules = append(b.rules, ruleDecl{lhs: lhs, rhs: append([]string(nil), rhs...)})
	return len(b.rules) - 1
}

// Grammar finalizes the builder, using start as the start symbol.
// It returns an *UndeclaredSymbolError if start or any symbol referenced by a
// rule has not been declared, and the first declaration error, if any.
//
// After a successful call, the builder may not be used any more.
func (b *Builder) Grammar(start string) (*Grammar, error) {
	if b.done {
		return nil, ErrBuilderFinalized
	}
	if b.err != nil {
		return nil, b.err
	}
	g := &Grammar{
		name:   b.name,
		byName: make(map[string]*Symbol, b.symbols.Size()),
	}
	b.symbols.Each(func(sym *Symbol) {
		g.symbols = append(g.symbols, sym)
		g.byName[sym.name] = sym
	})
	g.rulesFor = make([][]*Rule, len(g.symbols))
	if g.start = g.byName[start]; g.start == nil {
		return nil, &UndeclaredSymbolError{Name: start}
	}
	if g.start.IsTerminal() {
		return nil, &SymbolConflictError{Name: start, Reason: "terminal used as start symbol"}
	}
	for serial, decl := range b.rules {
		r := &Rule{serial: serial, lhs: g.byName[decl.lhs]}
		for _, name := range decl.rhs {
			sym := g.byName[name]
			if sym == nil {
				return nil, &UndeclaredSymbolError{Name: name, Rule: declString(decl)}
			}
			r.rhs = append(r.rhs, sym)
		}
		g.rules = append(g.rules, r)
		g.rulesFor[r.lhs.serial] = append(g.rulesFor[r.lhs.serial], r)
	}
	b.done = true
	tracer().Infof("grammar %q has %d symbols and %d rules", g.name, len(g.symbols), len(g.rules))
	return g, nil
}

func (b *Builder) ok() bool {
	if b.done {
		b.err = ErrBuilderFinalized
	}
	return b.err == nil
}

func (b *Builder) fail(err error) {
	tracer().Errorf(err.Error())
	if b.err == nil {
		b.err = err
	}
}

func declString(decl ruleDecl) string {
	if len(decl.rhs) == 0 {
		return decl.lhs + " ->"
	}
	s := decl.lhs + " ->"
	for _, name := range decl.rhs {
		s += " " + name
	}
	return s
}

// --- Fluent rule construction ----------------------------------------------

// RuleBuilder assembles the right-hand side of a single rule. Create one with
// Builder.LHS and terminate it with End or Epsilon.
type RuleBuilder struct {
	b   *Builder
	lhs string
	rhs []string
}

// LHS starts a new rule with left-hand side name.
func (b *Builder) LHS(name string) *RuleBuilder {
	return &RuleBuilder{b: b, lhs: name}
}

// N appends a non-terminal to the right-hand side, declaring it if necessary.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.b.Symbol(name)
	rb.rhs = append(rb.rhs, name)
	return rb
}

// T appends a terminal to the right-hand side. An unknown terminal will be
// declared with matcher m (or as a literal, if m is nil). Referencing an
// already declared terminal requires m to be nil.
func (rb *RuleBuilder) T(name string, m Matcher) *RuleBuilder {
	if sym := rb.b.symbols.Resolve(name); sym == nil || !sym.IsTerminal() || m != nil {
		rb.b.Terminal(name, m)
	}
	rb.rhs = append(rb.rhs, name)
	return rb
}

// End adds the rule to the builder and returns its serial number, or -1 if the
// builder is in an error state.
func (rb *RuleBuilder) End() int {
	return rb.b.addRule(rb.lhs, rb.rhs)
}

// Epsilon adds an epsilon-rule for the left-hand side, ignoring symbols
// appended so far.
func (rb *RuleBuilder) Epsilon() int {
	return rb.b.addRule(rb.lhs, nil)
}
