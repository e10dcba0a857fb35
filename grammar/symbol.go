package grammar

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Matcher is a predicate over lexemes. Terminals use matchers to decide if a
// lexeme from the input is an instance of them.
//
// Matchers have to be pure functions: a parser may call a matcher more than once
// for the same lexeme, and matchers of a shared grammar may be called
// concurrently.
type Matcher func(lexeme string) bool

// Literal returns a matcher for exactly one lexeme.
func Literal(s string) Matcher {
	return func(lexeme string) bool {
		return lexeme == s
	}
}

// OneOf returns a matcher for any of a set of lexemes.
func OneOf(s ...string) Matcher {
	set := make(map[string]struct{}, len(s))
	for _, l := range s {
		set[l] = struct{}{}
	}
	return func(lexeme string) bool {
		_, ok := set[lexeme]
		return ok
	}
}

// Range returns a matcher for lexemes consisting of a single rune r,
// with from ≤ r ≤ to.
func Range(from, to rune) Matcher {
	return func(lexeme string) bool {
		r, size := utf8.DecodeRuneInString(lexeme)
		if size == 0 || size != len(lexeme) || r == utf8.RuneError {
			return false
		}
		return from <= r && r <= to
	}
}

// Regexp returns a matcher for lexemes matching re. The regular expression
// should be anchored, as it is applied to the whole lexeme with MatchString.
func Regexp(re *regexp.Regexp) Matcher {
	return re.MatchString
}

// AnyLexeme matches every lexeme.
func AnyLexeme(string) bool {
	return true
}

// --- Symbols ---------------------------------------------------------------

// Symbol is a grammar symbol, either a terminal or a non-terminal.
// Non-terminals are identified by their name. Terminals additionally hold a
// matcher.
type Symbol struct {
	name    string
	serial  int     // position in declaration order
	match   Matcher // nil for non-terminals
	literal string  // text matched by a literal terminal
	isLit   bool
}

// Name returns the name of a symbol.
func (sym *Symbol) Name() string {
	return sym.name
}

// Serial returns the ordinal number of a symbol within its grammar.
// Serials are dense, starting at 0.
func (sym *Symbol) Serial() int {
	return sym.serial
}

// IsTerminal is true for terminal symbols.
func (sym *Symbol) IsTerminal() bool {
	return sym.match != nil
}

// Matches checks a lexeme against the matcher of a terminal. It is always false
// for non-terminals.
func (sym *Symbol) Matches(lexeme string) bool {
	if sym.match == nil {
		return false
	}
	return sym.match(lexeme)
}

// Literal returns the text of a literal terminal, i.e. a terminal matching
// exactly one lexeme. ok is false for other terminals and for non-terminals.
func (sym *Symbol) Literal() (text string, ok bool) {
	return sym.literal, sym.isLit
}

func (sym *Symbol) String() string {
	return sym.name
}

// --- Symbol table ----------------------------------------------------------

// SymbolTable stores grammar symbols by name and remembers the order in which
// they have been defined.
type SymbolTable struct {
	table *linkedhashmap.Map
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{table: linkedhashmap.New()}
}

// Resolve checks for a symbol in the table.
// Returns a symbol or nil.
func (t *SymbolTable) Resolve(name string) *Symbol {
	if sym, ok := t.table.Get(name); ok {
		return sym.(*Symbol)
	}
	return nil
}

// ResolveOrDefine finds a symbol in the table, inserts a new non-terminal if
// not found. Returns the symbol and a flag, signalling wether the symbol
// has already been present.
func (t *SymbolTable) ResolveOrDefine(name string) (*Symbol, bool) {
	if sym := t.Resolve(name); sym != nil {
		return sym, true
	}
	sym, _ := t.Define(name, nil)
	return sym, false
}

// Define creates a new symbol and stores it into the table.
// A nil matcher defines a non-terminal.
// Overwrites an existing symbol with this name, keeping its position.
// Returns the new symbol and the previously stored symbol (or nil).
func (t *SymbolTable) Define(name string, m Matcher) (*Symbol, *Symbol) {
	old := t.Resolve(name)
	sym := &Symbol{name: name, serial: t.table.Size(), match: m}
	if old != nil {
		sym.serial = old.serial
	}
	t.table.Put(name, sym)
	return sym, old
}

// Size returns the number of symbols in the table.
func (t *SymbolTable) Size() int {
	return t.table.Size()
}

// Each calls f for every symbol, in order of definition.
func (t *SymbolTable) Each(f func(*Symbol)) {
	it := t.table.Iterator()
	for it.Next() {
		f(it.Value().(*Symbol))
	}
}

func (t *SymbolTable) String() string {
	return fmt.Sprintf("<symtab |%d|>", t.table.Size())
}
