package ebnf

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cnf/structhash"
	"github.com/npillmayer/chartparse/grammar"
	"golang.org/x/exp/ebnf"
)

// Option configures the EBNF compiler.
type Option func(c *compiler)

// PlugTerminal binds a name used in the EBNF to a terminal with matcher m.
// Names of productions cannot be plugged.
func PlugTerminal(name string, m grammar.Matcher) Option {
	return func(c *compiler) {
		c.plugged[name] = m
	}
}

// Compile reads an EBNF grammar from src and compiles it into a grammar with
// start symbol start. name is used for error messages and as the grammar's name.
//
// Errors are either syntax errors of the EBNF or errors returned by the grammar
// builder, e.g. a *grammar.UndeclaredSymbolError for a name which is neither
// defined by a production nor plugged as a terminal.
func Compile(name string, src io.Reader, start string, opts ...Option) (*grammar.Grammar, error) {
	productions, err := ebnf.Parse(name, src)
	if err != nil {
		return nil, fmt.Errorf("ebnf: %w", err)
	}
	c := &compiler{
		b:         grammar.NewBuilder(name),
		plugged:   make(map[string]grammar.Matcher),
		terminals: make(map[string]bool),
		helpers:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c.compile(productions, start)
}

// Load compiles the EBNF grammar in file filename. See Compile.
func Load(filename string, start string, opts ...Option) (*grammar.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Compile(filename, f, start, opts...)
}

// compiler translates EBNF productions into rules of a grammar builder.
type compiler struct {
	b           *grammar.Builder
	productions ebnf.Grammar
	plugged     map[string]grammar.Matcher
	terminals   map[string]bool // terminals already declared
	helpers     map[string]bool // helper non-terminals already declared
	err         error
}

func (c *compiler) compile(productions ebnf.Grammar, start string) (*grammar.Grammar, error) {
	c.productions = productions
	prods := make([]*ebnf.Production, 0, len(productions))
	for _, p := range productions {
		prods = append(prods, p)
	}
	sort.Slice(prods, func(i, j int) bool { // declaration order
		return prods[i].Name.StringPos.Offset < prods[j].Name.StringPos.Offset
	})
	plugged := make([]string, 0, len(c.plugged))
	for name := range c.plugged {
		plugged = append(plugged, name)
	}
	sort.Strings(plugged)
	for _, name := range plugged {
		if _, isProduction := productions[name]; isProduction {
			return nil, &grammar.SymbolConflictError{
				Name:   name,
				Reason: "plugged terminal is defined by a production",
			}
		}
		c.terminal(name, c.plugged[name])
	}
	for _, p := range prods {
		c.b.Symbol(p.Name.String)
	}
	for _, p := range prods {
		lhs := p.Name.String
		tracer().Debugf("production %s = %s .", lhs, Render(p.Expr))
		for _, rhs := range c.alternatives(p.Expr) {
			c.b.Rule(lhs, rhs...)
		}
	}
	if c.err != nil {
		return nil, c.err
	}
	g, err := c.b.Grammar(start)
	if err != nil {
		return nil, err
	}
	tracer().Infof("compiled EBNF grammar %q with %d rules", g.Name(), g.RuleCount())
	return g, nil
}

// alternatives returns the right-hand sides for an expression, one for each
// top-level alternative.
func (c *compiler) alternatives(expr ebnf.Expression) [][]string {
	if alt, ok := expr.(ebnf.Alternative); ok {
		rhss := make([][]string, 0, len(alt))
		for _, x := range alt {
			rhss = append(rhss, c.sequence(x))
		}
		return rhss
	}
	return [][]string{c.sequence(expr)}
}

// sequence returns a right-hand side for an expression without top-level
// alternatives. A nil expression is the empty sequence.
func (c *compiler) sequence(expr ebnf.Expression) []string {
	switch x := expr.(type) {
	case nil:
		return []string{}
	case ebnf.Sequence:
		rhs := make([]string, 0, len(x))
		for _, y := range x {
			rhs = append(rhs, c.symbol(y))
		}
		return rhs
	}
	return []string{c.symbol(expr)}
}

// symbol returns the grammar symbol for a term, declaring terminals and
// helper non-terminals as needed.
func (c *compiler) symbol(expr ebnf.Expression) string {
	switch x := expr.(type) {
	case *ebnf.Name:
		return x.String
	case *ebnf.Token:
		name := c.tokenName(x.String)
		if !c.terminals[name] {
			c.terminals[name] = true
			c.b.Literal(name, x.String)
		}
		return name
	case *ebnf.Range:
		return c.rangeTerminal(x)
	case *ebnf.Group:
		return c.helper("(", ")", x.Body, func(R string) {
			for _, rhs := range c.alternatives(x.Body) {
				c.b.Rule(R, rhs...)
			}
		})
	case *ebnf.Option:
		return c.helper("[", "]", x.Body, func(R string) {
			c.b.Rule(R)
			for _, rhs := range c.alternatives(x.Body) {
				c.b.Rule(R, rhs...)
			}
		})
	case *ebnf.Repetition:
		return c.helper("{", "}", x.Body, func(R string) {
			c.b.Rule(R)
			for _, rhs := range c.alternatives(x.Body) {
				c.b.Rule(R, append([]string{R}, rhs...)...)
			}
		})
	case ebnf.Alternative, ebnf.Sequence: // nested without parens
		return c.helper("(", ")", x, func(R string) {
			for _, rhs := range c.alternatives(x) {
				c.b.Rule(R, rhs...)
			}
		})
	}
	c.fail(fmt.Errorf("ebnf: unsupported expression %T", expr))
	return "<?>"
}

// tokenName returns the terminal name for a quoted token. Tokens are named by
// their text, unless the text is taken by a production or a plugged terminal.
// Then the quoted text is used.
func (c *compiler) tokenName(text string) string {
	_, isProduction := c.productions[text]
	_, isPlugged := c.plugged[text]
	if isProduction || isPlugged {
		return strconv.Quote(text)
	}
	return text
}

// terminal declares a terminal with matcher m once.
func (c *compiler) terminal(name string, m grammar.Matcher) {
	if c.terminals[name] {
		return
	}
	c.terminals[name] = true
	c.b.Terminal(name, m)
}

func (c *compiler) rangeTerminal(r *ebnf.Range) string {
	from, n1 := utf8.DecodeRuneInString(r.Begin.String)
	to, n2 := utf8.DecodeRuneInString(r.End.String)
	if n1 == 0 || n1 != len(r.Begin.String) || n2 == 0 || n2 != len(r.End.String) {
		c.fail(fmt.Errorf("ebnf: bounds of range %s must be single characters", Render(r)))
		return "<?>"
	}
	name := r.Begin.String + "…" + r.End.String
	c.terminal(name, grammar.Range(from, to))
	return name
}

// helper declares a helper non-terminal for a sub-expression, if it has not
// been declared before. Its name is derived from the sub-expression's content.
func (c *compiler) helper(lbr, rbr string, body ebnf.Expression, rules func(string)) string {
	content := lbr + " " + Render(body) + " " + rbr
	name := helperName(lbr, rbr, content)
	if !c.helpers[name] {
		c.helpers[name] = true
		tracer().Debugf("helper %s for %s", name, content)
		c.b.Symbol(name)
		rules(name)
	}
	return name
}

type helperKey struct {
	Content string
}

func helperName(lbr, rbr, content string) string {
	sum := structhash.Md5(helperKey{Content: content}, 1)
	return fmt.Sprintf("%s%x%s", lbr, sum[:4], rbr)
}

func (c *compiler) fail(err error) {
	tracer().Errorf(err.Error())
	if c.err == nil {
		c.err = err
	}
}

// Render returns an expression in EBNF notation.
func Render(expr ebnf.Expression) string {
	var b strings.Builder
	render(&b, expr)
	return b.String()
}

func render(b *strings.Builder, expr ebnf.Expression) {
	switch x := expr.(type) {
	case nil:
	case *ebnf.Name:
		b.WriteString(x.String)
	case *ebnf.Token:
		b.WriteString(strconv.Quote(x.String))
	case *ebnf.Range:
		b.WriteString(strconv.Quote(x.Begin.String) + " … " + strconv.Quote(x.End.String))
	case *ebnf.Group:
		b.WriteString("( ")
		render(b, x.Body)
		b.WriteString(" )")
	case *ebnf.Option:
		b.WriteString("[ ")
		render(b, x.Body)
		b.WriteString(" ]")
	case *ebnf.Repetition:
		b.WriteString("{ ")
		render(b, x.Body)
		b.WriteString(" }")
	case ebnf.Sequence:
		for i, y := range x {
			if i > 0 {
				b.WriteString(" ")
			}
			render(b, y)
		}
	case ebnf.Alternative:
		for i, y := range x {
			if i > 0 {
				b.WriteString(" | ")
			}
			render(b, y)
		}
	default:
		fmt.Fprintf(b, "<%T>", expr)
	}
}
