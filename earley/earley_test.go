package earley

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/chartparse"
	"github.com/npillmayer/chartparse/grammar"
	"github.com/npillmayer/chartparse/tree"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// We use a small unambiguous expression grammar for testing.
// It is slightly adapted from
//
//      http://loup-vaillant.fr/tutorials/earley-parsing/recogniser
//
// This way we will be able to follow the examples there.
//
//     Sum     = Sum     '+' Product
//             | Product
//     Product = Product '*' Factor
//             | Factor
//     Factor  = '(' Sum ')'
//             | number
//
// 'number' is a terminal symbol recognizing decimal integers.
//
func makeGrammar(t *testing.T) *grammar.Grammar {
	number := grammar.Regexp(regexp.MustCompile(`^[0-9]+$`))
	b := grammar.NewBuilder("Expressions")
	b.LHS("Sum").N("Sum").T("+", nil).N("Product").End()
	b.LHS("Sum").N("Product").End()
	b.LHS("Product").N("Product").T("*", nil).N("Factor").End()
	b.LHS("Product").N("Factor").End()
	b.LHS("Factor").T("(", nil).N("Sum").T(")", nil).End()
	b.LHS("Factor").T("number", number).End()
	g, err := b.Grammar("Sum")
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// chars splits an input string into single-character lexemes, skipping blanks.
func chars(input string) chartparse.LexemeSource {
	return chartparse.Lexemes(strings.Fields(strings.Join(strings.Split(input, ""), " "))...)
}

func mustGrammar(t *testing.T, b *grammar.Builder, start string) *grammar.Grammar {
	g, err := b.Grammar(start)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

var inputStrings = []string{
	"1", "1+2", "1*2", "1+2*3", "1*(2+3)", "1+2+3+4", "1*2+3*4",
}

// --- the Tests -------------------------------------------------------------

func TestParser1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.earley")
	defer teardown()
	//
	parser := NewParser(makeGrammar(t), TraceColumns(true))
	for n, input := range inputStrings {
		tracer().Infof("=== '%s' ========================", input)
		chart, err := parser.Parse(chars(input))
		if err != nil {
			t.Error(err)
		}
		if !chart.Accepted() {
			t.Errorf("Valid input string #%d not accepted: '%s'", n+1, input)
		}
		if chart.Ambiguous() {
			t.Errorf("Input string #%d reported to be ambiguous: '%s'", n+1, input)
		}
	}
}

func TestTree1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.earley")
	defer teardown()
	//
	input := "1+2*3"
	parser := NewParser(makeGrammar(t))
	chart, err := parser.Parse(chars(input))
	if err != nil {
		t.Fatal(err)
	}
	trees, err := chart.Trees("Sum")
	if err != nil {
		t.Fatal(err)
	}
	if len(trees) != 1 {
		t.Fatalf("Expected 1 tree for %q, have %d", input, len(trees))
	}
	v := tree.Walk(trees[0], NewExprListener(t), tree.LtoR)
	value, ok := v.(int)
	if !ok || value != 7 {
		t.Errorf("Expected %s to be 7, is %v", input, v)
	}
}

func TestMinimal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.earley")
	defer teardown()
	//
	b := grammar.NewBuilder("Minimal")
	b.Terminal("0", nil).Rule("Number", "0")
	parser := NewParser(mustGrammar(t, b, "Number"))
	chart, err := parser.Parse(chartparse.Lexemes("0"))
	if err != nil {
		t.Fatal(err)
	}
	trees, err := chart.Trees("Number")
	if err != nil {
		t.Fatal(err)
	}
	if len(trees) != 1 {
		t.Fatalf("Expected exactly 1 tree, have %d", len(trees))
	}
	if s := trees[0].String(); s != `Node("Number -> 0", [Leaf("0", "0")])` {
		t.Errorf("Unexpected tree %s", s)
	}
}

func TestDiagnostics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.earley")
	defer teardown()
	//
	b := grammar.NewBuilder("Minimal")
	b.Terminal("0", nil).Rule("Number", "0")
	parser := NewParser(mustGrammar(t, b, "Number"))
	chart, err := parser.Parse(chartparse.Lexemes("1"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Expected a ParseError, got %v", err)
	}
	t.Logf("error = %v", perr)
	if perr.Position != 0 || perr.Lexeme != "1" || perr.AtEnd {
		t.Errorf("Expected error at position 0 for lexeme 1, have %+v", perr)
	}
	if len(perr.Expected) != 1 || perr.Expected[0] != "0" {
		t.Errorf("Expected terminal 0 to be expected, have %v", perr.Expected)
	}
	if chart.Accepted() {
		t.Errorf("Invalid input accepted")
	}
	if _, err = chart.Trees("Number"); !errors.Is(err, ErrNoParse) {
		t.Errorf("Expected tree extraction to fail with ErrNoParse, got %v", err)
	}
	//
	_, err = parser.Parse(chartparse.Lexemes("0", "0"))
	if !errors.As(err, &perr) || perr.Position != 1 || len(perr.Expected) != 0 {
		t.Errorf("Expected error at position 1 expecting end of input, have %v", err)
	}
}

func TestPrematureEnd(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.earley")
	defer teardown()
	//
	parser := NewParser(makeGrammar(t))
	_, err := parser.Parse(chars("1+"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Expected a ParseError, got %v", err)
	}
	t.Logf("error = %v", perr)
	if !perr.AtEnd || perr.Position != 2 {
		t.Errorf("Expected error at end of input, position 2; have %+v", perr)
	}
	if strings.Join(perr.Expected, " ") != "( number" {
		t.Errorf("Expected '(' or number, have %v", perr.Expected)
	}
	_, err = parser.Parse(chartparse.Lexemes())
	if !errors.As(err, &perr) || !perr.AtEnd || perr.Position != 0 {
		t.Errorf("Expected empty input to fail at position 0, have %v", err)
	}
}

func TestAmbiguity1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.earley")
	defer teardown()
	//
	b := grammar.NewBuilder("Ambiguous")
	b.Rule("S", "A").Rule("S", "A")
	b.Terminal("x", nil).Rule("A", "x")
	parser := NewParser(mustGrammar(t, b, "S"))
	chart, err := parser.Parse(chartparse.Lexemes("x"))
	if err != nil {
		t.Fatal(err)
	}
	if !chart.Ambiguous() {
		t.Errorf("Expected chart to be ambiguous")
	}
	trees, _ := chart.Trees("S")
	if len(trees) != 2 {
		t.Fatalf("Expected 2 trees, have %d", len(trees))
	}
	if tree.Equal(trees[0], trees[1]) {
		t.Errorf("Expected trees to be distinct, are equal")
	}
	if trees[0].Rule() == trees[1].Rule() {
		t.Errorf("Expected trees to have been created by different rules")
	}
}

func TestAmbiguity2(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.earley")
	defer teardown()
	//
	b := grammar.NewBuilder("Test-G")
	b.LHS("X").T("+", nil).N("X").End()
	b.LHS("X").N("X").T("*", nil).N("X").End()
	b.LHS("X").T("x", nil).End()
	parser := NewParser(mustGrammar(t, b, "X"))
	input := "+x*x"
	chart, err := parser.Parse(chars(input))
	if err != nil {
		t.Fatal(err)
	}
	tracer().SetTraceLevel(tracing.LevelDebug)
	chart.Dump()
	trees, _ := chart.Trees("X")
	if len(trees) != 2 { // (+x)*x and +(x*x)
		t.Fatalf("Expected 2 trees for %q, have %d", input, len(trees))
	}
	for _, tr := range trees {
		t.Logf("tree = %s", tr.SExpr())
		if strings.Join(tr.Lexemes(), "") != input {
			t.Errorf("Expected leaves of tree to reproduce input, have %v", tr.Lexemes())
		}
	}
}

func TestEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.earley")
	defer teardown()
	//
	b := grammar.NewBuilder("Epsilon")
	b.LHS("R").Epsilon()
	b.LHS("R").N("R").T("a", nil).End()
	parser := NewParser(mustGrammar(t, b, "R"))
	chart, err := parser.Parse(chartparse.Lexemes())
	if err != nil {
		t.Fatal(err)
	}
	trees, _ := chart.Trees("R")
	if len(trees) != 1 || trees[0].String() != `Node("R ->", [])` {
		t.Errorf("Expected a single epsilon tree for empty input, have %v", trees)
	}
	//
	chart, err = parser.Parse(chars("aaa"))
	if err != nil {
		t.Fatal(err)
	}
	trees, _ = chart.Trees("R")
	if len(trees) != 1 {
		t.Fatalf("Expected exactly 1 tree for 'aaa', have %d", len(trees))
	}
	nesting := 0
	for node := trees[0]; node != nil; node = node.Child(0) {
		if node.Production() == "R -> R a" {
			nesting++
		}
	}
	if nesting != 3 {
		t.Errorf("Expected tree of nesting depth 3, is %d: %s", nesting, trees[0])
	}
	if trees[0].Depth() != 4 {
		t.Errorf("Expected tree of height 4 (including epsilon node), is %d", trees[0].Depth())
	}
}

func TestNullablePrefix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.earley")
	defer teardown()
	//
	b := grammar.NewBuilder("Nullable")
	b.LHS("S").N("A").N("B").T("c", nil).End()
	b.LHS("A").Epsilon()
	b.LHS("B").T("b", nil).End()
	b.LHS("B").N("A").End()
	parser := NewParser(mustGrammar(t, b, "S"))
	for _, input := range []string{"c", "bc"} {
		chart, err := parser.Parse(chars(input))
		if err != nil {
			t.Fatal(err)
		}
		trees, _ := chart.Trees("S")
		if len(trees) != 1 {
			t.Errorf("Expected exactly 1 tree for %q, have %d", input, len(trees))
			continue
		}
		t.Logf("%s", trees[0].SExpr())
	}
}

func TestLeftRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.earley")
	defer teardown()
	//
	b := grammar.NewBuilder("Sums")
	b.Rule("E", "E", "+", "N").Rule("E", "N")
	b.Terminal("+", nil)
	for _, n := range []string{"0", "1", "2", "3"} {
		b.Terminal(n, nil).Rule("N", n)
	}
	parser := NewParser(mustGrammar(t, b, "E"))
	chart, err := parser.Parse(chartparse.Lexemes(strings.Fields("3 + 2 + 1")...))
	if err != nil {
		t.Fatal(err)
	}
	trees, _ := chart.Trees("E")
	if len(trees) != 1 {
		t.Fatalf("Expected exactly 1 tree, have %d", len(trees))
	}
	root := trees[0]
	if root.Production() != "E -> E + N" || root.Child(0).Production() != "E -> E + N" {
		t.Errorf("Expected tree to be left-associative, is %s", root)
	}
	if s := root.SExpr(); s != "(E (E (E (N 3)) + (N 2)) + (N 1))" {
		t.Errorf("Unexpected tree %s", s)
	}
}

func TestCyclicGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.earley")
	defer teardown()
	//
	b := grammar.NewBuilder("Cyclic")
	b.Rule("S", "S").Terminal("a", nil).Rule("S", "a")
	parser := NewParser(mustGrammar(t, b, "S"))
	chart, err := parser.Parse(chartparse.Lexemes("a"))
	if err != nil {
		t.Fatal(err)
	}
	trees, _ := chart.Trees("S")
	if len(trees) != 2 { // S(a) and S(S(a))
		t.Errorf("Expected cycle S -> S to be cut after one step, have %d trees", len(trees))
	}
	for _, tr := range trees {
		t.Logf("tree = %s", tr.SExpr())
		if strings.Join(tr.Lexemes(), "") != "a" {
			t.Errorf("Expected leaves of tree to reproduce input, have %v", tr.Lexemes())
		}
	}
}

func TestCyclicNullableGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.earley")
	defer teardown()
	//
	b := grammar.NewBuilder("CyclicNullable")
	b.Rule("S", "S", "S").Terminal("a", nil).Rule("S", "a")
	b.LHS("S").Epsilon()
	parser := NewParser(mustGrammar(t, b, "S"))
	chart, err := parser.Parse(chartparse.Lexemes("a", "a"))
	if err != nil {
		t.Fatal(err)
	}
	trees, err := chart.Trees("S")
	if err != nil {
		t.Fatal(err)
	}
	if len(trees) != 25 {
		t.Errorf("Expected 25 trees for cycles cut once per item, have %d", len(trees))
	}
	distinct := make(map[string]bool)
	for _, tr := range trees {
		distinct[tr.SExpr()] = true
		if strings.Join(tr.Lexemes(), " ") != "a a" {
			t.Errorf("Expected leaves of tree to reproduce input, have %v", tr.Lexemes())
		}
	}
	if len(distinct) != len(trees) {
		t.Errorf("Expected trees to be distinct, have %d duplicates", len(trees)-len(distinct))
	}
}

func TestMaxTrees(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.earley")
	defer teardown()
	//
	b := grammar.NewBuilder("Catalan")
	b.LHS("X").N("X").N("X").End()
	b.LHS("X").T("x", nil).End()
	parser := NewParser(mustGrammar(t, b, "X"))
	chart, err := parser.Parse(chars("xxxx"))
	if err != nil {
		t.Fatal(err)
	}
	trees, _ := chart.Trees("X")
	if len(trees) != 5 { // Catalan number C(3)
		t.Errorf("Expected 5 trees for 'xxxx', have %d", len(trees))
	}
	for i := range trees {
		for j := i + 1; j < len(trees); j++ {
			if tree.Equal(trees[i], trees[j]) {
				t.Errorf("Trees #%d and #%d are equal", i, j)
			}
		}
	}
	trees, _ = chart.Trees("X", MaxTrees(2))
	if len(trees) != 2 {
		t.Errorf("Expected trees to be limited to 2, have %d", len(trees))
	}
}

func TestDeterminism(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.earley")
	defer teardown()
	//
	b := grammar.NewBuilder("Catalan")
	b.LHS("X").N("X").N("X").End()
	b.LHS("X").T("x", nil).End()
	parser := NewParser(mustGrammar(t, b, "X"))
	parse := func() []*tree.Subtree {
		chart, err := parser.Parse(chars("xxxxx"))
		if err != nil {
			t.Fatal(err)
		}
		trees, _ := chart.Trees("X")
		return trees
	}
	first, second := parse(), parse()
	if len(first) != 14 || len(first) != len(second) {
		t.Fatalf("Expected 14 trees for two runs, have %d and %d", len(first), len(second))
	}
	for _, t1 := range first {
		found := false
		for _, t2 := range second {
			if tree.Equal(t1, t2) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Tree %s of first run missing in second run", t1.SExpr())
		}
	}
}

func TestUnknownTarget(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.earley")
	defer teardown()
	//
	parser := NewParser(makeGrammar(t))
	chart, err := parser.Parse(chars("1"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err = chart.Trees("Expression"); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("Expected ErrUnknownSymbol, got %v", err)
	}
	if _, err = chart.Trees("number"); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("Expected ErrUnknownSymbol for terminal, got %v", err)
	}
	trees, err := chart.Trees("Product") // covers the whole input as well
	if err != nil || len(trees) != 1 {
		t.Errorf("Expected 1 tree for Product, have %d (%v)", len(trees), err)
	}
}

func TestLazySource(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.earley")
	defer teardown()
	//
	pulled := 0
	lexemes := []string{"1", "+", "+", "2", "3"}
	src := chartparse.LexemeFunc(func() (string, bool) {
		if pulled >= len(lexemes) {
			return "", false
		}
		pulled++
		return lexemes[pulled-1], true
	})
	parser := NewParser(makeGrammar(t))
	chart, err := parser.Parse(src)
	if err == nil {
		t.Fatalf("Expected parse to fail")
	}
	if pulled != 3 {
		t.Errorf("Expected parser to stop reading after 3rd lexeme, has read %d", pulled)
	}
	if chart.Len() != 2 || strings.Join(chart.Lexemes(), "") != "1+" {
		t.Errorf("Expected chart to have consumed '1+', has %v", chart.Lexemes())
	}
}

func TestConcurrentParsers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.earley")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	parser := NewParser(makeGrammar(t))
	results := make([]int, len(inputStrings))
	var wg sync.WaitGroup
	for i, input := range inputStrings {
		wg.Add(1)
		go func(i int, input string) {
			defer wg.Done()
			chart, err := parser.Parse(chars(input))
			if err != nil {
				return
			}
			if trees, err := chart.Trees("Sum"); err == nil {
				results[i] = len(trees)
			}
		}(i, input)
	}
	wg.Wait()
	for i, n := range results {
		if n != 1 {
			t.Errorf("Expected 1 tree for %q, have %d", inputStrings[i], n)
		}
	}
}

// --- Expression Listener for testing ---------------------------------------

type reducer func(*tree.Subtree, []*tree.RuleNode, int) interface{}

type ExprListener struct {
	t        *testing.T
	dispatch map[string]reducer
}

func NewExprListener(t *testing.T) *ExprListener {
	el := &ExprListener{t: t}
	el.dispatch = map[string]reducer{
		"Sum":     el.ReduceSum,
		"Product": el.ReduceProduct,
		"Factor":  el.ReduceFactor,
	}
	return el
}

func (el *ExprListener) EnterRule(*tree.Subtree, []*tree.RuleNode, tree.RuleCtxt) bool {
	return true
}

func (el *ExprListener) MakeAttrs(*tree.Subtree) interface{} {
	return nil
}

func (el *ExprListener) ExitRule(node *tree.Subtree, children []*tree.RuleNode, ctxt tree.RuleCtxt) interface{} {
	if r, ok := el.dispatch[node.Symbol()]; ok {
		return r(node, children, ctxt.Level)
	}
	el.t.Logf("%sReduce of grammar symbol: %v", indent(ctxt.Level), node.Symbol())
	return children[0].Value
}

func (el *ExprListener) ReduceSum(node *tree.Subtree, children []*tree.RuleNode, level int) interface{} {
	v := children[0].Value // Product
	if len(children) > 1 {
		v = children[0].Value.(int) + children[2].Value.(int) // Sum + Product
	}
	el.t.Logf("%sSUM %v\n", indent(level), v)
	return v
}

func (el *ExprListener) ReduceProduct(node *tree.Subtree, children []*tree.RuleNode, level int) interface{} {
	v := children[0].Value // Factor
	if len(children) > 1 {
		v = children[0].Value.(int) * children[2].Value.(int) // Product * Factor
	}
	el.t.Logf("%sPRODUCT %v\n", indent(level), v)
	return v
}

func (el *ExprListener) ReduceFactor(node *tree.Subtree, children []*tree.RuleNode, level int) interface{} {
	v := children[0].Value // number
	if len(children) > 1 {
		v = children[1].Value // ( Sum )
	}
	el.t.Logf("%sFACTOR %v\n", indent(level), v)
	return v
}

func (el *ExprListener) Terminal(leaf *tree.Subtree, ctxt tree.RuleCtxt) interface{} {
	el.t.Logf("%sToken %q|%s\n", indent(ctxt.Level), leaf.Lexeme(), leaf.Symbol())
	if leaf.Symbol() == "number" {
		n, _ := strconv.Atoi(leaf.Lexeme())
		return n
	}
	return leaf.Lexeme()
}

func indent(level int) string {
	in := ""
	for level > 0 {
		in = in + ". "
		level--
	}
	return in
}
