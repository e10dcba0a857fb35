package earley

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/chartparse/grammar"
)

// item is an Earley item [A ➞ α • β, origin]. Items live in a column of the
// chart and are referenced by their index within the column.
type item struct {
	rule   *grammar.Rule
	dot    int // position of the dot within RHS
	origin int // column where recognition of the rule started
	bps    []backpointer
}

// itemKey identifies an item within a column.
type itemKey struct {
	rule   int // rule serial
	dot    int
	origin int
}

// backpointer records how an item with dot > 0 has been derived: from a
// predecessor item [A ➞ α • X β, k] in column predCol, by either scanning a
// terminal X (child < 0) or by a completed item for X in the item's own column.
type backpointer struct {
	predCol int
	pred    int
	child   int
}

// scanned is the child value of back-pointers for terminals.
const scanned = -1

func (it *item) key() itemKey {
	return itemKey{rule: it.rule.Serial(), dot: it.dot, origin: it.origin}
}

// peek returns the symbol after the dot, or nil for completed items.
func (it *item) peek() *grammar.Symbol {
	return it.rule.At(it.dot)
}

func (it *item) completed() bool {
	return it.dot >= it.rule.Len()
}

func (it *item) String() string {
	var b bytes.Buffer
	b.WriteString("[")
	b.WriteString(it.rule.LHS().Name())
	b.WriteString(" ➞")
	for i := 0; i < it.rule.Len(); i++ {
		if i == it.dot {
			b.WriteString(" •")
		}
		b.WriteString(" ")
		b.WriteString(it.rule.At(i).Name())
	}
	if it.completed() {
		b.WriteString(" •")
	}
	b.WriteString(fmt.Sprintf(", %d]", it.origin))
	return b.String()
}
