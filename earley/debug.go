package earley

import (
	"bytes"
	"fmt"
)

// Dump is a debugging helper, printing all columns of a chart with trace level Debug.
func (c *Chart) Dump() {
	for _, col := range c.columns {
		dumpColumn(col)
	}
}

func dumpColumn(col *column) {
	if col.index == 0 {
		tracer().Debugf("--- Column %04d ------------------------------------", col.index)
	} else {
		tracer().Debugf("--- Column %04d %q ------------------------------", col.index, col.lexeme)
	}
	for n, it := range col.items {
		tracer().Debugf("[%2d] %s%s", n, it, backpointersString(it))
	}
}

func backpointersString(it *item) string {
	if len(it.bps) == 0 {
		return ""
	}
	var b bytes.Buffer
	b.WriteString("  {")
	for i, bp := range it.bps {
		if i > 0 {
			b.WriteString(",")
		}
		if bp.child == scanned {
			b.WriteString(fmt.Sprintf(" %d/%d+scan", bp.predCol, bp.pred))
		} else {
			b.WriteString(fmt.Sprintf(" %d/%d+%d", bp.predCol, bp.pred, bp.child))
		}
	}
	b.WriteString(" }")
	return b.String()
}
