package tree

import (
	"fmt"
	"io"
	"strings"
)

// Print writes an indented representation of a subtree to w, one line per
// node:
//
//     E -> E + N
//     ├─ E -> N
//     │  └─ N -> 3
//     │     └─ "3"
//     ├─ "+"
//     └─ N -> 2
//        └─ "2"
//
func Print(w io.Writer, t *Subtree) error {
	return printIndented(w, t, "", "")
}

func printIndented(w io.Writer, t *Subtree, first, rest string) error {
	var err error
	if t.IsLeaf() {
		_, err = fmt.Fprintf(w, "%s%q\n", first, t.lexeme)
		return err
	}
	if _, err = fmt.Fprintf(w, "%s%s\n", first, t.production); err != nil {
		return err
	}
	for i, ch := range t.children {
		if i == len(t.children)-1 {
			err = printIndented(w, ch, rest+"└─ ", rest+"   ")
		} else {
			err = printIndented(w, ch, rest+"├─ ", rest+"│  ")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Indented returns the output of Print as a string.
func Indented(t *Subtree) string {
	var b strings.Builder
	_ = Print(&b, t)
	return b.String()
}
