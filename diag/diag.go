// Package diag collects and renders the syntax errors reported by the
// recognizer and the scanner.
package diag

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/fzipp/pl0-recognizer/pls"
)

// Diagnostic is one reported error.
type Diagnostic struct {
	Pos pls.Pos
	Msg string
}

func (d Diagnostic) String() string {
	return d.Pos.String() + ": " + d.Msg
}

// List collects diagnostics in the order they are reported. A *List is a
// plp.Sink and can be passed as a scanner ErrorHandler via its Report
// method.
type List []Diagnostic

func (l *List) Report(pos pls.Pos, msg string) {
	*l = append(*l, Diagnostic{Pos: pos, Msg: msg})
}

func (l List) Len() int {
	return len(l)
}

// Sort orders the list by source offset. Diagnostics at the same position
// keep their report order.
func (l List) Sort() {
	slices.SortStableFunc(l, func(a, b Diagnostic) int {
		return cmp.Compare(a.Pos.Offset, b.Pos.Offset)
	})
}

// Err returns nil for an empty list and an *Error otherwise.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return &Error{First: l[0], Count: len(l)}
}

// Error summarizes a non-empty List as a Go error.
type Error struct {
	First Diagnostic
	Count int
}

func (e *Error) Error() string {
	switch e.Count {
	case 1:
		return e.First.String()
	case 2:
		return fmt.Sprintf("%v (and 1 more error)", e.First)
	}
	return fmt.Sprintf("%v (and %d more errors)", e.First, e.Count-1)
}
