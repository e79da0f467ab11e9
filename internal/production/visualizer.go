// Package production provides production integrations: persistence, op publishing, visualization.
// Implements core interfaces using stdlib where possible.
package production

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/comalice/listx/internal/core"
)

// DefaultVisualizer is the stdlib-only implementation of core.Visualizer.
type DefaultVisualizer[T any] struct{}

// ExportDOT generates Graphviz DOT source for the node chain:
// head -> n0 -> n1 -> ... -> nil.
func (v *DefaultVisualizer[T]) ExportDOT(snapshot core.Snapshot[T]) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph List {
  rankdir=LR;
  node [shape=record, fontsize=10];
  edge [fontsize=9];
`)
	fmt.Fprintf(&buf, "  label=%s;\n", dotQuote(fmt.Sprintf("%s (seq %d, len %d)", snapshot.SessionID, snapshot.Seq, len(snapshot.Values))))
	buf.WriteString("  head [shape=plaintext];\n")
	buf.WriteString("  nil [shape=plaintext];\n")

	for i, val := range snapshot.Values {
		label := fmt.Sprintf("{%d|%s}", i, escapeRecord(fmt.Sprintf("%v", val)))
		fmt.Fprintf(&buf, "  n%d [label=%s];\n", i, dotQuote(label))
	}

	prev := "head"
	for i := range snapshot.Values {
		next := fmt.Sprintf("n%d", i)
		fmt.Fprintf(&buf, "  %s -> %s;\n", prev, next)
		prev = next
	}
	fmt.Fprintf(&buf, "  %s -> nil;\n", prev)

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes the snapshot to JSON.
func (v *DefaultVisualizer[T]) ExportJSON(snapshot core.Snapshot[T]) ([]byte, error) {
	return json.MarshalIndent(snapshot, "", "  ")
}

// escapeRecord escapes characters that delimit fields in DOT record labels.
func escapeRecord(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		switch r {
		case '{', '}', '|', '<', '>':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func dotQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
