// Package testutil provides assertions shared by the list test suites.
package testutil

import (
	"slices"
	"testing"

	"github.com/comalice/listx"
)

// CheckChain walks the list from its head and fails t unless the walk
// terminates within Len steps and visits exactly Len nodes, each once.
func CheckChain[T any](t testing.TB, l *listx.List[T]) {
	t.Helper()

	seen := make(map[*listx.Node[T]]struct{}, l.Len())
	count := 0
	for n := l.Head(); n != nil; n = n.Next() {
		if _, dup := seen[n]; dup {
			t.Fatalf("cycle: node at position %d visited twice", count)
		}
		seen[n] = struct{}{}
		count++
		if count > l.Len() {
			t.Fatalf("chain longer than Len() = %d", l.Len())
		}
	}
	if count != l.Len() {
		t.Fatalf("chain has %d nodes, Len() = %d", count, l.Len())
	}
	if (l.Head() == nil) != (l.Len() == 0) {
		t.Fatalf("head nil = %t but Len() = %d", l.Head() == nil, l.Len())
	}
}

// AssertValues checks the chain and fails t unless it holds want in order.
func AssertValues[T comparable](t testing.TB, l *listx.List[T], want ...T) {
	t.Helper()
	CheckChain(t, l)
	got := l.Values()
	if len(want) == 0 && len(got) == 0 {
		return
	}
	if !slices.Equal(got, want) {
		t.Fatalf("values = %v, want %v", got, want)
	}
}
