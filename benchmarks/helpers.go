// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/comalice/listx"
	"github.com/comalice/listx/internal/core"
	"github.com/comalice/listx/internal/primitives"
)

// GenList creates a list holding 0..n-1.
func GenList(n int) *listx.List[int] {
	l := listx.New[int]()
	for i := n - 1; i >= 0; i-- {
		l.InsertAtBeginning(i)
	}
	return l
}

// GenScript creates a script of n ops that cycles through every op kind
// while keeping all indices in range.
func GenScript(n int) *primitives.Script[int] {
	if n < 1 {
		n = 1
	}
	script := &primitives.Script[int]{
		ID:  fmt.Sprintf("mixed_%d", n),
		Ops: make([]primitives.Op[int], 0, n),
	}
	length := 0
	for i := 0; i < n; i++ {
		var op primitives.Op[int]
		switch {
		case length < 2 || i%5 == 0:
			op = primitives.NewOp(primitives.InsertAtEnd, 0, i)
			length++
		case i%5 == 1:
			op = primitives.NewOp(primitives.InsertAt, length/2, i)
			length++
		case i%5 == 2:
			op = primitives.NewOp(primitives.GetAt, length/2, 0)
		case i%5 == 3:
			op = primitives.NewOp(primitives.DeleteAt, length/2, 0)
			length--
		default:
			op = primitives.NewOp(primitives.InsertAtBeginning, 0, i)
			length++
		}
		script.Ops = append(script.Ops, op)
	}
	return script
}

// GenSnapshotYAML generates YAML bytes for a snapshot of a session holding n values.
func GenSnapshotYAML(n int) []byte {
	s := core.NewSession("bench", core.WithList(GenList(n)))
	// Apply one op so the snapshot carries a sequence number.
	if _, err := s.Apply(context.Background(), primitives.NewOp(primitives.InsertAtEnd, 0, n)); err != nil {
		panic(err)
	}
	data, err := yaml.Marshal(s.Snapshot())
	if err != nil {
		panic(err)
	}
	return data
}
