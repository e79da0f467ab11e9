package realtime

import (
	"sort"

	"github.com/comalice/listx/internal/primitives"
)

// OpWithMeta adds sequencing metadata for deterministic ordering.
type OpWithMeta[T any] struct {
	Op          primitives.Op[T]
	SequenceNum uint64
	Priority    int
}

// sortOps orders a batch: higher priority first, then FIFO.
func sortOps[T any](ops []OpWithMeta[T]) {
	sort.SliceStable(ops, func(i, j int) bool {
		if ops[i].Priority != ops[j].Priority {
			return ops[i].Priority > ops[j].Priority
		}
		return ops[i].SequenceNum < ops[j].SequenceNum
	})
}
