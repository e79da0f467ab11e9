package listx

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned by position-addressed mutations given an
// index outside the valid range. The list is never modified in that case.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError describes a rejected index. It unwraps to ErrIndexOutOfRange.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range for length %d", e.Op, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

func indexError(op string, index, length int) error {
	return &IndexError{Op: op, Index: index, Len: length}
}
