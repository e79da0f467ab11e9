// Op is the immutable record of one list operation.
//
// Ops are value types. Once created they should not be mutated; a Session
// applies the same Op the same way every time, so recorded scripts replay
// deterministically.
//
// Example:
//
//	op := NewOp(InsertAt, 1, 99)

package primitives

import (
	"errors"
	"fmt"
)

// OpKind names a list operation.
type OpKind string

const (
	InsertAtBeginning OpKind = "insertAtBeginning"
	InsertAtEnd       OpKind = "insertAtEnd"
	InsertAt          OpKind = "insertAt"
	GetAt             OpKind = "getAt"
	DeleteFirstNode   OpKind = "deleteFirstNode"
	DeleteLastNode    OpKind = "deleteLastNode"
	DeleteAt          OpKind = "deleteAt"
	DeleteList        OpKind = "deleteList"
)

var (
	ErrUnknownOp       = errors.New("unknown operation")
	ErrUnexpectedIndex = errors.New("operation takes no index")
)

var kinds = map[OpKind]struct{ indexed, valued bool }{
	InsertAtBeginning: {false, true},
	InsertAtEnd:       {false, true},
	InsertAt:          {true, true},
	GetAt:             {true, false},
	DeleteFirstNode:   {false, false},
	DeleteLastNode:    {false, false},
	DeleteAt:          {true, false},
	DeleteList:        {false, false},
}

// Valid reports whether k names a known operation.
func (k OpKind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// Indexed reports whether k is addressed by position.
func (k OpKind) Indexed() bool { return kinds[k].indexed }

// TakesValue reports whether k inserts a value.
func (k OpKind) TakesValue() bool { return kinds[k].valued }

// Mutates reports whether k can change the list.
func (k OpKind) Mutates() bool { return k.Valid() && k != GetAt }

// Op is a single operation against a list of T.
type Op[T any] struct {
	Kind  OpKind `json:"op" yaml:"op"`
	Index int    `json:"index,omitempty" yaml:"index,omitempty"`
	Value T      `json:"value,omitempty" yaml:"value,omitempty"`
}

// NewOp creates and returns a new Op.
func NewOp[T any](kind OpKind, index int, value T) Op[T] {
	return Op[T]{Kind: kind, Index: index, Value: value}
}

// Validate checks that the operation is known and that only positional
// operations carry an index. Index bounds are the list's concern.
func (o Op[T]) Validate() error {
	if !o.Kind.Valid() {
		return fmt.Errorf("%w %q", ErrUnknownOp, o.Kind)
	}
	if !o.Kind.Indexed() && o.Index != 0 {
		return fmt.Errorf("%s: %w (got %d)", o.Kind, ErrUnexpectedIndex, o.Index)
	}
	return nil
}

func (o Op[T]) String() string {
	switch {
	case o.Kind.Indexed() && o.Kind.TakesValue():
		return fmt.Sprintf("%s(%v, %d)", o.Kind, o.Value, o.Index)
	case o.Kind.Indexed():
		return fmt.Sprintf("%s(%d)", o.Kind, o.Index)
	case o.Kind.TakesValue():
		return fmt.Sprintf("%s(%v)", o.Kind, o.Value)
	default:
		return fmt.Sprintf("%s()", o.Kind)
	}
}
