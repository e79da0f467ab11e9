// Package builder offers a fluent way to assemble operation scripts in Go
// code instead of YAML.
package builder

import (
	"github.com/comalice/listx/internal/primitives"
)

// ScriptBuilder accumulates ops in call order.
type ScriptBuilder[T any] struct {
	id      string
	version string
	ops     []primitives.Op[T]
}

// Script starts a script for the session with the given ID.
func Script[T any](id string) *ScriptBuilder[T] {
	return &ScriptBuilder[T]{id: id}
}

// Version pins the script version instead of letting it be computed.
func (b *ScriptBuilder[T]) Version(v string) *ScriptBuilder[T] {
	b.version = v
	return b
}

func (b *ScriptBuilder[T]) add(kind primitives.OpKind, index int, value T) *ScriptBuilder[T] {
	b.ops = append(b.ops, primitives.NewOp(kind, index, value))
	return b
}

func (b *ScriptBuilder[T]) InsertAtBeginning(v T) *ScriptBuilder[T] {
	return b.add(primitives.InsertAtBeginning, 0, v)
}

func (b *ScriptBuilder[T]) InsertAtEnd(v T) *ScriptBuilder[T] {
	return b.add(primitives.InsertAtEnd, 0, v)
}

// InsertAt appends an insert at position index.
func (b *ScriptBuilder[T]) InsertAt(v T, index int) *ScriptBuilder[T] {
	return b.add(primitives.InsertAt, index, v)
}

func (b *ScriptBuilder[T]) GetAt(index int) *ScriptBuilder[T] {
	var zero T
	return b.add(primitives.GetAt, index, zero)
}

func (b *ScriptBuilder[T]) DeleteFirstNode() *ScriptBuilder[T] {
	var zero T
	return b.add(primitives.DeleteFirstNode, 0, zero)
}

func (b *ScriptBuilder[T]) DeleteLastNode() *ScriptBuilder[T] {
	var zero T
	return b.add(primitives.DeleteLastNode, 0, zero)
}

func (b *ScriptBuilder[T]) DeleteAt(index int) *ScriptBuilder[T] {
	var zero T
	return b.add(primitives.DeleteAt, index, zero)
}

func (b *ScriptBuilder[T]) DeleteList() *ScriptBuilder[T] {
	var zero T
	return b.add(primitives.DeleteList, 0, zero)
}

// Build validates and returns the script. The builder can keep adding ops
// afterwards without affecting the returned script.
func (b *ScriptBuilder[T]) Build() (*primitives.Script[T], error) {
	s := &primitives.Script[T]{
		Version: b.version,
		ID:      b.id,
		Ops:     append([]primitives.Op[T](nil), b.ops...),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// MustBuild is like Build but panics on an invalid script.
func (b *ScriptBuilder[T]) MustBuild() *primitives.Script[T] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
