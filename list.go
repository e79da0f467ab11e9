package listx

import (
	"fmt"
	"strings"
)

// Node is a single storage cell of a List. Value may be read and
// overwritten freely; the link to the next node is owned by the List.
type Node[T any] struct {
	Value T
	next  *Node[T]
}

// Next returns the following node, or nil at the tail.
func (n *Node[T]) Next() *Node[T] {
	return n.next
}

// List is a singly linked list addressed by zero-based position.
//
// Only List methods relink nodes, so every node has exactly one owner
// (head or a predecessor) and the chain cannot form a cycle.
// A List is not safe for concurrent use.
type List[T any] struct {
	head   *Node[T]
	length int
}

// New creates an empty list.
func New[T any]() *List[T] {
	return &List[T]{}
}

// Of creates a list holding values in order.
func Of[T any](values ...T) *List[T] {
	l := New[T]()
	l.Append(values...)
	return l
}

// Len returns the number of nodes in the list.
func (l *List[T]) Len() int { return l.length }

// IsEmpty reports whether the list has no nodes.
func (l *List[T]) IsEmpty() bool { return l.head == nil }

// Head returns the first node, or nil for an empty list.
func (l *List[T]) Head() *Node[T] { return l.head }

// State returns the list's macro-state.
func (l *List[T]) State() State {
	if l.head == nil {
		return Empty
	}
	return NonEmpty
}

// InsertAtBeginning makes a new node holding v the head of the list.
func (l *List[T]) InsertAtBeginning(v T) *Node[T] {
	n := &Node[T]{Value: v, next: l.head}
	l.head = n
	l.length++
	return n
}

// InsertAtEnd appends a new node holding v after the current tail.
func (l *List[T]) InsertAtEnd(v T) *Node[T] {
	n := &Node[T]{Value: v}
	if l.head == nil {
		l.head = n
		l.length++
		return n
	}
	tail := l.head
	for tail.next != nil {
		tail = tail.next
	}
	tail.next = n
	l.length++
	return n
}

// Append inserts values at the end of the list, in order, walking to the
// tail only once.
func (l *List[T]) Append(values ...T) {
	if len(values) == 0 {
		return
	}
	var tail *Node[T]
	for n := l.head; n != nil; n = n.next {
		tail = n
	}
	for _, v := range values {
		n := &Node[T]{Value: v}
		if tail == nil {
			l.head = n
		} else {
			tail.next = n
		}
		tail = n
		l.length++
	}
}

// GetAt returns the node at index. It returns nil, false when index is
// negative or not less than Len.
func (l *List[T]) GetAt(index int) (*Node[T], bool) {
	if index < 0 || index >= l.length {
		return nil, false
	}
	n := l.head
	for i := 0; i < index; i++ {
		n = n.next
	}
	return n, true
}

// InsertAt inserts v so that it becomes the element at index, shifting
// later elements back by one. Valid indices are 0 through Len inclusive.
// On an invalid index the list is left untouched and the returned error
// matches ErrIndexOutOfRange.
func (l *List[T]) InsertAt(v T, index int) (*Node[T], error) {
	if index < 0 || index > l.length {
		return nil, indexError("insertAt", index, l.length)
	}
	if index == 0 {
		return l.InsertAtBeginning(v), nil
	}
	prev, _ := l.GetAt(index - 1)
	n := &Node[T]{Value: v, next: prev.next}
	prev.next = n
	l.length++
	return n, nil
}

// DeleteFirstNode unlinks the head and returns its value. The boolean is
// false, and nothing changes, when the list is empty.
func (l *List[T]) DeleteFirstNode() (T, bool) {
	var zero T
	if l.head == nil {
		return zero, false
	}
	n := l.head
	l.head = n.next
	n.next = nil
	l.length--
	return n.Value, true
}

// DeleteLastNode unlinks the tail and returns its value. The boolean is
// false, and nothing changes, when the list is empty.
func (l *List[T]) DeleteLastNode() (T, bool) {
	var zero T
	if l.head == nil {
		return zero, false
	}
	if l.head.next == nil {
		n := l.head
		l.head = nil
		l.length = 0
		return n.Value, true
	}
	prev, tail := l.head, l.head.next
	for tail.next != nil {
		prev, tail = tail, tail.next
	}
	prev.next = nil
	l.length--
	return tail.Value, true
}

// DeleteAt unlinks the node at index and returns its value. Valid indices
// are 0 through Len-1. On an invalid index the list is left untouched and
// the returned error matches ErrIndexOutOfRange.
func (l *List[T]) DeleteAt(index int) (T, error) {
	var zero T
	if index < 0 || index >= l.length {
		return zero, indexError("deleteAt", index, l.length)
	}
	if index == 0 {
		v, _ := l.DeleteFirstNode()
		return v, nil
	}
	prev, _ := l.GetAt(index - 1)
	n := prev.next
	prev.next = n.next
	n.next = nil
	l.length--
	return n.Value, nil
}

// DeleteList unlinks every node. Nodes are popped one at a time so that
// arbitrarily long chains are released without recursion.
func (l *List[T]) DeleteList() {
	for l.head != nil {
		n := l.head
		l.head = n.next
		n.next = nil
	}
	l.length = 0
}

// Clone returns a new list holding the same values in the same order.
// Nodes are never shared between the two lists.
func (l *List[T]) Clone() *List[T] {
	dst := New[T]()
	var tail *Node[T]
	for n := l.head; n != nil; n = n.next {
		c := &Node[T]{Value: n.Value}
		if tail == nil {
			dst.head = c
		} else {
			tail.next = c
		}
		tail = c
	}
	dst.length = l.length
	return dst
}

// Take moves src's chain into l. l's previous nodes are released and
// src is left empty.
func (l *List[T]) Take(src *List[T]) {
	if src == l {
		return
	}
	l.DeleteList()
	l.head, l.length = src.head, src.length
	src.head, src.length = nil, 0
}

// String renders the list as [v0 v1 ...].
func (l *List[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for n := l.head; n != nil; n = n.next {
		if n != l.head {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%v", n.Value)
	}
	b.WriteByte(']')
	return b.String()
}
