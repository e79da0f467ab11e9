// Package core provides the runtime tier around a list: a Session that
// serializes access to one list and applies operation records to it.
// Dependencies: listx, internal/primitives.
// Pluggable components (persistence, publishing, visualization) are declared
// here and implemented in internal/production.
//go:generate go test ./... -race

package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/comalice/listx"
	"github.com/comalice/listx/internal/primitives"
)

// Pluggable component interfaces.

type OpSource[T any] interface {
	Ops() <-chan primitives.Op[T]
}

type Persister[T any] interface {
	Save(ctx context.Context, snapshot Snapshot[T]) error
	Load(ctx context.Context, sessionID string) (Snapshot[T], error)
}

// Snapshot is the serializable copy of a session's list.
type Snapshot[T any] struct {
	SessionID string    `json:"sessionID" yaml:"sessionID"`
	Seq       uint64    `json:"seq" yaml:"seq"`
	Values    []T       `json:"values" yaml:"values"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

type Metadata struct {
	SessionID string    `json:"sessionID" yaml:"sessionID"`
	Seq       uint64    `json:"seq" yaml:"seq"`
	Len       int       `json:"len" yaml:"len"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

type Publisher[T any] interface {
	Publish(ctx context.Context, op primitives.Op[T], metadata Metadata) error
	Close() error
}

type Visualizer[T any] interface {
	ExportDOT(snapshot Snapshot[T]) string
	ExportJSON(snapshot Snapshot[T]) ([]byte, error)
}

var (
	ErrNoPersister     = errors.New("no persister configured")
	ErrSessionMismatch = errors.New("snapshot belongs to another session")
)

// Result reports the outcome of one applied operation.
//
// Found is true when a lookup hit, a delete removed a node or an insert
// linked one. A delete on an empty list is a no-op with Found false.
// Value holds the value read or removed.
type Result[T any] struct {
	Op    primitives.Op[T]
	Value T
	Found bool
	Len   int
}

// Option applies configuration to a Session via functional options pattern.
type Option[T any] func(*Session[T])

// Session owns one list and is the only way to reach it. Apply, Run and the
// accessors are safe for concurrent use; every operation runs to completion
// under the session lock, so observers never see a partial splice.
//
// Each operation that changes the list advances Seq. After a change the
// session saves a snapshot and publishes the op, when those components are
// configured. Their failures are logged and never roll back the list.
type Session[T any] struct {
	id         string
	list       *listx.List[T]
	seq        uint64
	mu         sync.Mutex
	logger     *slog.Logger
	persister  Persister[T]
	publisher  Publisher[T]
	visualizer Visualizer[T]
}

// NewSession creates a session around an empty list.
func NewSession[T any](id string, opts ...Option[T]) *Session[T] {
	s := &Session[T]{
		id:     id,
		list:   listx.New[T](),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", id)

	return s
}

// ID returns the session identifier.
func (s *Session[T]) ID() string { return s.id }

// Apply validates op and applies it to the list.
// Index errors from the list are returned wrapped and leave the list and
// sequence number unchanged.
func (s *Session[T]) Apply(ctx context.Context, op primitives.Op[T]) (Result[T], error) {
	if err := ctx.Err(); err != nil {
		return Result[T]{Op: op}, err
	}
	if err := op.Validate(); err != nil {
		return Result[T]{Op: op}, fmt.Errorf("session %s: %w", s.id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, changed, err := s.dispatch(op)
	if err != nil {
		return res, fmt.Errorf("session %s: %s: %w", s.id, op, err)
	}
	if !changed {
		return res, nil
	}

	s.seq++
	s.afterChange(ctx, op)
	return res, nil
}

// ApplyScript validates the script and applies its ops in order. It stops
// at the first failing op and returns the results gathered so far.
func (s *Session[T]) ApplyScript(ctx context.Context, script *primitives.Script[T]) ([]Result[T], error) {
	if err := script.Validate(); err != nil {
		return nil, fmt.Errorf("script %q: %w", script.ID, err)
	}

	results := make([]Result[T], 0, len(script.Ops))
	for i, op := range script.Ops {
		res, err := s.Apply(ctx, op)
		if err != nil {
			return results, fmt.Errorf("script %q op %d: %w", script.ID, i, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// Run applies ops from src until its channel closes or ctx is done.
// Rejected ops are logged and skipped.
func (s *Session[T]) Run(ctx context.Context, src OpSource[T]) error {
	ops := src.Ops()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case op, ok := <-ops:
			if !ok {
				return nil
			}
			if _, err := s.Apply(ctx, op); err != nil {
				s.logger.Warn("op rejected", "op", op.String(), "err", err)
			}
		}
	}
}

// dispatch runs op against the list. Callers hold s.mu.
func (s *Session[T]) dispatch(op primitives.Op[T]) (res Result[T], changed bool, err error) {
	res.Op = op
	switch op.Kind {
	case primitives.InsertAtBeginning:
		s.list.InsertAtBeginning(op.Value)
		res.Found, changed = true, true
	case primitives.InsertAtEnd:
		s.list.InsertAtEnd(op.Value)
		res.Found, changed = true, true
	case primitives.InsertAt:
		if _, err = s.list.InsertAt(op.Value, op.Index); err == nil {
			res.Found, changed = true, true
		}
	case primitives.GetAt:
		if n, ok := s.list.GetAt(op.Index); ok {
			res.Value, res.Found = n.Value, true
		}
	case primitives.DeleteFirstNode:
		res.Value, res.Found = s.list.DeleteFirstNode()
		changed = res.Found
	case primitives.DeleteLastNode:
		res.Value, res.Found = s.list.DeleteLastNode()
		changed = res.Found
	case primitives.DeleteAt:
		if res.Value, err = s.list.DeleteAt(op.Index); err == nil {
			res.Found, changed = true, true
		}
	case primitives.DeleteList:
		changed = !s.list.IsEmpty()
		s.list.DeleteList()
	}
	res.Len = s.list.Len()
	return res, changed, err
}

// afterChange persists and publishes the new state. Callers hold s.mu so
// snapshots are saved in sequence order.
func (s *Session[T]) afterChange(ctx context.Context, op primitives.Op[T]) {
	if s.persister == nil && s.publisher == nil {
		return
	}
	now := time.Now()

	if s.persister != nil {
		if err := s.persister.Save(ctx, s.snapshotLocked(now)); err != nil {
			s.logger.Warn("persist snapshot failed", "seq", s.seq, "err", err)
		}
	}
	if s.publisher != nil {
		md := Metadata{
			SessionID: s.id,
			Seq:       s.seq,
			Len:       s.list.Len(),
			Timestamp: now,
		}
		if err := s.publisher.Publish(ctx, op, md); err != nil {
			s.logger.Warn("publish op failed", "seq", s.seq, "op", op.String(), "err", err)
		}
	}
}

func (s *Session[T]) snapshotLocked(now time.Time) Snapshot[T] {
	return Snapshot[T]{
		SessionID: s.id,
		Seq:       s.seq,
		Values:    s.list.Values(),
		Timestamp: now,
	}
}

// Values returns a copy of the list's values, head first.
func (s *Session[T]) Values() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.Values()
}

// Len returns the number of values in the list.
func (s *Session[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.Len()
}

// Seq returns the number of changes applied so far.
func (s *Session[T]) Seq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// Snapshot returns a serializable copy of the session state.
func (s *Session[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(time.Now())
}

// Restore replaces the list with the snapshot's values and adopts its
// sequence number.
func (s *Session[T]) Restore(snapshot Snapshot[T]) error {
	if snapshot.SessionID != s.id {
		return fmt.Errorf("%w: have %q, snapshot %q", ErrSessionMismatch, s.id, snapshot.SessionID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.list.DeleteList()
	s.list.Append(snapshot.Values...)
	s.seq = snapshot.Seq
	return nil
}

// Resume loads the last saved snapshot from the configured persister and
// restores it.
func (s *Session[T]) Resume(ctx context.Context) error {
	if s.persister == nil {
		return ErrNoPersister
	}
	snapshot, err := s.persister.Load(ctx, s.id)
	if err != nil {
		return fmt.Errorf("resume %s: %w", s.id, err)
	}
	return s.Restore(snapshot)
}

// Visualize returns the Graphviz DOT rendering of the current list.
func (s *Session[T]) Visualize() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.visualizer == nil {
		return "ERROR: No visualizer configured. Use WithVisualizer(&production.DefaultVisualizer[T]{})"
	}
	return s.visualizer.ExportDOT(s.snapshotLocked(time.Now()))
}

// Close closes the publisher, if any.
func (s *Session[T]) Close() error {
	if s.publisher == nil {
		return nil
	}
	return s.publisher.Close()
}
