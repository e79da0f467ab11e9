// Package core provides the runtime tier around a list.
// Options for configuring Session instances.
package core

import (
	"log/slog"

	"github.com/comalice/listx"
)

// WithPersister configures the Session with a Persister.
func WithPersister[T any](p Persister[T]) Option[T] {
	return func(s *Session[T]) {
		s.persister = p
	}
}

// WithPublisher configures the Session with a Publisher.
func WithPublisher[T any](pb Publisher[T]) Option[T] {
	return func(s *Session[T]) {
		s.publisher = pb
	}
}

// WithVisualizer configures the Session with a Visualizer.
func WithVisualizer[T any](v Visualizer[T]) Option[T] {
	return func(s *Session[T]) {
		s.visualizer = v
	}
}

// WithLogger sets the logger used for persist and publish failures.
func WithLogger[T any](l *slog.Logger) Option[T] {
	return func(s *Session[T]) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithList hands an existing list to the Session. The session takes its
// nodes and l is left empty.
func WithList[T any](l *listx.List[T]) Option[T] {
	return func(s *Session[T]) {
		s.list.Take(l)
	}
}
