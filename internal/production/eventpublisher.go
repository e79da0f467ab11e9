package production

import (
	"context"
	"errors"
	"sync"

	"github.com/comalice/listx/internal/core"
	"github.com/comalice/listx/internal/primitives"
)

// ErrPublisherClosed is returned by Publish after Close.
var ErrPublisherClosed = errors.New("publisher closed")

// PublishedOp bundles an applied op with its session metadata for publishing.
type PublishedOp[T any] struct {
	Op       primitives.Op[T]
	Metadata core.Metadata
}

// ChannelPublisher forwards applied ops to a caller-owned channel.
// Publish never blocks: when the channel is full the op is dropped and
// counted. The publisher owns closing the channel.
type ChannelPublisher[T any] struct {
	mu      sync.Mutex
	ch      chan<- PublishedOp[T]
	closed  bool
	dropped uint64
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher[T any](ch chan<- PublishedOp[T]) *ChannelPublisher[T] {
	return &ChannelPublisher[T]{ch: ch}
}

func (p *ChannelPublisher[T]) Publish(ctx context.Context, op primitives.Op[T], metadata core.Metadata) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.ch <- PublishedOp[T]{Op: op, Metadata: metadata}:
	default:
		p.dropped++
	}
	return nil
}

// Dropped returns how many ops were discarded on a full channel.
func (p *ChannelPublisher[T]) Dropped() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropped
}

// Close closes the channel once. Later calls are no-ops.
func (p *ChannelPublisher[T]) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.ch)
	return nil
}
