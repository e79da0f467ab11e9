// Package extensibility provides core.OpSource implementations that feed
// operations into a Session via Run.
package extensibility

import (
	"time"

	"github.com/comalice/listx/internal/primitives"
)

// ChannelOpSource is an OpSource backed by a caller-owned Go channel.
// Closing the channel ends Session.Run.
type ChannelOpSource[T any] struct {
	ch chan primitives.Op[T]
}

// NewChannelOpSource creates a new ChannelOpSource with the given channel.
// The channel should be buffered if backpressure handling is needed.
func NewChannelOpSource[T any](ch chan primitives.Op[T]) *ChannelOpSource[T] {
	return &ChannelOpSource[T]{ch: ch}
}

// Ops returns the receive-only channel for ops.
func (s *ChannelOpSource[T]) Ops() <-chan primitives.Op[T] {
	return s.ch
}

// ScriptSource replays a script's ops in order and then closes its channel.
type ScriptSource[T any] struct {
	ch   chan primitives.Op[T]
	stop chan struct{}
}

// NewScriptSource starts replaying script. The script is not validated here;
// Session.Run rejects invalid ops individually.
func NewScriptSource[T any](script *primitives.Script[T]) *ScriptSource[T] {
	s := &ScriptSource[T]{
		ch:   make(chan primitives.Op[T]),
		stop: make(chan struct{}),
	}
	ops := append([]primitives.Op[T](nil), script.Ops...)
	go s.run(ops)
	return s
}

func (s *ScriptSource[T]) run(ops []primitives.Op[T]) {
	defer close(s.ch)
	for _, op := range ops {
		select {
		case s.ch <- op:
		case <-s.stop:
			return
		}
	}
}

// Ops returns the op channel.
func (s *ScriptSource[T]) Ops() <-chan primitives.Op[T] {
	return s.ch
}

// Stop abandons the replay and closes the channel. Call at most once.
func (s *ScriptSource[T]) Stop() {
	close(s.stop)
}

// TickerOpSource emits a generated op every tick using time.Ticker.
// Useful for demos and soak runs.
type TickerOpSource[T any] struct {
	ch     chan primitives.Op[T]
	next   func(tick int) primitives.Op[T]
	ticker *time.Ticker
	stop   chan struct{}
}

// NewTickerOpSource creates a TickerOpSource that calls next every d duration.
func NewTickerOpSource[T any](d time.Duration, next func(tick int) primitives.Op[T]) *TickerOpSource[T] {
	t := &TickerOpSource[T]{
		ch:     make(chan primitives.Op[T], 10),
		next:   next,
		ticker: time.NewTicker(d),
		stop:   make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *TickerOpSource[T]) run() {
	tick := 0
	for {
		select {
		case <-t.ticker.C:
			select {
			case t.ch <- t.next(tick):
				tick++
			default:
				// drop if full
			}
		case <-t.stop:
			t.ticker.Stop()
			close(t.ch)
			return
		}
	}
}

// Ops returns the op channel.
func (t *TickerOpSource[T]) Ops() <-chan primitives.Op[T] {
	return t.ch
}

// Stop stops the ticker and closes the channel. Call at most once.
func (t *TickerOpSource[T]) Stop() {
	close(t.stop)
}
