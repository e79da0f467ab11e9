package realtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/comalice/listx/internal/core"
	"github.com/comalice/listx/internal/primitives"
)

var (
	ErrQueueFull = errors.New("op queue full")
	ErrStarted   = errors.New("runner already started")
)

// Config configures a Runner.
type Config struct {
	TickRate      time.Duration // default 16.67ms
	MaxOpsPerTick int           // queue capacity, default 1000
	Logger        *slog.Logger  // default slog.Default()
}

// Runner applies queued ops to a session once per tick.
type Runner[T any] struct {
	session  *core.Session[T]
	tickRate time.Duration
	logger   *slog.Logger

	batch       []OpWithMeta[T]
	batchMu     sync.Mutex
	sequenceNum uint64
	tickNum     uint64

	cancel  context.CancelFunc
	stopped chan struct{}
}

// NewRunner wraps s. The session stays usable directly; ops applied
// through it bypass the tick queue.
func NewRunner[T any](s *core.Session[T], cfg Config) *Runner[T] {
	if cfg.MaxOpsPerTick <= 0 {
		cfg.MaxOpsPerTick = 1000
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 16667 * time.Microsecond
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Runner[T]{
		session:  s,
		tickRate: cfg.TickRate,
		logger:   cfg.Logger.With("session", s.ID(), "runner", "realtime"),
		batch:    make([]OpWithMeta[T], 0, cfg.MaxOpsPerTick),
	}
}

// Start begins the tick loop. It stops when ctx is done or Stop is called.
func (r *Runner[T]) Start(ctx context.Context) error {
	r.batchMu.Lock()
	defer r.batchMu.Unlock()
	if r.stopped != nil {
		return ErrStarted
	}

	tickCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.stopped = make(chan struct{})
	go r.tickLoop(tickCtx, r.stopped)
	return nil
}

// Stop ends the tick loop and waits for it to exit. Ops still queued stay
// queued and can be drained with Tick.
func (r *Runner[T]) Stop() {
	r.batchMu.Lock()
	cancel, stopped := r.cancel, r.stopped
	r.batchMu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-stopped
}

func (r *Runner[T]) tickLoop(ctx context.Context, stopped chan struct{}) {
	defer close(stopped)
	ticker := time.NewTicker(r.tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Tick(ctx)
		}
	}
}

// Submit queues op for the next tick.
func (r *Runner[T]) Submit(op primitives.Op[T]) error {
	return r.SubmitWithPriority(op, 0)
}

// SubmitWithPriority queues op; higher priorities run earlier in the tick.
func (r *Runner[T]) SubmitWithPriority(op primitives.Op[T], priority int) error {
	r.batchMu.Lock()
	defer r.batchMu.Unlock()

	if len(r.batch) >= cap(r.batch) {
		return ErrQueueFull
	}
	r.batch = append(r.batch, OpWithMeta[T]{
		Op:          op,
		SequenceNum: r.sequenceNum,
		Priority:    priority,
	})
	r.sequenceNum++
	return nil
}

// Tick applies every queued op in order and returns their results. Rejected
// ops are logged and left out of the results. A panic while applying is
// recovered and logged with the number of ops of the batch that were lost;
// the tick still counts.
func (r *Runner[T]) Tick(ctx context.Context) (results []core.Result[T]) {
	ops := r.collect()
	sortOps(ops)

	done := 0
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("tick panicked", "panic", p, "dropped", len(ops)-done)
		}
		r.batchMu.Lock()
		r.tickNum++
		r.batchMu.Unlock()
	}()

	results = make([]core.Result[T], 0, len(ops))
	for _, m := range ops {
		res, err := r.session.Apply(ctx, m.Op)
		done++
		if err != nil {
			r.logger.Warn("op rejected", "op", m.Op.String(), "seq", m.SequenceNum, "err", err)
			continue
		}
		results = append(results, res)
	}
	return results
}

func (r *Runner[T]) collect() []OpWithMeta[T] {
	r.batchMu.Lock()
	defer r.batchMu.Unlock()

	ops := r.batch
	r.batch = make([]OpWithMeta[T], 0, cap(r.batch))
	return ops
}

// TickNumber returns the number of completed ticks.
func (r *Runner[T]) TickNumber() uint64 {
	r.batchMu.Lock()
	defer r.batchMu.Unlock()
	return r.tickNum
}

// Pending returns the number of queued ops.
func (r *Runner[T]) Pending() int {
	r.batchMu.Lock()
	defer r.batchMu.Unlock()
	return len(r.batch)
}
