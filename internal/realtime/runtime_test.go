package realtime

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/comalice/listx/internal/core"
	"github.com/comalice/listx/internal/primitives"
)

func op(kind primitives.OpKind, index, value int) primitives.Op[int] {
	return primitives.NewOp(kind, index, value)
}

func TestRunnerDefaults(t *testing.T) {
	r := NewRunner(core.NewSession[int]("d"), Config{})
	if r.tickRate != 16667*time.Microsecond {
		t.Errorf("tickRate = %v", r.tickRate)
	}
	if cap(r.batch) != 1000 {
		t.Errorf("queue capacity = %d", cap(r.batch))
	}
}

func TestTickOrdersByPriorityThenSubmission(t *testing.T) {
	s := core.NewSession[int]("order")
	r := NewRunner(s, Config{})

	_ = r.Submit(op(primitives.InsertAtEnd, 0, 1))
	_ = r.Submit(op(primitives.InsertAtEnd, 0, 2))
	_ = r.SubmitWithPriority(op(primitives.InsertAtEnd, 0, 9), 5)
	_ = r.Submit(op(primitives.InsertAtEnd, 0, 3))

	if r.Pending() != 4 {
		t.Fatalf("Pending() = %d, want 4", r.Pending())
	}
	results := r.Tick(context.Background())
	if len(results) != 4 {
		t.Fatalf("got %d results", len(results))
	}
	if got := s.Values(); !slices.Equal(got, []int{9, 1, 2, 3}) {
		t.Errorf("Values() = %v, want [9 1 2 3]", got)
	}
	if r.Pending() != 0 || r.TickNumber() != 1 {
		t.Errorf("Pending() = %d, TickNumber() = %d", r.Pending(), r.TickNumber())
	}
}

func TestTickSkipsRejectedOps(t *testing.T) {
	var buf bytes.Buffer
	s := core.NewSession[int]("rej")
	r := NewRunner(s, Config{Logger: slog.New(slog.NewTextHandler(&buf, nil))})

	_ = r.Submit(op(primitives.InsertAtEnd, 0, 1))
	_ = r.Submit(op(primitives.DeleteAt, 5, 0))
	_ = r.Submit(op(primitives.InsertAt, 1, 2))

	results := r.Tick(context.Background())
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if got := s.Values(); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("Values() = %v", got)
	}
	if !strings.Contains(buf.String(), "op rejected") {
		t.Errorf("missing log line: %s", buf.String())
	}
}

func TestSubmitQueueFull(t *testing.T) {
	r := NewRunner(core.NewSession[int]("full"), Config{MaxOpsPerTick: 2})
	for i := 0; i < 2; i++ {
		if err := r.Submit(op(primitives.InsertAtBeginning, 0, i)); err != nil {
			t.Fatal(err)
		}
	}
	if err := r.Submit(op(primitives.InsertAtBeginning, 0, 3)); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("err = %v, want ErrQueueFull", err)
	}
	r.Tick(context.Background())
	if err := r.Submit(op(primitives.InsertAtBeginning, 0, 3)); err != nil {
		t.Fatalf("queue not drained: %v", err)
	}
}

func TestRunnerTickLoop(t *testing.T) {
	s := core.NewSession[int]("loop")
	r := NewRunner(s, Config{TickRate: 5 * time.Millisecond})

	if err := r.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := r.Start(context.Background()); !errors.Is(err, ErrStarted) {
		t.Errorf("second Start err = %v", err)
	}
	_ = r.Submit(op(primitives.InsertAtEnd, 0, 1))
	_ = r.Submit(op(primitives.InsertAtEnd, 0, 2))

	deadline := time.Now().Add(2 * time.Second)
	for s.Len() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	r.Stop()
	r.Stop()

	if got := s.Values(); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("Values() = %v", got)
	}
	if r.TickNumber() == 0 {
		t.Error("no ticks recorded")
	}
}

func TestStopWithoutStart(t *testing.T) {
	r := NewRunner(core.NewSession[int]("idle"), Config{})
	r.Stop()
}

// panicOncePersister panics on the first Save and accepts later ones.
type panicOncePersister struct {
	saves int
}

func (p *panicOncePersister) Save(ctx context.Context, snapshot core.Snapshot[int]) error {
	p.saves++
	if p.saves == 1 {
		panic("disk on fire")
	}
	return nil
}

func (p *panicOncePersister) Load(ctx context.Context, id string) (core.Snapshot[int], error) {
	return core.Snapshot[int]{}, errors.New("not implemented")
}

func TestTickRecoversPanic(t *testing.T) {
	var buf bytes.Buffer
	p := &panicOncePersister{}
	s := core.NewSession("panic", core.WithPersister[int](p))
	r := NewRunner(s, Config{Logger: slog.New(slog.NewTextHandler(&buf, nil))})

	for i := 1; i <= 3; i++ {
		_ = r.Submit(op(primitives.InsertAtEnd, 0, i))
	}
	results := r.Tick(context.Background())
	if len(results) != 0 {
		t.Errorf("got %d results from panicking tick", len(results))
	}
	if r.TickNumber() != 1 {
		t.Errorf("TickNumber() = %d, want 1", r.TickNumber())
	}
	if !strings.Contains(buf.String(), "tick panicked") || !strings.Contains(buf.String(), "dropped=3") {
		t.Errorf("missing panic log: %s", buf.String())
	}

	// The session lock was released and later ticks run normally.
	_ = r.Submit(op(primitives.InsertAtEnd, 0, 4))
	if got := r.Tick(context.Background()); len(got) != 1 {
		t.Fatalf("got %d results after recovery", len(got))
	}
	if got := s.Values(); !slices.Equal(got, []int{1, 4}) {
		t.Errorf("Values() = %v, want [1 4]", got)
	}
	if r.TickNumber() != 2 || r.Pending() != 0 {
		t.Errorf("TickNumber() = %d, Pending() = %d", r.TickNumber(), r.Pending())
	}
}
