// Package realtime applies list operations at fixed tick boundaries.
//
// A Runner queues submitted ops and applies them to a core.Session once per
// tick instead of as they arrive:
//   - Ops are batched and applied at tick boundaries
//   - Within a tick, higher priority ops run first
//   - Ops of equal priority run in submission order
//
// # Example Usage
//
//	s := core.NewSession[int]("frames")
//	r := realtime.NewRunner(s, realtime.Config{TickRate: 10 * time.Millisecond})
//	r.Start(ctx)
//	defer r.Stop()
//	r.Submit(primitives.NewOp(primitives.InsertAtEnd, 0, 7))
//
// Given the same sequence of Submit calls between two ticks, the list ends
// up the same regardless of which goroutines made them.
package realtime
