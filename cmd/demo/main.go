package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/comalice/listx/internal/builder"
	"github.com/comalice/listx/internal/core"
	"github.com/comalice/listx/internal/extensibility"
	"github.com/comalice/listx/internal/primitives"
	"github.com/comalice/listx/internal/production"
)

// randomOp picks an op that may or may not be in range for the current list.
func randomOp(rng *rand.Rand, tick int) primitives.Op[int] {
	switch rng.Intn(6) {
	case 0:
		return primitives.NewOp(primitives.InsertAtBeginning, 0, tick)
	case 1, 2:
		return primitives.NewOp(primitives.InsertAtEnd, 0, tick)
	case 3:
		return primitives.NewOp(primitives.InsertAt, rng.Intn(6), tick)
	case 4:
		return primitives.NewOp(primitives.DeleteAt, rng.Intn(6), 0)
	default:
		return primitives.Op[int]{Kind: primitives.DeleteLastNode}
	}
}

func main() {
	persister, err := production.NewJSONPersister[int](os.TempDir())
	if err != nil {
		panic(err)
	}

	publishChan := make(chan production.PublishedOp[int], 100)
	publisher := production.NewChannelPublisher[int](publishChan)

	s := core.NewSession("demo",
		core.WithPersister[int](persister),
		core.WithPublisher[int](publisher),
		core.WithVisualizer[int](&production.DefaultVisualizer[int]{}),
	)
	defer s.Close()

	seed := builder.Script[int]("demo").InsertAtEnd(10).InsertAtEnd(20).InsertAt(15, 1).MustBuild()
	if _, err := s.ApplyScript(context.Background(), seed); err != nil {
		panic(err)
	}
	fmt.Println("Seeded:", s.Values())

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	src := extensibility.NewTickerOpSource(2*time.Second, func(tick int) primitives.Op[int] {
		return randomOp(rng, tick)
	})
	defer src.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cycles := 0
	for {
		select {
		case op := <-src.Ops():
			res, err := s.Apply(ctx, op)
			fmt.Printf("\n--- Cycle %d: %s ---\n", cycles+1, op)
			if err != nil {
				fmt.Printf("Apply error: %v\n", err)
			} else {
				fmt.Printf("found=%t value=%d len=%d\n", res.Found, res.Value, res.Len)
			}
			fmt.Println("Values:", s.Values())
			fmt.Println("DOT:\n" + s.Visualize())
			// Demo publish consumption
			select {
			case pub := <-publishChan:
				fmt.Printf("Published: seq %d %s\n", pub.Metadata.Seq, pub.Op)
			default:
			}
			cycles++
			if cycles >= 12 {
				fmt.Println("Demo complete after 12 cycles.")
				return
			}
		case <-ctx.Done():
			fmt.Println("\nShutting down gracefully...")
			return
		}
	}
}
