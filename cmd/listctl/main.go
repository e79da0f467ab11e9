// Command listctl applies a YAML or JSON script of list operations to a
// session and prints each result.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/comalice/listx/internal/core"
	"github.com/comalice/listx/internal/primitives"
	"github.com/comalice/listx/internal/production"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("listctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: listctl -script FILE [-persist DIR] [-format yaml|json] [-resume] [-dot]\n")
		fmt.Fprintf(stderr, "  -script FILE   operation script (.yaml, .yml or .json)\n")
		fmt.Fprintf(stderr, "  -persist DIR   save a snapshot after every change\n")
		fmt.Fprintf(stderr, "  -format FMT    snapshot format: yaml or json (default yaml)\n")
		fmt.Fprintf(stderr, "  -resume        start from the last snapshot in -persist\n")
		fmt.Fprintf(stderr, "  -dot           print the final list as Graphviz DOT\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  listctl -script examples/scripts/scenarios.yaml\n")
		fmt.Fprintf(stderr, "  listctl -script ops.json -persist ./state -format json -resume\n")
	}
	scriptPath := fs.String("script", "", "operation script file")
	persistDir := fs.String("persist", "", "snapshot directory")
	format := fs.String("format", "yaml", "snapshot format (yaml|json)")
	resume := fs.Bool("resume", false, "restore the last snapshot before applying")
	dot := fs.Bool("dot", false, "print Graphviz DOT of the final list")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *scriptPath == "" || fs.NArg() > 0 {
		fs.Usage()
		return 2
	}
	if *resume && *persistDir == "" {
		fmt.Fprintln(stderr, "-resume requires -persist")
		return 2
	}

	script, err := loadScript(*scriptPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load script: %v\n", err)
		return 1
	}
	if err := script.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid script %s: %v\n", *scriptPath, err)
		return 1
	}

	opts := []core.Option[any]{
		core.WithVisualizer[any](&production.DefaultVisualizer[any]{}),
		core.WithLogger[any](slog.New(slog.NewTextHandler(stderr, nil))),
	}
	var p core.Persister[any]
	if *persistDir != "" {
		if p, err = newPersister(*format, *persistDir); err != nil {
			fmt.Fprintf(stderr, "Failed to open snapshot store: %v\n", err)
			return 1
		}
		opts = append(opts, core.WithPersister[any](p))
	}
	s := core.NewSession(script.ID, opts...)

	ctx := context.Background()
	if *resume {
		if err := resumeSession(ctx, s, p); err != nil {
			fmt.Fprintf(stderr, "Failed to resume %s: %v\n", script.ID, err)
			return 1
		}
	}

	fmt.Fprintf(stdout, "script %s version %s\n", script.ID, primitives.ComputeVersion(script))
	for i, op := range script.Ops {
		res, err := s.Apply(ctx, op)
		if err != nil {
			fmt.Fprintf(stderr, "op %d: %v\n", i, err)
			return 1
		}
		printResult(stdout, i, res)
	}
	fmt.Fprintf(stdout, "result %v len=%d\n", s.Values(), s.Len())
	if *dot {
		fmt.Fprint(stdout, s.Visualize())
	}
	return 0
}

func loadScript(path string) (*primitives.Script[any], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var script primitives.Script[any]
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &script); err != nil {
			return nil, fmt.Errorf("json unmarshal: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &script); err != nil {
			return nil, fmt.Errorf("yaml unmarshal: %w", err)
		}
	}
	for i := range script.Ops {
		script.Ops[i].Value = normalizeValue(script.Ops[i].Value)
	}
	return &script, nil
}

// resumeSession restores the last snapshot of s from p. A missing snapshot
// means a fresh start.
func resumeSession(ctx context.Context, s *core.Session[any], p core.Persister[any]) error {
	snapshot, err := p.Load(ctx, s.ID())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	for i, v := range snapshot.Values {
		snapshot.Values[i] = normalizeValue(v)
	}
	return s.Restore(snapshot)
}

// normalizeValue maps whole-number float64 values, as encoding/json decodes
// every number, to int as yaml.v3 decodes them. Values from either format
// then compare equal in one list.
func normalizeValue(v any) any {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return v
	}
	return int(f)
}

func newPersister(format, dir string) (core.Persister[any], error) {
	switch format {
	case "yaml":
		return production.NewYAMLPersister[any](dir)
	case "json":
		return production.NewJSONPersister[any](dir)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func printResult(w io.Writer, i int, res core.Result[any]) {
	switch res.Op.Kind {
	case primitives.GetAt, primitives.DeleteFirstNode, primitives.DeleteLastNode, primitives.DeleteAt:
		if !res.Found {
			fmt.Fprintf(w, "op %d %s: not found len=%d\n", i, res.Op, res.Len)
			return
		}
		fmt.Fprintf(w, "op %d %s: %v len=%d\n", i, res.Op, res.Value, res.Len)
	default:
		fmt.Fprintf(w, "op %d %s: ok len=%d\n", i, res.Op, res.Len)
	}
}
