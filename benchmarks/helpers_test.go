package benchmarks

import (
	"context"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/comalice/listx/internal/core"
)

func TestGenScriptStaysInRange(t *testing.T) {
	script := GenScript(500)
	if err := script.Validate(); err != nil {
		t.Fatal(err)
	}
	s := core.NewSession[int]("gen")
	if _, err := s.ApplyScript(context.Background(), script); err != nil {
		t.Fatalf("generated script failed: %v", err)
	}
}

func TestGenSnapshotYAML(t *testing.T) {
	var snap core.Snapshot[int]
	if err := yaml.Unmarshal(GenSnapshotYAML(10), &snap); err != nil {
		t.Fatal(err)
	}
	if len(snap.Values) != 11 || snap.Seq != 1 || snap.Values[10] != 10 {
		t.Errorf("snapshot = %+v", snap)
	}
}
