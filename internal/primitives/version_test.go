package primitives

import (
	"strings"
	"testing"
)

func TestComputeVersion(t *testing.T) {
	s := &Script[int]{ID: "s", Ops: []Op[int]{NewOp(InsertAtEnd, 0, 1)}}

	v1 := ComputeVersion(s)
	parts := strings.SplitN(v1, "-", 2)
	if len(parts) != 2 || len(parts[0]) != 16 {
		t.Fatalf("unexpected version format %q", v1)
	}

	same := &Script[int]{ID: "s", Ops: []Op[int]{NewOp(InsertAtEnd, 0, 1)}}
	if got := strings.SplitN(ComputeVersion(same), "-", 2)[0]; got != parts[0] {
		t.Errorf("hash differs for identical scripts: %s vs %s", got, parts[0])
	}

	other := &Script[int]{ID: "s", Ops: []Op[int]{NewOp(InsertAtEnd, 0, 2)}}
	if got := strings.SplitN(ComputeVersion(other), "-", 2)[0]; got == parts[0] {
		t.Error("hash should differ for different scripts")
	}

	s.Version = "v1.2.0"
	if got := ComputeVersion(s); got != "v1.2.0" {
		t.Errorf("ComputeVersion = %q, want user version", got)
	}
}

func TestComputeVersionUnmarshalable(t *testing.T) {
	s := &Script[func()]{ID: "s", Ops: []Op[func()]{{Kind: InsertAtEnd, Value: func() {}}}}
	if got := ComputeVersion(s); !strings.HasPrefix(got, "invalid-") {
		t.Errorf("ComputeVersion = %q, want invalid- prefix", got)
	}
}
