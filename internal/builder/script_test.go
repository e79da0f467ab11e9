package builder

import (
	"context"
	"slices"
	"testing"

	"github.com/comalice/listx/internal/core"
	"github.com/comalice/listx/internal/primitives"
)

func TestScriptBuilder(t *testing.T) {
	s, err := Script[int]("b").
		InsertAtEnd(1).
		InsertAtEnd(2).
		InsertAtEnd(3).
		InsertAt(99, 1).
		GetAt(1).
		DeleteAt(1).
		DeleteFirstNode().
		DeleteLastNode().
		Build()
	if err != nil {
		t.Fatal(err)
	}
	if s.ID != "b" || len(s.Ops) != 8 {
		t.Fatalf("script = %+v", s)
	}
	if s.Ops[3] != primitives.NewOp(primitives.InsertAt, 1, 99) {
		t.Errorf("ops[3] = %v", s.Ops[3])
	}

	sess := core.NewSession[int]("b")
	results, err := sess.ApplyScript(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}
	if results[4].Value != 99 || !results[4].Found {
		t.Errorf("getAt result = %+v", results[4])
	}
	if got := sess.Values(); !slices.Equal(got, []int{2}) {
		t.Errorf("Values() = %v, want [2]", got)
	}
}

func TestScriptBuilderEmpty(t *testing.T) {
	if _, err := Script[string]("empty").Build(); err == nil {
		t.Fatal("expected error for script without ops")
	}
	if _, err := Script[string]("").DeleteList().Build(); err == nil {
		t.Fatal("expected error for script without ID")
	}
}

func TestScriptBuilderBuildCopiesOps(t *testing.T) {
	b := Script[int]("c").Version("v1").InsertAtBeginning(1)
	first := b.MustBuild()
	b.DeleteList()
	if len(first.Ops) != 1 || first.Version != "v1" {
		t.Errorf("first script changed: %+v", first)
	}
	if got := primitives.ComputeVersion(first); got != "v1" {
		t.Errorf("ComputeVersion = %q", got)
	}
}

func TestMustBuildPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("MustBuild did not panic")
		}
	}()
	Script[int]("").MustBuild()
}
