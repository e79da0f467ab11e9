package primitives

import (
	"errors"
	"testing"
)

func TestNewOp(t *testing.T) {
	op := NewOp(InsertAt, 1, 99)
	if op.Kind != InsertAt || op.Index != 1 || op.Value != 99 {
		t.Errorf("got %+v", op)
	}
}

func TestOpImmutability(t *testing.T) {
	op := NewOp(InsertAtEnd, 0, "x")
	cp := op
	cp.Kind = DeleteList
	cp.Value = "changed"
	if op.Kind != InsertAtEnd || op.Value != "x" {
		t.Error("original op was mutated")
	}
}

func TestOpValidate(t *testing.T) {
	tests := []struct {
		name    string
		op      Op[int]
		wantErr error
	}{
		{name: "insertAtBeginning", op: NewOp(InsertAtBeginning, 0, 1)},
		{name: "insertAt negative index is list's concern", op: NewOp(InsertAt, -3, 1)},
		{name: "getAt", op: NewOp(GetAt, 7, 0)},
		{name: "deleteList", op: Op[int]{Kind: DeleteList}},
		{name: "unknown kind", op: Op[int]{Kind: "pop"}, wantErr: ErrUnknownOp},
		{name: "empty kind", op: Op[int]{}, wantErr: ErrUnknownOp},
		{name: "index on non-positional op", op: NewOp(DeleteFirstNode, 2, 0), wantErr: ErrUnexpectedIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestOpKindProperties(t *testing.T) {
	if !InsertAt.Indexed() || !InsertAt.TakesValue() || !InsertAt.Mutates() {
		t.Error("insertAt should be indexed, valued and mutating")
	}
	if !GetAt.Indexed() || GetAt.TakesValue() || GetAt.Mutates() {
		t.Error("getAt should be indexed, valueless and read-only")
	}
	if DeleteList.Indexed() || DeleteList.TakesValue() || !DeleteList.Mutates() {
		t.Error("deleteList should be unindexed, valueless and mutating")
	}
	if OpKind("bogus").Mutates() {
		t.Error("unknown kind should not mutate")
	}
}

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op[int]
		want string
	}{
		{NewOp(InsertAt, 1, 99), "insertAt(99, 1)"},
		{NewOp(DeleteAt, 2, 0), "deleteAt(2)"},
		{NewOp(InsertAtEnd, 0, 5), "insertAtEnd(5)"},
		{Op[int]{Kind: DeleteLastNode}, "deleteLastNode()"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
