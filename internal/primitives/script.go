// Script is the top-level, file-loadable description of a sequence of
// operations to apply to one list session.

package primitives

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalidID is returned for IDs that cannot name a snapshot file.
var ErrInvalidID = errors.New("invalid ID")

// ValidateID reports whether id is usable as a single file name component:
// non-empty, no path separators, and not "." or "..".
func ValidateID(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("%w: empty", ErrInvalidID)
	case id == "." || id == "..",
		strings.ContainsAny(id, `/\`),
		filepath.Base(id) != id:
		return fmt.Errorf("%w %q", ErrInvalidID, id)
	}
	return nil
}

// Script defines an ordered batch of operations for one session.
type Script[T any] struct {
	Version string  `json:"version,omitempty" yaml:"version,omitempty"`
	ID      string  `json:"id" yaml:"id"`
	Ops     []Op[T] `json:"ops" yaml:"ops"`
}

// Validate validates the script:
// - ID is a valid file name component (see ValidateID)
// - At least one op
// - Every op validates
func (s *Script[T]) Validate() error {
	if s.ID == "" {
		return errors.New("script ID is required")
	}
	if err := ValidateID(s.ID); err != nil {
		return err
	}
	if len(s.Ops) == 0 {
		return errors.New("ops are required and cannot be empty")
	}
	for i, op := range s.Ops {
		if err := op.Validate(); err != nil {
			return fmt.Errorf("op %d: %w", i, err)
		}
	}
	return nil
}
