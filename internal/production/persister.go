// Package production provides production integrations: persistence, op publishing, visualization.
// Implements core interfaces using stdlib where possible.

package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/comalice/listx/internal/core"
	"github.com/comalice/listx/internal/primitives"
)

// JSONPersister is a stdlib-only file-based persister using JSON serialization.
type JSONPersister[T any] struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister[T any](dir string) (*JSONPersister[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister[T]{dir: dir}, nil
}

func (p *JSONPersister[T]) Save(ctx context.Context, snapshot core.Snapshot[T]) error {
	if err := primitives.ValidateID(snapshot.SessionID); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	return writeSnapshot(filepath.Join(p.dir, snapshot.SessionID+".json"), data)
}

func (p *JSONPersister[T]) Load(ctx context.Context, sessionID string) (core.Snapshot[T], error) {
	data, err := readSnapshot(filepath.Join(p.dir, sessionID+".json"), sessionID)
	if err != nil {
		return core.Snapshot[T]{}, err
	}

	var snapshot core.Snapshot[T]
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return core.Snapshot[T]{}, fmt.Errorf("json unmarshal: %w", err)
	}
	snapshot.SessionID = sessionID // Ensure ID

	return snapshot, nil
}

// YAMLPersister is a file-based persister using YAML serialization for Snapshot.
type YAMLPersister[T any] struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister[T any](dir string) (*YAMLPersister[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister[T]{dir: dir}, nil
}

func (p *YAMLPersister[T]) Save(ctx context.Context, snapshot core.Snapshot[T]) error {
	if err := primitives.ValidateID(snapshot.SessionID); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	return writeSnapshot(filepath.Join(p.dir, snapshot.SessionID+".yaml"), data)
}

func (p *YAMLPersister[T]) Load(ctx context.Context, sessionID string) (core.Snapshot[T], error) {
	data, err := readSnapshot(filepath.Join(p.dir, sessionID+".yaml"), sessionID)
	if err != nil {
		return core.Snapshot[T]{}, err
	}

	var snapshot core.Snapshot[T]
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return core.Snapshot[T]{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	snapshot.SessionID = sessionID // Ensure ID

	return snapshot, nil
}

// writeSnapshot writes through a temp file and rename so a crash never
// leaves a truncated snapshot behind.
func writeSnapshot(fn string, data []byte) error {
	tmp := fn + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, fn); err != nil {
		return fmt.Errorf("rename %s: %w", fn, err)
	}
	return nil
}

func readSnapshot(fn, sessionID string) ([]byte, error) {
	if err := primitives.ValidateID(sessionID); err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("session %q: %w", sessionID, os.ErrNotExist)
		}
		return nil, fmt.Errorf("read %s: %w", fn, err)
	}
	return data, nil
}
