// Package primitives provides versioning utilities for Script.
package primitives

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"
)

// ComputeVersion computes a version string for a Script.
// Priority: user-provided script.Version, else SHA256(script JSON)[:8] + timestamp.
func ComputeVersion[T any](script *Script[T]) string {
	if script.Version != "" {
		return script.Version
	}

	data, err := json.Marshal(script)
	if err != nil {
		// Payloads that cannot be marshalled (channels, funcs) land here.
		return fmt.Sprintf("invalid-%d", time.Now().Unix())
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x-%s", hash[:8], time.Now().UTC().Format("20060102T150405Z"))
}
