package storage

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Identifier prefixes, one per record kind.
const (
	prefixWorkspace   = "wrk"
	prefixFolder      = "fld"
	prefixRequest     = "req"
	prefixEnvironment = "env"
)

// newID returns a collision-resistant identifier with a semantic prefix,
// e.g. "wrk_0f47ac10b58cc4372a5670e02b2c3d47". The random part is a v4
// UUID with the dashes stripped. Ids are never reused or mutated.
func newID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// nowMillis returns the current wall-clock time in Unix milliseconds,
// the precision used by every created/modified stamp.
func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// sortKeyFor derives a sort key from a modification stamp. Keys are the
// negated timestamp so the most recently touched entry sorts first.
func sortKeyFor(modified int64) float64 {
	return -float64(modified)
}
