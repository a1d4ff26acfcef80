// Package cache provides the inference cache: a durable key-value store of
// model results plus the gate that consults it before every model call.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/maxonary/LLM-Invoice-Sorter/pkg/api"
)

// Store persists inference results keyed by document content. Entries are
// immutable once written; concurrent writers of the same key may both write,
// last write wins (values are deterministic per key).
type Store interface {
	Get(ctx context.Context, key string) (api.InferenceResult, bool, error)
	Put(ctx context.Context, key string, res api.InferenceResult) error
	Close() error
}

// Key derives the cache key for a document excerpt and target language.
// Category and calendar context are deliberately not part of the key:
// identical excerpts share one cached result regardless of context,
// preserving the behavior of the original report generator.
func Key(text, language string) string {
	sum := sha256.Sum256([]byte(text + language))
	return hex.EncodeToString(sum[:])
}
