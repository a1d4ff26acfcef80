package cache

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maxonary/LLM-Invoice-Sorter/pkg/api"
)

// Gate wraps an Inferencer with the cache-consult-then-populate contract:
// a hit returns the stored value verbatim without touching the model; a
// miss invokes the model and persists the result before returning it, so a
// crash immediately afterwards cannot lose the computed value.
type Gate struct {
	store      Store
	inferencer api.Inferencer
	logger     *slog.Logger
}

// NewGate creates a Gate over the given store and model client.
func NewGate(store Store, inferencer api.Inferencer, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{store: store, inferencer: inferencer, logger: logger}
}

// Infer returns the cached result for the request's text and language, or
// invokes the model and stores the result. A failed read is logged and
// treated as a miss; a failed write surfaces as an error because the gate
// must not return a value it could not make durable.
func (g *Gate) Infer(ctx context.Context, req api.InferenceRequest) (api.InferenceResult, error) {
	key := Key(req.Text, req.Language)

	cached, ok, err := g.store.Get(ctx, key)
	if err != nil {
		g.logger.Warn("cache read failed, treating as miss", "error", err)
	} else if ok {
		g.logger.Debug("inference cache hit", "key", key)
		return cached, nil
	}

	res, err := g.inferencer.Infer(ctx, req)
	if err != nil {
		return api.InferenceResult{}, err
	}

	if err := g.store.Put(ctx, key, res); err != nil {
		return api.InferenceResult{}, fmt.Errorf("persisting inference result: %w", err)
	}

	return res, nil
}
