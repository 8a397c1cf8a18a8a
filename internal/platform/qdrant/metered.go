package qdrant

import (
	"context"
	"errors"
	"time"

	"github.com/yungbote/trainwise-backend/internal/observability"
)

const metricsProvider = "qdrant"

type meteredStore struct {
	inner   Store
	metrics *observability.Metrics
}

// Metered records latency and outcome for every catalog call. A search that
// succeeds with no hits is reported as "empty" so an unindexed namespace
// shows up separately from failures. A nil m returns inner unchanged.
func Metered(inner Store, m *observability.Metrics) Store {
	if inner == nil || m == nil {
		return inner
	}
	return &meteredStore{inner: inner, metrics: m}
}

func (s *meteredStore) Upsert(ctx context.Context, namespace string, points []Point) error {
	start := time.Now()
	err := s.inner.Upsert(ctx, namespace, points)
	s.metrics.ObserveVectorStoreOperation(metricsProvider, "upsert", outcome(err, len(points)), time.Since(start))
	return err
}

func (s *meteredStore) Search(ctx context.Context, namespace string, vector []float32, topK int) ([]Match, error) {
	start := time.Now()
	out, err := s.inner.Search(ctx, namespace, vector, topK)
	s.metrics.ObserveVectorStoreOperation(metricsProvider, "search", outcome(err, len(out)), time.Since(start))
	return out, err
}

func outcome(err error, n int) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case err != nil:
		return "error"
	case n == 0:
		return "empty"
	default:
		return "ok"
	}
}
