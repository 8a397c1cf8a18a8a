package retrieval

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
	"github.com/yungbote/trainwise-backend/internal/observability"
	"github.com/yungbote/trainwise-backend/internal/platform/logger"
	"github.com/yungbote/trainwise-backend/internal/platform/qdrant"
)

type Embedder interface {
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
}

// EmbeddingCache is optional; a nil cache embeds every query.
type EmbeddingCache interface {
	Get(ctx context.Context, model, text string) ([]float32, bool, error)
	Set(ctx context.Context, model, text string, vec []float32) error
}

type Searcher interface {
	Search(ctx context.Context, namespace string, vector []float32, topK int) ([]qdrant.Match, error)
}

type Deps struct {
	Log       *logger.Logger
	Embedder  Embedder
	Store     Searcher
	Cache     EmbeddingCache
	Namespace string
	// EmbedModel keys the cache so switching models never reuses vectors.
	EmbedModel string
}

// VectorRetriever embeds the query text and searches the exercise index.
type VectorRetriever struct {
	deps Deps
}

func NewVectorRetriever(deps Deps) (*VectorRetriever, error) {
	if deps.Embedder == nil || deps.Store == nil {
		return nil, fmt.Errorf("retrieval: embedder and store are required")
	}
	if deps.Log == nil {
		deps.Log = logger.NewNop()
	}
	deps.Log = deps.Log.With("service", "VectorRetriever")
	return &VectorRetriever{deps: deps}, nil
}

func (r *VectorRetriever) Retrieve(ctx context.Context, query string, k int) ([]exercise.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" || k <= 0 {
		return nil, nil
	}
	vec, err := r.embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	matches, err := r.deps.Store.Search(ctx, r.deps.Namespace, vec, k)
	if err != nil {
		return nil, fmt.Errorf("search exercises: %w", err)
	}

	out := make([]exercise.Candidate, 0, len(matches))
	skipped := 0
	for _, m := range matches {
		c, ok := DecodeCandidate(m)
		if !ok {
			skipped++
			continue
		}
		out = append(out, c)
	}
	if skipped > 0 {
		r.deps.Log.Warn("Skipped unnamed exercise records", "count", skipped)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}

func (r *VectorRetriever) embed(ctx context.Context, text string) ([]float32, error) {
	if r.deps.Cache != nil {
		vec, ok, err := r.deps.Cache.Get(ctx, r.deps.EmbedModel, text)
		switch {
		case err != nil:
			observability.Current().ObserveEmbeddingCache("error")
			r.deps.Log.Warn("Embedding cache read failed", "error", err)
		case ok:
			observability.Current().ObserveEmbeddingCache("hit")
			return vec, nil
		default:
			observability.Current().ObserveEmbeddingCache("miss")
		}
	}
	vecs, err := r.deps.Embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 || len(vecs[0]) == 0 {
		return nil, fmt.Errorf("embedder returned no vector")
	}
	if r.deps.Cache != nil {
		if err := r.deps.Cache.Set(ctx, r.deps.EmbedModel, text, vecs[0]); err != nil {
			r.deps.Log.Warn("Embedding cache write failed", "error", err)
		}
	}
	return vecs[0], nil
}
