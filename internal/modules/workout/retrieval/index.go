package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/trainwise-backend/internal/modules/workout/naming"
	"github.com/yungbote/trainwise-backend/internal/platform/logger"
	"github.com/yungbote/trainwise-backend/internal/platform/qdrant"
)

const DefaultIndexBatchSize = 64

type Upserter interface {
	Upsert(ctx context.Context, namespace string, points []qdrant.Point) error
}

// Record is one catalogue entry as exported from the exercise source. The
// payload is stored as-is so DecodeCandidate sees the original keys.
type Record map[string]any

// ID returns the record's stable id, falling back to its raw name.
func (r Record) ID() string {
	if id := str(r, []string{"id"}); id != "" {
		return id
	}
	return str(r, keysName)
}

// Document is the text embedded for a record: the display name followed by
// the fields a query is likely to mention.
func (r Record) Document() string {
	raw := str(r, keysName)
	if raw == "" {
		return ""
	}
	parts := []string{naming.CleanDisplayName(raw)}
	for _, keys := range [][]string{keysTarget, keysBodyPart, keysEquipment} {
		if v := str(r, keys); v != "" {
			parts = append(parts, strings.ToLower(v))
		}
	}
	return strings.Join(parts, ". ")
}

type Indexer struct {
	log       *logger.Logger
	embedder  Embedder
	store     Upserter
	namespace string
	batchSize int
}

func NewIndexer(log *logger.Logger, embedder Embedder, store Upserter, namespace string, batchSize int) (*Indexer, error) {
	if embedder == nil || store == nil {
		return nil, fmt.Errorf("indexer: embedder and store are required")
	}
	if log == nil {
		log = logger.NewNop()
	}
	if batchSize <= 0 {
		batchSize = DefaultIndexBatchSize
	}
	return &Indexer{
		log:       log.With("service", "ExerciseIndexer"),
		embedder:  embedder,
		store:     store,
		namespace: namespace,
		batchSize: batchSize,
	}, nil
}

// Index embeds and upserts records in batches and returns how many were
// written. Records without a name are skipped.
func (ix *Indexer) Index(ctx context.Context, records []Record) (int, error) {
	type pending struct {
		id   string
		doc  string
		data Record
	}
	var todo []pending
	for _, r := range records {
		doc := r.Document()
		if doc == "" {
			ix.log.Warn("Skipping unnamed exercise record", "id", r.ID())
			continue
		}
		todo = append(todo, pending{id: r.ID(), doc: doc, data: r})
	}

	written := 0
	for start := 0; start < len(todo); start += ix.batchSize {
		end := start + ix.batchSize
		if end > len(todo) {
			end = len(todo)
		}
		batch := todo[start:end]
		docs := make([]string, len(batch))
		for i, p := range batch {
			docs[i] = p.doc
		}
		vecs, err := ix.embedder.Embed(ctx, docs)
		if err != nil {
			return written, fmt.Errorf("embed batch at %d: %w", start, err)
		}
		if len(vecs) != len(batch) {
			return written, fmt.Errorf("embed batch at %d: got %d vectors for %d documents", start, len(vecs), len(batch))
		}
		points := make([]qdrant.Point, len(batch))
		for i, p := range batch {
			points[i] = qdrant.Point{ID: p.id, Vector: vecs[i], Payload: p.data}
		}
		if err := ix.store.Upsert(ctx, ix.namespace, points); err != nil {
			return written, fmt.Errorf("upsert batch at %d: %w", start, err)
		}
		written += len(batch)
		ix.log.Info("Indexed exercise batch", "written", written, "total", len(todo))
	}
	return written, nil
}
