package workout

import (
	"context"

	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/catalog"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/prescription"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/query"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/selection"
	apperrors "github.com/yungbote/trainwise-backend/internal/pkg/errors"
	"github.com/yungbote/trainwise-backend/internal/platform/logger"
)

// Retriever runs the semantic search. It returns at most k candidates
// sorted by descending similarity; an empty slice is not an error.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]exercise.Candidate, error)
}

type Config struct {
	TopK          int
	ShortlistSize int
	// DisablePatternDedup keeps same-pattern variants (bench press vs
	// dumbbell bench press) that would otherwise collapse to one.
	DisablePatternDedup bool
	MaxCount            int
	MaxBatch            int
}

const (
	DefaultTopK     = 100
	DefaultMaxCount = 20
	DefaultMaxBatch = 7
)

func DefaultConfig() Config {
	return Config{
		TopK:          DefaultTopK,
		ShortlistSize: selection.DefaultWindowSize,
		MaxCount:      DefaultMaxCount,
		MaxBatch:      DefaultMaxBatch,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.TopK <= 0 {
		c.TopK = d.TopK
	}
	if c.ShortlistSize <= 0 {
		c.ShortlistSize = d.ShortlistSize
	}
	if c.MaxCount <= 0 {
		c.MaxCount = d.MaxCount
	}
	if c.MaxBatch <= 0 {
		c.MaxBatch = d.MaxBatch
	}
	return c
}

type UsecasesDeps struct {
	Log     *logger.Logger
	Catalog *catalog.Catalog

	Retriever Retriever
	// Optional: nil selects the deterministic top-N oracle.
	Oracle selection.Oracle
	// Optional: without it every weight is a generic estimate.
	Strength prescription.StrengthLookup
	// Optional: custom program goals fall back to their own text.
	Programs   query.ProgramKeywords
	Classifier prescription.Classifier

	Config Config
}

type Usecases struct {
	deps      UsecasesDeps
	adapter   *selection.Adapter
	generator *prescription.Generator
}

func New(deps UsecasesDeps) Usecases {
	if deps.Log == nil {
		deps.Log = logger.NewNop()
	}
	if deps.Catalog == nil {
		deps.Catalog = catalog.Default()
	}
	deps.Log = deps.Log.With("service", "WorkoutUsecases")
	deps.Config = deps.Config.withDefaults()
	return Usecases{
		deps:      deps,
		adapter:   selection.NewAdapter(deps.Oracle, !deps.Config.DisablePatternDedup),
		generator: prescription.NewGenerator(deps.Classifier, deps.Catalog),
	}
}

func (u Usecases) WithLog(log *logger.Logger) Usecases {
	if log != nil {
		u.deps.Log = log
	}
	return u
}

// Validate rejects requests the engine will not try to satisfy. Everything
// else is normalized to defaults.
func (u Usecases) Validate(req exercise.WorkoutRequest) error {
	if req.Count > u.deps.Config.MaxCount {
		return apperrors.Invalidf("count %d exceeds %d", req.Count, u.deps.Config.MaxCount)
	}
	if req.Count < 0 {
		return apperrors.Invalidf("count must not be negative")
	}
	if req.BatchOffset < 0 {
		return apperrors.Invalidf("batch_offset must not be negative")
	}
	if req.Readiness != nil && (*req.Readiness < 0 || *req.Readiness > 100) {
		return apperrors.Invalidf("readiness_score must be within 0..100")
	}
	for family, n := range req.EquipmentUnits {
		if n < 0 {
			return apperrors.Invalidf("equipment_units[%s] must not be negative", family)
		}
	}
	return nil
}
