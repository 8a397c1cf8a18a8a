package workout

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/prescription"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/query"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/ranking"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/selection"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/similarity"
	"github.com/yungbote/trainwise-backend/internal/observability"
	apperrors "github.com/yungbote/trainwise-backend/internal/pkg/errors"
	"github.com/yungbote/trainwise-backend/internal/platform/logger"
)

var tracer = otel.Tracer("trainwise/workout")

type Result struct {
	Exercises   []exercise.PrescribedExercise `json:"exercises"`
	Requested   int                           `json:"requested"`
	Delivered   int                           `json:"delivered"`
	Partial     *PartialSelectionWarning      `json:"partial,omitempty"`
	Query       string                        `json:"query"`
	BatchOffset int                           `json:"batch_offset"`
	// MediaRelaxed is set when nothing survived with the media requirement.
	MediaRelaxed bool `json:"media_relaxed,omitempty"`
}

// Generate runs one request through retrieval, filtering, ranking, priority
// injection, oracle selection and prescription.
func (u Usecases) Generate(ctx context.Context, req exercise.WorkoutRequest) (Result, error) {
	start := time.Now()
	res, err := u.generate(ctx, req)
	observability.Current().ObserveWorkout(outcome(err), time.Since(start), res.Requested, res.Delivered)
	return res, err
}

// outcome labels a generation for metrics. Short workouts count as "ok";
// the metrics layer tracks them separately.
func outcome(err error) string {
	var (
		nc *NoCandidatesError
		oe *OracleError
		re *RetrievalError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &nc):
		return "no_candidates"
	case errors.As(err, &oe):
		return "oracle_error"
	case errors.As(err, &re):
		return "retrieval_error"
	case errors.Is(err, apperrors.ErrInvalidArgument):
		return "invalid"
	default:
		return "error"
	}
}

func (u Usecases) generate(ctx context.Context, raw exercise.WorkoutRequest) (Result, error) {
	if err := u.Validate(raw); err != nil {
		return Result{}, err
	}
	req := raw.Normalized()
	log := u.deps.Log.With("user_id", req.UserID.String(), "batch_offset", req.BatchOffset)

	ctx, span := tracer.Start(ctx, "workout.generate", trace.WithAttributes(
		attribute.Int("workout.count", req.Count),
		attribute.Int("workout.batch_offset", req.BatchOffset),
		attribute.String("workout.level", string(req.FitnessLevel)),
	))
	defer span.End()

	popts := prescription.OptionsFor(req, u.deps.Catalog)
	adjustment := req.DifficultyAdjustment
	if popts.Fatigued {
		adjustment = exercise.ClampAdjustment(adjustment - 1)
	}

	// Query
	var phrases map[string][]string
	if u.deps.Programs != nil && len(req.Goals) > 0 {
		p, err := u.deps.Programs.PhrasesForGoals(ctx, req.Goals)
		if err != nil {
			log.Warn("program keyword lookup failed; using goal text", "error", err)
		} else {
			phrases = p
		}
	}
	q := query.Build(req, phrases)
	res := Result{Requested: req.Count, Query: q, BatchOffset: req.BatchOffset}

	// Retrieval
	rctx, done := u.stage(ctx, StageRetrieval)
	cands, err := u.deps.Retriever.Retrieve(rctx, q, u.deps.Config.TopK)
	done(err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "retrieval")
		return res, &RetrievalError{Query: q, Err: err}
	}
	if len(cands) == 0 {
		return res, &NoCandidatesError{Query: q, Stage: StageRetrieval}
	}

	// Filters, relaxing the media requirement once.
	_, done = u.stage(ctx, "filter")
	requireMedia := req.MediaRequired()
	kept, rep := filterPass(cands, req, adjustment, requireMedia)
	if len(kept) == 0 && requireMedia {
		log.Info("no candidates with media; retrying without media", "emptied_by", rep.EmptiedBy)
		res.MediaRelaxed = true
		kept, rep = filterPass(cands, req, adjustment, false)
	}
	done(nil)
	for stage, n := range rep.Dropped {
		observability.Current().AddWorkoutFiltered(stage, n)
	}
	if rep.InjuryFallback {
		log.Warn("every candidate is contraindicated; kept least-risk set", "injury_patterns", rep.InjuryPatterns)
	}
	if len(kept) == 0 {
		log.Info("filters removed every candidate", "retrieved", len(cands), "emptied_by", rep.EmptiedBy)
		return res, &NoCandidatesError{Query: q, Stage: rep.EmptiedBy}
	}
	log.Debug("filter pass complete",
		"retrieved", len(cands),
		"kept", len(kept),
		"dropped", rep.Dropped,
		"muscle_drops", rep.Muscles.PrimaryDrops+rep.Muscles.SecondaryDrops,
	)

	// Ranking
	ranked, mstats := ranking.Rank(kept, ranking.OptionsFor(req, adjustment))
	if n := mstats.PrimaryPenalties + mstats.SecondaryPenalties; n > 0 {
		log.Debug("reduced-muscle penalties applied", "primary", mstats.PrimaryPenalties, "secondary", mstats.SecondaryPenalties)
	}

	// Priority injection. When staples and queued exceed the requested count,
	// queued exercises are cut first.
	inj := selection.Inject(ranked, req.Staples, req.Queued)
	if len(inj.MissingStaples)+len(inj.MissingQueued) > 0 {
		log.Info("reserved exercises not in filtered pool",
			"missing_staples", len(inj.MissingStaples),
			"missing_queued", len(inj.MissingQueued),
		)
	}
	inj = inj.Truncate(req.Count)
	reserved := inj.Reserved()
	reservedNames := make([]string, 0, len(reserved))
	for _, s := range reserved {
		reservedNames = append(reservedNames, s.Name())
	}
	pool := dedupPool(inj.Pool, reservedNames, !u.deps.Config.DisablePatternDedup)

	// Oracle selection with backfill.
	var ch selection.Choice
	if remaining := inj.RemainingCount(req.Count); remaining > 0 {
		window := selection.Window(pool, req.BatchOffset, req.Count, u.deps.Config.ShortlistSize)
		sc := selection.SelectionContext{
			FocusArea:    req.FocusArea,
			FitnessLevel: req.FitnessLevel,
			Goals:        req.Goals,
			WorkoutType:  req.WorkoutType,
			Reserved:     reservedNames,
		}
		octx, done := u.stage(ctx, "oracle")
		ch, err = u.adapter.Choose(octx, window, pool, remaining, sc)
		done(err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "oracle")
			return res, &OracleError{Err: err}
		}
		if ch.Discarded > 0 {
			log.Debug("oracle picks discarded", "discarded", ch.Discarded)
		}
	}

	// Prescription
	history := u.history(ctx, req, log)
	favorites := lowerSet(req.Favorites)
	staples := len(inj.Staples)
	out := make([]exercise.PrescribedExercise, 0, len(reserved)+len(ch.Picked))
	for i, s := range reserved {
		prov := exercise.Provenance{IsStaple: i < staples, FromQueue: i >= staples}
		prov.IsFavorite = isFavorite(favorites, s)
		out = append(out, u.generator.Prescribe(s, popts, history, prov))
	}
	for i, s := range ch.Picked {
		prov := exercise.Provenance{FromOracle: i < ch.FromOracle}
		prov.IsFavorite = isFavorite(favorites, s)
		out = append(out, u.generator.Prescribe(s, popts, history, prov))
	}

	res.Exercises = out
	res.Delivered = len(out)
	if res.Delivered < res.Requested {
		w := PartialSelectionWarning{Requested: res.Requested, Delivered: res.Delivered}
		res.Partial = &w
		log.Warn("partial selection", "requested", w.Requested, "delivered", w.Delivered)
	}
	span.SetAttributes(attribute.Int("workout.delivered", res.Delivered))
	return res, nil
}

// stage opens a child span and returns a func that closes it and records
// the stage duration.
func (u Usecases) stage(ctx context.Context, name string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "workout."+name)
	return ctx, func(err error) {
		status := "ok"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, name)
		}
		span.End()
		observability.Current().ObserveWorkoutStage(name, status, time.Since(start))
	}
}

func (u Usecases) history(ctx context.Context, req exercise.WorkoutRequest, log *logger.Logger) map[string]exercise.Strength {
	if u.deps.Strength == nil || req.UserID == uuid.Nil {
		return nil
	}
	h, err := u.deps.Strength.StrengthFor(ctx, req.UserID)
	if err != nil {
		log.Warn("strength history lookup failed; using generic weights", "error", err)
		return nil
	}
	return h
}

// dedupPool keeps the best-ranked exercise of each similar group. Reserved
// names seed the group set so near-duplicates of staples are dropped too.
func dedupPool(pool []exercise.Scored, reserved []string, checkPattern bool) []exercise.Scored {
	seen := similarity.NewSeen(checkPattern, reserved...)
	out := make([]exercise.Scored, 0, len(pool))
	for _, s := range pool {
		if seen.Admit(s.Name()) {
			out = append(out, s)
		}
	}
	return out
}

func lowerSet(names []string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			out[n] = struct{}{}
		}
	}
	return out
}

func isFavorite(favorites map[string]struct{}, s exercise.Scored) bool {
	if len(favorites) == 0 {
		return false
	}
	_, ok := favorites[strings.ToLower(s.Name())]
	return ok
}
