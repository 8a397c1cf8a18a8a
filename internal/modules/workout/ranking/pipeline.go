package ranking

import (
	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/safety"
)

type Options struct {
	Level        exercise.FitnessLevel
	Adjustment   int
	Reduce       []string
	WorkoutType  exercise.WorkoutType
	Consistency  exercise.ConsistencyMode
	RecentlyUsed []string
	Favorites    []string
	Variation    int
}

// OptionsFor derives ranking options from a normalised request and the
// effective difficulty adjustment.
func OptionsFor(req exercise.WorkoutRequest, adjustment int) Options {
	return Options{
		Level:        req.FitnessLevel,
		Adjustment:   adjustment,
		Reduce:       req.AvoidedMuscles.Reduce,
		WorkoutType:  req.WorkoutType,
		Consistency:  req.Consistency,
		RecentlyUsed: req.RecentlyUsed,
		Favorites:    req.Favorites,
		Variation:    req.VariationPercent(),
	}
}

// Rank runs every scoring stage in order: reduced muscles, composite,
// workout type, variation, favorites, consistency. Each stage re-sorts
// before the next reads the pool.
func Rank(cands []exercise.Candidate, opts Options) ([]exercise.Scored, safety.MuscleStats) {
	pool := FromCandidates(cands)
	pool, stats := ApplyReducedMuscles(pool, opts.Reduce)
	pool = Composite(pool, opts.Level, opts.Adjustment)
	pool = ApplyWorkoutType(pool, opts.WorkoutType)
	pool = ApplyVariation(pool, opts.Consistency, opts.RecentlyUsed, opts.Variation)
	pool = ApplyFavorites(pool, opts.Favorites)
	pool = ApplyConsistency(pool, opts.Consistency, opts.RecentlyUsed)
	return pool, stats
}
