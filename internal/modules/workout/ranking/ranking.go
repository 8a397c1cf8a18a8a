package ranking

import (
	"math"
	"sort"
	"strings"

	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/catalog"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/difficulty"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/safety"
)

const (
	SimilarityWeight = 0.7
	DifficultyWeight = 0.3

	WorkoutTypeBoost   = 1.5
	WorkoutTypePenalty = 0.7
	FavoriteBoost      = 2.5
	ConsistencyBoost   = 1.8
	// MaxVariationPenalty is the multiplier loss for a recently used
	// exercise at 100% variation.
	MaxVariationPenalty = 0.5
)

// Every stage below returns a new slice sorted by Score, highest first. The
// input is never modified. Ties keep the order of the previous stage.

func FromCandidates(cands []exercise.Candidate) []exercise.Scored {
	out := make([]exercise.Scored, len(cands))
	for i, c := range cands {
		out[i] = exercise.Scored{Candidate: c, Score: c.Similarity, OriginalSimilarity: c.Similarity}
	}
	return sorted(out)
}

// ApplyReducedMuscles scales scores down for exercises that load a muscle
// the user wants to go easy on.
func ApplyReducedMuscles(pool []exercise.Scored, reduce []string) ([]exercise.Scored, safety.MuscleStats) {
	var stats safety.MuscleStats
	out := clone(pool)
	if len(reduce) == 0 {
		return out, stats
	}
	for i := range out {
		factor, kind := safety.ReducePenalty(out[i].Candidate, reduce)
		switch kind {
		case safety.PenaltyPrimary:
			stats.PrimaryPenalties++
		case safety.PenaltySecondary:
			stats.SecondaryPenalties++
		}
		out[i].Score *= factor
	}
	return sorted(out), stats
}

// Composite blends the current score with how well the exercise's
// difficulty suits the user.
func Composite(pool []exercise.Scored, level exercise.FitnessLevel, adjustment int) []exercise.Scored {
	out := clone(pool)
	for i := range out {
		d := difficulty.RankingScore(difficulty.Of(out[i].Candidate), level, adjustment)
		out[i].DifficultyScore = d
		out[i].Score = out[i].Score*SimilarityWeight + d*DifficultyWeight
	}
	return sorted(out)
}

// ApplyWorkoutType boosts exercises matching a cardio, mobility or recovery
// preference and penalises the rest. Strength and mixed leave scores alone.
func ApplyWorkoutType(pool []exercise.Scored, wt exercise.WorkoutType) []exercise.Scored {
	out := clone(pool)
	keywords, ok := catalog.Default().WorkoutTypes[string(wt)]
	if !ok || len(keywords) == 0 {
		return out
	}
	for i := range out {
		text := out[i].Name() + " " + out[i].Candidate.Instructions
		if _, hit := catalog.AnyPhrase(text, keywords); hit {
			out[i].Score = capped(out[i].Score * WorkoutTypeBoost)
		} else {
			out[i].Score *= WorkoutTypePenalty
		}
	}
	return sorted(out)
}

// ApplyVariation pushes recently used exercises down in vary mode, in
// proportion to the user's variation percentage.
func ApplyVariation(pool []exercise.Scored, mode exercise.ConsistencyMode, recent []string, variationPct int) []exercise.Scored {
	out := clone(pool)
	if mode != exercise.ConsistencyVary || len(recent) == 0 || variationPct <= 0 {
		return out
	}
	factor := 1 - MaxVariationPenalty*float64(variationPct)/100
	names := nameSet(recent)
	for i := range out {
		if _, ok := names[strings.ToLower(out[i].Name())]; ok {
			out[i].Score *= factor
		}
	}
	return sorted(out)
}

func ApplyFavorites(pool []exercise.Scored, favorites []string) []exercise.Scored {
	return boostNamed(pool, favorites, FavoriteBoost)
}

// ApplyConsistency boosts recently used exercises, only in consistent mode.
func ApplyConsistency(pool []exercise.Scored, mode exercise.ConsistencyMode, recent []string) []exercise.Scored {
	if mode != exercise.ConsistencyConsistent {
		return clone(pool)
	}
	return boostNamed(pool, recent, ConsistencyBoost)
}

func boostNamed(pool []exercise.Scored, names []string, factor float64) []exercise.Scored {
	out := clone(pool)
	if len(names) == 0 {
		return out
	}
	set := nameSet(names)
	for i := range out {
		if _, ok := set[strings.ToLower(out[i].Name())]; ok {
			out[i].Score = capped(out[i].Score * factor)
		}
	}
	return sorted(out)
}

func nameSet(names []string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			out[n] = struct{}{}
		}
	}
	return out
}

func capped(v float64) float64 { return math.Min(1, v) }

func clone(pool []exercise.Scored) []exercise.Scored {
	out := make([]exercise.Scored, len(pool))
	copy(out, pool)
	return out
}

func sorted(pool []exercise.Scored) []exercise.Scored {
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].Score > pool[j].Score })
	return pool
}
