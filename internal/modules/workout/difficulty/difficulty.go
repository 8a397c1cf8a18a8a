package difficulty

import (
	"math"
	"strconv"
	"strings"

	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/catalog"
)

const (
	Min = 1
	Max = 10
	// Default is used when an exercise has no difficulty at all. It is
	// beginner-level so untagged exercises stay available to everyone.
	Default = 2
	Elite   = 10
)

var baseCeilings = map[exercise.FitnessLevel]int{
	exercise.LevelBeginner:     6,
	exercise.LevelIntermediate: 8,
	exercise.LevelAdvanced:     10,
}

// ratios[userLevel][exerciseCategory]
var ratios = map[exercise.FitnessLevel]map[exercise.FitnessLevel]float64{
	exercise.LevelBeginner:     {exercise.LevelBeginner: 0.60, exercise.LevelIntermediate: 0.30, exercise.LevelAdvanced: 0.10},
	exercise.LevelIntermediate: {exercise.LevelBeginner: 0.25, exercise.LevelIntermediate: 0.50, exercise.LevelAdvanced: 0.25},
	exercise.LevelAdvanced:     {exercise.LevelBeginner: 0.10, exercise.LevelIntermediate: 0.30, exercise.LevelAdvanced: 0.60},
}

// ToNumeric resolves a difficulty given as a number, a numeric string or a
// label. Missing or unreadable values resolve to Default.
func ToNumeric(v any) int {
	switch n := v.(type) {
	case nil:
		return Default
	case int:
		return fromNumber(float64(n))
	case int64:
		return fromNumber(float64(n))
	case float64:
		return fromNumber(n)
	case float32:
		return fromNumber(float64(n))
	case string:
		s := strings.ToLower(strings.TrimSpace(n))
		if s == "" {
			return Default
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return fromNumber(f)
		}
		if lvl, ok := catalog.Default().DifficultyLabels[s]; ok {
			return lvl
		}
		return Default
	default:
		return Default
	}
}

func fromNumber(f float64) int {
	if math.IsNaN(f) || f <= 0 {
		return Default
	}
	return clamp(int(math.Round(f)), Min, Max)
}

// Of returns the candidate's numeric difficulty, treating zero as missing.
func Of(c exercise.Candidate) int {
	if c.Difficulty <= 0 {
		return Default
	}
	return clamp(c.Difficulty, Min, Max)
}

func Category(n int) exercise.FitnessLevel {
	switch {
	case n <= 3:
		return exercise.LevelBeginner
	case n <= 6:
		return exercise.LevelIntermediate
	default:
		return exercise.LevelAdvanced
	}
}

// Ceiling is the level's base ceiling shifted one point per unit of feedback
// adjustment, clamped to [1,10].
func Ceiling(level exercise.FitnessLevel, adjustment int) int {
	base, ok := baseCeilings[level]
	if !ok {
		base = baseCeilings[exercise.LevelBeginner]
	}
	return clamp(base+exercise.ClampAdjustment(adjustment), Min, Max)
}

type Mode int

const (
	Strict Mode = iota
	Permissive
)

// ModeFor is strict for beginners and permissive otherwise.
func ModeFor(level exercise.FitnessLevel) Mode {
	if level == exercise.LevelBeginner {
		return Strict
	}
	return Permissive
}

// Allowed applies the hard part of the model. In permissive mode only Elite
// exercises are ever dropped, and only for a beginner without a positive
// adjustment; everything else is left to RankingScore.
func Allowed(n int, level exercise.FitnessLevel, adjustment int, mode Mode) bool {
	if mode == Strict {
		return n <= Ceiling(level, adjustment)
	}
	if n >= Elite && level == exercise.LevelBeginner && adjustment <= 0 {
		return false
	}
	return true
}

// Filter drops candidates above the ceiling for the level's mode and returns
// the survivors with the number removed.
func Filter(cands []exercise.Candidate, level exercise.FitnessLevel, adjustment int) ([]exercise.Candidate, int) {
	mode := ModeFor(level)
	out := make([]exercise.Candidate, 0, len(cands))
	for _, c := range cands {
		if Allowed(Of(c), level, adjustment, mode) {
			out = append(out, c)
		}
	}
	return out, len(cands) - len(out)
}

// RankingScore says how well an exercise's difficulty suits the user, in
// [0,1]. A positive adjustment moves weight from the easy category to the
// hard one by 0.1 per unit; a negative adjustment does the reverse.
func RankingScore(n int, level exercise.FitnessLevel, adjustment int) float64 {
	table, ok := ratios[level]
	if !ok {
		table = ratios[exercise.LevelBeginner]
	}
	cat := Category(n)
	score := table[cat]
	adj := exercise.ClampAdjustment(adjustment)
	if adj != 0 {
		delta := 0.1 * math.Abs(float64(adj))
		harder, easier := exercise.LevelAdvanced, exercise.LevelBeginner
		if adj < 0 {
			harder, easier = easier, harder
		}
		switch cat {
		case harder:
			score += delta
		case easier:
			score -= delta
		}
	}
	return math.Max(0, math.Min(1, score))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
