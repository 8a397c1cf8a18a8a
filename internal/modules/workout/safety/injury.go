package safety

import (
	"sort"
	"strings"

	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/catalog"
)

type InjuryResult struct {
	Kept         []exercise.Candidate
	Patterns     []string
	Removed      int
	FallbackUsed bool
}

// FilterInjuries drops candidates that hit any contraindicated movement for
// the user's injuries. It never returns an empty set for a non-empty input:
// when every candidate is contraindicated, the ones with the fewest pattern
// hits are kept, best similarity first.
func FilterInjuries(cands []exercise.Candidate, injuries []string) InjuryResult {
	patterns := catalog.Default().ContraindicatedPatterns(injuries)
	if len(patterns) == 0 || len(cands) == 0 {
		return InjuryResult{Kept: cands, Patterns: patterns}
	}

	hits := make([]int, len(cands))
	kept := make([]exercise.Candidate, 0, len(cands))
	for i, c := range cands {
		hits[i] = countHits(injuryHaystack(c), patterns)
		if hits[i] == 0 {
			kept = append(kept, c)
		}
	}
	if len(kept) > 0 {
		return InjuryResult{Kept: kept, Patterns: patterns, Removed: len(cands) - len(kept)}
	}

	min := hits[0]
	for _, h := range hits[1:] {
		if h < min {
			min = h
		}
	}
	for i, c := range cands {
		if hits[i] == min {
			kept = append(kept, c)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Similarity > kept[j].Similarity })
	return InjuryResult{Kept: kept, Patterns: patterns, Removed: len(cands) - len(kept), FallbackUsed: true}
}

// InjuryHits counts the contraindicated patterns a candidate matches.
func InjuryHits(c exercise.Candidate, patterns []string) int {
	return countHits(injuryHaystack(c), patterns)
}

func injuryHaystack(c exercise.Candidate) string {
	parts := []string{c.Name, strings.ReplaceAll(c.RawName, "_", " "), c.TargetMuscle, c.BodyPart}
	return strings.ToLower(strings.Join(parts, " | "))
}

func countHits(haystack string, patterns []string) int {
	n := 0
	for _, p := range patterns {
		if strings.Contains(haystack, p) {
			n++
		}
	}
	return n
}
