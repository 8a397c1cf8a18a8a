package workout

import (
	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/difficulty"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/safety"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/selection"
)

// Filter stage names, in the order they run.
const (
	StageRetrieval      = "retrieval"
	StageMedia          = "media"
	StageEquipment      = "equipment"
	StageAvoidList      = "avoid_list"
	StageInjury         = "injury"
	StageAvoidedMuscles = "avoided_muscles"
	StageSingleUnit     = "single_unit"
	StageDifficulty     = "difficulty"
)

type filterReport struct {
	Dropped        map[string]int
	EmptiedBy      string
	InjuryPatterns int
	InjuryFallback bool
	Muscles        safety.MuscleStats
}

// filterPass runs every hard filter over the retrieved candidates. Each
// stage only narrows the set; the first stage that empties it is reported.
func filterPass(cands []exercise.Candidate, req exercise.WorkoutRequest, adjustment int, requireMedia bool) ([]exercise.Candidate, filterReport) {
	rep := filterReport{Dropped: map[string]int{}}
	cur := cands

	step := func(stage string, next []exercise.Candidate) bool {
		rep.Dropped[stage] = len(cur) - len(next)
		cur = next
		if len(cur) == 0 && rep.EmptiedBy == "" {
			rep.EmptiedBy = stage
			return false
		}
		return true
	}

	if requireMedia {
		kept := make([]exercise.Candidate, 0, len(cur))
		for _, c := range cur {
			if c.HasMedia() {
				kept = append(kept, c)
			}
		}
		if !step(StageMedia, kept) {
			return nil, rep
		}
	}

	eq := safety.NewEquipmentFilter(req.Equipment)
	kept := make([]exercise.Candidate, 0, len(cur))
	for _, c := range cur {
		if eq.Allows(c.Equipment, c.DisplayName()) {
			kept = append(kept, c)
		}
	}
	if !step(StageEquipment, kept) {
		return nil, rep
	}

	avoid := selection.EffectiveAvoid(req.Avoid, req.Staples, req.Queued)
	if next, _ := safety.FilterAvoidList(cur, avoid); !step(StageAvoidList, next) {
		return nil, rep
	}

	inj := safety.FilterInjuries(cur, req.Injuries)
	rep.InjuryPatterns = len(inj.Patterns)
	rep.InjuryFallback = inj.FallbackUsed
	if !step(StageInjury, inj.Kept) {
		return nil, rep
	}

	next, stats := safety.FilterAvoidedMuscles(cur, req.AvoidedMuscles.Avoid)
	rep.Muscles = stats
	if !step(StageAvoidedMuscles, next) {
		return nil, rep
	}

	if next, _ := safety.FilterSingleUnit(cur, req.EquipmentUnits); !step(StageSingleUnit, next) {
		return nil, rep
	}

	if next, _ := difficulty.Filter(cur, req.FitnessLevel, adjustment); !step(StageDifficulty, next) {
		return nil, rep
	}
	return cur, rep
}
