package prescription

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/catalog"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/naming"
)

// StrengthLookup returns a user's recorded strength keyed by exercise name.
type StrengthLookup interface {
	StrengthFor(ctx context.Context, userID uuid.UUID) (map[string]exercise.Strength, error)
}

const EachSideHint = "(each side)"

// Options carry the request-level inputs that shape every prescription in a workout.
type Options struct {
	Level    exercise.FitnessLevel
	Pace     exercise.Pace
	Fatigued bool
}

// OptionsFor derives prescription options from a normalized request. Low
// readiness (below 40) or a low mood marks the session as fatigued.
func OptionsFor(req exercise.WorkoutRequest, cat *catalog.Catalog) Options {
	if cat == nil {
		cat = catalog.Default()
	}
	opts := Options{Level: req.FitnessLevel, Pace: req.Pace}
	if req.Readiness != nil && *req.Readiness < LowReadiness {
		opts.Fatigued = true
	}
	if mood := strings.TrimSpace(req.Mood); mood != "" {
		if _, ok := catalog.AnyPhrase(mood, cat.LowMoods); ok {
			opts.Fatigued = true
		}
	}
	return opts
}

const LowReadiness = 40

type Generator struct {
	classifier Classifier
	cat        *catalog.Catalog
}

func NewGenerator(classifier Classifier, cat *catalog.Catalog) *Generator {
	if cat == nil {
		cat = catalog.Default()
	}
	if classifier == nil {
		classifier = NewKeywordClassifier(cat)
	}
	return &Generator{classifier: classifier, cat: cat}
}

// Prescribe turns a selected exercise into sets, reps, rest, a starting
// weight and per-set targets.
func (g *Generator) Prescribe(s exercise.Scored, opts Options, history map[string]exercise.Strength, prov exercise.Provenance) exercise.PrescribedExercise {
	c := s.Candidate
	name := c.DisplayName()
	equipment := c.Equipment
	if strings.TrimSpace(equipment) == "" {
		equipment = naming.InferEquipment(name)
	}
	equipType := EquipmentType(equipment)
	class := g.classifier.Classify(name, equipment)
	rr := g.classifier.RepRange(class)
	grp := groupOf(class)
	level := opts.Level
	if level == "" {
		level = exercise.LevelBeginner
	}

	sets := setsTable[grp][level]
	rest := restTable[grp][level]
	reps := repsFor(rr, level)

	switch opts.Pace {
	case exercise.PaceSlow:
		reps = minInt(reps+PaceReps, rr.Max)
		rest = minInt(rest+PaceRest, MaxRest)
	case exercise.PaceFast:
		reps = maxInt(reps-PaceReps, rr.Min)
		rest = maxInt(rest-PaceRest, MinRest)
		sets = minInt(sets+1, MaxSets)
	}
	if opts.Fatigued {
		sets = maxInt(sets-1, MinSets)
	}
	if c.IsTimed {
		reps = 1
	}

	weight, source := StartingWeight(name, c.RawName, equipType, level, history)

	out := exercise.PrescribedExercise{
		ID:            c.ID,
		Name:          name,
		Equipment:     equipment,
		EquipmentType: equipType,
		TargetMuscle:  c.TargetMuscle,
		BodyPart:      c.BodyPart,
		Class:         class,
		Sets:          sets,
		Reps:          reps,
		RestSeconds:   rest,
		WeightKg:      weight,
		WeightSource:  source,
		IsTimed:       c.IsTimed,
		HoldSeconds:   c.HoldSeconds,
		GifURL:        c.GifURL,
		VideoURL:      c.VideoURL,
		Provenance:    prov,
	}
	out.SetTargets = SetTargets(class, equipType, sets, reps, weight)
	if c.IsUnilateral {
		out.IsUnilateral = true
	} else if _, ok := catalog.AnyPhrase(name, g.cat.UnilateralKeywords); ok {
		out.IsUnilateral = true
	}
	if out.IsUnilateral {
		out.DisplayHint = EachSideHint
	}
	return out
}

func repsFor(rr RepRange, level exercise.FitnessLevel) int {
	switch level {
	case exercise.LevelAdvanced:
		return rr.Min
	case exercise.LevelIntermediate:
		return (rr.Min + rr.Max) / 2
	default:
		return rr.Max
	}
}

// StartingWeight prefers the user's last recorded weight for the exercise
// (exact name, then case-insensitive), and falls back to a generic estimate
// for the equipment and level.
func StartingWeight(name, rawName, equipType string, level exercise.FitnessLevel, history map[string]exercise.Strength) (float64, exercise.WeightSource) {
	if st, ok := lookupStrength(history, name, rawName); ok && st.LastWeightKg > 0 {
		return RoundWeight(st.LastWeightKg, equipType), exercise.WeightHistorical
	}
	if !isLoaded(equipType) {
		return 0, exercise.WeightGeneric
	}
	return genericWeights[equipType][level], exercise.WeightGeneric
}

func lookupStrength(history map[string]exercise.Strength, names ...string) (exercise.Strength, bool) {
	if len(history) == 0 {
		return exercise.Strength{}, false
	}
	for _, n := range names {
		if n == "" {
			continue
		}
		if st, ok := history[n]; ok {
			return st, true
		}
	}
	for key, st := range history {
		for _, n := range names {
			if n != "" && strings.EqualFold(strings.TrimSpace(key), strings.TrimSpace(n)) {
				return st, true
			}
		}
	}
	return exercise.Strength{}, false
}

// SetTargets lays out per-set targets. Loaded compounds with a known weight
// open with a light warmup set. Working sets walk RIR down 2, 1 and then hold
// at 1 for compounds or drop to 0 for everything else; RIR never increases.
func SetTargets(class exercise.ExerciseClass, equipType string, sets, reps int, weight float64) []exercise.SetTarget {
	if sets <= 0 {
		return nil
	}
	warmup := class.IsCompound() && isLoaded(equipType) && weight > 0 && sets >= 2
	out := make([]exercise.SetTarget, 0, sets)
	working := 0
	for n := 1; n <= sets; n++ {
		if warmup && n == 1 {
			out = append(out, exercise.SetTarget{
				SetNumber:      n,
				SetType:        exercise.SetWarmup,
				TargetReps:     minInt(reps+2, WarmupReps),
				TargetWeightKg: RoundWeight(weight*WarmupShare, equipType),
				TargetRIR:      WarmupRIR,
				TargetRPE:      10 - WarmupRIR,
			})
			continue
		}
		working++
		rir := workingRIR(working, class)
		setType := exercise.SetWorking
		if rir == 0 {
			setType = exercise.SetFailure
		}
		out = append(out, exercise.SetTarget{
			SetNumber:      n,
			SetType:        setType,
			TargetReps:     reps,
			TargetWeightKg: RoundWeight(weight*rirFactor[rir], equipType),
			TargetRIR:      rir,
			TargetRPE:      10 - rir,
		})
	}
	return out
}

func workingRIR(k int, class exercise.ExerciseClass) int {
	switch {
	case k <= 1:
		return 2
	case k == 2:
		return 1
	case class.IsCompound():
		return 1
	default:
		return 0
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
