package exercise

import (
	"strings"

	"github.com/google/uuid"
)

type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

// ParseFitnessLevel maps free text onto a level. Anything unrecognised is a beginner.
func ParseFitnessLevel(s string) FitnessLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "intermediate", "medium", "moderate":
		return LevelIntermediate
	case "advanced", "expert", "elite":
		return LevelAdvanced
	default:
		return LevelBeginner
	}
}

type Pace string

const (
	PaceSlow   Pace = "slow"
	PaceMedium Pace = "medium"
	PaceFast   Pace = "fast"
)

func ParsePace(s string) Pace {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "slow":
		return PaceSlow
	case "fast":
		return PaceFast
	default:
		return PaceMedium
	}
}

type ConsistencyMode string

const (
	ConsistencyVary       ConsistencyMode = "vary"
	ConsistencyConsistent ConsistencyMode = "consistent"
)

func ParseConsistencyMode(s string) ConsistencyMode {
	if strings.EqualFold(strings.TrimSpace(s), string(ConsistencyConsistent)) {
		return ConsistencyConsistent
	}
	return ConsistencyVary
}

type WorkoutType string

const (
	WorkoutStrength WorkoutType = "strength"
	WorkoutCardio   WorkoutType = "cardio"
	WorkoutMobility WorkoutType = "mobility"
	WorkoutRecovery WorkoutType = "recovery"
	WorkoutMixed    WorkoutType = "mixed"
)

func ParseWorkoutType(s string) WorkoutType {
	switch WorkoutType(strings.ToLower(strings.TrimSpace(s))) {
	case WorkoutStrength:
		return WorkoutStrength
	case WorkoutCardio:
		return WorkoutCardio
	case WorkoutMobility:
		return WorkoutMobility
	case WorkoutRecovery:
		return WorkoutRecovery
	default:
		return WorkoutMixed
	}
}

type AvoidedMuscles struct {
	Avoid  []string `json:"avoid,omitempty"`
	Reduce []string `json:"reduce,omitempty"`
}

// WorkoutRequest is the immutable input to one generation.
type WorkoutRequest struct {
	UserID               uuid.UUID       `json:"-"`
	FocusArea            string          `json:"focus_area"`
	Equipment            []string        `json:"equipment"`
	FitnessLevel         FitnessLevel    `json:"fitness_level"`
	Goals                []string        `json:"goals,omitempty"`
	Count                int             `json:"count"`
	Avoid                []string        `json:"avoid,omitempty"`
	Injuries             []string        `json:"injuries,omitempty"`
	EquipmentUnits       map[string]int  `json:"equipment_units,omitempty"`
	Consistency          ConsistencyMode `json:"consistency_mode,omitempty"`
	RecentlyUsed         []string        `json:"recently_used,omitempty"`
	Staples              []string        `json:"staples,omitempty"`
	Queued               []string        `json:"queued,omitempty"`
	Favorites            []string        `json:"favorite_exercises,omitempty"`
	Variation            *int            `json:"variation_percentage,omitempty"`
	AvoidedMuscles       AvoidedMuscles  `json:"avoided_muscles"`
	Pace                 Pace            `json:"progression_pace,omitempty"`
	WorkoutType          WorkoutType     `json:"workout_type,omitempty"`
	Readiness            *int            `json:"readiness_score,omitempty"`
	Mood                 string          `json:"mood,omitempty"`
	DifficultyAdjustment int             `json:"difficulty_adjustment"`
	BatchOffset          int             `json:"batch_offset"`
	RequireMedia         *bool           `json:"require_media,omitempty"`
}

const (
	DefaultCount     = 6
	DefaultVariation = 30
)

// Normalized returns a copy with enums parsed, defaults applied and the
// difficulty adjustment clamped to [-2,2]. The receiver is not modified.
func (r WorkoutRequest) Normalized() WorkoutRequest {
	out := r
	out.FitnessLevel = ParseFitnessLevel(string(r.FitnessLevel))
	out.Pace = ParsePace(string(r.Pace))
	out.Consistency = ParseConsistencyMode(string(r.Consistency))
	out.WorkoutType = ParseWorkoutType(string(r.WorkoutType))
	if out.Count <= 0 {
		out.Count = DefaultCount
	}
	if out.BatchOffset < 0 {
		out.BatchOffset = 0
	}
	out.DifficultyAdjustment = ClampAdjustment(r.DifficultyAdjustment)
	out.FocusArea = strings.TrimSpace(r.FocusArea)
	return out
}

func (r WorkoutRequest) VariationPercent() int {
	if r.Variation == nil {
		return DefaultVariation
	}
	v := *r.Variation
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func (r WorkoutRequest) MediaRequired() bool {
	if r.RequireMedia == nil {
		return true
	}
	return *r.RequireMedia
}

func ClampAdjustment(adj int) int {
	if adj < -2 {
		return -2
	}
	if adj > 2 {
		return 2
	}
	return adj
}
