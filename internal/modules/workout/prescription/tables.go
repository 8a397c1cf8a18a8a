package prescription

import (
	"math"

	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/catalog"
)

type group string

const (
	groupCompound   group = "compound"
	groupIsolation  group = "isolation"
	groupBodyweight group = "bodyweight"
)

func groupOf(class exercise.ExerciseClass) group {
	switch {
	case class.IsCompound():
		return groupCompound
	case class == exercise.ClassBodyweight:
		return groupBodyweight
	default:
		return groupIsolation
	}
}

var setsTable = map[group]map[exercise.FitnessLevel]int{
	groupCompound:   {exercise.LevelBeginner: 3, exercise.LevelIntermediate: 4, exercise.LevelAdvanced: 5},
	groupIsolation:  {exercise.LevelBeginner: 2, exercise.LevelIntermediate: 3, exercise.LevelAdvanced: 3},
	groupBodyweight: {exercise.LevelBeginner: 2, exercise.LevelIntermediate: 3, exercise.LevelAdvanced: 4},
}

// rest in seconds
var restTable = map[group]map[exercise.FitnessLevel]int{
	groupCompound:   {exercise.LevelBeginner: 90, exercise.LevelIntermediate: 120, exercise.LevelAdvanced: 150},
	groupIsolation:  {exercise.LevelBeginner: 60, exercise.LevelIntermediate: 60, exercise.LevelAdvanced: 75},
	groupBodyweight: {exercise.LevelBeginner: 45, exercise.LevelIntermediate: 60, exercise.LevelAdvanced: 60},
}

const (
	MaxSets     = 6
	MinSets     = 2
	MaxRest     = 150
	MinRest     = 30
	PaceReps    = 2
	PaceRest    = 15
	WarmupRIR   = 5
	WarmupShare = 0.5
	WarmupReps  = 15
)

// rirFactor converts a working set's RIR into a multiple of the starting weight.
var rirFactor = map[int]float64{2: 1.00, 1: 1.05, 0: 1.10}

// Equipment types. Only loaded types get a warmup set or a weight estimate.
const (
	EquipBarbell    = "barbell"
	EquipDumbbell   = "dumbbell"
	EquipCable      = "cable"
	EquipMachine    = "machine"
	EquipKettlebell = "kettlebell"
	EquipEZBar      = "ez bar"
	EquipBodyweight = "bodyweight"
	EquipOther      = "other"
)

var increments = map[string]float64{
	EquipDumbbell:   2.5,
	EquipCable:      2.5,
	EquipBarbell:    2.5,
	EquipEZBar:      2.5,
	EquipMachine:    5.0,
	EquipKettlebell: 4.0,
}

// genericWeights[equipmentType][level] in kg, for users with no history.
var genericWeights = map[string]map[exercise.FitnessLevel]float64{
	EquipBarbell:    {exercise.LevelBeginner: 20, exercise.LevelIntermediate: 40, exercise.LevelAdvanced: 60},
	EquipDumbbell:   {exercise.LevelBeginner: 6, exercise.LevelIntermediate: 12, exercise.LevelAdvanced: 20},
	EquipKettlebell: {exercise.LevelBeginner: 8, exercise.LevelIntermediate: 12, exercise.LevelAdvanced: 16},
	EquipCable:      {exercise.LevelBeginner: 10, exercise.LevelIntermediate: 20, exercise.LevelAdvanced: 30},
	EquipMachine:    {exercise.LevelBeginner: 20, exercise.LevelIntermediate: 40, exercise.LevelAdvanced: 60},
	EquipEZBar:      {exercise.LevelBeginner: 15, exercise.LevelIntermediate: 25, exercise.LevelAdvanced: 35},
}

// EquipmentType folds an equipment string into one of the types above.
func EquipmentType(equipment string) string {
	switch {
	case catalog.ContainsPhrase(equipment, "ez bar") || catalog.ContainsPhrase(equipment, "ez"):
		return EquipEZBar
	case catalog.ContainsPhrase(equipment, "barbell") || catalog.ContainsPhrase(equipment, "trap bar"):
		return EquipBarbell
	case catalog.ContainsPhrase(equipment, "dumbbell"):
		return EquipDumbbell
	case catalog.ContainsPhrase(equipment, "kettlebell"):
		return EquipKettlebell
	case catalog.ContainsPhrase(equipment, "cable"):
		return EquipCable
	case catalog.ContainsPhrase(equipment, "machine") || catalog.ContainsPhrase(equipment, "lever") ||
		catalog.ContainsPhrase(equipment, "leverage") || catalog.ContainsPhrase(equipment, "sled"):
		return EquipMachine
	case isBodyweightWord(equipment):
		return EquipBodyweight
	default:
		return EquipOther
	}
}

func isBodyweightWord(equipment string) bool {
	return equipment == "" || catalog.ContainsPhrase(equipment, "body weight") ||
		catalog.ContainsPhrase(equipment, "bodyweight") || catalog.ContainsPhrase(equipment, "none")
}

func isLoaded(equipType string) bool {
	_, ok := increments[equipType]
	return ok
}

// RoundWeight rounds to the equipment's plate or pin increment.
func RoundWeight(weight float64, equipType string) float64 {
	if weight <= 0 {
		return 0
	}
	inc, ok := increments[equipType]
	if !ok {
		inc = 0.5
	}
	return math.Round(weight/inc) * inc
}
