package prescription

import (
	"strings"

	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/catalog"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/naming"
)

type RepRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Classifier assigns an exercise class and the rep range that goes with it.
type Classifier interface {
	Classify(name, equipment string) exercise.ExerciseClass
	RepRange(class exercise.ExerciseClass) RepRange
}

var defaultRepRanges = map[exercise.ExerciseClass]RepRange{
	exercise.ClassCompoundUpper: {Min: 6, Max: 10},
	exercise.ClassCompoundLower: {Min: 6, Max: 10},
	exercise.ClassIsolation:     {Min: 10, Max: 15},
	exercise.ClassBodyweight:    {Min: 8, Max: 15},
}

// KeywordClassifier classifies by equipment first (no equipment means
// bodyweight), then by name keywords: lower-body compounds, isolation
// movements, upper-body compounds. Unknown names are isolation.
type KeywordClassifier struct {
	cat *catalog.Catalog
}

func NewKeywordClassifier(cat *catalog.Catalog) *KeywordClassifier {
	if cat == nil {
		cat = catalog.Default()
	}
	return &KeywordClassifier{cat: cat}
}

func (k *KeywordClassifier) Classify(name, equipment string) exercise.ExerciseClass {
	if strings.TrimSpace(equipment) == "" {
		equipment = naming.InferEquipment(name)
	}
	if naming.IsBodyweight(equipment) {
		return exercise.ClassBodyweight
	}
	if _, ok := catalog.AnyPhrase(name, k.cat.Classes.CompoundLower); ok {
		return exercise.ClassCompoundLower
	}
	if _, ok := catalog.AnyPhrase(name, k.cat.Classes.Isolation); ok {
		return exercise.ClassIsolation
	}
	if _, ok := catalog.AnyPhrase(name, k.cat.Classes.CompoundUpper); ok {
		return exercise.ClassCompoundUpper
	}
	return exercise.ClassIsolation
}

func (k *KeywordClassifier) RepRange(class exercise.ExerciseClass) RepRange {
	if rr, ok := defaultRepRanges[class]; ok {
		return rr
	}
	return defaultRepRanges[exercise.ClassIsolation]
}
