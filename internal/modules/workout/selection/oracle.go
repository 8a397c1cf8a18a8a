package selection

import (
	"context"

	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
)

type ShortlistItem struct {
	Index        int    `json:"index"`
	Name         string `json:"name"`
	TargetMuscle string `json:"target_muscle"`
	Equipment    string `json:"equipment"`
	BodyPart     string `json:"body_part"`
}

// SelectionContext is what the oracle may know about the request.
type SelectionContext struct {
	FocusArea    string                `json:"focus_area"`
	FitnessLevel exercise.FitnessLevel `json:"fitness_level"`
	Goals        []string              `json:"goals,omitempty"`
	WorkoutType  exercise.WorkoutType  `json:"workout_type,omitempty"`
	Reserved     []string              `json:"reserved,omitempty"`
}

// Oracle picks count exercises from a shortlist and returns their 1-based
// indices. Implementations may return fewer, out of range or repeated
// indices; the Adapter cleans that up.
type Oracle interface {
	Select(ctx context.Context, shortlist []ShortlistItem, count int, sc SelectionContext) ([]int, error)
}

// TopNOracle picks the first count items. It is deterministic and is used
// when no model-backed oracle is configured.
type TopNOracle struct{}

func (TopNOracle) Select(ctx context.Context, shortlist []ShortlistItem, count int, _ SelectionContext) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if count > len(shortlist) {
		count = len(shortlist)
	}
	out := make([]int, 0, count)
	for i := 1; i <= count; i++ {
		out = append(out, i)
	}
	return out, nil
}
