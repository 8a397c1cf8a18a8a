package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yungbote/trainwise-backend/internal/modules/workout/selection"
	"github.com/yungbote/trainwise-backend/internal/platform/logger"
)

const SchemaName = "exercise_selection_v1"

var _ selection.Oracle = (*LLMOracle)(nil)

type JSONGenerator interface {
	GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any) (map[string]any, error)
}

// LLMOracle asks a language model to pick exercises from the shortlist.
// It returns whatever indices the model produced; range and duplicate
// checks belong to selection.Adapter.
type LLMOracle struct {
	log *logger.Logger
	ai  JSONGenerator
}

func NewLLMOracle(log *logger.Logger, ai JSONGenerator) (*LLMOracle, error) {
	if ai == nil {
		return nil, fmt.Errorf("oracle: json generator required")
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &LLMOracle{log: log.With("service", "LLMOracle"), ai: ai}, nil
}

type modelOut struct {
	SelectedIndices []int `json:"selected_indices"`
}

func (o *LLMOracle) Select(ctx context.Context, shortlist []selection.ShortlistItem, count int, sc selection.SelectionContext) ([]int, error) {
	if count <= 0 || len(shortlist) == 0 {
		return nil, nil
	}
	user, err := userPrompt(shortlist, count, sc)
	if err != nil {
		return nil, err
	}
	obj, err := o.ai.GenerateJSON(ctx, systemPrompt, user, SchemaName, Schema())
	if err != nil {
		return nil, err
	}
	raw, _ := json.Marshal(obj)
	var out modelOut
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("exercise selection: invalid model output: %w", err)
	}
	o.log.Debug("Oracle selection", "requested", count, "shortlist", len(shortlist), "returned", len(out.SelectedIndices))
	return out.SelectedIndices, nil
}

// Schema is the strict response format: a list of 1-based indices.
func Schema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"selected_indices"},
		"properties": map[string]any{
			"selected_indices": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			},
		},
	}
}

const systemPrompt = `Select exercises for one workout from a numbered shortlist.
Rules:
- Return exactly the requested number of indices when the shortlist allows it.
- Use the 1-based "index" values from the shortlist. Never repeat an index.
- Prefer a balanced session: vary movement patterns and target muscles.
- Exercises listed under "already_included" are in the workout; do not pick anything that duplicates them.
- Respect the user's focus area, level and goals.`

type promptInput struct {
	Count           int                       `json:"count"`
	FocusArea       string                    `json:"focus_area"`
	FitnessLevel    string                    `json:"fitness_level"`
	Goals           []string                  `json:"goals,omitempty"`
	WorkoutType     string                    `json:"workout_type,omitempty"`
	AlreadyIncluded []string                  `json:"already_included,omitempty"`
	Shortlist       []selection.ShortlistItem `json:"shortlist"`
}

func userPrompt(shortlist []selection.ShortlistItem, count int, sc selection.SelectionContext) (string, error) {
	in := promptInput{
		Count:           count,
		FocusArea:       strings.TrimSpace(sc.FocusArea),
		FitnessLevel:    string(sc.FitnessLevel),
		Goals:           sc.Goals,
		WorkoutType:     string(sc.WorkoutType),
		AlreadyIncluded: sc.Reserved,
		Shortlist:       shortlist,
	}
	raw, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return "", fmt.Errorf("exercise selection: encode prompt: %w", err)
	}
	return fmt.Sprintf("Pick %d exercises.\n\n%s", count, raw), nil
}
