package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/catalog"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/naming"
)

// ProgramKeywords looks up extra search phrases for custom training-program goals.
type ProgramKeywords interface {
	PhrasesForGoals(ctx context.Context, goals []string) (map[string][]string, error)
}

// Build composes the semantic search string for a request. Parts are
// joined by single spaces in a fixed order: focus, equipment, level, goals.
func Build(req exercise.WorkoutRequest, programPhrases map[string][]string) string {
	parts := []string{
		FocusPhrase(req.FocusArea),
		EquipmentPhrase(req.Equipment),
		catalog.Default().LevelPhrases[string(exercise.ParseFitnessLevel(string(req.FitnessLevel)))],
		GoalPhrase(req.Goals, programPhrases),
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func FocusPhrase(area string) string {
	key := strings.Join(catalog.Words(area), " ")
	if key == "" {
		key = "full body"
	}
	if phrase, ok := catalog.Default().FocusAreas[key]; ok {
		return phrase
	}
	return fmt.Sprintf("Exercises for %s workout", strings.TrimSpace(area))
}

func EquipmentPhrase(equipment []string) string {
	var items []string
	seen := map[string]struct{}{}
	for _, raw := range equipment {
		item := strings.ToLower(strings.TrimSpace(raw))
		switch naming.ShorthandKey(raw) {
		case "full_gym":
			item = "full gym equipment"
		case "home_gym":
			item = "home gym equipment"
		case "bodyweight_only":
			item = "bodyweight"
		}
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		items = append(items, item)
	}
	if len(items) == 0 {
		return ""
	}
	return "using " + strings.Join(items, " and ")
}

// GoalPhrase appends the static phrase for each goal followed by any
// program-specific phrases for it. Repeated phrases are emitted once.
func GoalPhrase(goals []string, programPhrases map[string][]string) string {
	cat := catalog.Default()
	var out []string
	seen := map[string]struct{}{}
	add := func(p string) {
		p = strings.TrimSpace(p)
		if p == "" {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, g := range goals {
		key := strings.Join(catalog.Words(g), "_")
		add(cat.Goals[key])
		for _, k := range []string{g, strings.ToLower(strings.TrimSpace(g)), key} {
			for _, p := range programPhrases[k] {
				add(p)
			}
		}
	}
	return strings.Join(out, " ")
}
