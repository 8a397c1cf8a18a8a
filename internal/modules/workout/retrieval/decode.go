package retrieval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/catalog"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/difficulty"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/naming"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/safety"
	"github.com/yungbote/trainwise-backend/internal/platform/qdrant"
)

// Payload keys accepted for each field, first match wins. The catalogue has
// been imported from sources with both snake and camel case keys.
var (
	keysName       = []string{"name", "exercise_name"}
	keysEquipment  = []string{"equipment"}
	keysBodyPart   = []string{"body_part", "bodyPart"}
	keysTarget     = []string{"target_muscle", "target", "targetMuscle"}
	keysSecondary  = []string{"secondary_muscles", "secondaryMuscles"}
	keysDifficulty = []string{"difficulty", "difficulty_level"}
	keysInstr      = []string{"instructions"}
	keysGif        = []string{"gif_url", "gifUrl"}
	keysVideo      = []string{"video_url", "videoUrl"}
	keysUnilateral = []string{"is_unilateral", "unilateral"}
	keysTimed      = []string{"is_timed", "timed"}
	keysHold       = []string{"hold_seconds", "duration_seconds"}
	keysSingleUnit = []string{"single_unit_ok", "single_unit"}
)

// DecodeCandidate turns a search hit into a Candidate. Missing equipment is
// inferred from the name, missing difficulty resolves to the default level.
// It reports false when the record has no usable name.
func DecodeCandidate(m qdrant.Match) (exercise.Candidate, bool) {
	p := m.Payload
	raw := str(p, keysName)
	if raw == "" {
		return exercise.Candidate{}, false
	}
	c := exercise.Candidate{
		ID:               m.ID,
		RawName:          raw,
		Name:             naming.CleanDisplayName(raw),
		BodyPart:         strings.ToLower(str(p, keysBodyPart)),
		TargetMuscle:     strings.ToLower(str(p, keysTarget)),
		SecondaryMuscles: safety.ParseSecondaryMuscles(value(p, keysSecondary)),
		Instructions:     instructions(value(p, keysInstr)),
		GifURL:           str(p, keysGif),
		VideoURL:         str(p, keysVideo),
		HoldSeconds:      integer(p, keysHold),
		Similarity:       m.Score,
	}
	if id := str(p, []string{"id"}); id != "" {
		c.ID = id
	}

	c.Equipment = str(p, keysEquipment)
	if c.Equipment == "" {
		eq, _ := naming.MatchEquipment(raw)
		c.Equipment = eq
		c.EquipmentInferred = true
	}

	rawDiff := value(p, keysDifficulty)
	c.Difficulty = difficulty.ToNumeric(rawDiff)
	if label, ok := rawDiff.(string); ok {
		c.DifficultyLabel = strings.ToLower(strings.TrimSpace(label))
	}

	c.IsUnilateral = boolean(p, keysUnilateral)
	if !c.IsUnilateral {
		_, c.IsUnilateral = catalog.AnyPhrase(c.Name, catalog.Default().UnilateralKeywords)
	}
	c.IsTimed = boolean(p, keysTimed) || c.HoldSeconds > 0
	c.SingleUnitOK = boolean(p, keysSingleUnit) || c.IsUnilateral
	return c, true
}

func value(p map[string]any, keys []string) any {
	for _, k := range keys {
		if v, ok := p[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func str(p map[string]any, keys []string) string {
	switch v := value(p, keys).(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func boolean(p map[string]any, keys []string) bool {
	switch v := value(p, keys).(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	case float64:
		return v != 0
	}
	return false
}

func integer(p map[string]any, keys []string) int {
	switch v := value(p, keys).(type) {
	case float64:
		if v > 0 {
			return int(v)
		}
	case int:
		if v > 0 {
			return v
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

// Instructions arrive either as one string or as a list of steps.
func instructions(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		steps := make([]string, 0, len(t))
		for _, s := range t {
			if step, ok := s.(string); ok && strings.TrimSpace(step) != "" {
				steps = append(steps, strings.TrimSpace(step))
			}
		}
		return strings.Join(steps, "\n")
	}
	return ""
}
