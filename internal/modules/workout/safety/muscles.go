package safety

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
)

const (
	DefaultInvolvement        = 0.30
	AvoidInvolvementThreshold = 0.20
	PrimaryReduceFactor       = 0.5
)

// ParseSecondaryMuscles accepts every shape the exercise catalogue has used
// for secondary muscles and normalises them to lowercase records. Anything it
// cannot read yields an empty list.
func ParseSecondaryMuscles(raw any) []exercise.SecondaryMuscle {
	switch v := raw.(type) {
	case nil:
		return nil
	case []exercise.SecondaryMuscle:
		out := make([]exercise.SecondaryMuscle, 0, len(v))
		for _, sm := range v {
			out = appendMuscle(out, sm.Muscle, sm.Involvement, sm.Involvement > 0)
		}
		return out
	case []string:
		out := make([]exercise.SecondaryMuscle, 0, len(v))
		for _, name := range v {
			out = appendMuscle(out, name, 0, false)
		}
		return out
	case []map[string]any:
		out := make([]exercise.SecondaryMuscle, 0, len(v))
		for _, m := range v {
			out = appendMap(out, m)
		}
		return out
	case []any:
		out := make([]exercise.SecondaryMuscle, 0, len(v))
		for _, item := range v {
			switch it := item.(type) {
			case string:
				out = appendMuscle(out, it, 0, false)
			case map[string]any:
				out = appendMap(out, it)
			case exercise.SecondaryMuscle:
				out = appendMuscle(out, it.Muscle, it.Involvement, it.Involvement > 0)
			}
		}
		return out
	case map[string]any:
		return appendMap(nil, v)
	case string:
		return parseMuscleString(v)
	default:
		return nil
	}
}

func parseMuscleString(s string) []exercise.SecondaryMuscle {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		var decoded any
		if err := json.Unmarshal([]byte(s), &decoded); err == nil {
			return ParseSecondaryMuscles(decoded)
		}
		s = strings.Trim(s, "[]{}")
	}
	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		out := make([]exercise.SecondaryMuscle, 0, len(parts))
		for _, p := range parts {
			out = appendMuscle(out, strings.Trim(p, ` "'`), 0, false)
		}
		return out
	}
	return appendMuscle(nil, strings.Trim(s, `"'`), 0, false)
}

func appendMap(out []exercise.SecondaryMuscle, m map[string]any) []exercise.SecondaryMuscle {
	name := ""
	for _, k := range []string{"muscle", "name"} {
		if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
			name = s
			break
		}
	}
	for _, k := range []string{"involvement", "weight", "percentage"} {
		if inv, ok := toFloat(m[k]); ok {
			return appendMuscle(out, name, inv, true)
		}
	}
	return appendMuscle(out, name, 0, false)
}

func appendMuscle(out []exercise.SecondaryMuscle, name string, inv float64, hasInv bool) []exercise.SecondaryMuscle {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return out
	}
	if !hasInv {
		inv = DefaultInvolvement
	}
	if inv > 1 {
		inv = inv / 100
	}
	if inv < 0 {
		inv = 0
	}
	if inv > 1 {
		inv = 1
	}
	return append(out, exercise.SecondaryMuscle{Muscle: name, Involvement: inv})
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(n), "%"), 64)
		return f, err == nil
	}
	return 0, false
}

type MuscleStats struct {
	PrimaryDrops       int `json:"primary_drops"`
	SecondaryDrops     int `json:"secondary_drops"`
	PrimaryPenalties   int `json:"primary_penalties"`
	SecondaryPenalties int `json:"secondary_penalties"`
}

// FilterAvoidedMuscles hard-drops candidates that load an avoided muscle,
// either as the primary target or body part, or as a secondary muscle doing
// more than 20% of the work.
func FilterAvoidedMuscles(cands []exercise.Candidate, avoid []string) ([]exercise.Candidate, MuscleStats) {
	var stats MuscleStats
	list := lowerList(avoid)
	if len(list) == 0 {
		return cands, stats
	}
	out := make([]exercise.Candidate, 0, len(cands))
	for _, c := range cands {
		switch {
		case primaryMatch(c, list):
			stats.PrimaryDrops++
		case secondaryAvoidMatch(c, list):
			stats.SecondaryDrops++
		default:
			out = append(out, c)
		}
	}
	return out, stats
}

// PenaltyKind says which rule produced a reduce-list penalty.
type PenaltyKind string

const (
	PenaltyNone      PenaltyKind = ""
	PenaltyPrimary   PenaltyKind = "primary"
	PenaltySecondary PenaltyKind = "secondary"
)

// ReducePenalty returns the score multiplier for a candidate given the
// reduce list. A primary match wins outright; otherwise the most involved
// matching secondary muscle sets the factor 1 - involvement*0.5.
func ReducePenalty(c exercise.Candidate, reduce []string) (float64, PenaltyKind) {
	list := lowerList(reduce)
	if len(list) == 0 {
		return 1, PenaltyNone
	}
	if primaryMatch(c, list) {
		return PrimaryReduceFactor, PenaltyPrimary
	}
	best := -1.0
	for _, sm := range c.SecondaryMuscles {
		for _, m := range list {
			if mutualContains(sm.Muscle, m) && sm.Involvement > best {
				best = sm.Involvement
			}
		}
	}
	if best < 0 {
		return 1, PenaltyNone
	}
	return 1 - best*0.5, PenaltySecondary
}

func primaryMatch(c exercise.Candidate, list []string) bool {
	target := strings.ToLower(c.TargetMuscle)
	body := strings.ToLower(c.BodyPart)
	for _, m := range list {
		if mutualContains(target, m) || mutualContains(body, m) {
			return true
		}
	}
	return false
}

func secondaryAvoidMatch(c exercise.Candidate, list []string) bool {
	for _, sm := range c.SecondaryMuscles {
		if sm.Involvement <= AvoidInvolvementThreshold {
			continue
		}
		for _, m := range list {
			if mutualContains(sm.Muscle, m) {
				return true
			}
		}
	}
	return false
}

func mutualContains(value, muscle string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" || muscle == "" {
		return false
	}
	return strings.Contains(value, muscle) || strings.Contains(muscle, value)
}

func lowerList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
