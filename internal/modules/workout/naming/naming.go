package naming

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/yungbote/trainwise-backend/internal/modules/workout/catalog"
)

const (
	defaultDisplayName = "Exercise"
	defaultEquipment   = "Bodyweight"
)

var (
	reGender       = regexp.MustCompile(`(?i)(?:[\s_-]+|^)(?:fe)?male$`)
	reParenVersion = regexp.MustCompile(`(?i)\s*\(\s*(?:version|variation|var|v)\.?\s*\d+\s*\)`)
	reVersion      = regexp.MustCompile(`(?i)[\s_-]+(?:version|variation)[\s_-]*\d+\b`)
	reShortVersion = regexp.MustCompile(`(?i)[\s_-]+v\d+\b`)
	reDegrees      = regexp.MustCompile(`(?i)[\s_-]*\(?\s*360[\s_-]*degrees?\s*\)?$`)
	reTrailingID   = regexp.MustCompile(`[\s_-]+\d+$`)
	reSpaces       = regexp.MustCompile(`\s+`)

	titleCaser = cases.Title(language.English, cases.NoLower)
)

// CleanDisplayName strips catalogue noise (gender suffixes, version markers,
// video metadata, trailing ids) and title-cases what remains. Numbers that
// lead into more text, like "360-degree swing", are kept.
func CleanDisplayName(raw string) string {
	s := StripMarkers(raw)
	s = strings.ReplaceAll(s, "_", " ")
	s = reSpaces.ReplaceAllString(s, " ")
	s = strings.Trim(s, " -")
	if s == "" {
		return defaultDisplayName
	}
	return titleCaser.String(s)
}

// StripMarkers removes gender, version, video-metadata and trailing-id
// markers until none are left. Case and separators are otherwise untouched.
func StripMarkers(raw string) string {
	s := strings.TrimSpace(raw)
	for {
		prev := s
		s = reParenVersion.ReplaceAllString(s, "")
		s = reVersion.ReplaceAllString(s, "")
		s = reShortVersion.ReplaceAllString(s, "")
		s = reDegrees.ReplaceAllString(s, "")
		s = reTrailingID.ReplaceAllString(s, "")
		s = reGender.ReplaceAllString(s, "")
		s = strings.TrimSpace(s)
		if s == prev {
			return s
		}
	}
}

// InferEquipment guesses equipment from an exercise name, defaulting to bodyweight.
func InferEquipment(name string) string {
	eq, _ := MatchEquipment(name)
	return eq
}

// MatchEquipment is InferEquipment that also reports whether a pattern matched.
func MatchEquipment(name string) (string, bool) {
	lower := strings.ToLower(strings.ReplaceAll(name, "_", " "))
	spaced := strings.ReplaceAll(lower, "-", " ")
	for _, p := range catalog.Default().EquipmentPatterns {
		pat := strings.ToLower(p.Pattern)
		if strings.Contains(lower, pat) || strings.Contains(spaced, pat) {
			return p.Equipment, true
		}
	}
	return defaultEquipment, false
}

// NormalizeEquipmentList lowercases the user's equipment, expands the
// full_gym/home_gym/bodyweight_only shorthands and always allows bodyweight.
// Order is preserved and duplicates are dropped.
func NormalizeEquipmentList(list []string) []string {
	cat := catalog.Default()
	out := make([]string, 0, len(list)+len(cat.ImplicitEquipment))
	seen := map[string]struct{}{}
	add := func(v string) {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	for _, raw := range list {
		key := ShorthandKey(raw)
		if set, ok := cat.EquipmentSets[key]; ok {
			for _, v := range set {
				add(v)
			}
			continue
		}
		add(raw)
	}
	for _, v := range cat.ImplicitEquipment {
		add(v)
	}
	return out
}

// ShorthandKey folds "Full Gym", "full-gym" and "full_gym" to "full_gym".
func ShorthandKey(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return s
}

// IsBodyweight reports whether an equipment string means no equipment.
func IsBodyweight(equipment string) bool {
	switch strings.ToLower(strings.TrimSpace(equipment)) {
	case "", "body weight", "bodyweight", "body_weight", "none":
		return true
	}
	return false
}
