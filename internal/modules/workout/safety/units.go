package safety

import (
	"strings"

	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/catalog"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/similarity"
)

// SingleUnitFamilies lists the paired-equipment families (dumbbells,
// kettlebells) the user owns exactly one of.
func SingleUnitFamilies(units map[string]int) []string {
	var out []string
	for _, fam := range catalog.Default().UnitFamilies {
		for raw, n := range units {
			key := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(raw)), "s")
			if key == fam && n == 1 {
				out = append(out, fam)
				break
			}
		}
	}
	return out
}

// SingleUnitOK reports whether an exercise can be done with a single unit of
// its equipment, from metadata or from the name.
func SingleUnitOK(c exercise.Candidate) bool {
	if c.SingleUnitOK {
		return true
	}
	_, ok := catalog.AnyPhrase(c.DisplayName(), catalog.Default().SingleUnitKeywords)
	return ok
}

// FilterSingleUnit drops exercises that need a pair of something the user
// only has one of. It returns the survivors and the number dropped.
func FilterSingleUnit(cands []exercise.Candidate, units map[string]int) ([]exercise.Candidate, int) {
	families := SingleUnitFamilies(units)
	if len(families) == 0 {
		return cands, 0
	}
	out := make([]exercise.Candidate, 0, len(cands))
	dropped := 0
	for _, c := range cands {
		needsPair := false
		for _, fam := range families {
			if catalog.ContainsPhrase(c.Equipment, fam) && !SingleUnitOK(c) {
				needsPair = true
				break
			}
		}
		if needsPair {
			dropped++
			continue
		}
		out = append(out, c)
	}
	return out, dropped
}

// FilterAvoidList drops candidates the user asked never to see, matched on
// display name or normalised base name, case-insensitively.
func FilterAvoidList(cands []exercise.Candidate, avoid []string) ([]exercise.Candidate, int) {
	if len(avoid) == 0 {
		return cands, 0
	}
	names := map[string]struct{}{}
	for _, a := range avoid {
		if a = strings.TrimSpace(a); a != "" {
			names[strings.ToLower(a)] = struct{}{}
			if base := similarity.NormalizeBaseName(a); base != "" {
				names[base] = struct{}{}
			}
		}
	}
	out := make([]exercise.Candidate, 0, len(cands))
	for _, c := range cands {
		_, byName := names[strings.ToLower(c.DisplayName())]
		_, byBase := names[similarity.NormalizeBaseName(c.DisplayName())]
		if byName || byBase {
			continue
		}
		out = append(out, c)
	}
	return out, len(cands) - len(out)
}
