package similarity

import (
	"strings"

	"github.com/yungbote/trainwise-backend/internal/modules/workout/catalog"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/naming"
)

// OverlapThreshold is the share of the smaller word set two names must have
// in common to count as the same exercise.
const OverlapThreshold = 0.8

// NormalizeBaseName reduces a name to lowercase content words with markers
// and filler words removed. NormalizeBaseName(NormalizeBaseName(x)) equals
// NormalizeBaseName(x).
func NormalizeBaseName(name string) string {
	cur := name
	for i := 0; i < 8; i++ {
		next := normalizeOnce(cur)
		if next == cur {
			return next
		}
		cur = next
	}
	return cur
}

func normalizeOnce(name string) string {
	cat := catalog.Default()
	s := naming.StripMarkers(strings.ToLower(name))
	words := catalog.Words(s)
	kept := words[:0]
	for _, w := range words {
		if cat.IsFiller(w) {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// MovementPattern returns the first pattern whose keywords appear in name,
// or "" when none do.
func MovementPattern(name string) string {
	for _, p := range catalog.Default().MovementPatterns {
		if _, ok := catalog.AnyPhrase(name, p.Keywords); ok {
			return p.Pattern
		}
	}
	return ""
}

// AreSimilar reports whether two exercise names describe the same movement.
// Empty names are never similar to anything.
func AreSimilar(a, b string, checkPattern bool) bool {
	na, nb := NormalizeBaseName(a), NormalizeBaseName(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	wa, wb := wordSet(na), wordSet(nb)
	small, large := wa, wb
	if len(small) > len(large) {
		small, large = large, small
	}
	common := 0
	for w := range small {
		if _, ok := large[w]; ok {
			common++
		}
	}
	if common == len(small) {
		return true
	}
	if float64(common)/float64(len(small)) >= OverlapThreshold {
		return true
	}
	if checkPattern {
		pa := MovementPattern(na)
		return pa != "" && pa == MovementPattern(nb)
	}
	return false
}

func wordSet(s string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, w := range strings.Fields(s) {
		out[w] = struct{}{}
	}
	return out
}

// Seen tracks exercises already accepted so later candidates that are
// similar to any of them can be rejected.
type Seen struct {
	checkPattern bool
	names        []string
}

func NewSeen(checkPattern bool, initial ...string) *Seen {
	s := &Seen{checkPattern: checkPattern}
	for _, n := range initial {
		s.Add(n)
	}
	return s
}

func (s *Seen) Add(name string) {
	if strings.TrimSpace(name) == "" {
		return
	}
	s.names = append(s.names, name)
}

func (s *Seen) Contains(name string) bool {
	for _, n := range s.names {
		if AreSimilar(n, name, s.checkPattern) {
			return true
		}
	}
	return false
}

// Admit adds name unless something similar was already seen.
func (s *Seen) Admit(name string) bool {
	if s.Contains(name) {
		return false
	}
	s.Add(name)
	return true
}

func (s *Seen) Len() int { return len(s.names) }
