package safety

import (
	"strings"

	"github.com/yungbote/trainwise-backend/internal/modules/workout/catalog"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/naming"
)

// EquipmentFilter decides whether an exercise can be done with what the user owns.
type EquipmentFilter struct {
	allowed   [][]string
	userWords map[string]struct{}
}

// NewEquipmentFilter expands shorthands and always admits bodyweight.
func NewEquipmentFilter(userEquipment []string) *EquipmentFilter {
	f := &EquipmentFilter{userWords: map[string]struct{}{}}
	for _, item := range naming.NormalizeEquipmentList(userEquipment) {
		words := catalog.Words(item)
		if len(words) == 0 {
			continue
		}
		f.allowed = append(f.allowed, words)
		for _, w := range words {
			f.userWords[w] = struct{}{}
		}
	}
	return f
}

// Allows matches whole words, never substrings, so "bar" does not admit
// "barbell". When the listed equipment fails, equipment inferred from the
// exercise name gets a second chance, but only if a name pattern matched.
func (f *EquipmentFilter) Allows(equipment, name string) bool {
	if strings.TrimSpace(equipment) == "" {
		equipment = naming.InferEquipment(name)
	}
	if f.matches(equipment) {
		return true
	}
	inferred, ok := naming.MatchEquipment(name)
	if !ok || strings.EqualFold(inferred, equipment) {
		return false
	}
	return f.matches(inferred)
}

func (f *EquipmentFilter) matches(equipment string) bool {
	exWords := catalog.Words(equipment)
	if len(exWords) == 0 {
		return false
	}
	exSet := make(map[string]struct{}, len(exWords))
	for _, w := range exWords {
		exSet[w] = struct{}{}
	}
	for _, words := range f.allowed {
		if subset(words, exSet) {
			return true
		}
	}
	if len(exSet) == 1 {
		_, ok := f.userWords[exWords[0]]
		return ok
	}
	return false
}

func subset(words []string, set map[string]struct{}) bool {
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if _, ok := set[w]; !ok {
			return false
		}
	}
	return true
}

// EquipmentCompatible is the one-shot form of EquipmentFilter.Allows.
func EquipmentCompatible(exerciseEquipment string, userEquipment []string, name string) bool {
	return NewEquipmentFilter(userEquipment).Allows(exerciseEquipment, name)
}
