package safety

import (
	"testing"

	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
)

func TestFilterInjuriesDropsContraindicated(t *testing.T) {
	cands := []exercise.Candidate{
		{Name: "Barbell Squat", Similarity: 0.9},
		{Name: "Bench Press", TargetMuscle: "pectorals", Similarity: 0.8},
		{Name: "Walking Lunge", Similarity: 0.7},
	}
	res := FilterInjuries(cands, []string{"knee"})
	if res.FallbackUsed {
		t.Fatalf("fallback should not be used")
	}
	if len(res.Kept) != 1 || res.Kept[0].Name != "Bench Press" {
		t.Fatalf("kept: want=[Bench Press] got=%v", res.Kept)
	}
	if res.Removed != 2 {
		t.Fatalf("removed: want=2 got=%d", res.Removed)
	}
}

func TestFilterInjuriesLeastRiskFallback(t *testing.T) {
	cands := []exercise.Candidate{
		{Name: "Jump Squat", Similarity: 0.95},        // jump + squat
		{Name: "Goblet Squat", Similarity: 0.40},      // squat
		{Name: "Reverse Lunge", Similarity: 0.60},     // lunge
		{Name: "Box Jump Lunge Combo", Similarity: 1}, // jump + lunge
	}
	res := FilterInjuries(cands, []string{"knee"})
	if !res.FallbackUsed {
		t.Fatalf("expected least-risk fallback")
	}
	if len(res.Kept) != 2 {
		t.Fatalf("kept: want=2 got=%d (%v)", len(res.Kept), res.Kept)
	}
	if res.Kept[0].Name != "Reverse Lunge" || res.Kept[1].Name != "Goblet Squat" {
		t.Fatalf("order: want=[Reverse Lunge Goblet Squat] got=[%s %s]", res.Kept[0].Name, res.Kept[1].Name)
	}
	for _, c := range res.Kept {
		if InjuryHits(c, res.Patterns) != 1 {
			t.Fatalf("%s should have exactly one hit", c.Name)
		}
	}
}

func TestFilterInjuriesNoInjuries(t *testing.T) {
	cands := []exercise.Candidate{{Name: "Squat"}}
	res := FilterInjuries(cands, nil)
	if len(res.Kept) != 1 || res.FallbackUsed {
		t.Fatalf("no injuries must keep everything, got=%+v", res)
	}
}
