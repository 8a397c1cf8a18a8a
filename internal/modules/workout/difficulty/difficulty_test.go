package difficulty

import (
	"math"
	"testing"

	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
)

func TestToNumeric(t *testing.T) {
	cases := []struct {
		in   any
		want int
	}{
		{nil, 2},
		{"", 2},
		{"beginner", 2},
		{"Intermediate", 5},
		{"hard", 8},
		{"expert", 9},
		{"elite", 10},
		{"7", 7},
		{7.6, 8},
		{42, 10},
		{0, 2},
		{"unknown", 2},
		{struct{}{}, 2},
	}
	for _, tc := range cases {
		if got := ToNumeric(tc.in); got != tc.want {
			t.Fatalf("ToNumeric(%v): want=%d got=%d", tc.in, tc.want, got)
		}
	}
}

func TestCategory(t *testing.T) {
	if Category(3) != exercise.LevelBeginner || Category(4) != exercise.LevelIntermediate ||
		Category(6) != exercise.LevelIntermediate || Category(7) != exercise.LevelAdvanced {
		t.Fatalf("category thresholds wrong")
	}
}

func TestCeiling(t *testing.T) {
	cases := []struct {
		level exercise.FitnessLevel
		adj   int
		want  int
	}{
		{exercise.LevelBeginner, 0, 6},
		{exercise.LevelBeginner, -2, 4},
		{exercise.LevelIntermediate, 1, 9},
		{exercise.LevelAdvanced, 2, 10},
		{exercise.LevelAdvanced, 5, 10},
		{"", 0, 6},
	}
	for _, tc := range cases {
		if got := Ceiling(tc.level, tc.adj); got != tc.want {
			t.Fatalf("Ceiling(%s,%d): want=%d got=%d", tc.level, tc.adj, tc.want, got)
		}
	}
}

func TestFilterBeginnerDropsElite(t *testing.T) {
	cands := []exercise.Candidate{
		{Name: "A", Difficulty: 10},
		{Name: "B", Difficulty: 1},
		{Name: "C", Difficulty: 3},
		{Name: "D", Difficulty: 5},
		{Name: "E", Difficulty: 6},
		{Name: "F"},
	}
	kept, removed := Filter(cands, exercise.LevelBeginner, 0)
	if removed != 1 || len(kept) != 5 {
		t.Fatalf("beginner filter: removed=%d kept=%d", removed, len(kept))
	}
	for _, c := range kept {
		if Of(c) == Elite {
			t.Fatalf("elite exercise survived beginner filter")
		}
	}
}

func TestFilterPermissiveKeepsEverything(t *testing.T) {
	cands := []exercise.Candidate{{Difficulty: 10}, {Difficulty: 9}, {Difficulty: 2}}
	kept, removed := Filter(cands, exercise.LevelIntermediate, -2)
	if removed != 0 || len(kept) != 3 {
		t.Fatalf("permissive filter must not drop: removed=%d", removed)
	}
	if Allowed(10, exercise.LevelBeginner, 0, Permissive) {
		t.Fatalf("permissive mode still drops elite for a beginner without positive adjustment")
	}
	if !Allowed(10, exercise.LevelBeginner, 1, Permissive) {
		t.Fatalf("positive adjustment admits elite in permissive mode")
	}
}

func TestRankingScore(t *testing.T) {
	if got := RankingScore(2, exercise.LevelBeginner, 0); got != 0.60 {
		t.Fatalf("beginner/beginner: want=0.60 got=%v", got)
	}
	if got := RankingScore(9, exercise.LevelAdvanced, 0); got != 0.60 {
		t.Fatalf("advanced/advanced: want=0.60 got=%v", got)
	}
	if got := RankingScore(9, exercise.LevelBeginner, 2); math.Abs(got-0.30) > 1e-9 {
		t.Fatalf("harder nudge: want=0.30 got=%v", got)
	}
	if got := RankingScore(2, exercise.LevelIntermediate, -1); math.Abs(got-0.35) > 1e-9 {
		t.Fatalf("easier nudge: want=0.35 got=%v", got)
	}
	if got := RankingScore(5, exercise.LevelIntermediate, 2); got != 0.50 {
		t.Fatalf("middle category unaffected: want=0.50 got=%v", got)
	}
	if got := RankingScore(2, exercise.LevelAdvanced, 2); got != 0 {
		t.Fatalf("clamped at zero: want=0 got=%v", got)
	}
}
