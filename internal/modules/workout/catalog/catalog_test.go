package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedCatalogLoads(t *testing.T) {
	cat := Default()
	if cat == nil {
		t.Fatalf("expected catalog")
	}
	if got := len(cat.MovementPatterns); got != 11 {
		t.Fatalf("movement patterns: want=11 got=%d", got)
	}
	if cat.MovementPatterns[0].Pattern != "pull_vertical" || cat.MovementPatterns[1].Pattern != "pull_horizontal" {
		t.Fatalf("pull_vertical must precede pull_horizontal, got %q,%q", cat.MovementPatterns[0].Pattern, cat.MovementPatterns[1].Pattern)
	}
	if cat.DifficultyLabels["elite"] != 10 || cat.DifficultyLabels["novice"] != 2 {
		t.Fatalf("difficulty labels: got=%v", cat.DifficultyLabels)
	}
	if !cat.IsFiller("with") || cat.IsFiller("press") {
		t.Fatalf("filler words not indexed")
	}
}

func TestEquipmentPatternsMostSpecificFirst(t *testing.T) {
	cat := Default()
	pos := map[string]int{}
	for i, p := range cat.EquipmentPatterns {
		if _, ok := pos[p.Pattern]; !ok {
			pos[p.Pattern] = i
		}
	}
	pairs := [][2]string{{"cable machine", "cable"}, {"ez bar", "bar"}, {"smith machine", "machine"}, {"pull-up bar", "bar"}}
	for _, pr := range pairs {
		if pos[pr[0]] >= pos[pr[1]] {
			t.Fatalf("%q must come before %q", pr[0], pr[1])
		}
	}
}

func TestContraindicatedPatterns(t *testing.T) {
	cat := Default()
	got := cat.ContraindicatedPatterns([]string{"Knee pain"})
	want := map[string]bool{"squat": true, "lunge": true, "jump": true, "leg press": true}
	found := 0
	for _, p := range got {
		if want[p] {
			found++
		}
	}
	if found != len(want) {
		t.Fatalf("knee patterns: want superset of %v got=%v", want, got)
	}
	if len(cat.ContraindicatedPatterns(nil)) != 0 {
		t.Fatalf("no injuries should produce no patterns")
	}
}

func TestParseRejectsEmptyTables(t *testing.T) {
	if _, err := Parse([]byte("version: 1\n")); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestResolveFallsBackOnBadOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("equipment_patterns: ["), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(CatalogPathEnv, path)
	if got := Resolve(nil); got != Embedded() {
		t.Fatalf("expected embedded catalog on bad override")
	}
}

func TestContainsPhrase(t *testing.T) {
	cases := []struct {
		text, phrase string
		want         bool
	}{
		{"Seated Cable Rows", "row", true},
		{"Narrow Grip Bench Press", "row", false},
		{"Bicycle Crunch", "run", false},
		{"Pull-Up", "pull up", true},
		{"Jumping Jacks", "jack", true},
		{"", "row", false},
	}
	for _, tc := range cases {
		if got := ContainsPhrase(tc.text, tc.phrase); got != tc.want {
			t.Fatalf("ContainsPhrase(%q,%q): want=%v got=%v", tc.text, tc.phrase, tc.want, got)
		}
	}
}
