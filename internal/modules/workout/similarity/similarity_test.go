package similarity

import "testing"

func TestNormalizeBaseName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Barbell_Squat_female", "barbell squat"},
		{"Push-Up with a Clap (version 2)", "push up clap"},
		{"Step-up to the Box", "step up box"},
		{"  ", ""},
	}
	for _, tc := range cases {
		if got := NormalizeBaseName(tc.in); got != tc.want {
			t.Fatalf("NormalizeBaseName(%q): want=%q got=%q", tc.in, tc.want, got)
		}
	}
}

func TestNormalizeBaseNameIdempotent(t *testing.T) {
	inputs := []string{
		"Dumbbell Curl v2 3",
		"squat_female_2 (variation 4)",
		"The Bench Press on a Bench",
		"Cable Fly 360 degrees",
		"a an the",
		"lat pulldown_male 0012",
	}
	for _, in := range inputs {
		once := NormalizeBaseName(in)
		if twice := NormalizeBaseName(once); twice != once {
			t.Fatalf("not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestMovementPattern(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Lat Pulldown", "pull_vertical"},
		{"Seated Cable Row", "pull_horizontal"},
		{"Narrow Grip Bench Press", "push_horizontal"},
		{"Overhead Press", "push_vertical"},
		{"Bulgarian Split Squat", "lunge"},
		{"Goblet Squat", "squat"},
		{"Romanian Deadlift", "hinge"},
		{"Hammer Curl", "curl"},
		{"Triceps Pushdown", "tricep"},
		{"Bicycle Crunch", "core_flexion"},
		{"Side Plank", "core_stability"},
		{"Calf Raise", ""},
	}
	for _, tc := range cases {
		if got := MovementPattern(tc.in); got != tc.want {
			t.Fatalf("MovementPattern(%q): want=%q got=%q", tc.in, tc.want, got)
		}
	}
}

func TestAreSimilar(t *testing.T) {
	cases := []struct {
		a, b    string
		pattern bool
		want    bool
	}{
		{"Barbell Squat", "barbell_squat_female", false, true},
		{"Squat", "Barbell Squat", false, true},
		{"Incline Dumbbell Bench Press", "Dumbbell Incline Bench Press", false, true},
		{"Hammer Curl", "Tricep Pushdown", true, false},
		{"Goblet Squat", "Front Squat", false, false},
		{"Goblet Squat", "Front Squat", true, true},
		{"", "Squat", true, false},
		{"Plank", "", true, false},
		{"Calf Raise", "Lateral Raise", true, false},
	}
	for _, tc := range cases {
		if got := AreSimilar(tc.a, tc.b, tc.pattern); got != tc.want {
			t.Fatalf("AreSimilar(%q,%q,%v): want=%v got=%v", tc.a, tc.b, tc.pattern, tc.want, got)
		}
	}
}

func TestSeenAdmit(t *testing.T) {
	seen := NewSeen(true, "Barbell Bench Press")
	if seen.Admit("Dumbbell Bench Press") {
		t.Fatalf("bench press variants share a pattern and must be rejected")
	}
	if !seen.Admit("Cable Fly") {
		t.Fatalf("cable fly should be admitted")
	}
	if seen.Len() != 2 {
		t.Fatalf("len: want=2 got=%d", seen.Len())
	}
}
