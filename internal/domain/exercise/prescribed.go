package exercise

type ExerciseClass string

const (
	ClassCompoundUpper ExerciseClass = "compound_upper"
	ClassCompoundLower ExerciseClass = "compound_lower"
	ClassIsolation     ExerciseClass = "isolation"
	ClassBodyweight    ExerciseClass = "bodyweight"
)

func (c ExerciseClass) IsCompound() bool {
	return c == ClassCompoundUpper || c == ClassCompoundLower
}

type SetType string

const (
	SetWarmup  SetType = "warmup"
	SetWorking SetType = "working"
	SetFailure SetType = "failure"
)

type WeightSource string

const (
	WeightHistorical WeightSource = "historical"
	WeightGeneric    WeightSource = "generic"
)

type SetTarget struct {
	SetNumber      int     `json:"set_number"`
	SetType        SetType `json:"set_type"`
	TargetReps     int     `json:"target_reps"`
	TargetWeightKg float64 `json:"target_weight_kg"`
	TargetRPE      int     `json:"target_rpe"`
	TargetRIR      int     `json:"target_rir"`
}

// Provenance records why an exercise ended up in a workout.
type Provenance struct {
	IsFavorite bool `json:"is_favorite"`
	IsStaple   bool `json:"is_staple"`
	FromQueue  bool `json:"from_queue"`
	FromOracle bool `json:"from_oracle"`
}

type PrescribedExercise struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Equipment     string        `json:"equipment"`
	EquipmentType string        `json:"equipment_type"`
	TargetMuscle  string        `json:"target_muscle,omitempty"`
	BodyPart      string        `json:"body_part,omitempty"`
	Class         ExerciseClass `json:"exercise_class"`
	Sets          int           `json:"sets"`
	Reps          int           `json:"reps"`
	RestSeconds   int           `json:"rest_seconds"`
	WeightKg      float64       `json:"weight_kg"`
	WeightSource  WeightSource  `json:"weight_source"`
	SetTargets    []SetTarget   `json:"set_targets"`
	IsUnilateral  bool          `json:"is_unilateral"`
	IsTimed       bool          `json:"is_timed"`
	HoldSeconds   int           `json:"hold_seconds,omitempty"`
	DisplayHint   string        `json:"display_hint,omitempty"`
	GifURL        string        `json:"gif_url,omitempty"`
	VideoURL      string        `json:"video_url,omitempty"`
	Provenance
}
