package exercise

import "strings"

// SecondaryMuscle is one assisting muscle with its share of the work in [0,1].
type SecondaryMuscle struct {
	Muscle      string  `json:"muscle"`
	Involvement float64 `json:"involvement"`
}

// Candidate is a single retrieved exercise. It carries no score of its own
// beyond the retrieval similarity; ranking works on Scored values.
type Candidate struct {
	ID                string            `json:"id"`
	RawName           string            `json:"raw_name"`
	Name              string            `json:"name"`
	Equipment         string            `json:"equipment"`
	EquipmentInferred bool              `json:"equipment_inferred"`
	BodyPart          string            `json:"body_part"`
	TargetMuscle      string            `json:"target_muscle"`
	SecondaryMuscles  []SecondaryMuscle `json:"secondary_muscles,omitempty"`
	Difficulty        int               `json:"difficulty"`
	DifficultyLabel   string            `json:"difficulty_label,omitempty"`
	Instructions      string            `json:"instructions,omitempty"`
	GifURL            string            `json:"gif_url,omitempty"`
	VideoURL          string            `json:"video_url,omitempty"`
	IsUnilateral      bool              `json:"is_unilateral"`
	IsTimed           bool              `json:"is_timed"`
	HoldSeconds       int               `json:"hold_seconds,omitempty"`
	SingleUnitOK      bool              `json:"single_unit_ok"`
	Similarity        float64           `json:"similarity"`
}

func (c Candidate) HasMedia() bool {
	return strings.TrimSpace(c.GifURL) != "" || strings.TrimSpace(c.VideoURL) != ""
}

// DisplayName falls back to the raw name when no cleaned name was set.
func (c Candidate) DisplayName() string {
	if n := strings.TrimSpace(c.Name); n != "" {
		return n
	}
	return strings.TrimSpace(c.RawName)
}

// Scored threads a candidate through the ranking stages. Score starts as the
// retrieval similarity and is only ever recombined, never reset.
type Scored struct {
	Candidate          Candidate `json:"candidate"`
	Score              float64   `json:"score"`
	OriginalSimilarity float64   `json:"original_similarity"`
	DifficultyScore    float64   `json:"difficulty_score"`
}

func (s Scored) Name() string { return s.Candidate.DisplayName() }
