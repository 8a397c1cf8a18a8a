package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/trainwise-backend/internal/platform/qdrant"
)

type fakeEmbedder struct {
	calls int
	err   error
}

func (f *fakeEmbedder) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(inputs))
	for i := range inputs {
		out[i] = []float32{0.1, 0.2, 0.3}
	}
	return out, nil
}

type fakeStore struct {
	matches   []qdrant.Match
	namespace string
	topK      int
}

func (f *fakeStore) Search(ctx context.Context, namespace string, vector []float32, topK int) ([]qdrant.Match, error) {
	f.namespace = namespace
	f.topK = topK
	return f.matches, nil
}

type memCache struct {
	data map[string][]float32
	sets int
}

func (m *memCache) Get(ctx context.Context, model, text string) ([]float32, bool, error) {
	v, ok := m.data[model+"|"+text]
	return v, ok, nil
}

func (m *memCache) Set(ctx context.Context, model, text string, vec []float32) error {
	if m.data == nil {
		m.data = map[string][]float32{}
	}
	m.data[model+"|"+text] = vec
	m.sets++
	return nil
}

func TestDecodeCandidateFullPayload(t *testing.T) {
	c, ok := DecodeCandidate(qdrant.Match{ID: "p1", Score: 0.82, Payload: map[string]any{
		"id":                "0025",
		"name":              "barbell_bench_press_male",
		"equipment":         "barbell",
		"bodyPart":          "Chest",
		"target":            "Pectorals",
		"secondary_muscles": []any{map[string]any{"muscle": "Triceps", "involvement": 0.4}},
		"difficulty":        "intermediate",
		"instructions":      []any{"Lie on the bench.", "Press the bar."},
		"gifUrl":            "https://cdn.example/0025.gif",
	}})
	if !ok {
		t.Fatalf("decode: want ok")
	}
	if c.ID != "0025" || c.Name != "Barbell Bench Press" || c.RawName != "barbell_bench_press_male" {
		t.Fatalf("identity: got id=%q name=%q raw=%q", c.ID, c.Name, c.RawName)
	}
	if c.Equipment != "barbell" || c.EquipmentInferred {
		t.Fatalf("equipment: got=%q inferred=%v", c.Equipment, c.EquipmentInferred)
	}
	if c.BodyPart != "chest" || c.TargetMuscle != "pectorals" {
		t.Fatalf("muscles: body=%q target=%q", c.BodyPart, c.TargetMuscle)
	}
	if len(c.SecondaryMuscles) != 1 || c.SecondaryMuscles[0].Muscle != "triceps" || c.SecondaryMuscles[0].Involvement != 0.4 {
		t.Fatalf("secondary: got=%+v", c.SecondaryMuscles)
	}
	if c.Difficulty != 5 || c.DifficultyLabel != "intermediate" {
		t.Fatalf("difficulty: got=%d label=%q", c.Difficulty, c.DifficultyLabel)
	}
	if c.Instructions != "Lie on the bench.\nPress the bar." {
		t.Fatalf("instructions: got=%q", c.Instructions)
	}
	if !c.HasMedia() || c.Similarity != 0.82 {
		t.Fatalf("media/similarity: media=%v sim=%v", c.HasMedia(), c.Similarity)
	}
}

func TestDecodeCandidateInfersMissingFields(t *testing.T) {
	c, ok := DecodeCandidate(qdrant.Match{ID: "p2", Score: 0.5, Payload: map[string]any{
		"name":         "dumbbell_single_arm_row",
		"hold_seconds": float64(0),
	}})
	if !ok {
		t.Fatalf("decode: want ok")
	}
	if c.ID != "p2" {
		t.Fatalf("id fallback: want=p2 got=%q", c.ID)
	}
	if c.Equipment != "Dumbbell" || !c.EquipmentInferred {
		t.Fatalf("equipment: got=%q inferred=%v", c.Equipment, c.EquipmentInferred)
	}
	if c.Difficulty != 2 {
		t.Fatalf("difficulty default: want=2 got=%d", c.Difficulty)
	}
	if !c.IsUnilateral || !c.SingleUnitOK {
		t.Fatalf("unilateral: got unilateral=%v single=%v", c.IsUnilateral, c.SingleUnitOK)
	}
	if c.IsTimed || c.HasMedia() {
		t.Fatalf("timed/media: timed=%v media=%v", c.IsTimed, c.HasMedia())
	}
}

func TestDecodeCandidateTimedHold(t *testing.T) {
	c, _ := DecodeCandidate(qdrant.Match{Payload: map[string]any{"name": "plank", "hold_seconds": "45"}})
	if !c.IsTimed || c.HoldSeconds != 45 {
		t.Fatalf("timed: got timed=%v hold=%d", c.IsTimed, c.HoldSeconds)
	}
}

func TestDecodeCandidateRejectsUnnamed(t *testing.T) {
	if _, ok := DecodeCandidate(qdrant.Match{Payload: map[string]any{"equipment": "barbell"}}); ok {
		t.Fatalf("decode: want rejection for unnamed record")
	}
}

func TestRetrieveSortsAndSkipsUnnamed(t *testing.T) {
	store := &fakeStore{matches: []qdrant.Match{
		{ID: "a", Score: 0.4, Payload: map[string]any{"name": "push_up"}},
		{ID: "b", Score: 0.9, Payload: map[string]any{"name": "barbell_squat"}},
		{ID: "c", Score: 0.7, Payload: map[string]any{}},
	}}
	r, err := NewVectorRetriever(Deps{Embedder: &fakeEmbedder{}, Store: store, Namespace: "catalog"})
	if err != nil {
		t.Fatalf("NewVectorRetriever: %v", err)
	}
	got, err := r.Retrieve(context.Background(), "leg strength", 10)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if store.namespace != "catalog" || store.topK != 10 {
		t.Fatalf("search args: ns=%q k=%d", store.namespace, store.topK)
	}
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("order: got=%+v", got)
	}
}

func TestRetrieveUsesCache(t *testing.T) {
	emb := &fakeEmbedder{}
	cache := &memCache{}
	r, _ := NewVectorRetriever(Deps{Embedder: emb, Store: &fakeStore{}, Cache: cache, EmbedModel: "m"})
	for i := 0; i < 3; i++ {
		if _, err := r.Retrieve(context.Background(), "chest", 5); err != nil {
			t.Fatalf("Retrieve: %v", err)
		}
	}
	if emb.calls != 1 || cache.sets != 1 {
		t.Fatalf("cache: embed calls=%d sets=%d", emb.calls, cache.sets)
	}
}

func TestRetrieveWrapsEmbedError(t *testing.T) {
	boom := errors.New("boom")
	r, _ := NewVectorRetriever(Deps{Embedder: &fakeEmbedder{err: boom}, Store: &fakeStore{}})
	_, err := r.Retrieve(context.Background(), "chest", 5)
	if !errors.Is(err, boom) {
		t.Fatalf("error: want wrapped boom got=%v", err)
	}
}

func TestRetrieveEmptyQuery(t *testing.T) {
	emb := &fakeEmbedder{}
	r, _ := NewVectorRetriever(Deps{Embedder: emb, Store: &fakeStore{}})
	got, err := r.Retrieve(context.Background(), "  ", 5)
	if err != nil || got != nil || emb.calls != 0 {
		t.Fatalf("empty query: got=%v err=%v calls=%d", got, err, emb.calls)
	}
}
