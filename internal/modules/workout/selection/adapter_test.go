package selection

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/similarity"
)

type fakeOracle struct {
	indices []int
	err     error
	calls   int
	gotN    int
}

func (f *fakeOracle) Select(ctx context.Context, shortlist []ShortlistItem, count int, sc SelectionContext) ([]int, error) {
	f.calls++
	f.gotN = len(shortlist)
	return f.indices, f.err
}

func scored(id, name string, score float64) exercise.Scored {
	return exercise.Scored{Candidate: exercise.Candidate{ID: id, Name: name}, Score: score}
}

func TestAdapterDiscardsBadIndicesAndBackfills(t *testing.T) {
	pool := []exercise.Scored{
		scored("1", "Bench Press", 0.9),
		scored("2", "Barbell Row", 0.8),
		scored("3", "Goblet Squat", 0.7),
		scored("4", "Romanian Deadlift", 0.6),
		scored("5", "Plank", 0.5),
	}
	oracle := &fakeOracle{indices: []int{0, 2, 2, 9, 3}}
	ch, err := NewAdapter(oracle, true).Choose(context.Background(), pool[:3], pool, 4, SelectionContext{})
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if ch.FromOracle != 2 || ch.Backfilled != 2 || ch.Shortfall != 0 {
		t.Fatalf("choice counts: %+v", ch)
	}
	want := []string{"Barbell Row", "Goblet Squat", "Bench Press", "Romanian Deadlift"}
	for i, w := range want {
		if ch.Picked[i].Name() != w {
			t.Fatalf("picked[%d]: want=%s got=%s", i, w, ch.Picked[i].Name())
		}
	}
	if ch.Discarded != 3 {
		t.Fatalf("discarded: want=3 got=%d", ch.Discarded)
	}
}

func TestAdapterPropagatesOracleError(t *testing.T) {
	boom := errors.New("oracle down")
	_, err := NewAdapter(&fakeOracle{err: boom}, true).Choose(context.Background(), []exercise.Scored{scored("1", "Plank", 1)}, nil, 1, SelectionContext{})
	if !errors.Is(err, boom) {
		t.Fatalf("error: want=%v got=%v", boom, err)
	}
}

func TestAdapterShortfallWhenPoolExhausted(t *testing.T) {
	pool := []exercise.Scored{
		scored("1", "Barbell Bench Press", 0.9),
		scored("2", "Dumbbell Bench Press", 0.8),
	}
	ch, err := NewAdapter(&fakeOracle{indices: []int{1, 2}}, true).Choose(context.Background(), pool, pool, 3, SelectionContext{})
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if len(ch.Picked) != 1 || ch.Shortfall != 2 {
		t.Fatalf("expected one pick and shortfall 2, got %+v", ch)
	}
}

func TestAdapterSkipsOracleForNoSlots(t *testing.T) {
	oracle := &fakeOracle{indices: []int{1}}
	ch, err := NewAdapter(oracle, true).Choose(context.Background(), []exercise.Scored{scored("1", "Plank", 1)}, nil, 0, SelectionContext{})
	if err != nil || oracle.calls != 0 || len(ch.Picked) != 0 {
		t.Fatalf("count 0 must not call oracle: calls=%d err=%v", oracle.calls, err)
	}
}

func TestShortlistDedupsByBaseName(t *testing.T) {
	items, backing := Shortlist([]exercise.Scored{
		scored("1", "Barbell Squat", 1),
		scored("2", "barbell_squat_female", 0.9),
		scored("3", "Plank", 0.8),
	})
	if len(items) != 2 || len(backing) != 2 || items[1].Index != 2 || items[1].Name != "Plank" {
		t.Fatalf("shortlist: %+v", items)
	}
}

func TestTopNOracleIsDeterministic(t *testing.T) {
	pool := []exercise.Scored{scored("1", "Plank", 1), scored("2", "Squat", 0.9), scored("3", "Row", 0.8)}
	ch, err := NewAdapter(nil, true).Choose(context.Background(), pool, pool, 2, SelectionContext{})
	if err != nil || len(ch.Picked) != 2 || ch.Picked[0].Name() != "Plank" || ch.Picked[1].Name() != "Squat" {
		t.Fatalf("top-n: %+v err=%v", ch, err)
	}
	for i := 0; i < len(ch.Picked); i++ {
		for j := i + 1; j < len(ch.Picked); j++ {
			if similarity.AreSimilar(ch.Picked[i].Name(), ch.Picked[j].Name(), true) {
				t.Fatalf("similar picks %s / %s", ch.Picked[i].Name(), ch.Picked[j].Name())
			}
		}
	}
}
