package strength

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/trainwise-backend/internal/data/repos/testutil"
	"github.com/yungbote/trainwise-backend/internal/pkg/dbctx"
)

func TestStrengthRepoRecordAndLookup(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx}

	user := uuid.New()
	other := uuid.New()

	if _, err := repo.Record(dbc, user, "Barbell Bench Press", 100, 8); err != nil {
		t.Fatalf("Record: %v", err)
	}
	row, err := repo.Record(dbc, user, "Barbell Bench Press", 90, 10)
	if err != nil {
		t.Fatalf("Record lighter: %v", err)
	}
	if row.LastWeightKg != 90 || row.MaxWeightKg != 100 || row.LastReps != 10 {
		t.Fatalf("after lighter set: got last=%v max=%v reps=%d", row.LastWeightKg, row.MaxWeightKg, row.LastReps)
	}
	if _, err := repo.Record(dbc, user, "Barbell Bench Press", 105, 5); err != nil {
		t.Fatalf("Record heavier: %v", err)
	}
	if _, err := repo.Record(dbc, other, "Goblet Squat", 24, 12); err != nil {
		t.Fatalf("Record other user: %v", err)
	}

	hist, err := repo.StrengthFor(ctx, user)
	if err != nil {
		t.Fatalf("StrengthFor: %v", err)
	}
	if len(hist) != 1 {
		t.Fatalf("history size: want=1 got=%d", len(hist))
	}
	got := hist["Barbell Bench Press"]
	if got.LastWeightKg != 105 || got.MaxWeightKg != 105 || got.LastReps != 5 {
		t.Fatalf("history: got=%+v", got)
	}
}

func TestStrengthRepoRejectsBlankName(t *testing.T) {
	repo := NewRepo(testutil.DB(t), testutil.Logger(t))
	if _, err := repo.Record(dbctx.Context{Ctx: context.Background()}, uuid.New(), "  ", 10, 5); err == nil {
		t.Fatalf("expected error for blank exercise name")
	}
}

func TestStrengthRepoNilUser(t *testing.T) {
	repo := NewRepo(testutil.DB(t), testutil.Logger(t))
	hist, err := repo.StrengthFor(context.Background(), uuid.Nil)
	if err != nil || len(hist) != 0 {
		t.Fatalf("nil user: hist=%v err=%v", hist, err)
	}
}

func TestStrengthRepoDeleteByUser(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	user := uuid.New()
	if _, err := repo.Record(dbc, user, "Cable Row", 50, 10); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := repo.DeleteByUserID(dbc, user); err != nil {
		t.Fatalf("DeleteByUserID: %v", err)
	}
	rows, err := repo.GetByUserID(dbc, user)
	if err != nil || len(rows) != 0 {
		t.Fatalf("after delete: rows=%d err=%v", len(rows), err)
	}
}
