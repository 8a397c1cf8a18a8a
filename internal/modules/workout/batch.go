package workout

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
	apperrors "github.com/yungbote/trainwise-backend/internal/pkg/errors"
)

const batchParallelism = 4

// GenerateBatch builds n workouts from the same request. Workout i uses
// batch offset i, so each one windows a different slice of the ranked pool.
// The first failure cancels the rest.
func (u Usecases) GenerateBatch(ctx context.Context, req exercise.WorkoutRequest, n int) ([]Result, error) {
	if n <= 0 || n > u.deps.Config.MaxBatch {
		return nil, apperrors.Invalidf("batch size must be within 1..%d", u.deps.Config.MaxBatch)
	}
	results := make([]Result, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchParallelism)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			r := req
			r.BatchOffset = i
			res, err := u.Generate(gctx, r)
			if err != nil {
				return fmt.Errorf("workout %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
