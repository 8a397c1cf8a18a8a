package selection

import (
	"context"
	"strings"

	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/similarity"
)

type Choice struct {
	Picked     []exercise.Scored
	FromOracle int
	Backfilled int
	Shortfall  int
	Discarded  int
}

// Adapter runs an Oracle over a windowed shortlist and repairs its output.
type Adapter struct {
	Oracle       Oracle
	CheckPattern bool
}

func NewAdapter(o Oracle, checkPattern bool) *Adapter {
	if o == nil {
		o = TopNOracle{}
	}
	return &Adapter{Oracle: o, CheckPattern: checkPattern}
}

// Shortlist dedups the window by normalised name and numbers it from 1.
func Shortlist(window []exercise.Scored) ([]ShortlistItem, []exercise.Scored) {
	items := make([]ShortlistItem, 0, len(window))
	backing := make([]exercise.Scored, 0, len(window))
	seen := map[string]struct{}{}
	for _, s := range window {
		base := similarity.NormalizeBaseName(s.Name())
		if _, dup := seen[base]; dup {
			continue
		}
		seen[base] = struct{}{}
		backing = append(backing, s)
		items = append(items, ShortlistItem{
			Index:        len(backing),
			Name:         s.Name(),
			TargetMuscle: s.Candidate.TargetMuscle,
			Equipment:    s.Candidate.Equipment,
			BodyPart:     s.Candidate.BodyPart,
		})
	}
	return items, backing
}

// Choose asks the oracle for count picks from window, discards invalid,
// repeated and similar picks, then backfills from fullPool in rank order.
// Names in sc.Reserved count as already chosen for the similarity check.
// Oracle errors are returned as-is; a short result is not an error.
func (a *Adapter) Choose(ctx context.Context, window, fullPool []exercise.Scored, count int, sc SelectionContext) (Choice, error) {
	var ch Choice
	if count <= 0 {
		return ch, nil
	}
	items, backing := Shortlist(window)
	seen := similarity.NewSeen(a.CheckPattern, sc.Reserved...)
	used := map[string]struct{}{}

	if len(items) > 0 {
		indices, err := a.Oracle.Select(ctx, items, count, sc)
		if err != nil {
			return Choice{}, err
		}
		picked := map[int]struct{}{}
		for _, idx := range indices {
			if len(ch.Picked) >= count {
				break
			}
			if idx < 1 || idx > len(backing) {
				ch.Discarded++
				continue
			}
			if _, dup := picked[idx]; dup {
				ch.Discarded++
				continue
			}
			picked[idx] = struct{}{}
			s := backing[idx-1]
			if !seen.Admit(s.Name()) {
				ch.Discarded++
				continue
			}
			used[identity(s)] = struct{}{}
			ch.Picked = append(ch.Picked, s)
			ch.FromOracle++
		}
	}

	for _, s := range fullPool {
		if len(ch.Picked) >= count {
			break
		}
		if _, ok := used[identity(s)]; ok {
			continue
		}
		if !seen.Admit(s.Name()) {
			continue
		}
		used[identity(s)] = struct{}{}
		ch.Picked = append(ch.Picked, s)
		ch.Backfilled++
	}
	ch.Shortfall = count - len(ch.Picked)
	return ch, nil
}

func identity(s exercise.Scored) string {
	if id := strings.TrimSpace(s.Candidate.ID); id != "" {
		return "id:" + id
	}
	return "name:" + strings.ToLower(s.Name())
}
