package selection

import (
	"strings"

	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
	"github.com/yungbote/trainwise-backend/internal/modules/workout/similarity"
)

// DefaultWindowSize caps how many ranked candidates the oracle sees.
const DefaultWindowSize = 20

// Injection is the ranked pool split into reserved exercises and the rest.
type Injection struct {
	Staples        []exercise.Scored
	Queued         []exercise.Scored
	Pool           []exercise.Scored
	MissingStaples []string
	MissingQueued  []string
}

// Inject pulls staple and queued exercises out of the pool by exact,
// case-insensitive name. Reserved exercises are always included regardless
// of rank; a name that is both a staple and queued counts as a staple.
func Inject(pool []exercise.Scored, staples, queued []string) Injection {
	var inj Injection
	taken := make([]bool, len(pool))
	reserved := map[string]struct{}{}

	// take reports ok=false only for a real miss; blank and repeated names
	// are skipped silently.
	take := func(want string) (s exercise.Scored, found, ok bool) {
		key := strings.ToLower(strings.TrimSpace(want))
		if key == "" {
			return s, false, true
		}
		if _, dup := reserved[key]; dup {
			return s, false, true
		}
		reserved[key] = struct{}{}
		for i, cand := range pool {
			if !taken[i] && nameMatches(cand, key) {
				taken[i] = true
				return cand, true, true
			}
		}
		return s, false, false
	}

	for _, name := range staples {
		s, found, ok := take(name)
		switch {
		case found:
			inj.Staples = append(inj.Staples, s)
		case !ok:
			inj.MissingStaples = append(inj.MissingStaples, name)
		}
	}
	for _, name := range queued {
		s, found, ok := take(name)
		switch {
		case found:
			inj.Queued = append(inj.Queued, s)
		case !ok:
			inj.MissingQueued = append(inj.MissingQueued, name)
		}
	}

	inj.Pool = make([]exercise.Scored, 0, len(pool))
	for i, s := range pool {
		if !taken[i] {
			inj.Pool = append(inj.Pool, s)
		}
	}
	return inj
}

func nameMatches(s exercise.Scored, key string) bool {
	return strings.ToLower(s.Name()) == key || strings.ToLower(strings.TrimSpace(s.Candidate.RawName)) == key
}

// Reserved lists the injected exercises, staples first.
func (inj Injection) Reserved() []exercise.Scored {
	out := make([]exercise.Scored, 0, len(inj.Staples)+len(inj.Queued))
	out = append(out, inj.Staples...)
	return append(out, inj.Queued...)
}

// Truncate caps the reserved exercises at count, cutting queued ones before
// staples. Dropped exercises do not return to the pool.
func (inj Injection) Truncate(count int) Injection {
	if count < 0 {
		count = 0
	}
	if len(inj.Staples) > count {
		inj.Staples = inj.Staples[:count]
	}
	if room := count - len(inj.Staples); len(inj.Queued) > room {
		inj.Queued = inj.Queued[:room]
	}
	return inj
}

// RemainingCount is how many slots are left for the oracle. Zero or less
// means the oracle is not consulted.
func (inj Injection) RemainingCount(requested int) int {
	return requested - len(inj.Staples) - len(inj.Queued)
}

// EffectiveAvoid removes staple and queued names from the avoid list.
func EffectiveAvoid(avoid, staples, queued []string) []string {
	if len(avoid) == 0 {
		return nil
	}
	keep := map[string]struct{}{}
	for _, n := range append(append([]string{}, staples...), queued...) {
		keep[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
	}
	out := make([]string, 0, len(avoid))
	for _, a := range avoid {
		if _, reserved := keep[strings.ToLower(strings.TrimSpace(a))]; reserved {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Window returns up to size candidates starting at
// (batchOffset*requestedCount) mod len(pool), wrapping to the front. Parallel
// batch requests with distinct offsets see different slices of one ranking.
func Window(pool []exercise.Scored, batchOffset, requestedCount, size int) []exercise.Scored {
	n := len(pool)
	if n == 0 {
		return nil
	}
	if size <= 0 {
		size = DefaultWindowSize
	}
	if batchOffset < 0 {
		batchOffset = 0
	}
	if requestedCount < 0 {
		requestedCount = 0
	}
	start := (batchOffset * requestedCount) % n
	out := make([]exercise.Scored, 0, size)
	seen := map[string]struct{}{}
	for i := 0; i < n && len(out) < size; i++ {
		s := pool[(start+i)%n]
		key := windowKey(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

func windowKey(s exercise.Scored) string {
	if id := strings.TrimSpace(s.Candidate.ID); id != "" {
		return "id:" + id
	}
	return "name:" + similarity.NormalizeBaseName(s.Name())
}
