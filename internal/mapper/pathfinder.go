package mapper

import (
	"context"
	"errors"
)

// ErrSearchBudget is returned when a search expands more rooms than the
// pathfinder's configured limit.
var ErrSearchBudget = errors.New("search budget exhausted")

// ctxCheckInterval is how many room expansions run between context checks.
const ctxCheckInterval = 256

// Option configures a Pathfinder.
type Option func(*Pathfinder)

// WithHiddenArcs controls whether hidden arcs may be traversed. Default: true.
func WithHiddenArcs(include bool) Option {
	return func(p *Pathfinder) {
		p.includeHidden = include
	}
}

// WithMaxExpansions caps the number of rooms a single search may expand.
// Zero means unlimited. Default: 0.
func WithMaxExpansions(n int) Option {
	return func(p *Pathfinder) {
		p.maxExpansions = n
	}
}

// Pathfinder computes minimum-hop routes between rooms of a zone. It holds
// only configuration and is safe for concurrent use.
type Pathfinder struct {
	includeHidden bool
	maxExpansions int
}

// NewPathfinder returns a Pathfinder configured with opts.
func NewPathfinder(opts ...Option) *Pathfinder {
	p := &Pathfinder{includeHidden: true}
	for _, o := range opts {
		o(p)
	}
	return p
}

var defaultPathfinder = NewPathfinder()

// FindPath runs a search with the default Pathfinder.
func FindPath(start, target string, zone *Zone) []string {
	return defaultPathfinder.FindPath(start, target, zone)
}

// FindPath returns the room IDs of a minimum-hop route from start to target,
// both inclusive. It returns [start] when start == target and an empty slice
// when either room is unknown or target is unreachable. A search that trips
// the expansion budget also yields an empty slice; use FindPathContext to
// tell the two apart.
func (p *Pathfinder) FindPath(start, target string, zone *Zone) []string {
	path, err := p.FindPathContext(context.Background(), start, target, zone)
	if err != nil {
		return []string{}
	}
	return path
}

// FindPathContext is FindPath with cancellation. It returns ctx.Err() if ctx
// is done mid-search and ErrSearchBudget if the expansion limit is reached.
//
// The search is breadth-first. Rooms are expanded in FIFO order and each
// room's arcs are scanned in declared order; a room's predecessor is fixed by
// its first discovery. Among equal-length routes this always selects the same
// one, so move sequences are reproducible for a given zone.
func (p *Pathfinder) FindPathContext(ctx context.Context, start, target string, zone *Zone) ([]string, error) {
	if zone == nil {
		return []string{}, nil
	}
	if _, ok := zone.GetRoom(start); !ok {
		return []string{}, nil
	}
	if _, ok := zone.GetRoom(target); !ok {
		return []string{}, nil
	}
	if start == target {
		return []string{start}, nil
	}
	if err := ctx.Err(); err != nil {
		return []string{}, err
	}

	prev := map[string]string{start: ""}
	queue := []string{start}
	expanded := 0

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if p.maxExpansions > 0 && expanded >= p.maxExpansions {
			return []string{}, ErrSearchBudget
		}
		expanded++
		if expanded%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return []string{}, err
			}
		}

		room, _ := zone.GetRoom(current)
		for _, arc := range room.Arcs {
			if arc.Hidden && !p.includeHidden {
				continue
			}
			next := arc.Destination
			if _, seen := prev[next]; seen {
				continue
			}
			if _, ok := zone.GetRoom(next); !ok {
				continue
			}
			prev[next] = current
			if next == target {
				return buildPath(prev, start, target), nil
			}
			queue = append(queue, next)
		}
	}

	return []string{}, nil
}

// buildPath walks predecessor links back from target.
func buildPath(prev map[string]string, start, target string) []string {
	var rev []string
	for id := target; id != start; id = prev[id] {
		rev = append(rev, id)
	}
	rev = append(rev, start)
	path := make([]string, len(rev))
	for i, id := range rev {
		path[len(rev)-1-i] = id
	}
	return path
}
