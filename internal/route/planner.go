// Package route answers "how do I get from here to there" queries against
// the published zones, resolving loosely written endpoints to rooms and
// translating the room path into the commands a client sends.
package route

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/outlander-app/outlander-sub000/internal/mapper"
	"github.com/outlander-app/outlander-sub000/internal/observability"
)

// ErrUnknownZone is returned when the requested zone is not published.
var ErrUnknownZone = errors.New("unknown zone")

// ErrUnknownRoom is returned when an endpoint does not resolve to a room.
var ErrUnknownRoom = errors.New("unknown room")

// Plan is the answer to one route query.
type Plan struct {
	// ID correlates the plan with its log lines.
	ID     string
	ZoneID string
	From   *mapper.Room
	To     *mapper.Room
	// Path lists room IDs from From to To inclusive. Empty when unreachable.
	Path []string
	// Moves holds one command string per hop, aligned with Path.
	Moves []string
}

// Found reports whether a route exists.
func (p *Plan) Found() bool {
	return len(p.Path) > 0
}

// Steps flattens Moves into individual commands, splitting compound moves
// such as "go gate;north".
func (p *Plan) Steps() []string {
	steps := make([]string, 0, len(p.Moves))
	for _, m := range p.Moves {
		steps = append(steps, SplitMove(m)...)
	}
	return steps
}

// SplitMove splits a move on ';' into trimmed commands, dropping empty parts.
func SplitMove(move string) []string {
	var out []string
	for _, part := range strings.Split(move, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ZoneSource supplies published zones. *mapper.Manager satisfies it.
type ZoneSource interface {
	Zone(id string) (*mapper.Zone, bool)
}

// Planner runs route queries. It is safe for concurrent use.
type Planner struct {
	zones     ZoneSource
	finder    *mapper.Pathfinder
	threshold float64
	timeout   time.Duration
	logger    *zap.Logger
	metrics   *observability.Metrics
}

// Option configures a Planner.
type Option func(*Planner)

// WithPathfinder sets the search engine. Default: mapper.NewPathfinder().
func WithPathfinder(finder *mapper.Pathfinder) Option {
	return func(p *Planner) {
		if finder != nil {
			p.finder = finder
		}
	}
}

// WithFuzzyThreshold sets the minimum score for fuzzy endpoint matches.
// Values <= 0 use mapper.DefaultFuzzyThreshold.
func WithFuzzyThreshold(threshold float64) Option {
	return func(p *Planner) {
		p.threshold = threshold
	}
}

// WithTimeout bounds each query. Zero means no deadline beyond the caller's.
func WithTimeout(d time.Duration) Option {
	return func(p *Planner) {
		p.timeout = d
	}
}

// WithLogger sets the logger. Default: a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMetrics sets the metric instruments. Default: observability.DefaultMetrics().
func WithMetrics(m *observability.Metrics) Option {
	return func(p *Planner) {
		if m != nil {
			p.metrics = m
		}
	}
}

// NewPlanner constructs a Planner over zones.
//
// Precondition: zones must be non-nil.
func NewPlanner(zones ZoneSource, opts ...Option) *Planner {
	p := &Planner{
		zones:  zones,
		finder: mapper.NewPathfinder(),
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(p)
	}
	if p.metrics == nil {
		p.metrics = observability.DefaultMetrics()
	}
	return p
}

// Plan resolves from and to within zoneID and searches for a route.
// An unreachable target is not an error: the returned Plan has Found() false.
//
// Postcondition: Returns a Plan, or an error wrapping ErrUnknownZone,
// ErrUnknownRoom, mapper.ErrSearchBudget, or the context's error.
func (p *Planner) Plan(ctx context.Context, zoneID, from, to string) (*Plan, error) {
	start := time.Now()
	plan, err := p.plan(ctx, zoneID, from, to)
	elapsed := time.Since(start)

	status := observability.StatusFound
	switch {
	case err != nil:
		status = observability.StatusError
	case !plan.Found():
		status = observability.StatusUnreachable
	}
	hops := 0
	if plan != nil {
		hops = len(plan.Moves)
	}
	p.metrics.RecordRoute(ctx, zoneID, status, elapsed, hops)

	if err != nil {
		p.logger.Warn("route query failed",
			zap.String("zone", zoneID),
			zap.String("from", from),
			zap.String("to", to),
			zap.Error(err))
		return nil, err
	}
	p.logger.Debug("route planned",
		zap.String("plan_id", plan.ID),
		zap.String("zone", zoneID),
		zap.String("from", plan.From.ID),
		zap.String("to", plan.To.ID),
		zap.Int("hops", hops),
		zap.Bool("found", plan.Found()),
		zap.Duration("elapsed", elapsed))
	return plan, nil
}

func (p *Planner) plan(ctx context.Context, zoneID, from, to string) (*Plan, error) {
	zone, ok := p.zones.Zone(zoneID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZone, zoneID)
	}
	fromRoom, ok := zone.Resolve(from, p.threshold)
	if !ok {
		return nil, fmt.Errorf("%w: %q in zone %q", ErrUnknownRoom, from, zoneID)
	}
	toRoom, ok := zone.Resolve(to, p.threshold)
	if !ok {
		return nil, fmt.Errorf("%w: %q in zone %q", ErrUnknownRoom, to, zoneID)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	path, err := p.finder.FindPathContext(ctx, fromRoom.ID, toRoom.ID, zone)
	if err != nil {
		return nil, fmt.Errorf("searching %s -> %s: %w", fromRoom.ID, toRoom.ID, err)
	}
	moves, err := zone.GetMoves(path)
	if err != nil {
		return nil, fmt.Errorf("translating path: %w", err)
	}
	return &Plan{
		ID:     uuid.NewString(),
		ZoneID: zoneID,
		From:   fromRoom,
		To:     toRoom,
		Path:   path,
		Moves:  moves,
	}, nil
}
