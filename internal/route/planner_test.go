package route_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/outlander-app/outlander-sub000/internal/mapper"
	"github.com/outlander-app/outlander-sub000/internal/observability"
	"github.com/outlander-app/outlander-sub000/internal/route"
)

func keepZone(t *testing.T) *mapper.Zone {
	t.Helper()
	zone := mapper.NewZone("keep", "The Keep")
	for _, r := range []*mapper.Room{
		{ID: "1", Name: "[Gate House]", Notes: []string{"gate"}, Arcs: []mapper.Arc{
			{Exit: mapper.North, Move: "north", Destination: "2"},
			{Exit: mapper.Go, Move: "go gate; north", Destination: "3"},
		}},
		{ID: "2", Name: "[Courtyard]", Arcs: []mapper.Arc{
			{Exit: mapper.South, Move: "south", Destination: "1"},
		}},
		{ID: "3", Name: "[Tower Stair]"},
	} {
		require.NoError(t, zone.AddRoom(r))
	}
	return zone
}

func newPlanner(t *testing.T, opts ...route.Option) *route.Planner {
	t.Helper()
	crossing, err := mapper.LoadZoneFromFile("../mapper/testdata/crossing.yaml")
	require.NoError(t, err)
	mgr, err := mapper.NewManager([]*mapper.Zone{keepZone(t), crossing})
	require.NoError(t, err)
	return route.NewPlanner(mgr, opts...)
}

func TestSplitMove(t *testing.T) {
	cases := map[string][]string{
		"north":                {"north"},
		"go gate;north":        {"go gate", "north"},
		" go gate ; ; north; ": {"go gate", "north"},
		"":                     nil,
		";":                    nil,
	}
	for in, want := range cases {
		assert.Equal(t, want, route.SplitMove(in), "%q", in)
	}
}

func TestPlan_Steps(t *testing.T) {
	plan := &route.Plan{Moves: []string{"east", "go gate;north", "climb stair"}}
	assert.Equal(t, []string{"east", "go gate", "north", "climb stair"}, plan.Steps())
	assert.Empty(t, (&route.Plan{}).Steps())
}

func TestPlanner_Plan_ResolvesEndpoints(t *testing.T) {
	p := newPlanner(t)

	plan, err := p.Plan(context.Background(), "keep", "gate", "tower stair")
	require.NoError(t, err)
	assert.True(t, plan.Found())
	assert.Equal(t, "1", plan.From.ID)
	assert.Equal(t, "3", plan.To.ID)
	assert.Equal(t, []string{"1", "3"}, plan.Path)
	assert.Equal(t, []string{"go gate; north"}, plan.Moves)
	assert.Equal(t, []string{"go gate", "north"}, plan.Steps())
	_, err = uuid.Parse(plan.ID)
	assert.NoError(t, err)
}

func TestPlanner_Plan_Crossing(t *testing.T) {
	p := newPlanner(t)

	plan, err := p.Plan(context.Background(), "crossing", "68", "bank")
	require.NoError(t, err)
	assert.Equal(t, "231", plan.To.ID)
	assert.Equal(t, []string{
		"east", "southeast", "northeast", "northeast", "east", "east", "east", "east",
		"northeast", "go longbow bridge", "northeast", "go provincial bank",
	}, plan.Moves)
	assert.Len(t, plan.Path, 13)
}

func TestPlanner_Plan_SameRoom(t *testing.T) {
	p := newPlanner(t)

	plan, err := p.Plan(context.Background(), "keep", "1", "gate")
	require.NoError(t, err)
	assert.True(t, plan.Found())
	assert.Equal(t, []string{"1"}, plan.Path)
	assert.Empty(t, plan.Moves)
}

func TestPlanner_Plan_Unreachable(t *testing.T) {
	p := newPlanner(t)

	plan, err := p.Plan(context.Background(), "keep", "3", "1")
	require.NoError(t, err)
	assert.False(t, plan.Found())
	assert.Empty(t, plan.Path)
	assert.Empty(t, plan.Moves)
}

func TestPlanner_Plan_UnknownZone(t *testing.T) {
	p := newPlanner(t)
	_, err := p.Plan(context.Background(), "atlantis", "1", "2")
	assert.ErrorIs(t, err, route.ErrUnknownZone)
}

func TestPlanner_Plan_UnknownRoom(t *testing.T) {
	p := newPlanner(t)
	_, err := p.Plan(context.Background(), "keep", "1", "qqqq zzzz")
	assert.ErrorIs(t, err, route.ErrUnknownRoom)

	_, err = p.Plan(context.Background(), "keep", "qqqq zzzz", "1")
	assert.ErrorIs(t, err, route.ErrUnknownRoom)
}

func TestPlanner_Plan_Budget(t *testing.T) {
	p := newPlanner(t, route.WithPathfinder(mapper.NewPathfinder(mapper.WithMaxExpansions(3))))
	_, err := p.Plan(context.Background(), "crossing", "68", "585")
	assert.ErrorIs(t, err, mapper.ErrSearchBudget)
}

func TestPlanner_Plan_Cancelled(t *testing.T) {
	p := newPlanner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Plan(ctx, "crossing", "68", "231")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlanner_Plan_HiddenExcluded(t *testing.T) {
	zone := mapper.NewZone("secret", "Secret")
	require.NoError(t, zone.AddRoom(&mapper.Room{ID: "a", Arcs: []mapper.Arc{
		{Exit: mapper.Go, Move: "push panel", Destination: "b", Hidden: true},
	}}))
	require.NoError(t, zone.AddRoom(&mapper.Room{ID: "b"}))
	mgr, err := mapper.NewManager([]*mapper.Zone{zone})
	require.NoError(t, err)

	plan, err := route.NewPlanner(mgr).Plan(context.Background(), "secret", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"push panel"}, plan.Moves)

	plan, err = route.NewPlanner(mgr, route.WithPathfinder(mapper.NewPathfinder(mapper.WithHiddenArcs(false)))).
		Plan(context.Background(), "secret", "a", "b")
	require.NoError(t, err)
	assert.False(t, plan.Found())
}

func TestPlanner_RecordsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	m, err := observability.NewMetrics(mp)
	require.NoError(t, err)

	p := newPlanner(t, route.WithMetrics(m))
	_, err = p.Plan(context.Background(), "keep", "1", "3")
	require.NoError(t, err)
	_, err = p.Plan(context.Background(), "keep", "3", "1")
	require.NoError(t, err)
	_, err = p.Plan(context.Background(), "nowhere", "1", "3")
	require.Error(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	counts := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, met := range sm.Metrics {
			if met.Name != "outlander.route.queries" {
				continue
			}
			for _, dp := range met.Data.(metricdata.Sum[int64]).DataPoints {
				status, _ := dp.Attributes.Value("status")
				counts[status.AsString()] += dp.Value
			}
		}
	}
	assert.Equal(t, map[string]int64{
		observability.StatusFound:       1,
		observability.StatusUnreachable: 1,
		observability.StatusError:       1,
	}, counts)
}

func TestPlanner_LogsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := newPlanner(t, route.WithLogger(zap.New(core)))

	_, err := p.Plan(context.Background(), "keep", "1", "qqqq zzzz")
	require.Error(t, err)

	failed := logs.FilterMessage("route query failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.WarnLevel, failed[0].Level)
	assert.Equal(t, "keep", failed[0].ContextMap()["zone"])
}

func TestPlanner_ConcurrentQueries(t *testing.T) {
	p := newPlanner(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			plan, err := p.Plan(context.Background(), "crossing", "231", "68")
			if assert.NoError(t, err) {
				assert.Len(t, plan.Moves, 12)
			}
		}()
	}
	wg.Wait()
}

// TestSplitMove_Rejoin verifies that splitting never yields empty or padded
// commands and preserves every non-blank part in order.
func TestSplitMove_Rejoin(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		parts := rapid.SliceOf(rapid.StringMatching(`[a-z]{1,6}( [a-z]{1,6})?`)).Draw(rt, "parts")
		pad := rapid.SampledFrom([]string{"", " ", "  "}).Draw(rt, "pad")

		move := ""
		for i, part := range parts {
			if i > 0 {
				move += ";"
			}
			move += pad + part + pad
		}

		got := route.SplitMove(move)
		if len(parts) == 0 {
			assert.Empty(rt, got)
			return
		}
		assert.Equal(rt, parts, got)
	})
}
