package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dyluth/goap/internal/config"
	"github.com/dyluth/goap/internal/world"
	"github.com/dyluth/goap/pkg/goap"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func camperConfig(firePosition []float64) *config.GoapConfig {
	chill := 2.0
	despawn := uint64(3)
	cfg := &config.GoapConfig{
		Version: "1.0",
		Groups: map[string]config.GroupConfig{
			"camper": {
				Goals:   []string{"StayWarm"},
				Actions: []config.Component{{Name: "SearchForFire"}, {Name: "Chill", MaxDistance: &chill}},
				Sensors: []config.Component{{Name: "SenseFire"}},
			},
		},
		Entities: []config.EntityConfig{
			{Name: "camper-1", Group: "camper", RunSpeed: 3},
			{Name: "campfire", Tags: []string{"fire"}, Position: firePosition},
			{Name: "spark", Tags: []string{"fire"}, Position: []float64{500, 0, 0}, DespawnTick: &despawn},
		},
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

type collector struct {
	records []*goap.Record
}

func (c *collector) Write(_ context.Context, r *goap.Record) error {
	c.records = append(c.records, r)
	return nil
}

func TestFromConfig(t *testing.T) {
	s, err := FromConfig(camperConfig([]float64{1, 0, 0}))
	require.NoError(t, err)

	assert.Equal(t, 3, s.World().Len())
	require.Len(t, s.World().Agents(), 1)
	assert.Equal(t, 50*time.Millisecond, s.delta)

	_, ok := goap.Get[world.Mover](s.Resources())
	assert.True(t, ok)
	_, ok = goap.Get[*world.Clock](s.Resources())
	assert.True(t, ok)

	t.Run("unknown behaviour", func(t *testing.T) {
		cfg := camperConfig([]float64{1, 0, 0})
		cfg.Groups["camper"] = config.GroupConfig{Goals: []string{"Sleep"}}
		_, err := FromConfig(cfg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to define goal groups")
	})
}

func TestTickNearbyFire(t *testing.T) {
	s, err := FromConfig(camperConfig([]float64{1, 0, 0}))
	require.NoError(t, err)
	sink := &collector{}
	s.AddSink(sink)

	records, err := s.Tick(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, uint64(1), r.Tick)
	assert.Equal(t, "camper", r.GroupName)
	assert.Equal(t, "Chill", r.Decision.Action)
	assert.NoError(t, r.Validate())
	assert.Equal(t, records, sink.records)
}

func TestTickWalksToDistantFire(t *testing.T) {
	s, err := FromConfig(camperConfig([]float64{10, 0, 0}))
	require.NoError(t, err)
	agent := s.World().Agents()[0]

	var actions []string
	for i := 0; i < 60; i++ {
		records, err := s.Tick(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 1)
		actions = append(actions, records[0].Decision.Action)
	}

	assert.Equal(t, "SearchForFire", actions[0])
	assert.Equal(t, "Chill", actions[len(actions)-1])

	// 54 steps of 0.15 bring the camper inside chilling range
	b, _ := s.World().Body(agent)
	assert.InDelta(t, 8.1, b.Position.X, 1e-6)
	assert.Equal(t, goap.Vec3{}, b.Velocity)
}

func TestTickDespawnEvictsPlanner(t *testing.T) {
	s, err := FromConfig(camperConfig([]float64{1, 0, 0}))
	require.NoError(t, err)
	agent := s.World().Agents()[0]
	s.ScheduleDespawn(agent, 2)

	ctx := context.Background()
	_, err = s.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Registry().Len())

	_, err = s.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Registry().Len())
	_, ok := s.World().Body(agent)
	assert.False(t, ok)

	records, err := s.Tick(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 1, s.World().Len(), "spark despawned at tick 3")
}

func TestTickSinkFailureDoesNotAbort(t *testing.T) {
	s, err := FromConfig(camperConfig([]float64{1, 0, 0}))
	require.NoError(t, err)

	good := &collector{}
	s.AddSink(SinkFunc(func(context.Context, *goap.Record) error { return errors.New("redis down") }))
	s.AddSink(good)

	records, err := s.Tick(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Len(t, good.records, 1)
}

func TestTickSkipsUnknownGroup(t *testing.T) {
	w := world.New()
	known := uuid.New()
	reg := goap.NewRegistry()
	reg.Define(known, func() *goap.Planner { return goap.NewPlanner() })

	a := w.Spawn("a", goap.Body{})
	b := w.Spawn("b", goap.Body{})
	require.NoError(t, w.SetGroup(a, uuid.New()))
	require.NoError(t, w.SetGroup(b, known))

	s := New(w, reg, 10*time.Millisecond)
	s.NameGroup(known, "empty")

	records, err := s.Tick(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, b, records[0].Agent)
	assert.Equal(t, "empty", records[0].GroupName)
	assert.True(t, records[0].Decision.Idle())
}

func TestTickOrdersAgents(t *testing.T) {
	w := world.New()
	group := uuid.New()
	reg := goap.NewRegistry()
	reg.Define(group, func() *goap.Planner { return goap.NewPlanner() })
	for i := 0; i < 5; i++ {
		id := w.Spawn("", goap.Body{})
		require.NoError(t, w.SetGroup(id, group))
	}

	records, err := New(w, reg, time.Millisecond).Tick(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 5)
	for i, r := range records {
		assert.Equal(t, goap.EntityID(i+1), r.Agent)
	}
}

func TestTickCancelled(t *testing.T) {
	s := New(world.New(), goap.NewRegistry(), time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Tick(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(0), s.Clock().Tick)
}

func TestRun(t *testing.T) {
	t.Run("unpaced", func(t *testing.T) {
		s := New(world.New(), goap.NewRegistry(), 50*time.Millisecond)
		require.NoError(t, s.Run(context.Background(), 7, 0))
		assert.Equal(t, uint64(7), s.Clock().Tick)
		assert.Equal(t, 350*time.Millisecond, s.Clock().Elapsed)
	})

	t.Run("paced", func(t *testing.T) {
		s := New(world.New(), goap.NewRegistry(), 50*time.Millisecond)
		require.NoError(t, s.Run(context.Background(), 3, time.Millisecond))
		assert.Equal(t, uint64(3), s.Clock().Tick)
	})

	t.Run("cancelled while paced", func(t *testing.T) {
		s := New(world.New(), goap.NewRegistry(), 50*time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		err := s.Run(ctx, 1000, time.Hour)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, uint64(1), s.Clock().Tick)
	})
}
