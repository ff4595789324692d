package behaviour

import (
	"testing"

	"github.com/dyluth/goap/internal/world"
	"github.com/dyluth/goap/pkg/goap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scene struct {
	world     *world.World
	resources *goap.Bag
	scratch   *goap.Bag
	agent     goap.EntityID
}

func newScene(agentBody goap.Body) *scene {
	w := world.New()
	res := goap.NewBag()
	goap.Put[world.Mover](res, world.NewPhysics(w))
	return &scene{
		world:     w,
		resources: res,
		scratch:   goap.NewBag(),
		agent:     w.Spawn("camper", agentBody),
	}
}

func firePlanner() *goap.Planner {
	p := goap.NewPlanner()
	p.AddSensor(&SenseFire{MaxDistance: 100})
	p.AddGoal(StayWarm{})
	p.AddAction(SearchForFire{})
	p.AddAction(&Chill{MaxDistance: 2})
	return p
}

func TestFireScenario(t *testing.T) {
	t.Run("no fire sensed stays idle", func(t *testing.T) {
		s := newScene(goap.Body{RunSpeed: 3, Velocity: goap.Vec3{X: 1}})
		d := firePlanner().Plan(s.agent, s.world, s.resources, s.scratch)

		assert.True(t, d.Idle())
		require.Len(t, d.Goals, 1)
		assert.Equal(t, goap.GoalExhausted, d.Goals[0].Outcome)
		b, _ := s.world.Body(s.agent)
		assert.Equal(t, goap.Vec3{X: 1}, b.Velocity, "nothing executed")
	})

	t.Run("fire within range chills", func(t *testing.T) {
		s := newScene(goap.Body{RunSpeed: 3, Velocity: goap.Vec3{X: 1}})
		s.world.Spawn("campfire", goap.Body{Position: goap.Vec3{X: 1}}, TagFire)

		d := firePlanner().Plan(s.agent, s.world, s.resources, s.scratch)

		assert.Equal(t, "Chill", d.Action)
		assert.Equal(t, []string{"Chill"}, d.Path)
		assert.Equal(t, 3, d.Cost)
		b, _ := s.world.Body(s.agent)
		assert.Equal(t, goap.Vec3{}, b.Velocity)
	})

	t.Run("distant fire is searched for first", func(t *testing.T) {
		s := newScene(goap.Body{RunSpeed: 3})
		s.world.Spawn("campfire", goap.Body{Position: goap.Vec3{X: 10}}, TagFire)

		d := firePlanner().Plan(s.agent, s.world, s.resources, s.scratch)

		assert.Equal(t, "SearchForFire", d.Action)
		assert.Equal(t, []string{"SearchForFire", "Chill"}, d.Path)
		assert.Equal(t, 6, d.Cost)
		b, _ := s.world.Body(s.agent)
		assert.InDelta(t, 3.0, b.Velocity.X, 1e-9)
	})

	t.Run("fire out of sensing range", func(t *testing.T) {
		s := newScene(goap.Body{RunSpeed: 3})
		s.world.Spawn("campfire", goap.Body{Position: goap.Vec3{X: 500}}, TagFire)

		d := firePlanner().Plan(s.agent, s.world, s.resources, s.scratch)
		assert.True(t, d.Idle())
	})
}

func TestSenseFireClearsStaleCache(t *testing.T) {
	s := newScene(goap.Body{})
	fire := s.world.Spawn("campfire", goap.Body{Position: goap.Vec3{Y: 4}}, TagFire)
	s.world.Spawn("far", goap.Body{Position: goap.Vec3{Y: 40}}, TagFire)
	sensor := &SenseFire{MaxDistance: 10}

	sensor.Sense(s.agent, s.world, s.resources, s.scratch, goap.NewFacts())
	loc, ok := goap.Get[FireLocation](s.scratch)
	require.True(t, ok)
	assert.Equal(t, goap.Vec3{Y: 4}, loc.Position)
	assert.InDelta(t, 4.0, loc.Distance, 1e-9)

	s.world.Despawn(fire)
	sensor.Sense(s.agent, s.world, s.resources, s.scratch, goap.NewFacts())
	assert.False(t, goap.Has[FireLocation](s.scratch))
}

func TestPlayerScenario(t *testing.T) {
	build := func() *goap.Planner {
		p := goap.NewPlanner()
		p.AddSensor(&SensePlayer{MaxDistance: 10})
		p.AddGoal(AggroCharacter{})
		p.AddAction(Patrol{})
		p.AddAction(&Attack{MaxDistance: 2})
		return p
	}

	t.Run("player close by is attacked", func(t *testing.T) {
		s := newScene(goap.Body{RunSpeed: 2, Velocity: goap.Vec3{Z: 1}})
		s.world.Spawn("player", goap.Body{Position: goap.Vec3{Z: 1}}, TagPlayer)

		d := build().Plan(s.agent, s.world, s.resources, s.scratch)
		assert.Equal(t, []string{"Attack"}, d.Path)
		assert.Equal(t, 1, d.Cost)
		b, _ := s.world.Body(s.agent)
		assert.Equal(t, goap.Vec3{}, b.Velocity)
	})

	t.Run("player further away is patrolled towards", func(t *testing.T) {
		s := newScene(goap.Body{RunSpeed: 2})
		s.world.Spawn("player", goap.Body{Position: goap.Vec3{Z: 8}}, TagPlayer)

		d := build().Plan(s.agent, s.world, s.resources, s.scratch)
		assert.Equal(t, []string{"Patrol", "Attack"}, d.Path)
		assert.Equal(t, 2, d.Cost)
		b, _ := s.world.Body(s.agent)
		assert.InDelta(t, 2.0, b.Velocity.Z, 1e-9)
	})

	t.Run("agents do not sense themselves", func(t *testing.T) {
		w := world.New()
		res := goap.NewBag()
		scratch := goap.NewBag()
		self := w.Spawn("player-agent", goap.Body{}, TagPlayer)

		(&SensePlayer{MaxDistance: 10}).Sense(self, w, res, scratch, goap.NewFacts())
		assert.False(t, goap.Has[PlayerLocation](scratch))
	})
}

func TestActionsWithoutMover(t *testing.T) {
	s := newScene(goap.Body{Velocity: goap.Vec3{X: 1}})
	s.resources.Clear()
	goap.Put(s.scratch, FireLocation{Position: goap.Vec3{X: 1}, Distance: 1})

	SearchForFire{}.Execute(s.agent, s.world, s.resources, s.scratch)
	(&Chill{MaxDistance: 2}).Execute(s.agent, s.world, s.resources, s.scratch)

	b, _ := s.world.Body(s.agent)
	assert.Equal(t, goap.Vec3{X: 1}, b.Velocity)
}
