// Package sim drives the tick loop: plan every agent, record decisions, step
// physics, then remove entities whose lifetime ended.
package sim

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dyluth/goap/internal/behaviour"
	"github.com/dyluth/goap/internal/config"
	"github.com/dyluth/goap/internal/world"
	"github.com/dyluth/goap/pkg/goap"
	"github.com/google/uuid"
)

// Sink receives every record produced by a tick.
type Sink interface {
	Write(ctx context.Context, r *goap.Record) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, r *goap.Record) error

func (f SinkFunc) Write(ctx context.Context, r *goap.Record) error { return f(ctx, r) }

// Simulation owns the world, the planner registry and the shared resources.
// It is single-threaded: Tick must not be called concurrently.
type Simulation struct {
	world     *world.World
	physics   *world.Physics
	registry  *goap.Registry
	resources *goap.Bag
	clock     *world.Clock
	groups    map[uuid.UUID]string
	despawns  map[uint64][]goap.EntityID
	sinks     []Sink
	delta     time.Duration
	now       func() time.Time
}

// New creates a simulation over w with a fixed tick length.
func New(w *world.World, registry *goap.Registry, delta time.Duration) *Simulation {
	s := &Simulation{
		world:     w,
		physics:   world.NewPhysics(w),
		registry:  registry,
		resources: goap.NewBag(),
		clock:     &world.Clock{},
		groups:    make(map[uuid.UUID]string),
		despawns:  make(map[uint64][]goap.EntityID),
		delta:     delta,
		now:       time.Now,
	}
	goap.Put[world.Mover](s.resources, s.physics)
	goap.Put(s.resources, s.clock)

	w.OnDespawn(func(id goap.EntityID) {
		registry.Evict(id)
	})
	return s
}

// FromConfig builds the world, registry and simulation described by cfg.
func FromConfig(cfg *config.GoapConfig) (*Simulation, error) {
	registry := goap.NewRegistry()
	names, err := behaviour.Define(registry, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to define goal groups: %w", err)
	}

	w := world.New()
	delta := time.Second / time.Duration(*cfg.Simulation.TickRateHz)
	s := New(w, registry, delta)
	s.groups = names

	for _, e := range cfg.Entities {
		tags := make([]goap.Tag, len(e.Tags))
		for i, t := range e.Tags {
			tags[i] = goap.Tag(t)
		}
		id := w.Spawn(e.Name, e.Body(), tags...)

		if e.Group != "" {
			g := cfg.Groups[e.Group]
			groupID, err := g.GroupID(e.Group)
			if err != nil {
				return nil, fmt.Errorf("entity '%s': %w", e.Name, err)
			}
			if err := w.SetGroup(id, groupID); err != nil {
				return nil, err
			}
		}
		if e.DespawnTick != nil {
			s.ScheduleDespawn(id, *e.DespawnTick)
		}
	}

	log.Printf("[Sim] Loaded %d entities, %d agents, %d groups", w.Len(), len(w.Agents()), len(names))
	return s, nil
}

// AddSink registers a record sink. Sinks run in registration order.
func (s *Simulation) AddSink(sink Sink) {
	s.sinks = append(s.sinks, sink)
}

// NameGroup sets the human-readable name recorded for group.
func (s *Simulation) NameGroup(group uuid.UUID, name string) {
	s.groups[group] = name
}

// ScheduleDespawn removes id at the end of tick.
func (s *Simulation) ScheduleDespawn(id goap.EntityID, tick uint64) {
	s.despawns[tick] = append(s.despawns[tick], id)
}

// World returns the simulated world.
func (s *Simulation) World() *world.World { return s.world }

// Registry returns the planner registry.
func (s *Simulation) Registry() *goap.Registry { return s.registry }

// Resources returns the shared resource bag.
func (s *Simulation) Resources() *goap.Bag { return s.resources }

// Delta returns the simulated length of one tick.
func (s *Simulation) Delta() time.Duration { return s.delta }

// Clock returns the simulation clock.
func (s *Simulation) Clock() *world.Clock { return s.clock }

// Tick runs one full step and returns the records it produced, in agent order.
// Agents whose group is unknown are skipped. Sink failures are logged and never
// abort the tick.
func (s *Simulation) Tick(ctx context.Context) ([]*goap.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.clock.Advance(s.delta)
	tick := s.clock.Tick

	var records []*goap.Record
	for _, agent := range s.world.Agents() {
		group, _ := s.world.Group(agent)
		d, err := s.registry.Run(agent, group, s.world, s.resources)
		if err != nil {
			log.Printf("[Sim] Skipping agent=%s (%s): %v", agent, s.world.Name(agent), err)
			continue
		}

		r := goap.NewRecord(tick, agent, group, s.groups[group], s.now().UnixMilli(), d)
		records = append(records, r)
		for _, sink := range s.sinks {
			if err := sink.Write(ctx, r); err != nil {
				log.Printf("[Sim] Failed to write decision for agent=%s: %v", agent, err)
			}
		}
	}

	s.physics.Step(s.delta)

	for _, id := range s.despawns[tick] {
		name := s.world.Name(id)
		if s.world.Despawn(id) {
			log.Printf("[Sim] Despawned %s at tick %d", name, tick)
		}
	}
	delete(s.despawns, tick)

	return records, nil
}

// Run ticks n times or until ctx is cancelled. A zero interval runs as fast as
// possible.
func (s *Simulation) Run(ctx context.Context, n int, interval time.Duration) error {
	var ticker *time.Ticker
	if interval > 0 {
		ticker = time.NewTicker(interval)
		defer ticker.Stop()
	}

	for i := 0; i < n; i++ {
		if ticker != nil && i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
		if _, err := s.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}
