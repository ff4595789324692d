package goap

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"
)

// ErrUnknownGroup is returned by Registry.Run when no factory was defined for a group.
var ErrUnknownGroup = errors.New("unknown goal group")

// Factory builds a Planner with the fixed sensor, goal and action set of a goal group.
// It is called once per agent, so capability values it creates are never shared.
type Factory func() *Planner

// Key identifies a registry entry.
type Key struct {
	Agent EntityID
	Group uuid.UUID
}

// Entry is one agent's planner and the scratch store bound to it.
type Entry struct {
	Planner *Planner
	Scratch *Bag
}

// Registry maps (agent, goal group) to an owned Planner and scratch store,
// created lazily and reused across ticks.
type Registry struct {
	factories map[uuid.UUID]Factory
	entries   map[Key]*Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[uuid.UUID]Factory),
		entries:   make(map[Key]*Entry),
	}
}

// Define registers the factory used for agents planning with group.
// Redefining a group only affects agents seen afterwards.
func (r *Registry) Define(group uuid.UUID, f Factory) {
	r.factories[group] = f
}

// Defined reports whether group has a factory.
func (r *Registry) Defined(group uuid.UUID) bool {
	_, ok := r.factories[group]
	return ok
}

// Lookup returns the existing entry for (agent, group).
func (r *Registry) Lookup(agent EntityID, group uuid.UUID) (*Entry, bool) {
	e, ok := r.entries[Key{Agent: agent, Group: group}]
	return e, ok
}

// GetOrCreate returns the entry for (agent, group), building it with f and an
// empty scratch store the first time the pair is seen.
func (r *Registry) GetOrCreate(agent EntityID, group uuid.UUID, f Factory) *Entry {
	key := Key{Agent: agent, Group: group}
	if e, ok := r.entries[key]; ok {
		return e
	}
	var p *Planner
	if f != nil {
		p = f()
	}
	if p == nil {
		p = NewPlanner()
	}
	e := &Entry{Planner: p, Scratch: NewBag()}
	r.entries[key] = e
	log.Printf("[Registry] Created planner for agent=%s group=%s", agent, group)
	return e
}

// Run looks up or creates the agent's planner for group and runs one pass.
// The only error is ErrUnknownGroup; planning failures are reported in the Decision.
func (r *Registry) Run(agent EntityID, group uuid.UUID, world World, resources *Bag) (Decision, error) {
	e, ok := r.Lookup(agent, group)
	if !ok {
		f, defined := r.factories[group]
		if !defined {
			return Decision{}, fmt.Errorf("%w: %s", ErrUnknownGroup, group)
		}
		e = r.GetOrCreate(agent, group, f)
	}
	return e.Planner.Plan(agent, world, resources, e.Scratch), nil
}

// Evict drops every entry owned by agent and returns how many were removed.
// Hosts call it when the agent's entity is removed.
func (r *Registry) Evict(agent EntityID) int {
	removed := 0
	for key := range r.entries {
		if key.Agent == agent {
			delete(r.entries, key)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("[Registry] Evicted %d planner(s) for agent=%s", removed, agent)
	}
	return removed
}

// Len returns the number of live entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Keys returns live entry keys ordered by agent, then group.
func (r *Registry) Keys() []Key {
	keys := make([]Key, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Agent != keys[j].Agent {
			return keys[i].Agent < keys[j].Agent
		}
		return keys[i].Group.String() < keys[j].Group.String()
	})
	return keys
}
