// Package world is the in-memory entity store the simulation plans against.
// It implements goap.World for reads and exposes Physics as the command side.
package world

import (
	"fmt"
	"sort"

	"github.com/dyluth/goap/pkg/goap"
	"github.com/google/uuid"
)

// Entity is one thing in the world. Entities with a goal group are agents.
type Entity struct {
	ID    goap.EntityID
	Name  string
	Tags  map[goap.Tag]struct{}
	Body  goap.Body
	Group *uuid.UUID
}

// HasTag reports whether the entity carries tag.
func (e *Entity) HasTag(tag goap.Tag) bool {
	_, ok := e.Tags[tag]
	return ok
}

// World holds entities keyed by ID. IDs start at 1 and are never reused.
type World struct {
	next      goap.EntityID
	entities  map[goap.EntityID]*Entity
	onDespawn []func(goap.EntityID)
}

// New creates an empty world.
func New() *World {
	return &World{
		next:     1,
		entities: make(map[goap.EntityID]*Entity),
	}
}

// Spawn adds an entity and returns its ID.
func (w *World) Spawn(name string, body goap.Body, tags ...goap.Tag) goap.EntityID {
	id := w.next
	w.next++

	e := &Entity{ID: id, Name: name, Body: body, Tags: make(map[goap.Tag]struct{}, len(tags))}
	for _, t := range tags {
		e.Tags[t] = struct{}{}
	}
	w.entities[id] = e
	return id
}

// SetGroup marks id as an agent planning with group.
func (w *World) SetGroup(id goap.EntityID, group uuid.UUID) error {
	e, ok := w.entities[id]
	if !ok {
		return fmt.Errorf("entity %s not found", id)
	}
	g := group
	e.Group = &g
	return nil
}

// Group returns the goal group of id, if it is an agent.
func (w *World) Group(id goap.EntityID) (uuid.UUID, bool) {
	e, ok := w.entities[id]
	if !ok || e.Group == nil {
		return uuid.Nil, false
	}
	return *e.Group, true
}

// OnDespawn registers fn to run after an entity is removed.
func (w *World) OnDespawn(fn func(goap.EntityID)) {
	w.onDespawn = append(w.onDespawn, fn)
}

// Despawn removes id and runs despawn hooks. It reports whether id existed.
func (w *World) Despawn(id goap.EntityID) bool {
	if _, ok := w.entities[id]; !ok {
		return false
	}
	delete(w.entities, id)
	for _, fn := range w.onDespawn {
		fn(id)
	}
	return true
}

// Entity returns the live entity for id.
func (w *World) Entity(id goap.EntityID) (*Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// Name returns the entity name, or its ID when it has none.
func (w *World) Name(id goap.EntityID) string {
	if e, ok := w.entities[id]; ok && e.Name != "" {
		return e.Name
	}
	return id.String()
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.entities)
}

// Body implements goap.World.
func (w *World) Body(id goap.EntityID) (goap.Body, bool) {
	e, ok := w.entities[id]
	if !ok {
		return goap.Body{}, false
	}
	return e.Body, true
}

// Each implements goap.World. Entities are visited in ID order.
func (w *World) Each(tag goap.Tag, fn func(id goap.EntityID, body goap.Body) bool) {
	for _, id := range w.ids() {
		e := w.entities[id]
		if !e.HasTag(tag) {
			continue
		}
		if !fn(id, e.Body) {
			return
		}
	}
}

// Agents returns the IDs of entities carrying a goal group, in ID order.
func (w *World) Agents() []goap.EntityID {
	var out []goap.EntityID
	for _, id := range w.ids() {
		if w.entities[id].Group != nil {
			out = append(out, id)
		}
	}
	return out
}

func (w *World) ids() []goap.EntityID {
	ids := make([]goap.EntityID, 0, len(w.entities))
	for id := range w.entities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
