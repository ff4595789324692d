package world

import (
	"time"

	"github.com/dyluth/goap/pkg/goap"
)

// Mover is the movement command interface actions find in the resource bag.
type Mover interface {
	SetVelocity(id goap.EntityID, v goap.Vec3)
	MoveTowards(id goap.EntityID, target goap.Vec3)
}

// Physics applies velocities to positions. It is the only writer of bodies.
type Physics struct {
	w *World
}

// NewPhysics binds a physics stepper to w.
func NewPhysics(w *World) *Physics {
	return &Physics{w: w}
}

// SetVelocity overwrites the velocity of id. Unknown IDs are ignored.
func (p *Physics) SetVelocity(id goap.EntityID, v goap.Vec3) {
	if e, ok := p.w.entities[id]; ok {
		e.Body.Velocity = v
	}
}

// MoveTowards points the velocity of id at target at the entity's run speed.
func (p *Physics) MoveTowards(id goap.EntityID, target goap.Vec3) {
	e, ok := p.w.entities[id]
	if !ok {
		return
	}
	dir := target.Sub(e.Body.Position).Normalize()
	e.Body.Velocity = dir.Scale(e.Body.RunSpeed)
}

// Step integrates every entity's position over dt.
func (p *Physics) Step(dt time.Duration) {
	secs := dt.Seconds()
	for _, e := range p.w.entities {
		e.Body.Position = e.Body.Position.Add(e.Body.Velocity.Scale(secs))
	}
}

// Clock is the time resource. Tick counts completed planning passes.
type Clock struct {
	Tick    uint64
	Delta   time.Duration
	Elapsed time.Duration
}

// Advance moves the clock forward one tick of length d.
func (c *Clock) Advance(d time.Duration) {
	c.Tick++
	c.Delta = d
	c.Elapsed += d
}
