package goap

import (
	"fmt"
	"math"
)

// EntityID identifies an agent or any other entity in the host world. It must be
// stable across ticks for the same logical entity.
type EntityID uint64

func (id EntityID) String() string {
	return fmt.Sprintf("%d", uint64(id))
}

// Tag marks entities that carry a capability, e.g. "fire" or "player".
type Tag string

// Vec3 is a position or velocity in world units.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Length returns the Euclidean norm.
func (v Vec3) Length() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Distance returns the Euclidean distance between v and o.
func (v Vec3) Distance(o Vec3) float64 { return v.Sub(o).Length() }

// Normalize returns the unit vector along v, or the zero vector when v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Body is a snapshot of an entity's spatial and physical attributes.
type Body struct {
	Position Vec3
	Velocity Vec3
	RunSpeed float64
}

// World is the read side of the host entity store.
//
// Sensors, readiness checks and Execute read it. Only Execute may cause live
// state to change, and it does so through command interfaces found in the
// resource Bag rather than through World.
type World interface {
	// Body returns a snapshot of the entity's attributes.
	Body(id EntityID) (Body, bool)

	// Each calls fn for every entity carrying tag until fn returns false.
	Each(tag Tag, fn func(id EntityID, body Body) bool)
}

// Sensor perceives the live world before planning.
//
// Sense must not mutate world or resources. It may write derived facts and cache
// richer results in scratch. A sensor that perceives nothing qualifying must remove
// whatever it cached on an earlier tick.
type Sensor interface {
	Name() string
	Sense(agent EntityID, world World, resources *Bag, scratch *Bag, facts *Facts)
}

// Goal produces the target fact state a plan must reach.
type Goal interface {
	Name() string
	TargetState(agent EntityID, world World, scratch *Bag) *Facts
}

// Action is a capability the planner can choose.
//
// Cost is a pure function of the hypothetical facts. Ready is consulted
// speculatively against many hypothetical states and must not mutate world or
// scratch. ApplyEffect mutates only the copy of the facts it is given and must be
// deterministic. Execute performs the real side effect and runs at most once per
// planning pass, only for the chosen action.
type Action interface {
	Name() string
	Cost(facts *Facts) int
	Ready(agent EntityID, world World, scratch *Bag, facts *Facts) bool
	ApplyEffect(scratch *Bag, facts *Facts)
	Execute(agent EntityID, world World, resources *Bag, scratch *Bag)
}
