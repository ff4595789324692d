package behaviour

import "github.com/dyluth/goap/pkg/goap"

// SenseFire caches the nearest fire closer than MaxDistance.
type SenseFire struct {
	MaxDistance float64
}

func (s *SenseFire) Name() string { return "SenseFire" }

func (s *SenseFire) Sense(agent goap.EntityID, w goap.World, resources, scratch *goap.Bag, facts *goap.Facts) {
	pos, dist, ok := nearest(agent, w, TagFire)
	if !ok || dist >= s.MaxDistance {
		goap.Take[FireLocation](scratch)
		return
	}
	goap.Put(scratch, FireLocation{Position: pos, Distance: dist})
}

// StayWarm wants the agent next to a fire.
type StayWarm struct{}

func (StayWarm) Name() string { return "StayWarm" }

func (StayWarm) TargetState(goap.EntityID, goap.World, *goap.Bag) *goap.Facts {
	return boolTarget(FactNearbyFire)
}

// SearchForFire walks towards a sensed fire.
type SearchForFire struct{}

func (SearchForFire) Name() string         { return "SearchForFire" }
func (SearchForFire) Cost(*goap.Facts) int { return 3 }

func (SearchForFire) Ready(_ goap.EntityID, _ goap.World, scratch *goap.Bag, _ *goap.Facts) bool {
	return goap.Has[FireLocation](scratch)
}

func (SearchForFire) ApplyEffect(_ *goap.Bag, facts *goap.Facts) {
	facts.SetBool(FactLocatedFire, true)
}

func (SearchForFire) Execute(agent goap.EntityID, _ goap.World, resources, scratch *goap.Bag) {
	loc, ok := goap.Get[FireLocation](scratch)
	if !ok {
		return
	}
	if m, ok := mover(resources); ok {
		m.MoveTowards(agent, loc.Position)
	}
}

// Chill stops next to a fire. It is ready when the cached fire is closer than
// MaxDistance or a previous step located one.
type Chill struct {
	MaxDistance float64
}

func (c *Chill) Name() string         { return "Chill" }
func (c *Chill) Cost(*goap.Facts) int { return 3 }

func (c *Chill) Ready(_ goap.EntityID, _ goap.World, scratch *goap.Bag, facts *goap.Facts) bool {
	if loc, ok := goap.Get[FireLocation](scratch); ok && loc.Distance < c.MaxDistance {
		return true
	}
	located, _ := facts.Bool(FactLocatedFire)
	return located
}

// ApplyEffect consumes LocatedFire so a search-then-chill plan lands on the
// goal state exactly.
func (c *Chill) ApplyEffect(_ *goap.Bag, facts *goap.Facts) {
	facts.Remove(FactLocatedFire)
	facts.SetBool(FactNearbyFire, true)
}

func (c *Chill) Execute(agent goap.EntityID, _ goap.World, resources, _ *goap.Bag) {
	if m, ok := mover(resources); ok {
		m.SetVelocity(agent, goap.Vec3{})
	}
}
