package behaviour

import "github.com/dyluth/goap/pkg/goap"

// SensePlayer caches the nearest player closer than MaxDistance.
type SensePlayer struct {
	MaxDistance float64
}

func (s *SensePlayer) Name() string { return "SensePlayer" }

func (s *SensePlayer) Sense(agent goap.EntityID, w goap.World, resources, scratch *goap.Bag, facts *goap.Facts) {
	pos, dist, ok := nearest(agent, w, TagPlayer)
	if !ok || dist >= s.MaxDistance {
		goap.Take[PlayerLocation](scratch)
		return
	}
	goap.Put(scratch, PlayerLocation{Position: pos, Distance: dist})
}

// AggroCharacter wants the agent next to a player.
type AggroCharacter struct{}

func (AggroCharacter) Name() string { return "AggroCharacter" }

func (AggroCharacter) TargetState(goap.EntityID, goap.World, *goap.Bag) *goap.Facts {
	return boolTarget(FactNearbyPlayer)
}

// Patrol closes in on a sensed player.
type Patrol struct{}

func (Patrol) Name() string         { return "Patrol" }
func (Patrol) Cost(*goap.Facts) int { return 1 }

func (Patrol) Ready(_ goap.EntityID, _ goap.World, scratch *goap.Bag, _ *goap.Facts) bool {
	return goap.Has[PlayerLocation](scratch)
}

func (Patrol) ApplyEffect(_ *goap.Bag, facts *goap.Facts) {
	facts.SetBool(FactKnowPlayerLocation, true)
}

func (Patrol) Execute(agent goap.EntityID, _ goap.World, resources, scratch *goap.Bag) {
	loc, ok := goap.Get[PlayerLocation](scratch)
	if !ok {
		return
	}
	if m, ok := mover(resources); ok {
		m.MoveTowards(agent, loc.Position)
	}
}

// Attack holds position once a player is within MaxDistance.
type Attack struct {
	MaxDistance float64
}

func (a *Attack) Name() string         { return "Attack" }
func (a *Attack) Cost(*goap.Facts) int { return 1 }

func (a *Attack) Ready(_ goap.EntityID, _ goap.World, scratch *goap.Bag, facts *goap.Facts) bool {
	if loc, ok := goap.Get[PlayerLocation](scratch); ok && loc.Distance < a.MaxDistance {
		return true
	}
	known, _ := facts.Bool(FactKnowPlayerLocation)
	return known
}

func (a *Attack) ApplyEffect(_ *goap.Bag, facts *goap.Facts) {
	facts.Remove(FactKnowPlayerLocation)
	facts.SetBool(FactNearbyPlayer, true)
}

func (a *Attack) Execute(agent goap.EntityID, _ goap.World, resources, _ *goap.Bag) {
	if m, ok := mover(resources); ok {
		m.SetVelocity(agent, goap.Vec3{})
	}
}
