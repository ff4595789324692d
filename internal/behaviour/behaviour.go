// Package behaviour provides the built-in sensors, goals and actions agents plan
// with, and a catalog that assembles them into planner factories per goal group.
package behaviour

import (
	"github.com/dyluth/goap/internal/world"
	"github.com/dyluth/goap/pkg/goap"
)

// Entity tags sensed by the built-in sensors.
const (
	TagFire   goap.Tag = "fire"
	TagPlayer goap.Tag = "player"
)

// Fact keys written by built-in goals and action effects.
const (
	FactNearbyFire         = "NearbyFire"
	FactLocatedFire        = "LocatedFire"
	FactNearbyPlayer       = "NearbyPlayer"
	FactKnowPlayerLocation = "KnowPlayerLocation"
)

// FireLocation is cached in an agent's scratch store while a fire is in range.
type FireLocation struct {
	Position goap.Vec3
	Distance float64
}

// PlayerLocation is cached in an agent's scratch store while a player is in range.
type PlayerLocation struct {
	Position goap.Vec3
	Distance float64
}

// nearest returns the closest entity tagged tag to the agent.
func nearest(agent goap.EntityID, w goap.World, tag goap.Tag) (goap.Vec3, float64, bool) {
	self, ok := w.Body(agent)
	if !ok {
		return goap.Vec3{}, 0, false
	}
	var (
		best  goap.Vec3
		dist  float64
		found bool
	)
	w.Each(tag, func(id goap.EntityID, body goap.Body) bool {
		if id == agent {
			return true
		}
		d := self.Position.Distance(body.Position)
		if !found || d < dist {
			best, dist, found = body.Position, d, true
		}
		return true
	})
	return best, dist, found
}

func mover(resources *goap.Bag) (world.Mover, bool) {
	return goap.Get[world.Mover](resources)
}

func boolTarget(key string) *goap.Facts {
	f := goap.NewFacts()
	f.SetBool(key, true)
	return f
}
