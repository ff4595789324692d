// Package goap implements Goal-Oriented Action Planning for tick-driven agents.
//
// # Overview
//
// Every simulation tick, an agent senses the live world, searches for the cheapest
// sequence of actions that turns its perceived facts into one of its goal states, and
// performs only the first action of that sequence. The next tick senses and searches
// again from scratch, so plans never go stale.
//
// # Core Concepts
//
// Facts is the typed key-value world state (bool, uint32 or string values). It is the
// search key, the goal description and the thing action effects mutate. Two Facts are
// equal only when both hold exactly the same keys with the same values.
//
// Sensors run once per pass, before any search. They turn live perception into facts and
// cache richer results (a resolved target position, a distance) in the agent's scratch
// Bag.
//
// Goals produce the target Facts a plan must reach. They are re-derived every pass.
//
// Actions expose a cost, a readiness predicate, a predicted effect on a copy of the
// facts, and an Execute routine that performs the real side effect. Execute runs at most
// once per pass and only for the chosen action.
//
// The Planner runs one bounded uniform-cost search per goal over hypothetical Facts. Nodes
// live in an append-only arena and point to their parent by index. Each goal search gives
// up after MaxIterations expansions.
//
// The Registry owns one Planner and one scratch Bag per (agent, goal group) pair, creating
// them lazily the first time an agent is seen and evicting them when the agent despawns.
//
// # Usage Example
//
//	registry := goap.NewRegistry()
//	registry.Define(campers, func() *goap.Planner {
//		p := goap.NewPlanner(goap.WithMaxIterations(50))
//		p.AddSensor(&behaviour.SenseFire{MaxDistance: 100})
//		p.AddGoal(behaviour.StayWarm{})
//		p.AddAction(behaviour.SearchForFire{})
//		p.AddAction(&behaviour.Chill{MaxDistance: 2})
//		return p
//	})
//
//	// once per tick, per agent carrying the campers goal marker
//	decision, err := registry.Run(agentID, campers, world, resources)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if decision.Idle() {
//		// nothing reachable this tick
//	}
//
// # Costs
//
// Costs are additive and the search extracts the minimum accumulated cost. Ties are
// broken by push order, which follows action registration order.
//
// # Concurrency
//
// Nothing in this package is safe for concurrent use. Agents are planned sequentially and
// each one owns its Planner and scratch Bag, so no locking is needed.
package goap
