package goap

import "log"

// DefaultMaxIterations is the per-goal expansion budget used when none is configured.
const DefaultMaxIterations = 50

// Option configures a Planner.
type Option func(*Planner)

// WithMaxIterations sets the per-goal expansion budget. Values below 1 are ignored.
func WithMaxIterations(n int) Option {
	return func(p *Planner) {
		if n >= 1 {
			p.maxIterations = n
		}
	}
}

// WithLogger enables one debug line per goal search and per pass.
func WithLogger(l *log.Logger) Option {
	return func(p *Planner) {
		p.logger = l
	}
}

// Planner owns an ordered set of sensors, goals and actions for one agent and
// turns them into at most one executed action per pass.
type Planner struct {
	sensors []Sensor
	goals   []Goal
	actions []Action

	maxIterations int
	logger        *log.Logger
}

// NewPlanner creates an empty planner.
func NewPlanner(opts ...Option) *Planner {
	p := &Planner{maxIterations: DefaultMaxIterations}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddSensor registers a sensor. Sensors run in registration order.
func (p *Planner) AddSensor(s Sensor) { p.sensors = append(p.sensors, s) }

// AddGoal registers a goal. Goals are searched in registration order.
func (p *Planner) AddGoal(g Goal) { p.goals = append(p.goals, g) }

// AddAction registers an action. Registration order is the order actions are
// offered at each expansion, which breaks cost ties.
func (p *Planner) AddAction(a Action) { p.actions = append(p.actions, a) }

// MaxIterations returns the per-goal expansion budget.
func (p *Planner) MaxIterations() int { return p.maxIterations }

// ActionNames returns registered action names in registration order.
func (p *Planner) ActionNames() []string {
	names := make([]string, len(p.actions))
	for i, a := range p.actions {
		names[i] = a.Name()
	}
	return names
}

// GoalNames returns registered goal names in registration order.
func (p *Planner) GoalNames() []string {
	names := make([]string, len(p.goals))
	for i, g := range p.goals {
		names[i] = g.Name()
	}
	return names
}

// SensorNames returns registered sensor names in registration order.
func (p *Planner) SensorNames() []string {
	names := make([]string, len(p.sensors))
	for i, s := range p.sensors {
		names[i] = s.Name()
	}
	return names
}

// Plan runs one planning pass: sense, search every goal from the same sensed
// facts, then execute the first action of the cheapest path found. Ties between
// goals go to the one registered first.
//
// Finding nothing is normal; the returned Decision is then idle and no action runs.
func (p *Planner) Plan(agent EntityID, world World, resources *Bag, scratch *Bag) Decision {
	sensed := p.sense(agent, world, resources, scratch)
	decision := Decision{
		Sensed: sensed,
		Goals:  make([]GoalResult, 0, len(p.goals)),
	}

	winner := -1
	var best searchResult
	for i, goal := range p.goals {
		res := p.search(agent, world, scratch, sensed, goal)
		decision.Goals = append(decision.Goals, GoalResult{
			Goal:       goal.Name(),
			Outcome:    res.outcome,
			Path:       p.names(res.path),
			Cost:       res.cost,
			Expansions: res.expansions,
		})
		if p.logger != nil {
			p.logger.Printf("[Planner] agent=%s goal=%s outcome=%s cost=%d expansions=%d",
				agent, goal.Name(), res.outcome, res.cost, res.expansions)
		}
		if res.outcome != GoalPlanned {
			continue
		}
		if winner < 0 || res.cost < best.cost {
			winner = i
			best = res
		}
	}

	if winner < 0 {
		if p.logger != nil {
			p.logger.Printf("[Planner] agent=%s idle facts=%s", agent, sensed)
		}
		return decision
	}

	next := p.actions[best.path[0]]
	next.Execute(agent, world, resources, scratch)

	decision.Action = next.Name()
	decision.Goal = p.goals[winner].Name()
	decision.Cost = best.cost
	decision.Path = p.names(best.path)
	if p.logger != nil {
		p.logger.Printf("[Planner] agent=%s executed=%s goal=%s path=%v", agent, decision.Action, decision.Goal, decision.Path)
	}
	return decision
}

func (p *Planner) sense(agent EntityID, world World, resources *Bag, scratch *Bag) *Facts {
	facts := NewFacts()
	for _, s := range p.sensors {
		s.Sense(agent, world, resources, scratch, facts)
	}
	return facts
}

type searchResult struct {
	outcome    GoalOutcome
	path       []int
	cost       int
	expansions int
}

// search runs a bounded uniform-cost search from start towards goal's target.
// The root facts are shared, never mutated: successors always work on clones.
func (p *Planner) search(agent EntityID, world World, scratch *Bag, start *Facts, goal Goal) searchResult {
	target := goal.TargetState(agent, world, scratch)

	nodes := newArena(p.maxIterations + 1)
	open := newOpenSet()
	closed := newClosedSet()

	root := nodes.insert(node{name: rootName, facts: start, action: -1, parent: noIndex})
	open.push(root, 0)

	expansions := 0
	for {
		entry, ok := open.pop()
		if !ok {
			return searchResult{outcome: GoalExhausted, expansions: expansions}
		}
		// copy: inserts below may grow the arena
		current := *nodes.at(entry.index)

		if target.Equal(current.facts) {
			path := nodes.path(entry.index)
			if len(path) == 0 {
				return searchResult{outcome: GoalSatisfied, expansions: expansions}
			}
			return searchResult{outcome: GoalPlanned, path: path, cost: entry.cost, expansions: expansions}
		}

		if expansions >= p.maxIterations {
			return searchResult{outcome: GoalCapped, expansions: expansions}
		}
		expansions++

		if !closed.insert(current.facts) {
			continue
		}

		for i, action := range p.actions {
			if !action.Ready(agent, world, scratch, current.facts) {
				continue
			}
			next := current.facts.Clone()
			cost := entry.cost + action.Cost(current.facts)
			action.ApplyEffect(scratch, next)
			if closed.contains(next) {
				continue
			}
			idx := nodes.insert(node{
				name:   action.Name(),
				facts:  next,
				cost:   cost,
				action: i,
				parent: entry.index,
			})
			open.push(idx, cost)
		}
	}
}

func (p *Planner) names(path []int) []string {
	if len(path) == 0 {
		return nil
	}
	out := make([]string, len(path))
	for i, idx := range path {
		out[i] = p.actions[idx].Name()
	}
	return out
}
