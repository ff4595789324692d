package goap

// Test doubles shared by the planner and registry tests.

type stubWorld struct {
	bodies map[EntityID]Body
	tags   map[Tag][]EntityID
}

func newStubWorld() *stubWorld {
	return &stubWorld{bodies: make(map[EntityID]Body), tags: make(map[Tag][]EntityID)}
}

func (w *stubWorld) Body(id EntityID) (Body, bool) {
	b, ok := w.bodies[id]
	return b, ok
}

func (w *stubWorld) Each(tag Tag, fn func(id EntityID, body Body) bool) {
	for _, id := range w.tags[tag] {
		if !fn(id, w.bodies[id]) {
			return
		}
	}
}

type fakeAction struct {
	name     string
	cost     int
	ready    func(f *Facts) bool
	effect   func(f *Facts)
	executed *[]string
	checks   *int
}

func (a *fakeAction) Name() string          { return a.name }
func (a *fakeAction) Cost(facts *Facts) int { return a.cost }

func (a *fakeAction) Ready(agent EntityID, world World, scratch *Bag, facts *Facts) bool {
	if a.checks != nil {
		*a.checks++
	}
	if a.ready == nil {
		return true
	}
	return a.ready(facts)
}

func (a *fakeAction) ApplyEffect(scratch *Bag, facts *Facts) {
	if a.effect != nil {
		a.effect(facts)
	}
}

func (a *fakeAction) Execute(agent EntityID, world World, resources *Bag, scratch *Bag) {
	if a.executed != nil {
		*a.executed = append(*a.executed, a.name)
	}
}

type fakeGoal struct {
	name   string
	target func() *Facts
}

func (g *fakeGoal) Name() string { return g.name }

func (g *fakeGoal) TargetState(agent EntityID, world World, scratch *Bag) *Facts {
	return g.target()
}

type fakeSensor struct {
	name  string
	sense func(facts *Facts)
	calls *[]string
}

func (s *fakeSensor) Name() string { return s.name }

func (s *fakeSensor) Sense(agent EntityID, world World, resources *Bag, scratch *Bag, facts *Facts) {
	if s.calls != nil {
		*s.calls = append(*s.calls, s.name)
	}
	if s.sense != nil {
		s.sense(facts)
	}
}

func boolTarget(key string) func() *Facts {
	return func() *Facts {
		f := NewFacts()
		f.SetBool(key, true)
		return f
	}
}

func setBool(key string) func(*Facts) {
	return func(f *Facts) { f.SetBool(key, true) }
}
