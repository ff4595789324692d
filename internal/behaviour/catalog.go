package behaviour

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dyluth/goap/internal/config"
	"github.com/dyluth/goap/pkg/goap"
	"github.com/google/uuid"
)

// ErrUnknownBehaviour is returned when a group names a sensor, goal or action the
// catalog does not provide.
var ErrUnknownBehaviour = errors.New("unknown behaviour")

// Default ranges, used when a component sets no max_distance.
const (
	DefaultSenseFireDistance   = 100.0
	DefaultChillDistance       = 2.0
	DefaultSensePlayerDistance = 10.0
	DefaultAttackDistance      = 5.0
)

var goals = map[string]func() goap.Goal{
	"StayWarm":       func() goap.Goal { return StayWarm{} },
	"AggroCharacter": func() goap.Goal { return AggroCharacter{} },
}

var actions = map[string]func(maxDistance *float64) goap.Action{
	"SearchForFire": func(*float64) goap.Action { return SearchForFire{} },
	"Chill":         func(d *float64) goap.Action { return &Chill{MaxDistance: orDefault(d, DefaultChillDistance)} },
	"Patrol":        func(*float64) goap.Action { return Patrol{} },
	"Attack":        func(d *float64) goap.Action { return &Attack{MaxDistance: orDefault(d, DefaultAttackDistance)} },
}

var sensors = map[string]func(maxDistance *float64) goap.Sensor{
	"SenseFire":   func(d *float64) goap.Sensor { return &SenseFire{MaxDistance: orDefault(d, DefaultSenseFireDistance)} },
	"SensePlayer": func(d *float64) goap.Sensor { return &SensePlayer{MaxDistance: orDefault(d, DefaultSensePlayerDistance)} },
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// Names lists every behaviour name the catalog provides, sorted.
func Names() []string {
	var out []string
	for n := range goals {
		out = append(out, n)
	}
	for n := range actions {
		out = append(out, n)
	}
	for n := range sensors {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Factory builds a planner factory for group. Every name is resolved up front so
// a bad configuration fails here rather than on an agent's first tick.
func Factory(name string, group config.GroupConfig, opts ...goap.Option) (goap.Factory, error) {
	for _, g := range group.Goals {
		if _, ok := goals[g]; !ok {
			return nil, fmt.Errorf("group '%s': goal %q: %w", name, g, ErrUnknownBehaviour)
		}
	}
	for _, a := range group.Actions {
		if _, ok := actions[a.Name]; !ok {
			return nil, fmt.Errorf("group '%s': action %q: %w", name, a.Name, ErrUnknownBehaviour)
		}
	}
	for _, s := range group.Sensors {
		if _, ok := sensors[s.Name]; !ok {
			return nil, fmt.Errorf("group '%s': sensor %q: %w", name, s.Name, ErrUnknownBehaviour)
		}
	}

	return func() *goap.Planner {
		p := goap.NewPlanner(opts...)
		for _, s := range group.Sensors {
			p.AddSensor(sensors[s.Name](s.MaxDistance))
		}
		for _, g := range group.Goals {
			p.AddGoal(goals[g]())
		}
		for _, a := range group.Actions {
			p.AddAction(actions[a.Name](a.MaxDistance))
		}
		return p
	}, nil
}

// Define registers a factory for every group in cfg and returns group names by ID.
func Define(reg *goap.Registry, cfg *config.GoapConfig, opts ...goap.Option) (map[uuid.UUID]string, error) {
	if cfg.Planner != nil && cfg.Planner.MaxIterations != nil {
		opts = append([]goap.Option{goap.WithMaxIterations(*cfg.Planner.MaxIterations)}, opts...)
	}

	names := make(map[uuid.UUID]string, len(cfg.Groups))
	for name, group := range cfg.Groups {
		id, err := group.GroupID(name)
		if err != nil {
			return nil, fmt.Errorf("group '%s': %w", name, err)
		}
		f, err := Factory(name, group, opts...)
		if err != nil {
			return nil, err
		}
		reg.Define(id, f)
		names[id] = name
	}
	return names, nil
}
