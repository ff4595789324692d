package config

import (
	"fmt"
	"os"

	"github.com/dyluth/goap/pkg/goap"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// groupNamespace seeds the name-derived IDs of goal groups that do not set one.
var groupNamespace = uuid.MustParse("6f1c7f0e-5b0a-4e53-9d3e-2a51c1f4b7a2")

const (
	defaultTicks      = 100
	defaultTickRateHz = 20
)

// PlannerConfig specifies search limits shared by every goal group
type PlannerConfig struct {
	MaxIterations *int `yaml:"max_iterations,omitempty"` // Per-goal expansion budget (default = 50)
}

// SimulationConfig specifies how long and how fast the tick loop runs
type SimulationConfig struct {
	Ticks      *int `yaml:"ticks,omitempty"`        // Number of ticks for `goap simulate` (default = 100)
	TickRateHz *int `yaml:"tick_rate_hz,omitempty"` // Simulated ticks per second (default = 20)
}

// GoapConfig represents the top-level goap.yml configuration
type GoapConfig struct {
	Version    string                 `yaml:"version"`
	Planner    *PlannerConfig         `yaml:"planner,omitempty"`
	Simulation *SimulationConfig      `yaml:"simulation,omitempty"`
	Groups     map[string]GroupConfig `yaml:"groups"`
	Entities   []EntityConfig         `yaml:"entities"`
}

// GroupConfig is one goal group: the capabilities each of its agents plans with
type GroupConfig struct {
	ID      string      `yaml:"id,omitempty"` // Optional UUID, derived from the group name when empty
	Goals   []string    `yaml:"goals"`
	Actions []Component `yaml:"actions"`
	Sensors []Component `yaml:"sensors,omitempty"`
}

// Component names a behaviour from the catalog plus its tuning
type Component struct {
	Name        string   `yaml:"name"`
	MaxDistance *float64 `yaml:"max_distance,omitempty"` // Catalog default when omitted
}

// EntityConfig is one entity spawned at tick 0
type EntityConfig struct {
	Name        string    `yaml:"name"`
	Group       string    `yaml:"group,omitempty"` // Makes the entity an agent
	Tags        []string  `yaml:"tags,omitempty"`
	Position    []float64 `yaml:"position,omitempty"`
	Velocity    []float64 `yaml:"velocity,omitempty"`
	RunSpeed    float64   `yaml:"run_speed,omitempty"`
	DespawnTick *uint64   `yaml:"despawn_tick,omitempty"`
}

// Validate performs strict validation on the configuration and applies defaults
func (c *GoapConfig) Validate() error {
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if len(c.Groups) == 0 {
		return fmt.Errorf("no groups defined")
	}

	if c.Planner == nil {
		c.Planner = &PlannerConfig{}
	}
	if c.Planner.MaxIterations == nil {
		n := goap.DefaultMaxIterations
		c.Planner.MaxIterations = &n
	}
	if *c.Planner.MaxIterations < 1 {
		return fmt.Errorf("planner.max_iterations must be >= 1, got %d", *c.Planner.MaxIterations)
	}

	if c.Simulation == nil {
		c.Simulation = &SimulationConfig{}
	}
	if c.Simulation.Ticks == nil {
		n := defaultTicks
		c.Simulation.Ticks = &n
	}
	if c.Simulation.TickRateHz == nil {
		n := defaultTickRateHz
		c.Simulation.TickRateHz = &n
	}
	if *c.Simulation.Ticks < 0 {
		return fmt.Errorf("simulation.ticks must be >= 0, got %d", *c.Simulation.Ticks)
	}
	if *c.Simulation.TickRateHz < 1 {
		return fmt.Errorf("simulation.tick_rate_hz must be >= 1, got %d", *c.Simulation.TickRateHz)
	}

	ids := make(map[uuid.UUID]string)
	for name, group := range c.Groups {
		if err := group.Validate(name); err != nil {
			return err
		}
		id, _ := group.GroupID(name)
		if other, exists := ids[id]; exists {
			return fmt.Errorf("duplicate group id %s (groups '%s' and '%s')", id, other, name)
		}
		ids[id] = name
	}

	names := make(map[string]bool)
	for i, e := range c.Entities {
		if err := e.Validate(i); err != nil {
			return err
		}
		if e.Group != "" {
			if _, ok := c.Groups[e.Group]; !ok {
				return fmt.Errorf("entity '%s': unknown group '%s'", e.Name, e.Group)
			}
		}
		if names[e.Name] {
			return fmt.Errorf("duplicate entity name '%s'", e.Name)
		}
		names[e.Name] = true
	}

	return nil
}

// Validate performs validation on a single goal group
func (g *GroupConfig) Validate(name string) error {
	if name == "" {
		return fmt.Errorf("group name cannot be empty")
	}
	if g.ID != "" {
		id, err := uuid.Parse(g.ID)
		if err != nil {
			return fmt.Errorf("group '%s': invalid id: %w", name, err)
		}
		if id == uuid.Nil {
			return fmt.Errorf("group '%s': id cannot be the nil UUID", name)
		}
	}
	if len(g.Goals) == 0 {
		return fmt.Errorf("group '%s': at least one goal is required", name)
	}
	for _, a := range g.Actions {
		if err := a.Validate(name, "action"); err != nil {
			return err
		}
	}
	for _, s := range g.Sensors {
		if err := s.Validate(name, "sensor"); err != nil {
			return err
		}
	}
	return nil
}

// GroupID returns the configured ID, or one derived from name.
func (g *GroupConfig) GroupID(name string) (uuid.UUID, error) {
	if g.ID == "" {
		return uuid.NewSHA1(groupNamespace, []byte(name)), nil
	}
	return uuid.Parse(g.ID)
}

// Validate checks a single action or sensor entry
func (c *Component) Validate(group, kind string) error {
	if c.Name == "" {
		return fmt.Errorf("group '%s': %s name is required", group, kind)
	}
	if c.MaxDistance != nil && *c.MaxDistance <= 0 {
		return fmt.Errorf("group '%s': %s '%s': max_distance must be > 0", group, kind, c.Name)
	}
	return nil
}

// Validate checks a single entity entry
func (e *EntityConfig) Validate(index int) error {
	if e.Name == "" {
		return fmt.Errorf("entity #%d: name is required", index)
	}
	if len(e.Position) != 0 && len(e.Position) != 3 {
		return fmt.Errorf("entity '%s': position must have 3 components, got %d", e.Name, len(e.Position))
	}
	if len(e.Velocity) != 0 && len(e.Velocity) != 3 {
		return fmt.Errorf("entity '%s': velocity must have 3 components, got %d", e.Name, len(e.Velocity))
	}
	if e.RunSpeed < 0 {
		return fmt.Errorf("entity '%s': run_speed must be >= 0", e.Name)
	}
	return nil
}

// Body converts the entity's spatial settings.
func (e *EntityConfig) Body() goap.Body {
	return goap.Body{
		Position: vec(e.Position),
		Velocity: vec(e.Velocity),
		RunSpeed: e.RunSpeed,
	}
}

func vec(v []float64) goap.Vec3 {
	if len(v) != 3 {
		return goap.Vec3{}
	}
	return goap.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Load reads and validates goap.yml from the specified path
func Load(path string) (*GoapConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config GoapConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}
