package goap

import (
	"fmt"

	"github.com/google/uuid"
)

// GoalOutcome describes how the search for one goal ended.
type GoalOutcome string

const (
	// GoalPlanned means a non-empty path to the goal state was found
	GoalPlanned GoalOutcome = "planned"

	// GoalSatisfied means the sensed facts already equal the goal state
	GoalSatisfied GoalOutcome = "satisfied"

	// GoalExhausted means the open set emptied before reaching the goal
	GoalExhausted GoalOutcome = "exhausted"

	// GoalCapped means the expansion budget ran out before reaching the goal
	GoalCapped GoalOutcome = "capped"
)

// Validate checks that the outcome is one of the defined values.
func (o GoalOutcome) Validate() error {
	switch o {
	case GoalPlanned, GoalSatisfied, GoalExhausted, GoalCapped:
		return nil
	default:
		return fmt.Errorf("invalid goal outcome: %s", o)
	}
}

// GoalResult is the per-goal part of a Decision.
type GoalResult struct {
	Goal       string      `json:"goal"`
	Outcome    GoalOutcome `json:"outcome"`
	Path       []string    `json:"path,omitempty"`
	Cost       int         `json:"cost"`
	Expansions int         `json:"expansions"`
}

// Decision reports what one planning pass did. Action is empty when no goal
// produced a path and nothing was executed.
type Decision struct {
	Action string       `json:"action,omitempty"`
	Goal   string       `json:"goal,omitempty"`
	Cost   int          `json:"cost"`
	Path   []string     `json:"path,omitempty"`
	Sensed *Facts       `json:"sensed"`
	Goals  []GoalResult `json:"goals"`
}

// Idle reports whether the pass executed nothing.
func (d Decision) Idle() bool {
	return d.Action == ""
}

// Outcome returns "executed" or "idle".
func (d Decision) Outcome() string {
	if d.Idle() {
		return "idle"
	}
	return "executed"
}

// Record ties a Decision to the tick, agent and goal group that produced it.
// Records are what the decision journal and trace persist.
type Record struct {
	ID           string    `json:"id"`             // UUID - unique identifier for this record
	Tick         uint64    `json:"tick"`           // Simulation tick of the planning pass
	Agent        EntityID  `json:"agent"`          // Planning agent
	Group        uuid.UUID `json:"group"`          // Goal group the agent planned with
	GroupName    string    `json:"group_name"`     // Human-readable goal group name, may be empty
	RecordedAtMs int64     `json:"recorded_at_ms"` // Wall clock time of the pass in milliseconds
	Decision     Decision  `json:"decision"`
}

// NewRecord wraps a decision with a fresh record ID.
func NewRecord(tick uint64, agent EntityID, group uuid.UUID, groupName string, recordedAtMs int64, d Decision) *Record {
	return &Record{
		ID:           uuid.New().String(),
		Tick:         tick,
		Agent:        agent,
		Group:        group,
		GroupName:    groupName,
		RecordedAtMs: recordedAtMs,
		Decision:     d,
	}
}

// Validate checks required fields before a record is persisted.
func (r *Record) Validate() error {
	if _, err := uuid.Parse(r.ID); err != nil {
		return fmt.Errorf("invalid record ID: %w", err)
	}
	if r.Group == uuid.Nil {
		return fmt.Errorf("group ID is required")
	}
	if r.Decision.Idle() && (r.Decision.Goal != "" || len(r.Decision.Path) > 0) {
		return fmt.Errorf("idle decision cannot name a goal or path")
	}
	if !r.Decision.Idle() && len(r.Decision.Path) == 0 {
		return fmt.Errorf("executed decision %q has no path", r.Decision.Action)
	}
	if !r.Decision.Idle() && r.Decision.Path[0] != r.Decision.Action {
		return fmt.Errorf("executed action %q is not the first step of its path", r.Decision.Action)
	}
	for _, g := range r.Decision.Goals {
		if err := g.Outcome.Validate(); err != nil {
			return fmt.Errorf("goal %q: %w", g.Goal, err)
		}
	}
	return nil
}
