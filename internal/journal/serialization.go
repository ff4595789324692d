package journal

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dyluth/goap/pkg/goap"
	"github.com/google/uuid"
)

// Serialization helpers for converting between records and Redis hashes
//
// Scalar fields get their own hash field so they stay readable with redis-cli.
// The path, sensed facts and per-goal results are JSON-encoded.

// RecordToHash converts a Record to a Redis hash format.
func RecordToHash(r *goap.Record) (map[string]interface{}, error) {
	pathJSON, err := json.Marshal(r.Decision.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal path: %w", err)
	}

	sensed := r.Decision.Sensed
	if sensed == nil {
		sensed = goap.NewFacts()
	}
	sensedJSON, err := json.Marshal(sensed)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sensed facts: %w", err)
	}

	goalsJSON, err := json.Marshal(r.Decision.Goals)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal goal results: %w", err)
	}

	hash := map[string]interface{}{
		"id":             r.ID,
		"tick":           strconv.FormatUint(r.Tick, 10),
		"agent":          strconv.FormatUint(uint64(r.Agent), 10),
		"group":          r.Group.String(),
		"group_name":     r.GroupName,
		"recorded_at_ms": r.RecordedAtMs,
		"action":         r.Decision.Action,
		"goal":           r.Decision.Goal,
		"cost":           r.Decision.Cost,
		"outcome":        r.Decision.Outcome(),
		"path":           string(pathJSON),
		"sensed":         string(sensedJSON),
		"goals":          string(goalsJSON),
	}

	return hash, nil
}

// HashToRecord converts a Redis hash to a Record.
func HashToRecord(hash map[string]string) (*goap.Record, error) {
	tick, err := strconv.ParseUint(hash["tick"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid tick field: %w", err)
	}

	agent, err := strconv.ParseUint(hash["agent"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid agent field: %w", err)
	}

	group, err := uuid.Parse(hash["group"])
	if err != nil {
		return nil, fmt.Errorf("invalid group field: %w", err)
	}

	cost, err := strconv.Atoi(hash["cost"])
	if err != nil {
		return nil, fmt.Errorf("invalid cost field: %w", err)
	}

	recordedAtMs, _ := strconv.ParseInt(hash["recorded_at_ms"], 10, 64)

	var path []string
	if pathJSON := hash["path"]; pathJSON != "" {
		if err := json.Unmarshal([]byte(pathJSON), &path); err != nil {
			return nil, fmt.Errorf("failed to unmarshal path: %w", err)
		}
	}

	sensed := goap.NewFacts()
	if sensedJSON := hash["sensed"]; sensedJSON != "" {
		if err := json.Unmarshal([]byte(sensedJSON), sensed); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sensed facts: %w", err)
		}
	}

	var goals []goap.GoalResult
	if goalsJSON := hash["goals"]; goalsJSON != "" {
		if err := json.Unmarshal([]byte(goalsJSON), &goals); err != nil {
			return nil, fmt.Errorf("failed to unmarshal goal results: %w", err)
		}
	}

	return &goap.Record{
		ID:           hash["id"],
		Tick:         tick,
		Agent:        goap.EntityID(agent),
		Group:        group,
		GroupName:    hash["group_name"],
		RecordedAtMs: recordedAtMs,
		Decision: goap.Decision{
			Action: hash["action"],
			Goal:   hash["goal"],
			Cost:   cost,
			Path:   path,
			Sensed: sensed,
			Goals:  goals,
		},
	}, nil
}
