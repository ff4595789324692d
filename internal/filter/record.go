package filter

import (
	"path/filepath"

	"github.com/dyluth/goap/pkg/goap"
)

// Criteria defines filtering criteria for decision records.
// All filters are ANDed together - a record must match ALL criteria to pass.
type Criteria struct {
	SinceTimestampMs int64          // Unix timestamp in milliseconds, 0 = no filter
	UntilTimestampMs int64          // Unix timestamp in milliseconds, 0 = no filter
	ActionGlob       string         // Glob pattern for the executed action, empty = no filter
	Outcome          string         // "executed" or "idle", empty = no filter
	Agent            *goap.EntityID // Exact agent match, nil = no filter
}

// Matches returns true if the record matches all filter criteria.
// Empty/zero criteria values are treated as "match all" for that criterion.
func (c *Criteria) Matches(r *goap.Record) bool {
	if c.SinceTimestampMs > 0 && r.RecordedAtMs < c.SinceTimestampMs {
		return false
	}
	if c.UntilTimestampMs > 0 && r.RecordedAtMs > c.UntilTimestampMs {
		return false
	}

	// Idle records have no action, so any action glob rejects them
	if c.ActionGlob != "" {
		if r.Decision.Idle() {
			return false
		}
		matched, err := filepath.Match(c.ActionGlob, r.Decision.Action)
		if err != nil || !matched {
			return false
		}
	}

	if c.Outcome != "" && r.Decision.Outcome() != c.Outcome {
		return false
	}

	if c.Agent != nil && r.Agent != *c.Agent {
		return false
	}

	return true
}

// HasFilters returns true if any filters are active.
func (c *Criteria) HasFilters() bool {
	return c.SinceTimestampMs > 0 ||
		c.UntilTimestampMs > 0 ||
		c.ActionGlob != "" ||
		c.Outcome != "" ||
		c.Agent != nil
}

// Apply returns the records that match, preserving order.
func (c *Criteria) Apply(records []*goap.Record) []*goap.Record {
	if !c.HasFilters() {
		return records
	}
	out := make([]*goap.Record, 0, len(records))
	for _, r := range records {
		if c.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
