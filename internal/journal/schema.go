package journal

import (
	"fmt"

	"github.com/dyluth/goap/pkg/goap"
)

// Redis key pattern helpers
//
// Key pattern: goap:{instance_name}:{entity}:{id}
// Channel pattern: goap:{instance_name}:{event_type}_events

// RecordKey returns the Redis key for a decision record.
// Pattern: goap:{instance_name}:record:{record_id}
func RecordKey(instanceName, recordID string) string {
	return fmt.Sprintf("goap:%s:record:%s", instanceName, recordID)
}

// TimelineKey returns the Redis key for an agent's decision timeline ZSET.
// Pattern: goap:{instance_name}:agent:{agent_id}:timeline
func TimelineKey(instanceName string, agent goap.EntityID) string {
	return fmt.Sprintf("goap:%s:agent:%s:timeline", instanceName, agent)
}

// AgentsKey returns the Redis key for the set of agents with recorded decisions.
// Pattern: goap:{instance_name}:agents
func AgentsKey(instanceName string) string {
	return fmt.Sprintf("goap:%s:agents", instanceName)
}

// InstancePattern returns the SCAN pattern matching every key of an instance.
// Instance names are validated, so they carry no glob metacharacters.
// Pattern: goap:{instance_name}:*
func InstancePattern(instanceName string) string {
	return fmt.Sprintf("goap:%s:*", instanceName)
}

// DecisionEventsChannel returns the Pub/Sub channel name for decision events.
// Pattern: goap:{instance_name}:decision_events
func DecisionEventsChannel(instanceName string) string {
	return fmt.Sprintf("goap:%s:decision_events", instanceName)
}

// TimelineScore converts a tick to a timeline ZSET score.
func TimelineScore(tick uint64) float64 {
	return float64(tick)
}

// TickFromScore converts a timeline ZSET score back to a tick.
func TickFromScore(score float64) uint64 {
	return uint64(score)
}
