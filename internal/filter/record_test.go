package filter

import (
	"testing"

	"github.com/dyluth/goap/pkg/goap"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func rec(agent goap.EntityID, action string, atMs int64) *goap.Record {
	d := goap.Decision{Action: action}
	if action != "" {
		d.Path = []string{action}
	}
	return goap.NewRecord(1, agent, uuid.New(), "", atMs, d)
}

func TestCriteriaMatches(t *testing.T) {
	agent := goap.EntityID(2)

	tests := []struct {
		name     string
		criteria Criteria
		record   *goap.Record
		want     bool
	}{
		{name: "no filters", criteria: Criteria{}, record: rec(1, "Chill", 100), want: true},
		{name: "before since", criteria: Criteria{SinceTimestampMs: 200}, record: rec(1, "Chill", 100), want: false},
		{name: "after until", criteria: Criteria{UntilTimestampMs: 50}, record: rec(1, "Chill", 100), want: false},
		{name: "inside range", criteria: Criteria{SinceTimestampMs: 50, UntilTimestampMs: 150}, record: rec(1, "Chill", 100), want: true},
		{name: "action glob match", criteria: Criteria{ActionGlob: "Search*"}, record: rec(1, "SearchForFire", 0), want: true},
		{name: "action glob miss", criteria: Criteria{ActionGlob: "Search*"}, record: rec(1, "Chill", 0), want: false},
		{name: "action glob rejects idle", criteria: Criteria{ActionGlob: "*"}, record: rec(1, "", 0), want: false},
		{name: "bad glob", criteria: Criteria{ActionGlob: "["}, record: rec(1, "Chill", 0), want: false},
		{name: "idle outcome", criteria: Criteria{Outcome: "idle"}, record: rec(1, "", 0), want: true},
		{name: "executed outcome miss", criteria: Criteria{Outcome: "executed"}, record: rec(1, "", 0), want: false},
		{name: "agent match", criteria: Criteria{Agent: &agent}, record: rec(2, "Chill", 0), want: true},
		{name: "agent miss", criteria: Criteria{Agent: &agent}, record: rec(3, "Chill", 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.criteria.Matches(tt.record))
		})
	}
}

func TestCriteriaHasFilters(t *testing.T) {
	agent := goap.EntityID(1)
	assert.False(t, (&Criteria{}).HasFilters())
	assert.True(t, (&Criteria{Outcome: "idle"}).HasFilters())
	assert.True(t, (&Criteria{Agent: &agent}).HasFilters())
	assert.True(t, (&Criteria{SinceTimestampMs: 1}).HasFilters())
}

func TestCriteriaApply(t *testing.T) {
	records := []*goap.Record{rec(1, "Chill", 0), rec(1, "", 0), rec(2, "Patrol", 0)}

	c := Criteria{Outcome: "executed"}
	got := c.Apply(records)
	assert.Equal(t, []*goap.Record{records[0], records[2]}, got)

	all := (&Criteria{}).Apply(records)
	assert.Equal(t, records, all)

	anyAction := Criteria{ActionGlob: "*"}
	assert.Equal(t, []*goap.Record{records[0], records[2]}, anyAction.Apply(records))
}
