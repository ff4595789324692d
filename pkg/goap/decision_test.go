package goap

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordValidate(t *testing.T) {
	group := uuid.New()
	executed := Decision{
		Action: "Chill",
		Goal:   "StayWarm",
		Cost:   3,
		Path:   []string{"Chill"},
		Goals:  []GoalResult{{Goal: "StayWarm", Outcome: GoalPlanned, Path: []string{"Chill"}, Cost: 3, Expansions: 1}},
	}

	tests := []struct {
		name    string
		mutate  func(r *Record)
		wantErr string
	}{
		{name: "valid executed", mutate: func(r *Record) {}},
		{name: "valid idle", mutate: func(r *Record) { r.Decision = Decision{Goals: []GoalResult{{Goal: "G", Outcome: GoalCapped}}} }},
		{name: "bad id", mutate: func(r *Record) { r.ID = "nope" }, wantErr: "invalid record ID"},
		{name: "nil group", mutate: func(r *Record) { r.Group = uuid.Nil }, wantErr: "group ID is required"},
		{name: "idle with goal", mutate: func(r *Record) { r.Decision = Decision{Goal: "G"} }, wantErr: "idle decision"},
		{name: "executed without path", mutate: func(r *Record) { r.Decision.Path = nil }, wantErr: "has no path"},
		{name: "action not first step", mutate: func(r *Record) { r.Decision.Path = []string{"Search", "Chill"} }, wantErr: "not the first step"},
		{name: "bad outcome", mutate: func(r *Record) { r.Decision.Goals = []GoalResult{{Goal: "G", Outcome: "lost"}} }, wantErr: "invalid goal outcome"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecord(4, 1, group, "villager", 1000, executed)
			tt.mutate(r)
			err := r.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewRecordIDsAreUnique(t *testing.T) {
	a := NewRecord(1, 1, uuid.New(), "", 0, Decision{})
	b := NewRecord(1, 1, uuid.New(), "", 0, Decision{})
	assert.NotEqual(t, a.ID, b.ID)
}

func TestDecisionJSON(t *testing.T) {
	sensed := NewFacts()
	sensed.SetBool("LocatedFire", true)
	d := Decision{Action: "Chill", Goal: "StayWarm", Cost: 3, Path: []string{"Chill"}, Sensed: sensed}

	data, err := json.Marshal(d)
	require.NoError(t, err)

	var back Decision
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "Chill", back.Action)
	assert.True(t, back.Sensed.Equal(sensed))
}
