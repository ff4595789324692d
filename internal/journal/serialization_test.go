package journal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaKeys(t *testing.T) {
	assert.Equal(t, "goap:demo:record:abc", RecordKey("demo", "abc"))
	assert.Equal(t, "goap:demo:agent:12:timeline", TimelineKey("demo", 12))
	assert.Equal(t, "goap:demo:agents", AgentsKey("demo"))
	assert.Equal(t, "goap:demo:decision_events", DecisionEventsChannel("demo"))
	assert.Equal(t, uint64(42), TickFromScore(TimelineScore(42)))
}

func TestHashToRecordErrors(t *testing.T) {
	valid := func() map[string]string {
		h, err := RecordToHash(chillRecord(1, 1))
		require.NoError(t, err)
		out := make(map[string]string, len(h))
		for k, v := range h {
			out[k] = fmt.Sprint(v)
		}
		return out
	}

	t.Run("valid", func(t *testing.T) {
		r, err := HashToRecord(valid())
		require.NoError(t, err)
		assert.Equal(t, "Chill", r.Decision.Action)
	})

	for _, field := range []string{"tick", "agent", "group", "cost", "path", "sensed", "goals"} {
		t.Run("bad "+field, func(t *testing.T) {
			h := valid()
			h[field] = "{not valid"
			_, err := HashToRecord(h)
			assert.Error(t, err)
		})
	}
}
