package timespec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	now := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)

	t.Run("duration is relative to now", func(t *testing.T) {
		ms, err := parseAt("1h30m", now)
		require.NoError(t, err)
		assert.Equal(t, now.Add(-90*time.Minute).UnixMilli(), ms)
	})

	t.Run("RFC3339", func(t *testing.T) {
		ms, err := parseAt("2025-10-29T13:00:00Z", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 10, 29, 13, 0, 0, 0, time.UTC).UnixMilli(), ms)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Parse("")
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := Parse("yesterday")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid time specification")
	})
}

func TestParseRange(t *testing.T) {
	since, until, err := ParseRange("2h", "1h")
	require.NoError(t, err)
	assert.Less(t, since, until)

	_, _, err = ParseRange("1h", "2h")
	assert.ErrorContains(t, err, "--since must be before --until")

	_, _, err = ParseRange("bad", "")
	assert.ErrorContains(t, err, "invalid --since")

	_, _, err = ParseRange("", "bad")
	assert.ErrorContains(t, err, "invalid --until")

	since, until, err = ParseRange("", "")
	require.NoError(t, err)
	assert.Zero(t, since)
	assert.Zero(t, until)
}

func TestParseTicks(t *testing.T) {
	tests := []struct {
		spec    string
		rate    int
		want    int
		wantErr string
	}{
		{spec: "200", rate: 20, want: 200},
		{spec: "0", rate: 20, want: 0},
		{spec: "10s", rate: 20, want: 200},
		{spec: "1s", rate: 4, want: 4},
		{spec: "120ms", rate: 20, want: 3},
		{spec: "-5", rate: 20, wantErr: "tick count must be >= 0"},
		{spec: "-1s", rate: 20, wantErr: "must not be negative"},
		{spec: "soon", rate: 20, wantErr: "invalid run length"},
		{spec: "", rate: 20, wantErr: "empty run length"},
		{spec: "10", rate: 0, wantErr: "tick rate must be >= 1"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseTicks(tt.spec, tt.rate)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
