package timespec

import (
	"fmt"
	"strconv"
	"time"
)

// Parse parses a time specification into a Unix timestamp (milliseconds).
// Supports two formats:
//   - Go duration format: "1h", "30m", "1h30m", "2h45m30s"
//   - RFC3339 timestamps: "2025-10-29T13:00:00Z"
//
// Duration specifications are relative to the current time (subtracted from now).
// For example, "1h" means "1 hour ago".
func Parse(spec string) (int64, error) {
	return parseAt(spec, time.Now())
}

func parseAt(spec string, now time.Time) (int64, error) {
	if spec == "" {
		return 0, fmt.Errorf("empty time specification")
	}

	if t, err := time.Parse(time.RFC3339, spec); err == nil {
		return t.UnixMilli(), nil
	}

	if d, err := time.ParseDuration(spec); err == nil {
		return now.Add(-d).UnixMilli(), nil
	}

	return 0, fmt.Errorf("invalid time specification: %s (use duration like '1h30m' or RFC3339 like '2025-10-29T13:00:00Z')", spec)
}

// ParseRange parses both --since and --until flags into a time range.
// Zero values indicate "no bound" for that end of the range.
func ParseRange(since, until string) (int64, int64, error) {
	var sinceMS, untilMS int64
	var err error

	if since != "" {
		sinceMS, err = Parse(since)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid --since: %w", err)
		}
	}

	if until != "" {
		untilMS, err = Parse(until)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid --until: %w", err)
		}
	}

	if sinceMS > 0 && untilMS > 0 && sinceMS >= untilMS {
		return 0, 0, fmt.Errorf("--since must be before --until")
	}

	return sinceMS, untilMS, nil
}

// ParseTicks converts a run length into a tick count.
// Supports a bare tick count ("200") or a Go duration of simulated time ("10s"),
// which is converted with the tick rate and rounded up.
func ParseTicks(spec string, tickRateHz int) (int, error) {
	if spec == "" {
		return 0, fmt.Errorf("empty run length")
	}
	if tickRateHz < 1 {
		return 0, fmt.Errorf("tick rate must be >= 1, got %d", tickRateHz)
	}

	if n, err := strconv.Atoi(spec); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("tick count must be >= 0, got %d", n)
		}
		return n, nil
	}

	d, err := time.ParseDuration(spec)
	if err != nil {
		return 0, fmt.Errorf("invalid run length: %s (use a tick count like '200' or a duration like '10s')", spec)
	}
	if d < 0 {
		return 0, fmt.Errorf("run length must not be negative: %s", spec)
	}

	tick := time.Second / time.Duration(tickRateHz)
	return int((d + tick - 1) / tick), nil
}
