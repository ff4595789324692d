package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dyluth/goap/pkg/goap"
)

// FormatTable writes records as a formatted table to the provided writer.
// Returns the number of records formatted.
func FormatTable(w io.Writer, records []*goap.Record, instanceName string) int {
	if len(records) == 0 {
		fmt.Fprintf(w, "No decisions found for instance '%s'\n", instanceName)
		return 0
	}

	fmt.Fprintf(w, "Decisions for instance '%s':\n\n", instanceName)

	fmt.Fprintf(w, "%-10s %-6s %-8s %-12s %-16s %-5s %-8s %s\n",
		"ID", "TICK", "AGENT", "GROUP", "ACTION", "COST", "AGE", "PATH")
	fmt.Fprintf(w, "%-10s %-6s %-8s %-12s %-16s %-5s %-8s %s\n",
		"----------", "------", "--------", "------------", "----------------", "-----", "--------", "----------------------------------------")

	for _, r := range records {
		fmt.Fprintf(w, "%-10s %-6d %-8s %-12s %-16s %-5s %-8s %s\n",
			formatID(r.ID),
			r.Tick,
			r.Agent,
			formatGroup(r),
			formatAction(r.Decision),
			formatCost(r.Decision),
			formatTimestamp(r.RecordedAtMs),
			formatPath(r.Decision),
		)
	}

	noun := "decision"
	if len(records) != 1 {
		noun = "decisions"
	}
	fmt.Fprintf(w, "\n%d %s found\n", len(records), noun)

	return len(records)
}

// FormatJSONL writes records as line-delimited JSON, one record per line.
func FormatJSONL(w io.Writer, records []*goap.Record) error {
	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal record to JSON: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}
	return nil
}

// FormatSingleJSON writes one record as pretty-printed JSON.
func FormatSingleJSON(w io.Writer, r *goap.Record) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record to JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}

func formatID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatGroup prefers the group name and falls back to a short group ID.
func formatGroup(r *goap.Record) string {
	name := r.GroupName
	if name == "" {
		name = formatID(r.Group.String())
	}
	if len(name) > 12 {
		return name[:9] + "..."
	}
	return name
}

func formatAction(d goap.Decision) string {
	if d.Idle() {
		return "(idle)"
	}
	if len(d.Action) > 16 {
		return d.Action[:13] + "..."
	}
	return d.Action
}

func formatCost(d goap.Decision) string {
	if d.Idle() {
		return "-"
	}
	return fmt.Sprintf("%d", d.Cost)
}

// formatPath joins the plan steps, truncated to 40 characters. Idle passes show
// each goal's outcome instead.
func formatPath(d goap.Decision) string {
	var s string
	if d.Idle() {
		parts := make([]string, len(d.Goals))
		for i, g := range d.Goals {
			parts[i] = fmt.Sprintf("%s:%s", g.Goal, g.Outcome)
		}
		s = strings.Join(parts, " ")
	} else {
		s = strings.Join(d.Path, " > ")
	}
	if s == "" {
		return "-"
	}
	if len(s) > 40 {
		return s[:37] + "..."
	}
	return s
}

// formatTimestamp shows a millisecond timestamp as relative time like "2m ago".
func formatTimestamp(timestampMs int64) string {
	if timestampMs == 0 {
		return "-"
	}

	diff := time.Since(time.UnixMilli(timestampMs))

	switch {
	case diff < time.Minute:
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
}
