// Package inspect reads decision records back out of the journal and formats
// them for the `goap decisions` command.
package inspect

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/dyluth/goap/internal/filter"
	"github.com/dyluth/goap/internal/journal"
	"github.com/dyluth/goap/pkg/goap"
)

// OutputFormat specifies how to format the record list output.
type OutputFormat string

const (
	// OutputFormatDefault uses a table with truncated paths
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSONL outputs complete records as line-delimited JSON
	OutputFormatJSONL OutputFormat = "jsonl"
)

// Options narrows what ListRecords reads before filtering.
type Options struct {
	Agent *goap.EntityID // Read one agent's timeline instead of scanning every record
	Limit int            // With Agent, keep only the most recent Limit records; 0 = all
}

// ListRecords loads records, applies criteria and writes them in tick order.
// Malformed records are skipped with a warning to stderr.
func ListRecords(ctx context.Context, client *journal.Client, opts Options, criteria *filter.Criteria, format OutputFormat, w io.Writer) error {
	var records []*goap.Record

	if opts.Agent != nil {
		history, err := client.History(ctx, *opts.Agent, opts.Limit)
		if err != nil {
			return fmt.Errorf("failed to read agent history: %w", err)
		}
		records = history
	} else {
		ids, err := client.ScanRecords(ctx, "")
		if err != nil {
			return err
		}
		for _, id := range ids {
			r, err := client.GetRecord(ctx, id)
			if err != nil {
				fmt.Fprintf(os.Stderr, "⚠️  Skipping malformed record: id=%s (error: %v)\n", id, err)
				continue
			}
			records = append(records, r)
		}
	}

	if criteria != nil {
		records = criteria.Apply(records)
	}

	SortRecords(records)

	switch format {
	case OutputFormatDefault:
		FormatTable(w, records, client.InstanceName())
	case OutputFormatJSONL:
		if err := FormatJSONL(w, records); err != nil {
			return fmt.Errorf("failed to format JSONL output: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}

	return nil
}

// SortRecords orders records by tick, then agent.
func SortRecords(records []*goap.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Tick != records[j].Tick {
			return records[i].Tick < records[j].Tick
		}
		return records[i].Agent < records[j].Agent
	})
}
