// Package watch streams decision records from a running simulation's journal.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dyluth/goap/internal/filter"
	"github.com/dyluth/goap/internal/journal"
	"github.com/dyluth/goap/internal/printer"
	"github.com/dyluth/goap/pkg/goap"
)

// OutputFormat specifies how streamed decisions are rendered.
type OutputFormat string

const (
	// OutputFormatDefault prints one colored line per decision
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSON prints one JSON record per line
	OutputFormatJSON OutputFormat = "json"
)

// ParseOutputFormat validates a user-supplied format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputFormatDefault, OutputFormatJSON:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("invalid output format '%s': must be 'default' or 'json'", s)
	}
}

type formatter interface {
	FormatDecision(r *goap.Record) error
}

type defaultFormatter struct {
	writer io.Writer
}

func (f *defaultFormatter) FormatDecision(r *goap.Record) error {
	printer.Decision(f.writer, r)
	return nil
}

type jsonFormatter struct {
	writer io.Writer
}

func (f *jsonFormatter) FormatDecision(r *goap.Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal decision: %w", err)
	}
	_, err = fmt.Fprintf(f.writer, "%s\n", data)
	return err
}

func newFormatter(format OutputFormat, w io.Writer) (formatter, error) {
	switch format {
	case OutputFormatDefault, "":
		return &defaultFormatter{writer: w}, nil
	case OutputFormatJSON:
		return &jsonFormatter{writer: w}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

// Write renders a single record to w.
func Write(w io.Writer, format OutputFormat, r *goap.Record) error {
	f, err := newFormatter(format, w)
	if err != nil {
		return err
	}
	return f.FormatDecision(r)
}

// StreamDecisions prints every decision published to the journal until ctx is
// cancelled. Records not matching criteria are dropped. Subscription errors
// are reported to w and do not stop the stream.
func StreamDecisions(ctx context.Context, client *journal.Client, criteria *filter.Criteria, format OutputFormat, w io.Writer) error {
	f, err := newFormatter(format, w)
	if err != nil {
		return err
	}

	sub, err := client.SubscribeDecisions(ctx)
	if err != nil {
		return err
	}
	defer sub.Close()

	events := sub.Events()
	errs := sub.Errors()

	for {
		select {
		case <-ctx.Done():
			return nil

		case r, ok := <-events:
			if !ok {
				return nil
			}
			if criteria != nil && !criteria.Matches(r) {
				continue
			}
			if err := f.FormatDecision(r); err != nil {
				return fmt.Errorf("failed to write decision: %w", err)
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			fmt.Fprintf(w, "⚠️  %v\n", err)
		}
	}
}

// WaitForDecision polls the journal for the agent's latest decision.
// Returns the record or an error if timeout occurs.
// Polls every 200ms for the specified timeout duration.
func WaitForDecision(ctx context.Context, client *journal.Client, agent goap.EntityID, timeout time.Duration) (*goap.Record, error) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	timeoutCh := time.After(timeout)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case <-timeoutCh:
			return nil, fmt.Errorf("timeout waiting for a decision by agent %s after %v", agent, timeout)

		case <-ticker.C:
			r, err := client.Latest(ctx, agent)
			if err != nil {
				if journal.IsNotFound(err) {
					continue
				}
				return nil, fmt.Errorf("failed to query for decision: %w", err)
			}

			return r, nil
		}
	}
}
