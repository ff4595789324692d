package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dyluth/goap/internal/inspect"
	"github.com/dyluth/goap/internal/journal"
	"github.com/dyluth/goap/internal/printer"
	"github.com/dyluth/goap/internal/resolver"
	"github.com/dyluth/goap/internal/timespec"
	"github.com/dyluth/goap/internal/watch"
	"github.com/spf13/cobra"
)

var (
	decisionsOutputFormat string
	decisionsAgent        string
	decisionsLimit        int
	decisionsSince        string
	decisionsUntil        string
	decisionsAction       string
	decisionsOutcome      string
	decisionsWait         time.Duration
	decisionsJournal      journalFlags
)

var decisionsCmd = &cobra.Command{
	Use:   "decisions [RECORD_ID]",
	Short: "Inspect journaled decisions with filtering",
	Long: `Inspect decisions journaled by 'goap simulate --redis ...' in list or get mode.

List Mode (no RECORD_ID):
  Displays decisions matching filters as a table or JSONL stream, in tick order.

Get Mode (with RECORD_ID):
  Displays one complete decision record as pretty-printed JSON.
  Supports short IDs (e.g., "abc123" instead of full UUID).

Output Formats (list mode only):
  table - Human-readable table with tick, agent, action, cost and path
  jsonl - Line-delimited JSON, one record per line

Filters (list mode only):
  --agent    - One agent's timeline (use --limit for its most recent N)
  --since    - Decisions recorded after this time (duration or RFC3339)
  --until    - Decisions recorded before this time
  --action   - Executed action glob ("Search*")
  --outcome  - "executed" or "idle"

Examples:
  # Everything on the default instance
  goap decisions

  # The last 5 decisions of agent 1
  goap decisions --agent 1 --limit 5

  # Wait for agent 1's first decision and print it
  goap decisions --agent 1 --wait 10s

  # One record by short ID
  goap decisions 3f2a9c`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecisions,
}

func init() {
	decisionsCmd.Flags().StringVarP(&decisionsOutputFormat, "output", "o", "table", "Output format: table or jsonl (ignored in get mode)")
	decisionsCmd.Flags().StringVar(&decisionsAgent, "agent", "", "Filter by agent ID")
	decisionsCmd.Flags().IntVar(&decisionsLimit, "limit", 0, "With --agent, show only the most recent N decisions")
	decisionsCmd.Flags().StringVar(&decisionsSince, "since", "", "Show decisions after time (duration or RFC3339)")
	decisionsCmd.Flags().StringVar(&decisionsUntil, "until", "", "Show decisions before time (duration or RFC3339)")
	decisionsCmd.Flags().StringVar(&decisionsAction, "action", "", "Filter by executed action (glob pattern)")
	decisionsCmd.Flags().StringVar(&decisionsOutcome, "outcome", "", "Filter by outcome (executed or idle)")
	decisionsCmd.Flags().DurationVar(&decisionsWait, "wait", 0, "With --agent, wait up to this long for the agent's latest decision and print it")
	decisionsJournal.register(decisionsCmd, journal.DefaultRedisURL())
	rootCmd.AddCommand(decisionsCmd)
}

func runDecisions(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	isGetMode := len(args) > 0

	var outputFormat inspect.OutputFormat
	if !isGetMode {
		switch decisionsOutputFormat {
		case "table":
			outputFormat = inspect.OutputFormatDefault
		case "jsonl":
			outputFormat = inspect.OutputFormatJSONL
		default:
			return printer.Error(
				"invalid output format",
				fmt.Sprintf("Unknown format: %s", decisionsOutputFormat),
				[]string{"Valid formats: table, jsonl"},
			)
		}
	}

	criteria, err := buildCriteria(decisionsAgent, decisionsAction, decisionsOutcome)
	if err != nil {
		return err
	}

	if decisionsWait > 0 && criteria.Agent == nil {
		return printer.Error(
			"--wait requires --agent",
			"Waiting follows a single agent's timeline.",
			[]string{"Name the agent:\n  goap decisions --agent 1 --wait 10s"},
		)
	}

	sinceMs, untilMs, err := timespec.ParseRange(decisionsSince, decisionsUntil)
	if err != nil {
		return printer.Error(
			"invalid time range",
			err.Error(),
			[]string{"Use a duration like '1h30m' or an RFC3339 time like '2025-10-29T13:00:00Z'"},
		)
	}
	criteria.SinceTimestampMs = sinceMs
	criteria.UntilTimestampMs = untilMs

	client, err := decisionsJournal.connect(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if isGetMode {
		shortID := args[0]

		fullID, err := resolver.ResolveRecordID(ctx, client, shortID)
		if err != nil {
			if resolver.IsNotFoundError(err) {
				return printer.Error(
					fmt.Sprintf("decision with ID '%s' not found", shortID),
					"The specified record does not exist in the journal.",
					[]string{
						"List all decisions:\n  goap decisions",
						fmt.Sprintf("Check the instance:\n  goap decisions --instance %s", client.InstanceName()),
					},
				)
			}
			if resolver.IsAmbiguousError(err) {
				var ambErr *resolver.AmbiguousError
				if errors.As(err, &ambErr) {
					return printer.Error(
						"ambiguous record ID",
						resolver.FormatAmbiguousError(ambErr),
						nil,
					)
				}
			}
			return printer.Error("failed to resolve record ID", err.Error(), nil)
		}

		if err := inspect.GetRecord(ctx, client, fullID, out); err != nil {
			if inspect.IsNotFound(err) {
				return printer.Error(err.Error(), "The record was removed while it was being read.", nil)
			}
			return fmt.Errorf("failed to get decision: %w", err)
		}
		return nil
	}

	if decisionsWait > 0 {
		r, err := watch.WaitForDecision(ctx, client, *criteria.Agent, decisionsWait)
		if err != nil {
			return printer.Error(
				"no decision recorded",
				err.Error(),
				[]string{"Check that 'goap simulate --redis ...' is running with the same --instance"},
			)
		}
		return inspect.FormatSingleJSON(out, r)
	}

	opts := inspect.Options{Agent: criteria.Agent, Limit: decisionsLimit}
	if err := inspect.ListRecords(ctx, client, opts, criteria, outputFormat, out); err != nil {
		return fmt.Errorf("failed to list decisions: %w", err)
	}
	return nil
}
