package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dyluth/goap/internal/filter"
	"github.com/dyluth/goap/internal/journal"
	"github.com/dyluth/goap/internal/printer"
	"github.com/dyluth/goap/internal/watch"
	"github.com/spf13/cobra"
)

var (
	watchOutputFormat string
	watchAgent        string
	watchAction       string
	watchOutcome      string
	watchJournal      journalFlags
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream agent decisions as they happen",
	Long: `Stream agent decisions from a running 'goap simulate --redis ...'.

Output Formats:
  default - One colored line per decision
  json    - Line-delimited JSON records for programmatic processing

Filters:
  --agent    - Only decisions by this agent ID
  --action   - Only executed actions matching this glob ("Search*")
  --outcome  - "executed" or "idle"

Examples:
  # Watch everything on the default instance
  goap watch

  # Watch one agent on a named instance
  goap watch --instance demo --agent 1

  # Export executed decisions as JSON
  goap watch --outcome executed --output=json > decisions.jsonl`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutputFormat, "output", "o", "default", "Output format (default or json)")
	watchCmd.Flags().StringVar(&watchAgent, "agent", "", "Filter by agent ID")
	watchCmd.Flags().StringVar(&watchAction, "action", "", "Filter by executed action (glob pattern)")
	watchCmd.Flags().StringVar(&watchOutcome, "outcome", "", "Filter by outcome (executed or idle)")
	watchJournal.register(watchCmd, journal.DefaultRedisURL())
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outputFormat, err := watch.ParseOutputFormat(watchOutputFormat)
	if err != nil {
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", watchOutputFormat),
			[]string{"Valid formats: default, json"},
		)
	}

	criteria, err := buildCriteria(watchAgent, watchAction, watchOutcome)
	if err != nil {
		return err
	}

	client, err := watchJournal.connect(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	return watch.StreamDecisions(ctx, client, criteria, outputFormat, cmd.OutOrStdout())
}

// buildCriteria turns the shared filter flags into criteria.
func buildCriteria(agent, action, outcome string) (*filter.Criteria, error) {
	agentID, err := parseAgent(agent)
	if err != nil {
		return nil, err
	}

	switch outcome {
	case "", "executed", "idle":
	default:
		return nil, printer.Error(
			"invalid outcome filter",
			fmt.Sprintf("Unknown outcome: %s", outcome),
			[]string{"Valid outcomes: executed, idle"},
		)
	}

	return &filter.Criteria{
		Agent:      agentID,
		ActionGlob: action,
		Outcome:    outcome,
	}, nil
}
