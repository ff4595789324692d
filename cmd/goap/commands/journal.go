package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dyluth/goap/internal/journal"
	"github.com/dyluth/goap/internal/printer"
	"github.com/dyluth/goap/pkg/goap"
	"github.com/spf13/cobra"
)

const defaultInstance = "default"

// journalFlags are the connection flags shared by every command that talks to Redis.
type journalFlags struct {
	redisURL string
	instance string
}

func (f *journalFlags) register(cmd *cobra.Command, redisDefault string) {
	cmd.Flags().StringVar(&f.redisURL, "redis", redisDefault, "Redis URL of the decision journal")
	cmd.Flags().StringVar(&f.instance, "instance", defaultInstance, "Journal instance name (namespaces all keys)")
}

// connect opens the journal and verifies connectivity, printing a formatted
// error on failure.
func (f *journalFlags) connect(ctx context.Context) (*journal.Client, error) {
	client, err := journal.NewClientFromURL(f.redisURL, f.instance)
	if err != nil {
		return nil, printer.Error(
			"invalid journal settings",
			err.Error(),
			[]string{"Use a Redis URL such as:\n  --redis redis://localhost:6379"},
		)
	}

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, printer.ErrorWithContext(
			"Redis connection failed",
			fmt.Sprintf("Could not connect to Redis at %s", f.redisURL),
			map[string]string{
				"Instance": f.instance,
				"Error":    err.Error(),
			},
			[]string{
				"Start a local Redis:\n  docker run -d -p 6379:6379 redis:7-alpine",
				"Point at a different server:\n  --redis redis://host:6379",
			},
		)
	}

	return client, nil
}

// parseAgent parses an --agent value. An empty value means no agent filter.
func parseAgent(s string) (*goap.EntityID, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, printer.Error(
			"invalid agent ID",
			fmt.Sprintf("'%s' is not an entity ID", s),
			[]string{"Agent IDs are the numbers shown in 'goap simulate' output, e.g. --agent 1"},
		)
	}
	id := goap.EntityID(n)
	return &id, nil
}
