package commands

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dyluth/goap/internal/config"
	"github.com/dyluth/goap/internal/printer"
	"github.com/dyluth/goap/internal/sim"
	"github.com/dyluth/goap/internal/timespec"
	"github.com/dyluth/goap/internal/trace"
	"github.com/dyluth/goap/internal/watch"
	"github.com/dyluth/goap/pkg/goap"
	"github.com/spf13/cobra"
)

var (
	simConfigPath string
	simTicks      int
	simFor        string
	simTraceDir   string
	simOutput     string
	simQuiet      bool
	simRealtime   bool
	simJournal    journalFlags
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the simulation described by goap.yml",
	Long: `Run the simulation described by goap.yml and print every agent decision.

Each tick every agent plans once and executes at most one action. By default
ticks run as fast as possible; --realtime paces them at the configured tick rate.

Run length:
  --ticks N   - Run exactly N ticks
  --for SPEC  - Run for a tick count ("200") or simulated time ("10s")
  Without either, simulation.ticks from the config is used.

Outputs:
  --redis URL  - Journal every decision to Redis for 'goap watch' and 'goap decisions'.
                 Each run replaces the instance's previous decisions.
  --trace DIR  - Append every decision to hourly decisions-*.jsonl.zst files

Examples:
  # Run the sample config
  goap simulate

  # Run 30 seconds of simulated time and journal to a local Redis
  goap simulate --for 30s --redis redis://localhost:6379 --instance demo

  # Record a compressed trace without terminal output
  goap simulate --trace ./traces --quiet`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVarP(&simConfigPath, "config", "f", "goap.yml", "Path to the simulation config")
	simulateCmd.Flags().IntVar(&simTicks, "ticks", 0, "Number of ticks to run (overrides the config)")
	simulateCmd.Flags().StringVar(&simFor, "for", "", "Run length as a tick count or simulated duration")
	simulateCmd.Flags().StringVar(&simTraceDir, "trace", "", "Directory for compressed decision traces")
	simulateCmd.Flags().StringVarP(&simOutput, "output", "o", "default", "Output format (default or json)")
	simulateCmd.Flags().BoolVarP(&simQuiet, "quiet", "q", false, "Do not print decisions")
	simulateCmd.Flags().BoolVar(&simRealtime, "realtime", false, "Pace ticks at the configured tick rate")
	simJournal.register(simulateCmd, "")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outputFormat, err := watch.ParseOutputFormat(simOutput)
	if err != nil {
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", simOutput),
			[]string{"Valid formats: default, json"},
		)
	}

	if cmd.Flags().Changed("ticks") && simFor != "" {
		return printer.Error(
			"conflicting run length",
			"--ticks and --for cannot be used together.",
			nil,
		)
	}

	cfg, err := config.Load(simConfigPath)
	if err != nil {
		return printer.ErrorWithContext(
			"failed to load configuration",
			err.Error(),
			map[string]string{"Config": simConfigPath},
			[]string{"Create a sample config:\n  goap init"},
		)
	}

	ticks, err := resolveTicks(cmd, cfg)
	if err != nil {
		return printer.Error("invalid run length", err.Error(), []string{"Use a tick count (--for 200) or a duration (--for 10s)"})
	}

	s, err := sim.FromConfig(cfg)
	if err != nil {
		return printer.ErrorWithContext(
			"failed to build simulation",
			err.Error(),
			map[string]string{"Config": simConfigPath},
			nil,
		)
	}

	out := cmd.OutOrStdout()
	if !simQuiet {
		s.AddSink(outputSink(outputFormat, out))
	}

	if simJournal.redisURL != "" {
		client, err := simJournal.connect(ctx)
		if err != nil {
			return err
		}
		defer client.Close()
		if _, err := client.Reset(ctx); err != nil {
			return printer.Error(
				"failed to clear journal",
				err.Error(),
				[]string{"Check the Redis server is writable, or journal to another instance:\n  --instance NAME"},
			)
		}
		s.AddSink(client)
		log.Printf("[Simulate] Journaling decisions to instance '%s'", client.InstanceName())
	}

	if simTraceDir != "" {
		logger := trace.NewDecisionLogger(simTraceDir)
		defer func() {
			if err := logger.Close(); err != nil {
				log.Printf("[Simulate] Failed to close trace: %v", err)
			}
		}()
		s.AddSink(logger)
	}

	var interval time.Duration
	if simRealtime {
		interval = s.Delta()
	}

	if err := s.Run(ctx, ticks, interval); err != nil {
		if ctx.Err() != nil {
			printer.Warning("Interrupted after %d ticks\n", s.Clock().Tick)
			return nil
		}
		return fmt.Errorf("simulation failed: %w", err)
	}

	if !simQuiet && outputFormat == watch.OutputFormatDefault {
		printer.Success("Simulated %d ticks (%s of world time)\n", s.Clock().Tick, s.Clock().Elapsed)
	}
	return nil
}

// resolveTicks picks the run length from --ticks, --for or the config, in that order.
func resolveTicks(cmd *cobra.Command, cfg *config.GoapConfig) (int, error) {
	if cmd.Flags().Changed("ticks") {
		if simTicks < 0 {
			return 0, fmt.Errorf("--ticks must be >= 0, got %d", simTicks)
		}
		return simTicks, nil
	}
	if simFor != "" {
		return timespec.ParseTicks(simFor, *cfg.Simulation.TickRateHz)
	}
	return *cfg.Simulation.Ticks, nil
}

// outputSink prints each record as it is produced.
func outputSink(format watch.OutputFormat, w io.Writer) sim.Sink {
	return sim.SinkFunc(func(_ context.Context, r *goap.Record) error {
		return watch.Write(w, format, r)
	})
}
