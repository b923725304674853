package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Iron-Ham/cascade/internal/config"
	"github.com/Iron-Ham/cascade/internal/event"
	"github.com/Iron-Ham/cascade/internal/runner"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [manifest]",
	Short: "Run the tasks of a manifest",
	Long: `Run every task in a manifest on a worker pool, wave by wave.

Tasks with no dependencies between them run concurrently. A failing
task does not stop the run: the remaining waves still execute, and
cascade exits non-zero listing every failure.

Examples:
  # Run cascade.yaml from the current directory
  cascade run

  # Run a specific manifest with 8 workers
  cascade run build.yaml --workers 8

  # Re-run automatically when the manifest changes
  cascade run --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

var (
	runWorkers int
	runWatch   bool
)

// timePrecision trims durations for display.
const timePrecision = time.Millisecond

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVarP(&runWorkers, "workers", "w", 0, "Number of workers (default: pool.workers from config)")
	runCmd.Flags().BoolVar(&runWatch, "watch", false, "Re-run when the manifest file changes")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if runWorkers > 0 {
		cfg.Pool.Workers = runWorkers
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logger.Close()

	path := "cascade.yaml"
	if len(args) == 1 {
		path = args[0]
	}

	bus := event.NewBus()
	subscribeProgress(bus, cfg.Output.Color)

	r := runner.New(cfg, runner.WithLogger(logger), runner.WithBus(bus))

	if runWatch {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return r.Watch(ctx, path)
	}
	return r.RunFile(path)
}

// subscribeProgress prints a line per lifecycle event as the run moves
// through its waves.
func subscribeProgress(bus *event.Bus, color bool) {
	check, cross := "✓", "✗"

	bus.Subscribe("task.completed", func(e event.Event) {
		ev := e.(event.TaskCompletedEvent)
		line := fmt.Sprintf("%s %s", check, ev.Name)
		duration := ev.Duration.Round(timePrecision).String()
		if color {
			line = successStyle.Render(line)
			duration = mutedStyle.Render(duration)
		}
		fmt.Printf("%s %s\n", line, duration)
	})

	bus.Subscribe("task.failed", func(e event.Event) {
		ev := e.(event.TaskFailedEvent)
		line := fmt.Sprintf("%s %s: %s", cross, ev.Name, ev.Err)
		if color {
			line = errorStyle.Render(line)
		}
		fmt.Println(line)
	})

	bus.Subscribe("run.completed", func(e event.Event) {
		ev := e.(event.RunCompletedEvent)
		summary := fmt.Sprintf("%d tasks in %s", ev.Tasks, ev.Duration.Round(timePrecision))
		if ev.Failed > 0 {
			summary += fmt.Sprintf(", %d failed", ev.Failed)
			if color {
				summary = errorStyle.Render(summary)
			}
		} else if color {
			summary = successStyle.Render(summary)
		}
		fmt.Println(summary)
	})
}
