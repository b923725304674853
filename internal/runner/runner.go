// Package runner turns a task manifest into a graph run: it maps
// manifest entries onto graph tasks whose actions invoke the configured
// shell, executes the graph on a worker pool, and optionally re-runs on
// filesystem changes.
package runner

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/Iron-Ham/cascade/internal/config"
	"github.com/Iron-Ham/cascade/internal/event"
	"github.com/Iron-Ham/cascade/internal/graph"
	"github.com/Iron-Ham/cascade/internal/logging"
	"github.com/Iron-Ham/cascade/internal/manifest"
	"github.com/Iron-Ham/cascade/internal/pool"
)

// Runner executes manifest tasks as shell commands.
type Runner struct {
	cfg    *config.Config
	logger *logging.Logger
	bus    *event.Bus

	// stdout receives buffered task output. Writes are serialized so
	// concurrent tasks cannot interleave their output mid-line.
	stdout io.Writer
	mu     sync.Mutex
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for run diagnostics.
func WithLogger(logger *logging.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithBus sets the event bus execution events are published on.
func WithBus(bus *event.Bus) Option {
	return func(r *Runner) {
		r.bus = bus
	}
}

// WithStdout redirects task output away from os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(r *Runner) {
		r.stdout = w
	}
}

// New creates a Runner for the given configuration.
func New(cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:    cfg,
		logger: logging.Nop(),
		stdout: os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Build registers every manifest task on a fresh graph dispatching onto
// p. Dependencies are resolved by task name; the manifest's own
// validation guarantees every depends_on entry resolves. A nil pool is
// acceptable when the graph will only be planned, never executed.
func (r *Runner) Build(m *manifest.Manifest, p *pool.Pool) *graph.Graph {
	g := graph.New(p, graph.WithLogger(r.logger), graph.WithBus(r.bus))

	ids := make(map[string]graph.TaskID, len(m.Tasks))
	for _, task := range m.Tasks {
		ids[task.Name] = g.AddTask(task.Name, r.action(task.Name, task.Command))
	}
	for _, task := range m.Tasks {
		for _, dep := range task.DependsOn {
			g.AddDependency(ids[task.Name], ids[dep])
		}
	}
	return g
}

// Run executes every task in the manifest, honoring its dependency
// edges. Task failures do not stop the run; Run returns all of them
// joined together.
func (r *Runner) Run(m *manifest.Manifest) error {
	p, err := pool.New(r.cfg.Pool.Workers, pool.WithLogger(r.logger))
	if err != nil {
		return err
	}
	defer p.Shutdown()

	return r.Build(m, p).Execute()
}

// RunFile loads a manifest from disk and runs it.
func (r *Runner) RunFile(path string) error {
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	return r.Run(m)
}

// Plan computes the dispatch waves for a manifest without running
// anything. Each wave holds the names of tasks that would execute
// concurrently.
func (r *Runner) Plan(m *manifest.Manifest) ([][]string, error) {
	g := r.Build(m, nil)

	waves, err := g.Plan()
	if err != nil {
		return nil, err
	}

	named := make([][]string, len(waves))
	for i, wave := range waves {
		named[i] = make([]string, len(wave))
		for j, id := range wave {
			name, _ := g.Name(id)
			named[i][j] = name
		}
	}
	return named, nil
}

// action builds a task body that runs command under the configured
// shell. Output is buffered per task and flushed in one write when the
// command finishes.
func (r *Runner) action(name, command string) graph.Action {
	return func() error {
		cmd := exec.Command(r.cfg.Run.Shell, "-c", command)

		var buf bytes.Buffer
		cmd.Stdout = &buf
		cmd.Stderr = &buf
		runErr := cmd.Run()

		r.mu.Lock()
		if buf.Len() > 0 {
			fmt.Fprintf(r.stdout, "── %s\n", name)
			_, _ = r.stdout.Write(buf.Bytes())
			if !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
				fmt.Fprintln(r.stdout)
			}
		}
		r.mu.Unlock()

		if runErr != nil {
			return fmt.Errorf("command %q: %w", command, runErr)
		}
		return nil
	}
}
