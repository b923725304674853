package graph

import (
	"github.com/Iron-Ham/cascade/internal/event"
	"github.com/Iron-Ham/cascade/internal/logging"
	"github.com/Iron-Ham/cascade/internal/pool"
)

// TaskID identifies a task within one Graph instance. IDs are issued by a
// monotonically increasing counter and are meaningless across graphs.
type TaskID int

// Action is a one-shot task body. It is consumed exactly once, on an
// arbitrary worker goroutine, and must own everything it touches. A
// returned error (or a panic, which is recovered) marks the task failed
// without affecting its wave's completion.
type Action func() error

// task couples an action with its diagnostic metadata.
type task struct {
	id     TaskID
	name   string
	action Action
}

// State tracks the lifecycle of a Graph.
type State int

const (
	// StateBuilding accepts AddTask and AddDependency calls.
	StateBuilding State = iota
	// StateExecuting means Execute is driving dispatch.
	StateExecuting
	// StateDone is terminal; the graph has been consumed.
	StateDone
)

// String returns the state name for diagnostics.
func (s State) String() string {
	switch s {
	case StateBuilding:
		return "building"
	case StateExecuting:
		return "executing"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger for scheduling diagnostics.
func WithLogger(logger *logging.Logger) Option {
	return func(g *Graph) {
		g.logger = logger
	}
}

// WithBus sets the event bus on which execution events are published.
func WithBus(bus *event.Bus) Option {
	return func(g *Graph) {
		g.bus = bus
	}
}

// Graph owns a task registry and the dependency edges between tasks, and
// drives their dispatch onto a worker pool.
//
// The registry and edge maps are mutated only by the single goroutine
// building and executing the graph; they need no locking. Only the job
// queue inside the pool and each wave's barrier cross goroutines.
type Graph struct {
	pool   *pool.Pool
	logger *logging.Logger
	bus    *event.Bus

	tasks  map[TaskID]*task
	names  map[TaskID]string // survives dispatch for reporting
	deps   map[TaskID][]TaskID
	rdeps  map[TaskID][]TaskID
	nextID TaskID
	state  State
}

// New creates an empty Graph that will dispatch onto p.
func New(p *pool.Pool, opts ...Option) *Graph {
	g := &Graph{
		pool:   p,
		logger: logging.Nop(),
		tasks:  make(map[TaskID]*task),
		names:  make(map[TaskID]string),
		deps:   make(map[TaskID][]TaskID),
		rdeps:  make(map[TaskID][]TaskID),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddTask registers a task and returns its handle. The name is diagnostic
// only; nothing requires it to be unique. No scheduling happens here.
func (g *Graph) AddTask(name string, action Action) TaskID {
	id := g.nextID
	g.nextID++

	g.tasks[id] = &task{id: id, name: name, action: action}
	g.names[id] = name

	g.logger.Debug("task registered", "id", int(id), "name", name)
	return id
}

// AddDependency records that dependent must not start until prerequisite
// has completed. The edge goes into both the forward and reverse maps.
// IDs are not validated here; edges referencing unknown tasks surface as
// a hard error from Execute.
func (g *Graph) AddDependency(dependent, prerequisite TaskID) {
	g.deps[dependent] = append(g.deps[dependent], prerequisite)
	g.rdeps[prerequisite] = append(g.rdeps[prerequisite], dependent)

	g.logger.Debug("dependency registered",
		"dependent", int(dependent),
		"prerequisite", int(prerequisite))
}

// Name returns the diagnostic name a task was registered under. It keeps
// working after dispatch has consumed the task's action.
func (g *Graph) Name(id TaskID) (string, bool) {
	name, ok := g.names[id]
	return name, ok
}

// Len returns the number of tasks still holding an unconsumed action.
func (g *Graph) Len() int {
	return len(g.tasks)
}

// State returns the graph's lifecycle state.
func (g *Graph) State() State {
	return g.state
}
