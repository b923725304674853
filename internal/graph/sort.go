package graph

import (
	"sort"

	"gitlab.com/kyle_anderson/go-utils/pkg/set"

	"github.com/Iron-Ham/cascade/internal/errors"
)

// topologicalSort computes a dependency-respecting order over the
// registered tasks using Kahn's algorithm. It returns a hard error when
// the sort cannot place every task: either the edges form a cycle, or an
// edge references a TaskID this graph never issued.
func (g *Graph) topologicalSort() ([]TaskID, error) {
	inDegree := make(map[TaskID]int, len(g.tasks))
	for id := range g.tasks {
		// Every prerequisite counts, known or not: an edge to a task that
		// does not exist can never be satisfied, so its dependent must
		// land in the unscheduled set rather than run early.
		inDegree[id] = len(g.deps[id])
	}

	queue := make([]TaskID, 0, len(g.tasks))
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	// Seed order is map iteration order; sort for reproducible output.
	sort.Slice(queue, func(i, j int) bool { return queue[i] < queue[j] })

	sorted := make([]TaskID, 0, len(g.tasks))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		sorted = append(sorted, id)

		for _, dependent := range g.rdeps[id] {
			if _, ok := inDegree[dependent]; !ok {
				continue // edge to a never-registered dependent
			}
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(sorted) != len(g.tasks) {
		return nil, g.unscheduledError(sorted)
	}
	return sorted, nil
}

// unscheduledError builds the diagnostic for a failed sort: the set of
// tasks that never reached in-degree zero, and whether the cause is a
// dangling edge or a genuine cycle.
func (g *Graph) unscheduledError(sorted []TaskID) error {
	scheduled := set.NewComparable(sorted...)

	var stuck []TaskID
	for id := range g.tasks {
		if !scheduled.Contains(id) {
			stuck = append(stuck, id)
		}
	}
	sort.Slice(stuck, func(i, j int) bool { return stuck[i] < stuck[j] })

	names := make([]string, len(stuck))
	dangling := false
	for i, id := range stuck {
		names[i] = g.names[id]
		for _, prereq := range g.deps[id] {
			if _, ok := g.names[prereq]; !ok {
				dangling = true
			}
		}
	}

	cause := errors.ErrDependencyCycle
	msg := "cannot schedule: tasks depend on each other"
	if dangling {
		cause = errors.ErrUnknownTask
		msg = "cannot schedule: edge references a task this graph never issued"
	}
	return errors.NewGraphError(msg, cause).WithUnscheduled(names)
}

// assignLevels walks a topologically sorted task sequence and groups
// tasks into waves by dependency depth: level 0 for tasks with no
// prerequisites, otherwise one more than the deepest prerequisite.
// Tasks with no path between them may share a wave.
func (g *Graph) assignLevels(sorted []TaskID) [][]TaskID {
	levels := make(map[TaskID]int, len(sorted))
	maxLevel := 0

	for _, id := range sorted {
		level := 0
		for _, prereq := range g.deps[id] {
			if l := levels[prereq] + 1; l > level {
				level = l
			}
		}
		levels[id] = level
		if level > maxLevel {
			maxLevel = level
		}
	}

	waves := make([][]TaskID, maxLevel+1)
	for _, id := range sorted {
		level := levels[id]
		waves[level] = append(waves[level], id)
	}
	// Stable intra-wave order for display and tests. Execution within a
	// wave is concurrent regardless.
	for _, wave := range waves {
		sort.Slice(wave, func(i, j int) bool { return wave[i] < wave[j] })
	}
	return waves
}

// Plan computes the dispatch waves without executing anything. It is
// read-only and deterministic: planning the same unmodified graph twice
// yields identical waves. Sorting errors (cycles, dangling edges) are
// the same hard errors Execute would return.
func (g *Graph) Plan() ([][]TaskID, error) {
	if len(g.tasks) == 0 {
		return nil, nil
	}
	sorted, err := g.topologicalSort()
	if err != nil {
		return nil, err
	}
	return g.assignLevels(sorted), nil
}
