package graph

import (
	"fmt"
	"sync"
	"time"

	"github.com/Iron-Ham/cascade/internal/errors"
	"github.com/Iron-Ham/cascade/internal/event"
)

// Execute runs every registered task, one wave at a time. The calling
// goroutine blocks once per wave, on that wave's barrier; tasks inside a
// wave run concurrently on the pool.
//
// A task failure (returned error or recovered panic) does not stop the
// run: the failed task still signals its barrier, later waves still
// dispatch, and Execute returns every failure joined together. Cycles and
// dangling dependency edges abort before anything is dispatched.
//
// Graphs are single-use. Actions are removed from the registry as they
// are dispatched, and any Execute call after the first returns
// ErrGraphConsumed.
func (g *Graph) Execute() error {
	if g.state != StateBuilding {
		return errors.NewGraphError("cannot execute", errors.ErrGraphConsumed)
	}
	g.state = StateExecuting
	defer func() { g.state = StateDone }()

	if len(g.tasks) == 0 {
		// Nothing registered: no barrier, no submission.
		return nil
	}

	sorted, err := g.topologicalSort()
	if err != nil {
		return err
	}
	waves := g.assignLevels(sorted)

	start := time.Now()
	total := len(sorted)

	var mu sync.Mutex
	var failures []error

	for waveIdx, wave := range waves {
		waveLog := g.logger.WithWave(waveIdx)
		waveLog.Debug("dispatching wave", "tasks", len(wave))

		barrier := NewBarrier(len(wave))
		for _, id := range wave {
			t := g.tasks[id]
			delete(g.tasks, id) // the action is consumed exactly once

			id, name, action := t.id, t.name, t.action
			err := g.pool.Submit(func() {
				defer barrier.Signal()

				g.publish(event.NewTaskStartedEvent(int(id), name, waveIdx))
				began := time.Now()
				if runErr := runAction(action); runErr != nil {
					waveLog.Error("task failed", "task", name, "error", runErr)
					g.publish(event.NewTaskFailedEvent(int(id), name, waveIdx, runErr.Error()))
					mu.Lock()
					failures = append(failures, errors.NewTaskError(int(id), name, runErr))
					mu.Unlock()
					return
				}
				waveLog.Debug("task completed", "task", name, "duration", time.Since(began))
				g.publish(event.NewTaskCompletedEvent(int(id), name, waveIdx, time.Since(began)))
			})
			if err != nil {
				// The pool refused the job (shutdown raced the dispatch).
				// Count the task down ourselves so the wave cannot hang,
				// and report the submission failure with the rest.
				barrier.Signal()
				mu.Lock()
				failures = append(failures, errors.NewTaskError(int(id), name, err))
				mu.Unlock()
			}
		}

		barrier.Wait()
		g.publish(event.NewWaveCompletedEvent(waveIdx, len(wave)))
	}

	mu.Lock()
	defer mu.Unlock()
	g.publish(event.NewRunCompletedEvent(total, len(failures), time.Since(start)))
	g.logger.Info("graph executed",
		"tasks", total,
		"waves", len(waves),
		"failed", len(failures),
		"duration", time.Since(start))

	return errors.Join(failures...)
}

// publish sends an event if a bus is attached.
func (g *Graph) publish(e event.Event) {
	if g.bus != nil {
		g.bus.Publish(e)
	}
}

// runAction invokes a task body, converting a panic into an error so a
// misbehaving task can neither kill its worker nor leave its barrier
// waiting forever.
func runAction(action Action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return action()
}
