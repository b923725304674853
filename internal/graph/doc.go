// Package graph schedules dependency-constrained tasks onto a worker pool.
//
// A Graph is built once: register tasks with AddTask, record edges with
// AddDependency, then call Execute. Execute computes a topological order
// (Kahn's algorithm), groups tasks into waves by dependency depth, and
// dispatches one wave at a time — every task in wave N completes before
// any task in wave N+1 starts. Within a wave, tasks run concurrently with
// no ordering guarantee.
//
// Graphs are single-use: task actions are consumed at dispatch, and a
// second Execute returns ErrGraphConsumed.
package graph
