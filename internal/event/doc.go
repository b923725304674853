// Package event defines the execution events published while a task graph
// runs. A synchronous pub-sub bus decouples the scheduler from whatever is
// watching it (CLI progress output, tests, log sinks) without introducing
// direct dependencies between them.
package event
