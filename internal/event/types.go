package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "task.started", "wave.completed")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Task Lifecycle Events
// -----------------------------------------------------------------------------

// TaskStartedEvent is emitted when a worker picks up a task's action.
type TaskStartedEvent struct {
	baseEvent
	TaskID int    // Numeric task identifier within the graph
	Name   string // Diagnostic task name
	Wave   int    // Dispatch wave the task belongs to
}

// NewTaskStartedEvent creates a TaskStartedEvent.
func NewTaskStartedEvent(taskID int, name string, wave int) TaskStartedEvent {
	return TaskStartedEvent{
		baseEvent: newBaseEvent("task.started"),
		TaskID:    taskID,
		Name:      name,
		Wave:      wave,
	}
}

// TaskCompletedEvent is emitted when a task's action returns without error.
type TaskCompletedEvent struct {
	baseEvent
	TaskID   int
	Name     string
	Wave     int
	Duration time.Duration // Wall time spent inside the action
}

// NewTaskCompletedEvent creates a TaskCompletedEvent.
func NewTaskCompletedEvent(taskID int, name string, wave int, duration time.Duration) TaskCompletedEvent {
	return TaskCompletedEvent{
		baseEvent: newBaseEvent("task.completed"),
		TaskID:    taskID,
		Name:      name,
		Wave:      wave,
		Duration:  duration,
	}
}

// TaskFailedEvent is emitted when a task's action returns an error or panics.
type TaskFailedEvent struct {
	baseEvent
	TaskID int
	Name   string
	Wave   int
	Err    string // Failure description; the error itself travels via Execute's return
}

// NewTaskFailedEvent creates a TaskFailedEvent.
func NewTaskFailedEvent(taskID int, name string, wave int, errMsg string) TaskFailedEvent {
	return TaskFailedEvent{
		baseEvent: newBaseEvent("task.failed"),
		TaskID:    taskID,
		Name:      name,
		Wave:      wave,
		Err:       errMsg,
	}
}

// -----------------------------------------------------------------------------
// Run Progress Events
// -----------------------------------------------------------------------------

// WaveCompletedEvent is emitted when every task in a dispatch wave has
// signaled its barrier.
type WaveCompletedEvent struct {
	baseEvent
	Wave  int // Zero-based wave index
	Tasks int // Number of tasks in the wave
}

// NewWaveCompletedEvent creates a WaveCompletedEvent.
func NewWaveCompletedEvent(wave, tasks int) WaveCompletedEvent {
	return WaveCompletedEvent{
		baseEvent: newBaseEvent("wave.completed"),
		Wave:      wave,
		Tasks:     tasks,
	}
}

// RunCompletedEvent is emitted once when Execute returns.
type RunCompletedEvent struct {
	baseEvent
	Tasks    int // Total tasks executed
	Failed   int // Number of failed tasks
	Duration time.Duration
}

// NewRunCompletedEvent creates a RunCompletedEvent.
func NewRunCompletedEvent(tasks, failed int, duration time.Duration) RunCompletedEvent {
	return RunCompletedEvent{
		baseEvent: newBaseEvent("run.completed"),
		Tasks:     tasks,
		Failed:    failed,
		Duration:  duration,
	}
}
