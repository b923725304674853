package event

import (
	"sync"
	"testing"
	"time"
)

func TestSubscribeAndPublish(t *testing.T) {
	bus := NewBus()

	var received []Event
	bus.Subscribe("task.started", func(e Event) {
		received = append(received, e)
	})

	bus.Publish(NewTaskStartedEvent(1, "compile", 0))
	bus.Publish(NewTaskCompletedEvent(1, "compile", 0, time.Millisecond))

	if len(received) != 1 {
		t.Fatalf("expected 1 event, got %d", len(received))
	}
	started, ok := received[0].(TaskStartedEvent)
	if !ok {
		t.Fatalf("expected TaskStartedEvent, got %T", received[0])
	}
	if started.Name != "compile" {
		t.Errorf("Name = %q, want %q", started.Name, "compile")
	}
}

func TestSubscribeAllReceivesEverything(t *testing.T) {
	bus := NewBus()

	var count int
	bus.SubscribeAll(func(Event) { count++ })

	bus.Publish(NewTaskStartedEvent(1, "a", 0))
	bus.Publish(NewTaskFailedEvent(1, "a", 0, "boom"))
	bus.Publish(NewWaveCompletedEvent(0, 1))
	bus.Publish(NewRunCompletedEvent(1, 1, time.Second))

	if count != 4 {
		t.Errorf("wildcard handler saw %d events, want 4", count)
	}
}

func TestSpecificHandlersRunBeforeWildcard(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.SubscribeAll(func(Event) { order = append(order, "wildcard") })
	bus.Subscribe("wave.completed", func(Event) { order = append(order, "specific") })

	bus.Publish(NewWaveCompletedEvent(0, 3))

	if len(order) != 2 || order[0] != "specific" || order[1] != "wildcard" {
		t.Errorf("handler order = %v, want [specific wildcard]", order)
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus()

	var count int
	id := bus.Subscribe("task.completed", func(Event) { count++ })

	bus.Publish(NewTaskCompletedEvent(1, "a", 0, 0))
	if !bus.Unsubscribe(id) {
		t.Fatal("Unsubscribe returned false for live subscription")
	}
	bus.Publish(NewTaskCompletedEvent(2, "b", 0, 0))

	if count != 1 {
		t.Errorf("handler called %d times, want 1", count)
	}
	if bus.Unsubscribe(id) {
		t.Error("Unsubscribe returned true for removed subscription")
	}
}

func TestPanickingHandlerDoesNotBlockDelivery(t *testing.T) {
	bus := NewBus()

	var delivered bool
	bus.Subscribe("task.failed", func(Event) { panic("handler bug") })
	bus.Subscribe("task.failed", func(Event) { delivered = true })

	bus.Publish(NewTaskFailedEvent(1, "a", 0, "boom"))

	if !delivered {
		t.Error("second handler not called after first panicked")
	}
}

func TestConcurrentPublish(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	count := 0
	bus.Subscribe("task.completed", func(Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			bus.Publish(NewTaskCompletedEvent(id, "t", 0, 0))
		}(i)
	}
	wg.Wait()

	if count != 50 {
		t.Errorf("handler called %d times, want 50", count)
	}
}
