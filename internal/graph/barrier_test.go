package graph

import (
	"sync"
	"testing"
	"time"
)

func TestBarrierWaitReturnsImmediatelyAtZero(t *testing.T) {
	b := NewBarrier(0)

	done := make(chan struct{})
	go func() {
		b.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait on zero-count barrier did not return")
	}
}

func TestBarrierReleasesAfterAllSignals(t *testing.T) {
	const n = 8
	b := NewBarrier(n)

	released := make(chan struct{})
	go func() {
		b.Wait()
		close(released)
	}()

	// Partial signaling must not release the waiter.
	for i := 0; i < n-1; i++ {
		b.Signal()
	}
	select {
	case <-released:
		t.Fatal("Wait returned before every signal arrived")
	case <-time.After(20 * time.Millisecond):
	}

	b.Signal()
	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after final signal")
	}
}

func TestBarrierConcurrentSignals(t *testing.T) {
	const n = 64
	b := NewBarrier(n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Signal()
		}()
	}

	done := make(chan struct{})
	go func() {
		b.Wait()
		close(done)
	}()

	wg.Wait()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return; a signal was lost")
	}
}

func TestBarrierReleasesMultipleWaiters(t *testing.T) {
	b := NewBarrier(1)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Wait()
		}()
	}

	b.Signal()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("not every waiter was released")
	}
}

func TestBarrierPanicsOnDoubleCount(t *testing.T) {
	b := NewBarrier(1)
	b.Signal()

	defer func() {
		if recover() == nil {
			t.Error("expected panic on signaling a drained barrier")
		}
	}()
	b.Signal()
}
