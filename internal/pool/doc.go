// Package pool provides a fixed-size pool of long-lived worker goroutines
// pulling jobs from a shared FIFO queue.
//
// Submit never blocks: jobs land on an unbounded queue guarded by a mutex
// and condition variable, and idle workers sleep on the condition until
// work or shutdown arrives. Shutdown drains the queue, instructs each
// worker to exit, and joins them all, so no goroutines leak.
package pool
