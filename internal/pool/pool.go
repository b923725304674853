package pool

import (
	"sync"

	"github.com/Iron-Ham/cascade/internal/errors"
	"github.com/Iron-Ham/cascade/internal/logging"
)

// Job is a one-shot unit of work. It must own everything it touches:
// no borrowing of caller-local state that may change underneath it, and
// it must be safe to run on any worker goroutine.
type Job func()

// Option configures a Pool.
type Option func(*Pool)

// WithLogger sets the logger used for worker diagnostics.
func WithLogger(logger *logging.Logger) Option {
	return func(p *Pool) {
		p.logger = logger
	}
}

// Pool owns a fixed set of worker goroutines consuming a shared FIFO
// job queue. The queue is unbounded, so Submit never blocks.
type Pool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []Job
	closing bool

	size   int
	wg     sync.WaitGroup
	logger *logging.Logger
}

// New creates a Pool with exactly size workers. It returns
// ErrInvalidPoolSize if size is not positive.
func New(size int, opts ...Option) (*Pool, error) {
	if size <= 0 {
		return nil, errors.NewPoolError("cannot create pool", errors.ErrInvalidPoolSize)
	}

	p := &Pool{
		size:   size,
		logger: logging.Nop(),
	}
	p.cond = sync.NewCond(&p.mu)

	for _, opt := range opts {
		opt(p)
	}

	p.wg.Add(size)
	for id := 0; id < size; id++ {
		go p.worker(id)
	}

	return p, nil
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return p.size
}

// Submit enqueues a job for execution. It never blocks. After Shutdown
// has begun it returns ErrPoolClosed and the job is dropped.
func (p *Pool) Submit(job Job) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closing {
		return errors.NewPoolError("submit rejected", errors.ErrPoolClosed)
	}

	p.queue = append(p.queue, job)
	p.cond.Signal()
	return nil
}

// Shutdown instructs every worker to exit once the queue drains, then
// joins them all. It is safe to call more than once; later calls simply
// wait for the workers to finish. It must not be called concurrently
// with Submit from the same dispatch sequence.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if !p.closing {
		p.closing = true
		p.cond.Broadcast()
	}
	p.mu.Unlock()

	p.wg.Wait()
}

// worker is the run loop of a single pool goroutine. It sleeps on the
// queue condition, runs jobs as they arrive, and exits when shutdown has
// begun and the queue is empty. Jobs submitted before shutdown always
// run before the worker exits.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closing {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			// Closing and nothing left to do.
			p.mu.Unlock()
			p.logger.Debug("worker exiting", "worker", id)
			return
		}
		job := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		p.logger.Debug("worker picked up job", "worker", id)
		p.run(id, job)
	}
}

// run executes a job, recovering from panics so a failing job can never
// take its worker down with it.
func (p *Pool) run(id int, job Job) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("job panicked", "worker", id, "panic", r)
		}
	}()
	job()
}
