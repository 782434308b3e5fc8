// Package workerpool provides a bounded pool of workers that drain a shared
// job queue. The simulator uses it to fan out per-agent integration inside
// a tick and then barrier on completion.
package workerpool

import "sync"

// DefaultWorkers is the pool size used by the simulator.
const DefaultWorkers = 8

// Job is a unit of work.
type Job func()

// Pool runs queued jobs on a fixed set of workers. All bookkeeping is
// guarded by a single mutex so that Wait observes the queue and the idle
// worker count atomically.
type Pool struct {
	mu         sync.Mutex
	jobReady   *sync.Cond
	done       *sync.Cond
	queue      []Job
	waiting    int
	terminated bool

	numWorkers int
	wg         sync.WaitGroup
}

// New creates a pool with the given number of workers.
func New(numWorkers int) *Pool {
	p := &Pool{numWorkers: numWorkers}
	p.jobReady = sync.NewCond(&p.mu)
	p.done = sync.NewCond(&p.mu)
	return p
}

// Start launches the workers.
func (p *Pool) Start() {
	p.wg.Add(p.numWorkers)
	for i := 0; i < p.numWorkers; i++ {
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		p.waiting++
		if !p.busyLocked() {
			p.done.Broadcast()
		}
		for len(p.queue) == 0 && !p.terminated {
			p.jobReady.Wait()
		}
		if p.terminated {
			p.mu.Unlock()
			return
		}
		p.waiting--
		job := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		job()
	}
}

// QueueJob enqueues a job and wakes a worker.
func (p *Pool) QueueJob(job Job) {
	p.mu.Lock()
	p.queue = append(p.queue, job)
	p.mu.Unlock()
	p.jobReady.Signal()
}

// busyLocked reports whether any job is pending or running. The caller must
// hold the mutex.
func (p *Pool) busyLocked() bool {
	return len(p.queue) > 0 || p.waiting != p.numWorkers
}

// Wait blocks until the queue is empty and all workers are idle.
func (p *Pool) Wait() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.busyLocked() {
		p.done.Wait()
	}
}

// Stop shuts the workers down. Jobs still queued are discarded; callers
// that need the current batch to finish must Wait first.
func (p *Pool) Stop() {
	p.mu.Lock()
	p.terminated = true
	p.mu.Unlock()
	p.jobReady.Broadcast()
	p.wg.Wait()
}
