package app

import (
	"context"
	"sync"

	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/zerr"
)

// Emitter receives the responses of one request. It must be safe for
// concurrent use: superseded builds are answered from the submitting goroutine.
type Emitter func(domain.Response)

// Job is a request waiting for the worker.
type Job struct {
	Request domain.Request
	Emit    Emitter
}

func (j Job) emit(resp domain.Response) {
	if j.Emit != nil {
		j.Emit(resp)
	}
}

// Queue holds requests in arrival order. Pushing a build drops every build
// still waiting, since only the newest parameters matter for a preview.
// Pings and exports are never dropped.
type Queue struct {
	mu     sync.Mutex
	jobs   []Job
	closed bool
	ready  chan struct{}
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{ready: make(chan struct{}, 1)}
}

func (q *Queue) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Push appends job. Dropped builds are answered with ErrSuperseded before
// Push returns.
func (q *Queue) Push(job Job) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return zerr.With(domain.ErrQueueClosed, "request", job.Request.ID)
	}

	var dropped []Job
	if job.Request.Type == domain.RequestBuild {
		kept := make([]Job, 0, len(q.jobs)+1)
		for _, j := range q.jobs {
			if j.Request.Type == domain.RequestBuild {
				dropped = append(dropped, j)
				continue
			}
			kept = append(kept, j)
		}
		q.jobs = kept
	}
	q.jobs = append(q.jobs, job)
	q.mu.Unlock()
	q.signal()

	for _, j := range dropped {
		err := zerr.With(domain.ErrSuperseded, "by", job.Request.ID)
		j.emit(domain.ErrorResponse(j.Request.ID, err))
	}
	return nil
}

// Pop blocks until a job is available. It reports false once the queue is
// closed and drained, or when ctx is done.
func (q *Queue) Pop(ctx context.Context) (Job, bool) {
	for {
		q.mu.Lock()
		if len(q.jobs) > 0 {
			job := q.jobs[0]
			q.jobs = q.jobs[1:]
			more := len(q.jobs) > 0
			q.mu.Unlock()
			if more {
				q.signal()
			}
			return job, true
		}
		closed := q.closed
		q.mu.Unlock()
		if closed {
			return Job{}, false
		}

		select {
		case <-q.ready:
		case <-ctx.Done():
			return Job{}, false
		}
	}
}

// Len returns the number of waiting jobs.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

// Close stops accepting jobs. Jobs already queued are still handed out.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.signal()
}
