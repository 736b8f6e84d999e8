package app

import (
	"context"
	"fmt"

	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/core/ports"
	"go.trai.ch/zerr"
)

// Handler processes one request and emits its responses.
type Handler interface {
	Handle(ctx context.Context, req domain.Request, emit Emitter)
}

// Worker is the single goroutine that owns request processing. Requests run
// strictly one after another in queue order.
type Worker struct {
	handler Handler
	queue   *Queue
	logger  ports.Logger
}

// NewWorker creates a worker draining queue into handler.
func NewWorker(handler Handler, queue *Queue, logger ports.Logger) *Worker {
	return &Worker{handler: handler, queue: queue, logger: logger}
}

// Run processes jobs until the queue is closed and drained or ctx is done.
func (w *Worker) Run(ctx context.Context) error {
	for {
		job, ok := w.queue.Pop(ctx)
		if !ok {
			return ctx.Err()
		}
		w.process(ctx, job)
	}
}

// process runs one job. A panicking handler is answered with a terminal error
// and the worker carries on with the next job.
func (w *Worker) process(ctx context.Context, job Job) {
	defer func() {
		if r := recover(); r != nil {
			err := zerr.With(domain.ErrRequestPanicked, "panic", fmt.Sprint(r))
			err = zerr.With(err, "request", job.Request.ID)
			if w.logger != nil {
				w.logger.Error(err)
			}
			job.emit(domain.ErrorResponse(job.Request.ID, err))
		}
	}()
	w.handler.Handle(ctx, job.Request, job.emit)
}
