package app

import (
	"context"
	"errors"
	"io"

	"go.trai.ch/forma/internal/adapters/protocol" //nolint:depguard // the wire codec is wired in the app layer
	"go.trai.ch/forma/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// Serve answers JSON-line requests from in on out until in is exhausted or
// ctx is done. Requests already queued when in ends are still answered.
func (a *App) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	enc := protocol.NewEncoder(out)
	emit := func(resp domain.Response) {
		if err := enc.Encode(resp); err != nil {
			a.logger.Error(err)
		}
	}

	queue := NewQueue()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return NewWorker(a, queue, a.logger).Run(ctx)
	})

	g.Go(func() error {
		defer queue.Close()
		dec := protocol.NewDecoder(in)
		for {
			req, err := dec.Decode()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				if req.ID == "" {
					// The stream itself failed; nothing more can be read.
					return err
				}
				a.logger.Error(err)
				emit(domain.ErrorResponse(req.ID, err))
				continue
			}
			if err := queue.Push(Job{Request: req, Emit: emit}); err != nil {
				return err
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
