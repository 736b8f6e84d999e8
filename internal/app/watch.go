package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/forma/internal/adapters/watcher" //nolint:depguard // debouncing is shared with the adapter
	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// WatchOptions configures a watch session.
type WatchOptions struct {
	// ParamsPath is the params file to rebuild from on every change.
	ParamsPath string
	Parts      domain.PartSet
	Tolerance  float64
	// Debounce is the quiet window before a burst of edits triggers a build.
	Debounce time.Duration
}

// Watch builds once from the params file and again after each debounced
// change, until ctx is done. Builds queued behind a newer one are superseded.
func (a *App) Watch(
	ctx context.Context,
	files ports.Watcher,
	loader ports.ParamsLoader,
	opts WatchOptions,
	emit Emitter,
) error {
	window := opts.Debounce
	if window <= 0 {
		window = watcher.DefaultDebounceWindow
	}
	parts := opts.Parts
	if parts == nil {
		parts = domain.AllEnabled()
	}

	queue := NewQueue()
	submit := func() {
		id := uuid.NewString()
		params, err := loader.Load(opts.ParamsPath)
		if err != nil {
			a.logger.Error(err)
			emit(domain.ErrorResponse(id, err))
			return
		}
		req := domain.Request{
			ID:        id,
			Type:      domain.RequestBuild,
			Params:    params,
			Tolerance: opts.Tolerance,
			Parts:     parts,
		}
		if err := queue.Push(Job{Request: req, Emit: emit}); err != nil {
			a.logger.Warn(err.Error())
		}
	}

	if err := files.Start(ctx, opts.ParamsPath); err != nil {
		return err
	}
	defer func() { _ = files.Stop() }()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return NewWorker(a, queue, a.logger).Run(ctx)
	})

	debouncer := watcher.NewDebouncer(window, func([]string) { submit() })
	g.Go(func() error {
		defer queue.Close()
		defer debouncer.Stop()
		submit()
		for ev := range files.Events() {
			debouncer.Add(ev.Path)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
