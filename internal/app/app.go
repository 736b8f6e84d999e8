// Package app implements the application layer for forma.
package app

import (
	"context"
	"fmt"

	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/core/ports"
	"go.trai.ch/forma/internal/engine/partcache"
	"go.trai.ch/forma/internal/engine/parts"
	"go.trai.ch/zerr"
)

// App turns requests into preview meshes and exported files. It owns the part
// cache; callers must not run Handle concurrently (see Worker).
type App struct {
	kernels   *KernelProvider
	cache     *partcache.Cache
	keys      ports.Fingerprinter
	telemetry ports.Telemetry
	logger    ports.Logger
}

// New creates a new App instance with an empty part cache.
func New(
	factory ports.KernelFactory,
	keys ports.Fingerprinter,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *App {
	return &App{
		kernels:   NewKernelProvider(factory),
		cache:     partcache.New(keys),
		keys:      keys,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Cache exposes the part cache, mainly for inspection in tests.
func (a *App) Cache() *partcache.Cache {
	return a.cache
}

// Handle processes req and emits its responses. Exactly one terminal response
// is emitted; failures become an error response.
func (a *App) Handle(ctx context.Context, req domain.Request, emit Emitter) {
	resp, err := a.handle(ctx, req, emit)
	if err != nil {
		a.logger.Error(zerr.With(err, "request", req.ID))
		emit(domain.ErrorResponse(req.ID, err))
		return
	}
	emit(resp)
}

func (a *App) handle(ctx context.Context, req domain.Request, emit Emitter) (domain.Response, error) {
	switch req.Type {
	case domain.RequestPing:
		return domain.Response{ID: req.ID, Type: domain.ResponsePong}, nil
	case domain.RequestBuild:
		return a.build(ctx, req, emit)
	case domain.RequestExport:
		return a.export(ctx, req, emit)
	default:
		return domain.Response{}, zerr.With(domain.ErrUnknownRequest, "type", string(req.Type))
	}
}

// build returns the merged preview mesh of the enabled parts. Nothing enabled
// yields an empty mesh.
func (a *App) build(ctx context.Context, req domain.Request, emit Emitter) (domain.Response, error) {
	enabled := req.Parts.Enabled()
	a.logger.Info(fmt.Sprintf("build %s: %d part(s)", req.ID, len(enabled)))
	if len(enabled) == 0 {
		return meshResponse(req.ID, domain.MergeMeshes()), nil
	}

	kernel, err := a.kernels.Get(ctx)
	if err != nil {
		return domain.Response{}, err
	}
	builder := parts.NewBuilder(kernel, a.logger)
	tol := tolerance(req.Tolerance)

	meshes := make([]*domain.Mesh, 0, len(enabled))
	for _, part := range enabled {
		var mesh *domain.Mesh
		_, err := a.part(ctx, req, part, builder, emit, func(ctx context.Context) error {
			var err error
			mesh, err = a.cache.Mesh(ctx, part, tol, kernel.Triangulate)
			return err
		})
		if err != nil {
			return domain.Response{}, err
		}
		meshes = append(meshes, mesh)
	}

	merged := domain.MergeMeshes(meshes...)
	emit(domain.StatusResponse(req.ID, fmt.Sprintf("meshed %d triangles", merged.TriangleCount())))
	return meshResponse(req.ID, merged), nil
}

// export fuses the enabled parts and serializes the result.
func (a *App) export(ctx context.Context, req domain.Request, emit Emitter) (domain.Response, error) {
	enabled := req.Parts.Enabled()
	if len(enabled) == 0 {
		return domain.Response{}, domain.ErrNothingEnabled
	}
	format := req.Format
	if format == "" {
		format = domain.FormatSTL
	}
	a.logger.Info(fmt.Sprintf("export %s: %d part(s) as %s", req.ID, len(enabled), format))

	kernel, err := a.kernels.Get(ctx)
	if err != nil {
		return domain.Response{}, err
	}
	caps := kernel.Capabilities()
	if !caps.Supports(format) {
		err := zerr.With(domain.ErrMissingCapability, "kernel", caps.Name)
		return domain.Response{}, zerr.With(err, "format", string(format))
	}

	builder := parts.NewBuilder(kernel, a.logger)
	var fused ports.Solid
	for _, part := range enabled {
		entry, err := a.part(ctx, req, part, builder, emit, nil)
		if err != nil {
			return domain.Response{}, err
		}
		if fused == nil {
			fused = entry.Solid
			continue
		}
		if fused, err = kernel.Fuse(ctx, fused, entry.Solid); err != nil {
			return domain.Response{}, zerr.With(zerr.Wrap(err, "failed to fuse parts"), "part", string(part))
		}
	}

	data, err := kernel.Export(ctx, fused, format)
	if err != nil {
		return domain.Response{}, zerr.With(zerr.Wrap(err, "failed to export"), "format", string(format))
	}

	filename := req.Filename
	if filename == "" {
		filename = "forma." + format.Extension()
	}
	emit(domain.StatusResponse(req.ID, fmt.Sprintf("exported %d bytes", len(data))))
	return domain.Response{
		ID:   req.ID,
		Type: domain.ResponseFile,
		File: &domain.File{Filename: filename, MimeType: format.MimeType(), Bytes: data},
	}, nil
}

// part brings one part's cached solid up to date inside its own telemetry
// vertex, then runs after (if any) inside the same vertex.
func (a *App) part(
	ctx context.Context,
	req domain.Request,
	part domain.PartName,
	builder *parts.Builder,
	emit Emitter,
	after func(context.Context) error,
) (entry partcache.Entry, err error) {
	ctx, vertex := a.telemetry.Record(ctx, string(part))
	defer func() { vertex.Complete(err) }()

	fp, err := a.keys.Fingerprint(part, req.Params)
	if err != nil {
		return partcache.Entry{}, err
	}
	entry, status, err := a.cache.GetOrBuild(ctx, part, fp, req.Parts[part], func(ctx context.Context) (ports.Solid, error) {
		emit(domain.StatusResponse(req.ID, fmt.Sprintf("%s: %s", part, domain.PartStatusBuilding)))
		return builder.Build(ctx, part, req.Params)
	})
	if err != nil {
		return partcache.Entry{}, err
	}
	if status.Reused() {
		vertex.Cached()
	}
	vertex.Log(domain.LogLevelInfo, string(status))
	emit(domain.StatusResponse(req.ID, fmt.Sprintf("%s: %s", part, status)))

	if after != nil {
		err = after(ctx)
	}
	return entry, err
}

func meshResponse(id string, mesh *domain.Mesh) domain.Response {
	return domain.Response{ID: id, Type: domain.ResponseMesh, Mesh: mesh}
}

// tolerance applies the default to an unset (zero) tolerance. Anything else,
// negative values included, is clamped and quantized.
func tolerance(t float64) float64 {
	if t == 0 {
		t = domain.DefaultTolerance
	}
	return domain.QuantizeTolerance(t)
}
