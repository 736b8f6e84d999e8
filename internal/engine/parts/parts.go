// Package parts runs the per-part pipelines that turn parameters into solids
// on a geometry kernel.
package parts

import (
	"context"
	"fmt"

	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/core/ports"
	"go.trai.ch/forma/internal/engine/geom"
	"go.trai.ch/zerr"
)

// Builder runs part pipelines against one kernel.
type Builder struct {
	kernel ports.Kernel
	logger ports.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(k ports.Kernel, logger ports.Logger) *Builder {
	return &Builder{kernel: k, logger: logger}
}

// Build dispatches to the pipeline of part. Parameters are clamped first.
func (b *Builder) Build(ctx context.Context, part domain.PartName, p domain.Params) (ports.Solid, error) {
	p = p.Clamp()
	switch part {
	case domain.PartBase:
		return b.Base(ctx, p)
	case domain.PartToe:
		return b.Toe(ctx, p)
	case domain.PartHeel:
		return b.Heel(ctx, p)
	default:
		return nil, zerr.With(domain.ErrUnknownPart, "part", string(part))
	}
}

func (b *Builder) warnf(format string, args ...any) {
	if b.logger != nil {
		b.logger.Warn(fmt.Sprintf(format, args...))
	}
}

// sides lists both halves of a mirrored shell.
var sides = [2]geom.Side{geom.Left, geom.Right}

// fuseAll folds solids into one with pairwise fuses.
func (b *Builder) fuseAll(ctx context.Context, solids []ports.Solid) (ports.Solid, error) {
	if len(solids) == 0 {
		return nil, zerr.New("nothing to fuse")
	}
	acc := solids[0]
	for _, s := range solids[1:] {
		var err error
		acc, err = b.kernel.Fuse(ctx, acc, s)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to fuse solids")
		}
	}
	return acc, nil
}
