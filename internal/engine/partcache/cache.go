// Package partcache keeps the last solid and preview mesh of every part so
// unchanged parts are not rebuilt.
package partcache

import (
	"context"
	"sync"

	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/core/ports"
	"go.trai.ch/zerr"
)

// Entry is the cached state of one part.
type Entry struct {
	Fingerprint domain.Fingerprint
	Solid       ports.Solid
	Mesh        *domain.Mesh
	MeshKey     string
}

// BuildFunc constructs a part's solid.
type BuildFunc func(ctx context.Context) (ports.Solid, error)

// TriangulateFunc meshes a solid at tolerance tol.
type TriangulateFunc func(ctx context.Context, solid ports.Solid, tol float64) (*domain.Mesh, error)

// Stats counts cache outcomes since creation.
type Stats struct {
	Hits       int
	Frozen     int
	Builds     int
	MeshHits   int
	MeshBuilds int
}

type slot struct {
	mu    sync.Mutex
	entry *Entry
}

// Cache holds one slot per part. Slots are created on first use.
type Cache struct {
	keys ports.Fingerprinter

	mu    sync.Mutex
	slots map[domain.PartName]*slot
	stats Stats
}

// New creates an empty cache. keys derives mesh keys from fingerprints.
func New(keys ports.Fingerprinter) *Cache {
	return &Cache{
		keys:  keys,
		slots: make(map[domain.PartName]*slot),
	}
}

func (c *Cache) slot(part domain.PartName) *slot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.slots[part]
	if !ok {
		s = &slot{}
		c.slots[part] = s
	}
	return s
}

func (c *Cache) count(f func(*Stats)) {
	c.mu.Lock()
	f(&c.stats)
	c.mu.Unlock()
}

// GetOrBuild returns the cached solid of part when its fingerprint matches fp
// and builds it otherwise. Freeze returns any cached solid without comparing
// fingerprints and Force always rebuilds. A failed build keeps the previous
// entry.
func (c *Cache) GetOrBuild(
	ctx context.Context,
	part domain.PartName,
	fp domain.Fingerprint,
	flags domain.PartFlags,
	build BuildFunc,
) (Entry, domain.PartStatus, error) {
	s := c.slot(part)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entry != nil && !flags.Force {
		if flags.Freeze {
			c.count(func(st *Stats) { st.Frozen++ })
			return *s.entry, domain.PartStatusFrozen, nil
		}
		if s.entry.Fingerprint.Equal(fp) {
			c.count(func(st *Stats) { st.Hits++ })
			return *s.entry, domain.PartStatusCached, nil
		}
	}

	solid, err := build(ctx)
	if err != nil {
		return Entry{}, domain.PartStatusFailed, zerr.With(zerr.Wrap(err, "failed to build part"), "part", string(part))
	}
	s.entry = &Entry{Fingerprint: fp, Solid: solid}
	c.count(func(st *Stats) { st.Builds++ })
	return *s.entry, domain.PartStatusBuilt, nil
}

// Mesh returns the preview mesh of part's cached solid at tolerance tol,
// triangulating only when the solid or the quantized tolerance changed.
func (c *Cache) Mesh(ctx context.Context, part domain.PartName, tol float64, triangulate TriangulateFunc) (*domain.Mesh, error) {
	s := c.slot(part)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entry == nil {
		return nil, zerr.With(domain.ErrPartNotBuilt, "part", string(part))
	}

	tol = domain.QuantizeTolerance(tol)
	key := c.keys.MeshKey(s.entry.Fingerprint, tol)
	if s.entry.Mesh != nil && s.entry.MeshKey == key {
		c.count(func(st *Stats) { st.MeshHits++ })
		return s.entry.Mesh, nil
	}

	mesh, err := triangulate(ctx, s.entry.Solid, tol)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to mesh part"), "part", string(part))
	}
	s.entry.Mesh = mesh
	s.entry.MeshKey = key
	c.count(func(st *Stats) { st.MeshBuilds++ })
	return mesh, nil
}

// Lookup returns the cached entry of part, if any.
func (c *Cache) Lookup(part domain.PartName) (Entry, bool) {
	s := c.slot(part)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entry == nil {
		return Entry{}, false
	}
	return *s.entry, true
}

// Invalidate drops the cached entry of part.
func (c *Cache) Invalidate(part domain.PartName) {
	s := c.slot(part)
	s.mu.Lock()
	s.entry = nil
	s.mu.Unlock()
}

// Snapshot returns the fingerprints of every cached part.
func (c *Cache) Snapshot() map[domain.PartName]domain.Fingerprint {
	out := make(map[domain.PartName]domain.Fingerprint)
	for _, part := range domain.AllParts() {
		if e, ok := c.Lookup(part); ok {
			out[part] = e.Fingerprint
		}
	}
	return out
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
