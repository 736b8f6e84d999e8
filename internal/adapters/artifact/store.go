// Package artifact writes exported files and keeps a manifest of them.
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/core/ports"
	"go.trai.ch/zerr"
)

// ManifestName is the manifest file kept next to the exports.
const ManifestName = ".forma-exports.json"

var _ ports.ArtifactStore = (*Store)(nil)

// Store writes files into one directory and records each in a flat JSON manifest.
type Store struct {
	dir   string
	now   func() time.Time
	mu    sync.RWMutex
	cache map[string]domain.ArtifactInfo
}

// NewStore creates a Store rooted at dir, loading any existing manifest.
func NewStore(dir string) (*Store, error) {
	s := &Store{
		dir:   filepath.Clean(dir),
		now:   time.Now,
		cache: make(map[string]domain.ArtifactInfo),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) manifestPath() string {
	return filepath.Join(s.dir, ManifestName)
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.manifestPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read export manifest")
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, "failed to unmarshal export manifest")
	}
	return nil
}

// saveLocked writes the manifest; callers hold mu.
func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal export manifest")
	}
	//nolint:gosec // manifest holds no secrets
	if err := os.WriteFile(s.manifestPath(), data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write export manifest")
	}
	return nil
}

// Write stores file under its base name, replacing any earlier export of the
// same name, and returns the written path.
func (s *Store) Write(file domain.File) (string, error) {
	name := filepath.Base(file.Filename)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "", zerr.With(domain.ErrArtifactWriteFailed, "filename", file.Filename)
	}
	path := filepath.Join(s.dir, name)

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return "", zerr.With(errors.Join(domain.ErrArtifactWriteFailed, err), "dir", s.dir)
	}

	// Write beside the target and rename so readers never see a partial file.
	tmp := path + ".tmp"
	//nolint:gosec // exports are meant to be readable
	if err := os.WriteFile(tmp, file.Bytes, 0o644); err != nil {
		return "", zerr.With(errors.Join(domain.ErrArtifactWriteFailed, err), "path", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", zerr.With(errors.Join(domain.ErrArtifactWriteFailed, err), "path", path)
	}

	info := domain.ArtifactInfo{
		Filename: name,
		Path:     path,
		MimeType: file.MimeType,
		Size:     len(file.Bytes),
		Digest:   fmt.Sprintf("%016x", xxhash.Sum64(file.Bytes)),
		Written:  s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[name] = info
	if err := s.saveLocked(); err != nil {
		return path, err
	}
	return path, nil
}

// Get returns the manifest entry for filename, or nil when none exists.
func (s *Store) Get(filename string) *domain.ArtifactInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.cache[filepath.Base(filename)]
	if !ok {
		return nil
	}
	return &info
}
