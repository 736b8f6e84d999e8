// Package config loads design parameters from YAML files.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ParamsLoader over YAML files.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the params file at path. An empty path yields the defaults.
func (l *Loader) Load(path string) (domain.Params, error) {
	if path == "" {
		return domain.DefaultParams(), nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the user
	if err != nil {
		return domain.Params{}, zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", path)
	}

	p, err := Parse(data)
	if err != nil {
		return domain.Params{}, zerr.With(err, "path", path)
	}
	if l.logger != nil {
		l.logger.Info("loaded params from " + path)
	}
	return p, nil
}

// Parse decodes a params document over the defaults, applies its legacy keys
// and clamps the result.
func Parse(data []byte) (domain.Params, error) {
	f := File{Params: domain.DefaultParams()}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return domain.Params{}, errors.Join(domain.ErrConfigParseFailed, err)
	}

	if len(f.Legacy) > 0 {
		if err := f.Params.ApplyLegacy(f.Legacy); err != nil {
			return domain.Params{}, errors.Join(domain.ErrConfigParseFailed, err)
		}
	}
	return f.Params.Clamp(), nil
}

// Marshal renders p as a params document.
func Marshal(p domain.Params) ([]byte, error) {
	out, err := yaml.Marshal(File{Version: "1", Params: p})
	if err != nil {
		return nil, zerr.Wrap(err, "failed to marshal params")
	}
	return out, nil
}
