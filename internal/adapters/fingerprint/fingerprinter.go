// Package fingerprint derives part cache keys from design parameters.
package fingerprint

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fingerprinter = (*Fingerprinter)(nil)

// Fingerprinter encodes the allow-listed keys of a part and hashes them with xxhash.
type Fingerprinter struct{}

// New creates a new Fingerprinter.
func New() *Fingerprinter {
	return &Fingerprinter{}
}

// Fingerprint returns the canonical key of part's parameters after clamping.
// The key reads "forma/v1|<part>|name=value;..." with names sorted.
func (f *Fingerprinter) Fingerprint(part domain.PartName, params domain.Params) (domain.Fingerprint, error) {
	names, err := domain.PartKeys(part)
	if err != nil {
		return domain.Fingerprint{}, err
	}
	names = slices.Clone(names)
	slices.Sort(names)

	clamped := params.Clamp()

	var b strings.Builder
	b.WriteString(domain.ParamKeysVersion)
	b.WriteByte('|')
	b.WriteString(string(part))
	b.WriteByte('|')
	for i, name := range names {
		v, err := clamped.Value(name)
		if err != nil {
			return domain.Fingerprint{}, zerr.With(zerr.Wrap(err, "failed to encode fingerprint"), "part", string(part))
		}
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}

	key := b.String()
	return domain.Fingerprint{
		Part:   part,
		Key:    key,
		Digest: fmt.Sprintf("%016x", xxhash.Sum64String(key)),
	}, nil
}

// MeshKey joins the solid digest with the quantized tolerance.
func (f *Fingerprinter) MeshKey(fp domain.Fingerprint, tolerance float64) string {
	return fmt.Sprintf("%s@%.3f", fp.Digest, domain.QuantizeTolerance(tolerance))
}
