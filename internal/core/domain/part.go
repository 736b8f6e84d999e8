package domain

import (
	"math"

	"go.trai.ch/zerr"
)

// PartName identifies one logical part of the product.
type PartName string

const (
	// PartBase is the base plate.
	PartBase PartName = "base"
	// PartToe is the contoured shell swept along the leading edge.
	PartToe PartName = "toe"
	// PartHeel is the heel shell.
	PartHeel PartName = "heel"
)

// AllParts lists every part in build order.
func AllParts() []PartName {
	return []PartName{PartBase, PartToe, PartHeel}
}

// ParsePartName validates s as a part name.
func ParsePartName(s string) (PartName, error) {
	switch PartName(s) {
	case PartBase, PartToe, PartHeel:
		return PartName(s), nil
	default:
		return "", zerr.With(ErrUnknownPart, "part", s)
	}
}

// PartFlags controls how one part participates in a request.
type PartFlags struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Freeze returns an existing cached solid without comparing fingerprints.
	Freeze bool `json:"freeze,omitempty" yaml:"freeze"`
	// Force rebuilds the solid even when the fingerprint matches.
	Force bool `json:"force,omitempty" yaml:"force"`
}

// PartSet maps each part to its flags. Missing parts are disabled.
type PartSet map[PartName]PartFlags

// AllEnabled returns a PartSet enabling every part with default flags.
func AllEnabled() PartSet {
	set := make(PartSet, 3)
	for _, p := range AllParts() {
		set[p] = PartFlags{Enabled: true}
	}
	return set
}

// Enabled returns the enabled parts in build order.
func (s PartSet) Enabled() []PartName {
	var out []PartName
	for _, p := range AllParts() {
		if s[p].Enabled {
			out = append(out, p)
		}
	}
	return out
}

// Fingerprint is the deterministic cache key of one part's relevant parameters.
type Fingerprint struct {
	Part PartName
	// Key is the canonical encoding of the allow-listed parameters.
	Key string
	// Digest is a short hash of Key used for comparisons and mesh keys.
	Digest string
}

// Equal reports whether both fingerprints describe the same parameters.
func (f Fingerprint) Equal(o Fingerprint) bool {
	return f.Part == o.Part && f.Digest == o.Digest && f.Key == o.Key
}

// Tolerance bounds for meshing.
const (
	MinTolerance = 0.05
	MaxTolerance = 10.0
	// DefaultTolerance applies when a request names none.
	DefaultTolerance = 0.1
)

// QuantizeTolerance clamps a mesh deviation tolerance and rounds it to three decimals.
func QuantizeTolerance(t float64) float64 {
	t = Clamp(t, MinTolerance, MaxTolerance)
	return math.Round(t*1000) / 1000
}
