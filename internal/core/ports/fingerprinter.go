package ports

import "go.trai.ch/forma/internal/core/domain"

// Fingerprinter derives cache keys from parameters.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type Fingerprinter interface {
	// Fingerprint encodes the allow-listed parameters of part.
	Fingerprint(part domain.PartName, params domain.Params) (domain.Fingerprint, error)
	// MeshKey combines a solid fingerprint with a quantized mesh tolerance.
	MeshKey(fp domain.Fingerprint, tolerance float64) string
}
