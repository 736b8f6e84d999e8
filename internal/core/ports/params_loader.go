package ports

import "go.trai.ch/forma/internal/core/domain"

// ParamsLoader defines the interface for loading design parameters.
//
//go:generate go run go.uber.org/mock/mockgen -source=params_loader.go -destination=mocks/mock_params_loader.go -package=mocks
type ParamsLoader interface {
	// Load reads parameters from path. An empty path yields the defaults.
	Load(path string) (domain.Params, error)
}
