package config

import "go.trai.ch/forma/internal/core/domain"

// File is the structure of a forma params file.
//
//	version: "1"
//	params:
//	  path: {length: 210}
//	  toe: {thickness: 3}
//	legacy:
//	  toe_b_end_x: 41
type File struct {
	Version string `yaml:"version"`
	// Params starts from the defaults; fields left out keep their default.
	Params domain.Params `yaml:"params"`
	// Legacy holds historic flat parameter names, applied after Params.
	Legacy map[string]float64 `yaml:"legacy"`
}
