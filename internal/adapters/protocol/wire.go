// Package protocol encodes requests and responses as JSON lines.
//
// A request line looks like
//
//	{"id":"r1","type":"build","params":{"path":{"length":210}},"tolerance":0.2,
//	 "parts":{"base":{"enabled":true},"toe":{"enabled":true,"freeze":true}}}
//
// Params overlay the defaults; "legacy" accepts the historic flat keys.
// Omitting "parts" enables every part.
package protocol

import (
	"encoding/json"

	"go.trai.ch/forma/internal/core/domain"
)

type wireRequest struct {
	ID        string                      `json:"id,omitempty"`
	Type      string                      `json:"type"`
	Params    json.RawMessage             `json:"params,omitempty"`
	Legacy    map[string]float64          `json:"legacy,omitempty"`
	Tolerance *float64                    `json:"tolerance,omitempty"`
	Parts     map[string]domain.PartFlags `json:"parts,omitempty"`
	Format    string                      `json:"format,omitempty"`
	Filename  string                      `json:"filename,omitempty"`
}

// wireResponse flattens the mesh or file payload into the message object.
type wireResponse struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	*domain.Mesh
	*domain.File
}
