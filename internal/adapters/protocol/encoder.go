package protocol

import (
	"encoding/json"
	"io"
	"sync"

	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/zerr"
)

// Encoder writes one response per line. It is safe for concurrent use.
type Encoder struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewEncoder creates an Encoder on w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: json.NewEncoder(w)}
}

// Encode writes resp followed by a newline.
func (e *Encoder) Encode(resp domain.Response) error {
	w := wireResponse{
		ID:   resp.ID,
		Type: string(resp.Type),
		Text: resp.Text,
	}
	switch resp.Type {
	case domain.ResponseMesh:
		w.Mesh = resp.Mesh
		if w.Mesh == nil {
			w.Mesh = domain.MergeMeshes()
		}
	case domain.ResponseFile:
		w.File = resp.File
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enc.Encode(w); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to encode response"), "type", string(resp.Type))
	}
	return nil
}
