package progrock

import (
	"fmt"
	"io"

	"github.com/vito/progrock"
	"go.trai.ch/forma/internal/core/domain"
)

// Vertex is one part build on the progrock tape.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

// Log writes msg to the vertex. Warnings and errors go to its stderr stream.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	var w io.Writer = v.vertex.Stdout()
	if level >= domain.LogLevelWarn {
		w = v.vertex.Stderr()
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", level, msg)
}

// Complete finishes the vertex, failed when err is non-nil.
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}

// Cached marks the part as served from the cache.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}
