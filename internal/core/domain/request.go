package domain

import (
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// RequestType tags an inbound message.
type RequestType string

const (
	// RequestPing asks for a pong.
	RequestPing RequestType = "ping"
	// RequestBuild asks for a merged preview mesh of the enabled parts.
	RequestBuild RequestType = "build"
	// RequestExport asks for the enabled parts fused and serialized to a file.
	RequestExport RequestType = "export"
)

// ResponseType tags an outbound message.
type ResponseType string

const (
	// ResponsePong answers a ping.
	ResponsePong ResponseType = "pong"
	// ResponseStatus reports progress. It is never terminal.
	ResponseStatus ResponseType = "status"
	// ResponseMesh carries the merged preview mesh of a build.
	ResponseMesh ResponseType = "mesh"
	// ResponseFile carries an exported file.
	ResponseFile ResponseType = "file"
	// ResponseError reports a failed request.
	ResponseError ResponseType = "error"
)

// Terminal reports whether the response ends its request.
func (t ResponseType) Terminal() bool {
	return t != ResponseStatus
}

// ExportFormat selects the serialization of an export.
type ExportFormat string

const (
	// FormatSTL is the binary triangulated mesh format.
	FormatSTL ExportFormat = "stl"
	// FormatSTEP is the boundary-representation exchange format.
	FormatSTEP ExportFormat = "step"
)

// ParseExportFormat validates s as an export format.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(s)) {
	case FormatSTL:
		return FormatSTL, nil
	case FormatSTEP, "stp":
		return FormatSTEP, nil
	default:
		return "", zerr.With(ErrUnsupportedFormat, "format", s)
	}
}

// MimeType returns the media type of the format.
func (f ExportFormat) MimeType() string {
	switch f {
	case FormatSTL:
		return "model/stl"
	case FormatSTEP:
		return "model/step"
	default:
		return "application/octet-stream"
	}
}

// Extension returns the conventional file extension, without the dot.
func (f ExportFormat) Extension() string {
	if f == FormatSTEP {
		return "step"
	}
	return string(f)
}

// Request is one inbound message after decoding.
type Request struct {
	ID        string
	Type      RequestType
	Params    Params
	Tolerance float64
	Parts     PartSet
	Format    ExportFormat
	Filename  string
}

// File is an exported artifact.
type File struct {
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
	Bytes    []byte `json:"bytes"`
}

// ArtifactInfo describes one written export.
type ArtifactInfo struct {
	Filename string    `json:"filename"`
	Path     string    `json:"path"`
	MimeType string    `json:"mimeType"`
	Size     int       `json:"size"`
	Digest   string    `json:"digest"`
	Written  time.Time `json:"written"`
}

// Response is one outbound message.
type Response struct {
	ID   string
	Type ResponseType
	Text string
	Mesh *Mesh
	File *File
}

// StatusResponse builds a progress response.
func StatusResponse(id, text string) Response {
	return Response{ID: id, Type: ResponseStatus, Text: text}
}

// ErrorResponse builds a terminal error response.
func ErrorResponse(id string, err error) Response {
	return Response{ID: id, Type: ResponseError, Text: err.Error()}
}
