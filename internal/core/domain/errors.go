package domain

import "go.trai.ch/zerr"

var (
	// ErrDegeneratePath is returned when path parameters sample to fewer than four distinct points.
	ErrDegeneratePath = zerr.New("degenerate path")

	// ErrUnknownPart is returned when a part name is not one of base, toe or heel.
	ErrUnknownPart = zerr.New("unknown part")

	// ErrUnknownParam is returned when a legacy parameter key is not in the key table.
	ErrUnknownParam = zerr.New("unknown parameter")

	// ErrNothingEnabled is returned when an export request has every part disabled.
	ErrNothingEnabled = zerr.New("no parts enabled for export")

	// ErrUnknownRequest is returned when a request type is not ping, build or export.
	ErrUnknownRequest = zerr.New("unknown request type")

	// ErrSuperseded is reported for a queued build dropped in favour of a newer one.
	ErrSuperseded = zerr.New("build superseded by a newer request")

	// ErrRequestFailed marks a command whose request ended in an error response
	// that was already reported.
	ErrRequestFailed = zerr.New("request failed")

	// ErrQueueClosed is returned when a request is submitted after the queue shut down.
	ErrQueueClosed = zerr.New("request queue closed")

	// ErrRequestPanicked is reported when a request handler panics.
	ErrRequestPanicked = zerr.New("request handler panicked")

	// ErrKernelInit is returned when the geometry kernel cannot be initialized.
	ErrKernelInit = zerr.New("failed to initialize geometry kernel")

	// ErrKernelOperation is returned when a kernel solid, mesh or export call fails.
	ErrKernelOperation = zerr.New("kernel operation failed")

	// ErrMissingCapability is returned when the kernel lacks an operation a request needs.
	ErrMissingCapability = zerr.New("kernel capability missing")

	// ErrUnsupportedFormat is returned when an export format is not available.
	ErrUnsupportedFormat = zerr.New("unsupported export format")

	// ErrUnsupportedCut is returned when the kernel cannot subtract the given tool.
	ErrUnsupportedCut = zerr.New("unsupported cut")

	// ErrFilletFailed is returned when a fillet cannot be applied at the requested radius.
	ErrFilletFailed = zerr.New("fillet failed")

	// ErrPartNotBuilt is returned when a mesh is requested for a part with no cached solid.
	ErrPartNotBuilt = zerr.New("part has no cached solid")

	// ErrEmptySketch is returned when a sketch has fewer than three distinct points.
	ErrEmptySketch = zerr.New("sketch needs at least three points")

	// ErrConfigReadFailed is returned when a params file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read params file")

	// ErrConfigParseFailed is returned when a params file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse params file")

	// ErrArtifactWriteFailed is returned when an exported file cannot be written.
	ErrArtifactWriteFailed = zerr.New("failed to write artifact")

	// ErrProtocolDecode is returned when a request line is not valid JSON.
	ErrProtocolDecode = zerr.New("failed to decode request")
	// ErrLineTooLong is returned for a request line longer than the decoder accepts.
	ErrLineTooLong = zerr.New("request line too long")
)
