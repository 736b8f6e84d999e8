package domain

import "strings"

// PartStatus represents the outcome of one part within a build request.
type PartStatus string

const (
	// PartStatusPending indicates the part has not been visited yet.
	PartStatusPending PartStatus = "pending"
	// PartStatusBuilding indicates the part pipeline is running.
	PartStatusBuilding PartStatus = "building"
	// PartStatusBuilt indicates the part solid was rebuilt.
	PartStatusBuilt PartStatus = "built"
	// PartStatusCached indicates the cached solid matched the fingerprint.
	PartStatusCached PartStatus = "cached"
	// PartStatusFrozen indicates the cached solid was returned without comparing fingerprints.
	PartStatusFrozen PartStatus = "frozen"
	// PartStatusFailed indicates the part pipeline failed.
	PartStatusFailed PartStatus = "failed"
	// PartStatusDisabled indicates the part was excluded by its enable flag.
	PartStatusDisabled PartStatus = "disabled"
)

// IsTerminal checks if a status is a terminal state.
func (s PartStatus) IsTerminal() bool {
	switch s {
	case PartStatusBuilt, PartStatusCached, PartStatusFrozen, PartStatusFailed, PartStatusDisabled:
		return true
	default:
		return false
	}
}

// Reused reports whether the status means the cached solid was handed back unchanged.
func (s PartStatus) Reused() bool {
	return s == PartStatusCached || s == PartStatusFrozen
}

// NormalizePartStatus converts a string to a PartStatus, defaulting to pending if unknown.
func NormalizePartStatus(s string) PartStatus {
	switch strings.ToLower(s) {
	case string(PartStatusBuilding):
		return PartStatusBuilding
	case string(PartStatusBuilt):
		return PartStatusBuilt
	case string(PartStatusCached):
		return PartStatusCached
	case string(PartStatusFrozen):
		return PartStatusFrozen
	case string(PartStatusFailed):
		return PartStatusFailed
	case string(PartStatusDisabled):
		return PartStatusDisabled
	default:
		return PartStatusPending
	}
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
