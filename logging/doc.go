// Package logging provides a minimal logging interface and adapters for Roundtable.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the engine and responders use for observability. This
// package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//   - RoundtableLogger with contextual helpers (component, run id) and
//     domain-specific helpers for turns and model calls
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "text", false)
//	eng := engine.New(table, engine.WithLogger(logger))
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available.
package logging
