// Package logging builds slog loggers with stream separation: records up to
// Info go to one writer (normally stdout) and Warn and above to another
// (normally stderr), both gated by a single shared level that the CLI
// verbosity flag adjusts at runtime.
package logging
