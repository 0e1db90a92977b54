// Package logger defines the logging contract consumed by the core
// packages. Implementations live under infra/logger.
package logger

// Logger exposes leveled logging. Debugw carries structured fields,
// used for per-stage planning diagnostics; the remaining methods are
// printf-style.
type Logger interface {
	Debugf(format string, args ...any)
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
