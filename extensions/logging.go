// Package extensions collects mixin.Extension implementations useful while
// developing or operating a composed scope: structured logging and a
// treedrawer-backed tree dump for debugging composition problems.
package extensions

import (
	"log/slog"
	"time"

	"github.com/go-mixin/mixin"
)

// Logging logs every resolve at Debug level on success, Error on failure,
// using log/slog the way the teacher's own debug extension does.
type Logging struct {
	mixin.BaseExtension
	logger *slog.Logger
}

// NewLogging builds a Logging extension. A nil logger falls back to
// slog.Default().
func NewLogging(logger *slog.Logger) *Logging {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logging{BaseExtension: mixin.NewBaseExtension("logging"), logger: logger}
}

func (l *Logging) Wrap(next func() (any, error), op mixin.Operation) (any, error) {
	start := time.Now()
	result, err := next()
	elapsed := time.Since(start)
	path := append(op.Scope.Path(), op.Name)
	if err != nil {
		l.logger.Error("resolve failed", "path", path, "elapsed", elapsed, "error", err)
	} else {
		l.logger.Debug("resolved", "path", path, "elapsed", elapsed)
	}
	return result, err
}

func (l *Logging) OnError(err error, op mixin.Operation) {
	l.logger.Error("resolve error", "path", append(op.Scope.Path(), op.Name), "error", err)
}
