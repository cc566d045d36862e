package noop

import (
	"context"

	"go.uber.org/zap"

	"mpass/internal/port"
)

type noopArchive struct {
	logger *zap.Logger
}

// NewNoopArchive creates a SnapshotArchive that only logs what it would
// have stored.
func NewNoopArchive(logger *zap.Logger) port.SnapshotArchive {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &noopArchive{logger: logger}
}

func (a *noopArchive) Archive(_ context.Context, input port.SnapshotInput) error {
	a.logger.Debug("[NOOP ARCHIVE] snapshot discarded",
		zap.String("request_id", input.RequestID),
		zap.String("package", input.RequestingPackage),
		zap.String("reason", input.Reason),
		zap.Int("windows", len(input.Windows)),
	)
	return nil
}
