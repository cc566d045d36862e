package port

import (
	"context"
	"time"

	"mpass/internal/domain"
)

// SnapshotInput is a redacted field tree kept for heuristics tuning.
type SnapshotInput struct {
	RequestID         string
	RequestingPackage string
	Reason            string
	CapturedAt        time.Time
	Windows           []*domain.FieldNode
}

// SnapshotArchive stores redacted field trees.
type SnapshotArchive interface {
	Archive(ctx context.Context, input SnapshotInput) error
}
