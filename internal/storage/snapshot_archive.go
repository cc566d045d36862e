// Package storage persists diagnostic field-tree snapshots.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/google/uuid"

	"mpass/internal/domain"
	"mpass/internal/port"
)

// snapshotDocument is the stored JSON layout of one snapshot.
type snapshotDocument struct {
	RequestID         string              `json:"request_id"`
	RequestingPackage string              `json:"requesting_package"`
	Reason            string              `json:"reason"`
	CapturedAt        string              `json:"captured_at"`
	Windows           []*domain.FieldNode `json:"windows"`
}

type objectSnapshotArchive struct {
	store  port.ObjectStorage
	bucket string
	prefix string
}

// NewSnapshotArchive creates a SnapshotArchive that writes one JSON object per
// snapshot under prefix/YYYY/MM/DD/.
func NewSnapshotArchive(store port.ObjectStorage, bucket, prefix string) port.SnapshotArchive {
	return &objectSnapshotArchive{store: store, bucket: bucket, prefix: prefix}
}

func (a *objectSnapshotArchive) Archive(ctx context.Context, input port.SnapshotInput) error {
	body, err := json.Marshal(snapshotDocument{
		RequestID:         input.RequestID,
		RequestingPackage: input.RequestingPackage,
		Reason:            input.Reason,
		CapturedAt:        input.CapturedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Windows:           input.Windows,
	})
	if err != nil {
		return fmt.Errorf("storage.Archive: %w: %w", domain.ErrArchiveFailed, err)
	}

	_, err = a.store.Upload(ctx, port.UploadInput{
		Bucket:      a.bucket,
		Key:         SnapshotKey(a.prefix, input),
		Body:        bytes.NewReader(body),
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("storage.Archive: %w: %w", domain.ErrArchiveFailed, err)
	}
	return nil
}

// SnapshotKey returns the object key for a snapshot. A missing request id is
// replaced by a random one.
func SnapshotKey(prefix string, input port.SnapshotInput) string {
	id := input.RequestID
	if id == "" {
		id = uuid.NewString()
	}
	return path.Join(prefix, input.CapturedAt.UTC().Format("2006/01/02"), id+".json")
}
