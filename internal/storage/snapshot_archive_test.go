package storage_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mpass/internal/domain"
	"mpass/internal/port"
	"mpass/internal/storage"
	"mpass/mocks"
)

var capturedAt = time.Date(2026, 3, 7, 10, 30, 0, 0, time.UTC)

func TestSnapshotArchive_Archive(t *testing.T) {
	store := new(mocks.MockObjectStorage)
	archive := storage.NewSnapshotArchive(store, "snapshots-bucket", "diag")

	var uploaded port.UploadInput
	var body []byte
	store.On("Upload", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			uploaded = args.Get(1).(port.UploadInput)
			body, _ = io.ReadAll(uploaded.Body)
		}).
		Return(&port.UploadOutput{Location: "s3://x"}, nil)

	err := archive.Archive(context.Background(), port.SnapshotInput{
		RequestID:         "req-1",
		RequestingPackage: "com.example.bank",
		Reason:            "no_login_fields",
		CapturedAt:        capturedAt,
		Windows:           []*domain.FieldNode{{ID: "root", IDEntry: "main"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "snapshots-bucket", uploaded.Bucket)
	assert.Equal(t, "diag/2026/03/07/req-1.json", uploaded.Key)
	assert.Equal(t, "application/json", uploaded.ContentType)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, "com.example.bank", doc["requesting_package"])
	assert.Equal(t, "no_login_fields", doc["reason"])
	assert.Len(t, doc["windows"], 1)
	store.AssertExpectations(t)
}

func TestSnapshotArchive_UploadFailure(t *testing.T) {
	store := new(mocks.MockObjectStorage)
	archive := storage.NewSnapshotArchive(store, "b", "p")
	store.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("denied"))

	err := archive.Archive(context.Background(), port.SnapshotInput{RequestID: "r", CapturedAt: capturedAt})

	assert.ErrorIs(t, err, domain.ErrArchiveFailed)
}

func TestSnapshotKey_GeneratesIDWhenMissing(t *testing.T) {
	key := storage.SnapshotKey("p", port.SnapshotInput{CapturedAt: capturedAt})
	assert.Regexp(t, `^p/2026/03/07/[0-9a-f-]{36}\.json$`, key)
}
