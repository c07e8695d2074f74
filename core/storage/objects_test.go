package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"vessel-manager/core/storage"
	"vessel-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReadJSON(t *testing.T) {
	ctx := context.Background()

	t.Run("Decodes", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "candidates/lloyds/imo/1.json", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte(`{"beam": 8.5}`))), nil)

		var out map[string]any
		require.NoError(t, storage.ReadJSON(ctx, client, "bucket", "candidates/lloyds/imo/1.json", &out))
		assert.Equal(t, 8.5, out["beam"])
	})

	t.Run("Missing Key", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "missing.json", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404})

		var out map[string]any
		err := storage.ReadJSON(ctx, client, "bucket", "missing.json", &out)
		assert.ErrorIs(t, err, storage.ErrObjectNotFound)
	})

	t.Run("Transport Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "x.json", mock.Anything).
			Return(nil, errors.New("connection refused"))

		var out map[string]any
		err := storage.ReadJSON(ctx, client, "bucket", "x.json", &out)
		assert.Error(t, err)
		assert.False(t, errors.Is(err, storage.ErrObjectNotFound))
	})

	t.Run("Bad JSON", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "bad.json", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte(`{not json`))), nil)

		var out map[string]any
		err := storage.ReadJSON(ctx, client, "bucket", "bad.json", &out)
		assert.ErrorContains(t, err, "failed to decode")
	})
}

func TestJoinKey(t *testing.T) {
	assert.Equal(t, "candidates/marinetraffic/imo/9074729.json",
		storage.JoinKey("/candidates/", "marinetraffic", "", "imo", "9074729.json"))
}

func TestFolderExists(t *testing.T) {
	client := new(mocks.Client)
	present := make(chan minio.ObjectInfo, 1)
	present <- minio.ObjectInfo{Key: "candidates/x.json"}
	close(present)
	empty := make(chan minio.ObjectInfo)
	close(empty)

	client.On("ListObjects", mock.Anything, "bucket", mock.MatchedBy(func(o minio.ListObjectsOptions) bool {
		return o.Prefix == "candidates/"
	})).Return((<-chan minio.ObjectInfo)(present))
	client.On("ListObjects", mock.Anything, "bucket", mock.MatchedBy(func(o minio.ListObjectsOptions) bool {
		return o.Prefix == "archive/"
	})).Return((<-chan minio.ObjectInfo)(empty))

	assert.True(t, storage.FolderExists(context.Background(), client, "bucket", "candidates"))
	assert.False(t, storage.FolderExists(context.Background(), client, "bucket", "archive/"))
}
