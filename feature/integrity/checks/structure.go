package checks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"vessel-manager/core/reconcile"
	"vessel-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// RequiredFolders lists the candidate folders the bucket must hold: the
// prefix itself and one folder per enabled source.
func RequiredFolders(prefix string, sources []reconcile.Source) []string {
	folders := []string{storage.JoinKey(prefix)}
	for _, src := range sources {
		folders = append(folders, storage.JoinKey(prefix, string(src)))
	}
	return folders
}

// ErrBucketMissing is returned by CheckStructure when the bucket itself is absent.
var ErrBucketMissing = errors.New("bucket does not exist")

// CheckStructure returns the folders that hold no object yet. When the bucket
// is absent every folder is reported missing along with ErrBucketMissing.
func CheckStructure(ctx context.Context, client storage.Client, bucket string, folders []string) ([]string, error) {
	missing := []string{}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return append(missing, folders...), fmt.Errorf("%w: %s", ErrBucketMissing, bucket)
	}

	for _, folder := range folders {
		if !storage.FolderExists(ctx, client, bucket, folder) {
			missing = append(missing, folder)
		}
	}

	return missing, nil
}

// EnsureBucket creates the bucket unless it already exists.
func EnsureBucket(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		logger.Error("Failed to create bucket", zap.String("bucket", bucket), zap.Error(err))
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	logger.Info("Created missing bucket", zap.String("bucket", bucket))
	return nil
}

// FixStructure creates the missing folders as empty marker objects.
func FixStructure(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger, missing []string) error {
	for _, folder := range missing {
		folderPath := folder
		if !strings.HasSuffix(folderPath, "/") {
			folderPath += "/"
		}

		_, err := client.PutObject(ctx, bucket, folderPath, bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{})
		if err != nil {
			logger.Error("Failed to create folder", zap.String("folder", folder), zap.Error(err))
			return fmt.Errorf("failed to create folder %s: %w", folder, err)
		}
		logger.Info("Created missing folder", zap.String("folder", folder))
	}
	return nil
}
