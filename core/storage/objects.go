package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
)

// ErrObjectNotFound is returned when a key does not exist in the bucket.
var ErrObjectNotFound = errors.New("object not found")

// IsNotFound reports whether err means the object or key is missing.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrObjectNotFound) {
		return true
	}
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == 404
}

// ReadJSON downloads key and decodes it into v. Missing keys are reported as
// ErrObjectNotFound.
func ReadJSON(ctx context.Context, client Client, bucket, key string, v any) error {
	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		if IsNotFound(err) {
			return fmt.Errorf("%s: %w", key, ErrObjectNotFound)
		}
		return fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		// minio only reports a missing key once the body is read
		if IsNotFound(err) {
			return fmt.Errorf("%s: %w", key, ErrObjectNotFound)
		}
		return fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// JoinKey joins path segments with "/" and drops empty ones.
func JoinKey(parts ...string) string {
	clean := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p != "" {
			clean = append(clean, p)
		}
	}
	return strings.Join(clean, "/")
}

// FolderExists reports whether at least one object sits under prefix.
func FolderExists(ctx context.Context, client Client, bucket, prefix string) bool {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: false, MaxKeys: 1}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err == nil {
			return true
		}
	}
	return false
}
