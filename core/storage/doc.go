// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so that both AWS S3
// and self-hosted MinIO work, and so tests can use core/storage/mocks.
// The vessel manager keeps candidate drops (provider exports, one JSON object
// per vessel identifier) in the configured bucket.
//
// # Helpers
//
//   - ReadJSON: downloads and decodes an object, mapping missing keys to ErrObjectNotFound.
//   - FolderExists: checks that a prefix holds at least one object.
//   - JoinKey: builds object keys from path segments.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	var raw map[string]any
//	err = storage.ReadJSON(ctx, client, cfg.Storage.Bucket, "candidates/marinetraffic/imo/9074729.json", &raw)
package storage
