package sources

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"vessel-manager/core/reconcile"
	"vessel-manager/core/storage"

	"go.uber.org/zap"
)

// StorageAdapter reads candidate drops from the bucket. Each provider export
// is stored as <prefix>/<source>/<identifier type>/<value>.json.
type StorageAdapter struct {
	client  storage.Client
	bucket  string
	prefix  string
	source  reconcile.Source
	mapper  Mapper
	catalog *reconcile.Catalog
	logger  *zap.Logger
}

// NewStorageAdapter creates an adapter for one source.
func NewStorageAdapter(client storage.Client, bucket, prefix string, source reconcile.Source, logger *zap.Logger) *StorageAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StorageAdapter{
		client:  client,
		bucket:  bucket,
		prefix:  prefix,
		source:  source,
		mapper:  MapperFor(source),
		catalog: reconcile.DefaultCatalog(),
		logger:  logger,
	}
}

// Source implements reconcile.SourceAdapter.
func (a *StorageAdapter) Source() reconcile.Source { return a.source }

// Key returns the object key for a lookup.
func (a *StorageAdapter) Key(idType reconcile.IdentifierType, value string) string {
	name := url.PathEscape(strings.TrimSpace(value)) + ".json"
	return storage.JoinKey(a.prefix, string(a.source), string(idType), name)
}

// Fetch implements reconcile.SourceAdapter.
func (a *StorageAdapter) Fetch(ctx context.Context, idType reconcile.IdentifierType, value string) (reconcile.Candidate, error) {
	if strings.TrimSpace(value) == "" {
		return reconcile.Candidate{}, fmt.Errorf("%w: empty %s", reconcile.ErrNoMatch, idType)
	}

	key := a.Key(idType, value)
	var raw map[string]any
	if err := storage.ReadJSON(ctx, a.client, a.bucket, key, &raw); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return reconcile.Candidate{}, fmt.Errorf("%w: %s %s=%s", reconcile.ErrNoMatch, a.source, idType, value)
		}
		return reconcile.Candidate{}, fmt.Errorf("%w: %s: %v", reconcile.ErrSourceUnavailable, a.source, err)
	}

	fields, dropped := a.catalog.Coerce(a.mapper(raw))
	if len(dropped) > 0 {
		a.logger.Debug("Dropped candidate fields",
			zap.String("source", string(a.source)),
			zap.String("key", key),
			zap.Strings("fields", dropped),
		)
	}
	if len(fields) == 0 {
		return reconcile.Candidate{}, fmt.Errorf("%w: %s record %s has no usable fields", reconcile.ErrNoMatch, a.source, key)
	}

	return reconcile.Candidate{Source: a.source, Fields: fields}, nil
}

// NewAdapters builds one storage adapter per source, each behind cache when
// cache is not nil.
func NewAdapters(client storage.Client, bucket, prefix string, sources []reconcile.Source, cache *reconcile.CandidateCache, logger *zap.Logger) []reconcile.SourceAdapter {
	out := make([]reconcile.SourceAdapter, 0, len(sources))
	for _, src := range sources {
		var a reconcile.SourceAdapter = NewStorageAdapter(client, bucket, prefix, src, logger)
		if cache != nil {
			a = reconcile.WithCache(a, cache)
		}
		out = append(out, a)
	}
	return out
}
