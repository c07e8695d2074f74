package integrity

import (
	"context"

	"vessel-manager/core/storage"
	"vessel-manager/feature/integrity/checks"
	"vessel-manager/feature/vessel/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	bucket  string
	folders []string
	db      *gorm.DB
	logger  *zap.Logger
}

// NewService creates a new integrity service. folders lists the candidate
// folders the bucket must hold; db may be nil when no database is configured.
func NewService(client storage.Client, bucket string, folders []string, db *gorm.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:  client,
		bucket:  bucket,
		folders: folders,
		db:      db,
		logger:  logger,
	}
}

// Folders returns the folders the structure check looks for.
func (s *Service) Folders() []string {
	return s.folders
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket, s.folders)
}

// EnsureBucket creates the candidate bucket when it is absent.
func (s *Service) EnsureBucket(ctx context.Context) error {
	return checks.EnsureBucket(ctx, s.client, s.bucket, s.logger)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckSchema compares the vessel tables against their models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchemaIntegrity(s.db, models.Vessel{}, models.EnhancementLog{})
}
