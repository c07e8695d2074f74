package vessel

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"vessel-manager/core/database"
	"vessel-manager/core/reconcile"
	"vessel-manager/feature/vessel/models"

	"gorm.io/gorm"
)

// ErrVesselNotFound is returned when no vessel has the requested id.
var ErrVesselNotFound = errors.New("vessel not found")

// Store persists vessels and their enhancement history.
type Store struct {
	db      *gorm.DB
	catalog *reconcile.Catalog
}

// NewStore creates a store over db. A nil catalog means the default catalog.
func NewStore(db *gorm.DB, catalog *reconcile.Catalog) *Store {
	if catalog == nil {
		catalog = reconcile.DefaultCatalog()
	}
	return &Store{db: db, catalog: catalog}
}

// Migrate creates or updates the vessel tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&models.Vessel{}, &models.EnhancementLog{}); err != nil {
		return fmt.Errorf("failed to migrate vessel tables: %w", err)
	}
	return nil
}

// Get loads one vessel.
func (s *Store) Get(ctx context.Context, id uint) (*models.Vessel, error) {
	var v models.Vessel
	if err := s.db.WithContext(ctx).First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrVesselNotFound, id)
		}
		return nil, fmt.Errorf("failed to load vessel %d: %w", id, err)
	}
	return &v, nil
}

// Create inserts a vessel and sets its id.
func (s *Store) Create(ctx context.Context, v *models.Vessel) error {
	if err := s.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("failed to create vessel: %w", err)
	}
	return nil
}

// ApplyPatch writes canonical fields onto a vessel and records an audit row,
// in one transaction. Identifiers that already hold a value cannot be
// changed, and unknown fields reject the whole patch.
func (s *Store) ApplyPatch(ctx context.Context, id uint, fields reconcile.Fields, source reconcile.Source, actorID string) error {
	if len(fields) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var v models.Vessel
		if err := tx.First(&v, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %d", ErrVesselNotFound, id)
			}
			return fmt.Errorf("failed to load vessel %d: %w", id, err)
		}

		current := s.catalog.Snapshot(&v.Vessel)
		names := make([]string, 0, len(fields))
		for name, value := range fields {
			spec, ok := s.catalog.Lookup(name)
			if !ok {
				return fmt.Errorf("%w: %s", reconcile.ErrUnknownField, name)
			}
			if reconcile.IsIdentifier(name) {
				if prev, set := current[name]; set && !reconcile.Equal(prev, value, spec.Type) {
					return fmt.Errorf("%w: %s", reconcile.ErrIdentifierLocked, name)
				}
			}
			names = append(names, string(name))
		}
		sort.Strings(names)

		if err := s.catalog.Apply(&v.Vessel, fields); err != nil {
			return err
		}

		if err := tx.Save(&v).Error; err != nil {
			return fmt.Errorf("failed to save vessel %d: %w", id, err)
		}

		entry := models.EnhancementLog{
			VesselID:      id,
			Source:        string(source),
			FieldsUpdated: names,
			ActorID:       actorID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to log enhancement for vessel %d: %w", id, err)
		}
		return nil
	})
}

// History returns a vessel's applied patches, newest first.
func (s *Store) History(ctx context.Context, id uint) ([]models.EnhancementLog, error) {
	var logs []models.EnhancementLog
	err := s.db.WithContext(ctx).
		Where("vessel_id = ?", id).
		Order("created_at DESC").Order("id DESC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load history for vessel %d: %w", id, err)
	}
	return logs, nil
}

// Candidates returns vessels that carry an IMO or MMSI number but miss
// length, builder or year built, lowest id first.
func (s *Store) Candidates(ctx context.Context, limit int) ([]models.Vessel, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []models.Vessel
	err := s.db.WithContext(ctx).
		Where("(COALESCE(imo_number, '') <> '' OR COALESCE(mmsi_number, '') <> '')").
		Where("(COALESCE(length_overall, 0) = 0 OR COALESCE(builder, '') = '' OR COALESCE(year_built, 0) = 0)").
		Order("id ASC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list enhancement candidates: %w", err)
	}
	return out, nil
}

// CheckSchema returns catalog fields that have no column in the vessels table.
func (s *Store) CheckSchema() ([]string, error) {
	expected := make([]string, 0, len(s.catalog.Names()))
	for _, name := range s.catalog.Names() {
		expected = append(expected, string(name))
	}
	return database.MissingColumns(s.db, models.Vessel{}.TableName(), expected)
}

// Writer binds the store to one vessel so a plan can be applied to it.
func (s *Store) Writer(id uint) reconcile.PatchWriter {
	return patchWriter{store: s, id: id}
}

type patchWriter struct {
	store *Store
	id    uint
}

func (w patchWriter) ApplyPatch(ctx context.Context, fields reconcile.Fields, source reconcile.Source, actorID string) error {
	return w.store.ApplyPatch(ctx, w.id, fields, source, actorID)
}
