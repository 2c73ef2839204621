package dataset

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BaSui01/commuteflow/types"
)

// DBStore serves commuter records from a relational table through GORM.
// The caller owns the *gorm.DB and its driver choice; see the database
// section of the service config for the SQLite/PostgreSQL/MySQL switch.
type DBStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewDBStore migrates the commuters table and returns a store on top of it.
func NewDBStore(db *gorm.DB, logger *zap.Logger) (*DBStore, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if err := db.AutoMigrate(&types.CommuterRecord{}); err != nil {
		return nil, fmt.Errorf("migrating commuters table: %w", err)
	}
	return &DBStore{
		db:     db,
		logger: logger.With(zap.String("component", "db_store")),
	}, nil
}

// All returns every record sorted by commuter ID.
func (s *DBStore) All(ctx context.Context) ([]types.CommuterRecord, error) {
	var records []types.CommuterRecord
	if err := s.db.WithContext(ctx).Order("commuter_id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("listing commuters: %w", err)
	}
	return records, nil
}

// Profile returns the record for the given commuter ID.
func (s *DBStore) Profile(ctx context.Context, commuterID string) (types.CommuterRecord, error) {
	var rec types.CommuterRecord
	err := s.db.WithContext(ctx).Where("commuter_id = ?", commuterID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.CommuterRecord{}, types.NewError(types.ErrProfileNotFound,
			fmt.Sprintf("commuter %s not found", commuterID))
	}
	if err != nil {
		return types.CommuterRecord{}, fmt.Errorf("loading commuter %s: %w", commuterID, err)
	}
	return rec, nil
}

// Count returns the number of records in the table.
func (s *DBStore) Count(ctx context.Context) (int, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&types.CommuterRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("counting commuters: %w", err)
	}
	return int(n), nil
}

// Import upserts the given records, keyed by commuter ID. It is used at
// startup to seed the table from the dataset CSV.
func (s *DBStore) Import(ctx context.Context, records []types.CommuterRecord) error {
	if len(records) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "commuter_id"}},
		UpdateAll: true,
	}).Create(&records).Error
	if err != nil {
		return fmt.Errorf("importing %d commuters: %w", len(records), err)
	}

	s.logger.Info("dataset imported into database", zap.Int("records", len(records)))
	return nil
}

// Ping reports whether the underlying database connection is healthy.
func (s *DBStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
