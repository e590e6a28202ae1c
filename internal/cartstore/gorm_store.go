package cartstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cozythreads/storefront/internal/models"
)

// GormStore keeps carts in the cart_records table, one blob per session key.
type GormStore struct {
	DB  *gorm.DB
	Log *slog.Logger
}

func NewGormStore(db *gorm.DB, log *slog.Logger) *GormStore {
	return &GormStore{DB: db, Log: log}
}

// Load reads the stored blob for key. A missing row is an empty cart.
// A corrupt blob is logged and treated as empty, never propagated.
func (s *GormStore) Load(ctx context.Context, key string) ([]models.CartEntry, error) {
	var rec models.CartRecord
	err := s.DB.WithContext(ctx).First(&rec, "session_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []models.CartEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cartstore: load %q: %w", key, err)
	}

	entries, err := decodeEntries(rec.Payload)
	if err != nil {
		s.logger().Warn("discarding corrupt cart blob", "session_key", key, "error", err)
		return []models.CartEntry{}, nil
	}
	return entries, nil
}

func (s *GormStore) Save(ctx context.Context, key string, entries []models.CartEntry) error {
	payload, err := encodeEntries(normalize(entries))
	if err != nil {
		return fmt.Errorf("cartstore: encode %q: %w", key, err)
	}
	rec := models.CartRecord{SessionKey: key, Payload: payload}
	err = s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("cartstore: save %q: %w", key, err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	if err := s.DB.WithContext(ctx).Delete(&models.CartRecord{}, "session_key = ?", key).Error; err != nil {
		return fmt.Errorf("cartstore: delete %q: %w", key, err)
	}
	return nil
}

func (s *GormStore) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}
