package sqlstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MrSnakeDoc/shorty/internal/domain"
)

// LinkStore persists links with gorm.
type LinkStore struct {
	db *gorm.DB
}

// NewLinkStore creates a new link store
func NewLinkStore(db *gorm.DB) *LinkStore {
	return &LinkStore{
		db: db,
	}
}

// Insert stores link as a single atomic insert and fills in the server
// assigned ID and timestamps. A short code collision returns ErrDuplicateCode.
func (s *LinkStore) Insert(ctx context.Context, link *domain.Link) error {
	record := &linkRecord{
		UserID:    link.UserID,
		URL:       link.URL,
		ShortCode: link.ShortCode,
	}

	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return translateError(err)
	}

	*link = *record.toDomain()
	return nil
}

// GetByShortCode looks a link up by its short code.
func (s *LinkStore) GetByShortCode(ctx context.Context, code string) (*domain.Link, error) {
	var record linkRecord
	if err := s.db.WithContext(ctx).Where("short_code = ?", code).First(&record).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

// ListByUser returns the links owned by userID, newest first.
func (s *LinkStore) ListByUser(ctx context.Context, userID string) ([]*domain.Link, error) {
	var records []linkRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&records).Error
	if err != nil {
		return nil, translateError(err)
	}

	links := make([]*domain.Link, 0, len(records))
	for i := range records {
		links = append(links, records[i].toDomain())
	}
	return links, nil
}

// DeleteByID removes the link only if it belongs to userID.
// It returns the deleted link so callers can invalidate caches.
func (s *LinkStore) DeleteByID(ctx context.Context, id, userID string) (*domain.Link, error) {
	linkID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var deleted *domain.Link
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record linkRecord
		if err := tx.Where("id = ? AND user_id = ?", linkID, userID).First(&record).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND user_id = ?", linkID, userID).Delete(&linkRecord{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		deleted = record.toDomain()
		return nil
	})
	if err != nil {
		return nil, translateError(err)
	}
	return deleted, nil
}

// Count returns the number of stored links.
func (s *LinkStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&linkRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count links: %w", err)
	}
	return count, nil
}
