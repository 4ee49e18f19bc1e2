package sqlstore

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MrSnakeDoc/shorty/internal/domain"
)

// linkRecord is the persisted row shape of a domain.Link.
type linkRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:text;not null;index:idx_links_user_id"`
	URL       string    `gorm:"type:text;not null"`
	ShortCode string    `gorm:"size:20;not null;uniqueIndex:idx_links_short_code"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
}

func (linkRecord) TableName() string {
	return "links"
}

func (m *linkRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}

func (m *linkRecord) toDomain() *domain.Link {
	return &domain.Link{
		ID:        m.ID.String(),
		UserID:    m.UserID,
		URL:       m.URL,
		ShortCode: m.ShortCode,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
