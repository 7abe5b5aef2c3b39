package shared

import "time"

// BaseEntity holds the fields every persisted entity shares. IDs are
// database-assigned auto-increment values, so records keep a stable
// creation order.
type BaseEntity struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity stamps the timestamps; the ID is assigned on first save.
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{CreatedAt: now, UpdatedAt: now}
}
