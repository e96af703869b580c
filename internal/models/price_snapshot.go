package models

import (
	"time"

	"datamint/internal/uuid"

	"gorm.io/gorm"
)

// PriceSnapshot is a historical price entry for a dataset, recorded by the
// snapshot job. Immutable time-series data — no soft deletes.
type PriceSnapshot struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	DatasetID  uint      `gorm:"not null;index" json:"dataset_id"`
	Price      int64     `gorm:"type:bigint;not null" json:"price"`
	RecordedAt time.Time `gorm:"not null" json:"recorded_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (s *PriceSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New()
	}
	return nil
}
