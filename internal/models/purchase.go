package models

import (
	"time"

	"datamint/internal/uuid"

	"gorm.io/gorm"
)

// Purchase records a completed settlement for a (buyer, dataset) pair.
// The unique index is the has-purchased flag: a buyer can purchase a given
// dataset at most once. Rows are insertion-ordered by CreatedAt, giving the
// buyer's purchase history. Immutable once written.
type Purchase struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	DatasetID   uint      `gorm:"not null;uniqueIndex:uq_purchases_buyer_dataset" json:"dataset_id"`
	Buyer       string    `gorm:"not null;uniqueIndex:uq_purchases_buyer_dataset;index" json:"buyer"`
	PricePaid   int64     `gorm:"not null" json:"price_paid"`
	Distributed int64     `gorm:"not null" json:"distributed"`
	CreatedAt   time.Time `json:"created_at"`

	Dataset Dataset `gorm:"foreignKey:DatasetID" json:"dataset,omitempty"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New()
	}
	return nil
}
