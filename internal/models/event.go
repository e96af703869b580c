package models

import (
	"time"

	"datamint/internal/uuid"

	"gorm.io/gorm"
)

// Event is an append-only record of marketplace operations (mint, purchase,
// unlist) for auditing. Payload holds the operation-specific details as JSON,
// e.g. the ordered (owner, amount) payout list of a purchase.
type Event struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Actor     string    `gorm:"not null" json:"actor"`
	Action    string    `gorm:"not null" json:"action"`
	DatasetID uint      `gorm:"index" json:"dataset_id"`
	IPAddress string    `json:"ip_address,omitempty"`
	Payload   string    `json:"payload,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New()
	}
	return nil
}
