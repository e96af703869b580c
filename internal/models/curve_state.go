package models

import "time"

// CurveState holds the per-dataset bonding-curve pricing state.
// InitialPrice is written exactly once at mint; BasePrice is the starting
// point for the next depreciation/markup cycle and is reset on every
// purchase. LastPurchaseAt is a unix timestamp in seconds and starts at
// curve-initialization time. All amounts are int64 micro-units of the
// settlement currency.
type CurveState struct {
	DatasetID      uint      `gorm:"primaryKey" json:"dataset_id"`
	InitialPrice   int64     `gorm:"not null" json:"initial_price"`
	BasePrice      int64     `gorm:"not null" json:"base_price"`
	PurchaseCount  int64     `gorm:"not null;default:0" json:"purchase_count"`
	LastPurchaseAt int64     `gorm:"not null" json:"last_purchase_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
