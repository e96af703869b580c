package models

import "time"

// Holding is the share-registry balance: how many units of a dataset an
// address holds. Every owner in a dataset's share set starts with exactly
// one unit at mint; a purchase moves all units to the buyer.
type Holding struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	DatasetID uint      `gorm:"not null;uniqueIndex:uq_holdings_dataset_owner" json:"dataset_id"`
	Owner     string    `gorm:"not null;uniqueIndex:uq_holdings_dataset_owner" json:"owner"`
	Units     int64     `gorm:"not null;default:0" json:"units"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
