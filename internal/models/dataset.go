package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TagList stores a dataset's tags as a JSON array in a single text column.
type TagList []string

// Value implements driver.Valuer.
func (t TagList) Value() (driver.Value, error) {
	if len(t) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (t *TagList) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("cannot scan %T into TagList", value)
	}
}

// Dataset represents a tokenized dataset listed on the marketplace.
// The integer primary key doubles as the public dataset id; it is assigned
// inside the mint transaction and never reused. Name, description, and tags
// are immutable after mint.
type Dataset struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description,omitempty"`
	Tags        TagList   `gorm:"type:text" json:"tags,omitempty"`
	Listed      bool      `gorm:"not null;default:true" json:"listed"`

	Shares []OwnershipShare `gorm:"foreignKey:DatasetID" json:"shares,omitempty"`
}

// OwnershipShare is one fractional owner of a dataset, expressed in basis
// points (10000 = 100%). Position preserves mint order; the share at
// position 0 is the primary owner.
type OwnershipShare struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	DatasetID   uint   `gorm:"not null;uniqueIndex:uq_shares_dataset_owner" json:"dataset_id"`
	Owner       string `gorm:"not null;uniqueIndex:uq_shares_dataset_owner" json:"owner"`
	BasisPoints int64  `gorm:"not null" json:"basis_points"`
	Position    int    `gorm:"not null" json:"position"`
}
