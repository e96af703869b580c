package models

import "time"

// PaymentAccount is a balance in the internal settlement ledger, keyed by
// wallet address. Balances are int64 micro-units of the settlement currency.
type PaymentAccount struct {
	Address   string    `gorm:"primaryKey" json:"address"`
	Balance   int64     `gorm:"not null;default:0" json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Allowance authorizes a spender to pull up to Amount micro-units from the
// owner's payment account. Pulls debit the allowance along with the balance.
type Allowance struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Owner     string    `gorm:"not null;uniqueIndex:uq_allowances_owner_spender" json:"owner"`
	Spender   string    `gorm:"not null;uniqueIndex:uq_allowances_owner_spender" json:"spender"`
	Amount    int64     `gorm:"not null;default:0" json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
