package services

import (
	"time"

	"gorm.io/gorm"

	"datamint/internal/models"
	"datamint/internal/pagination"
)

// ShareInput is one requested ownership share at mint time.
type ShareInput struct {
	Owner       string
	BasisPoints int64
}

// Payout is one (owner, amount) pair actually paid during settlement.
type Payout struct {
	Owner  string `json:"owner"`
	Amount int64  `json:"amount"`
}

// Receipt summarizes a completed purchase.
type Receipt struct {
	PurchaseID  string    `json:"purchase_id"`
	DatasetID   uint      `json:"dataset_id"`
	Buyer       string    `json:"buyer"`
	PricePaid   int64     `json:"price_paid"`
	Payouts     []Payout  `json:"payouts"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// DatasetFilter holds optional filter parameters for listing datasets.
type DatasetFilter struct {
	Tag             string
	IncludeUnlisted bool
}

// DatasetServicer defines the contract for the dataset registry.
type DatasetServicer interface {
	Mint(name, description string, tags []string, shares []ShareInput, initialPrice int64) (*models.Dataset, error)
	ListDatasets(page pagination.PageRequest, filter DatasetFilter) (*pagination.PageResponse[models.Dataset], error)
	GetDataset(datasetID uint) (*models.Dataset, error)
	Unlist(datasetID uint) (*models.Dataset, error)
}

// CurveServicer defines the contract for bonding-curve pricing state.
// InitCurve and RecordPurchase take the enclosing transaction handle and are
// reserved for the mint and settlement paths; no HTTP route reaches them
// directly.
type CurveServicer interface {
	InitCurve(tx *gorm.DB, datasetID uint, initialPrice int64, now time.Time) error
	GetState(datasetID uint) (*models.CurveState, error)
	CurrentPrice(datasetID uint, now time.Time) (int64, error)
	PriceAt(tx *gorm.DB, datasetID uint, now time.Time) (int64, error)
	RecordPurchase(tx *gorm.DB, datasetID uint, now time.Time) (int64, error)
}

// LedgerServicer defines the contract for fractional ownership shares and
// the unit share registry.
type LedgerServicer interface {
	ValidateShares(shares []ShareInput) error
	SharesOf(datasetID uint) ([]models.OwnershipShare, error)
	UnitsOf(datasetID uint, owner string) (int64, error)
	CreateShares(tx *gorm.DB, datasetID uint, shares []ShareInput) error
	TransferAll(tx *gorm.DB, datasetID uint, fromOwners []string, to string) error
}

// PaymentServicer defines the contract for the internal settlement ledger.
// Pull and Push take the enclosing transaction handle so that a failed
// settlement rolls every movement back.
type PaymentServicer interface {
	Deposit(address string, amount int64) (*models.PaymentAccount, error)
	Balance(address string) (int64, error)
	Approve(owner, spender string, amount int64) (*models.Allowance, error)
	AllowanceOf(owner, spender string) (int64, error)
	Pull(tx *gorm.DB, from, spender string, amount int64) error
	Push(tx *gorm.DB, from, to string, amount int64) error
}

// SettlementServicer defines the contract for the purchase state machine.
type SettlementServicer interface {
	Purchase(datasetID uint, buyer, clientIP string) (*Receipt, error)
	BuyerPurchases(buyer string, page pagination.PageRequest) (*pagination.PageResponse[models.Purchase], error)
	HasPurchased(datasetID uint, buyer string) (bool, error)
}

// SnapshotServicer defines the contract for historical price snapshots.
type SnapshotServicer interface {
	CaptureAll(recordedAt time.Time) (int, error)
	History(datasetID uint, page pagination.PageRequest) (*pagination.PageResponse[models.PriceSnapshot], error)
}

// EventServicer defines the contract for the marketplace audit trail.
type EventServicer interface {
	Log(actor, action string, datasetID uint, ipAddress string, payload map[string]any)
}
