package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"datamint/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewAddress returns a unique wallet address for tests.
func NewAddress(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, nextID())
}

// ShareSpec describes one ownership share for dataset fixtures.
type ShareSpec struct {
	Owner       string
	BasisPoints int64
}

// CreateTestDataset inserts a listed dataset with the given shares, one
// registry unit per owner, and an initialized curve whose last-purchase
// timestamp is mintedAt.
func CreateTestDataset(t *testing.T, db *gorm.DB, shares []ShareSpec, initialPrice int64, mintedAt time.Time) *models.Dataset {
	t.Helper()

	dataset := &models.Dataset{
		Name:        fmt.Sprintf("dataset-%d", nextID()),
		Description: "test dataset",
		Tags:        models.TagList{"test"},
		Listed:      true,
	}
	if err := db.Create(dataset).Error; err != nil {
		t.Fatalf("failed to create test dataset: %v", err)
	}

	for i, spec := range shares {
		share := &models.OwnershipShare{
			DatasetID:   dataset.ID,
			Owner:       spec.Owner,
			BasisPoints: spec.BasisPoints,
			Position:    i,
		}
		if err := db.Create(share).Error; err != nil {
			t.Fatalf("failed to create test share: %v", err)
		}
		holding := &models.Holding{DatasetID: dataset.ID, Owner: spec.Owner, Units: 1}
		if err := db.Create(holding).Error; err != nil {
			t.Fatalf("failed to create test holding: %v", err)
		}
	}

	state := &models.CurveState{
		DatasetID:      dataset.ID,
		InitialPrice:   initialPrice,
		BasePrice:      initialPrice,
		PurchaseCount:  0,
		LastPurchaseAt: mintedAt.Unix(),
	}
	if err := db.Create(state).Error; err != nil {
		t.Fatalf("failed to create test curve state: %v", err)
	}

	return dataset
}

// FundAccount credits a payment account, creating it if needed.
func FundAccount(t *testing.T, db *gorm.DB, address string, amount int64) {
	t.Helper()

	account := &models.PaymentAccount{Address: address, Balance: amount}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to fund test account %s: %v", address, err)
	}
}

// ApproveSpend sets an allowance from owner to spender.
func ApproveSpend(t *testing.T, db *gorm.DB, owner, spender string, amount int64) {
	t.Helper()

	allowance := &models.Allowance{Owner: owner, Spender: spender, Amount: amount}
	if err := db.Create(allowance).Error; err != nil {
		t.Fatalf("failed to create test allowance: %v", err)
	}
}
