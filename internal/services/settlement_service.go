package services

import (
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	apperrors "datamint/internal/errors"
	"datamint/internal/models"
	"datamint/internal/pagination"
)

// EscrowAddress is the payment account settlements flow through. Floor
// residuals of pro-rata splits stay here; they are bounded by
// (ownerCount - 1) micro-units per purchase and are never swept.
const EscrowAddress = "datamint:escrow"

// settlementService orchestrates purchases: price, payment, distribution,
// ownership transfer, curve transition, bookkeeping. One purchase per
// dataset at a time; everything mutating runs in a single transaction so a
// failure at any step leaves no partial state behind.
type settlementService struct {
	db       *gorm.DB
	curve    CurveServicer
	ledger   LedgerServicer
	payments PaymentServicer
	events   EventServicer

	mu    sync.Mutex
	locks map[uint]*sync.Mutex

	now func() time.Time
}

// NewSettlementService creates a new SettlementServicer.
func NewSettlementService(db *gorm.DB, curve CurveServicer, ledger LedgerServicer, payments PaymentServicer, events EventServicer) SettlementServicer {
	return &settlementService{
		db:       db,
		curve:    curve,
		ledger:   ledger,
		payments: payments,
		events:   events,
		locks:    make(map[uint]*sync.Mutex),
		now:      time.Now,
	}
}

// lockFor returns the mutex guarding purchases of a dataset.
func (s *settlementService) lockFor(datasetID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.locks[datasetID]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.locks[datasetID] = l
	return l
}

// Purchase executes the full settlement for (datasetID, buyer):
// pull the current price from the buyer into escrow, distribute pro-rata to
// the owners in share order, move every ownership unit to the buyer, record
// the curve transition, and write the purchase record. A concurrent or
// re-entrant purchase of the same dataset is rejected with
// PURCHASE_IN_PROGRESS instead of blocking, since a blocked re-entrant call
// would deadlock on its own lock.
func (s *settlementService) Purchase(datasetID uint, buyer, clientIP string) (*Receipt, error) {
	lock := s.lockFor(datasetID)
	if !lock.TryLock() {
		return nil, apperrors.ErrPurchaseInProgress
	}
	defer lock.Unlock()

	var dataset models.Dataset
	if err := s.db.First(&dataset, datasetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDatasetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !dataset.Listed {
		return nil, apperrors.ErrDatasetNotListed
	}

	purchased, err := s.HasPurchased(datasetID, buyer)
	if err != nil {
		return nil, err
	}
	if purchased {
		return nil, apperrors.ErrAlreadyPurchased
	}

	shares, err := s.ledger.SharesOf(datasetID)
	if err != nil {
		return nil, err
	}
	for _, share := range shares {
		if share.Owner == buyer {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Buyer already owns a share of this dataset")
		}
	}

	now := s.now()
	var purchase models.Purchase
	payouts := make([]Payout, 0, len(shares))

	err = s.db.Transaction(func(tx *gorm.DB) error {
		price, txErr := s.curve.PriceAt(tx, datasetID, now)
		if txErr != nil {
			return txErr
		}

		// Escrow the full payment before any distribution.
		if txErr := s.payments.Pull(tx, buyer, EscrowAddress, price); txErr != nil {
			return txErr
		}

		// Pro-rata distribution in share order, floor division per owner.
		// The residual stays in escrow.
		var distributed int64
		for _, share := range shares {
			amount := price * share.BasisPoints / totalBasisPoints
			if txErr := s.payments.Push(tx, EscrowAddress, share.Owner, amount); txErr != nil {
				return txErr
			}
			payouts = append(payouts, Payout{Owner: share.Owner, Amount: amount})
			distributed += amount
		}

		owners := make([]string, len(shares))
		for i, share := range shares {
			owners[i] = share.Owner
		}
		if txErr := s.ledger.TransferAll(tx, datasetID, owners, buyer); txErr != nil {
			return txErr
		}

		if _, txErr := s.curve.RecordPurchase(tx, datasetID, now); txErr != nil {
			return txErr
		}

		purchase = models.Purchase{
			DatasetID:   datasetID,
			Buyer:       buyer,
			PricePaid:   price,
			Distributed: distributed,
		}
		if txErr := tx.Create(&purchase).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
	if err != nil {
		payouts = nil
		return nil, err
	}

	s.events.Log(buyer, "PURCHASE", datasetID, clientIP, map[string]any{
		"purchase_id": purchase.ID,
		"price_paid":  purchase.PricePaid,
		"payouts":     payouts,
	})

	return &Receipt{
		PurchaseID:  purchase.ID,
		DatasetID:   datasetID,
		Buyer:       buyer,
		PricePaid:   purchase.PricePaid,
		Payouts:     payouts,
		PurchasedAt: purchase.CreatedAt,
	}, nil
}

// BuyerPurchases returns the buyer's purchases in insertion order.
func (s *settlementService) BuyerPurchases(buyer string, page pagination.PageRequest) (*pagination.PageResponse[models.Purchase], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Purchase{}).Where("buyer = ?", buyer)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var purchases []models.Purchase
	if err := s.db.Preload("Dataset").Where("buyer = ?", buyer).
		Order("created_at ASC").
		Scopes(pagination.Paginate(page)).Find(&purchases).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(purchases, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// HasPurchased reports whether the buyer has already purchased the dataset.
func (s *settlementService) HasPurchased(datasetID uint, buyer string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Purchase{}).
		Where("dataset_id = ? AND buyer = ?", datasetID, buyer).
		Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}
