package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "datamint/internal/errors"
	"datamint/internal/models"
)

// totalBasisPoints is the full ownership of a dataset (100.00%).
const totalBasisPoints int64 = 10000

// ledgerService owns the ownership-share records and the unit share registry.
type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB) LedgerServicer {
	return &ledgerService{db: db}
}

// ValidateShares checks a requested share set. Pure validation, no mutation:
// the set must be non-empty, every percentage positive, every owner address
// non-empty, and the percentages must sum to exactly 10000 basis points.
func (s *ledgerService) ValidateShares(shares []ShareInput) error {
	if len(shares) == 0 {
		return apperrors.ErrEmptyShareSet
	}

	var sum int64
	for _, share := range shares {
		if share.Owner == "" {
			return apperrors.ErrInvalidOwner
		}
		if share.BasisPoints <= 0 {
			return apperrors.ErrZeroPercentage
		}
		sum += share.BasisPoints
	}

	if sum != totalBasisPoints {
		return apperrors.ErrPercentageMismatch
	}
	return nil
}

// SharesOf returns the dataset's shares in mint order. The order is
// significant: payouts are emitted in this order and shares[0] is the
// primary owner.
func (s *ledgerService) SharesOf(datasetID uint) ([]models.OwnershipShare, error) {
	var shares []models.OwnershipShare
	if err := s.db.Where("dataset_id = ?", datasetID).
		Order("position ASC").Find(&shares).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(shares) == 0 {
		return nil, apperrors.ErrDatasetNotFound
	}
	return shares, nil
}

// UnitsOf returns how many units of the dataset the owner holds.
func (s *ledgerService) UnitsOf(datasetID uint, owner string) (int64, error) {
	var holding models.Holding
	err := s.db.Where("dataset_id = ? AND owner = ?", datasetID, owner).First(&holding).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return holding.Units, nil
}

// CreateShares writes the validated share set and opens one registry unit
// per owner. Called from the mint transaction only.
func (s *ledgerService) CreateShares(tx *gorm.DB, datasetID uint, shares []ShareInput) error {
	if err := s.ValidateShares(shares); err != nil {
		return err
	}

	for i, share := range shares {
		record := &models.OwnershipShare{
			DatasetID:   datasetID,
			Owner:       share.Owner,
			BasisPoints: share.BasisPoints,
			Position:    i,
		}
		if err := tx.Create(record).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		holding := &models.Holding{
			DatasetID: datasetID,
			Owner:     share.Owner,
			Units:     1,
		}
		if err := tx.Create(holding).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}

// TransferAll makes the buyer the sole owner of the dataset: each prior
// owner's registry unit is retired, the buyer gets one unit, and the share
// set collapses to a single 10000-basis-point share held by the buyer. The
// guarded decrement is the stale-state check: if any expected owner no
// longer holds a unit, the transfer fails with OWNER_HAS_NO_UNITS and the
// enclosing transaction rolls the rest back.
func (s *ledgerService) TransferAll(tx *gorm.DB, datasetID uint, fromOwners []string, to string) error {
	for _, owner := range fromOwners {
		result := tx.Model(&models.Holding{}).
			Where("dataset_id = ? AND owner = ? AND units >= 1", datasetID, owner).
			Update("units", gorm.Expr("units - 1"))
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrOwnerHasNoUnits
		}
	}

	var buyerHolding models.Holding
	err := tx.Where("dataset_id = ? AND owner = ?", datasetID, to).First(&buyerHolding).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		buyerHolding = models.Holding{DatasetID: datasetID, Owner: to, Units: 1}
		if err := tx.Create(&buyerHolding).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	case err != nil:
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	default:
		if err := tx.Model(&buyerHolding).
			Update("units", gorm.Expr("units + 1")).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	// Rewrite the share set: the buyer now owns everything, so the next
	// sale pays the buyer.
	if err := tx.Where("dataset_id = ?", datasetID).
		Delete(&models.OwnershipShare{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	share := &models.OwnershipShare{
		DatasetID:   datasetID,
		Owner:       to,
		BasisPoints: totalBasisPoints,
		Position:    0,
	}
	if err := tx.Create(share).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
