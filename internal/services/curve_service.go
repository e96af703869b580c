package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"datamint/internal/curve"
	apperrors "datamint/internal/errors"
	"datamint/internal/models"
)

// curveService owns the per-dataset pricing state and applies the
// bonding-curve transitions.
type curveService struct {
	db *gorm.DB
}

// NewCurveService creates a new CurveServicer.
func NewCurveService(db *gorm.DB) CurveServicer {
	return &curveService{db: db}
}

// InitCurve writes the initial curve state for a dataset. The initial price
// is set exactly once: a second call for the same dataset fails with
// CURVE_ALREADY_INITIALIZED and leaves the existing state untouched.
func (s *curveService) InitCurve(tx *gorm.DB, datasetID uint, initialPrice int64, now time.Time) error {
	if initialPrice <= 0 || initialPrice > curve.MaxPrice {
		return apperrors.ErrInvalidPrice
	}

	var existing models.CurveState
	err := tx.Where("dataset_id = ?", datasetID).First(&existing).Error
	if err == nil {
		return apperrors.ErrCurveAlreadyInitialized
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	state := &models.CurveState{
		DatasetID:      datasetID,
		InitialPrice:   initialPrice,
		BasePrice:      initialPrice,
		PurchaseCount:  0,
		LastPurchaseAt: now.Unix(),
	}
	if err := tx.Create(state).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetState returns the stored curve state for a dataset.
func (s *curveService) GetState(datasetID uint) (*models.CurveState, error) {
	var state models.CurveState
	if err := s.db.Where("dataset_id = ?", datasetID).First(&state).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCurveNotInitialized
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &state, nil
}

// CurrentPrice returns the depreciated price at now. Pure read: stored
// state is never mutated by a price query.
func (s *curveService) CurrentPrice(datasetID uint, now time.Time) (int64, error) {
	return s.PriceAt(s.db, datasetID, now)
}

// PriceAt computes the depreciated price using the given database handle,
// so settlement can re-read the price inside its own transaction.
func (s *curveService) PriceAt(tx *gorm.DB, datasetID uint, now time.Time) (int64, error) {
	var state models.CurveState
	if err := tx.Where("dataset_id = ?", datasetID).First(&state).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.ErrCurveNotInitialized
		}
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return curve.PriceAt(state.BasePrice, state.LastPurchaseAt, now.Unix()), nil
}

// RecordPurchase applies the purchase transition: depreciate the base price
// for the weeks elapsed, then mark the depreciated price up by 1.5x.
// Returns the depreciated price, which is the price the buyer pays.
// Depreciation before markup; the order is fixed. The new base is clamped
// to [1, curve.MaxPrice], so a run of back-to-back purchases pins the
// price at the ceiling instead of overflowing, and a fully depreciated
// curve restarts from one micro-unit.
func (s *curveService) RecordPurchase(tx *gorm.DB, datasetID uint, now time.Time) (int64, error) {
	var state models.CurveState
	if err := tx.Where("dataset_id = ?", datasetID).First(&state).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.ErrCurveNotInitialized
		}
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	ts := now.Unix()
	pricePaid := curve.PriceAt(state.BasePrice, state.LastPurchaseAt, ts)

	updates := map[string]interface{}{
		"base_price":       curve.NextBase(pricePaid),
		"last_purchase_at": ts,
		"purchase_count":   state.PurchaseCount + 1,
	}
	if err := tx.Model(&state).Updates(updates).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return pricePaid, nil
}
