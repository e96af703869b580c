package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "datamint/internal/errors"
	"datamint/internal/models"
	"datamint/internal/pagination"
)

// snapshotService records historical prices for listed datasets.
type snapshotService struct {
	db    *gorm.DB
	curve CurveServicer
}

// NewSnapshotService creates a new SnapshotServicer.
func NewSnapshotService(db *gorm.DB, curve CurveServicer) SnapshotServicer {
	return &snapshotService{db: db, curve: curve}
}

// CaptureAll records the current price of every listed dataset at
// recordedAt. Returns the number of snapshots written. A dataset whose
// curve is missing is skipped rather than failing the whole sweep.
func (s *snapshotService) CaptureAll(recordedAt time.Time) (int, error) {
	var datasetIDs []uint
	if err := s.db.Model(&models.Dataset{}).
		Where("listed = ?", true).
		Pluck("id", &datasetIDs).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	count := 0
	for _, id := range datasetIDs {
		price, err := s.curve.CurrentPrice(id, recordedAt)
		if err != nil {
			continue
		}

		snapshot := &models.PriceSnapshot{
			DatasetID:  id,
			Price:      price,
			RecordedAt: recordedAt,
		}
		if err := s.db.Create(snapshot).Error; err != nil {
			return count, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		count++
	}

	return count, nil
}

// History returns a dataset's recorded prices, newest first.
func (s *snapshotService) History(datasetID uint, page pagination.PageRequest) (*pagination.PageResponse[models.PriceSnapshot], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.PriceSnapshot{}).Where("dataset_id = ?", datasetID).
		Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var snapshots []models.PriceSnapshot
	if err := s.db.Where("dataset_id = ?", datasetID).Order("recorded_at DESC").
		Scopes(pagination.Paginate(page)).Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(snapshots, page.Page, page.PageSize, totalItems)
	return &result, nil
}
