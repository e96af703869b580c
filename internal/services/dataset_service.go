package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "datamint/internal/errors"
	"datamint/internal/models"
	"datamint/internal/pagination"
)

// likeEscaper neutralizes LIKE metacharacters in user-supplied tag filters.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// datasetService handles dataset registry business logic.
type datasetService struct {
	db     *gorm.DB
	curve  CurveServicer
	ledger LedgerServicer
	now    func() time.Time
}

// NewDatasetService creates a new DatasetServicer.
func NewDatasetService(db *gorm.DB, curve CurveServicer, ledger LedgerServicer) DatasetServicer {
	return &datasetService{db: db, curve: curve, ledger: ledger, now: time.Now}
}

// Mint creates a dataset with its ownership shares, registry units, and
// initial curve state in one transaction. The autoincrement primary key
// assigned inside the transaction is the dataset id. If share validation or
// curve initialization fails, no dataset is created.
func (s *datasetService) Mint(name, description string, tags []string, shares []ShareInput, initialPrice int64) (*models.Dataset, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Dataset name is required")
	}
	if err := s.ledger.ValidateShares(shares); err != nil {
		return nil, err
	}

	dataset := &models.Dataset{
		Name:        name,
		Description: description,
		Tags:        models.TagList(tags),
		Listed:      true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Create(dataset).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		if txErr := s.ledger.CreateShares(tx, dataset.ID, shares); txErr != nil {
			return txErr
		}

		return s.curve.InitCurve(tx, dataset.ID, initialPrice, s.now())
	})
	if err != nil {
		return nil, err
	}

	return s.GetDataset(dataset.ID)
}

// ListDatasets returns a paginated list of datasets, listed-only unless the
// filter asks for everything, optionally narrowed to a tag.
func (s *datasetService) ListDatasets(page pagination.PageRequest, filter DatasetFilter) (*pagination.PageResponse[models.Dataset], error) {
	page.Defaults()

	query := s.db.Model(&models.Dataset{})
	if !filter.IncludeUnlisted {
		query = query.Where("listed = ?", true)
	}
	if filter.Tag != "" {
		// Tags are stored as a JSON array in a text column; match the
		// quoted element, with LIKE wildcards in the tag taken literally.
		tag := likeEscaper.Replace(filter.Tag)
		query = query.Where(`tags LIKE ? ESCAPE '\'`, `%"`+tag+`"%`)
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var datasets []models.Dataset
	if err := query.Preload("Shares", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Order("id ASC").Scopes(pagination.Paginate(page)).Find(&datasets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(datasets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetDataset returns a dataset with its shares in mint order.
func (s *datasetService) GetDataset(datasetID uint) (*models.Dataset, error) {
	var dataset models.Dataset
	err := s.db.Preload("Shares", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&dataset, datasetID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDatasetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &dataset, nil
}

// Unlist takes a dataset off the market. Metadata and shares stay intact;
// only purchases are blocked.
func (s *datasetService) Unlist(datasetID uint) (*models.Dataset, error) {
	dataset, err := s.GetDataset(datasetID)
	if err != nil {
		return nil, err
	}
	if !dataset.Listed {
		return dataset, nil
	}

	if err := s.db.Model(dataset).Update("listed", false).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	dataset.Listed = false
	return dataset, nil
}
