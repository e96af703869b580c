package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "datamint/internal/errors"
	"datamint/internal/money"
	"datamint/internal/pagination"
	"datamint/internal/services"
)

// DatasetHandler handles dataset registry and pricing requests.
type DatasetHandler struct {
	datasetService  services.DatasetServicer
	curveService    services.CurveServicer
	ledgerService   services.LedgerServicer
	snapshotService services.SnapshotServicer
	eventService    services.EventServicer

	now func() time.Time
}

// NewDatasetHandler creates a new DatasetHandler.
func NewDatasetHandler(datasetService services.DatasetServicer, curveService services.CurveServicer, ledgerService services.LedgerServicer, snapshotService services.SnapshotServicer, eventService services.EventServicer) *DatasetHandler {
	return &DatasetHandler{
		datasetService:  datasetService,
		curveService:    curveService,
		ledgerService:   ledgerService,
		snapshotService: snapshotService,
		eventService:    eventService,
		now:             time.Now,
	}
}

// ShareRequest is one ownership share in a mint request.
type ShareRequest struct {
	Owner       string `json:"owner" binding:"required,address"`
	BasisPoints int64  `json:"basis_points" binding:"required,basis_points"`
}

// MintDatasetRequest represents the request payload for minting a dataset.
type MintDatasetRequest struct {
	Name         string         `json:"name" binding:"required,min=1,max=100"`
	Description  string         `json:"description" binding:"max=500"`
	Tags         []string       `json:"tags" binding:"omitempty,max=16,dive,dataset_tag"`
	Shares       []ShareRequest `json:"shares" binding:"required,min=1,max=100,dive"`
	InitialPrice int64          `json:"initial_price" binding:"required,gt=0"`
}

// ErrorResponse represents an error response for swagger documentation.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// PriceResponse represents a quoted price in micro-units plus a decimal
// rendering for display.
type PriceResponse struct {
	DatasetID  uint   `json:"dataset_id"`
	PriceMicro int64  `json:"price_micro"`
	Price      string `json:"price"`
	QuotedAt   string `json:"quoted_at"`
}

// MintDataset handles the minting of a new dataset.
// @Summary     Mint a dataset
// @Description Register a dataset with its ownership shares and initial asking price
// @Tags        datasets
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body MintDatasetRequest true "Dataset details"
// @Success     201 {object} models.Dataset "Dataset minted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /datasets [post]
func (h *DatasetHandler) MintDataset(c *gin.Context) {
	var req MintDatasetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	shares := make([]services.ShareInput, len(req.Shares))
	for i, share := range req.Shares {
		shares[i] = services.ShareInput{Owner: share.Owner, BasisPoints: share.BasisPoints}
	}

	dataset, err := h.datasetService.Mint(req.Name, req.Description, req.Tags, shares, req.InitialPrice)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.eventService.Log(dataset.Shares[0].Owner, "MINT_DATASET", dataset.ID, c.ClientIP(),
		map[string]any{"name": req.Name, "initial_price": req.InitialPrice, "owners": len(req.Shares)})

	c.JSON(http.StatusCreated, gin.H{"dataset": dataset})
}

// ListDatasets handles the retrieval of the dataset catalog.
// @Summary     List datasets
// @Description Get a paginated list of listed datasets, optionally filtered by tag
// @Tags        datasets
// @Accept      json
// @Produce     json
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       tag       query string false "Filter by tag"
// @Success     200 {object} pagination.PageResponse[models.Dataset] "Paginated datasets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /datasets [get]
func (h *DatasetHandler) ListDatasets(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.DatasetFilter{Tag: c.Query("tag")}
	result, err := h.datasetService.ListDatasets(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDataset handles the retrieval of a specific dataset.
// @Summary     Get dataset by ID
// @Description Get a dataset with its ownership shares in mint order
// @Tags        datasets
// @Accept      json
// @Produce     json
// @Param       id path int true "Dataset ID"
// @Success     200 {object} models.Dataset "Dataset details"
// @Failure     400 {object} ErrorResponse "Invalid dataset ID"
// @Failure     404 {object} ErrorResponse "Dataset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /datasets/{id} [get]
func (h *DatasetHandler) GetDataset(c *gin.Context) {
	datasetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	dataset, err := h.datasetService.GetDataset(datasetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dataset": dataset})
}

// GetShares handles the retrieval of a dataset's ownership shares.
// @Summary     Get ownership shares
// @Description Get a dataset's ownership shares in mint order
// @Tags        datasets
// @Accept      json
// @Produce     json
// @Param       id path int true "Dataset ID"
// @Success     200 {object} map[string]any "Ownership shares"
// @Failure     400 {object} ErrorResponse "Invalid dataset ID"
// @Failure     404 {object} ErrorResponse "Dataset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /datasets/{id}/shares [get]
func (h *DatasetHandler) GetShares(c *gin.Context) {
	datasetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	shares, err := h.ledgerService.SharesOf(datasetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shares": shares})
}

// GetPrice handles quoting the current purchase price of a dataset.
// @Summary     Get current price
// @Description Quote the price a purchase would pay right now, after time depreciation
// @Tags        datasets
// @Accept      json
// @Produce     json
// @Param       id path int true "Dataset ID"
// @Success     200 {object} PriceResponse "Current price"
// @Failure     400 {object} ErrorResponse "Invalid dataset ID"
// @Failure     404 {object} ErrorResponse "Dataset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /datasets/{id}/price [get]
func (h *DatasetHandler) GetPrice(c *gin.Context) {
	datasetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	now := h.now()
	price, err := h.curveService.CurrentPrice(datasetID, now)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, PriceResponse{
		DatasetID:  datasetID,
		PriceMicro: price,
		Price:      money.Format(price),
		QuotedAt:   now.UTC().Format(time.RFC3339),
	})
}

// GetCurveState handles the retrieval of a dataset's pricing state.
// @Summary     Get curve state
// @Description Get a dataset's raw bonding-curve state: initial price, base price, purchase count, last purchase time
// @Tags        datasets
// @Accept      json
// @Produce     json
// @Param       id path int true "Dataset ID"
// @Success     200 {object} models.CurveState "Curve state"
// @Failure     400 {object} ErrorResponse "Invalid dataset ID"
// @Failure     404 {object} ErrorResponse "Curve not initialized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /datasets/{id}/curve [get]
func (h *DatasetHandler) GetCurveState(c *gin.Context) {
	datasetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	state, err := h.curveService.GetState(datasetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"curve": state})
}

// GetPriceHistory handles the retrieval of recorded price snapshots.
// @Summary     Get price history
// @Description Get a dataset's recorded price snapshots, newest first
// @Tags        datasets
// @Accept      json
// @Produce     json
// @Param       id        path  int true  "Dataset ID"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.PriceSnapshot] "Paginated snapshots"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /datasets/{id}/price-history [get]
func (h *DatasetHandler) GetPriceHistory(c *gin.Context) {
	datasetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.snapshotService.History(datasetID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UnlistDataset handles taking a dataset off the market.
// @Summary     Unlist a dataset
// @Description Take a dataset off the market; metadata and shares stay intact
// @Tags        datasets
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path int true "Dataset ID"
// @Success     200 {object} models.Dataset "Unlisted dataset"
// @Failure     400 {object} ErrorResponse "Invalid dataset ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Dataset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /datasets/{id} [delete]
func (h *DatasetHandler) UnlistDataset(c *gin.Context) {
	datasetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	dataset, err := h.datasetService.Unlist(datasetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.eventService.Log("registrar", "UNLIST_DATASET", datasetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"dataset": dataset})
}
