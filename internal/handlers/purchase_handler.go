package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "datamint/internal/errors"
	"datamint/internal/pagination"
	"datamint/internal/services"
)

// PurchaseHandler handles dataset purchase requests.
type PurchaseHandler struct {
	settlementService services.SettlementServicer
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(settlementService services.SettlementServicer) *PurchaseHandler {
	return &PurchaseHandler{settlementService: settlementService}
}

// PurchaseDataset handles a full dataset purchase.
// @Summary     Purchase a dataset
// @Description Buy a dataset at the current curve price. The payment is pulled from the buyer's approved allowance, distributed pro-rata to the owners, and all ownership units move to the buyer.
// @Tags        purchases
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Dataset ID"
// @Success     201 {object} services.Receipt "Purchase receipt"
// @Failure     400 {object} ErrorResponse "Invalid input, insufficient funds or allowance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Dataset not found"
// @Failure     409 {object} ErrorResponse "Already purchased or purchase in progress"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /datasets/{id}/purchase [post]
func (h *PurchaseHandler) PurchaseDataset(c *gin.Context) {
	buyer, err := getBuyer(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	datasetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	receipt, err := h.settlementService.Purchase(datasetID, buyer, c.ClientIP())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"receipt": receipt})
}

// ListMyPurchases handles the retrieval of the buyer's purchase history.
// @Summary     List my purchases
// @Description Get the authenticated buyer's purchases in insertion order
// @Tags        purchases
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Purchase] "Paginated purchases"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /purchases [get]
func (h *PurchaseHandler) ListMyPurchases(c *gin.Context) {
	buyer, err := getBuyer(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.settlementService.BuyerPurchases(buyer, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
