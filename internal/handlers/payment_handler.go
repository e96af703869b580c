package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "datamint/internal/errors"
	"datamint/internal/money"
	"datamint/internal/services"
)

// PaymentHandler handles settlement ledger requests.
type PaymentHandler struct {
	paymentService services.PaymentServicer
	eventService   services.EventServicer
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService services.PaymentServicer, eventService services.EventServicer) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, eventService: eventService}
}

// DepositRequest represents the request payload for crediting an account.
// Amount is a decimal string in whole settlement-currency units with at
// most six decimal places, e.g. "2.500000".
type DepositRequest struct {
	Address string `json:"address" binding:"required,address"`
	Amount  string `json:"amount" binding:"required"`
}

// ApproveRequest represents the request payload for granting a spending
// allowance to the escrow account. Amount follows the same decimal format
// as DepositRequest; "0" revokes the allowance.
type ApproveRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// BalanceResponse represents an account balance in micro-units plus a
// decimal rendering for display.
type BalanceResponse struct {
	Address      string `json:"address"`
	BalanceMicro int64  `json:"balance_micro"`
	Balance      string `json:"balance"`
}

// Deposit handles crediting a payment account.
// @Summary     Deposit funds
// @Description Credit an account on the internal settlement ledger. The amount is a decimal string in whole currency units.
// @Tags        wallet
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body DepositRequest true "Deposit details"
// @Success     200 {object} BalanceResponse "Updated balance"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /wallet/deposit [post]
func (h *PaymentHandler) Deposit(c *gin.Context) {
	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	amount, err := money.Parse(req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if amount <= 0 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be positive"))
		return
	}

	account, err := h.paymentService.Deposit(req.Address, amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.eventService.Log(req.Address, "DEPOSIT", 0, c.ClientIP(),
		map[string]any{"amount": amount})

	c.JSON(http.StatusOK, BalanceResponse{
		Address:      account.Address,
		BalanceMicro: account.Balance,
		Balance:      money.Format(account.Balance),
	})
}

// GetBalance handles the retrieval of the buyer's own balance.
// @Summary     Get my balance
// @Description Get the authenticated buyer's settlement ledger balance
// @Tags        wallet
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} BalanceResponse "Current balance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /wallet/balance [get]
func (h *PaymentHandler) GetBalance(c *gin.Context) {
	buyer, err := getBuyer(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	balance, err := h.paymentService.Balance(buyer)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{
		Address:      buyer,
		BalanceMicro: balance,
		Balance:      money.Format(balance),
	})
}

// Approve handles granting the escrow account a spending allowance.
// @Summary     Approve escrow spending
// @Description Set the amount the settlement escrow may pull from the authenticated buyer's balance, as a decimal string in whole currency units. Setting overwrites any previous allowance.
// @Tags        wallet
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ApproveRequest true "Allowance amount"
// @Success     200 {object} map[string]any "Granted allowance"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /wallet/approve [post]
func (h *PaymentHandler) Approve(c *gin.Context) {
	buyer, err := getBuyer(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	amount, err := money.Parse(req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if amount < 0 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount cannot be negative"))
		return
	}

	allowance, err := h.paymentService.Approve(buyer, services.EscrowAddress, amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.eventService.Log(buyer, "APPROVE", 0, c.ClientIP(),
		map[string]any{"spender": services.EscrowAddress, "amount": amount})

	c.JSON(http.StatusOK, gin.H{"allowance": allowance})
}

// GetAllowance handles the retrieval of the buyer's escrow allowance.
// @Summary     Get my escrow allowance
// @Description Get the amount the settlement escrow may currently pull from the authenticated buyer
// @Tags        wallet
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]any "Current allowance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /wallet/allowance [get]
func (h *PaymentHandler) GetAllowance(c *gin.Context) {
	buyer, err := getBuyer(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	amount, err := h.paymentService.AllowanceOf(buyer, services.EscrowAddress)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"spender": services.EscrowAddress, "amount": amount})
}
