package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "datamint/internal/errors"
	"datamint/internal/models"
)

// paymentService is the internal micro-unit settlement ledger standing in
// for the external payment token: balances per address, plus ERC20-style
// allowances for pull transfers.
type paymentService struct {
	db *gorm.DB
}

// NewPaymentService creates a new PaymentServicer.
func NewPaymentService(db *gorm.DB) PaymentServicer {
	return &paymentService{db: db}
}

// Deposit credits an address, creating the account if needed. Registrar-only
// faucet; real funds enter through the payment processor outside this service.
func (s *paymentService) Deposit(address string, amount int64) (*models.PaymentAccount, error) {
	if address == "" {
		return nil, apperrors.ErrInvalidOwner
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Deposit amount must be positive")
	}

	var account models.PaymentAccount
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txErr := tx.Where("address = ?", address).First(&account).Error
		switch {
		case errors.Is(txErr, gorm.ErrRecordNotFound):
			account = models.PaymentAccount{Address: address, Balance: amount}
			if txErr := tx.Create(&account).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
		case txErr != nil:
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		default:
			account.Balance += amount
			if txErr := tx.Model(&account).Update("balance", account.Balance).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Balance returns the balance of an address. Unknown addresses have a zero
// balance rather than an error.
func (s *paymentService) Balance(address string) (int64, error) {
	var account models.PaymentAccount
	err := s.db.Where("address = ?", address).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account.Balance, nil
}

// Approve sets (not adds to) the amount a spender may pull from the owner.
func (s *paymentService) Approve(owner, spender string, amount int64) (*models.Allowance, error) {
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Allowance must not be negative")
	}

	var allowance models.Allowance
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txErr := tx.Where("owner = ? AND spender = ?", owner, spender).First(&allowance).Error
		switch {
		case errors.Is(txErr, gorm.ErrRecordNotFound):
			allowance = models.Allowance{Owner: owner, Spender: spender, Amount: amount}
			if txErr := tx.Create(&allowance).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
		case txErr != nil:
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		default:
			allowance.Amount = amount
			if txErr := tx.Model(&allowance).Update("amount", amount).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &allowance, nil
}

// AllowanceOf returns the remaining allowance from owner to spender.
func (s *paymentService) AllowanceOf(owner, spender string) (int64, error) {
	var allowance models.Allowance
	err := s.db.Where("owner = ? AND spender = ?", owner, spender).First(&allowance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return allowance.Amount, nil
}

// Pull moves amount from the owner's account into the spender's, consuming
// allowance. Both the allowance and the balance are checked with guarded
// updates so a concurrent settlement cannot double-spend either.
func (s *paymentService) Pull(tx *gorm.DB, from, spender string, amount int64) error {
	if amount < 0 {
		return apperrors.ErrPaymentTransferFailed
	}
	if amount == 0 {
		return nil
	}

	result := tx.Model(&models.Allowance{}).
		Where("owner = ? AND spender = ? AND amount >= ?", from, spender, amount).
		Update("amount", gorm.Expr("amount - ?", amount))
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrInsufficientAllowance
	}

	result = tx.Model(&models.PaymentAccount{}).
		Where("address = ? AND balance >= ?", from, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrInsufficientFunds
	}

	return s.credit(tx, spender, amount)
}

// Push moves amount from one account to another. The debit is guarded by
// the current balance; recipients are created on first credit.
func (s *paymentService) Push(tx *gorm.DB, from, to string, amount int64) error {
	if amount < 0 {
		return apperrors.ErrPaymentTransferFailed
	}
	if amount == 0 {
		return nil
	}

	result := tx.Model(&models.PaymentAccount{}).
		Where("address = ? AND balance >= ?", from, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrPaymentTransferFailed
	}

	return s.credit(tx, to, amount)
}

// credit adds amount to an account, creating it if needed.
func (s *paymentService) credit(tx *gorm.DB, address string, amount int64) error {
	result := tx.Model(&models.PaymentAccount{}).
		Where("address = ?", address).
		Update("balance", gorm.Expr("balance + ?", amount))
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		account := &models.PaymentAccount{Address: address, Balance: amount}
		if err := tx.Create(account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}
