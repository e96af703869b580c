package services

import (
	"testing"

	"datamint/internal/testutil"
)

func TestDeposit(t *testing.T) {
	t.Run("creates_and_accumulates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)

		account, err := svc.Deposit("alice", 500000)
		testutil.AssertNoError(t, err)
		if account.Balance != 500000 {
			t.Errorf("expected balance 500000, got %d", account.Balance)
		}

		account, err = svc.Deposit("alice", 250000)
		testutil.AssertNoError(t, err)
		if account.Balance != 750000 {
			t.Errorf("expected balance 750000, got %d", account.Balance)
		}
	})

	t.Run("rejects_non_positive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)

		_, err := svc.Deposit("alice", 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.Deposit("alice", -10)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestBalance(t *testing.T) {
	t.Run("unknown_address_is_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)

		balance, err := svc.Balance("nobody")
		testutil.AssertNoError(t, err)
		if balance != 0 {
			t.Errorf("expected 0, got %d", balance)
		}
	})
}

func TestApprove(t *testing.T) {
	t.Run("sets_not_adds", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)

		_, err := svc.Approve("alice", EscrowAddress, 100000)
		testutil.AssertNoError(t, err)
		_, err = svc.Approve("alice", EscrowAddress, 40000)
		testutil.AssertNoError(t, err)

		amount, err := svc.AllowanceOf("alice", EscrowAddress)
		testutil.AssertNoError(t, err)
		if amount != 40000 {
			t.Errorf("expected allowance 40000, got %d", amount)
		}
	})

	t.Run("rejects_negative", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)

		_, err := svc.Approve("alice", EscrowAddress, -1)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestPull(t *testing.T) {
	t.Run("moves_funds_and_consumes_allowance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)

		testutil.FundAccount(t, db, "alice", 500000)
		testutil.ApproveSpend(t, db, "alice", EscrowAddress, 300000)

		err := svc.Pull(db, "alice", EscrowAddress, 200000)
		testutil.AssertNoError(t, err)

		balance, _ := svc.Balance("alice")
		if balance != 300000 {
			t.Errorf("expected alice balance 300000, got %d", balance)
		}
		escrow, _ := svc.Balance(EscrowAddress)
		if escrow != 200000 {
			t.Errorf("expected escrow balance 200000, got %d", escrow)
		}
		allowance, _ := svc.AllowanceOf("alice", EscrowAddress)
		if allowance != 100000 {
			t.Errorf("expected allowance 100000, got %d", allowance)
		}
	})

	t.Run("insufficient_allowance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)

		testutil.FundAccount(t, db, "alice", 500000)
		testutil.ApproveSpend(t, db, "alice", EscrowAddress, 100)

		err := svc.Pull(db, "alice", EscrowAddress, 200000)
		testutil.AssertAppError(t, err, "INSUFFICIENT_ALLOWANCE")
	})

	t.Run("no_allowance_at_all", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)

		testutil.FundAccount(t, db, "alice", 500000)

		err := svc.Pull(db, "alice", EscrowAddress, 1)
		testutil.AssertAppError(t, err, "INSUFFICIENT_ALLOWANCE")
	})

	t.Run("insufficient_funds", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)

		testutil.FundAccount(t, db, "alice", 100)
		testutil.ApproveSpend(t, db, "alice", EscrowAddress, 200000)

		err := svc.Pull(db, "alice", EscrowAddress, 200000)
		testutil.AssertAppError(t, err, "INSUFFICIENT_FUNDS")
	})
}

func TestPush(t *testing.T) {
	t.Run("creates_recipient_on_first_credit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)

		testutil.FundAccount(t, db, EscrowAddress, 100000)

		err := svc.Push(db, EscrowAddress, "bob", 60000)
		testutil.AssertNoError(t, err)

		balance, _ := svc.Balance("bob")
		if balance != 60000 {
			t.Errorf("expected bob balance 60000, got %d", balance)
		}
	})

	t.Run("insufficient_source", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)

		err := svc.Push(db, "empty", "bob", 1)
		testutil.AssertAppError(t, err, "PAYMENT_TRANSFER_FAILED")
	})

	t.Run("zero_amount_is_noop", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)

		err := svc.Push(db, "empty", "bob", 0)
		testutil.AssertNoError(t, err)
	})
}
