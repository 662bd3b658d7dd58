package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/automation-market/marketplace/internal/domain"
	"github.com/automation-market/marketplace/internal/utils/money"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	walletColumnNames = []string{
		"user_id", "balance_cents", "total_earned_cents", "total_withdrawn_cents", "available_for_withdrawal_cents", "updated_at",
	}
	walletTxColumnNames = []string{
		"id", "user_id", "type", "amount_cents", "fee_cents", "status", "payment_method", "description", "created_at", "completed_at",
	}
)

func walletTxRow(id, userID uuid.UUID, txType domain.WalletTransactionType, cents, fee int64, status domain.LineStatus, method domain.PaymentMethod) *pgxmock.Rows {
	return pgxmock.NewRows(walletTxColumnNames).
		AddRow(id, userID, txType, cents, fee, status, method, "tx", time.Now(), (*time.Time)(nil))
}

func TestWalletRepository_GetOrCreateWallet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepository(mock)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userID := uuid.New()

		mock.ExpectExec(`INSERT INTO wallets`).
			WithArgs(userID).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectQuery(`SELECT .+ FROM wallets WHERE user_id`).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows(walletColumnNames).
				AddRow(userID, int64(25050), int64(30000), int64(5000), int64(12000), time.Now()))

		wallet, err := repo.GetOrCreateWallet(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "$250.50", wallet.Balance.Display())
		assert.Equal(t, int64(12000), wallet.AvailableForWithdrawal.Cents())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		userID := uuid.New()

		mock.ExpectExec(`INSERT INTO wallets`).
			WithArgs(userID).
			WillReturnError(errors.New("database error"))

		wallet, err := repo.GetOrCreateWallet(ctx, userID)
		assert.Error(t, err)
		assert.Nil(t, wallet)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWalletRepository_Deposit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepository(mock)
	ctx := context.Background()

	quote := &domain.DepositQuote{
		Method:      domain.PaymentMethodCreditCard,
		Amount:      money.New(decimal.NewFromInt(100)),
		Fee:         money.New(decimal.RequireFromString("3.20")),
		TotalCharge: money.New(decimal.RequireFromString("103.20")),
		Credited:    money.New(decimal.NewFromInt(100)),
	}

	t.Run("Success", func(t *testing.T) {
		userID := uuid.New()
		txID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO wallets`).
			WithArgs(userID).
			WillReturnResult(pgxmock.NewResult("INSERT", 0))
		mock.ExpectQuery(`INSERT INTO transactions`).
			WithArgs(userID, domain.WalletTxDeposit, int64(10000), int64(320), domain.LineStatusCompleted,
				domain.PaymentMethodCreditCard, "Deposit via credit_card").
			WillReturnRows(walletTxRow(txID, userID, domain.WalletTxDeposit, 10000, 320, domain.LineStatusCompleted, domain.PaymentMethodCreditCard))
		mock.ExpectExec(`UPDATE wallets SET balance_cents`).
			WithArgs(int64(10000), userID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		tx, err := repo.Deposit(ctx, userID, quote)
		require.NoError(t, err)
		assert.Equal(t, txID, tx.ID)
		assert.Equal(t, int64(320), tx.Fee.Cents())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Wallet update error", func(t *testing.T) {
		userID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO wallets`).
			WithArgs(userID).
			WillReturnResult(pgxmock.NewResult("INSERT", 0))
		mock.ExpectQuery(`INSERT INTO transactions`).
			WithArgs(userID, domain.WalletTxDeposit, int64(10000), int64(320), domain.LineStatusCompleted,
				domain.PaymentMethodCreditCard, "Deposit via credit_card").
			WillReturnRows(walletTxRow(uuid.New(), userID, domain.WalletTxDeposit, 10000, 320, domain.LineStatusCompleted, domain.PaymentMethodCreditCard))
		mock.ExpectExec(`UPDATE wallets SET balance_cents`).
			WithArgs(int64(10000), userID).
			WillReturnError(errors.New("update error"))
		mock.ExpectRollback()

		tx, err := repo.Deposit(ctx, userID, quote)
		assert.Error(t, err)
		assert.Nil(t, tx)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Amount beyond int64 cents", func(t *testing.T) {
		huge := *quote
		huge.Amount = money.New(decimal.RequireFromString("184467440737094516.16"))

		tx, err := repo.Deposit(ctx, uuid.New(), &huge)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
		assert.Nil(t, tx)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWalletRepository_Withdraw(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepository(mock)
	ctx := context.Background()
	amount := money.New(decimal.NewFromInt(50))

	t.Run("Success", func(t *testing.T) {
		userID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT available_for_withdrawal_cents FROM wallets WHERE user_id = .+ FOR UPDATE`).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"available_for_withdrawal_cents"}).AddRow(int64(20000)))
		mock.ExpectQuery(`INSERT INTO transactions`).
			WithArgs(userID, domain.WalletTxWithdrawal, int64(-5000), domain.LineStatusPending, "Withdrawal request").
			WillReturnRows(walletTxRow(uuid.New(), userID, domain.WalletTxWithdrawal, -5000, 0, domain.LineStatusPending, domain.PaymentMethod("")))
		mock.ExpectExec(`UPDATE wallets SET available_for_withdrawal_cents`).
			WithArgs(int64(5000), userID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		tx, err := repo.Withdraw(ctx, userID, amount)
		require.NoError(t, err)
		assert.Equal(t, domain.LineStatusPending, tx.Status)
		assert.True(t, tx.Amount.Amount.IsNegative())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insufficient funds", func(t *testing.T) {
		userID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT available_for_withdrawal_cents FROM wallets WHERE user_id = .+ FOR UPDATE`).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"available_for_withdrawal_cents"}).AddRow(int64(1000)))
		mock.ExpectRollback()

		tx, err := repo.Withdraw(ctx, userID, amount)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.Nil(t, tx)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No wallet", func(t *testing.T) {
		userID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT available_for_withdrawal_cents FROM wallets WHERE user_id = .+ FOR UPDATE`).
			WithArgs(userID).
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectRollback()

		tx, err := repo.Withdraw(ctx, userID, amount)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.Nil(t, tx)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Amount beyond int64 cents is rejected before the wallet lock", func(t *testing.T) {
		// 2^64 - 100000 центов после переполнения дали бы -100000
		huge := money.New(decimal.RequireFromString("184467440737094516.16"))

		tx, err := repo.Withdraw(ctx, uuid.New(), huge)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
		assert.Nil(t, tx)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Negative amount is rejected", func(t *testing.T) {
		tx, err := repo.Withdraw(ctx, uuid.New(), money.New(decimal.NewFromInt(-1000)))
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
		assert.Nil(t, tx)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Begin transaction error", func(t *testing.T) {
		mock.ExpectBegin().WillReturnError(errors.New("begin error"))

		tx, err := repo.Withdraw(ctx, uuid.New(), amount)
		assert.Error(t, err)
		assert.Nil(t, tx)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWalletRepository_SettleWithdrawal(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepository(mock)
	ctx := context.Background()

	t.Run("Completed", func(t *testing.T) {
		txID := uuid.New()
		userID := uuid.New()
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .+ FROM transactions WHERE id = .+ FOR UPDATE`).
			WithArgs(txID, domain.WalletTxWithdrawal).
			WillReturnRows(walletTxRow(txID, userID, domain.WalletTxWithdrawal, -5000, 0, domain.LineStatusPending, domain.PaymentMethod("")))
		mock.ExpectQuery(`UPDATE transactions SET status`).
			WithArgs(domain.LineStatusCompleted, txID).
			WillReturnRows(pgxmock.NewRows([]string{"completed_at"}).AddRow(&now))
		mock.ExpectExec(`UPDATE wallets SET balance_cents`).
			WithArgs(int64(5000), userID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		tx, err := repo.SettleWithdrawal(ctx, txID, domain.LineStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, domain.LineStatusCompleted, tx.Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Cancelled restores available", func(t *testing.T) {
		txID := uuid.New()
		userID := uuid.New()
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .+ FROM transactions WHERE id = .+ FOR UPDATE`).
			WithArgs(txID, domain.WalletTxWithdrawal).
			WillReturnRows(walletTxRow(txID, userID, domain.WalletTxWithdrawal, -5000, 0, domain.LineStatusPending, domain.PaymentMethod("")))
		mock.ExpectQuery(`UPDATE transactions SET status`).
			WithArgs(domain.LineStatusCancelled, txID).
			WillReturnRows(pgxmock.NewRows([]string{"completed_at"}).AddRow(&now))
		mock.ExpectExec(`UPDATE wallets SET available_for_withdrawal_cents`).
			WithArgs(int64(5000), userID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		tx, err := repo.SettleWithdrawal(ctx, txID, domain.LineStatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, domain.LineStatusCancelled, tx.Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not pending", func(t *testing.T) {
		txID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .+ FROM transactions WHERE id = .+ FOR UPDATE`).
			WithArgs(txID, domain.WalletTxWithdrawal).
			WillReturnRows(walletTxRow(txID, uuid.New(), domain.WalletTxWithdrawal, -5000, 0, domain.LineStatusCompleted, domain.PaymentMethod("")))
		mock.ExpectRollback()

		tx, err := repo.SettleWithdrawal(ctx, txID, domain.LineStatusCompleted)
		assert.ErrorIs(t, err, domain.ErrTransactionNotPending)
		assert.Nil(t, tx)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		txID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .+ FROM transactions WHERE id = .+ FOR UPDATE`).
			WithArgs(txID, domain.WalletTxWithdrawal).
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectRollback()

		tx, err := repo.SettleWithdrawal(ctx, txID, domain.LineStatusCompleted)
		assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
		assert.Nil(t, tx)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWalletRepository_GetTransactions(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepository(mock)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userID := uuid.New()
		rows := walletTxRow(uuid.New(), userID, domain.WalletTxDeposit, 10000, 320, domain.LineStatusCompleted, domain.PaymentMethodPayPal)

		mock.ExpectQuery(`SELECT .+ FROM transactions WHERE user_id`).
			WithArgs(userID).
			WillReturnRows(rows)

		txs, err := repo.GetTransactions(ctx, userID)
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, domain.PaymentMethodPayPal, txs[0].PaymentMethod)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		userID := uuid.New()

		mock.ExpectQuery(`SELECT .+ FROM transactions WHERE user_id`).
			WithArgs(userID).
			WillReturnError(errors.New("database error"))

		txs, err := repo.GetTransactions(ctx, userID)
		assert.Error(t, err)
		assert.Nil(t, txs)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
