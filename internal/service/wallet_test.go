package service

import (
	"context"
	"errors"
	"testing"

	"github.com/automation-market/marketplace/internal/domain"
	domainmocks "github.com/automation-market/marketplace/internal/domain/mocks"
	"github.com/automation-market/marketplace/internal/utils/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWalletService_QuoteDeposit(t *testing.T) {
	svc := NewWalletService(nil, nil)

	tests := []struct {
		name    string
		method  domain.PaymentMethod
		amount  string
		fee     string
		total   string
		wantErr error
	}{
		{name: "Credit card", method: domain.PaymentMethodCreditCard, amount: "100", fee: "3.20", total: "103.20"},
		{name: "PayPal", method: domain.PaymentMethodPayPal, amount: "100", fee: "3.98", total: "103.98"},
		{name: "Bank transfer", method: domain.PaymentMethodBankTransfer, amount: "100", fee: "0.80", total: "100.80"},
		{name: "Bank transfer fee is capped", method: domain.PaymentMethodBankTransfer, amount: "2000", fee: "5.00", total: "2005.00"},
		{name: "Fee rounds to cents", method: domain.PaymentMethodCreditCard, amount: "33.33", fee: "1.27", total: "34.60"},
		{name: "Below card minimum", method: domain.PaymentMethodCreditCard, amount: "0.50", wantErr: domain.ErrAmountBelowMinimum},
		{name: "Below bank minimum", method: domain.PaymentMethodBankTransfer, amount: "5", wantErr: domain.ErrAmountBelowMinimum},
		{name: "Above card maximum", method: domain.PaymentMethodCreditCard, amount: "10000.01", wantErr: domain.ErrAmountAboveMaximum},
		{name: "Zero amount", method: domain.PaymentMethodPayPal, amount: "0", wantErr: domain.ErrInvalidAmount},
		{name: "Negative amount", method: domain.PaymentMethodPayPal, amount: "-10", wantErr: domain.ErrInvalidAmount},
		{name: "Not a number", method: domain.PaymentMethodPayPal, amount: "ten", wantErr: domain.ErrInvalidAmount},
		{name: "Fractions of a cent", method: domain.PaymentMethodPayPal, amount: "10.005", wantErr: domain.ErrInvalidAmount},
		{name: "Unknown method", method: domain.PaymentMethod("crypto"), amount: "100", wantErr: domain.ErrUnknownPaymentMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := svc.QuoteDeposit(tt.method, tt.amount)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, quote)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.fee, quote.Fee.Amount.StringFixed(2))
			assert.Equal(t, tt.total, quote.TotalCharge.Amount.StringFixed(2))
			assert.True(t, quote.Credited.Amount.Equal(quote.Amount.Amount))
		})
	}
}

func TestWalletService_Deposit(t *testing.T) {
	mockWalletRepo := domainmocks.NewWalletRepositoryMock(t)
	svc := NewWalletService(mockWalletRepo, nil)
	ctx := context.Background()

	t.Run("Credit card deposit credits the full amount", func(t *testing.T) {
		userID := uuid.New()
		input := domain.DepositInput{Method: domain.PaymentMethodCreditCard, Amount: "100", CardNumber: "4111 1111 1111 1111"}
		tx := &domain.WalletTransaction{ID: uuid.New(), UserID: userID, Type: domain.WalletTxDeposit, Amount: money.New(decimal.NewFromInt(100))}
		wallet := &domain.Wallet{UserID: userID, Balance: money.New(decimal.NewFromInt(100))}

		mockWalletRepo.On("Deposit", mock.Anything, userID, mock.MatchedBy(func(q *domain.DepositQuote) bool {
			return q.Amount.Amount.Equal(decimal.NewFromInt(100)) &&
				q.Fee.Amount.Equal(decimal.RequireFromString("3.20")) &&
				q.Credited.Amount.Equal(decimal.NewFromInt(100))
		})).Return(tx, nil).Once()
		mockWalletRepo.On("GetOrCreateWallet", mock.Anything, userID).Return(wallet, nil).Once()

		result, err := svc.Deposit(ctx, userID, input)
		require.NoError(t, err)
		assert.Equal(t, "103.20", result.Quote.TotalCharge.Amount.StringFixed(2))
		assert.Equal(t, "$100.00", result.Wallet.Balance.Display())
		assert.Equal(t, tx, result.Transaction)
	})

	t.Run("Invalid card number", func(t *testing.T) {
		input := domain.DepositInput{Method: domain.PaymentMethodCreditCard, Amount: "100", CardNumber: "4111 1111 1111 1112"}

		result, err := svc.Deposit(ctx, uuid.New(), input)
		assert.ErrorIs(t, err, domain.ErrInvalidCardNumber)
		assert.Nil(t, result)
	})

	t.Run("Invalid amount makes no repository call", func(t *testing.T) {
		result, err := svc.Deposit(ctx, uuid.New(), domain.DepositInput{Method: domain.PaymentMethodPayPal, Amount: "abc"})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
		assert.Nil(t, result)
	})

	t.Run("Database error", func(t *testing.T) {
		userID := uuid.New()

		mockWalletRepo.On("Deposit", mock.Anything, userID, mock.Anything).Return(nil, errors.New("db error")).Once()

		result, err := svc.Deposit(ctx, userID, domain.DepositInput{Method: domain.PaymentMethodPayPal, Amount: "50"})
		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestWalletService_Withdraw(t *testing.T) {
	mockWalletRepo := domainmocks.NewWalletRepositoryMock(t)
	svc := NewWalletService(mockWalletRepo, nil)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userID := uuid.New()
		amount := money.New(decimal.RequireFromString("25.50"))
		tx := &domain.WalletTransaction{ID: uuid.New(), UserID: userID, Type: domain.WalletTxWithdrawal, Status: domain.LineStatusPending}

		mockWalletRepo.On("Withdraw", mock.Anything, userID, amount).Return(tx, nil).Once()

		result, err := svc.Withdraw(ctx, userID, "25.50")
		require.NoError(t, err)
		assert.Equal(t, domain.LineStatusPending, result.Status)
	})

	t.Run("Below minimum makes no repository call", func(t *testing.T) {
		result, err := svc.Withdraw(ctx, uuid.New(), "5")
		assert.ErrorIs(t, err, domain.ErrAmountBelowMinimum)
		assert.Nil(t, result)
		mockWalletRepo.AssertNotCalled(t, "Withdraw", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Amount above the cap makes no repository call", func(t *testing.T) {
		result, err := svc.Withdraw(ctx, uuid.New(), "184467440737094516.16")
		assert.ErrorIs(t, err, domain.ErrAmountAboveMaximum)
		assert.Nil(t, result)
		mockWalletRepo.AssertNotCalled(t, "Withdraw", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unparsable amount", func(t *testing.T) {
		result, err := svc.Withdraw(ctx, uuid.New(), "")
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
		assert.Nil(t, result)
	})

	t.Run("Insufficient funds", func(t *testing.T) {
		userID := uuid.New()

		mockWalletRepo.On("Withdraw", mock.Anything, userID, mock.Anything).Return(nil, domain.ErrInsufficientFunds).Once()

		result, err := svc.Withdraw(ctx, userID, "500")
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.Nil(t, result)
	})
}

func TestWalletService_SettleWithdrawal(t *testing.T) {
	mockWalletRepo := domainmocks.NewWalletRepositoryMock(t)
	svc := NewWalletService(mockWalletRepo, nil)
	ctx := context.Background()

	t.Run("Complete", func(t *testing.T) {
		txID := uuid.New()
		tx := &domain.WalletTransaction{ID: txID, UserID: uuid.New(), Status: domain.LineStatusCompleted}

		mockWalletRepo.On("SettleWithdrawal", mock.Anything, txID, domain.LineStatusCompleted).Return(tx, nil).Once()

		result, err := svc.SettleWithdrawal(ctx, txID, domain.LineStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, domain.LineStatusCompleted, result.Status)
	})

	t.Run("Pending is not a settlement", func(t *testing.T) {
		result, err := svc.SettleWithdrawal(ctx, uuid.New(), domain.LineStatusPending)
		assert.ErrorIs(t, err, domain.ErrInvalidSettlement)
		assert.Nil(t, result)
	})

	t.Run("Already settled", func(t *testing.T) {
		txID := uuid.New()

		mockWalletRepo.On("SettleWithdrawal", mock.Anything, txID, domain.LineStatusCancelled).Return(nil, domain.ErrTransactionNotPending).Once()

		_, err := svc.SettleWithdrawal(ctx, txID, domain.LineStatusCancelled)
		assert.ErrorIs(t, err, domain.ErrTransactionNotPending)
	})
}

func TestWalletService_GetWallet(t *testing.T) {
	mockWalletRepo := domainmocks.NewWalletRepositoryMock(t)
	svc := NewWalletService(mockWalletRepo, nil)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userID := uuid.New()
		wallet := &domain.Wallet{UserID: userID}

		mockWalletRepo.On("GetOrCreateWallet", mock.Anything, userID).Return(wallet, nil).Once()

		result, err := svc.GetWallet(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, wallet, result)
	})

	t.Run("Transactions database error", func(t *testing.T) {
		userID := uuid.New()

		mockWalletRepo.On("GetTransactions", mock.Anything, userID).Return(nil, errors.New("db error")).Once()

		result, err := svc.GetTransactions(ctx, userID)
		assert.Error(t, err)
		assert.Nil(t, result)
	})
}
