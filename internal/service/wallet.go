package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/automation-market/marketplace/internal/domain"
	"github.com/automation-market/marketplace/internal/realtime"
	"github.com/automation-market/marketplace/internal/utils/luhn"
	"github.com/automation-market/marketplace/internal/utils/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MinWithdrawal минимальная сумма вывода
var MinWithdrawal = decimal.NewFromInt(10)

// DepositFee тариф способа оплаты: процент плюс фиксированная часть,
// с необязательным потолком комиссии и границами суммы
type DepositFee struct {
	Percent decimal.Decimal
	Fixed   decimal.Decimal
	Cap     decimal.Decimal
	Min     decimal.Decimal
	Max     decimal.Decimal
}

// Fee рассчитывает комиссию с округлением до цента
func (f DepositFee) Fee(amount decimal.Decimal) decimal.Decimal {
	fee := amount.Mul(f.Percent).Div(decimal.NewFromInt(100)).Add(f.Fixed)
	if f.Cap.IsPositive() && fee.GreaterThan(f.Cap) {
		fee = f.Cap
	}
	return fee.Round(2)
}

// DepositFees тарифы симулированных способов оплаты
var DepositFees = map[domain.PaymentMethod]DepositFee{
	domain.PaymentMethodCreditCard: {
		Percent: decimal.RequireFromString("2.9"),
		Fixed:   decimal.RequireFromString("0.30"),
		Min:     decimal.NewFromInt(1),
		Max:     decimal.NewFromInt(10000),
	},
	domain.PaymentMethodPayPal: {
		Percent: decimal.RequireFromString("3.49"),
		Fixed:   decimal.RequireFromString("0.49"),
		Min:     decimal.NewFromInt(1),
		Max:     decimal.NewFromInt(10000),
	},
	domain.PaymentMethodBankTransfer: {
		Percent: decimal.RequireFromString("0.8"),
		Cap:     decimal.NewFromInt(5),
		Min:     decimal.NewFromInt(10),
		Max:     decimal.NewFromInt(50000),
	},
}

// WalletService реализует domain.WalletService
type WalletService struct {
	walletRepo domain.WalletRepository
	broker     realtime.Broker
}

// NewWalletService создает новый WalletService
func NewWalletService(walletRepo domain.WalletRepository, broker realtime.Broker) *WalletService {
	return &WalletService{
		walletRepo: walletRepo,
		broker:     broker,
	}
}

// GetWallet возвращает кошелек пользователя, создавая его при первом обращении
func (s *WalletService) GetWallet(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetOrCreateWallet(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("wallet service: failed to get wallet for user %s: %w", userID, err)
	}

	return wallet, nil
}

// GetTransactions возвращает операции кошелька пользователя
func (s *WalletService) GetTransactions(ctx context.Context, userID uuid.UUID) ([]*domain.WalletTransaction, error) {
	txs, err := s.walletRepo.GetTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("wallet service: failed to get transactions for user %s: %w", userID, err)
	}

	return txs, nil
}

// QuoteDeposit рассчитывает комиссию пополнения. Комиссия взимается сверх суммы,
// в кошелек зачисляется вся сумма пополнения.
func (s *WalletService) QuoteDeposit(method domain.PaymentMethod, amount string) (*domain.DepositQuote, error) {
	tariff, ok := DepositFees[method]
	if !ok {
		return nil, domain.ErrUnknownPaymentMethod
	}

	value, err := parseAmount(amount)
	if err != nil {
		return nil, err
	}
	if value.LessThan(tariff.Min) {
		return nil, fmt.Errorf("%w: minimum for %s is %s", domain.ErrAmountBelowMinimum, method, money.New(tariff.Min).Display())
	}
	if value.GreaterThan(tariff.Max) {
		return nil, fmt.Errorf("%w: maximum for %s is %s", domain.ErrAmountAboveMaximum, method, money.New(tariff.Max).Display())
	}

	fee := tariff.Fee(value)
	return &domain.DepositQuote{
		Method:      method,
		Amount:      money.New(value),
		Fee:         money.New(fee),
		TotalCharge: money.New(value.Add(fee)),
		Credited:    money.New(value),
	}, nil
}

// Deposit выполняет симулированное пополнение
func (s *WalletService) Deposit(ctx context.Context, userID uuid.UUID, input domain.DepositInput) (*domain.DepositResult, error) {
	quote, err := s.QuoteDeposit(input.Method, input.Amount)
	if err != nil {
		return nil, err
	}

	if input.Method == domain.PaymentMethodCreditCard && input.CardNumber != "" && !luhn.ValidateCard(input.CardNumber) {
		return nil, domain.ErrInvalidCardNumber
	}

	tx, err := s.walletRepo.Deposit(ctx, userID, quote)
	if err != nil {
		return nil, fmt.Errorf("wallet service: failed to deposit %s for user %s: %w", quote.Amount, userID, err)
	}

	wallet, err := s.walletRepo.GetOrCreateWallet(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("wallet service: failed to reload wallet for user %s: %w", userID, err)
	}

	publish(ctx, s.broker, realtime.WalletTransactionsTopic(userID), tableTransactions, realtime.EventInsert, tx.ID)
	return &domain.DepositResult{Quote: quote, Transaction: tx, Wallet: wallet}, nil
}

// Withdraw создает заявку на вывод. Сумма меньше минимальной отклоняется
// до обращения к хранилищу.
func (s *WalletService) Withdraw(ctx context.Context, userID uuid.UUID, amount string) (*domain.WalletTransaction, error) {
	value, err := parseAmount(amount)
	if err != nil {
		return nil, err
	}
	if value.LessThan(MinWithdrawal) {
		return nil, fmt.Errorf("%w: minimum withdrawal is %s", domain.ErrAmountBelowMinimum, money.New(MinWithdrawal).Display())
	}

	tx, err := s.walletRepo.Withdraw(ctx, userID, money.New(value))
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			return nil, err
		}
		return nil, fmt.Errorf("wallet service: failed to withdraw %s for user %s: %w", value, userID, err)
	}

	publish(ctx, s.broker, realtime.WalletTransactionsTopic(userID), tableTransactions, realtime.EventInsert, tx.ID)
	return tx, nil
}

// SettleWithdrawal завершает или отменяет заявку на вывод
func (s *WalletService) SettleWithdrawal(ctx context.Context, txID uuid.UUID, status domain.LineStatus) (*domain.WalletTransaction, error) {
	if status != domain.LineStatusCompleted && status != domain.LineStatusCancelled {
		return nil, domain.ErrInvalidSettlement
	}

	tx, err := s.walletRepo.SettleWithdrawal(ctx, txID, status)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) || errors.Is(err, domain.ErrTransactionNotPending) {
			return nil, err
		}
		return nil, fmt.Errorf("wallet service: failed to settle withdrawal %s: %w", txID, err)
	}

	publish(ctx, s.broker, realtime.WalletTransactionsTopic(tx.UserID), tableTransactions, realtime.EventUpdate, tx.ID)
	return tx, nil
}

// parseAmount разбирает положительную сумму с точностью до цента,
// не превышающую money.MaxAmount
func parseAmount(s string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	// Доли цента не принимаются
	if !value.IsPositive() || !value.Equal(value.Round(2)) {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	if !money.WithinLimit(value) {
		return decimal.Zero, fmt.Errorf("%w: maximum is %s", domain.ErrAmountAboveMaximum, money.New(money.MaxAmount).Display())
	}
	return value, nil
}
