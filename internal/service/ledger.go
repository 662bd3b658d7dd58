package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/automation-market/marketplace/internal/domain"
	"github.com/automation-market/marketplace/internal/realtime"
	"github.com/automation-market/marketplace/internal/utils/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FeeSchedule комиссии маркетплейса, удерживаемые из продажи
type FeeSchedule struct {
	MeetingFee  decimal.Decimal
	SetupFee    decimal.Decimal
	FollowUpFee decimal.Decimal
	// ServiceRate доля от прибыли (цена продажи минус себестоимость)
	ServiceRate decimal.Decimal
	// Сроки оплаты строк для разовой и регулярной оплаты
	FixedDue     time.Duration
	RecurringDue time.Duration
}

// DefaultFeeSchedule встреча $50, настройка $75, сопровождение $25, сервисный сбор 5% прибыли
func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{
		MeetingFee:   decimal.NewFromInt(50),
		SetupFee:     decimal.NewFromInt(75),
		FollowUpFee:  decimal.NewFromInt(25),
		ServiceRate:  decimal.NewFromFloat(0.05),
		FixedDue:     14 * 24 * time.Hour,
		RecurringDue: 30 * 24 * time.Hour,
	}
}

// BuildLedgerLines рассчитывает строки леджера заказа.
// Удержания отрицательные, строка payment несет чистый заработок.
func BuildLedgerLines(order *domain.Order, schedule FeeSchedule, now time.Time) []*domain.OrderTransaction {
	selling := order.AgreedPrice.Amount
	cost := order.AutomationCost.Amount

	profit := selling.Sub(cost)
	if profit.IsNegative() {
		profit = decimal.Zero
	}
	serviceFee := profit.Mul(schedule.ServiceRate).Round(2)

	due := now.Add(schedule.FixedDue)
	if order.PaymentFormat == domain.PaymentFormatRecurring {
		due = now.Add(schedule.RecurringDue)
	}

	deductions := []struct {
		lineType    domain.LedgerLineType
		amount      decimal.Decimal
		description string
	}{
		{domain.LedgerLineAutomationCost, cost, "Automation cost: " + order.AutomationTitle},
		{domain.LedgerLineMeetingFee, schedule.MeetingFee, "Discovery meeting fee"},
		{domain.LedgerLineSetupFee, schedule.SetupFee, "Setup and configuration fee"},
		{domain.LedgerLineFollowUpFee, schedule.FollowUpFee, "Follow-up support fee"},
		{domain.LedgerLineServiceFee, serviceFee, "Marketplace service fee (" + schedule.ServiceRate.Shift(2).String() + "% of profit)"},
	}

	net := selling
	lines := make([]*domain.OrderTransaction, 0, len(deductions)+1)
	for _, d := range deductions {
		net = net.Sub(d.amount)
		lines = append(lines, newLedgerLine(order, d.lineType, d.amount.Neg(), d.description, due))
	}

	// Период оплаты хранится в заказе, строка леджера всегда разовая сумма
	payment := newLedgerLine(order, domain.LedgerLinePayment, net, "Payment for order: "+order.CompanyName, due)

	return append([]*domain.OrderTransaction{payment}, lines...)
}

func newLedgerLine(order *domain.Order, lineType domain.LedgerLineType, amount decimal.Decimal, description string, due time.Time) *domain.OrderTransaction {
	return &domain.OrderTransaction{
		OrderID:     order.ID,
		UserID:      order.UserID,
		Type:        lineType,
		Amount:      money.New(amount),
		Status:      domain.LineStatusPending,
		Description: description,
		DueDate:     &due,
	}
}

// LedgerService реализует domain.LedgerService
type LedgerService struct {
	orderRepo  domain.OrderRepository
	ledgerRepo domain.LedgerRepository
	broker     realtime.Broker
	schedule   FeeSchedule
	now        func() time.Time
}

// NewLedgerService создает новый LedgerService
func NewLedgerService(
	orderRepo domain.OrderRepository,
	ledgerRepo domain.LedgerRepository,
	broker realtime.Broker,
	schedule FeeSchedule,
) *LedgerService {
	return &LedgerService{
		orderRepo:  orderRepo,
		ledgerRepo: ledgerRepo,
		broker:     broker,
		schedule:   schedule,
		now:        time.Now,
	}
}

// GetOrderLedger возвращает леджер заказа пользователя.
// Для статусов без леджера ответ пустой и генерация не выполняется.
// Если строк нет, выполняется одна генерация и строки перечитываются.
func (s *LedgerService) GetOrderLedger(ctx context.Context, userID, orderID uuid.UUID) (*domain.LedgerView, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("ledger service: failed to get order %s: %w", orderID, err)
	}
	if order.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}

	if order.Status.LedgerExempt() {
		return buildLedgerView(orderID, nil), nil
	}

	lines, err := s.ledgerRepo.GetLinesByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("ledger service: failed to get lines for order %s: %w", orderID, err)
	}

	if len(lines) == 0 {
		if _, err := s.EnsureLedger(ctx, order); err != nil {
			return nil, err
		}

		lines, err = s.ledgerRepo.GetLinesByOrderID(ctx, orderID)
		if err != nil {
			return nil, fmt.Errorf("ledger service: failed to reload lines for order %s: %w", orderID, err)
		}
	}

	return buildLedgerView(orderID, lines), nil
}

// EnsureLedger генерирует леджер заказа, если он еще не создан.
// Возвращает true, если строки были созданы этим вызовом.
func (s *LedgerService) EnsureLedger(ctx context.Context, order *domain.Order) (bool, error) {
	if order.Status.LedgerExempt() {
		return false, nil
	}

	lines := BuildLedgerLines(order, s.schedule, s.now())
	created, err := s.ledgerRepo.CreateLines(ctx, order.ID, lines)
	if err != nil {
		return false, fmt.Errorf("ledger service: failed to generate ledger for order %s: %w", order.ID, err)
	}

	if created {
		publish(ctx, s.broker, realtime.OrderTransactionsTopic(order.ID), tableOrderTransactions, realtime.EventInsert, order.ID)
	}
	return created, nil
}

// CompleteLine закрывает строку леджера. Закрытие выплаты зачисляет ее в кошелек.
func (s *LedgerService) CompleteLine(ctx context.Context, lineID uuid.UUID) (*domain.OrderTransaction, error) {
	line, err := s.ledgerRepo.CompleteLine(ctx, lineID)
	if err != nil {
		if errors.Is(err, domain.ErrLedgerLineNotFound) || errors.Is(err, domain.ErrLedgerLineFinalized) {
			return nil, err
		}
		return nil, fmt.Errorf("ledger service: failed to complete line %s: %w", lineID, err)
	}

	publish(ctx, s.broker, realtime.OrderTransactionsTopic(line.OrderID), tableOrderTransactions, realtime.EventUpdate, line.ID)
	if line.IsEarning() && line.Amount.Amount.IsPositive() {
		publish(ctx, s.broker, realtime.WalletTransactionsTopic(line.UserID), tableTransactions, realtime.EventInsert, line.ID)
	}
	return line, nil
}

// CancelLine отменяет строку леджера
func (s *LedgerService) CancelLine(ctx context.Context, lineID uuid.UUID) (*domain.OrderTransaction, error) {
	line, err := s.ledgerRepo.CancelLine(ctx, lineID)
	if err != nil {
		if errors.Is(err, domain.ErrLedgerLineNotFound) || errors.Is(err, domain.ErrLedgerLineFinalized) {
			return nil, err
		}
		return nil, fmt.Errorf("ledger service: failed to cancel line %s: %w", lineID, err)
	}

	publish(ctx, s.broker, realtime.OrderTransactionsTopic(line.OrderID), tableOrderTransactions, realtime.EventUpdate, line.ID)
	return line, nil
}

func buildLedgerView(orderID uuid.UUID, lines []*domain.OrderTransaction) *domain.LedgerView {
	view := &domain.LedgerView{
		OrderID:    orderID,
		Earnings:   []*domain.LedgerLineView{},
		Deductions: []*domain.LedgerLineView{},
	}

	earned, deducted := decimal.Zero, decimal.Zero
	for _, line := range lines {
		lv := &domain.LedgerLineView{OrderTransaction: line, Formatted: money.FormatSigned(line.Amount.Amount)}
		if line.IsEarning() {
			view.Earnings = append(view.Earnings, lv)
			earned = earned.Add(line.Amount.Amount)
		} else {
			view.Deductions = append(view.Deductions, lv)
			deducted = deducted.Add(line.Amount.Amount)
		}
	}

	view.TotalEarnings = money.FormatSigned(earned)
	view.TotalDeductions = money.FormatSigned(deducted)
	return view
}
