package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/automation-market/marketplace/internal/domain"
	"github.com/automation-market/marketplace/internal/realtime"
	"github.com/automation-market/marketplace/internal/utils/money"
	"github.com/automation-market/marketplace/internal/utils/validate"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService реализует domain.OrderService
type OrderService struct {
	orderRepo      domain.OrderRepository
	automationRepo domain.AutomationRepository
	ledger         domain.LedgerService
	broker         realtime.Broker
	validator      *validate.Validator
	policy         domain.TransitionPolicy
	logger         *zap.Logger
}

// NewOrderService создает новый OrderService
func NewOrderService(
	orderRepo domain.OrderRepository,
	automationRepo domain.AutomationRepository,
	ledger domain.LedgerService,
	broker realtime.Broker,
	validator *validate.Validator,
	policy domain.TransitionPolicy,
	logger *zap.Logger,
) *OrderService {
	if policy == "" {
		policy = domain.TransitionPolicyStrict
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo:      orderRepo,
		automationRepo: automationRepo,
		ledger:         ledger,
		broker:         broker,
		validator:      validator,
		policy:         policy,
		logger:         logger,
	}
}

// SubmitOrder проверяет форму заказа и создает заказ в статусе order_created
func (s *OrderService) SubmitOrder(ctx context.Context, userID uuid.UUID, input domain.OrderInput) (*domain.Order, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	agreed := money.ParseDisplay(input.AgreedPrice)
	if !agreed.Amount.IsPositive() {
		errs := &validate.Errors{}
		errs.Add("agreed_price", "must be a positive amount")
		return nil, errs
	}
	if !money.WithinLimit(agreed.Amount) {
		errs := &validate.Errors{}
		errs.Add("agreed_price", "must not exceed "+money.New(money.MaxAmount).Display())
		return nil, errs
	}
	if input.PaymentFormat == domain.PaymentFormatRecurring && agreed.Period == money.PeriodOnce {
		agreed.Period = money.PeriodMonthly
	}

	automation, err := s.automationRepo.GetAutomationByID(ctx, input.AutomationID)
	if err != nil {
		if errors.Is(err, domain.ErrAutomationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("order service: failed to get automation %s: %w", input.AutomationID, err)
	}
	if automation.ExclusiveTo(userID) {
		return nil, domain.ErrAutomationExclusive
	}
	if automation.Status != domain.AutomationActive {
		return nil, domain.ErrAutomationInactive
	}

	order := &domain.Order{
		UserID:          userID,
		ClientName:      input.ClientName,
		ClientEmail:     input.ClientEmail,
		ClientPhone:     input.ClientPhone,
		CompanyName:     input.CompanyName,
		Industry:        input.Industry,
		Socials:         input.Socials,
		Website:         input.Website,
		AutomationID:    automation.ID,
		AutomationTitle: automation.Title,
		AutomationPrice: automation.SuggestedPrice,
		AutomationCost:  automation.Cost,
		AgreedPrice:     agreed,
		PaymentFormat:   input.PaymentFormat,
		Status:          domain.OrderStatusCreated,
	}
	if len(automation.Categories) > 0 {
		order.AutomationCategory = automation.Categories[0]
	}

	created, err := s.orderRepo.CreateOrder(ctx, order)
	if err != nil {
		if errors.Is(err, domain.ErrAutomationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("order service: failed to submit order for user %s: %w", userID, err)
	}

	publish(ctx, s.broker, realtime.OrdersTopic(userID), tableOrders, realtime.EventInsert, created.ID)
	return created, nil
}

// GetOrders получает все заказы пользователя
func (s *OrderService) GetOrders(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	orders, err := s.orderRepo.GetOrdersByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("order service: failed to get orders for user %s: %w", userID, err)
	}

	return orders, nil
}

// GetOrder получает заказ пользователя. Чужой заказ неотличим от несуществующего.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("order service: failed to get order %s: %w", orderID, err)
	}

	if order.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}

	return order, nil
}

// ListAllOrders получает заказы всех пользователей, пустой статус означает без фильтра
func (s *OrderService) ListAllOrders(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	if status != "" && !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	orders, err := s.orderRepo.ListOrders(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("order service: failed to list orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus переводит заказ в новый статус по политике переходов.
// Выход из статусов без леджера запускает генерацию леджера.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	if !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("order service: failed to get order %s: %w", orderID, err)
	}

	if order.Status == status {
		return order, nil
	}

	if !s.policy.Allows(order.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, status)
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, orderID, order.Status, status); err != nil {
		if errors.Is(err, domain.ErrStatusChanged) {
			return nil, err
		}
		return nil, fmt.Errorf("order service: failed to update order %s status: %w", orderID, err)
	}

	updated, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("order service: failed to reload order %s: %w", orderID, err)
	}

	publish(ctx, s.broker, realtime.OrdersTopic(updated.UserID), tableOrders, realtime.EventUpdate, updated.ID)

	// Ошибку генерации не возвращаем: статус уже сохранен, леджер досоздаст фоновый воркер
	if !updated.Status.LedgerExempt() && s.ledger != nil {
		if _, err := s.ledger.EnsureLedger(ctx, updated); err != nil {
			s.logger.Warn("failed to generate ledger after status change",
				zap.String("order_id", updated.ID.String()),
				zap.String("status", string(updated.Status)),
				zap.Error(err),
			)
		}
	}

	return updated, nil
}

// UpdateDetails обновляет заметки и даты заказа
func (s *OrderService) UpdateDetails(ctx context.Context, orderID uuid.UUID, update domain.OrderDetailsUpdate) (*domain.Order, error) {
	if err := s.orderRepo.UpdateOrderDetails(ctx, orderID, update); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("order service: failed to update order %s details: %w", orderID, err)
	}

	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("order service: failed to reload order %s: %w", orderID, err)
	}

	publish(ctx, s.broker, realtime.OrdersTopic(order.UserID), tableOrders, realtime.EventUpdate, order.ID)
	return order, nil
}
