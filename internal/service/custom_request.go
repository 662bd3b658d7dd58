package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/automation-market/marketplace/internal/domain"
	"github.com/automation-market/marketplace/internal/utils/money"
	"github.com/automation-market/marketplace/internal/utils/validate"
	"github.com/google/uuid"
)

var customRequestStatuses = map[domain.CustomRequestStatus]bool{
	domain.CustomRequestPending:   true,
	domain.CustomRequestReviewing: true,
	domain.CustomRequestApproved:  true,
	domain.CustomRequestRejected:  true,
	domain.CustomRequestCompleted: true,
}

// CustomRequestService реализует domain.CustomRequestService
type CustomRequestService struct {
	repo      domain.CustomRequestRepository
	validator *validate.Validator
}

// NewCustomRequestService создает новый CustomRequestService
func NewCustomRequestService(repo domain.CustomRequestRepository, validator *validate.Validator) *CustomRequestService {
	return &CustomRequestService{
		repo:      repo,
		validator: validator,
	}
}

// Create создает заявку на разработку автоматизации
func (s *CustomRequestService) Create(ctx context.Context, userID uuid.UUID, input domain.CustomRequestInput) (*domain.CustomRequest, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	budget := money.ParseDisplay(input.Budget)
	if budget.Amount.IsNegative() || !money.WithinLimit(budget.Amount) {
		errs := &validate.Errors{}
		errs.Add("budget", "must be between $0.00 and "+money.New(money.MaxAmount).Display())
		return nil, errs
	}

	created, err := s.repo.CreateCustomRequest(ctx, &domain.CustomRequest{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Budget:      budget,
		Timeline:    input.Timeline,
	})
	if err != nil {
		return nil, fmt.Errorf("custom request service: failed to create request for user %s: %w", userID, err)
	}
	return created, nil
}

// GetMine возвращает заявки пользователя
func (s *CustomRequestService) GetMine(ctx context.Context, userID uuid.UUID) ([]*domain.CustomRequest, error) {
	reqs, err := s.repo.GetCustomRequestsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("custom request service: failed to get requests for user %s: %w", userID, err)
	}
	return reqs, nil
}

// ListAll возвращает заявки всех пользователей
func (s *CustomRequestService) ListAll(ctx context.Context) ([]*domain.CustomRequest, error) {
	reqs, err := s.repo.ListCustomRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("custom request service: failed to list requests: %w", err)
	}
	return reqs, nil
}

// UpdateStatus меняет статус заявки и заметки администратора
func (s *CustomRequestService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CustomRequestStatus, notes string) error {
	if !customRequestStatuses[status] {
		return domain.ErrInvalidRequestStatus
	}

	if err := s.repo.UpdateCustomRequestStatus(ctx, id, status, notes); err != nil {
		if errors.Is(err, domain.ErrCustomRequestNotFound) {
			return err
		}
		return fmt.Errorf("custom request service: failed to update request %s: %w", id, err)
	}
	return nil
}
