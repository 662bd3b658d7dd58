package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/automation-market/marketplace/internal/domain"
	"github.com/google/uuid"
)

// ResaleListService реализует domain.ResaleListService
type ResaleListService struct {
	automationRepo domain.AutomationRepository
	listRepo       domain.UserAutomationRepository
}

// NewResaleListService создает новый ResaleListService
func NewResaleListService(automationRepo domain.AutomationRepository, listRepo domain.UserAutomationRepository) *ResaleListService {
	return &ResaleListService{
		automationRepo: automationRepo,
		listRepo:       listRepo,
	}
}

// Add добавляет автоматизацию в список, фиксируя название, цены и категорию
func (s *ResaleListService) Add(ctx context.Context, userID, automationID uuid.UUID) (*domain.UserAutomation, error) {
	a, err := s.automationRepo.GetAutomationByID(ctx, automationID)
	if err != nil {
		if errors.Is(err, domain.ErrAutomationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("resale service: failed to get automation %s: %w", automationID, err)
	}
	if a.ExclusiveTo(userID) {
		return nil, domain.ErrAutomationExclusive
	}

	ua := &domain.UserAutomation{
		UserID:       userID,
		AutomationID: a.ID,
		IsActive:     true,
		Title:        a.Title,
		Cost:         a.Cost,
		Price:        a.SuggestedPrice,
	}
	if len(a.Categories) > 0 {
		ua.Category = a.Categories[0]
	}

	created, err := s.listRepo.AddUserAutomation(ctx, ua)
	if err != nil {
		if errors.Is(err, domain.ErrAutomationAlreadyAdded) {
			return nil, err
		}
		return nil, fmt.Errorf("resale service: failed to add automation %s for user %s: %w", automationID, userID, err)
	}

	return created, nil
}

// Remove удаляет автоматизацию из списка
func (s *ResaleListService) Remove(ctx context.Context, userID, automationID uuid.UUID) error {
	if err := s.listRepo.RemoveUserAutomation(ctx, userID, automationID); err != nil {
		if errors.Is(err, domain.ErrAutomationNotFound) {
			return err
		}
		return fmt.Errorf("resale service: failed to remove automation %s for user %s: %w", automationID, userID, err)
	}
	return nil
}

// SetActive включает или выключает автоматизацию в списке
func (s *ResaleListService) SetActive(ctx context.Context, userID, automationID uuid.UUID, active bool) error {
	if err := s.listRepo.SetUserAutomationActive(ctx, userID, automationID, active); err != nil {
		if errors.Is(err, domain.ErrAutomationNotFound) {
			return err
		}
		return fmt.Errorf("resale service: failed to toggle automation %s for user %s: %w", automationID, userID, err)
	}
	return nil
}

// List возвращает список перепродажи пользователя
func (s *ResaleListService) List(ctx context.Context, userID uuid.UUID) ([]*domain.UserAutomation, error) {
	items, err := s.listRepo.GetUserAutomations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resale service: failed to list automations for user %s: %w", userID, err)
	}
	return items, nil
}
