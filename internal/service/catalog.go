package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/automation-market/marketplace/internal/domain"
	"github.com/automation-market/marketplace/internal/utils/money"
	"github.com/automation-market/marketplace/internal/utils/validate"
	"github.com/google/uuid"
)

// FilterAutomations фильтрует и сортирует каталог для пользователя viewerID.
// Позиции, закрепленные за другими пользователями, не показываются.
// Сортировка стабильная, newest и неизвестный ключ сохраняют исходный порядок.
func FilterAutomations(items []*domain.Automation, filter domain.AutomationFilter, viewerID uuid.UUID) []*domain.Automation {
	category := normalizeCategory(filter.Category)
	if category == "all" {
		category = ""
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]*domain.Automation, 0, len(items))
	for _, a := range items {
		if a.ExclusiveTo(viewerID) {
			continue
		}
		if category != "" && !hasCategory(a, category) {
			continue
		}
		if search != "" && !matchesSearch(a, search) {
			continue
		}
		if filter.AvailableOnly && a.Status != domain.AutomationActive {
			continue
		}
		out = append(out, a)
	}

	var less func(a, b *domain.Automation) bool
	switch filter.Sort {
	case domain.SortRating:
		less = func(a, b *domain.Automation) bool { return a.Rating > b.Rating }
	case domain.SortProfit:
		less = func(a, b *domain.Automation) bool { return a.Profit.Amount.GreaterThan(b.Profit.Amount) }
	case domain.SortPopular:
		less = func(a, b *domain.Automation) bool { return a.ReviewCount > b.ReviewCount }
	case domain.SortPriceLow:
		less = func(a, b *domain.Automation) bool { return a.SuggestedPrice.Amount.LessThan(b.SuggestedPrice.Amount) }
	case domain.SortPriceHigh:
		less = func(a, b *domain.Automation) bool {
			return a.SuggestedPrice.Amount.GreaterThan(b.SuggestedPrice.Amount)
		}
	}
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}

	return out
}

func normalizeCategory(c string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(c)), " ", "-")
}

func hasCategory(a *domain.Automation, category string) bool {
	for _, c := range a.Categories {
		if normalizeCategory(c) == category {
			return true
		}
	}
	return false
}

func matchesSearch(a *domain.Automation, search string) bool {
	if strings.Contains(strings.ToLower(a.Title), search) || strings.Contains(strings.ToLower(a.Description), search) {
		return true
	}
	for _, list := range [][]string{a.Platforms, a.Features} {
		for _, v := range list {
			if strings.Contains(strings.ToLower(v), search) {
				return true
			}
		}
	}
	return false
}

// CatalogService реализует domain.CatalogService
type CatalogService struct {
	repo      domain.AutomationRepository
	media     domain.MediaStore
	validator *validate.Validator
}

// NewCatalogService создает новый CatalogService. media может быть nil,
// тогда загрузка медиа отключена.
func NewCatalogService(repo domain.AutomationRepository, media domain.MediaStore, validator *validate.Validator) *CatalogService {
	return &CatalogService{
		repo:      repo,
		media:     media,
		validator: validator,
	}
}

// ListAutomations возвращает каталог с фильтрами и сортировкой
func (s *CatalogService) ListAutomations(ctx context.Context, viewerID uuid.UUID, filter domain.AutomationFilter) ([]*domain.Automation, error) {
	items, err := s.repo.ListAutomations(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog service: failed to list automations: %w", err)
	}

	return FilterAutomations(items, filter, viewerID), nil
}

// GetAutomation возвращает позицию каталога. Чужая эксклюзивная позиция не видна.
func (s *CatalogService) GetAutomation(ctx context.Context, viewerID, id uuid.UUID) (*domain.Automation, error) {
	a, err := s.repo.GetAutomationByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAutomationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("catalog service: failed to get automation %s: %w", id, err)
	}

	if a.ExclusiveTo(viewerID) {
		return nil, domain.ErrAutomationNotFound
	}
	return a, nil
}

// CreateAutomation добавляет позицию в каталог
func (s *CatalogService) CreateAutomation(ctx context.Context, input domain.AutomationInput) (*domain.Automation, error) {
	a := &domain.Automation{}
	if err := s.apply(a, input); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateAutomation(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("catalog service: failed to create automation %q: %w", input.Title, err)
	}

	return created, nil
}

// UpdateAutomation заменяет данные позиции каталога
func (s *CatalogService) UpdateAutomation(ctx context.Context, id uuid.UUID, input domain.AutomationInput) (*domain.Automation, error) {
	a, err := s.repo.GetAutomationByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAutomationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("catalog service: failed to get automation %s: %w", id, err)
	}

	if err := s.apply(a, input); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateAutomation(ctx, a); err != nil {
		if errors.Is(err, domain.ErrAutomationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("catalog service: failed to update automation %s: %w", id, err)
	}

	return a, nil
}

// UploadMedia сохраняет файл в хранилище и добавляет ключ объекта к позиции
func (s *CatalogService) UploadMedia(ctx context.Context, id uuid.UUID, filename string, data []byte) (*domain.Automation, error) {
	if s.media == nil {
		return nil, domain.ErrMediaStorageDisabled
	}
	if len(data) == 0 {
		errs := &validate.Errors{}
		errs.Add("file", "is required")
		return nil, errs
	}

	a, err := s.repo.GetAutomationByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAutomationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("catalog service: failed to get automation %s: %w", id, err)
	}

	key, err := s.media.Upload(ctx, data, filename)
	if err != nil {
		return nil, fmt.Errorf("catalog service: failed to upload media for %s: %w", id, err)
	}

	if err := s.repo.AppendMedia(ctx, id, key); err != nil {
		// Объект без ссылки из каталога удаляется
		_ = s.media.Remove(ctx, key)
		if errors.Is(err, domain.ErrAutomationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("catalog service: failed to attach media to %s: %w", id, err)
	}

	a.Media = append(a.Media, key)
	return a, nil
}

func (s *CatalogService) apply(a *domain.Automation, input domain.AutomationInput) error {
	if err := s.validator.Struct(input); err != nil {
		return err
	}

	cost := money.ParseDisplay(input.Cost)
	price := money.ParseDisplay(input.SuggestedPrice)

	errs := &validate.Errors{}
	if cost.Amount.IsNegative() {
		errs.Add("cost", "must not be negative")
	}
	if !money.WithinLimit(cost.Amount) {
		errs.Add("cost", "must not exceed "+money.New(money.MaxAmount).Display())
	}
	if !price.Amount.IsPositive() {
		errs.Add("suggested_price", "must be a positive amount")
	} else if !money.WithinLimit(price.Amount) {
		errs.Add("suggested_price", "must not exceed "+money.New(money.MaxAmount).Display())
	}
	if err := errs.Err(); err != nil {
		return err
	}

	a.Title = input.Title
	a.Description = input.Description
	a.Categories = input.Categories
	a.Platforms = input.Platforms
	a.Cost = cost
	a.SuggestedPrice = price
	a.Features = input.Features
	a.Requirements = input.Requirements
	a.AssignedUserID = input.AssignedUserID
	a.Status = input.Status
	if a.Status == "" {
		a.Status = domain.AutomationActive
	}
	a.ComputeEconomics()
	return nil
}
