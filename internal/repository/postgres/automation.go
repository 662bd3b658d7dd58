package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/automation-market/marketplace/internal/domain"
	"github.com/automation-market/marketplace/internal/utils/money"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const automationColumns = `id, title, description, category, platforms, cost_cents, suggested_price_cents,
	features, requirements, media, status, assigned_user_id, rating, review_count, created_at`

// AutomationRepository реализует domain.AutomationRepository
type AutomationRepository struct {
	db DBTX
}

// NewAutomationRepository создает новый AutomationRepository
func NewAutomationRepository(db DBTX) *AutomationRepository {
	return &AutomationRepository{db: db}
}

func scanAutomation(row rowScanner) (*domain.Automation, error) {
	a := &domain.Automation{}
	var cost, price int64

	err := row.Scan(&a.ID, &a.Title, &a.Description, &a.Categories, &a.Platforms, &cost, &price,
		&a.Features, &a.Requirements, &a.Media, &a.Status, &a.AssignedUserID, &a.Rating, &a.ReviewCount, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	a.Cost = money.FromCents(cost, money.PeriodOnce)
	a.SuggestedPrice = money.FromCents(price, money.PeriodOnce)
	a.ComputeEconomics()
	return a, nil
}

// ListAutomations получает весь каталог в порядке добавления, новые первыми
func (r *AutomationRepository) ListAutomations(ctx context.Context) ([]*domain.Automation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+automationColumns+`
		 FROM automations
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list automations: %w", err)
	}
	defer rows.Close()

	var items []*domain.Automation
	for rows.Next() {
		a, err := scanAutomation(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan automation: %w", err)
		}
		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating automations: %w", err)
	}

	return items, nil
}

// GetAutomationByID получает позицию каталога по ID
func (r *AutomationRepository) GetAutomationByID(ctx context.Context, id uuid.UUID) (*domain.Automation, error) {
	a, err := scanAutomation(r.db.QueryRow(ctx,
		`SELECT `+automationColumns+` FROM automations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAutomationNotFound
		}
		return nil, fmt.Errorf("repository: failed to get automation %s: %w", id, err)
	}
	return a, nil
}

// CreateAutomation добавляет позицию в каталог
func (r *AutomationRepository) CreateAutomation(ctx context.Context, a *domain.Automation) (*domain.Automation, error) {
	costCents, priceCents, err := automationCents(a)
	if err != nil {
		return nil, err
	}

	created, err := scanAutomation(r.db.QueryRow(ctx,
		`INSERT INTO automations (title, description, category, platforms, cost_cents, suggested_price_cents,
			features, requirements, status, assigned_user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+automationColumns,
		a.Title, a.Description, a.Categories, a.Platforms, costCents, priceCents,
		a.Features, a.Requirements, a.Status, a.AssignedUserID,
	))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to create automation %q: %w", a.Title, err)
	}
	return created, nil
}

// UpdateAutomation перезаписывает редактируемые поля позиции каталога
func (r *AutomationRepository) UpdateAutomation(ctx context.Context, a *domain.Automation) error {
	costCents, priceCents, err := automationCents(a)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(ctx,
		`UPDATE automations
		 SET title = $1, description = $2, category = $3, platforms = $4,
		     cost_cents = $5, suggested_price_cents = $6, features = $7, requirements = $8,
		     status = $9, assigned_user_id = $10
		 WHERE id = $11`,
		a.Title, a.Description, a.Categories, a.Platforms, costCents, priceCents,
		a.Features, a.Requirements, a.Status, a.AssignedUserID, a.ID,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to update automation %s: %w", a.ID, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrAutomationNotFound
	}
	return nil
}

func automationCents(a *domain.Automation) (cost, price int64, err error) {
	if cost, err = storeCents(a.Cost); err != nil {
		return 0, 0, err
	}
	if price, err = storeCents(a.SuggestedPrice); err != nil {
		return 0, 0, err
	}
	return cost, price, nil
}

// AppendMedia добавляет ключ объекта в список медиа позиции
func (r *AutomationRepository) AppendMedia(ctx context.Context, id uuid.UUID, objectKey string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE automations SET media = array_append(media, $1) WHERE id = $2`,
		objectKey, id,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to append media to automation %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrAutomationNotFound
	}
	return nil
}
