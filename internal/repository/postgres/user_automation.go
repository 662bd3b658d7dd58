package postgres

import (
	"context"
	"fmt"

	"github.com/automation-market/marketplace/internal/domain"
	"github.com/automation-market/marketplace/internal/utils/money"
	"github.com/google/uuid"
)

const userAutomationColumns = `id, user_id, automation_id, is_active, title, cost_cents, price_cents, category, created_at`

// UserAutomationRepository реализует domain.UserAutomationRepository
type UserAutomationRepository struct {
	db DBTX
}

// NewUserAutomationRepository создает новый UserAutomationRepository
func NewUserAutomationRepository(db DBTX) *UserAutomationRepository {
	return &UserAutomationRepository{db: db}
}

func scanUserAutomation(row rowScanner) (*domain.UserAutomation, error) {
	ua := &domain.UserAutomation{}
	var cost, price int64

	err := row.Scan(&ua.ID, &ua.UserID, &ua.AutomationID, &ua.IsActive, &ua.Title, &cost, &price, &ua.Category, &ua.CreatedAt)
	if err != nil {
		return nil, err
	}

	ua.Cost = money.FromCents(cost, money.PeriodOnce)
	ua.Price = money.FromCents(price, money.PeriodOnce)
	return ua, nil
}

// AddUserAutomation добавляет автоматизацию в список перепродажи пользователя
func (r *UserAutomationRepository) AddUserAutomation(ctx context.Context, ua *domain.UserAutomation) (*domain.UserAutomation, error) {
	created, err := scanUserAutomation(r.db.QueryRow(ctx,
		`INSERT INTO user_automations (user_id, automation_id, is_active, title, cost_cents, price_cents, category)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+userAutomationColumns,
		ua.UserID, ua.AutomationID, ua.IsActive, ua.Title, ua.Cost.Cents(), ua.Price.Cents(), ua.Category,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAutomationAlreadyAdded
		}
		return nil, fmt.Errorf("repository: failed to add automation %s for user %s: %w", ua.AutomationID, ua.UserID, err)
	}
	return created, nil
}

// RemoveUserAutomation удаляет автоматизацию из списка пользователя
func (r *UserAutomationRepository) RemoveUserAutomation(ctx context.Context, userID, automationID uuid.UUID) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM user_automations WHERE user_id = $1 AND automation_id = $2`,
		userID, automationID,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to remove automation %s for user %s: %w", automationID, userID, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrAutomationNotFound
	}
	return nil
}

// SetUserAutomationActive включает или выключает автоматизацию в списке
func (r *UserAutomationRepository) SetUserAutomationActive(ctx context.Context, userID, automationID uuid.UUID, active bool) error {
	result, err := r.db.Exec(ctx,
		`UPDATE user_automations SET is_active = $1 WHERE user_id = $2 AND automation_id = $3`,
		active, userID, automationID,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to toggle automation %s for user %s: %w", automationID, userID, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrAutomationNotFound
	}
	return nil
}

// GetUserAutomations получает список перепродажи пользователя
func (r *UserAutomationRepository) GetUserAutomations(ctx context.Context, userID uuid.UUID) ([]*domain.UserAutomation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userAutomationColumns+`
		 FROM user_automations
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to get automations for user %s: %w", userID, err)
	}
	defer rows.Close()

	var items []*domain.UserAutomation
	for rows.Next() {
		ua, err := scanUserAutomation(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan user automation: %w", err)
		}
		items = append(items, ua)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating user automations: %w", err)
	}

	return items, nil
}
