package postgres

import (
	"context"
	"fmt"

	"github.com/automation-market/marketplace/internal/domain"
	"github.com/automation-market/marketplace/internal/utils/money"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const customRequestColumns = `id, user_id, title, description, budget_cents, timeline, status, admin_notes, created_at, updated_at`

// CustomRequestRepository реализует domain.CustomRequestRepository
type CustomRequestRepository struct {
	db DBTX
}

// NewCustomRequestRepository создает новый CustomRequestRepository
func NewCustomRequestRepository(db DBTX) *CustomRequestRepository {
	return &CustomRequestRepository{db: db}
}

func scanCustomRequest(row rowScanner) (*domain.CustomRequest, error) {
	req := &domain.CustomRequest{}
	var budget int64

	err := row.Scan(&req.ID, &req.UserID, &req.Title, &req.Description, &budget, &req.Timeline,
		&req.Status, &req.AdminNotes, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}

	req.Budget = money.FromCents(budget, money.PeriodOnce)
	return req, nil
}

func collectCustomRequests(rows pgx.Rows) ([]*domain.CustomRequest, error) {
	defer rows.Close()

	var reqs []*domain.CustomRequest
	for rows.Next() {
		req, err := scanCustomRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan custom request: %w", err)
		}
		reqs = append(reqs, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating custom requests: %w", err)
	}

	return reqs, nil
}

// CreateCustomRequest создает заявку в статусе pending
func (r *CustomRequestRepository) CreateCustomRequest(ctx context.Context, req *domain.CustomRequest) (*domain.CustomRequest, error) {
	budgetCents, err := storeCents(req.Budget)
	if err != nil {
		return nil, err
	}

	created, err := scanCustomRequest(r.db.QueryRow(ctx,
		`INSERT INTO custom_requests (user_id, title, description, budget_cents, timeline, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+customRequestColumns,
		req.UserID, req.Title, req.Description, budgetCents, req.Timeline, domain.CustomRequestPending,
	))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to create custom request for user %s: %w", req.UserID, err)
	}
	return created, nil
}

// GetCustomRequestsByUserID получает заявки пользователя, новые первыми
func (r *CustomRequestRepository) GetCustomRequestsByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.CustomRequest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+customRequestColumns+`
		 FROM custom_requests
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to get custom requests for user %s: %w", userID, err)
	}
	return collectCustomRequests(rows)
}

// ListCustomRequests получает все заявки
func (r *CustomRequestRepository) ListCustomRequests(ctx context.Context) ([]*domain.CustomRequest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+customRequestColumns+`
		 FROM custom_requests
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list custom requests: %w", err)
	}
	return collectCustomRequests(rows)
}

// UpdateCustomRequestStatus меняет статус заявки и заметки администратора
func (r *CustomRequestRepository) UpdateCustomRequestStatus(ctx context.Context, id uuid.UUID, status domain.CustomRequestStatus, notes string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE custom_requests
		 SET status = $1, admin_notes = $2, updated_at = now()
		 WHERE id = $3`,
		status, notes, id,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to update custom request %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrCustomRequestNotFound
	}
	return nil
}
