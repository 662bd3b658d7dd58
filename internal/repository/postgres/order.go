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

const orderColumns = `id, user_id, client_name, client_email, client_phone, company_name, industry,
	instagram, facebook, linkedin, twitter, tiktok, website,
	automation_id, automation_title, automation_price_cents, automation_price_period, automation_category,
	automation_cost_cents, agreed_price_cents, agreed_price_period, payment_format,
	status, admin_notes, meeting_date, estimated_completion_date, actual_completion_date,
	created_at, updated_at`

// rowScanner общий интерфейс pgx.Row и pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// OrderRepository реализует domain.OrderRepository
type OrderRepository struct {
	db DBTX
}

// NewOrderRepository создает новый OrderRepository
func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	o := &domain.Order{}
	var automationPrice, automationCost, agreedPrice int64
	var automationPeriod, agreedPer money.Period

	err := row.Scan(
		&o.ID, &o.UserID, &o.ClientName, &o.ClientEmail, &o.ClientPhone, &o.CompanyName, &o.Industry,
		&o.Socials.Instagram, &o.Socials.Facebook, &o.Socials.LinkedIn, &o.Socials.Twitter, &o.Socials.TikTok, &o.Website,
		&o.AutomationID, &o.AutomationTitle, &automationPrice, &automationPeriod, &o.AutomationCategory,
		&automationCost, &agreedPrice, &agreedPer, &o.PaymentFormat,
		&o.Status, &o.AdminNotes, &o.MeetingDate, &o.EstimatedCompletionDate, &o.ActualCompletionDate,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.AutomationPrice = money.FromCents(automationPrice, automationPeriod)
	o.AutomationCost = money.FromCents(automationCost, money.PeriodOnce)
	o.AgreedPrice = money.FromCents(agreedPrice, agreedPer)
	return o, nil
}

func collectOrders(rows pgx.Rows) ([]*domain.Order, error) {
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating orders: %w", err)
	}

	return orders, nil
}

// CreateOrder создает заказ в статусе order_created.
// Себестоимость автоматизации фиксируется на момент заказа для расчета леджера.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	priceCents, err := storeCents(order.AutomationPrice)
	if err != nil {
		return nil, err
	}
	agreedCents, err := positiveCents(order.AgreedPrice)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO orders (
			user_id, client_name, client_email, client_phone, company_name, industry,
			instagram, facebook, linkedin, twitter, tiktok, website,
			automation_id, automation_title, automation_price_cents, automation_price_period, automation_category,
			automation_cost_cents, agreed_price_cents, agreed_price_period, payment_format, status
		 )
		 SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			a.id, a.title, $13, $14, $15, a.cost_cents, $16, $17, $18, $19
		 FROM automations a
		 WHERE a.id = $20
		 RETURNING `+orderColumns,
		order.UserID, order.ClientName, order.ClientEmail, order.ClientPhone, order.CompanyName, order.Industry,
		order.Socials.Instagram, order.Socials.Facebook, order.Socials.LinkedIn, order.Socials.Twitter, order.Socials.TikTok, order.Website,
		priceCents, order.AutomationPrice.Period, order.AutomationCategory,
		agreedCents, order.AgreedPrice.Period, order.PaymentFormat, domain.OrderStatusCreated,
		order.AutomationID,
	)

	created, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAutomationNotFound
		}
		return nil, fmt.Errorf("repository: failed to create order for user %s: %w", order.UserID, err)
	}

	return created, nil
}

// GetOrderByID получает заказ по ID
func (r *OrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+orderColumns+`
		 FROM orders
		 WHERE id = $1`,
		id,
	)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("repository: failed to get order %s: %w", id, err)
	}

	return order, nil
}

// GetOrdersByUserID получает все заказы пользователя, новые первыми
func (r *OrderRepository) GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+`
		 FROM orders
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to get orders for user %s: %w", userID, err)
	}

	return collectOrders(rows)
}

// ListOrders получает все заказы, опционально с фильтром по статусу
func (r *OrderRepository) ListOrders(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+`
		 FROM orders
		 WHERE $1 = '' OR status = $1
		 ORDER BY created_at DESC`,
		string(status),
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list orders: %w", err)
	}

	return collectOrders(rows)
}

// UpdateOrderStatus обновляет статус заказа, если он все еще равен from.
// Ноль обновленных строк значит, что статус успели сменить.
// При успешном завершении фиксируется фактическая дата завершения.
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) error {
	result, err := r.db.Exec(ctx,
		`UPDATE orders
		 SET status = $1,
		     actual_completion_date = CASE WHEN $1 = $2 THEN now() ELSE actual_completion_date END,
		     updated_at = now()
		 WHERE id = $3 AND status = $4`,
		to, domain.OrderStatusCompletedSuccessfully, id, from,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to update order %s status: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %s is no longer %s", domain.ErrStatusChanged, id, from)
	}

	return nil
}

// UpdateOrderDetails обновляет заметки и даты заказа, nil поля не меняются
func (r *OrderRepository) UpdateOrderDetails(ctx context.Context, id uuid.UUID, update domain.OrderDetailsUpdate) error {
	result, err := r.db.Exec(ctx,
		`UPDATE orders
		 SET admin_notes = COALESCE($1, admin_notes),
		     meeting_date = COALESCE($2, meeting_date),
		     estimated_completion_date = COALESCE($3, estimated_completion_date),
		     updated_at = now()
		 WHERE id = $4`,
		update.AdminNotes, update.MeetingDate, update.EstimatedCompletionDate, id,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to update order %s details: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

// GetOrdersAwaitingLedger получает заказы вне начальных статусов без сгенерированного леджера
func (r *OrderRepository) GetOrdersAwaitingLedger(ctx context.Context, limit int) ([]*domain.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+`
		 FROM orders o
		 WHERE o.status NOT IN ($1, $2)
		   AND NOT EXISTS (SELECT 1 FROM order_ledger_generations g WHERE g.order_id = o.id)
		 ORDER BY o.updated_at ASC
		 LIMIT $3`,
		domain.OrderStatusCreated, domain.OrderStatusRequestUnderReview, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to get orders awaiting ledger: %w", err)
	}

	return collectOrders(rows)
}
