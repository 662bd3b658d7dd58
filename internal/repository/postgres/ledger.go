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

const ledgerColumns = `id, order_id, user_id, transaction_type, amount_cents, status, description, due_date, completed_at, created_at`

// LedgerRepository реализует domain.LedgerRepository поверх order_transactions
type LedgerRepository struct {
	db DBTX
}

// NewLedgerRepository создает новый LedgerRepository
func NewLedgerRepository(db DBTX) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func scanLedgerLine(row rowScanner) (*domain.OrderTransaction, error) {
	line := &domain.OrderTransaction{}
	var amount int64

	err := row.Scan(&line.ID, &line.OrderID, &line.UserID, &line.Type, &amount, &line.Status,
		&line.Description, &line.DueDate, &line.CompletedAt, &line.CreatedAt)
	if err != nil {
		return nil, err
	}

	line.Amount = money.FromCents(amount, money.PeriodOnce)
	return line, nil
}

// GetLinesByOrderID получает строки леджера заказа в порядке создания
func (r *LedgerRepository) GetLinesByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderTransaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+ledgerColumns+`
		 FROM order_transactions
		 WHERE order_id = $1
		 ORDER BY created_at ASC, transaction_type ASC`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to get ledger for order %s: %w", orderID, err)
	}
	defer rows.Close()

	var lines []*domain.OrderTransaction
	for rows.Next() {
		line, err := scanLedgerLine(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan ledger line: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating ledger lines: %w", err)
	}

	return lines, nil
}

// CreateLines атомарно записывает маркер генерации и строки леджера.
// Если маркер уже существует, ничего не вставляется и возвращается false.
func (r *LedgerRepository) CreateLines(ctx context.Context, orderID uuid.UUID, lines []*domain.OrderTransaction) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("repository: failed to begin ledger generation for order %s: %w", orderID, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // Rollback после Commit безопасен

	result, err := tx.Exec(ctx,
		`INSERT INTO order_ledger_generations (order_id)
		 VALUES ($1)
		 ON CONFLICT (order_id) DO NOTHING`,
		orderID,
	)
	if err != nil {
		return false, fmt.Errorf("repository: failed to mark ledger generation for order %s: %w", orderID, err)
	}
	if result.RowsAffected() == 0 {
		return false, nil
	}

	for _, line := range lines {
		_, err := tx.Exec(ctx,
			`INSERT INTO order_transactions (order_id, user_id, transaction_type, amount_cents, status, description, due_date)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			orderID, line.UserID, line.Type, line.Amount.Cents(), line.Status, line.Description, line.DueDate,
		)
		if err != nil {
			return false, fmt.Errorf("repository: failed to insert %s line for order %s: %w", line.Type, orderID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("repository: failed to commit ledger for order %s: %w", orderID, err)
	}

	return true, nil
}

// CompleteLine помечает строку выполненной. Выполнение строки payment
// в той же транзакции зачисляет заработок в кошелек пользователя.
func (r *LedgerRepository) CompleteLine(ctx context.Context, id uuid.UUID) (*domain.OrderTransaction, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to begin ledger completion %s: %w", id, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // Rollback после Commit безопасен

	line, err := lockPendingLine(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx,
		`UPDATE order_transactions
		 SET status = $1, completed_at = now()
		 WHERE id = $2
		 RETURNING completed_at`,
		domain.LineStatusCompleted, id,
	).Scan(&line.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to complete ledger line %s: %w", id, err)
	}
	line.Status = domain.LineStatusCompleted

	if line.IsEarning() && line.Amount.Amount.IsPositive() {
		if err := creditEarning(ctx, tx, line); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository: failed to commit ledger completion %s: %w", id, err)
	}

	return line, nil
}

// CancelLine отменяет ожидающую строку леджера
func (r *LedgerRepository) CancelLine(ctx context.Context, id uuid.UUID) (*domain.OrderTransaction, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to begin ledger cancellation %s: %w", id, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // Rollback после Commit безопасен

	line, err := lockPendingLine(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE order_transactions SET status = $1 WHERE id = $2`,
		domain.LineStatusCancelled, id,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to cancel ledger line %s: %w", id, err)
	}
	line.Status = domain.LineStatusCancelled

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository: failed to commit ledger cancellation %s: %w", id, err)
	}

	return line, nil
}

func lockPendingLine(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.OrderTransaction, error) {
	line, err := scanLedgerLine(tx.QueryRow(ctx,
		`SELECT `+ledgerColumns+` FROM order_transactions WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLedgerLineNotFound
		}
		return nil, fmt.Errorf("repository: failed to lock ledger line %s: %w", id, err)
	}

	if line.Status != domain.LineStatusPending {
		return nil, domain.ErrLedgerLineFinalized
	}
	return line, nil
}

func creditEarning(ctx context.Context, tx pgx.Tx, line *domain.OrderTransaction) error {
	cents := line.Amount.Cents()

	_, err := tx.Exec(ctx,
		`INSERT INTO wallets (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`,
		line.UserID,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to ensure wallet for user %s: %w", line.UserID, err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE wallets
		 SET balance_cents = balance_cents + $1,
		     total_earned_cents = total_earned_cents + $1,
		     available_for_withdrawal_cents = available_for_withdrawal_cents + $1,
		     updated_at = now()
		 WHERE user_id = $2`,
		cents, line.UserID,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to credit wallet for user %s: %w", line.UserID, err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO transactions (user_id, type, amount_cents, status, description, completed_at)
		 VALUES ($1, $2, $3, $4, $5, now())`,
		line.UserID, domain.WalletTxEarning, cents, domain.LineStatusCompleted,
		fmt.Sprintf("Earnings for order %s", line.OrderID),
	)
	if err != nil {
		return fmt.Errorf("repository: failed to record earning for user %s: %w", line.UserID, err)
	}

	return nil
}
