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

const (
	walletColumns      = `user_id, balance_cents, total_earned_cents, total_withdrawn_cents, available_for_withdrawal_cents, updated_at`
	walletTxColumns    = `id, user_id, type, amount_cents, fee_cents, status, payment_method, description, created_at, completed_at`
	withdrawalDescText = "Withdrawal request"
)

// WalletRepository реализует domain.WalletRepository
type WalletRepository struct {
	db DBTX
}

// NewWalletRepository создает новый WalletRepository
func NewWalletRepository(db DBTX) *WalletRepository {
	return &WalletRepository{db: db}
}

func scanWallet(row rowScanner) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	var balance, earned, withdrawn, available int64

	if err := row.Scan(&w.UserID, &balance, &earned, &withdrawn, &available, &w.UpdatedAt); err != nil {
		return nil, err
	}

	w.Balance = money.FromCents(balance, money.PeriodOnce)
	w.TotalEarned = money.FromCents(earned, money.PeriodOnce)
	w.TotalWithdrawn = money.FromCents(withdrawn, money.PeriodOnce)
	w.AvailableForWithdrawal = money.FromCents(available, money.PeriodOnce)
	return w, nil
}

func scanWalletTx(row rowScanner) (*domain.WalletTransaction, error) {
	t := &domain.WalletTransaction{}
	var amount, fee int64

	err := row.Scan(&t.ID, &t.UserID, &t.Type, &amount, &fee, &t.Status, &t.PaymentMethod,
		&t.Description, &t.CreatedAt, &t.CompletedAt)
	if err != nil {
		return nil, err
	}

	t.Amount = money.FromCents(amount, money.PeriodOnce)
	t.Fee = money.FromCents(fee, money.PeriodOnce)
	return t, nil
}

// GetOrCreateWallet получает кошелек пользователя, создавая пустой при первом обращении
func (r *WalletRepository) GetOrCreateWallet(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO wallets (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to create wallet for user %s: %w", userID, err)
	}

	wallet, err := scanWallet(r.db.QueryRow(ctx,
		`SELECT `+walletColumns+` FROM wallets WHERE user_id = $1`, userID))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to get wallet for user %s: %w", userID, err)
	}

	return wallet, nil
}

// Deposit записывает завершенное пополнение и увеличивает баланс на сумму пополнения.
// Комиссия сохраняется в транзакции, но баланс не уменьшает.
func (r *WalletRepository) Deposit(ctx context.Context, userID uuid.UUID, quote *domain.DepositQuote) (*domain.WalletTransaction, error) {
	cents, err := positiveCents(quote.Amount)
	if err != nil {
		return nil, err
	}
	feeCents, err := storeCents(quote.Fee)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to begin deposit for user %s: %w", userID, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // Rollback после Commit безопасен

	_, err = tx.Exec(ctx,
		`INSERT INTO wallets (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to ensure wallet for user %s: %w", userID, err)
	}

	created, err := scanWalletTx(tx.QueryRow(ctx,
		`INSERT INTO transactions (user_id, type, amount_cents, fee_cents, status, payment_method, description, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		 RETURNING `+walletTxColumns,
		userID, domain.WalletTxDeposit, cents, feeCents, domain.LineStatusCompleted,
		quote.Method, fmt.Sprintf("Deposit via %s", quote.Method),
	))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to insert deposit for user %s: %w", userID, err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE wallets
		 SET balance_cents = balance_cents + $1,
		     total_earned_cents = total_earned_cents + $1,
		     updated_at = now()
		 WHERE user_id = $2`,
		cents, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to credit deposit for user %s: %w", userID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository: failed to commit deposit for user %s: %w", userID, err)
	}

	return created, nil
}

// Withdraw создает ожидающий вывод средств с блокировкой строки кошелька.
// Уменьшается только доступная к выводу сумма, баланс меняется при проведении.
func (r *WalletRepository) Withdraw(ctx context.Context, userID uuid.UUID, amount money.Money) (*domain.WalletTransaction, error) {
	// Отрицательная сумма увеличила бы доступный остаток
	cents, err := positiveCents(amount)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to begin withdrawal for user %s: %w", userID, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // Rollback после Commit безопасен

	// Блокировка строки кошелька исключает параллельный вывод одной суммы
	var available int64
	err = tx.QueryRow(ctx,
		`SELECT available_for_withdrawal_cents FROM wallets WHERE user_id = $1 FOR UPDATE`,
		userID,
	).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInsufficientFunds
		}
		return nil, fmt.Errorf("repository: failed to lock wallet for user %s: %w", userID, err)
	}

	if cents > available {
		return nil, domain.ErrInsufficientFunds
	}

	created, err := scanWalletTx(tx.QueryRow(ctx,
		`INSERT INTO transactions (user_id, type, amount_cents, status, description)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+walletTxColumns,
		userID, domain.WalletTxWithdrawal, -cents, domain.LineStatusPending, withdrawalDescText,
	))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to insert withdrawal for user %s: %w", userID, err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE wallets
		 SET available_for_withdrawal_cents = available_for_withdrawal_cents - $1,
		     updated_at = now()
		 WHERE user_id = $2`,
		cents, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to reserve withdrawal for user %s: %w", userID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository: failed to commit withdrawal for user %s: %w", userID, err)
	}

	return created, nil
}

// SettleWithdrawal проводит или отменяет ожидающий вывод.
// completed списывает баланс, cancelled возвращает сумму в доступную к выводу.
func (r *WalletRepository) SettleWithdrawal(ctx context.Context, txID uuid.UUID, status domain.LineStatus) (*domain.WalletTransaction, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to begin settlement %s: %w", txID, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // Rollback после Commit безопасен

	wtx, err := scanWalletTx(tx.QueryRow(ctx,
		`SELECT `+walletTxColumns+` FROM transactions WHERE id = $1 AND type = $2 FOR UPDATE`,
		txID, domain.WalletTxWithdrawal,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("repository: failed to lock withdrawal %s: %w", txID, err)
	}
	if wtx.Status != domain.LineStatusPending {
		return nil, domain.ErrTransactionNotPending
	}

	err = tx.QueryRow(ctx,
		`UPDATE transactions SET status = $1, completed_at = now() WHERE id = $2 RETURNING completed_at`,
		status, txID,
	).Scan(&wtx.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to settle withdrawal %s: %w", txID, err)
	}
	wtx.Status = status

	// Сумма вывода хранится со знаком минус
	cents := -wtx.Amount.Cents()

	query := `UPDATE wallets
		 SET balance_cents = balance_cents - $1,
		     total_withdrawn_cents = total_withdrawn_cents + $1,
		     updated_at = now()
		 WHERE user_id = $2`
	if status == domain.LineStatusCancelled {
		query = `UPDATE wallets
		 SET available_for_withdrawal_cents = available_for_withdrawal_cents + $1,
		     updated_at = now()
		 WHERE user_id = $2`
	}

	if _, err := tx.Exec(ctx, query, cents, wtx.UserID); err != nil {
		return nil, fmt.Errorf("repository: failed to apply settlement %s: %w", txID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository: failed to commit settlement %s: %w", txID, err)
	}

	return wtx, nil
}

// GetTransactions получает историю операций кошелька, новые первыми
func (r *WalletRepository) GetTransactions(ctx context.Context, userID uuid.UUID) ([]*domain.WalletTransaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+walletTxColumns+`
		 FROM transactions
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to get transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	var txs []*domain.WalletTransaction
	for rows.Next() {
		t, err := scanWalletTx(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan transaction: %w", err)
		}
		txs = append(txs, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating transactions: %w", err)
	}

	return txs, nil
}
