package postgres

import (
	"errors"
	"fmt"

	"github.com/automation-market/marketplace/internal/domain"
	"github.com/automation-market/marketplace/internal/utils/money"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// storeCents переводит сумму для записи; выход за int64 дает ErrInvalidAmount
func storeCents(m money.Money) (int64, error) {
	cents, err := m.CheckedCents()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrInvalidAmount, err)
	}
	return cents, nil
}

// positiveCents как storeCents, но принимает только положительные суммы
func positiveCents(m money.Money) (int64, error) {
	cents, err := storeCents(m)
	if err != nil {
		return 0, err
	}
	if cents <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	return cents, nil
}

// isUniqueViolation проверяет нарушение уникального ограничения
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
