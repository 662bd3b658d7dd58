package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency валюта по умолчанию для всех сумм маркетплейса
const DefaultCurrency = "USD"

// Period представляет период оплаты
type Period string

const (
	PeriodOnce    Period = "once"
	PeriodMonthly Period = "month"
	PeriodYearly  Period = "year"
)

// MaxAmount наибольшая сумма одной операции маркетплейса
var MaxAmount = decimal.NewFromInt(1_000_000)

// ErrOutOfRange сумма не помещается в int64 центов
var ErrOutOfRange = errors.New("amount out of range")

var (
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// Money представляет денежную сумму с валютой и периодом оплаты
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Period   Period          `json:"period"`
}

// New создает разовую сумму в валюте по умолчанию
func New(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: DefaultCurrency, Period: PeriodOnce}
}

// FromCents создает сумму из целого числа центов
func FromCents(cents int64, period Period) Money {
	if period == "" {
		period = PeriodOnce
	}
	return Money{Amount: decimal.New(cents, -2), Currency: DefaultCurrency, Period: period}
}

// Cents возвращает сумму в центах с округлением до цента.
// Для записи в хранилище используется CheckedCents.
func (m Money) Cents() int64 {
	return m.Amount.Round(2).Shift(2).IntPart()
}

// CheckedCents как Cents, но сообщает о выходе за диапазон int64
func (m Money) CheckedCents() (int64, error) {
	return ToCents(m.Amount)
}

// Display форматирует сумму для отображения, например "$1,200/month"
func (m Money) Display() string {
	s := "$" + groupThousands(m.Amount.Abs().StringFixed(2))
	if m.Amount.IsNegative() {
		s = "-" + s
	}
	switch m.Period {
	case PeriodMonthly, PeriodYearly:
		s += "/" + string(m.Period)
	}
	return s
}

func (m Money) String() string {
	return m.Display()
}

// ToCents переводит десятичную сумму в центы.
// Сумма вне диапазона int64 дает ErrOutOfRange.
func ToCents(d decimal.Decimal) (int64, error) {
	cents := d.Round(2).Shift(2)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return 0, fmt.Errorf("%w: %s", ErrOutOfRange, d)
	}
	return cents.IntPart(), nil
}

// WithinLimit сообщает, что модуль суммы не превышает MaxAmount
func WithinLimit(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(MaxAmount)
}

// CentsToDecimal переводит центы в десятичную сумму
func CentsToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ParseSellingPrice извлекает число из строки цены вида "$1,200/month".
// Удаляются все символы кроме цифр, точки и минуса.
// Некорректный ввод дает ноль.
func ParseSellingPrice(display string) decimal.Decimal {
	var b strings.Builder
	for _, r := range display {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseDisplay разбирает строку цены в Money, определяя период по суффиксу
func ParseDisplay(display string) Money {
	m := New(ParseSellingPrice(display))

	lower := strings.ToLower(display)
	switch {
	case strings.Contains(lower, "/mo"), strings.Contains(lower, "month"):
		m.Period = PeriodMonthly
	case strings.Contains(lower, "/yr"), strings.Contains(lower, "year"), strings.Contains(lower, "annual"):
		m.Period = PeriodYearly
	}
	return m
}

// FormatSigned форматирует сумму транзакции со знаком: -$45.50 / +$45.50
func FormatSigned(amount decimal.Decimal) string {
	sign := "+"
	if amount.IsNegative() {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s", sign, amount.Abs().StringFixed(2))
}

func groupThousands(fixed string) string {
	intPart, frac, _ := strings.Cut(fixed, ".")
	if len(intPart) <= 3 {
		return fixed
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + "." + frac
}
