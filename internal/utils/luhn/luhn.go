package luhn

import "strings"

// Допустимая длина номера платежной карты
const (
	MinCardDigits = 12
	MaxCardDigits = 19
)

// Validate проверяет строку цифр по алгоритму Луна
func Validate(number string) bool {
	if number == "" {
		return false
	}

	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		ch := number[i]
		if ch < '0' || ch > '9' {
			return false
		}

		digit := int(ch - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
		double = !double
	}

	return sum%10 == 0
}

// NormalizeCard удаляет пробелы и дефисы, которыми группируют номер карты
func NormalizeCard(number string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(number)
}

// ValidateCard проверяет номер платежной карты: длину и контрольную сумму
func ValidateCard(number string) bool {
	digits := NormalizeCard(number)
	if len(digits) < MinCardDigits || len(digits) > MaxCardDigits {
		return false
	}
	return Validate(digits)
}

// Mask оставляет видимыми только последние четыре цифры номера
func Mask(number string) string {
	digits := NormalizeCard(number)
	if len(digits) <= 4 {
		return digits
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}
