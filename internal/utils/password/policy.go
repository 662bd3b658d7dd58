package password

import (
	"strings"
	"unicode"
)

// MinLength минимальная длина пароля
const MinLength = 8

// commonWords слова, которые не должны встречаться в пароле
var commonWords = []string{
	"password", "qwerty", "admin", "letmein", "welcome",
	"monkey", "dragon", "master", "login", "abc123", "123456",
}

// Weakness описывает одно нарушение политики паролей
type Weakness string

const (
	WeakTooShort   Weakness = "at least 8 characters"
	WeakNoUpper    Weakness = "an uppercase letter"
	WeakNoLower    Weakness = "a lowercase letter"
	WeakNoDigit    Weakness = "a digit"
	WeakNoSpecial  Weakness = "a special character"
	WeakCommonWord Weakness = "no common words"
)

// StrengthError перечисляет все нарушения политики паролей
type StrengthError struct {
	Missing []Weakness
}

func (e *StrengthError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, w := range e.Missing {
		parts[i] = string(w)
	}
	return "password must contain " + strings.Join(parts, ", ")
}

// ValidateStrength проверяет пароль по политике и возвращает *StrengthError
func ValidateStrength(password string) error {
	var missing []Weakness

	if len([]rune(password)) < MinLength {
		missing = append(missing, WeakTooShort)
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r), unicode.IsSpace(r):
			special = true
		}
	}

	if !upper {
		missing = append(missing, WeakNoUpper)
	}
	if !lower {
		missing = append(missing, WeakNoLower)
	}
	if !digit {
		missing = append(missing, WeakNoDigit)
	}
	if !special {
		missing = append(missing, WeakNoSpecial)
	}
	if containsCommonWord(password) {
		missing = append(missing, WeakCommonWord)
	}

	if len(missing) > 0 {
		return &StrengthError{Missing: missing}
	}
	return nil
}

func containsCommonWord(password string) bool {
	lower := strings.ToLower(password)
	for _, w := range commonWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
