package validate

import (
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	phoneChars  = regexp.MustCompile(`^\+?[0-9 ().\-]+$`)
	personName  = regexp.MustCompile(`^\p{L}[\p{L} .'\-]{1,99}$`)
	socialLogin = regexp.MustCompile(`^@?[A-Za-z0-9._]{1,30}$`)
)

// Errors ошибки валидации формы: поле -> сообщение
type Errors struct {
	Fields map[string]string `json:"errors"`
}

// Add добавляет ошибку поля, первая ошибка поля сохраняется
func (e *Errors) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

// Err возвращает nil, если ошибок нет
func (e *Errors) Err() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *Errors) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator проверяет формы по тегам validate
type Validator struct {
	v *validator.Validate
}

// New создает валидатор с правилами маркетплейса: phone, person_name, social
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return Phone(fl.Field().String())
	})
	_ = v.RegisterValidation("person_name", func(fl validator.FieldLevel) bool {
		return Name(fl.Field().String())
	})
	_ = v.RegisterValidation("social", func(fl validator.FieldLevel) bool {
		return SocialHandle(fl.Field().String())
	})

	return &Validator{v: v}
}

// Struct проверяет форму и возвращает *Errors с сообщениями по полям
func (val *Validator) Struct(form any) error {
	err := val.v.Struct(form)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	errs := &Errors{}
	for _, fe := range fieldErrs {
		errs.Add(fe.Field(), message(fe))
	}
	return errs.Err()
}

// Phone проверяет телефон: допустимые символы форматирования и 7-15 цифр
func Phone(s string) bool {
	if !phoneChars.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7 && digits <= 15
}

// Name проверяет имя человека: буквы, пробелы, точки, апострофы и дефисы
func Name(s string) bool {
	return personName.MatchString(strings.TrimSpace(s))
}

// SocialHandle принимает логин вида @handle или ссылку на профиль
func SocialHandle(s string) bool {
	if socialLogin.MatchString(s) {
		return true
	}
	lower := strings.ToLower(s)
	return (strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")) &&
		len(s) > len("https://") && !strings.ContainsAny(s, " \t")
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be a valid phone number"
	case "person_name":
		return "must contain only letters and be 2-100 characters long"
	case "http_url", "url":
		return "must be a valid http(s) URL"
	case "social":
		return "must be a handle or a profile URL"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}
