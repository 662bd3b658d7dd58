package domain

import (
	"time"

	"github.com/automation-market/marketplace/internal/utils/money"
	"github.com/google/uuid"
)

// OrderInput данные формы оформления заказа
type OrderInput struct {
	ClientName    string        `json:"client_name" validate:"required,person_name"`
	ClientEmail   string        `json:"client_email" validate:"required,email"`
	ClientPhone   string        `json:"client_phone" validate:"required,phone"`
	CompanyName   string        `json:"company_name" validate:"required,max=200"`
	Industry      string        `json:"industry" validate:"required,max=100"`
	Socials       SocialHandles `json:"socials"`
	Website       string        `json:"website" validate:"omitempty,http_url"`
	AutomationID  uuid.UUID     `json:"automation_id" validate:"required"`
	AgreedPrice   string        `json:"agreed_price" validate:"required"`
	PaymentFormat PaymentFormat `json:"payment_format" validate:"required,oneof=fixed recurring"`
}

// OrderDetailsUpdate изменяемые администратором поля заказа. nil означает "не менять".
type OrderDetailsUpdate struct {
	AdminNotes              *string    `json:"admin_notes"`
	MeetingDate             *time.Time `json:"meeting_date"`
	EstimatedCompletionDate *time.Time `json:"estimated_completion_date"`
}

// LedgerLineView строка леджера для отображения
type LedgerLineView struct {
	*OrderTransaction
	Formatted string `json:"formatted_amount"`
}

// LedgerView леджер заказа: заработок отдельно от удержаний
type LedgerView struct {
	OrderID         uuid.UUID         `json:"order_id"`
	Earnings        []*LedgerLineView `json:"earnings"`
	Deductions      []*LedgerLineView `json:"deductions"`
	TotalEarnings   string            `json:"total_earnings"`
	TotalDeductions string            `json:"total_deductions"`
}

// DepositQuote расчет комиссии пополнения
type DepositQuote struct {
	Method      PaymentMethod `json:"method"`
	Amount      money.Money   `json:"amount"`
	Fee         money.Money   `json:"fee"`
	TotalCharge money.Money   `json:"total_charge"`
	Credited    money.Money   `json:"credited"`
}

// DepositInput запрос на пополнение
type DepositInput struct {
	Method     PaymentMethod `json:"method"`
	Amount     string        `json:"amount"`
	CardNumber string        `json:"card_number,omitempty"`
}

// DepositResult результат пополнения
type DepositResult struct {
	Quote       *DepositQuote      `json:"quote"`
	Transaction *WalletTransaction `json:"transaction"`
	Wallet      *Wallet            `json:"wallet"`
}

// SortKey ключ сортировки каталога
type SortKey string

const (
	SortRating    SortKey = "rating"
	SortProfit    SortKey = "profit"
	SortPopular   SortKey = "popular"
	SortPriceLow  SortKey = "price_low"
	SortPriceHigh SortKey = "price_high"
	SortNewest    SortKey = "newest"
)

// AutomationFilter параметры фильтрации каталога
type AutomationFilter struct {
	Category      string
	Search        string
	AvailableOnly bool
	Sort          SortKey
}

// AutomationInput данные позиции каталога от администратора
type AutomationInput struct {
	Title          string           `json:"title" validate:"required,max=200"`
	Description    string           `json:"description"`
	Categories     []string         `json:"category" validate:"required,min=1"`
	Platforms      []string         `json:"platforms"`
	Cost           string           `json:"cost" validate:"required"`
	SuggestedPrice string           `json:"suggested_price" validate:"required"`
	Features       []string         `json:"features"`
	Requirements   []string         `json:"requirements"`
	Status         AutomationStatus `json:"status" validate:"omitempty,oneof=Active Inactive"`
	AssignedUserID *uuid.UUID       `json:"assigned_user_id"`
}

// RegisterInput данные регистрации
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name" validate:"omitempty,person_name"`
}

// TicketInput данные нового тикета
type TicketInput struct {
	Subject     string         `json:"subject" validate:"required,max=200"`
	Description string         `json:"description" validate:"required"`
	Category    string         `json:"category" validate:"max=50"`
	Priority    TicketPriority `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

// TicketUpdate изменение статуса и приоритета тикета. Пустое значение не меняет поле.
type TicketUpdate struct {
	Status   TicketStatus   `json:"status"`
	Priority TicketPriority `json:"priority"`
}

// CustomRequestInput данные заявки на кастомную автоматизацию
type CustomRequestInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Budget      string `json:"budget"`
	Timeline    string `json:"timeline" validate:"max=100"`
}
