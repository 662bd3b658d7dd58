package domain

import (
	"time"

	"github.com/automation-market/marketplace/internal/utils/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Role представляет роль пользователя
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User представляет профиль пользователя
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// PaymentFormat представляет формат оплаты заказа
type PaymentFormat string

const (
	PaymentFormatFixed     PaymentFormat = "fixed"
	PaymentFormatRecurring PaymentFormat = "recurring"
)

// SocialHandles необязательные ссылки клиента в соцсетях
type SocialHandles struct {
	Instagram string `json:"instagram,omitempty" validate:"omitempty,social"`
	Facebook  string `json:"facebook,omitempty" validate:"omitempty,social"`
	LinkedIn  string `json:"linkedin,omitempty" validate:"omitempty,social"`
	Twitter   string `json:"twitter,omitempty" validate:"omitempty,social"`
	TikTok    string `json:"tiktok,omitempty" validate:"omitempty,social"`
}

// Order представляет заказ клиента на конкретную автоматизацию
type Order struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`

	ClientName  string        `json:"client_name"`
	ClientEmail string        `json:"client_email"`
	ClientPhone string        `json:"client_phone"`
	CompanyName string        `json:"company_name"`
	Industry    string        `json:"industry"`
	Socials     SocialHandles `json:"socials"`
	Website     string        `json:"website,omitempty"`

	AutomationID       uuid.UUID     `json:"automation_id"`
	AutomationTitle    string        `json:"automation_title"`
	AutomationPrice    money.Money   `json:"automation_price"`
	AutomationCategory string        `json:"automation_category"`
	AutomationCost     money.Money   `json:"automation_cost"`
	AgreedPrice        money.Money   `json:"agreed_price"`
	PaymentFormat      PaymentFormat `json:"payment_format"`

	Status                  OrderStatus `json:"status"`
	AdminNotes              string      `json:"admin_notes,omitempty"`
	MeetingDate             *time.Time  `json:"meeting_date,omitempty"`
	EstimatedCompletionDate *time.Time  `json:"estimated_completion_date,omitempty"`
	ActualCompletionDate    *time.Time  `json:"actual_completion_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LedgerLineType тип строки леджера заказа
type LedgerLineType string

const (
	LedgerLinePayment        LedgerLineType = "payment"
	LedgerLineAutomationCost LedgerLineType = "automation_cost"
	LedgerLineMeetingFee     LedgerLineType = "meeting_fee"
	LedgerLineSetupFee       LedgerLineType = "setup_fee"
	LedgerLineFollowUpFee    LedgerLineType = "follow_up_fee"
	LedgerLineServiceFee     LedgerLineType = "service_fee"
)

// LineStatus статус строки леджера или транзакции кошелька
type LineStatus string

const (
	LineStatusPending   LineStatus = "pending"
	LineStatusCompleted LineStatus = "completed"
	LineStatusCancelled LineStatus = "cancelled"
)

// OrderTransaction строка леджера заказа: комиссия, затраты или выплата
type OrderTransaction struct {
	ID          uuid.UUID      `json:"id"`
	OrderID     uuid.UUID      `json:"order_id"`
	UserID      uuid.UUID      `json:"user_id"`
	Type        LedgerLineType `json:"transaction_type"`
	Amount      money.Money    `json:"amount"`
	Status      LineStatus     `json:"status"`
	Description string         `json:"description"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// IsEarning сообщает, что строка отображается как заработок пользователя
func (t *OrderTransaction) IsEarning() bool {
	return t.Type == LedgerLinePayment
}

// Wallet агрегат баланса пользователя
type Wallet struct {
	UserID                 uuid.UUID   `json:"user_id"`
	Balance                money.Money `json:"balance"`
	TotalEarned            money.Money `json:"total_earned"`
	TotalWithdrawn         money.Money `json:"total_withdrawn"`
	AvailableForWithdrawal money.Money `json:"available_for_withdrawal"`
	UpdatedAt              time.Time   `json:"updated_at"`
}

// WalletTransactionType тип операции кошелька
type WalletTransactionType string

const (
	WalletTxDeposit    WalletTransactionType = "deposit"
	WalletTxWithdrawal WalletTransactionType = "withdrawal"
	WalletTxEarning    WalletTransactionType = "earning"
)

// PaymentMethod симулированный способ оплаты
type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodPayPal       PaymentMethod = "paypal"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// WalletTransaction операция по кошельку
type WalletTransaction struct {
	ID            uuid.UUID             `json:"id"`
	UserID        uuid.UUID             `json:"user_id"`
	Type          WalletTransactionType `json:"type"`
	Amount        money.Money           `json:"amount"`
	Fee           money.Money           `json:"fee"`
	Status        LineStatus            `json:"status"`
	PaymentMethod PaymentMethod         `json:"payment_method,omitempty"`
	Description   string                `json:"description"`
	CreatedAt     time.Time             `json:"created_at"`
	CompletedAt   *time.Time            `json:"completed_at,omitempty"`
}

// AutomationStatus статус позиции каталога
type AutomationStatus string

const (
	AutomationActive   AutomationStatus = "Active"
	AutomationInactive AutomationStatus = "Inactive"
)

// Automation позиция каталога автоматизаций
type Automation struct {
	ID             uuid.UUID        `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Categories     []string         `json:"category"`
	Platforms      []string         `json:"platforms"`
	Cost           money.Money      `json:"cost"`
	SuggestedPrice money.Money      `json:"suggested_price"`
	Profit         money.Money      `json:"profit"`
	Margin         float64          `json:"margin"`
	Features       []string         `json:"features"`
	Requirements   []string         `json:"requirements"`
	Media          []string         `json:"media"`
	Status         AutomationStatus `json:"status"`
	AssignedUserID *uuid.UUID       `json:"assigned_user_id,omitempty"`
	Rating         float64          `json:"rating"`
	ReviewCount    int              `json:"review_count"`
	CreatedAt      time.Time        `json:"created_at"`
}

// ComputeEconomics пересчитывает прибыль и маржу из себестоимости и рекомендованной цены.
// Маржа в процентах от цены, при нулевой цене маржа равна нулю.
func (a *Automation) ComputeEconomics() {
	profit := a.SuggestedPrice.Amount.Sub(a.Cost.Amount)
	a.Profit = money.Money{Amount: profit, Currency: a.SuggestedPrice.Currency, Period: a.SuggestedPrice.Period}
	a.Margin = 0
	if a.SuggestedPrice.Amount.IsPositive() {
		a.Margin, _ = profit.Div(a.SuggestedPrice.Amount).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	}
}

// ExclusiveTo сообщает, что позиция закреплена за другим пользователем
func (a *Automation) ExclusiveTo(viewerID uuid.UUID) bool {
	return a.AssignedUserID != nil && *a.AssignedUserID != viewerID
}

// UserAutomation автоматизация в списке перепродажи пользователя
type UserAutomation struct {
	ID           uuid.UUID   `json:"id"`
	UserID       uuid.UUID   `json:"user_id"`
	AutomationID uuid.UUID   `json:"automation_id"`
	IsActive     bool        `json:"is_active"`
	Title        string      `json:"title"`
	Cost         money.Money `json:"cost"`
	Price        money.Money `json:"price"`
	Category     string      `json:"category"`
	CreatedAt    time.Time   `json:"created_at"`
}

// CustomRequestStatus статус заявки на кастомную автоматизацию
type CustomRequestStatus string

const (
	CustomRequestPending   CustomRequestStatus = "pending"
	CustomRequestReviewing CustomRequestStatus = "reviewing"
	CustomRequestApproved  CustomRequestStatus = "approved"
	CustomRequestRejected  CustomRequestStatus = "rejected"
	CustomRequestCompleted CustomRequestStatus = "completed"
)

// CustomRequest заявка на разработку автоматизации
type CustomRequest struct {
	ID          uuid.UUID           `json:"id"`
	UserID      uuid.UUID           `json:"user_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Budget      money.Money         `json:"budget"`
	Timeline    string              `json:"timeline"`
	Status      CustomRequestStatus `json:"status"`
	AdminNotes  string              `json:"admin_notes,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// TicketStatus статус тикета поддержки
type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

// TicketPriority приоритет тикета
type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

// SupportTicket обращение пользователя в поддержку
type SupportTicket struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"user_id"`
	Subject     string            `json:"subject"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Status      TicketStatus      `json:"status"`
	Priority    TicketPriority    `json:"priority"`
	Messages    []*SupportMessage `json:"messages,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// SupportMessage сообщение в треде тикета
type SupportMessage struct {
	ID        uuid.UUID `json:"id"`
	TicketID  uuid.UUID `json:"ticket_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Body      string    `json:"message"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

// SecurityEvent конверт события безопасности от клиента
type SecurityEvent struct {
	Timestamp time.Time      `json:"timestamp"`
	Event     string         `json:"event"`
	Details   map[string]any `json:"details,omitempty"`
	UserAgent string         `json:"user_agent"`
	URL       string         `json:"url"`
	SessionID string         `json:"session_id"`
}
