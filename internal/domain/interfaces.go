package domain

import (
	"context"

	"github.com/automation-market/marketplace/internal/utils/money"
	"github.com/google/uuid"
)

// UserRepository определяет методы для работы с профилями
type UserRepository interface {
	CreateUser(ctx context.Context, email, fullName, passwordHash string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
}

// OrderRepository определяет методы для работы с заказами
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) (*Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error)
	GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]*Order, error)
	ListOrders(ctx context.Context, status OrderStatus) ([]*Order, error)
	// UpdateOrderStatus меняет статус, только если текущий равен from
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, from, to OrderStatus) error
	UpdateOrderDetails(ctx context.Context, id uuid.UUID, update OrderDetailsUpdate) error
	GetOrdersAwaitingLedger(ctx context.Context, limit int) ([]*Order, error)
}

// LedgerRepository определяет методы для работы с леджером заказов
type LedgerRepository interface {
	GetLinesByOrderID(ctx context.Context, orderID uuid.UUID) ([]*OrderTransaction, error)
	CreateLines(ctx context.Context, orderID uuid.UUID, lines []*OrderTransaction) (bool, error)
	CompleteLine(ctx context.Context, id uuid.UUID) (*OrderTransaction, error)
	CancelLine(ctx context.Context, id uuid.UUID) (*OrderTransaction, error)
}

// WalletRepository определяет методы для работы с кошельками
type WalletRepository interface {
	GetOrCreateWallet(ctx context.Context, userID uuid.UUID) (*Wallet, error)
	Deposit(ctx context.Context, userID uuid.UUID, quote *DepositQuote) (*WalletTransaction, error)
	Withdraw(ctx context.Context, userID uuid.UUID, amount money.Money) (*WalletTransaction, error)
	SettleWithdrawal(ctx context.Context, txID uuid.UUID, status LineStatus) (*WalletTransaction, error)
	GetTransactions(ctx context.Context, userID uuid.UUID) ([]*WalletTransaction, error)
}

// AutomationRepository определяет методы для работы с каталогом
type AutomationRepository interface {
	ListAutomations(ctx context.Context) ([]*Automation, error)
	GetAutomationByID(ctx context.Context, id uuid.UUID) (*Automation, error)
	CreateAutomation(ctx context.Context, a *Automation) (*Automation, error)
	UpdateAutomation(ctx context.Context, a *Automation) error
	AppendMedia(ctx context.Context, id uuid.UUID, objectKey string) error
}

// UserAutomationRepository определяет методы для работы со списком перепродажи
type UserAutomationRepository interface {
	AddUserAutomation(ctx context.Context, ua *UserAutomation) (*UserAutomation, error)
	RemoveUserAutomation(ctx context.Context, userID, automationID uuid.UUID) error
	SetUserAutomationActive(ctx context.Context, userID, automationID uuid.UUID, active bool) error
	GetUserAutomations(ctx context.Context, userID uuid.UUID) ([]*UserAutomation, error)
}

// SupportRepository определяет методы для работы с тикетами
type SupportRepository interface {
	CreateTicket(ctx context.Context, ticket *SupportTicket) (*SupportTicket, error)
	GetTicketByID(ctx context.Context, id uuid.UUID) (*SupportTicket, error)
	GetTicketsByUserID(ctx context.Context, userID uuid.UUID) ([]*SupportTicket, error)
	ListTickets(ctx context.Context, status TicketStatus) ([]*SupportTicket, error)
	UpdateTicket(ctx context.Context, id uuid.UUID, update TicketUpdate) error
	AddMessage(ctx context.Context, msg *SupportMessage) (*SupportMessage, error)
	GetMessages(ctx context.Context, ticketID uuid.UUID) ([]*SupportMessage, error)
}

// CustomRequestRepository определяет методы для работы с заявками
type CustomRequestRepository interface {
	CreateCustomRequest(ctx context.Context, req *CustomRequest) (*CustomRequest, error)
	GetCustomRequestsByUserID(ctx context.Context, userID uuid.UUID) ([]*CustomRequest, error)
	ListCustomRequests(ctx context.Context) ([]*CustomRequest, error)
	UpdateCustomRequestStatus(ctx context.Context, id uuid.UUID, status CustomRequestStatus, notes string) error
}

// AuthService определяет методы аутентификации.
// clientKey идентифицирует клиента для ограничения попыток (обычно User-Agent).
type AuthService interface {
	Register(ctx context.Context, input RegisterInput, clientKey string) (string, error)
	Login(ctx context.Context, email, password, clientKey string) (string, error)
}

// OrderService определяет методы работы с заказами
type OrderService interface {
	SubmitOrder(ctx context.Context, userID uuid.UUID, input OrderInput) (*Order, error)
	GetOrders(ctx context.Context, userID uuid.UUID) ([]*Order, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*Order, error)
	ListAllOrders(ctx context.Context, status OrderStatus) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status OrderStatus) (*Order, error)
	UpdateDetails(ctx context.Context, orderID uuid.UUID, update OrderDetailsUpdate) (*Order, error)
}

// LedgerService определяет методы работы с леджером заказа
type LedgerService interface {
	GetOrderLedger(ctx context.Context, userID, orderID uuid.UUID) (*LedgerView, error)
	EnsureLedger(ctx context.Context, order *Order) (bool, error)
	CompleteLine(ctx context.Context, lineID uuid.UUID) (*OrderTransaction, error)
	CancelLine(ctx context.Context, lineID uuid.UUID) (*OrderTransaction, error)
}

// WalletService определяет методы работы с кошельком
type WalletService interface {
	GetWallet(ctx context.Context, userID uuid.UUID) (*Wallet, error)
	GetTransactions(ctx context.Context, userID uuid.UUID) ([]*WalletTransaction, error)
	QuoteDeposit(method PaymentMethod, amount string) (*DepositQuote, error)
	Deposit(ctx context.Context, userID uuid.UUID, input DepositInput) (*DepositResult, error)
	Withdraw(ctx context.Context, userID uuid.UUID, amount string) (*WalletTransaction, error)
	SettleWithdrawal(ctx context.Context, txID uuid.UUID, status LineStatus) (*WalletTransaction, error)
}

// CatalogService определяет методы работы с каталогом автоматизаций
type CatalogService interface {
	ListAutomations(ctx context.Context, viewerID uuid.UUID, filter AutomationFilter) ([]*Automation, error)
	GetAutomation(ctx context.Context, viewerID, id uuid.UUID) (*Automation, error)
	CreateAutomation(ctx context.Context, input AutomationInput) (*Automation, error)
	UpdateAutomation(ctx context.Context, id uuid.UUID, input AutomationInput) (*Automation, error)
	UploadMedia(ctx context.Context, id uuid.UUID, filename string, data []byte) (*Automation, error)
}

// ResaleListService определяет методы работы со списком перепродажи
type ResaleListService interface {
	Add(ctx context.Context, userID, automationID uuid.UUID) (*UserAutomation, error)
	Remove(ctx context.Context, userID, automationID uuid.UUID) error
	SetActive(ctx context.Context, userID, automationID uuid.UUID, active bool) error
	List(ctx context.Context, userID uuid.UUID) ([]*UserAutomation, error)
}

// SupportService определяет методы работы с поддержкой
type SupportService interface {
	CreateTicket(ctx context.Context, userID uuid.UUID, input TicketInput) (*SupportTicket, error)
	GetTickets(ctx context.Context, userID uuid.UUID) ([]*SupportTicket, error)
	GetTicket(ctx context.Context, userID, ticketID uuid.UUID, staff bool) (*SupportTicket, error)
	Reply(ctx context.Context, userID, ticketID uuid.UUID, body string, staff bool) (*SupportMessage, error)
	ListTickets(ctx context.Context, status TicketStatus) ([]*SupportTicket, error)
	UpdateTicket(ctx context.Context, ticketID uuid.UUID, update TicketUpdate) error
}

// CustomRequestService определяет методы работы с заявками
type CustomRequestService interface {
	Create(ctx context.Context, userID uuid.UUID, input CustomRequestInput) (*CustomRequest, error)
	GetMine(ctx context.Context, userID uuid.UUID) ([]*CustomRequest, error)
	ListAll(ctx context.Context) ([]*CustomRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status CustomRequestStatus, notes string) error
}

// SecurityService принимает события безопасности от клиентов
type SecurityService interface {
	Record(ctx context.Context, payload []byte) error
}

// MediaStore хранилище медиафайлов каталога
type MediaStore interface {
	Upload(ctx context.Context, data []byte, originalFilename string) (string, error)
	Remove(ctx context.Context, key string) error
}
