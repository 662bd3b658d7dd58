package domain

import "errors"

// Ошибки пользователей
var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
)

// Ошибки заказов
var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("order status transition not allowed")
	ErrStatusChanged     = errors.New("order status changed concurrently")
)

// Ошибки леджера
var (
	ErrLedgerLineNotFound  = errors.New("ledger line not found")
	ErrLedgerLineFinalized = errors.New("ledger line already finalized")
)

// Ошибки кошелька
var (
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrAmountBelowMinimum    = errors.New("amount below minimum")
	ErrAmountAboveMaximum    = errors.New("amount above maximum")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrUnknownPaymentMethod  = errors.New("unknown payment method")
	ErrInvalidCardNumber     = errors.New("invalid card number")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrTransactionNotPending = errors.New("transaction is not pending")
	ErrInvalidSettlement     = errors.New("settlement status must be completed or cancelled")
)

// Ошибки каталога
var (
	ErrAutomationNotFound     = errors.New("automation not found")
	ErrAutomationAlreadyAdded = errors.New("automation already in list")
	ErrAutomationExclusive    = errors.New("automation is exclusive to another user")
	ErrAutomationInactive     = errors.New("automation is not active")
	ErrMediaStorageDisabled   = errors.New("media storage is not configured")
)

// Ошибки поддержки и заявок
var (
	ErrTicketNotFound        = errors.New("ticket not found")
	ErrCustomRequestNotFound = errors.New("custom request not found")
	ErrInvalidTicketUpdate   = errors.New("invalid ticket status or priority")
	ErrInvalidRequestStatus  = errors.New("invalid custom request status")
)
