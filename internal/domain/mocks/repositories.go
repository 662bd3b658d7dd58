// Package mocks содержит testify-моки интерфейсов домена
package mocks

import (
	"context"

	"github.com/automation-market/marketplace/internal/domain"
	"github.com/automation-market/marketplace/internal/utils/money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// TestingT часть *testing.T, нужная мокам
type TestingT interface {
	mock.TestingT
	Cleanup(func())
}

func setup(m *mock.Mock, t TestingT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// UserRepositoryMock мок domain.UserRepository
type UserRepositoryMock struct{ mock.Mock }

// NewUserRepositoryMock создает мок и проверяет ожидания по завершении теста
func NewUserRepositoryMock(t TestingT) *UserRepositoryMock {
	m := &UserRepositoryMock{}
	setup(&m.Mock, t)
	return m
}

func (m *UserRepositoryMock) CreateUser(ctx context.Context, email, fullName, passwordHash string) (*domain.User, error) {
	args := m.Called(ctx, email, fullName, passwordHash)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

// OrderRepositoryMock мок domain.OrderRepository
type OrderRepositoryMock struct{ mock.Mock }

// NewOrderRepositoryMock создает мок и проверяет ожидания по завершении теста
func NewOrderRepositoryMock(t TestingT) *OrderRepositoryMock {
	m := &OrderRepositoryMock{}
	setup(&m.Mock, t)
	return m
}

func (m *OrderRepositoryMock) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	args := m.Called(ctx, order)
	created, _ := args.Get(0).(*domain.Order)
	return created, args.Error(1)
}

func (m *OrderRepositoryMock) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*domain.Order)
	return order, args.Error(1)
}

func (m *OrderRepositoryMock) GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]*domain.Order)
	return orders, args.Error(1)
}

func (m *OrderRepositoryMock) ListOrders(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	args := m.Called(ctx, status)
	orders, _ := args.Get(0).([]*domain.Order)
	return orders, args.Error(1)
}

func (m *OrderRepositoryMock) UpdateOrderStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *OrderRepositoryMock) UpdateOrderDetails(ctx context.Context, id uuid.UUID, update domain.OrderDetailsUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *OrderRepositoryMock) GetOrdersAwaitingLedger(ctx context.Context, limit int) ([]*domain.Order, error) {
	args := m.Called(ctx, limit)
	orders, _ := args.Get(0).([]*domain.Order)
	return orders, args.Error(1)
}

// LedgerRepositoryMock мок domain.LedgerRepository
type LedgerRepositoryMock struct{ mock.Mock }

// NewLedgerRepositoryMock создает мок и проверяет ожидания по завершении теста
func NewLedgerRepositoryMock(t TestingT) *LedgerRepositoryMock {
	m := &LedgerRepositoryMock{}
	setup(&m.Mock, t)
	return m
}

func (m *LedgerRepositoryMock) GetLinesByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderTransaction, error) {
	args := m.Called(ctx, orderID)
	lines, _ := args.Get(0).([]*domain.OrderTransaction)
	return lines, args.Error(1)
}

func (m *LedgerRepositoryMock) CreateLines(ctx context.Context, orderID uuid.UUID, lines []*domain.OrderTransaction) (bool, error) {
	args := m.Called(ctx, orderID, lines)
	return args.Bool(0), args.Error(1)
}

func (m *LedgerRepositoryMock) CompleteLine(ctx context.Context, id uuid.UUID) (*domain.OrderTransaction, error) {
	args := m.Called(ctx, id)
	line, _ := args.Get(0).(*domain.OrderTransaction)
	return line, args.Error(1)
}

func (m *LedgerRepositoryMock) CancelLine(ctx context.Context, id uuid.UUID) (*domain.OrderTransaction, error) {
	args := m.Called(ctx, id)
	line, _ := args.Get(0).(*domain.OrderTransaction)
	return line, args.Error(1)
}

// WalletRepositoryMock мок domain.WalletRepository
type WalletRepositoryMock struct{ mock.Mock }

// NewWalletRepositoryMock создает мок и проверяет ожидания по завершении теста
func NewWalletRepositoryMock(t TestingT) *WalletRepositoryMock {
	m := &WalletRepositoryMock{}
	setup(&m.Mock, t)
	return m
}

func (m *WalletRepositoryMock) GetOrCreateWallet(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	args := m.Called(ctx, userID)
	wallet, _ := args.Get(0).(*domain.Wallet)
	return wallet, args.Error(1)
}

func (m *WalletRepositoryMock) Deposit(ctx context.Context, userID uuid.UUID, quote *domain.DepositQuote) (*domain.WalletTransaction, error) {
	args := m.Called(ctx, userID, quote)
	tx, _ := args.Get(0).(*domain.WalletTransaction)
	return tx, args.Error(1)
}

func (m *WalletRepositoryMock) Withdraw(ctx context.Context, userID uuid.UUID, amount money.Money) (*domain.WalletTransaction, error) {
	args := m.Called(ctx, userID, amount)
	tx, _ := args.Get(0).(*domain.WalletTransaction)
	return tx, args.Error(1)
}

func (m *WalletRepositoryMock) SettleWithdrawal(ctx context.Context, txID uuid.UUID, status domain.LineStatus) (*domain.WalletTransaction, error) {
	args := m.Called(ctx, txID, status)
	tx, _ := args.Get(0).(*domain.WalletTransaction)
	return tx, args.Error(1)
}

func (m *WalletRepositoryMock) GetTransactions(ctx context.Context, userID uuid.UUID) ([]*domain.WalletTransaction, error) {
	args := m.Called(ctx, userID)
	txs, _ := args.Get(0).([]*domain.WalletTransaction)
	return txs, args.Error(1)
}

// AutomationRepositoryMock мок domain.AutomationRepository
type AutomationRepositoryMock struct{ mock.Mock }

// NewAutomationRepositoryMock создает мок и проверяет ожидания по завершении теста
func NewAutomationRepositoryMock(t TestingT) *AutomationRepositoryMock {
	m := &AutomationRepositoryMock{}
	setup(&m.Mock, t)
	return m
}

func (m *AutomationRepositoryMock) ListAutomations(ctx context.Context) ([]*domain.Automation, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]*domain.Automation)
	return items, args.Error(1)
}

func (m *AutomationRepositoryMock) GetAutomationByID(ctx context.Context, id uuid.UUID) (*domain.Automation, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*domain.Automation)
	return a, args.Error(1)
}

func (m *AutomationRepositoryMock) CreateAutomation(ctx context.Context, a *domain.Automation) (*domain.Automation, error) {
	args := m.Called(ctx, a)
	created, _ := args.Get(0).(*domain.Automation)
	return created, args.Error(1)
}

func (m *AutomationRepositoryMock) UpdateAutomation(ctx context.Context, a *domain.Automation) error {
	return m.Called(ctx, a).Error(0)
}

func (m *AutomationRepositoryMock) AppendMedia(ctx context.Context, id uuid.UUID, objectKey string) error {
	return m.Called(ctx, id, objectKey).Error(0)
}

// UserAutomationRepositoryMock мок domain.UserAutomationRepository
type UserAutomationRepositoryMock struct{ mock.Mock }

// NewUserAutomationRepositoryMock создает мок и проверяет ожидания по завершении теста
func NewUserAutomationRepositoryMock(t TestingT) *UserAutomationRepositoryMock {
	m := &UserAutomationRepositoryMock{}
	setup(&m.Mock, t)
	return m
}

func (m *UserAutomationRepositoryMock) AddUserAutomation(ctx context.Context, ua *domain.UserAutomation) (*domain.UserAutomation, error) {
	args := m.Called(ctx, ua)
	created, _ := args.Get(0).(*domain.UserAutomation)
	return created, args.Error(1)
}

func (m *UserAutomationRepositoryMock) RemoveUserAutomation(ctx context.Context, userID, automationID uuid.UUID) error {
	return m.Called(ctx, userID, automationID).Error(0)
}

func (m *UserAutomationRepositoryMock) SetUserAutomationActive(ctx context.Context, userID, automationID uuid.UUID, active bool) error {
	return m.Called(ctx, userID, automationID, active).Error(0)
}

func (m *UserAutomationRepositoryMock) GetUserAutomations(ctx context.Context, userID uuid.UUID) ([]*domain.UserAutomation, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]*domain.UserAutomation)
	return items, args.Error(1)
}

// SupportRepositoryMock мок domain.SupportRepository
type SupportRepositoryMock struct{ mock.Mock }

// NewSupportRepositoryMock создает мок и проверяет ожидания по завершении теста
func NewSupportRepositoryMock(t TestingT) *SupportRepositoryMock {
	m := &SupportRepositoryMock{}
	setup(&m.Mock, t)
	return m
}

func (m *SupportRepositoryMock) CreateTicket(ctx context.Context, ticket *domain.SupportTicket) (*domain.SupportTicket, error) {
	args := m.Called(ctx, ticket)
	created, _ := args.Get(0).(*domain.SupportTicket)
	return created, args.Error(1)
}

func (m *SupportRepositoryMock) GetTicketByID(ctx context.Context, id uuid.UUID) (*domain.SupportTicket, error) {
	args := m.Called(ctx, id)
	ticket, _ := args.Get(0).(*domain.SupportTicket)
	return ticket, args.Error(1)
}

func (m *SupportRepositoryMock) GetTicketsByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.SupportTicket, error) {
	args := m.Called(ctx, userID)
	tickets, _ := args.Get(0).([]*domain.SupportTicket)
	return tickets, args.Error(1)
}

func (m *SupportRepositoryMock) ListTickets(ctx context.Context, status domain.TicketStatus) ([]*domain.SupportTicket, error) {
	args := m.Called(ctx, status)
	tickets, _ := args.Get(0).([]*domain.SupportTicket)
	return tickets, args.Error(1)
}

func (m *SupportRepositoryMock) UpdateTicket(ctx context.Context, id uuid.UUID, update domain.TicketUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *SupportRepositoryMock) AddMessage(ctx context.Context, msg *domain.SupportMessage) (*domain.SupportMessage, error) {
	args := m.Called(ctx, msg)
	created, _ := args.Get(0).(*domain.SupportMessage)
	return created, args.Error(1)
}

func (m *SupportRepositoryMock) GetMessages(ctx context.Context, ticketID uuid.UUID) ([]*domain.SupportMessage, error) {
	args := m.Called(ctx, ticketID)
	messages, _ := args.Get(0).([]*domain.SupportMessage)
	return messages, args.Error(1)
}

// CustomRequestRepositoryMock мок domain.CustomRequestRepository
type CustomRequestRepositoryMock struct{ mock.Mock }

// NewCustomRequestRepositoryMock создает мок и проверяет ожидания по завершении теста
func NewCustomRequestRepositoryMock(t TestingT) *CustomRequestRepositoryMock {
	m := &CustomRequestRepositoryMock{}
	setup(&m.Mock, t)
	return m
}

func (m *CustomRequestRepositoryMock) CreateCustomRequest(ctx context.Context, req *domain.CustomRequest) (*domain.CustomRequest, error) {
	args := m.Called(ctx, req)
	created, _ := args.Get(0).(*domain.CustomRequest)
	return created, args.Error(1)
}

func (m *CustomRequestRepositoryMock) GetCustomRequestsByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.CustomRequest, error) {
	args := m.Called(ctx, userID)
	reqs, _ := args.Get(0).([]*domain.CustomRequest)
	return reqs, args.Error(1)
}

func (m *CustomRequestRepositoryMock) ListCustomRequests(ctx context.Context) ([]*domain.CustomRequest, error) {
	args := m.Called(ctx)
	reqs, _ := args.Get(0).([]*domain.CustomRequest)
	return reqs, args.Error(1)
}

func (m *CustomRequestRepositoryMock) UpdateCustomRequestStatus(ctx context.Context, id uuid.UUID, status domain.CustomRequestStatus, notes string) error {
	return m.Called(ctx, id, status, notes).Error(0)
}

// MediaStoreMock мок domain.MediaStore
type MediaStoreMock struct{ mock.Mock }

// NewMediaStoreMock создает мок и проверяет ожидания по завершении теста
func NewMediaStoreMock(t TestingT) *MediaStoreMock {
	m := &MediaStoreMock{}
	setup(&m.Mock, t)
	return m
}

func (m *MediaStoreMock) Upload(ctx context.Context, data []byte, originalFilename string) (string, error) {
	args := m.Called(ctx, data, originalFilename)
	return args.String(0), args.Error(1)
}

func (m *MediaStoreMock) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
