package mocks

import (
	"context"

	"github.com/automation-market/marketplace/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// AuthServiceMock мок domain.AuthService
type AuthServiceMock struct{ mock.Mock }

// NewAuthServiceMock создает мок и проверяет ожидания по завершении теста
func NewAuthServiceMock(t TestingT) *AuthServiceMock {
	m := &AuthServiceMock{}
	setup(&m.Mock, t)
	return m
}

func (m *AuthServiceMock) Register(ctx context.Context, input domain.RegisterInput, clientKey string) (string, error) {
	args := m.Called(ctx, input, clientKey)
	return args.String(0), args.Error(1)
}

func (m *AuthServiceMock) Login(ctx context.Context, email, password, clientKey string) (string, error) {
	args := m.Called(ctx, email, password, clientKey)
	return args.String(0), args.Error(1)
}

// OrderServiceMock мок domain.OrderService
type OrderServiceMock struct{ mock.Mock }

// NewOrderServiceMock создает мок и проверяет ожидания по завершении теста
func NewOrderServiceMock(t TestingT) *OrderServiceMock {
	m := &OrderServiceMock{}
	setup(&m.Mock, t)
	return m
}

func (m *OrderServiceMock) SubmitOrder(ctx context.Context, userID uuid.UUID, input domain.OrderInput) (*domain.Order, error) {
	args := m.Called(ctx, userID, input)
	order, _ := args.Get(0).(*domain.Order)
	return order, args.Error(1)
}

func (m *OrderServiceMock) GetOrders(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]*domain.Order)
	return orders, args.Error(1)
}

func (m *OrderServiceMock) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, userID, orderID)
	order, _ := args.Get(0).(*domain.Order)
	return order, args.Error(1)
}

func (m *OrderServiceMock) ListAllOrders(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	args := m.Called(ctx, status)
	orders, _ := args.Get(0).([]*domain.Order)
	return orders, args.Error(1)
}

func (m *OrderServiceMock) UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	args := m.Called(ctx, orderID, status)
	order, _ := args.Get(0).(*domain.Order)
	return order, args.Error(1)
}

func (m *OrderServiceMock) UpdateDetails(ctx context.Context, orderID uuid.UUID, update domain.OrderDetailsUpdate) (*domain.Order, error) {
	args := m.Called(ctx, orderID, update)
	order, _ := args.Get(0).(*domain.Order)
	return order, args.Error(1)
}

// LedgerServiceMock мок domain.LedgerService
type LedgerServiceMock struct{ mock.Mock }

// NewLedgerServiceMock создает мок и проверяет ожидания по завершении теста
func NewLedgerServiceMock(t TestingT) *LedgerServiceMock {
	m := &LedgerServiceMock{}
	setup(&m.Mock, t)
	return m
}

func (m *LedgerServiceMock) GetOrderLedger(ctx context.Context, userID, orderID uuid.UUID) (*domain.LedgerView, error) {
	args := m.Called(ctx, userID, orderID)
	view, _ := args.Get(0).(*domain.LedgerView)
	return view, args.Error(1)
}

func (m *LedgerServiceMock) EnsureLedger(ctx context.Context, order *domain.Order) (bool, error) {
	args := m.Called(ctx, order)
	return args.Bool(0), args.Error(1)
}

func (m *LedgerServiceMock) CompleteLine(ctx context.Context, lineID uuid.UUID) (*domain.OrderTransaction, error) {
	args := m.Called(ctx, lineID)
	line, _ := args.Get(0).(*domain.OrderTransaction)
	return line, args.Error(1)
}

func (m *LedgerServiceMock) CancelLine(ctx context.Context, lineID uuid.UUID) (*domain.OrderTransaction, error) {
	args := m.Called(ctx, lineID)
	line, _ := args.Get(0).(*domain.OrderTransaction)
	return line, args.Error(1)
}

// WalletServiceMock мок domain.WalletService
type WalletServiceMock struct{ mock.Mock }

// NewWalletServiceMock создает мок и проверяет ожидания по завершении теста
func NewWalletServiceMock(t TestingT) *WalletServiceMock {
	m := &WalletServiceMock{}
	setup(&m.Mock, t)
	return m
}

func (m *WalletServiceMock) GetWallet(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	args := m.Called(ctx, userID)
	wallet, _ := args.Get(0).(*domain.Wallet)
	return wallet, args.Error(1)
}

func (m *WalletServiceMock) GetTransactions(ctx context.Context, userID uuid.UUID) ([]*domain.WalletTransaction, error) {
	args := m.Called(ctx, userID)
	txs, _ := args.Get(0).([]*domain.WalletTransaction)
	return txs, args.Error(1)
}

func (m *WalletServiceMock) QuoteDeposit(method domain.PaymentMethod, amount string) (*domain.DepositQuote, error) {
	args := m.Called(method, amount)
	quote, _ := args.Get(0).(*domain.DepositQuote)
	return quote, args.Error(1)
}

func (m *WalletServiceMock) Deposit(ctx context.Context, userID uuid.UUID, input domain.DepositInput) (*domain.DepositResult, error) {
	args := m.Called(ctx, userID, input)
	result, _ := args.Get(0).(*domain.DepositResult)
	return result, args.Error(1)
}

func (m *WalletServiceMock) Withdraw(ctx context.Context, userID uuid.UUID, amount string) (*domain.WalletTransaction, error) {
	args := m.Called(ctx, userID, amount)
	tx, _ := args.Get(0).(*domain.WalletTransaction)
	return tx, args.Error(1)
}

func (m *WalletServiceMock) SettleWithdrawal(ctx context.Context, txID uuid.UUID, status domain.LineStatus) (*domain.WalletTransaction, error) {
	args := m.Called(ctx, txID, status)
	tx, _ := args.Get(0).(*domain.WalletTransaction)
	return tx, args.Error(1)
}

// CatalogServiceMock мок domain.CatalogService
type CatalogServiceMock struct{ mock.Mock }

// NewCatalogServiceMock создает мок и проверяет ожидания по завершении теста
func NewCatalogServiceMock(t TestingT) *CatalogServiceMock {
	m := &CatalogServiceMock{}
	setup(&m.Mock, t)
	return m
}

func (m *CatalogServiceMock) ListAutomations(ctx context.Context, viewerID uuid.UUID, filter domain.AutomationFilter) ([]*domain.Automation, error) {
	args := m.Called(ctx, viewerID, filter)
	items, _ := args.Get(0).([]*domain.Automation)
	return items, args.Error(1)
}

func (m *CatalogServiceMock) GetAutomation(ctx context.Context, viewerID, id uuid.UUID) (*domain.Automation, error) {
	args := m.Called(ctx, viewerID, id)
	a, _ := args.Get(0).(*domain.Automation)
	return a, args.Error(1)
}

func (m *CatalogServiceMock) CreateAutomation(ctx context.Context, input domain.AutomationInput) (*domain.Automation, error) {
	args := m.Called(ctx, input)
	a, _ := args.Get(0).(*domain.Automation)
	return a, args.Error(1)
}

func (m *CatalogServiceMock) UpdateAutomation(ctx context.Context, id uuid.UUID, input domain.AutomationInput) (*domain.Automation, error) {
	args := m.Called(ctx, id, input)
	a, _ := args.Get(0).(*domain.Automation)
	return a, args.Error(1)
}

func (m *CatalogServiceMock) UploadMedia(ctx context.Context, id uuid.UUID, filename string, data []byte) (*domain.Automation, error) {
	args := m.Called(ctx, id, filename, data)
	a, _ := args.Get(0).(*domain.Automation)
	return a, args.Error(1)
}

// ResaleListServiceMock мок domain.ResaleListService
type ResaleListServiceMock struct{ mock.Mock }

// NewResaleListServiceMock создает мок и проверяет ожидания по завершении теста
func NewResaleListServiceMock(t TestingT) *ResaleListServiceMock {
	m := &ResaleListServiceMock{}
	setup(&m.Mock, t)
	return m
}

func (m *ResaleListServiceMock) Add(ctx context.Context, userID, automationID uuid.UUID) (*domain.UserAutomation, error) {
	args := m.Called(ctx, userID, automationID)
	ua, _ := args.Get(0).(*domain.UserAutomation)
	return ua, args.Error(1)
}

func (m *ResaleListServiceMock) Remove(ctx context.Context, userID, automationID uuid.UUID) error {
	return m.Called(ctx, userID, automationID).Error(0)
}

func (m *ResaleListServiceMock) SetActive(ctx context.Context, userID, automationID uuid.UUID, active bool) error {
	return m.Called(ctx, userID, automationID, active).Error(0)
}

func (m *ResaleListServiceMock) List(ctx context.Context, userID uuid.UUID) ([]*domain.UserAutomation, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]*domain.UserAutomation)
	return items, args.Error(1)
}

// SupportServiceMock мок domain.SupportService
type SupportServiceMock struct{ mock.Mock }

// NewSupportServiceMock создает мок и проверяет ожидания по завершении теста
func NewSupportServiceMock(t TestingT) *SupportServiceMock {
	m := &SupportServiceMock{}
	setup(&m.Mock, t)
	return m
}

func (m *SupportServiceMock) CreateTicket(ctx context.Context, userID uuid.UUID, input domain.TicketInput) (*domain.SupportTicket, error) {
	args := m.Called(ctx, userID, input)
	ticket, _ := args.Get(0).(*domain.SupportTicket)
	return ticket, args.Error(1)
}

func (m *SupportServiceMock) GetTickets(ctx context.Context, userID uuid.UUID) ([]*domain.SupportTicket, error) {
	args := m.Called(ctx, userID)
	tickets, _ := args.Get(0).([]*domain.SupportTicket)
	return tickets, args.Error(1)
}

func (m *SupportServiceMock) GetTicket(ctx context.Context, userID, ticketID uuid.UUID, staff bool) (*domain.SupportTicket, error) {
	args := m.Called(ctx, userID, ticketID, staff)
	ticket, _ := args.Get(0).(*domain.SupportTicket)
	return ticket, args.Error(1)
}

func (m *SupportServiceMock) Reply(ctx context.Context, userID, ticketID uuid.UUID, body string, staff bool) (*domain.SupportMessage, error) {
	args := m.Called(ctx, userID, ticketID, body, staff)
	msg, _ := args.Get(0).(*domain.SupportMessage)
	return msg, args.Error(1)
}

func (m *SupportServiceMock) ListTickets(ctx context.Context, status domain.TicketStatus) ([]*domain.SupportTicket, error) {
	args := m.Called(ctx, status)
	tickets, _ := args.Get(0).([]*domain.SupportTicket)
	return tickets, args.Error(1)
}

func (m *SupportServiceMock) UpdateTicket(ctx context.Context, ticketID uuid.UUID, update domain.TicketUpdate) error {
	return m.Called(ctx, ticketID, update).Error(0)
}

// CustomRequestServiceMock мок domain.CustomRequestService
type CustomRequestServiceMock struct{ mock.Mock }

// NewCustomRequestServiceMock создает мок и проверяет ожидания по завершении теста
func NewCustomRequestServiceMock(t TestingT) *CustomRequestServiceMock {
	m := &CustomRequestServiceMock{}
	setup(&m.Mock, t)
	return m
}

func (m *CustomRequestServiceMock) Create(ctx context.Context, userID uuid.UUID, input domain.CustomRequestInput) (*domain.CustomRequest, error) {
	args := m.Called(ctx, userID, input)
	req, _ := args.Get(0).(*domain.CustomRequest)
	return req, args.Error(1)
}

func (m *CustomRequestServiceMock) GetMine(ctx context.Context, userID uuid.UUID) ([]*domain.CustomRequest, error) {
	args := m.Called(ctx, userID)
	reqs, _ := args.Get(0).([]*domain.CustomRequest)
	return reqs, args.Error(1)
}

func (m *CustomRequestServiceMock) ListAll(ctx context.Context) ([]*domain.CustomRequest, error) {
	args := m.Called(ctx)
	reqs, _ := args.Get(0).([]*domain.CustomRequest)
	return reqs, args.Error(1)
}

func (m *CustomRequestServiceMock) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CustomRequestStatus, notes string) error {
	return m.Called(ctx, id, status, notes).Error(0)
}

// SecurityServiceMock мок domain.SecurityService
type SecurityServiceMock struct{ mock.Mock }

// NewSecurityServiceMock создает мок и проверяет ожидания по завершении теста
func NewSecurityServiceMock(t TestingT) *SecurityServiceMock {
	m := &SecurityServiceMock{}
	setup(&m.Mock, t)
	return m
}

func (m *SecurityServiceMock) Record(ctx context.Context, payload []byte) error {
	return m.Called(ctx, payload).Error(0)
}
