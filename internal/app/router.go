package app

import (
	"github.com/automation-market/marketplace/internal/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// setupRouter создает и настраивает роутер
func setupRouter(deps *dependencies, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Глобальные middleware
	setupMiddleware(r, logger)

	// Маршруты
	setupRoutes(r, deps)

	return r
}

// setupMiddleware настраивает middleware для роутера
func setupMiddleware(r *chi.Mux, logger *zap.Logger) {
	r.Use(handlers.RequestIDMiddleware())
	r.Use(handlers.LoggingMiddleware(logger))
	r.Use(handlers.RecoveryMiddleware(logger))
	r.Use(middleware.Compress(5))
}

// setupRoutes настраивает маршруты приложения
func setupRoutes(r *chi.Mux, deps *dependencies) {
	h := deps.handlers

	// Health check эндпоинты
	r.Get("/health", h.health.Health)
	r.Get("/ready", h.health.Ready)

	r.Route("/api", func(r chi.Router) {
		// Публичные эндпоинты
		r.Post("/auth/register", h.auth.Register)
		r.Post("/auth/login", h.auth.Login)
		r.Post("/security/events", h.security.RecordEvent)

		// Каталог открыт всем, эксклюзивы видит только владелец
		r.Group(func(r chi.Router) {
			r.Use(handlers.OptionalAuthMiddleware(deps.jwtManager))
			r.Get("/automations", h.catalog.ListAutomations)
			r.Get("/automations/{id}", h.catalog.GetAutomation)
		})

		// Защищенные эндпоинты
		r.Group(func(r chi.Router) {
			r.Use(handlers.AuthMiddleware(deps.jwtManager))

			r.Post("/orders", h.orders.SubmitOrder)
			r.Get("/orders", h.orders.GetOrders)
			r.Get("/orders/{id}", h.orders.GetOrder)
			r.Get("/orders/{id}/transactions", h.orders.GetLedger)

			r.Get("/wallet", h.wallet.GetWallet)
			r.Get("/wallet/transactions", h.wallet.GetTransactions)
			r.Post("/wallet/deposit", h.wallet.Deposit)
			r.Post("/wallet/deposit/quote", h.wallet.QuoteDeposit)
			r.Post("/wallet/withdraw", h.wallet.Withdraw)

			r.Get("/my-automations", h.resale.List)
			r.Post("/my-automations", h.resale.Add)
			r.Delete("/my-automations/{automationID}", h.resale.Remove)
			r.Patch("/my-automations/{automationID}", h.resale.Toggle)

			r.Post("/support/tickets", h.support.CreateTicket)
			r.Get("/support/tickets", h.support.GetTickets)
			r.Get("/support/tickets/{id}", h.support.GetTicket)
			r.Post("/support/tickets/{id}/messages", h.support.Reply)

			r.Post("/custom-requests", h.support.CreateRequest)
			r.Get("/custom-requests", h.support.GetRequests)

			r.Get("/realtime/orders/{id}/transactions", h.realtime.OrderTransactions)
			r.Get("/realtime/wallet", h.realtime.Wallet)
		})

		// Административные эндпоинты
		r.Route("/admin", func(r chi.Router) {
			r.Use(handlers.AuthMiddleware(deps.jwtManager))
			r.Use(handlers.AdminMiddleware())

			r.Get("/orders", h.admin.ListOrders)
			r.Patch("/orders/{id}/status", h.admin.UpdateOrderStatus)
			r.Patch("/orders/{id}/notes", h.admin.UpdateOrderDetails)
			r.Get("/order-statuses", h.admin.OrderStatuses)

			r.Post("/ledger/{lineID}/complete", h.admin.CompleteLine)
			r.Post("/ledger/{lineID}/cancel", h.admin.CancelLine)
			r.Post("/withdrawals/{txID}/settle", h.admin.SettleWithdrawal)

			r.Post("/automations", h.catalog.CreateAutomation)
			r.Put("/automations/{id}", h.catalog.UpdateAutomation)
			r.Put("/automations/{id}/media", h.catalog.UploadMedia)

			r.Get("/support/tickets", h.support.ListTickets)
			r.Patch("/support/tickets/{id}", h.support.UpdateTicket)
			r.Post("/support/tickets/{id}/messages", h.support.Reply)

			r.Get("/custom-requests", h.support.ListRequests)
			r.Patch("/custom-requests/{id}", h.support.UpdateRequest)
		})
	})
}
