package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/automation-market/marketplace/internal/domain"
	domainmocks "github.com/automation-market/marketplace/internal/domain/mocks"
	"github.com/automation-market/marketplace/internal/handlers"
	"github.com/automation-market/marketplace/internal/realtime"
	"github.com/automation-market/marketplace/internal/utils/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type routerFixture struct {
	router  http.Handler
	jwt     *jwt.Manager
	catalog *domainmocks.CatalogServiceMock
}

func newRouterFixture(t *testing.T) *routerFixture {
	logger := zap.NewNop()
	jwtManager := jwt.NewManager("test-secret", time.Hour)
	broker := realtime.NewHub()
	t.Cleanup(func() { _ = broker.Close() })

	orderSvc := domainmocks.NewOrderServiceMock(t)
	ledgerSvc := domainmocks.NewLedgerServiceMock(t)
	walletSvc := domainmocks.NewWalletServiceMock(t)
	catalogSvc := domainmocks.NewCatalogServiceMock(t)

	deps := &dependencies{
		jwtManager: jwtManager,
		broker:     broker,
		handlers: &handlerSet{
			auth:     handlers.NewAuthHandler(domainmocks.NewAuthServiceMock(t), logger),
			orders:   handlers.NewOrdersHandler(orderSvc, ledgerSvc, logger),
			admin:    handlers.NewAdminHandler(orderSvc, ledgerSvc, walletSvc, domain.TransitionPolicyStrict, logger),
			wallet:   handlers.NewWalletHandler(walletSvc, logger),
			catalog:  handlers.NewCatalogHandler(catalogSvc, logger),
			resale:   handlers.NewResaleHandler(domainmocks.NewResaleListServiceMock(t), logger),
			support:  handlers.NewSupportHandler(domainmocks.NewSupportServiceMock(t), domainmocks.NewCustomRequestServiceMock(t), logger),
			security: handlers.NewSecurityHandler(domainmocks.NewSecurityServiceMock(t), logger),
			realtime: handlers.NewRealtimeHandler(broker, orderSvc, logger),
			health:   handlers.NewHealthHandler(broker, logger),
		},
	}

	return &routerFixture{router: setupRouter(deps, logger), jwt: jwtManager, catalog: catalogSvc}
}

func (f *routerFixture) token(t *testing.T, role domain.Role) string {
	token, err := f.jwt.Generate(uuid.New(), string(role))
	require.NoError(t, err)
	return token
}

func TestRouter_AccessControl(t *testing.T) {
	f := newRouterFixture(t)

	tests := []struct {
		name       string
		method     string
		path       string
		role       domain.Role
		wantStatus int
	}{
		{name: "Health is public", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "Orders need a token", method: http.MethodGet, path: "/api/orders", wantStatus: http.StatusUnauthorized},
		{name: "Wallet needs a token", method: http.MethodGet, path: "/api/wallet", wantStatus: http.StatusUnauthorized},
		{name: "Admin needs a token", method: http.MethodGet, path: "/api/admin/order-statuses", wantStatus: http.StatusUnauthorized},
		{name: "Admin rejects users", method: http.MethodGet, path: "/api/admin/order-statuses", role: domain.RoleUser, wantStatus: http.StatusForbidden},
		{name: "Admin accepts admins", method: http.MethodGet, path: "/api/admin/order-statuses", role: domain.RoleAdmin, wantStatus: http.StatusOK},
		{name: "Unknown route", method: http.MethodGet, path: "/api/unknown", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.role != "" {
				req.Header.Set("Authorization", "Bearer "+f.token(t, tt.role))
			}

			w := httptest.NewRecorder()
			f.router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRouter_PublicCatalog(t *testing.T) {
	f := newRouterFixture(t)

	t.Run("Anonymous viewer", func(t *testing.T) {
		f.catalog.On("ListAutomations", mock.Anything, uuid.Nil, mock.Anything).
			Return([]*domain.Automation{}, nil).Once()

		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/automations?category=all", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Signed in viewer", func(t *testing.T) {
		userID := uuid.New()
		token, err := f.jwt.Generate(userID, string(domain.RoleUser))
		require.NoError(t, err)

		f.catalog.On("ListAutomations", mock.Anything, userID, mock.Anything).
			Return([]*domain.Automation{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/automations", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
