package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/automation-market/marketplace/internal/domain"
	"github.com/automation-market/marketplace/internal/utils/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRequestIDMiddleware(t *testing.T) {
	middleware := RequestIDMiddleware()

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Проверяем, что request ID добавлен в контекст
		requestID, ok := r.Context().Value(RequestIDKey).(string)
		assert.True(t, ok)
		assert.NotEmpty(t, requestID)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestLoggingMiddleware(t *testing.T) {
	logger := zap.NewNop()
	middleware := LoggingMiddleware(logger)

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := zap.NewNop()
	middleware := RecoveryMiddleware(logger)

	t.Run("No panic", func(t *testing.T) {
		handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("With panic", func(t *testing.T) {
		handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("test panic")
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		// Не должно паниковать
		assert.NotPanics(t, func() {
			handler.ServeHTTP(w, req)
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := jwt.NewManager("test-secret", time.Hour)
	userID := uuid.New()
	token, err := jwtManager.Generate(userID, string(domain.RoleUser))
	require.NoError(t, err)

	handler := AuthMiddleware(jwtManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserID(r.Context())
		assert.True(t, ok)
		assert.Equal(t, userID, id)
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "Valid token", header: "Bearer " + token, want: http.StatusOK},
		{name: "No header", header: "", want: http.StatusUnauthorized},
		{name: "Wrong scheme", header: "Basic " + token, want: http.StatusUnauthorized},
		{name: "Garbage token", header: "Bearer abc.def.ghi", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	jwtManager := jwt.NewManager("test-secret", time.Hour)

	handler := OptionalAuthMiddleware(jwtManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserID(r.Context()); ok {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("Anonymous passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/automations", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Invalid token is ignored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/automations", nil)
		req.Header.Set("Authorization", "Bearer broken")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Valid token sets identity", func(t *testing.T) {
		token, err := jwtManager.Generate(uuid.New(), string(domain.RoleUser))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/automations", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAdminMiddleware(t *testing.T) {
	handler := AdminMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("Admin", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil), uuid.New(), domain.RoleAdmin)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Regular user", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil), uuid.New(), domain.RoleUser)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestGetUserID(t *testing.T) {
	t.Run("User ID present", func(t *testing.T) {
		userID := uuid.New()
		req := withUser(httptest.NewRequest(http.MethodGet, "/test", nil), userID, domain.RoleUser)

		id, ok := GetUserID(req.Context())
		assert.True(t, ok)
		assert.Equal(t, userID, id)
	})

	t.Run("User ID not present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)

		id, ok := GetUserID(req.Context())
		assert.False(t, ok)
		assert.Equal(t, uuid.Nil, id)
	})

	t.Run("Wrong type in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		ctx := context.WithValue(req.Context(), IdentityKey, "not-an-identity")

		id, ok := GetUserID(ctx)
		assert.False(t, ok)
		assert.Equal(t, uuid.Nil, id)
	})
}
