package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type pingerStub struct {
	err error
}

func (p pingerStub) Ping(context.Context) error {
	return p.err
}

func TestHealthHandler(t *testing.T) {
	down := pingerStub{err: errors.New("connection refused")}

	tests := []struct {
		name       string
		db         Pinger
		extra      []HealthCheck
		wantStatus int
		wantBody   string
	}{
		{
			name:       "Healthy",
			db:         pingerStub{},
			extra:      []HealthCheck{{Name: "realtime", Pinger: pingerStub{}}},
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ok","checks":{"database":"ok","realtime":"ok"}}`,
		},
		{
			name:       "Database down",
			db:         down,
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"degraded","checks":{"database":"unavailable"}}`,
		},
		{
			name:       "Realtime down",
			db:         pingerStub{},
			extra:      []HealthCheck{{Name: "realtime", Pinger: down}},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"degraded","checks":{"database":"ok","realtime":"unavailable"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.db, zap.NewNop(), tt.extra...)

			w := httptest.NewRecorder()
			handler.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())

			w = httptest.NewRecorder()
			handler.Ready(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
