package handlers

import (
	"io"
	"net/http"

	"github.com/automation-market/marketplace/internal/domain"
	"go.uber.org/zap"
)

// maxSecurityEventSize ограничение размера события безопасности
const maxSecurityEventSize = 64 << 10

type SecurityHandler struct {
	securityService domain.SecurityService
	logger          *zap.Logger
}

func NewSecurityHandler(securityService domain.SecurityService, logger *zap.Logger) *SecurityHandler {
	return &SecurityHandler{
		securityService: securityService,
		logger:          logger,
	}
}

// RecordEvent принимает событие безопасности от клиента и отвечает 202
func (h *SecurityHandler) RecordEvent(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxSecurityEventSize))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := h.securityService.Record(r.Context(), payload); err != nil {
		writeError(w, h.logger, err, "failed to record security event")
		return
	}

	w.WriteHeader(http.StatusAccepted)
}
