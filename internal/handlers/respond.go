package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/automation-market/marketplace/internal/domain"
	"github.com/automation-market/marketplace/internal/ratelimit"
	"github.com/automation-market/marketplace/internal/service"
	"github.com/automation-market/marketplace/internal/utils/password"
	"github.com/automation-market/marketplace/internal/utils/validate"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxBodySize ограничение размера JSON тела запроса
const maxBodySize = 1 << 20

// errorResponse тело ответа с ошибкой
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// statusErrors соответствие sentinel ошибок HTTP статусам.
// Непустой message заменяет текст ошибки в ответе.
var statusErrors = []struct {
	err     error
	status  int
	message string
}{
	{domain.ErrUserExists, http.StatusConflict, ""},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, ""},
	{service.ErrEmptyCredentials, http.StatusBadRequest, ""},
	{domain.ErrForbidden, http.StatusForbidden, ""},

	{domain.ErrOrderNotFound, http.StatusNotFound, ""},
	{domain.ErrInvalidStatus, http.StatusBadRequest, ""},
	{domain.ErrInvalidTransition, http.StatusConflict, ""},
	{domain.ErrStatusChanged, http.StatusConflict, ""},

	{domain.ErrLedgerLineNotFound, http.StatusNotFound, ""},
	{domain.ErrLedgerLineFinalized, http.StatusConflict, ""},

	{domain.ErrInsufficientFunds, http.StatusPaymentRequired, ""},
	{domain.ErrAmountBelowMinimum, http.StatusUnprocessableEntity, ""},
	{domain.ErrAmountAboveMaximum, http.StatusUnprocessableEntity, ""},
	{domain.ErrInvalidAmount, http.StatusUnprocessableEntity, ""},
	{domain.ErrUnknownPaymentMethod, http.StatusBadRequest, ""},
	{domain.ErrInvalidCardNumber, http.StatusUnprocessableEntity, ""},
	{domain.ErrTransactionNotFound, http.StatusNotFound, ""},
	{domain.ErrTransactionNotPending, http.StatusConflict, ""},
	{domain.ErrInvalidSettlement, http.StatusBadRequest, ""},

	{domain.ErrAutomationNotFound, http.StatusNotFound, ""},
	{domain.ErrAutomationAlreadyAdded, http.StatusConflict, "This automation is already in your list"},
	{domain.ErrAutomationExclusive, http.StatusForbidden, ""},
	{domain.ErrAutomationInactive, http.StatusUnprocessableEntity, ""},
	{domain.ErrMediaStorageDisabled, http.StatusServiceUnavailable, ""},

	{domain.ErrTicketNotFound, http.StatusNotFound, ""},
	{domain.ErrCustomRequestNotFound, http.StatusNotFound, ""},
	{domain.ErrInvalidTicketUpdate, http.StatusBadRequest, ""},
	{domain.ErrInvalidRequestStatus, http.StatusBadRequest, ""},

	{service.ErrInvalidSecurityEvent, http.StatusBadRequest, ""},
}

// writeJSON отправляет значение в формате JSON
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeError переводит ошибку сервиса в HTTP ответ.
// Неизвестные ошибки логируются с сообщением msg и отдаются как 500.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error, msg string) {
	var verrs *validate.Errors
	if errors.As(err, &verrs) {
		writeJSON(w, logger, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verrs.Fields})
		return
	}

	var weak *password.StrengthError
	if errors.As(err, &weak) {
		writeJSON(w, logger, http.StatusBadRequest, errorResponse{
			Error:  "weak password",
			Fields: map[string]string{"password": weak.Error()},
		})
		return
	}

	var lockout *ratelimit.LockoutError
	if errors.As(err, &lockout) {
		seconds := int(lockout.Remaining.Round(time.Second) / time.Second)
		if seconds < 1 {
			seconds = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
		writeJSON(w, logger, http.StatusTooManyRequests, errorResponse{Error: lockout.Error()})
		return
	}

	for _, se := range statusErrors {
		if errors.Is(err, se.err) {
			message := se.message
			if message == "" {
				message = err.Error()
			}
			writeJSON(w, logger, se.status, errorResponse{Error: message})
			return
		}
	}

	logger.Error(msg, zap.Error(err))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// decodeJSON читает JSON тело запроса в v
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(v)
}

// uuidParam разбирает параметр маршрута как UUID
func uuidParam(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
