package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/automation-market/marketplace/internal/domain"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

// ErrInvalidSecurityEvent конверт события не соответствует схеме
var ErrInvalidSecurityEvent = errors.New("invalid security event")

const securityEventSchema = `{
	"type": "object",
	"required": ["event", "timestamp"],
	"properties": {
		"timestamp":  {"type": "string", "format": "date-time"},
		"event":      {"type": "string", "minLength": 1, "maxLength": 100},
		"details":    {"type": "object"},
		"user_agent": {"type": "string", "maxLength": 1000},
		"url":        {"type": "string", "maxLength": 2048},
		"session_id": {"type": "string", "maxLength": 200}
	}
}`

var securityEventLoader = gojsonschema.NewStringLoader(securityEventSchema)

// SecurityService реализует domain.SecurityService.
// Событие пишется в лог и при наличии forwarder отправляется во внешний журнал.
type SecurityService struct {
	forwarder SecurityForwarder
	logger    *zap.Logger
}

// NewSecurityService создает новый SecurityService, forwarder может быть nil
func NewSecurityService(forwarder SecurityForwarder, logger *zap.Logger) *SecurityService {
	return &SecurityService{
		forwarder: forwarder,
		logger:    logger,
	}
}

// Record проверяет конверт события и записывает его.
// Ошибки отправки в журнал логируются и не возвращаются.
func (s *SecurityService) Record(ctx context.Context, payload []byte) error {
	if err := validateSecurityEvent(payload); err != nil {
		return err
	}

	var ev domain.SecurityEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSecurityEvent, err)
	}

	s.logger.Warn("security event",
		zap.String("event", ev.Event),
		zap.Time("timestamp", ev.Timestamp),
		zap.String("session_id", ev.SessionID),
		zap.String("url", ev.URL),
		zap.String("user_agent", ev.UserAgent),
		zap.Any("details", ev.Details),
	)

	if s.forwarder == nil {
		return nil
	}

	if err := s.forwarder.Forward(ctx, &ev); err != nil {
		var rateLimitErr *RateLimitError
		if errors.As(err, &rateLimitErr) {
			s.logger.Warn("security log rate limited",
				zap.String("event", ev.Event),
				zap.Duration("retry_after", rateLimitErr.RetryAfter),
			)
			return nil
		}
		s.logger.Error("failed to forward security event", zap.String("event", ev.Event), zap.Error(err))
	}
	return nil
}

func validateSecurityEvent(payload []byte) error {
	result, err := gojsonschema.Validate(securityEventLoader, gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSecurityEvent, err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidSecurityEvent, strings.Join(msgs, "; "))
	}
	return nil
}
