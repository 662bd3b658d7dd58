package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/automation-market/marketplace/internal/domain"
	"github.com/automation-market/marketplace/internal/utils/validate"
	"github.com/google/uuid"
)

var (
	ticketStatuses   = map[domain.TicketStatus]bool{domain.TicketOpen: true, domain.TicketInProgress: true, domain.TicketResolved: true, domain.TicketClosed: true}
	ticketPriorities = map[domain.TicketPriority]bool{domain.PriorityLow: true, domain.PriorityMedium: true, domain.PriorityHigh: true, domain.PriorityUrgent: true}
)

// SupportService реализует domain.SupportService
type SupportService struct {
	repo      domain.SupportRepository
	validator *validate.Validator
}

// NewSupportService создает новый SupportService
func NewSupportService(repo domain.SupportRepository, validator *validate.Validator) *SupportService {
	return &SupportService{
		repo:      repo,
		validator: validator,
	}
}

// CreateTicket создает обращение в поддержку
func (s *SupportService) CreateTicket(ctx context.Context, userID uuid.UUID, input domain.TicketInput) (*domain.SupportTicket, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	ticket := &domain.SupportTicket{
		UserID:      userID,
		Subject:     strings.TrimSpace(input.Subject),
		Description: strings.TrimSpace(input.Description),
		Category:    input.Category,
		Priority:    input.Priority,
	}
	if ticket.Category == "" {
		ticket.Category = "general"
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.PriorityMedium
	}

	created, err := s.repo.CreateTicket(ctx, ticket)
	if err != nil {
		return nil, fmt.Errorf("support service: failed to create ticket for user %s: %w", userID, err)
	}
	return created, nil
}

// GetTickets возвращает обращения пользователя
func (s *SupportService) GetTickets(ctx context.Context, userID uuid.UUID) ([]*domain.SupportTicket, error) {
	tickets, err := s.repo.GetTicketsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("support service: failed to get tickets for user %s: %w", userID, err)
	}
	return tickets, nil
}

// GetTicket возвращает тикет с тредом сообщений.
// Пользователь видит только свои тикеты, сотрудник поддержки видит все.
func (s *SupportService) GetTicket(ctx context.Context, userID, ticketID uuid.UUID, staff bool) (*domain.SupportTicket, error) {
	ticket, err := s.ticketFor(ctx, userID, ticketID, staff)
	if err != nil {
		return nil, err
	}

	messages, err := s.repo.GetMessages(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("support service: failed to get messages for ticket %s: %w", ticketID, err)
	}
	ticket.Messages = messages

	return ticket, nil
}

// Reply добавляет сообщение в тред. Первый ответ сотрудника берет открытый тикет в работу.
func (s *SupportService) Reply(ctx context.Context, userID, ticketID uuid.UUID, body string, staff bool) (*domain.SupportMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		errs := &validate.Errors{}
		errs.Add("message", "is required")
		return nil, errs
	}

	ticket, err := s.ticketFor(ctx, userID, ticketID, staff)
	if err != nil {
		return nil, err
	}

	msg, err := s.repo.AddMessage(ctx, &domain.SupportMessage{
		TicketID: ticketID,
		SenderID: userID,
		Body:     body,
		IsStaff:  staff,
	})
	if err != nil {
		return nil, fmt.Errorf("support service: failed to add message to ticket %s: %w", ticketID, err)
	}

	if staff && ticket.Status == domain.TicketOpen {
		if err := s.repo.UpdateTicket(ctx, ticketID, domain.TicketUpdate{Status: domain.TicketInProgress}); err != nil {
			return nil, fmt.Errorf("support service: failed to start ticket %s: %w", ticketID, err)
		}
	}

	return msg, nil
}

// ListTickets возвращает все тикеты, пустой статус означает без фильтра
func (s *SupportService) ListTickets(ctx context.Context, status domain.TicketStatus) ([]*domain.SupportTicket, error) {
	if status != "" && !ticketStatuses[status] {
		return nil, domain.ErrInvalidTicketUpdate
	}

	tickets, err := s.repo.ListTickets(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("support service: failed to list tickets: %w", err)
	}
	return tickets, nil
}

// UpdateTicket меняет статус и/или приоритет тикета
func (s *SupportService) UpdateTicket(ctx context.Context, ticketID uuid.UUID, update domain.TicketUpdate) error {
	if update.Status == "" && update.Priority == "" {
		return domain.ErrInvalidTicketUpdate
	}
	if update.Status != "" && !ticketStatuses[update.Status] {
		return domain.ErrInvalidTicketUpdate
	}
	if update.Priority != "" && !ticketPriorities[update.Priority] {
		return domain.ErrInvalidTicketUpdate
	}

	if err := s.repo.UpdateTicket(ctx, ticketID, update); err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			return err
		}
		return fmt.Errorf("support service: failed to update ticket %s: %w", ticketID, err)
	}
	return nil
}

func (s *SupportService) ticketFor(ctx context.Context, userID, ticketID uuid.UUID, staff bool) (*domain.SupportTicket, error) {
	ticket, err := s.repo.GetTicketByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("support service: failed to get ticket %s: %w", ticketID, err)
	}

	if !staff && ticket.UserID != userID {
		return nil, domain.ErrTicketNotFound
	}
	return ticket, nil
}
