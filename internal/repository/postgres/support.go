package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/automation-market/marketplace/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	ticketColumns  = `id, user_id, subject, description, category, status, priority, created_at, updated_at`
	messageColumns = `id, ticket_id, sender_id, message, is_staff, created_at`
)

// SupportRepository реализует domain.SupportRepository
type SupportRepository struct {
	db DBTX
}

// NewSupportRepository создает новый SupportRepository
func NewSupportRepository(db DBTX) *SupportRepository {
	return &SupportRepository{db: db}
}

func scanTicket(row rowScanner) (*domain.SupportTicket, error) {
	t := &domain.SupportTicket{}
	err := row.Scan(&t.ID, &t.UserID, &t.Subject, &t.Description, &t.Category, &t.Status, &t.Priority, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func collectTickets(rows pgx.Rows) ([]*domain.SupportTicket, error) {
	defer rows.Close()

	var tickets []*domain.SupportTicket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating tickets: %w", err)
	}

	return tickets, nil
}

// CreateTicket создает тикет в статусе open
func (r *SupportRepository) CreateTicket(ctx context.Context, ticket *domain.SupportTicket) (*domain.SupportTicket, error) {
	created, err := scanTicket(r.db.QueryRow(ctx,
		`INSERT INTO support_tickets (user_id, subject, description, category, status, priority)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+ticketColumns,
		ticket.UserID, ticket.Subject, ticket.Description, ticket.Category, domain.TicketOpen, ticket.Priority,
	))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to create ticket for user %s: %w", ticket.UserID, err)
	}
	return created, nil
}

// GetTicketByID получает тикет без сообщений
func (r *SupportRepository) GetTicketByID(ctx context.Context, id uuid.UUID) (*domain.SupportTicket, error) {
	t, err := scanTicket(r.db.QueryRow(ctx,
		`SELECT `+ticketColumns+` FROM support_tickets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, fmt.Errorf("repository: failed to get ticket %s: %w", id, err)
	}
	return t, nil
}

// GetTicketsByUserID получает тикеты пользователя, новые первыми
func (r *SupportRepository) GetTicketsByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.SupportTicket, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+ticketColumns+`
		 FROM support_tickets
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to get tickets for user %s: %w", userID, err)
	}
	return collectTickets(rows)
}

// ListTickets получает все тикеты, опционально с фильтром по статусу
func (r *SupportRepository) ListTickets(ctx context.Context, status domain.TicketStatus) ([]*domain.SupportTicket, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+ticketColumns+`
		 FROM support_tickets
		 WHERE $1 = '' OR status = $1
		 ORDER BY created_at DESC`,
		string(status),
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list tickets: %w", err)
	}
	return collectTickets(rows)
}

// UpdateTicket меняет статус и приоритет, пустые значения не меняются
func (r *SupportRepository) UpdateTicket(ctx context.Context, id uuid.UUID, update domain.TicketUpdate) error {
	result, err := r.db.Exec(ctx,
		`UPDATE support_tickets
		 SET status = COALESCE(NULLIF($1, ''), status),
		     priority = COALESCE(NULLIF($2, ''), priority),
		     updated_at = now()
		 WHERE id = $3`,
		string(update.Status), string(update.Priority), id,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to update ticket %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

// AddMessage добавляет сообщение в тред тикета
func (r *SupportRepository) AddMessage(ctx context.Context, msg *domain.SupportMessage) (*domain.SupportMessage, error) {
	created := &domain.SupportMessage{}

	err := r.db.QueryRow(ctx,
		`INSERT INTO support_messages (ticket_id, sender_id, message, is_staff)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+messageColumns,
		msg.TicketID, msg.SenderID, msg.Body, msg.IsStaff,
	).Scan(&created.ID, &created.TicketID, &created.SenderID, &created.Body, &created.IsStaff, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to add message to ticket %s: %w", msg.TicketID, err)
	}
	return created, nil
}

// GetMessages получает тред тикета в хронологическом порядке
func (r *SupportRepository) GetMessages(ctx context.Context, ticketID uuid.UUID) ([]*domain.SupportMessage, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+messageColumns+`
		 FROM support_messages
		 WHERE ticket_id = $1
		 ORDER BY created_at ASC`,
		ticketID,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to get messages for ticket %s: %w", ticketID, err)
	}
	defer rows.Close()

	var messages []*domain.SupportMessage
	for rows.Next() {
		m := &domain.SupportMessage{}
		if err := rows.Scan(&m.ID, &m.TicketID, &m.SenderID, &m.Body, &m.IsStaff, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("repository: failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating messages: %w", err)
	}

	return messages, nil
}
