package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"alupro-backend/internal/domains/contact/model"
	"alupro-backend/internal/shared/utils"
)

type MessageRepository interface {
	Create(ctx context.Context, m *model.Message) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Message, error)
	List(ctx context.Context, filter model.ListFilter) ([]*model.Message, int, error)
	MarkRead(ctx context.Context, id uuid.UUID) (*model.Message, error)
	SaveReply(ctx context.Context, id uuid.UUID, reply string, repliedBy uuid.UUID, at time.Time) (*model.Message, error)
	CountUnread(ctx context.Context) (int, error)
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) MessageRepository {
	return &postgresRepository{pool: pool}
}

const messageColumns = `
	id, name, email, phone, subject, message,
	is_read, reply_message, replied_at, replied_by, created_at`

func scanMessage(row pgx.Row) (*model.Message, error) {
	var m model.Message
	err := row.Scan(
		&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message,
		&m.IsRead, &m.ReplyMessage, &m.RepliedAt, &m.RepliedBy, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrMessageNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *postgresRepository) Create(ctx context.Context, m *model.Message) error {
	query := `
		INSERT INTO contact_messages (id, name, email, phone, subject, message, is_read)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE)
		RETURNING is_read, created_at
	`
	err := r.pool.QueryRow(ctx, query, m.ID, m.Name, m.Email, m.Phone, m.Subject, m.Message).
		Scan(&m.IsRead, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Message, error) {
	m, err := scanMessage(r.pool.QueryRow(ctx, `SELECT`+messageColumns+` FROM contact_messages WHERE id = $1`, id))
	if err != nil && !errors.Is(err, model.ErrMessageNotFound) {
		return nil, fmt.Errorf("find contact message: %w", err)
	}
	return m, err
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]*model.Message, int, error) {
	w := utils.NewWhereBuilder()
	if filter.UnreadOnly {
		w.Add("is_read = ?", false)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contact_messages`+w.SQL(), w.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contact messages: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM contact_messages%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		messageColumns, w.SQL(), w.Next(), w.Next()+1)
	rows, err := r.pool.Query(ctx, query, append(w.Args(), filter.Limit, utils.Offset(filter.Page, filter.Limit))...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*model.Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan contact message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, total, rows.Err()
}

func (r *postgresRepository) MarkRead(ctx context.Context, id uuid.UUID) (*model.Message, error) {
	query := `UPDATE contact_messages SET is_read = TRUE WHERE id = $1 RETURNING` + messageColumns

	m, err := scanMessage(r.pool.QueryRow(ctx, query, id))
	if err != nil && !errors.Is(err, model.ErrMessageNotFound) {
		return nil, fmt.Errorf("mark contact message read: %w", err)
	}
	return m, err
}

// SaveReply also marks the message read
func (r *postgresRepository) SaveReply(ctx context.Context, id uuid.UUID, reply string, repliedBy uuid.UUID, at time.Time) (*model.Message, error) {
	query := `
		UPDATE contact_messages
		SET reply_message = $2, replied_by = $3, replied_at = $4, is_read = TRUE
		WHERE id = $1
		RETURNING` + messageColumns

	m, err := scanMessage(r.pool.QueryRow(ctx, query, id, reply, repliedBy, at))
	if err != nil && !errors.Is(err, model.ErrMessageNotFound) {
		return nil, fmt.Errorf("save contact reply: %w", err)
	}
	return m, err
}

func (r *postgresRepository) CountUnread(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contact_messages WHERE NOT is_read`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unread messages: %w", err)
	}
	return n, nil
}
