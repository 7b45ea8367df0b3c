package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sipp-api/internal/domain"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/jhoicas/sipp-api/internal/domain/repository"
)

var _ repository.MessageRepository = (*MessageRepo)(nil)

const messageColumns = `id, sender_id, recipient_id, subject, body, read_at, created_at`

// MessageRepo mensajes internos sobre PostgreSQL.
type MessageRepo struct {
	q Querier
}

// NewMessageRepository construye el adaptador.
func NewMessageRepository(q Querier) *MessageRepo {
	return &MessageRepo{q: q}
}

func scanMessage(row pgx.Row) (*entity.Message, error) {
	var m entity.Message
	if err := row.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Subject, &m.Body, &m.ReadAt, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste un mensaje.
func (r *MessageRepo) Create(ctx context.Context, m *entity.Message) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO messages (`+messageColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.SenderID, m.RecipientID, m.Subject, m.Body, m.ReadAt, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// GetByID obtiene un mensaje.
func (r *MessageRepo) GetByID(ctx context.Context, id string) (*entity.Message, error) {
	m, err := scanMessage(r.q.QueryRow(ctx, `SELECT `+messageColumns+` FROM messages WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get message: %w", err)
	}
	return m, nil
}

func (r *MessageRepo) listBy(ctx context.Context, column, userID string, limit, offset int) ([]*entity.Message, error) {
	var w whereBuilder
	w.add(column+" = $%d", userID)
	query := `SELECT ` + messageColumns + ` FROM messages` + w.sql() + ` ORDER BY created_at DESC, id` + w.limitOffset(limit, offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()
	list := []*entity.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListByRecipient bandeja de entrada.
func (r *MessageRepo) ListByRecipient(ctx context.Context, userID string, limit, offset int) ([]*entity.Message, error) {
	return r.listBy(ctx, "recipient_id", userID, limit, offset)
}

// ListBySender mensajes enviados.
func (r *MessageRepo) ListBySender(ctx context.Context, userID string, limit, offset int) ([]*entity.Message, error) {
	return r.listBy(ctx, "sender_id", userID, limit, offset)
}

// CountUnread mensajes recibidos sin leer.
func (r *MessageRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM messages WHERE recipient_id = $1 AND read_at IS NULL`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return n, nil
}

// MarkRead fija read_at si el mensaje aún no estaba leído.
func (r *MessageRepo) MarkRead(ctx context.Context, id string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE messages SET read_at = COALESCE(read_at, $2) WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
