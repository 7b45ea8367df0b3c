package repository

import (
	"context"
	"time"

	"github.com/jhoicas/sipp-api/internal/domain/entity"
)

// MessageRepository define el puerto de persistencia para Message.
type MessageRepository interface {
	Create(ctx context.Context, m *entity.Message) error
	GetByID(ctx context.Context, id string) (*entity.Message, error)
	ListByRecipient(ctx context.Context, userID string, limit, offset int) ([]*entity.Message, error)
	ListBySender(ctx context.Context, userID string, limit, offset int) ([]*entity.Message, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id string, at time.Time) error
}
