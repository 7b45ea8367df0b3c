package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sipp-api/internal/application/dto"
	"github.com/jhoicas/sipp-api/internal/domain"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/jhoicas/sipp-api/internal/domain/repository"
)

// MessageUseCase mensajería interna entre usuarios.
type MessageUseCase struct {
	repo  repository.MessageRepository
	users repository.UserRepository
	now   func() time.Time
}

// NewMessageUseCase construye el caso de uso.
func NewMessageUseCase(repo repository.MessageRepository, users repository.UserRepository) *MessageUseCase {
	return &MessageUseCase{repo: repo, users: users, now: time.Now}
}

// Send envía un mensaje; el destinatario debe existir.
func (uc *MessageUseCase) Send(ctx context.Context, actor dto.Actor, in dto.SendMessageRequest) (*dto.MessageResponse, error) {
	recipient, err := uc.users.GetByID(ctx, in.RecipientID)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, domain.ErrUserNotFound
	}
	m := &entity.Message{
		ID:          uuid.New().String(),
		SenderID:    actor.UserID,
		RecipientID: recipient.ID,
		Subject:     strings.TrimSpace(in.Subject),
		Body:        in.Body,
		CreatedAt:   uc.now(),
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMessageResponse(m), nil
}

// Inbox mensajes recibidos, del más reciente al más antiguo.
func (uc *MessageUseCase) Inbox(ctx context.Context, actor dto.Actor, page dto.PageRequest) (*dto.MessageListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByRecipient(ctx, actor.UserID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toMessageList(list, page), nil
}

// Sent mensajes enviados.
func (uc *MessageUseCase) Sent(ctx context.Context, actor dto.Actor, page dto.PageRequest) (*dto.MessageListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListBySender(ctx, actor.UserID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toMessageList(list, page), nil
}

// UnreadCount mensajes recibidos sin leer.
func (uc *MessageUseCase) UnreadCount(ctx context.Context, actor dto.Actor) (*dto.UnreadCountResponse, error) {
	n, err := uc.repo.CountUnread(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountResponse{Unread: n}, nil
}

// MarkRead marca el mensaje como leído; solo el destinatario puede hacerlo. Es idempotente.
func (uc *MessageUseCase) MarkRead(ctx context.Context, actor dto.Actor, id string) (*dto.MessageResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if m.RecipientID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if !m.IsRead() {
		now := uc.now()
		if err := uc.repo.MarkRead(ctx, id, now); err != nil {
			return nil, err
		}
		m.ReadAt = &now
	}
	return toMessageResponse(m), nil
}

func toMessageList(list []*entity.Message, page dto.PageRequest) *dto.MessageListResponse {
	items := make([]dto.MessageResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMessageResponse(m))
	}
	return &dto.MessageListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}
}

func toMessageResponse(m *entity.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Subject:     m.Subject,
		Body:        m.Body,
		Read:        m.IsRead(),
		ReadAt:      m.ReadAt,
		CreatedAt:   m.CreatedAt,
	}
}
