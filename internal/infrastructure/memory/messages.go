package memory

import (
	"context"
	"time"

	"github.com/jhoicas/sipp-api/internal/domain"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/jhoicas/sipp-api/internal/domain/repository"
)

var _ repository.MessageRepository = (*MessageRepo)(nil)

// MessageRepo mensajes en memoria.
type MessageRepo struct{ s *Store }

func cloneMessage(m *entity.Message) *entity.Message {
	c := *m
	if m.ReadAt != nil {
		t := *m.ReadAt
		c.ReadAt = &t
	}
	return &c
}

func (r *MessageRepo) Create(_ context.Context, m *entity.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.messages[m.ID] = cloneMessage(m)
	return nil
}

func (r *MessageRepo) GetByID(_ context.Context, id string) (*entity.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if m, ok := r.s.messages[id]; ok {
		return cloneMessage(m), nil
	}
	return nil, nil
}

func (r *MessageRepo) listWhere(keep func(*entity.Message) bool, limit, offset int) []*entity.Message {
	r.s.mu.RLock()
	var list []*entity.Message
	for _, m := range r.s.messages {
		if keep(m) {
			list = append(list, cloneMessage(m))
		}
	}
	r.s.mu.RUnlock()
	sortNewestFirst(list, func(m *entity.Message) int64 { return m.CreatedAt.UnixNano() }, func(m *entity.Message) string { return m.ID })
	return page(list, limit, offset)
}

func (r *MessageRepo) ListByRecipient(_ context.Context, userID string, limit, offset int) ([]*entity.Message, error) {
	return r.listWhere(func(m *entity.Message) bool { return m.RecipientID == userID }, limit, offset), nil
}

func (r *MessageRepo) ListBySender(_ context.Context, userID string, limit, offset int) ([]*entity.Message, error) {
	return r.listWhere(func(m *entity.Message) bool { return m.SenderID == userID }, limit, offset), nil
}

func (r *MessageRepo) CountUnread(_ context.Context, userID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, m := range r.s.messages {
		if m.RecipientID == userID && m.ReadAt == nil {
			n++
		}
	}
	return n, nil
}

func (r *MessageRepo) MarkRead(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.messages[id]
	if !ok {
		return domain.ErrNotFound
	}
	if m.ReadAt == nil {
		m.ReadAt = &at
	}
	return nil
}
