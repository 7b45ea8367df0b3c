package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/sipp-api/internal/domain"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/jhoicas/sipp-api/internal/domain/repository"
)

var (
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.SessionRepository = (*SessionRepo)(nil)
)

// UserRepo usuarios en memoria. El email es único sin distinguir mayúsculas.
type UserRepo struct{ s *Store }

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if u, ok := r.s.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, u := range r.s.users {
		if id != user.ID && strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.s.mu.RLock()
	list := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		list = append(list, cloneUser(u))
	}
	r.s.mu.RUnlock()
	sortNewestFirst(list, func(u *entity.User) int64 { return u.CreatedAt.UnixNano() }, func(u *entity.User) string { return u.ID })
	return page(list, limit, offset), nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)
	return nil
}

// SessionRepo sesiones en memoria.
type SessionRepo struct{ s *Store }

func (r *SessionRepo) Create(_ context.Context, sess *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *sess
	r.s.sessions[sess.ID] = &c
	return nil
}

func (r *SessionRepo) GetByID(_ context.Context, id string) (*entity.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if sess, ok := r.s.sessions[id]; ok {
		c := *sess
		return &c, nil
	}
	return nil, nil
}

func (r *SessionRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.sessions, id)
	return nil
}

func (r *SessionRepo) DeleteByUser(_ context.Context, userID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for id, sess := range r.s.sessions {
		if sess.UserID == userID {
			delete(r.s.sessions, id)
			n++
		}
	}
	return n, nil
}
