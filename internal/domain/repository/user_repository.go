package repository

import (
	"context"

	"github.com/jhoicas/sipp-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven (nil, nil) cuando el registro no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
}

// SessionRepository persiste las sesiones emitidas en login.
type SessionRepository interface {
	Create(ctx context.Context, s *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteByUser elimina todas las sesiones del usuario y devuelve cuántas eran.
	DeleteByUser(ctx context.Context, userID string) (int, error)
}
