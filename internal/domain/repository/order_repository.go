package repository

import (
	"context"
	"time"

	"github.com/jhoicas/sipp-api/internal/domain/entity"
)

// OrderFilter filtros de listado. Campos vacíos no filtran; From/To sobre CreatedAt (To exclusivo).
type OrderFilter struct {
	UserID    string
	ProjectID string
	Status    string
	From      *time.Time
	To        *time.Time
	Limit     int // 0 = sin límite
	Offset    int
}

// OrderRepository define el puerto de persistencia para Order.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, f OrderFilter) ([]*entity.Order, error)
	Update(ctx context.Context, o *entity.Order) error
	// ListCompletedWithoutAct devuelve pedidos Completado que aún no tienen acta de conformidad.
	ListCompletedWithoutAct(ctx context.Context) ([]*entity.Order, error)
}

// ConformityActRepository persiste la metadata de las actas de conformidad.
type ConformityActRepository interface {
	Create(ctx context.Context, a *entity.ConformityAct) error
	GetByOrderID(ctx context.Context, orderID string) (*entity.ConformityAct, error)
}
