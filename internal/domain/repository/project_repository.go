package repository

import (
	"context"

	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProjectFilter filtros para listar proyectos. OwnerID vacío = todos.
type ProjectFilter struct {
	OwnerID string
	Limit   int
	Offset  int
}

// ProjectRepository define el puerto de persistencia para Project.
type ProjectRepository interface {
	Create(ctx context.Context, p *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	// GetForUpdate bloquea el proyecto hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Project, error)
	GetByOwnerAndNumber(ctx context.Context, ownerID, projectNumber string) (*entity.Project, error)
	List(ctx context.Context, f ProjectFilter) ([]*entity.Project, error)
	Update(ctx context.Context, p *entity.Project) error
	AddSpent(ctx context.Context, id string, amount decimal.Decimal) error
	Delete(ctx context.Context, id string) error
}
