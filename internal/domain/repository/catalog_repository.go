package repository

import (
	"context"

	"github.com/jhoicas/sipp-api/internal/domain/entity"
)

// CatalogFilter filtros opcionales de listado.
type CatalogFilter struct {
	Company  string
	Supplier string
	DataType string
}

// CatalogRepository define el puerto de persistencia para Catalog.
type CatalogRepository interface {
	Create(ctx context.Context, c *entity.Catalog) error
	GetByID(ctx context.Context, id string) (*entity.Catalog, error)
	GetByKey(ctx context.Context, company, supplier, dataType string) (*entity.Catalog, error)
	List(ctx context.Context, f CatalogFilter) ([]*entity.Catalog, error)
	Update(ctx context.Context, c *entity.Catalog) error
	Delete(ctx context.Context, id string) error
}
