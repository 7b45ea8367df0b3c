package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sipp-api/internal/domain"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/jhoicas/sipp-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

const catalogColumns = `id, company, supplier, data_type, items, created_at, updated_at`

// CatalogRepo catálogos sobre PostgreSQL; los ítems se guardan como JSONB.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador.
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

func scanCatalog(row pgx.Row) (*entity.Catalog, error) {
	var (
		c     entity.Catalog
		items []byte
	)
	if err := row.Scan(&c.ID, &c.Company, &c.Supplier, &c.DataType, &items, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &c.Items); err != nil {
		return nil, fmt.Errorf("decode catalog items: %w", err)
	}
	return &c, nil
}

func (r *CatalogRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Catalog, error) {
	c, err := scanCatalog(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog: %w", err)
	}
	return c, nil
}

// Create persiste un catálogo.
func (r *CatalogRepo) Create(ctx context.Context, c *entity.Catalog) error {
	items, err := json.Marshal(c.Items)
	if err != nil {
		return fmt.Errorf("encode catalog items: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO catalogs (`+catalogColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Company, c.Supplier, c.DataType, items, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert catalog: %w", err)
	}
	return nil
}

// GetByID obtiene un catálogo por ID.
func (r *CatalogRepo) GetByID(ctx context.Context, id string) (*entity.Catalog, error) {
	return r.getOne(ctx, `SELECT `+catalogColumns+` FROM catalogs WHERE id = $1`, id)
}

// GetByKey obtiene el catálogo de la clave Company+Supplier+DataType.
func (r *CatalogRepo) GetByKey(ctx context.Context, company, supplier, dataType string) (*entity.Catalog, error) {
	return r.getOne(ctx, `SELECT `+catalogColumns+` FROM catalogs WHERE company = $1 AND supplier = $2 AND data_type = $3`,
		company, supplier, dataType)
}

// List catálogos ordenados por empresa y proveedor.
func (r *CatalogRepo) List(ctx context.Context, f repository.CatalogFilter) ([]*entity.Catalog, error) {
	var w whereBuilder
	if f.Company != "" {
		w.add("company = $%d", f.Company)
	}
	if f.Supplier != "" {
		w.add("supplier = $%d", f.Supplier)
	}
	if f.DataType != "" {
		w.add("data_type = $%d", f.DataType)
	}
	rows, err := r.q.Query(ctx, `SELECT `+catalogColumns+` FROM catalogs`+w.sql()+` ORDER BY company, supplier, data_type`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}
	defer rows.Close()
	list := []*entity.Catalog{}
	for rows.Next() {
		c, err := scanCatalog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan catalog: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update reemplaza los ítems del catálogo.
func (r *CatalogRepo) Update(ctx context.Context, c *entity.Catalog) error {
	items, err := json.Marshal(c.Items)
	if err != nil {
		return fmt.Errorf("encode catalog items: %w", err)
	}
	tag, err := r.q.Exec(ctx, `UPDATE catalogs SET items = $2, updated_at = $3 WHERE id = $1`, c.ID, items, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update catalog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un catálogo.
func (r *CatalogRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM catalogs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete catalog: %w", err)
	}
	return nil
}
