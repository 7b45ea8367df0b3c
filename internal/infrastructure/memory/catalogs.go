package memory

import (
	"context"

	"github.com/jhoicas/sipp-api/internal/domain"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/jhoicas/sipp-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo catálogos en memoria; clave única Company+Supplier+DataType.
type CatalogRepo struct{ s *Store }

func cloneCatalog(c *entity.Catalog) *entity.Catalog {
	out := *c
	out.Items = append([]entity.CatalogItem(nil), c.Items...)
	return &out
}

func sameCatalogKey(a, b *entity.Catalog) bool {
	return a.Company == b.Company && a.Supplier == b.Supplier && a.DataType == b.DataType
}

func (r *CatalogRepo) Create(_ context.Context, c *entity.Catalog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.catalogs {
		if sameCatalogKey(existing, c) {
			return domain.ErrDuplicate
		}
	}
	r.s.catalogs[c.ID] = cloneCatalog(c)
	return nil
}

func (r *CatalogRepo) GetByID(_ context.Context, id string) (*entity.Catalog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if c, ok := r.s.catalogs[id]; ok {
		return cloneCatalog(c), nil
	}
	return nil, nil
}

func (r *CatalogRepo) GetByKey(_ context.Context, company, supplier, dataType string) (*entity.Catalog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	key := &entity.Catalog{Company: company, Supplier: supplier, DataType: dataType}
	for _, c := range r.s.catalogs {
		if sameCatalogKey(c, key) {
			return cloneCatalog(c), nil
		}
	}
	return nil, nil
}

func (r *CatalogRepo) List(_ context.Context, f repository.CatalogFilter) ([]*entity.Catalog, error) {
	r.s.mu.RLock()
	list := make([]*entity.Catalog, 0, len(r.s.catalogs))
	for _, c := range r.s.catalogs {
		if f.Company != "" && c.Company != f.Company {
			continue
		}
		if f.Supplier != "" && c.Supplier != f.Supplier {
			continue
		}
		if f.DataType != "" && c.DataType != f.DataType {
			continue
		}
		list = append(list, cloneCatalog(c))
	}
	r.s.mu.RUnlock()
	sortNewestFirst(list, func(c *entity.Catalog) int64 { return c.CreatedAt.UnixNano() }, func(c *entity.Catalog) string { return c.ID })
	return list, nil
}

func (r *CatalogRepo) Update(_ context.Context, c *entity.Catalog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.catalogs[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.catalogs[c.ID] = cloneCatalog(c)
	return nil
}

func (r *CatalogRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.catalogs, id)
	return nil
}
