package memory

import (
	"context"

	"github.com/jhoicas/sipp-api/internal/domain"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/jhoicas/sipp-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo proyectos en memoria.
type ProjectRepo struct{ s *Store }

func cloneProject(p *entity.Project) *entity.Project {
	c := *p
	if p.StartDate != nil {
		d := *p.StartDate
		c.StartDate = &d
	}
	if p.EndDate != nil {
		d := *p.EndDate
		c.EndDate = &d
	}
	return &c
}

func (r *ProjectRepo) Create(_ context.Context, p *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.projects {
		if existing.OwnerID == p.OwnerID && existing.ProjectNumber == p.ProjectNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.projects[p.ID] = cloneProject(p)
	return nil
}

func (r *ProjectRepo) GetByID(_ context.Context, id string) (*entity.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if p, ok := r.s.projects[id]; ok {
		return cloneProject(p), nil
	}
	return nil, nil
}

// GetForUpdate en memoria equivale a GetByID: RunOrder ya serializa las transacciones.
func (r *ProjectRepo) GetForUpdate(ctx context.Context, id string) (*entity.Project, error) {
	return r.GetByID(ctx, id)
}

func (r *ProjectRepo) GetByOwnerAndNumber(_ context.Context, ownerID, number string) (*entity.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.projects {
		if p.OwnerID == ownerID && p.ProjectNumber == number {
			return cloneProject(p), nil
		}
	}
	return nil, nil
}

func (r *ProjectRepo) List(_ context.Context, f repository.ProjectFilter) ([]*entity.Project, error) {
	r.s.mu.RLock()
	list := make([]*entity.Project, 0, len(r.s.projects))
	for _, p := range r.s.projects {
		if f.OwnerID != "" && p.OwnerID != f.OwnerID {
			continue
		}
		list = append(list, cloneProject(p))
	}
	r.s.mu.RUnlock()
	sortNewestFirst(list, func(p *entity.Project) int64 { return p.CreatedAt.UnixNano() }, func(p *entity.Project) string { return p.ID })
	return page(list, f.Limit, f.Offset), nil
}

// Update reemplaza los datos editables. El dueño, la fecha de alta y el gasto acumulado
// se conservan: el gasto solo cambia vía AddSpent.
func (r *ProjectRepo) Update(_ context.Context, p *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.projects[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, existing := range r.s.projects {
		if id != p.ID && existing.OwnerID == stored.OwnerID && existing.ProjectNumber == p.ProjectNumber {
			return domain.ErrDuplicate
		}
	}
	next := cloneProject(p)
	next.OwnerID = stored.OwnerID
	next.CreatedAt = stored.CreatedAt
	next.BudgetSpent = stored.BudgetSpent
	r.s.projects[p.ID] = next
	return nil
}

func (r *ProjectRepo) AddSpent(_ context.Context, id string, amount decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.BudgetSpent = p.BudgetSpent.Add(amount)
	return nil
}

func (r *ProjectRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.projects, id)
	return nil
}
