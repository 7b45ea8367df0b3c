package memory

import (
	"context"
	"time"

	"github.com/jhoicas/sipp-api/internal/domain"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/jhoicas/sipp-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo informes generados en memoria. Content no se copia: los PDF son inmutables.
type ReportRepo struct{ s *Store }

func (r *ReportRepo) Create(_ context.Context, rep *entity.Report) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.reports {
		if existing.Kind == rep.Kind && existing.PeriodStart.Equal(rep.PeriodStart) {
			return domain.ErrDuplicate
		}
	}
	c := *rep
	r.s.reports[rep.ID] = &c
	return nil
}

func (r *ReportRepo) GetByID(_ context.Context, id string) (*entity.Report, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if rep, ok := r.s.reports[id]; ok {
		c := *rep
		return &c, nil
	}
	return nil, nil
}

func (r *ReportRepo) GetByPeriod(_ context.Context, kind string, periodStart time.Time) (*entity.Report, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rep := range r.s.reports {
		if rep.Kind == kind && rep.PeriodStart.Equal(periodStart) {
			c := *rep
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ReportRepo) List(_ context.Context, kind string, limit, offset int) ([]*entity.Report, error) {
	r.s.mu.RLock()
	list := make([]*entity.Report, 0, len(r.s.reports))
	for _, rep := range r.s.reports {
		if kind != "" && rep.Kind != kind {
			continue
		}
		c := *rep
		c.Content = nil
		list = append(list, &c)
	}
	r.s.mu.RUnlock()
	sortNewestFirst(list, func(r *entity.Report) int64 { return r.PeriodStart.UnixNano() }, func(r *entity.Report) string { return r.ID })
	return page(list, limit, offset), nil
}
