package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sipp-api/internal/domain"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/jhoicas/sipp-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo informes generados sobre PostgreSQL (contenido en BYTEA).
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Create persiste un informe; un segundo informe del mismo tipo y periodo devuelve ErrDuplicate.
func (r *ReportRepo) Create(ctx context.Context, rep *entity.Report) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO reports (id, kind, period_start, period_end, filename, content, order_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rep.ID, rep.Kind, rep.PeriodStart, rep.PeriodEnd, rep.Filename, rep.Content, rep.OrderCount, rep.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (r *ReportRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Report, error) {
	var rep entity.Report
	err := r.q.QueryRow(ctx, query, args...).Scan(&rep.ID, &rep.Kind, &rep.PeriodStart, &rep.PeriodEnd,
		&rep.Filename, &rep.Content, &rep.OrderCount, &rep.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get report: %w", err)
	}
	return &rep, nil
}

// GetByID obtiene un informe con su contenido.
func (r *ReportRepo) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	return r.getOne(ctx, `
		SELECT id, kind, period_start, period_end, filename, content, order_count, created_at
		FROM reports WHERE id = $1`, id)
}

// GetByPeriod obtiene el informe de un tipo y periodo.
func (r *ReportRepo) GetByPeriod(ctx context.Context, kind string, periodStart time.Time) (*entity.Report, error) {
	return r.getOne(ctx, `
		SELECT id, kind, period_start, period_end, filename, content, order_count, created_at
		FROM reports WHERE kind = $1 AND period_start = $2`, kind, periodStart)
}

// List informes sin contenido, del periodo más reciente al más antiguo.
func (r *ReportRepo) List(ctx context.Context, kind string, limit, offset int) ([]*entity.Report, error) {
	var w whereBuilder
	w.add("kind = $%d", kind)
	query := `
		SELECT id, kind, period_start, period_end, filename, order_count, created_at
		FROM reports` + w.sql() + ` ORDER BY period_start DESC` + w.limitOffset(limit, offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()
	list := []*entity.Report{}
	for rows.Next() {
		var rep entity.Report
		if err := rows.Scan(&rep.ID, &rep.Kind, &rep.PeriodStart, &rep.PeriodEnd, &rep.Filename, &rep.OrderCount, &rep.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		list = append(list, &rep)
	}
	return list, rows.Err()
}
