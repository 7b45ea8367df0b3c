package repository

import (
	"context"
	"time"

	"github.com/jhoicas/sipp-api/internal/domain/entity"
)

// ReportRepository guarda informes generados (contenido PDF incluido).
type ReportRepository interface {
	Create(ctx context.Context, r *entity.Report) error
	GetByID(ctx context.Context, id string) (*entity.Report, error)
	GetByPeriod(ctx context.Context, kind string, periodStart time.Time) (*entity.Report, error)
	// List devuelve los informes sin Content, del más reciente al más antiguo.
	List(ctx context.Context, kind string, limit, offset int) ([]*entity.Report, error)
}
