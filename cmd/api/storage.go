package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/sipp-api/internal/application/ordering"
	"github.com/jhoicas/sipp-api/internal/domain/repository"
	"github.com/jhoicas/sipp-api/internal/infrastructure/memory"
	"github.com/jhoicas/sipp-api/internal/infrastructure/postgres"
	"github.com/jhoicas/sipp-api/pkg/config"
	"github.com/jhoicas/sipp-api/pkg/logger"
)

// storage puertos de persistencia resueltos según STORAGE_DRIVER.
type storage struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	projects repository.ProjectRepository
	catalogs repository.CatalogRepository
	orders   repository.OrderRepository
	acts     repository.ConformityActRepository
	messages repository.MessageRepository
	reports  repository.ReportRepository
	tx       ordering.TxRunner
	close    func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			users:    s.Users(),
			sessions: s.Sessions(),
			projects: s.Projects(),
			catalogs: s.Catalogs(),
			orders:   s.Orders(),
			acts:     s.Acts(),
			messages: s.Messages(),
			reports:  s.Reports(),
			tx:       s,
			close:    func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	}
	r := postgres.NewRepositories(pool)
	return &storage{
		users:    r.Users,
		sessions: r.Sessions,
		projects: r.Projects,
		catalogs: r.Catalogs,
		orders:   r.Orders,
		acts:     r.Acts,
		messages: r.Messages,
		reports:  r.Reports,
		tx:       r.Tx,
		close:    pool.Close,
	}, nil
}
