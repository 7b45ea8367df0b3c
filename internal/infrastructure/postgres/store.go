package postgres

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories agrupa los adaptadores sobre un mismo pool.
type Repositories struct {
	Users    *UserRepo
	Sessions *SessionRepo
	Projects *ProjectRepo
	Catalogs *CatalogRepo
	Orders   *OrderRepo
	Acts     *ActRepo
	Messages *MessageRepo
	Reports  *ReportRepo
	Tx       *TxRunner
}

// NewRepositories construye todos los repositorios sobre pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(pool),
		Sessions: NewSessionRepository(pool),
		Projects: NewProjectRepository(pool),
		Catalogs: NewCatalogRepository(pool),
		Orders:   NewOrderRepository(pool),
		Acts:     NewActRepository(pool),
		Messages: NewMessageRepository(pool),
		Reports:  NewReportRepository(pool),
		Tx:       NewTxRunner(pool),
	}
}
