// Package memory implementa los puertos de persistencia en memoria del proceso.
// Es el driver STORAGE_DRIVER=memory (demo, desarrollo sin PostgreSQL) y el backend de los tests.
// Cada lectura y escritura copia la entidad: quien llama nunca comparte punteros con el store.
package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/sipp-api/internal/domain/entity"
)

// Store contiene todas las colecciones. txMu serializa las transacciones de RunOrder.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	users    map[string]*entity.User
	sessions map[string]*entity.Session
	projects map[string]*entity.Project
	catalogs map[string]*entity.Catalog
	orders   map[string]*entity.Order
	acts     map[string]*entity.ConformityAct // por OrderID
	messages map[string]*entity.Message
	reports  map[string]*entity.Report
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		users:    map[string]*entity.User{},
		sessions: map[string]*entity.Session{},
		projects: map[string]*entity.Project{},
		catalogs: map[string]*entity.Catalog{},
		orders:   map[string]*entity.Order{},
		acts:     map[string]*entity.ConformityAct{},
		messages: map[string]*entity.Message{},
		reports:  map[string]*entity.Report{},
	}
}

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Sessions devuelve el repositorio de sesiones.
func (s *Store) Sessions() *SessionRepo { return &SessionRepo{s: s} }

// Projects devuelve el repositorio de proyectos.
func (s *Store) Projects() *ProjectRepo { return &ProjectRepo{s: s} }

// Catalogs devuelve el repositorio de catálogos.
func (s *Store) Catalogs() *CatalogRepo { return &CatalogRepo{s: s} }

// Orders devuelve el repositorio de pedidos.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{s: s} }

// Acts devuelve el repositorio de actas de conformidad.
func (s *Store) Acts() *ActRepo { return &ActRepo{s: s} }

// Messages devuelve el repositorio de mensajes.
func (s *Store) Messages() *MessageRepo { return &MessageRepo{s: s} }

// Reports devuelve el repositorio de informes.
func (s *Store) Reports() *ReportRepo { return &ReportRepo{s: s} }

func cloneMap[T any](m map[string]*T, clone func(*T) *T) map[string]*T {
	out := make(map[string]*T, len(m))
	for k, v := range m {
		out[k] = clone(v)
	}
	return out
}

// page aplica limit/offset a una lista ya ordenada. limit <= 0 = sin límite.
func page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// sortNewestFirst ordena por fecha de creación descendente y, a igualdad, por ID.
func sortNewestFirst[T any](list []*T, created func(*T) int64, id func(*T) string) {
	sort.Slice(list, func(i, j int) bool {
		ci, cj := created(list[i]), created(list[j])
		if ci != cj {
			return ci > cj
		}
		return id(list[i]) < id(list[j])
	})
}
