package memory

import (
	"context"

	"github.com/jhoicas/sipp-api/internal/domain/repository"
)

// RunOrder ejecuta fn de forma serializada. Si fn falla, pedidos y proyectos vuelven a su estado previo.
// El rollback restaura las colecciones completas: escrituras concurrentes fuera de RunOrder
// sobre esas dos colecciones pueden perderse, aceptable para el driver de demo.
func (s *Store) RunOrder(_ context.Context, fn func(orders repository.OrderRepository, projects repository.ProjectRepository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	ordersSnap := cloneMap(s.orders, cloneOrder)
	projectsSnap := cloneMap(s.projects, cloneProject)
	s.mu.RUnlock()

	if err := fn(s.Orders(), s.Projects()); err != nil {
		s.mu.Lock()
		s.orders = ordersSnap
		s.projects = projectsSnap
		s.mu.Unlock()
		return err
	}
	return nil
}
