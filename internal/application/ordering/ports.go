package ordering

import (
	"context"

	"github.com/jhoicas/sipp-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción que abarca pedidos y proyectos.
// Si fn devuelve error, ningún cambio hecho a través de los repositorios recibidos persiste.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(orders repository.OrderRepository, projects repository.ProjectRepository) error) error
}

// EventRecorder recibe los eventos de negocio que se exponen como métricas.
type EventRecorder interface {
	OrderCreated(orderType string)
	OrderStatusChanged(from, to string)
}

type noopRecorder struct{}

func (noopRecorder) OrderCreated(string)               {}
func (noopRecorder) OrderStatusChanged(string, string) {}
