package memory

import (
	"context"

	"github.com/jhoicas/sipp-api/internal/domain"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/jhoicas/sipp-api/internal/domain/repository"
)

var (
	_ repository.OrderRepository         = (*OrderRepo)(nil)
	_ repository.ConformityActRepository = (*ActRepo)(nil)
)

// OrderRepo pedidos en memoria.
type OrderRepo struct{ s *Store }

func cloneOrder(o *entity.Order) *entity.Order {
	c := *o
	c.Items = append([]entity.OrderItem(nil), o.Items...)
	if o.CompletedAt != nil {
		t := *o.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[o.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, existing := range r.s.orders {
		if existing.Code == o.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if o, ok := r.s.orders[id]; ok {
		return cloneOrder(o), nil
	}
	return nil, nil
}

// GetForUpdate en memoria equivale a GetByID: RunOrder ya serializa las transacciones.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func matchesOrder(o *entity.Order, f repository.OrderFilter) bool {
	if f.UserID != "" && o.UserID != f.UserID {
		return false
	}
	if f.ProjectID != "" && o.ProjectID != f.ProjectID {
		return false
	}
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.From != nil && o.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && !o.CreatedAt.Before(*f.To) {
		return false
	}
	return true
}

func (r *OrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	r.s.mu.RLock()
	list := make([]*entity.Order, 0, len(r.s.orders))
	for _, o := range r.s.orders {
		if matchesOrder(o, f) {
			list = append(list, cloneOrder(o))
		}
	}
	r.s.mu.RUnlock()
	sortNewestFirst(list, func(o *entity.Order) int64 { return o.CreatedAt.UnixNano() }, func(o *entity.Order) string { return o.ID })
	return page(list, f.Limit, f.Offset), nil
}

func (r *OrderRepo) Update(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *OrderRepo) ListCompletedWithoutAct(_ context.Context) ([]*entity.Order, error) {
	r.s.mu.RLock()
	var list []*entity.Order
	for _, o := range r.s.orders {
		if o.Status != entity.OrderStatusCompleted {
			continue
		}
		if _, ok := r.s.acts[o.ID]; ok {
			continue
		}
		list = append(list, cloneOrder(o))
	}
	r.s.mu.RUnlock()
	sortNewestFirst(list, func(o *entity.Order) int64 { return o.CreatedAt.UnixNano() }, func(o *entity.Order) string { return o.ID })
	return list, nil
}

// ActRepo actas de conformidad en memoria (una por pedido).
type ActRepo struct{ s *Store }

func (r *ActRepo) Create(_ context.Context, a *entity.ConformityAct) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.acts[a.OrderID]; ok {
		return domain.ErrDuplicate
	}
	c := *a
	r.s.acts[a.OrderID] = &c
	return nil
}

func (r *ActRepo) GetByOrderID(_ context.Context, orderID string) (*entity.ConformityAct, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if a, ok := r.s.acts[orderID]; ok {
		c := *a
		return &c, nil
	}
	return nil, nil
}
