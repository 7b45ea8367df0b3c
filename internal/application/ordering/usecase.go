// Package ordering implementa el checkout de pedidos y su ciclo de vida
// (Pendiente, En proceso, Completado, Denegado) con imputación al presupuesto del proyecto.
package ordering

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sipp-api/internal/application/dto"
	"github.com/jhoicas/sipp-api/internal/domain"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/jhoicas/sipp-api/internal/domain/repository"
)

const codeAttempts = 3

// OrderUseCase casos de uso de pedidos.
type OrderUseCase struct {
	tx       TxRunner
	orders   repository.OrderRepository
	catalogs repository.CatalogRepository
	events   EventRecorder
	now      func() time.Time
}

// NewOrderUseCase construye el caso de uso. events puede ser nil.
func NewOrderUseCase(tx TxRunner, orders repository.OrderRepository, catalogs repository.CatalogRepository, events EventRecorder) *OrderUseCase {
	if events == nil {
		events = noopRecorder{}
	}
	return &OrderUseCase{tx: tx, orders: orders, catalogs: catalogs, events: events, now: time.Now}
}

// Create hace el checkout: resuelve ítems contra el catálogo, calcula el total y, si hay proyecto,
// verifica que no supere el presupuesto disponible. El pedido nace Pendiente.
func (uc *OrderUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if !entity.ValidOrderType(in.Type) {
		return nil, fmt.Errorf("tipo de pedido %q: %w", in.Type, domain.ErrInvalidInput)
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	if !entity.ValidPriority(priority) {
		return nil, fmt.Errorf("prioridad %q: %w", priority, domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("el pedido no tiene ítems: %w", domain.ErrInvalidInput)
	}
	items, err := uc.resolveItems(ctx, in.Type, in.Items)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	order := &entity.Order{
		UserID:    actor.UserID,
		ProjectID: strings.TrimSpace(in.ProjectID),
		Type:      in.Type,
		Items:     items,
		Status:    entity.OrderStatusPending,
		Priority:  priority,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	order.Recalculate()

	err = uc.tx.RunOrder(ctx, func(orders repository.OrderRepository, projects repository.ProjectRepository) error {
		if order.HasProject() {
			p, err := projects.GetForUpdate(ctx, order.ProjectID)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("proyecto %s: %w", order.ProjectID, domain.ErrNotFound)
			}
			if p.OwnerID != actor.UserID && !actor.IsAdmin() {
				return fmt.Errorf("el proyecto no pertenece al usuario: %w", domain.ErrForbidden)
			}
			if order.Total.GreaterThan(p.Available()) {
				return fmt.Errorf("total %s, disponible %s: %w", order.Total.StringFixed(2), p.Available().StringFixed(2), domain.ErrBudgetExceeded)
			}
		}
		return createWithCode(ctx, orders, order, now)
	})
	if err != nil {
		return nil, err
	}
	uc.events.OrderCreated(order.Type)
	return ToOrderResponse(order), nil
}

// createWithCode asigna un código PED único; reintenta ante colisión.
func createWithCode(ctx context.Context, orders repository.OrderRepository, order *entity.Order, now time.Time) error {
	var err error
	for i := 0; i < codeAttempts; i++ {
		order.ID = uuid.New().String()
		order.Code = entity.DocumentCode(entity.OrderCodePrefix, now, strings.ReplaceAll(uuid.New().String(), "-", ""))
		if err = orders.Create(ctx, order); !errors.Is(err, domain.ErrDuplicate) {
			return err
		}
	}
	return err
}

func (uc *OrderUseCase) resolveItems(ctx context.Context, orderType string, in []dto.OrderItemRequest) ([]entity.OrderItem, error) {
	catalogs := map[string]*entity.Catalog{}
	items := make([]entity.OrderItem, 0, len(in))
	for i, req := range in {
		if !req.Quantity.IsPositive() {
			return nil, fmt.Errorf("ítem %d: la cantidad debe ser mayor que cero: %w", i+1, domain.ErrInvalidInput)
		}
		if orderType == entity.OrderTypeSpecial && req.CatalogID == "" {
			name := strings.TrimSpace(req.Name)
			if name == "" {
				return nil, fmt.Errorf("ítem %d: nombre obligatorio: %w", i+1, domain.ErrInvalidInput)
			}
			if req.UnitPrice.IsNegative() {
				return nil, fmt.Errorf("ítem %d: precio negativo: %w", i+1, domain.ErrInvalidInput)
			}
			items = append(items, entity.OrderItem{
				Name:        name,
				Description: req.Description,
				Category:    strings.TrimSpace(req.Category),
				Supplier:    req.Supplier,
				Unit:        req.Unit,
				Quantity:    req.Quantity,
				UnitPrice:   req.UnitPrice,
			})
			continue
		}

		if req.CatalogID == "" || req.ItemID == "" {
			return nil, fmt.Errorf("ítem %d: catálogo e ítem obligatorios: %w", i+1, domain.ErrInvalidInput)
		}
		c, ok := catalogs[req.CatalogID]
		if !ok {
			var err error
			if c, err = uc.catalogs.GetByID(ctx, req.CatalogID); err != nil {
				return nil, err
			}
			if c == nil {
				return nil, fmt.Errorf("catálogo %s: %w", req.CatalogID, domain.ErrNotFound)
			}
			catalogs[req.CatalogID] = c
		}
		if want := catalogTypeFor(orderType); want != "" && c.DataType != want {
			return nil, fmt.Errorf("ítem %d: un pedido %s no admite catálogos de %s: %w", i+1, orderType, c.DataType, domain.ErrInvalidInput)
		}
		ci, found := c.FindItem(req.ItemID)
		if !found {
			return nil, fmt.Errorf("ítem %s en catálogo %s: %w", req.ItemID, c.ID, domain.ErrNotFound)
		}
		items = append(items, entity.OrderItem{
			CatalogID:   c.ID,
			ItemID:      ci.ID,
			Name:        ci.Name,
			Description: ci.Description,
			Category:    ci.Category,
			Supplier:    c.Supplier,
			Unit:        ci.Unit,
			Quantity:    req.Quantity,
			UnitPrice:   ci.Price,
		})
	}
	return items, nil
}

func catalogTypeFor(orderType string) string {
	switch orderType {
	case entity.OrderTypePurchase:
		return entity.CatalogProducts
	case entity.OrderTypeService:
		return entity.CatalogServices
	}
	return ""
}

// Get devuelve el pedido si el actor es su autor o personal (admin/comercial).
func (uc *OrderUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.OrderResponse, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if o.UserID != actor.UserID && !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	return ToOrderResponse(o), nil
}

// ListFilter filtros aceptados por List.
type ListFilter struct {
	Status    string
	ProjectID string
	Page      dto.PageRequest
}

// List pedidos propios; admin y comercial ven todos.
func (uc *OrderUseCase) List(ctx context.Context, actor dto.Actor, in ListFilter) (*dto.OrderListResponse, error) {
	if in.Status != "" && !entity.ValidOrderStatus(in.Status) {
		return nil, fmt.Errorf("estado %q: %w", in.Status, domain.ErrInvalidInput)
	}
	in.Page.DefaultPage()
	f := repository.OrderFilter{
		Status:    in.Status,
		ProjectID: in.ProjectID,
		Limit:     in.Page.Limit,
		Offset:    in.Page.Offset,
	}
	if !actor.IsStaff() {
		f.UserID = actor.UserID
	}
	list, err := uc.orders.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *ToOrderResponse(o))
	}
	return &dto.OrderListResponse{Items: items, Page: dto.PageResponse{Limit: in.Page.Limit, Offset: in.Page.Offset}}, nil
}

// UpdateStatus aplica una transición válida. Completar imputa el total al presupuesto del
// proyecto en la misma transacción.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, actor dto.Actor, id, status string) (*dto.OrderResponse, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if !entity.ValidOrderStatus(status) {
		return nil, fmt.Errorf("estado %q: %w", status, domain.ErrInvalidInput)
	}
	var (
		updated *entity.Order
		from    string
	)
	err := uc.tx.RunOrder(ctx, func(orders repository.OrderRepository, projects repository.ProjectRepository) error {
		o, err := orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if !entity.CanTransition(o.Status, status) {
			return fmt.Errorf("%s -> %s: %w", o.Status, status, domain.ErrInvalidTransition)
		}
		from = o.Status
		o.ApplyStatus(status, uc.now())
		if status == entity.OrderStatusCompleted && o.HasProject() {
			p, err := projects.GetForUpdate(ctx, o.ProjectID)
			if err != nil {
				return err
			}
			if p != nil {
				if err := projects.AddSpent(ctx, p.ID, o.Total); err != nil {
					return fmt.Errorf("imputar gasto: %w", err)
				}
			}
		}
		if err := orders.Update(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.events.OrderStatusChanged(from, status)
	return ToOrderResponse(updated), nil
}

// UpdateProgress actualiza el avance de un pedido En proceso.
func (uc *OrderUseCase) UpdateProgress(ctx context.Context, actor dto.Actor, id string, progress int) (*dto.OrderResponse, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if progress < 0 || progress > 100 {
		return nil, fmt.Errorf("progreso %d: %w", progress, domain.ErrInvalidInput)
	}
	var updated *entity.Order
	err := uc.tx.RunOrder(ctx, func(orders repository.OrderRepository, _ repository.ProjectRepository) error {
		o, err := orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if o.Status != entity.OrderStatusInProgress {
			return fmt.Errorf("solo se registra avance de pedidos en proceso: %w", domain.ErrConflict)
		}
		o.Progress = progress
		o.UpdatedAt = uc.now()
		updated = o
		return orders.Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(updated), nil
}

// ToOrderResponse convierte la entidad a DTO.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			CatalogID:   it.CatalogID,
			ItemID:      it.ItemID,
			Name:        it.Name,
			Description: it.Description,
			Category:    it.Category,
			Supplier:    it.Supplier,
			Unit:        it.Unit,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return &dto.OrderResponse{
		ID:          o.ID,
		Code:        o.Code,
		UserID:      o.UserID,
		ProjectID:   o.ProjectID,
		Type:        o.Type,
		Items:       items,
		Total:       o.Total,
		Status:      o.Status,
		Priority:    o.Priority,
		Progress:    o.Progress,
		Notes:       o.Notes,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		CompletedAt: o.CompletedAt,
	}
}
