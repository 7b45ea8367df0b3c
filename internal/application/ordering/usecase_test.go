package ordering_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sipp-api/internal/application/dto"
	"github.com/jhoicas/sipp-api/internal/application/ordering"
	"github.com/jhoicas/sipp-api/internal/domain"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/jhoicas/sipp-api/internal/domain/repository"
	"github.com/jhoicas/sipp-api/internal/infrastructure/memory"
)

var (
	researcher = dto.Actor{UserID: "user-1", Role: entity.RoleUser}
	other      = dto.Actor{UserID: "user-2", Role: entity.RoleUser}
	comercial  = dto.Actor{UserID: "com-1", Role: entity.RoleComercial}
)

type recorder struct {
	created     []string
	transitions [][2]string
}

func (r *recorder) OrderCreated(t string) { r.created = append(r.created, t) }
func (r *recorder) OrderStatusChanged(from, to string) {
	r.transitions = append(r.transitions, [2]string{from, to})
}

type fixture struct {
	store  *memory.Store
	uc     *ordering.OrderUseCase
	events *recorder
}

func setup(t *testing.T, budget int64) fixture {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Projects().Create(ctx, &entity.Project{
		ID: "prj-1", OwnerID: researcher.UserID, Name: "Cromatografía", ProjectNumber: "P-1",
		Budget: decimal.NewFromInt(budget), BudgetSpent: decimal.Zero, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.Catalogs().Create(ctx, &entity.Catalog{
		ID: "cat-prod", Company: "Universidad", Supplier: "LabSupply", DataType: entity.CatalogProducts,
		Items: []entity.CatalogItem{
			{ID: "P-1", Name: "Matraz 250 ml", Category: "Vidrio", Unit: "ud", Price: decimal.RequireFromString("12.50")},
			{ID: "P-2", Name: "Guantes", Category: "EPI", Unit: "caja", Price: decimal.NewFromInt(8)},
		},
		CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.Catalogs().Create(ctx, &entity.Catalog{
		ID: "cat-serv", Company: "Universidad", Supplier: "MetroLab", DataType: entity.CatalogServices,
		Items:     []entity.CatalogItem{{ID: "S-1", Name: "Calibración", Category: "Metrología", Price: decimal.NewFromInt(100)}},
		CreatedAt: now, UpdatedAt: now,
	}))

	events := &recorder{}
	uc := ordering.NewOrderUseCase(store, store.Orders(), store.Catalogs(), events)
	return fixture{store: store, uc: uc, events: events}
}

func purchase(projectID string, qty int64) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		ProjectID: projectID,
		Type:      entity.OrderTypePurchase,
		Items: []dto.OrderItemRequest{
			{CatalogID: "cat-prod", ItemID: "P-1", Quantity: decimal.NewFromInt(qty), UnitPrice: decimal.NewFromInt(1)},
		},
	}
}

func TestCreate_PrecioDelCatalogo(t *testing.T) {
	f := setup(t, 1000)

	out, err := f.uc.Create(context.Background(), researcher, purchase("prj-1", 4))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^PED-\d{8}-[0-9A-F]{6}$`), out.Code)
	assert.Equal(t, entity.OrderStatusPending, out.Status)
	assert.Equal(t, entity.PriorityMedium, out.Priority)
	require.Len(t, out.Items, 1)
	assert.True(t, decimal.RequireFromString("12.50").Equal(out.Items[0].UnitPrice), "el precio enviado por el cliente se ignora")
	assert.Equal(t, "LabSupply", out.Items[0].Supplier)
	assert.True(t, decimal.NewFromInt(50).Equal(out.Total))
	assert.Equal(t, []string{entity.OrderTypePurchase}, f.events.created)
}

func TestCreate_SuperaPresupuesto(t *testing.T) {
	f := setup(t, 40)

	_, err := f.uc.Create(context.Background(), researcher, purchase("prj-1", 4))
	assert.ErrorIs(t, err, domain.ErrBudgetExceeded)

	list, err := f.store.Orders().List(context.Background(), repository.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, list, "un checkout rechazado no deja pedido")
}

func TestCreate_ProyectoAjeno(t *testing.T) {
	f := setup(t, 1000)

	_, err := f.uc.Create(context.Background(), other, purchase("prj-1", 1))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Create(context.Background(), researcher, purchase("no-existe", 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_PedidoEspecialSinProyecto(t *testing.T) {
	f := setup(t, 10)

	out, err := f.uc.Create(context.Background(), researcher, dto.CreateOrderRequest{
		Type:     entity.OrderTypeSpecial,
		Priority: entity.PriorityUrgent,
		Items: []dto.OrderItemRequest{
			{Name: "Reparación campana", Category: "Mantenimiento", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(300)},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, out.ProjectID)
	assert.True(t, decimal.NewFromInt(300).Equal(out.Total), "sin proyecto no hay tope de presupuesto")
}

func TestCreate_Validaciones(t *testing.T) {
	f := setup(t, 1000)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, researcher, purchase("prj-1", 0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = f.uc.Create(ctx, researcher, dto.CreateOrderRequest{Type: entity.OrderTypeService, ProjectID: "prj-1",
		Items: []dto.OrderItemRequest{{CatalogID: "cat-prod", ItemID: "P-1", Quantity: decimal.NewFromInt(1)}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un servicio no sale de un catálogo de productos")

	_, err = f.uc.Create(ctx, researcher, dto.CreateOrderRequest{Type: entity.OrderTypePurchase, ProjectID: "prj-1",
		Items: []dto.OrderItemRequest{{CatalogID: "cat-prod", ItemID: "P-404", Quantity: decimal.NewFromInt(1)}}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Create(ctx, researcher, dto.CreateOrderRequest{Type: entity.OrderTypeSpecial,
		Items: []dto.OrderItemRequest{{Quantity: decimal.NewFromInt(1)}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "ítem libre sin nombre")
}

func TestUpdateStatus_CompletarImputaGasto(t *testing.T) {
	f := setup(t, 1000)
	ctx := context.Background()

	created, err := f.uc.Create(ctx, researcher, purchase("prj-1", 4))
	require.NoError(t, err)

	inProgress, err := f.uc.UpdateStatus(ctx, comercial, created.ID, entity.OrderStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, 10, inProgress.Progress)

	done, err := f.uc.UpdateStatus(ctx, comercial, created.ID, entity.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, 100, done.Progress)
	require.NotNil(t, done.CompletedAt)

	p, err := f.store.Projects().GetByID(ctx, "prj-1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50).Equal(p.BudgetSpent))
	assert.Equal(t, 5, p.SpentPercentage())

	_, err = f.uc.UpdateStatus(ctx, comercial, created.ID, entity.OrderStatusDenied)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "Completado es final")

	p, err = f.store.Projects().GetByID(ctx, "prj-1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50).Equal(p.BudgetSpent), "el gasto se imputa una sola vez")

	assert.Equal(t, [][2]string{
		{entity.OrderStatusPending, entity.OrderStatusInProgress},
		{entity.OrderStatusInProgress, entity.OrderStatusCompleted},
	}, f.events.transitions)
}

func TestUpdateStatus_DenegarNoImputa(t *testing.T) {
	f := setup(t, 1000)
	ctx := context.Background()

	created, err := f.uc.Create(ctx, researcher, purchase("prj-1", 2))
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(ctx, researcher, created.ID, entity.OrderStatusDenied)
	assert.ErrorIs(t, err, domain.ErrForbidden, "un usuario no cambia estados")

	_, err = f.uc.UpdateStatus(ctx, comercial, created.ID, entity.OrderStatusDenied)
	require.NoError(t, err)

	p, err := f.store.Projects().GetByID(ctx, "prj-1")
	require.NoError(t, err)
	assert.True(t, p.BudgetSpent.IsZero())
}

func TestUpdateProgress_SoloEnProceso(t *testing.T) {
	f := setup(t, 1000)
	ctx := context.Background()

	created, err := f.uc.Create(ctx, researcher, purchase("prj-1", 1))
	require.NoError(t, err)

	_, err = f.uc.UpdateProgress(ctx, comercial, created.ID, 40)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.UpdateStatus(ctx, comercial, created.ID, entity.OrderStatusInProgress)
	require.NoError(t, err)

	out, err := f.uc.UpdateProgress(ctx, comercial, created.ID, 40)
	require.NoError(t, err)
	assert.Equal(t, 40, out.Progress)
	assert.Equal(t, entity.OrderStatusInProgress, out.Status)

	_, err = f.uc.UpdateProgress(ctx, comercial, created.ID, 140)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetYList_Visibilidad(t *testing.T) {
	f := setup(t, 1000)
	ctx := context.Background()

	created, err := f.uc.Create(ctx, researcher, purchase("prj-1", 1))
	require.NoError(t, err)

	_, err = f.uc.Get(ctx, other, created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.uc.Get(ctx, comercial, created.ID)
	assert.NoError(t, err)

	mine, err := f.uc.List(ctx, other, ordering.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, mine.Items)

	all, err := f.uc.List(ctx, comercial, ordering.ListFilter{Status: entity.OrderStatusPending})
	require.NoError(t, err)
	assert.Len(t, all.Items, 1)

	_, err = f.uc.List(ctx, comercial, ordering.ListFilter{Status: "Archivado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
