package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sipp-api/internal/application/dto"
	"github.com/jhoicas/sipp-api/internal/application/usecase"
	"github.com/jhoicas/sipp-api/internal/domain"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/jhoicas/sipp-api/internal/infrastructure/memory"
)

var (
	owner    = dto.Actor{UserID: "user-1", Role: entity.RoleUser}
	stranger = dto.Actor{UserID: "user-2", Role: entity.RoleUser}
)

func TestProjectUseCase_CreadoSePuedeRecuperar(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	uc := usecase.NewProjectUseCase(store.Projects())

	created, err := uc.Create(ctx, owner, dto.CreateProjectRequest{
		Name:          "Espectrometría",
		CostCenter:    "CC-12",
		ProjectNumber: "PRJ-001",
		Budget:        decimal.NewFromInt(5000),
		StartDate:     "2026-01-01",
		EndDate:       "2026-12-31",
	})
	require.NoError(t, err)

	got, err := uc.Get(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Espectrometría", got.Name)
	assert.Equal(t, owner.UserID, got.OwnerID)
	assert.True(t, decimal.Zero.Equal(got.BudgetSpent))

	list, err := uc.List(ctx, owner, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, created.ID, list.Items[0].ID)

	others, err := uc.List(ctx, stranger, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, others.Items)

	all, err := uc.List(ctx, admin, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 1)
}

func TestProjectUseCase_NumeroUnicoPorPropietario(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	uc := usecase.NewProjectUseCase(store.Projects())
	in := dto.CreateProjectRequest{Name: "A", ProjectNumber: "P-1", Budget: decimal.NewFromInt(10)}

	_, err := uc.Create(ctx, owner, in)
	require.NoError(t, err)
	_, err = uc.Create(ctx, owner, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, stranger, in)
	assert.NoError(t, err, "otro propietario puede usar el mismo número")
}

func TestProjectUseCase_AccesoAjeno(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	uc := usecase.NewProjectUseCase(store.Projects())

	p, err := uc.Create(ctx, owner, dto.CreateProjectRequest{Name: "A", ProjectNumber: "P-1", Budget: decimal.NewFromInt(10)})
	require.NoError(t, err)

	_, err = uc.Get(ctx, stranger, p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, uc.Delete(ctx, stranger, p.ID), domain.ErrForbidden)
	assert.NoError(t, uc.Delete(ctx, admin, p.ID))

	_, err = uc.Get(ctx, owner, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectUseCase_Budget(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	uc := usecase.NewProjectUseCase(store.Projects())

	p, err := uc.Create(ctx, owner, dto.CreateProjectRequest{Name: "A", ProjectNumber: "P-1", Budget: decimal.NewFromInt(3)})
	require.NoError(t, err)
	require.NoError(t, store.Projects().AddSpent(ctx, p.ID, decimal.NewFromInt(2)))

	b, err := uc.Budget(ctx, owner, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 67, b.Percentage, "round(2/3*100)")
	assert.True(t, decimal.NewFromInt(1).Equal(b.Available))
}

func TestProjectUseCase_FechasInvalidas(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProjectUseCase(store.Projects())

	_, err := uc.Create(context.Background(), owner, dto.CreateProjectRequest{
		Name: "A", ProjectNumber: "P-1", Budget: decimal.NewFromInt(1), StartDate: "2026-05-01", EndDate: "2026-04-01",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), owner, dto.CreateProjectRequest{Name: "A", ProjectNumber: "P-2", Budget: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
