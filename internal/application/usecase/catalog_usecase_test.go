package usecase_test

import (
	"context"
	"errors"
	"io"
	"strings"
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

type stubParser struct {
	items []entity.CatalogItem
	err   error
}

func (p stubParser) ParseCatalogItems(io.Reader) ([]entity.CatalogItem, error) {
	return p.items, p.err
}

func TestCatalogUseCase_UpsertFusiona(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	uc := usecase.NewCatalogUseCase(store.Catalogs(), nil)

	first, err := uc.Upsert(ctx, dto.UpsertCatalogRequest{
		Company: "Universidad", Supplier: "LabSupply", DataType: entity.CatalogProducts,
		Items: []dto.CatalogItemDTO{
			{ID: "P-1", Name: "Matraz", Category: "Vidrio", Price: decimal.NewFromInt(10)},
			{Name: "Pipeta", Category: "Vidrio", Price: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, 2, first.Added)
	for _, it := range first.Catalog.Items {
		assert.NotEmpty(t, it.ID, "todo ítem queda con ID para poder pedirlo")
	}

	second, err := uc.Upsert(ctx, dto.UpsertCatalogRequest{
		Company: "Universidad", Supplier: "LabSupply", DataType: entity.CatalogProducts,
		Items: []dto.CatalogItemDTO{
			{ID: "P-1", Name: "Matraz", Category: "Vidrio", Price: decimal.NewFromInt(11)},
			{Name: "Guantes", Category: "EPI", Price: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Catalog.ID, second.Catalog.ID)
	assert.Equal(t, 1, second.Added)
	assert.Equal(t, 1, second.Replaced)
	require.Len(t, second.Catalog.Items, 3)
	assert.True(t, decimal.NewFromInt(11).Equal(second.Catalog.Items[0].Price))

	hits, err := uc.Search(ctx, "GUANT")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Guantes", hits[0].Item.Name)
	assert.Equal(t, "LabSupply", hits[0].Supplier)
}

func TestCatalogUseCase_Validaciones(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewCatalogUseCase(store.Catalogs(), nil)
	ctx := context.Background()

	_, err := uc.Upsert(ctx, dto.UpsertCatalogRequest{Company: "U", Supplier: "S", DataType: "herramientas",
		Items: []dto.CatalogItemDTO{{Name: "x"}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Upsert(ctx, dto.UpsertCatalogRequest{Company: "U", Supplier: "S", DataType: entity.CatalogServices,
		Items: []dto.CatalogItemDTO{{Name: "x", Price: decimal.NewFromInt(-1)}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Search(ctx, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Import(ctx, "U", "S", entity.CatalogServices, strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin parser no hay importación")
}

func TestCatalogUseCase_Import(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	uc := usecase.NewCatalogUseCase(store.Catalogs(), stubParser{items: []entity.CatalogItem{
		{ID: "S-1", Name: "Calibración balanza", Category: "Metrología", Price: decimal.NewFromInt(120)},
	}})
	out, err := uc.Import(ctx, "Universidad", "MetroLab", entity.CatalogServices, strings.NewReader("xlsx"))
	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.Equal(t, 1, out.Added)

	failing := usecase.NewCatalogUseCase(store.Catalogs(), stubParser{err: errors.New("archivo corrupto")})
	_, err = failing.Import(ctx, "Universidad", "MetroLab", entity.CatalogServices, strings.NewReader("xlsx"))
	assert.Error(t, err)

	empty := usecase.NewCatalogUseCase(store.Catalogs(), stubParser{})
	_, err = empty.Import(ctx, "Universidad", "MetroLab", entity.CatalogServices, strings.NewReader("xlsx"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCatalogUseCase_Delete(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	uc := usecase.NewCatalogUseCase(store.Catalogs(), nil)

	out, err := uc.Upsert(ctx, dto.UpsertCatalogRequest{Company: "U", Supplier: "S", DataType: entity.CatalogProducts,
		Items: []dto.CatalogItemDTO{{Name: "x", Price: decimal.NewFromInt(1)}}})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, out.Catalog.ID))
	assert.ErrorIs(t, uc.Delete(ctx, out.Catalog.ID), domain.ErrNotFound)
}
