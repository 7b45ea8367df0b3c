package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sipp-api/internal/application/dto"
	"github.com/jhoicas/sipp-api/internal/domain"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/jhoicas/sipp-api/internal/domain/repository"
)

// CatalogUseCase alta/fusión, importación y búsqueda de catálogos de proveedores.
type CatalogUseCase struct {
	repo   repository.CatalogRepository
	parser CatalogSheetParser
	now    func() time.Time
}

// NewCatalogUseCase construye el caso de uso. parser puede ser nil si no se habilita la importación.
func NewCatalogUseCase(repo repository.CatalogRepository, parser CatalogSheetParser) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, parser: parser, now: time.Now}
}

// Upsert crea el catálogo Company+Supplier+DataType o fusiona los ítems en el existente.
func (uc *CatalogUseCase) Upsert(ctx context.Context, in dto.UpsertCatalogRequest) (*dto.UpsertCatalogResponse, error) {
	items := make([]entity.CatalogItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.CatalogItem{
			ID:          strings.TrimSpace(it.ID),
			Name:        strings.TrimSpace(it.Name),
			Description: it.Description,
			Category:    strings.TrimSpace(it.Category),
			Unit:        it.Unit,
			Price:       it.Price,
		})
	}
	return uc.merge(ctx, in.Company, in.Supplier, in.DataType, items)
}

// Import lee un .xlsx y fusiona sus filas en el catálogo indicado.
func (uc *CatalogUseCase) Import(ctx context.Context, company, supplier, dataType string, r io.Reader) (*dto.UpsertCatalogResponse, error) {
	if uc.parser == nil {
		return nil, fmt.Errorf("importación no disponible: %w", domain.ErrInvalidInput)
	}
	items, err := uc.parser.ParseCatalogItems(r)
	if err != nil {
		return nil, fmt.Errorf("leer hoja de cálculo: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("la hoja no contiene ítems: %w", domain.ErrInvalidInput)
	}
	return uc.merge(ctx, company, supplier, dataType, items)
}

func (uc *CatalogUseCase) merge(ctx context.Context, company, supplier, dataType string, items []entity.CatalogItem) (*dto.UpsertCatalogResponse, error) {
	company, supplier = strings.TrimSpace(company), strings.TrimSpace(supplier)
	if company == "" || supplier == "" {
		return nil, fmt.Errorf("empresa y proveedor son obligatorios: %w", domain.ErrInvalidInput)
	}
	if !entity.ValidCatalogType(dataType) {
		return nil, fmt.Errorf("tipo de catálogo %q: %w", dataType, domain.ErrInvalidInput)
	}
	for _, it := range items {
		if it.Name == "" {
			return nil, fmt.Errorf("ítem sin nombre: %w", domain.ErrInvalidInput)
		}
		if it.Price.IsNegative() {
			return nil, fmt.Errorf("precio negativo en %q: %w", it.Name, domain.ErrInvalidInput)
		}
	}

	now := uc.now()
	c, err := uc.repo.GetByKey(ctx, company, supplier, dataType)
	if err != nil {
		return nil, err
	}
	created := c == nil
	if created {
		c = &entity.Catalog{
			ID:        uuid.New().String(),
			Company:   company,
			Supplier:  supplier,
			DataType:  dataType,
			CreatedAt: now,
		}
	}
	added, replaced := c.MergeItems(items)
	for i := range c.Items {
		if c.Items[i].ID == "" {
			c.Items[i].ID = newItemID()
		}
	}
	c.UpdatedAt = now

	if created {
		err = uc.repo.Create(ctx, c)
	} else {
		err = uc.repo.Update(ctx, c)
	}
	if err != nil {
		return nil, err
	}
	return &dto.UpsertCatalogResponse{Catalog: *toCatalogResponse(c), Created: created, Added: added, Replaced: replaced}, nil
}

// List catálogos con filtros opcionales.
func (uc *CatalogUseCase) List(ctx context.Context, f repository.CatalogFilter) ([]dto.CatalogResponse, error) {
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CatalogResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCatalogResponse(c))
	}
	return out, nil
}

// Get devuelve un catálogo por ID.
func (uc *CatalogUseCase) Get(ctx context.Context, id string) (*dto.CatalogResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCatalogResponse(c), nil
}

// Search busca q (sin distinguir mayúsculas) en nombre y descripción de los ítems de todos los catálogos.
func (uc *CatalogUseCase) Search(ctx context.Context, q string) ([]dto.CatalogSearchHit, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil, fmt.Errorf("texto de búsqueda vacío: %w", domain.ErrInvalidInput)
	}
	list, err := uc.repo.List(ctx, repository.CatalogFilter{})
	if err != nil {
		return nil, err
	}
	hits := []dto.CatalogSearchHit{}
	for _, c := range list {
		for _, it := range c.Items {
			if strings.Contains(strings.ToLower(it.Name), q) || strings.Contains(strings.ToLower(it.Description), q) {
				hits = append(hits, dto.CatalogSearchHit{
					CatalogID: c.ID,
					Company:   c.Company,
					Supplier:  c.Supplier,
					DataType:  c.DataType,
					Item:      toCatalogItemDTO(it),
				})
			}
		}
	}
	return hits, nil
}

// Delete elimina un catálogo. Los pedidos ya creados conservan su copia de los ítems.
func (uc *CatalogUseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func newItemID() string {
	return "ITM-" + strings.ToUpper(uuid.New().String()[:8])
}

func toCatalogItemDTO(it entity.CatalogItem) dto.CatalogItemDTO {
	return dto.CatalogItemDTO{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Category:    it.Category,
		Unit:        it.Unit,
		Price:       it.Price,
	}
}

func toCatalogResponse(c *entity.Catalog) *dto.CatalogResponse {
	items := make([]dto.CatalogItemDTO, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, toCatalogItemDTO(it))
	}
	return &dto.CatalogResponse{
		ID:        c.ID,
		Company:   c.Company,
		Supplier:  c.Supplier,
		DataType:  c.DataType,
		Items:     items,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
