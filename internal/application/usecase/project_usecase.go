package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sipp-api/internal/application/dto"
	"github.com/jhoicas/sipp-api/internal/domain"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/jhoicas/sipp-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// ProjectUseCase CRUD de proyectos y consulta de presupuesto.
type ProjectUseCase struct {
	repo repository.ProjectRepository
	now  func() time.Time
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(repo repository.ProjectRepository) *ProjectUseCase {
	return &ProjectUseCase{repo: repo, now: time.Now}
}

// Create crea un proyecto del actor. ProjectNumber no puede repetirse para el mismo propietario.
func (uc *ProjectUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if in.Budget.IsNegative() {
		return nil, fmt.Errorf("presupuesto negativo: %w", domain.ErrInvalidInput)
	}
	start, err := parseDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(in.EndDate)
	if err != nil {
		return nil, err
	}
	if err := checkDateRange(start, end); err != nil {
		return nil, err
	}
	number := strings.TrimSpace(in.ProjectNumber)
	existing, err := uc.repo.GetByOwnerAndNumber(ctx, actor.UserID, number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("número de proyecto %s: %w", number, domain.ErrDuplicate)
	}

	now := uc.now()
	p := &entity.Project{
		ID:            uuid.New().String(),
		OwnerID:       actor.UserID,
		Name:          strings.TrimSpace(in.Name),
		CostCenter:    in.CostCenter,
		ProjectNumber: number,
		Budget:        in.Budget,
		BudgetSpent:   decimal.Zero,
		StartDate:     start,
		EndDate:       end,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

// Get devuelve el proyecto si el actor es su propietario o admin.
func (uc *ProjectUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.ProjectResponse, error) {
	p, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

// List proyectos propios; el admin ve todos.
func (uc *ProjectUseCase) List(ctx context.Context, actor dto.Actor, page dto.PageRequest) (*dto.ProjectListResponse, error) {
	page.DefaultPage()
	f := repository.ProjectFilter{Limit: page.Limit, Offset: page.Offset}
	if !actor.IsAdmin() {
		f.OwnerID = actor.UserID
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProjectResponse(p))
	}
	return &dto.ProjectListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Update edición parcial; solo propietario o admin.
func (uc *ProjectUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	p, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.CostCenter != nil {
		p.CostCenter = *in.CostCenter
	}
	if in.ProjectNumber != nil {
		number := strings.TrimSpace(*in.ProjectNumber)
		if number != p.ProjectNumber {
			other, err := uc.repo.GetByOwnerAndNumber(ctx, p.OwnerID, number)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, fmt.Errorf("número de proyecto %s: %w", number, domain.ErrDuplicate)
			}
			p.ProjectNumber = number
		}
	}
	if in.Budget != nil {
		if in.Budget.IsNegative() {
			return nil, fmt.Errorf("presupuesto negativo: %w", domain.ErrInvalidInput)
		}
		p.Budget = *in.Budget
	}
	if in.StartDate != nil {
		if p.StartDate, err = parseDate(*in.StartDate); err != nil {
			return nil, err
		}
	}
	if in.EndDate != nil {
		if p.EndDate, err = parseDate(*in.EndDate); err != nil {
			return nil, err
		}
	}
	if err := checkDateRange(p.StartDate, p.EndDate); err != nil {
		return nil, err
	}
	p.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

// Delete elimina el proyecto; solo propietario o admin.
func (uc *ProjectUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	if _, err := uc.load(ctx, actor, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// Budget estado del presupuesto: gastado, disponible y porcentaje redondeado.
func (uc *ProjectUseCase) Budget(ctx context.Context, actor dto.Actor, id string) (*dto.ProjectBudgetResponse, error) {
	p, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return &dto.ProjectBudgetResponse{
		ProjectID:  p.ID,
		Budget:     p.Budget,
		Spent:      p.BudgetSpent,
		Available:  p.Available(),
		Percentage: p.SpentPercentage(),
	}, nil
}

func (uc *ProjectUseCase) load(ctx context.Context, actor dto.Actor, id string) (*entity.Project, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.OwnerID != actor.UserID && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("fecha %q: %w", s, domain.ErrInvalidInput)
	}
	return &t, nil
}

func checkDateRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("la fecha de fin es anterior a la de inicio: %w", domain.ErrInvalidInput)
	}
	return nil
}

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:            p.ID,
		OwnerID:       p.OwnerID,
		Name:          p.Name,
		CostCenter:    p.CostCenter,
		ProjectNumber: p.ProjectNumber,
		Budget:        p.Budget,
		BudgetSpent:   p.BudgetSpent,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
