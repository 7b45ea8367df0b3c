package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sipp-api/internal/domain"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/jhoicas/sipp-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

const projectColumns = `id, owner_id, name, cost_center, project_number, budget, budget_spent,
	start_date, end_date, created_at, updated_at`

// ProjectRepo implementación de ProjectRepository sobre PostgreSQL (usable con pool o tx).
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

func scanProject(row pgx.Row) (*entity.Project, error) {
	var p entity.Project
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.CostCenter, &p.ProjectNumber, &p.Budget, &p.BudgetSpent,
		&p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Project, error) {
	p, err := scanProject(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// Create persiste un proyecto.
func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.OwnerID, p.Name, p.CostCenter, p.ProjectNumber, p.Budget, p.BudgetSpent,
		p.StartDate, p.EndDate, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto por ID.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	return r.getOne(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
}

// GetForUpdate obtiene el proyecto y bloquea la fila (SELECT FOR UPDATE). Usar dentro de una tx.
func (r *ProjectRepo) GetForUpdate(ctx context.Context, id string) (*entity.Project, error) {
	return r.getOne(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1 FOR UPDATE`, id)
}

// GetByOwnerAndNumber busca por la clave única propietario + número de proyecto.
func (r *ProjectRepo) GetByOwnerAndNumber(ctx context.Context, ownerID, projectNumber string) (*entity.Project, error) {
	return r.getOne(ctx, `SELECT `+projectColumns+` FROM projects WHERE owner_id = $1 AND project_number = $2`, ownerID, projectNumber)
}

// List proyectos, del más reciente al más antiguo.
func (r *ProjectRepo) List(ctx context.Context, f repository.ProjectFilter) ([]*entity.Project, error) {
	var w whereBuilder
	if f.OwnerID != "" {
		w.add("owner_id = $%d", f.OwnerID)
	}
	query := `SELECT ` + projectColumns + ` FROM projects` + w.sql() + ` ORDER BY created_at DESC, id`
	query += w.limitOffset(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	list := []*entity.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza los datos editables. budget_spent solo cambia vía AddSpent.
func (r *ProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	query := `
		UPDATE projects SET name = $2, cost_center = $3, project_number = $4, budget = $5,
			start_date = $6, end_date = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.Name, p.CostCenter, p.ProjectNumber, p.Budget, p.StartDate, p.EndDate, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddSpent suma amount al gasto acumulado del proyecto.
func (r *ProjectRepo) AddSpent(ctx context.Context, id string, amount decimal.Decimal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE projects SET budget_spent = budget_spent + $2, updated_at = now() WHERE id = $1`, id, amount)
	if err != nil {
		return fmt.Errorf("add project spent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un proyecto.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
