package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sipp-api/internal/domain"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/jhoicas/sipp-api/internal/domain/repository"
)

var (
	_ repository.OrderRepository         = (*OrderRepo)(nil)
	_ repository.ConformityActRepository = (*ActRepo)(nil)
)

const orderColumns = `id, code, user_id, project_id, type, items, total, status, priority, progress, notes,
	created_at, updated_at, completed_at`

// OrderRepo pedidos sobre PostgreSQL (usable con pool o tx). Las líneas se guardan como JSONB.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o         entity.Order
		projectID *string
		items     []byte
	)
	err := row.Scan(&o.ID, &o.Code, &o.UserID, &projectID, &o.Type, &items, &o.Total, &o.Status, &o.Priority,
		&o.Progress, &o.Notes, &o.CreatedAt, &o.UpdatedAt, &o.CompletedAt)
	if err != nil {
		return nil, err
	}
	o.ProjectID = derefString(projectID)
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	return &o, nil
}

func (r *OrderRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	list := []*entity.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Create persiste un pedido. Código repetido devuelve ErrDuplicate.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("encode order items: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		o.ID, o.Code, o.UserID, nullIfEmpty(o.ProjectID), o.Type, items, o.Total, o.Status, o.Priority,
		o.Progress, o.Notes, o.CreatedAt, o.UpdatedAt, o.CompletedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetForUpdate obtiene el pedido y bloquea la fila (SELECT FOR UPDATE).
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

// List pedidos filtrados, del más reciente al más antiguo.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	var w whereBuilder
	if f.UserID != "" {
		w.add("user_id = $%d", f.UserID)
	}
	if f.ProjectID != "" {
		w.add("project_id = $%d", f.ProjectID)
	}
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}
	if f.From != nil {
		w.add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("created_at < $%d", *f.To)
	}
	query := `SELECT ` + orderColumns + ` FROM orders` + w.sql() + ` ORDER BY created_at DESC, id`
	query += w.limitOffset(f.Limit, f.Offset)
	return r.list(ctx, query, w.args...)
}

// Update guarda estado, prioridad, progreso, notas y fechas.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE orders SET status = $2, priority = $3, progress = $4, notes = $5, updated_at = $6, completed_at = $7
		WHERE id = $1`,
		o.ID, o.Status, o.Priority, o.Progress, o.Notes, o.UpdatedAt, o.CompletedAt)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListCompletedWithoutAct pedidos Completado sin acta de conformidad.
func (r *OrderRepo) ListCompletedWithoutAct(ctx context.Context) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders o
		WHERE o.status = $1
		  AND NOT EXISTS (SELECT 1 FROM conformity_acts a WHERE a.order_id = o.id)
		ORDER BY o.created_at DESC, o.id`
	return r.list(ctx, query, entity.OrderStatusCompleted)
}

// ActRepo actas de conformidad sobre PostgreSQL.
type ActRepo struct {
	q Querier
}

// NewActRepository construye el adaptador.
func NewActRepository(q Querier) *ActRepo {
	return &ActRepo{q: q}
}

// Create persiste un acta; un segundo acta para el mismo pedido devuelve ErrDuplicate.
func (r *ActRepo) Create(ctx context.Context, a *entity.ConformityAct) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO conformity_acts (id, code, order_id, issued_by, received_by, observations, satisfactory, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.Code, a.OrderID, a.IssuedBy, a.ReceivedBy, a.Observations, a.Satisfactory, a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert conformity act: %w", err)
	}
	return nil
}

// GetByOrderID obtiene el acta de un pedido.
func (r *ActRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.ConformityAct, error) {
	var a entity.ConformityAct
	err := r.q.QueryRow(ctx, `
		SELECT id, code, order_id, issued_by, received_by, observations, satisfactory, created_at
		FROM conformity_acts WHERE order_id = $1`, orderID).
		Scan(&a.ID, &a.Code, &a.OrderID, &a.IssuedBy, &a.ReceivedBy, &a.Observations, &a.Satisfactory, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conformity act: %w", err)
	}
	return &a, nil
}
