// Package reporting genera los documentos de SiPP: informe de pedidos (PDF y hoja de cálculo),
// actas de conformidad y el informe mensual programado.
package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sipp-api/internal/application/dto"
	"github.com/jhoicas/sipp-api/internal/application/ordering"
	"github.com/jhoicas/sipp-api/internal/domain"
	"github.com/jhoicas/sipp-api/internal/domain/budget"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/jhoicas/sipp-api/internal/domain/repository"
	"github.com/jhoicas/sipp-api/pkg/logger"
	"github.com/shopspring/decimal"
)

const dateFormat = "02/01/2006"

// Repositories puertos de persistencia que usa el caso de uso.
type Repositories struct {
	Orders   repository.OrderRepository
	Projects repository.ProjectRepository
	Users    repository.UserRepository
	Acts     repository.ConformityActRepository
	Reports  repository.ReportRepository
}

// ReportUseCase casos de uso de documentos.
type ReportUseCase struct {
	repos       Repositories
	renderer    DocumentRenderer
	exporter    SpreadsheetExporter
	events      EventRecorder
	log         *logger.Logger
	institution string
	now         func() time.Time
}

// NewReportUseCase construye el caso de uso. events y log pueden ser nil.
func NewReportUseCase(
	repos Repositories,
	renderer DocumentRenderer,
	exporter SpreadsheetExporter,
	events EventRecorder,
	log *logger.Logger,
	institution string,
) *ReportUseCase {
	if events == nil {
		events = noopRecorder{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ReportUseCase{
		repos:       repos,
		renderer:    renderer,
		exporter:    exporter,
		events:      events,
		log:         log.Component("reporting"),
		institution: institution,
		now:         time.Now,
	}
}

// OrdersQuery filtros del informe de pedidos. From y To son días inclusive.
type OrdersQuery struct {
	From      *time.Time
	To        *time.Time
	ProjectID string
	Status    string
}

func (q OrdersQuery) filter(actor dto.Actor) (repository.OrderFilter, error) {
	if q.Status != "" && !entity.ValidOrderStatus(q.Status) {
		return repository.OrderFilter{}, fmt.Errorf("estado %q: %w", q.Status, domain.ErrInvalidInput)
	}
	if q.From != nil && q.To != nil && q.To.Before(*q.From) {
		return repository.OrderFilter{}, fmt.Errorf("rango de fechas invertido: %w", domain.ErrInvalidInput)
	}
	f := repository.OrderFilter{ProjectID: q.ProjectID, Status: q.Status, From: q.From}
	if q.To != nil {
		end := q.To.AddDate(0, 0, 1)
		f.To = &end
	}
	if !actor.IsStaff() {
		f.UserID = actor.UserID
	}
	return f, nil
}

func (q OrdersQuery) period() string {
	switch {
	case q.From != nil && q.To != nil:
		return q.From.Format(dateFormat) + " al " + q.To.Format(dateFormat)
	case q.From != nil:
		return "Desde " + q.From.Format(dateFormat)
	case q.To != nil:
		return "Hasta " + q.To.Format(dateFormat)
	}
	return "Todos los pedidos"
}

// OrdersPDF genera el informe de pedidos. Sin pedidos devuelve un documento con el aviso de
// informe vacío, nunca un error.
func (uc *ReportUseCase) OrdersPDF(ctx context.Context, actor dto.Actor, q OrdersQuery) (*File, error) {
	f, err := q.filter(actor)
	if err != nil {
		return nil, err
	}
	orders, err := uc.repos.Orders.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("informe: listar pedidos: %w", err)
	}
	now := uc.now()
	report, err := uc.buildOrdersReport(ctx, "Informe de pedidos", q.period(), orders, now)
	if err != nil {
		return nil, err
	}
	report.Filters = uc.describeFilters(ctx, q)

	content, fallback, err := uc.renderPDF(KindOrdersReport, report.Title, "", report.Total, func() ([]byte, error) {
		return uc.renderer.RenderOrdersReport(ctx, report)
	})
	if err != nil {
		return nil, err
	}
	return &File{
		Filename:    fmt.Sprintf("informe_pedidos_%s.pdf", now.Format("20060102150405")),
		ContentType: ContentTypePDF,
		Content:     content,
		Empty:       report.Empty(),
		Fallback:    fallback,
	}, nil
}

// OrdersSheet exporta los mismos pedidos que OrdersPDF a .xlsx.
func (uc *ReportUseCase) OrdersSheet(ctx context.Context, actor dto.Actor, q OrdersQuery) (*File, error) {
	f, err := q.filter(actor)
	if err != nil {
		return nil, err
	}
	orders, err := uc.repos.Orders.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("hoja: listar pedidos: %w", err)
	}
	rows, err := uc.orderRows(ctx, orders)
	if err != nil {
		return nil, err
	}
	content, err := uc.exporter.ExportOrders(rows)
	if err != nil {
		return nil, fmt.Errorf("hoja: exportar: %w", err)
	}
	uc.events.DocumentGenerated(KindOrdersSheet)
	return &File{
		Filename:    fmt.Sprintf("informe_pedidos_%s.xlsx", uc.now().Format("20060102150405")),
		ContentType: ContentTypeXLSX,
		Content:     content,
		Empty:       len(rows) == 0,
	}, nil
}

// CreateConformityAct emite el acta de un pedido Completado (una por pedido) y devuelve su PDF.
func (uc *ReportUseCase) CreateConformityAct(ctx context.Context, actor dto.Actor, orderID string, in dto.CreateConformityActRequest) (*File, error) {
	// ── 1. Pedido y permisos ─────────────────────────────────────────────────
	order, err := uc.loadOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OrderStatusCompleted {
		return nil, fmt.Errorf("el pedido %s está %s; solo se emiten actas de pedidos completados: %w", order.Code, order.Status, domain.ErrConflict)
	}

	// ── 2. Un acta por pedido ────────────────────────────────────────────────
	existing, err := uc.repos.Acts.GetByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("el pedido %s ya tiene acta %s: %w", order.Code, existing.Code, domain.ErrDuplicate)
	}

	// ── 3. Persistir metadata ────────────────────────────────────────────────
	now := uc.now()
	satisfactory := true
	if in.Satisfactory != nil {
		satisfactory = *in.Satisfactory
	}
	act := &entity.ConformityAct{
		ID:           uuid.New().String(),
		Code:         entity.DocumentCode(entity.ActCodePrefix, now, strings.ReplaceAll(uuid.New().String(), "-", "")),
		OrderID:      order.ID,
		IssuedBy:     actor.UserID,
		ReceivedBy:   strings.TrimSpace(in.ReceivedBy),
		Observations: in.Observations,
		Satisfactory: satisfactory,
		CreatedAt:    now,
	}
	if err := uc.repos.Acts.Create(ctx, act); err != nil {
		return nil, fmt.Errorf("acta: guardar: %w", err)
	}

	// ── 4. Generar PDF ───────────────────────────────────────────────────────
	return uc.renderAct(ctx, order, act)
}

// ConformityActPDF regenera el PDF del acta ya emitida a partir del pedido.
func (uc *ReportUseCase) ConformityActPDF(ctx context.Context, actor dto.Actor, orderID string) (*File, error) {
	order, err := uc.loadOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	act, err := uc.repos.Acts.GetByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if act == nil {
		return nil, fmt.Errorf("el pedido %s no tiene acta: %w", order.Code, domain.ErrNotFound)
	}
	return uc.renderAct(ctx, order, act)
}

func (uc *ReportUseCase) renderAct(ctx context.Context, order *entity.Order, act *entity.ConformityAct) (*File, error) {
	rows, err := uc.orderRows(ctx, []*entity.Order{order})
	if err != nil {
		return nil, err
	}
	doc := ActDocument{
		Institution:  uc.institution,
		Code:         act.Code,
		IssuedAt:     act.CreatedAt,
		Order:        rows[0],
		Items:        order.Items,
		IssuedBy:     uc.userName(ctx, act.IssuedBy),
		ReceivedBy:   act.ReceivedBy,
		Observations: act.Observations,
		Satisfactory: act.Satisfactory,
	}
	if order.HasProject() {
		if p, err := uc.repos.Projects.GetByID(ctx, order.ProjectID); err == nil && p != nil {
			doc.CostCenter = p.CostCenter
		}
	}
	content, fallback, err := uc.renderPDF(KindConformityAct, "Acta de conformidad", act.Code, order.Total, func() ([]byte, error) {
		return uc.renderer.RenderConformityAct(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	return &File{
		Filename:    fmt.Sprintf("acta_%s.pdf", act.Code),
		ContentType: ContentTypePDF,
		Content:     content,
		Fallback:    fallback,
	}, nil
}

// PendingConformity pedidos completados que aún no tienen acta. Un usuario solo ve los suyos.
func (uc *ReportUseCase) PendingConformity(ctx context.Context, actor dto.Actor) ([]dto.OrderResponse, error) {
	orders, err := uc.repos.Orders.ListCompletedWithoutAct(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		if !actor.IsStaff() && o.UserID != actor.UserID {
			continue
		}
		out = append(out, *ordering.ToOrderResponse(o))
	}
	return out, nil
}

// GenerateMonthly genera y guarda el informe del mes que contiene month. Si el periodo ya tiene
// informe lo devuelve sin regenerarlo (created=false).
func (uc *ReportUseCase) GenerateMonthly(ctx context.Context, month time.Time) (report *entity.Report, created bool, err error) {
	start := budget.MonthStart(month)
	end := start.AddDate(0, 1, 0)

	existing, err := uc.repos.Reports.GetByPeriod(ctx, entity.ReportKindMonthly, start)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	orders, err := uc.repos.Orders.List(ctx, repository.OrderFilter{From: &start, To: &end})
	if err != nil {
		return nil, false, fmt.Errorf("informe mensual: listar pedidos: %w", err)
	}
	now := uc.now()
	data, err := uc.buildOrdersReport(ctx, "Informe mensual de pedidos", budget.MonthLabel(start), orders, now)
	if err != nil {
		return nil, false, err
	}
	content, err := uc.renderer.RenderOrdersReport(ctx, data)
	if err != nil {
		return nil, false, fmt.Errorf("informe mensual %s: %w", start.Format("2006-01"), err)
	}
	uc.events.DocumentGenerated(KindMonthly)

	report = &entity.Report{
		ID:          uuid.New().String(),
		Kind:        entity.ReportKindMonthly,
		PeriodStart: start,
		PeriodEnd:   end,
		Filename:    fmt.Sprintf("informe_mensual_%s.pdf", start.Format("2006-01")),
		Content:     content,
		OrderCount:  len(orders),
		CreatedAt:   now,
	}
	if err := uc.repos.Reports.Create(ctx, report); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// otro proceso lo generó entre la consulta y el alta
			existing, gerr := uc.repos.Reports.GetByPeriod(ctx, entity.ReportKindMonthly, start)
			if gerr == nil && existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, fmt.Errorf("informe mensual: guardar: %w", err)
	}
	uc.log.Info().Str("period", start.Format("2006-01")).Int("orders", len(orders)).Msg("informe mensual generado")
	return report, true, nil
}

// GeneratePreviousMonth genera el informe del mes anterior a ahora. Es la tarea del cron.
func (uc *ReportUseCase) GeneratePreviousMonth(ctx context.Context) error {
	prev := budget.MonthStart(uc.now()).AddDate(0, -1, 0)
	_, _, err := uc.GenerateMonthly(ctx, prev)
	return err
}

// ListMonthly informes mensuales guardados, del más reciente al más antiguo.
func (uc *ReportUseCase) ListMonthly(ctx context.Context, page dto.PageRequest) (*dto.ReportListResponse, error) {
	page.DefaultPage()
	list, err := uc.repos.Reports.List(ctx, entity.ReportKindMonthly, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReportResponse, 0, len(list))
	for _, r := range list {
		items = append(items, dto.ReportResponse{
			ID:          r.ID,
			Kind:        r.Kind,
			PeriodStart: r.PeriodStart,
			PeriodEnd:   r.PeriodEnd,
			Filename:    r.Filename,
			OrderCount:  r.OrderCount,
			CreatedAt:   r.CreatedAt,
		})
	}
	return &dto.ReportListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// MonthlyFile descarga un informe mensual guardado.
func (uc *ReportUseCase) MonthlyFile(ctx context.Context, id string) (*File, error) {
	r, err := uc.repos.Reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil || r.Kind != entity.ReportKindMonthly {
		return nil, domain.ErrNotFound
	}
	return &File{Filename: r.Filename, ContentType: ContentTypePDF, Content: r.Content, Empty: r.OrderCount == 0}, nil
}

// renderPDF ejecuta render y, si falla, registra el error y entrega el PDF de emergencia.
func (uc *ReportUseCase) renderPDF(kind, title, code string, total decimal.Decimal, render func() ([]byte, error)) ([]byte, bool, error) {
	content, err := render()
	if err == nil {
		uc.events.DocumentGenerated(kind)
		return content, false, nil
	}
	uc.log.Error().Err(err).Str("kind", kind).Str("code", code).Msg("no se pudo generar el PDF; se entrega el documento de emergencia")

	content, ferr := uc.renderer.RenderEmergency(EmergencyDocument{Title: title, Code: code, Total: total, GeneratedAt: uc.now()})
	if ferr != nil {
		return nil, false, fmt.Errorf("generar %s: %w", kind, errors.Join(err, ferr))
	}
	uc.events.DocumentGenerated(KindEmergency)
	return content, true, nil
}

func (uc *ReportUseCase) loadOrder(ctx context.Context, actor dto.Actor, orderID string) (*entity.Order, error) {
	order, err := uc.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.UserID != actor.UserID && !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (uc *ReportUseCase) buildOrdersReport(ctx context.Context, title, period string, orders []*entity.Order, now time.Time) (OrdersReport, error) {
	rows, err := uc.orderRows(ctx, orders)
	if err != nil {
		return OrdersReport{}, err
	}
	return OrdersReport{
		Title:         title,
		Institution:   uc.institution,
		Period:        period,
		Rows:          rows,
		Total:         budget.OrdersTotal(orders),
		CountByStatus: budget.CountByStatus(orders),
		GeneratedAt:   now,
	}, nil
}

func (uc *ReportUseCase) describeFilters(ctx context.Context, q OrdersQuery) []Field {
	var out []Field
	if q.ProjectID != "" {
		name := q.ProjectID
		if p, err := uc.repos.Projects.GetByID(ctx, q.ProjectID); err == nil && p != nil {
			name = p.Name
		}
		out = append(out, Field{Label: "Proyecto", Value: name})
	}
	if q.Status != "" {
		out = append(out, Field{Label: "Estado", Value: q.Status})
	}
	return out
}

// orderRows resuelve nombre de usuario y de proyecto de cada pedido.
func (uc *ReportUseCase) orderRows(ctx context.Context, orders []*entity.Order) ([]OrderRow, error) {
	users := map[string]string{}
	projects := map[string]string{}
	rows := make([]OrderRow, 0, len(orders))
	for _, o := range orders {
		name, ok := users[o.UserID]
		if !ok {
			name = uc.userName(ctx, o.UserID)
			users[o.UserID] = name
		}
		project := "Sin proyecto"
		if o.HasProject() {
			if project, ok = projects[o.ProjectID]; !ok {
				p, err := uc.repos.Projects.GetByID(ctx, o.ProjectID)
				if err != nil {
					return nil, fmt.Errorf("informe: proyecto %s: %w", o.ProjectID, err)
				}
				project = o.ProjectID
				if p != nil {
					project = p.ProjectNumber + " " + p.Name
				}
				projects[o.ProjectID] = project
			}
		}
		rows = append(rows, OrderRow{
			Code:        o.Code,
			CreatedAt:   o.CreatedAt,
			CompletedAt: o.CompletedAt,
			UserName:    name,
			ProjectName: project,
			Type:        entity.OrderTypeLabel(o.Type),
			Status:      o.Status,
			Priority:    o.Priority,
			Total:       o.Total,
		})
	}
	return rows, nil
}

// userName devuelve el nombre completo o, si el usuario ya no existe, su ID.
func (uc *ReportUseCase) userName(ctx context.Context, id string) string {
	u, err := uc.repos.Users.GetByID(ctx, id)
	if err != nil || u == nil {
		return id
	}
	return u.FullName
}
