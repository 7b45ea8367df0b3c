// Package metrics expone contadores Prometheus de pedidos y documentos.
package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/sipp-api/internal/application/ordering"
	"github.com/jhoicas/sipp-api/internal/application/reporting"
)

var (
	_ ordering.EventRecorder  = (*Recorder)(nil)
	_ reporting.EventRecorder = (*Recorder)(nil)
)

const namespace = "sipp"

// Recorder registra los eventos de dominio como contadores.
type Recorder struct {
	registry      *prometheus.Registry
	ordersCreated *prometheus.CounterVec
	transitions   *prometheus.CounterVec
	documents     *prometheus.CounterVec
}

// NewRecorder crea los contadores sobre un registro propio (más los collectors de Go y proceso).
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		ordersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Pedidos creados por tipo.",
		}, []string{"type"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_transitions_total",
			Help:      "Cambios de estado de pedidos.",
		}, []string{"from", "to"}),
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_generated_total",
			Help:      "Documentos generados por tipo.",
		}, []string{"kind"}),
	}
	r.registry.MustRegister(
		r.ordersCreated, r.transitions, r.documents,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) OrderCreated(orderType string) {
	r.ordersCreated.WithLabelValues(orderType).Inc()
}

func (r *Recorder) OrderStatusChanged(from, to string) {
	r.transitions.WithLabelValues(from, to).Inc()
}

func (r *Recorder) DocumentGenerated(kind string) {
	r.documents.WithLabelValues(kind).Inc()
}

// Handler expone el registro en formato texto de Prometheus como handler de Fiber.
func (r *Recorder) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
}
