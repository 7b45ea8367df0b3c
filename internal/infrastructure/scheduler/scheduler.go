// Package scheduler ejecuta las tareas periódicas de SiPP sobre robfig/cron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/sipp-api/pkg/logger"
)

// MonthlyReportJob genera el informe del mes anterior (reporting.ReportUseCase).
type MonthlyReportJob interface {
	GeneratePreviousMonth(ctx context.Context) error
}

// Scheduler envuelve un cron con zona UTC y registro de cada ejecución.
type Scheduler struct {
	cron    *cron.Cron
	log     *logger.Logger
	timeout time.Duration
}

// New crea el scheduler; timeout acota cada ejecución.
func New(log *logger.Logger, timeout time.Duration) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	log = log.Component("scheduler")
	cl := cronLogger{log: log}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl)),
		),
		log:     log,
		timeout: timeout,
	}
}

// cronLogger adapta cron.Logger al logger de la aplicación. Los pánicos recuperados llegan
// por Error con la traza en keysAndValues.
type cronLogger struct {
	log *logger.Logger
}

var _ cron.Logger = cronLogger{}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}

// AddMonthlyReport programa job con la expresión cron estándar de 5 campos (ej. "0 6 1 * *").
func (s *Scheduler) AddMonthlyReport(spec string, job MonthlyReportJob) error {
	return s.add("monthly_report", spec, job.GeneratePreviousMonth)
}

func (s *Scheduler) add(name, spec string, fn func(ctx context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() { s.run(name, fn) })
	if err != nil {
		return fmt.Errorf("scheduler: expresión %q para %s: %w", spec, name, err)
	}
	s.log.Info().Str("job", name).Str("spec", spec).Msg("tarea programada")
	return nil
}

func (s *Scheduler) run(name string, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := fn(ctx); err != nil {
		s.log.Error().Err(err).Str("job", name).Msg("tarea fallida")
		return
	}
	s.log.Info().Str("job", name).Dur("elapsed", time.Since(start)).Msg("tarea completada")
}

// Start arranca el cron en segundo plano.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop detiene el cron y espera a que terminen las tareas en curso o a que ctx expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
