package scheduler

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sipp-api/pkg/logger"
)

type jobFunc func(ctx context.Context) error

func (f jobFunc) GeneratePreviousMonth(ctx context.Context) error { return f(ctx) }

func TestAddMonthlyReport_ExpresionInvalida(t *testing.T) {
	s := New(nil, time.Second)
	err := s.AddMonthlyReport("cada mes", jobFunc(func(context.Context) error { return nil }))
	assert.Error(t, err)
}

func TestAddMonthlyReport_ExpresionValida(t *testing.T) {
	s := New(nil, time.Second)
	require.NoError(t, s.AddMonthlyReport("0 6 1 * *", jobFunc(func(context.Context) error { return nil })))
	assert.Len(t, s.cron.Entries(), 1)
}

func TestRun_RegistraErrorYContextoConTimeout(t *testing.T) {
	var buf bytes.Buffer
	s := New(logger.New(logger.Config{Env: "production", Level: "info", Output: &buf}), time.Second)

	var hadDeadline bool
	s.run("monthly_report", func(ctx context.Context) error {
		_, hadDeadline = ctx.Deadline()
		return errors.New("render roto")
	})

	assert.True(t, hadDeadline)
	assert.Contains(t, buf.String(), "tarea fallida")
	assert.Contains(t, buf.String(), "render roto")
}

func TestJob_PanicoQuedaRegistrado(t *testing.T) {
	var buf bytes.Buffer
	s := New(logger.New(logger.Config{Env: "production", Level: "info", Output: &buf}), time.Second)
	require.NoError(t, s.AddMonthlyReport("0 6 1 * *", jobFunc(func(context.Context) error {
		panic("plantilla nula")
	})))

	entries := s.cron.Entries()
	require.Len(t, entries, 1)
	assert.NotPanics(t, entries[0].WrappedJob.Run)

	out := buf.String()
	assert.Contains(t, out, "cron: panic")
	assert.Contains(t, out, "plantilla nula")
	assert.Contains(t, out, `"component":"scheduler"`)
	assert.Contains(t, out, "stack")
}

func TestStartStop(t *testing.T) {
	s := New(nil, time.Second)
	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
