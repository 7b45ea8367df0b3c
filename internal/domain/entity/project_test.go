package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/sipp-api/internal/domain/entity"
)

func TestProject_SpentPercentage(t *testing.T) {
	cases := []struct {
		name          string
		budget, spent string
		want          int
	}{
		{"mitad", "10000", "5000", 50},
		{"redondea hacia arriba", "3", "2", 67},
		{"redondea hacia abajo", "3", "1", 33},
		{"half-up", "8", "1", 13},
		{"sobregasto", "1000", "1500", 150},
		{"presupuesto cero", "0", "200", 0},
		{"sin gasto", "25000", "0", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := entity.Project{
				Budget:      decimal.RequireFromString(tc.budget),
				BudgetSpent: decimal.RequireFromString(tc.spent),
			}
			assert.Equal(t, tc.want, p.SpentPercentage())
		})
	}
}

func TestProject_Available(t *testing.T) {
	p := entity.Project{Budget: decimal.NewFromInt(12000), BudgetSpent: decimal.RequireFromString("2500.50")}
	assert.True(t, decimal.RequireFromString("9499.50").Equal(p.Available()))
}
