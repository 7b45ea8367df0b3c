package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
}

func TestWhereBuilder(t *testing.T) {
	var w whereBuilder
	assert.Empty(t, w.sql())

	w.add("user_id = $%d", "u1")
	w.add("status = $%d", "Pendiente")
	page := w.limitOffset(20, 40)

	assert.Equal(t, " WHERE user_id = $1 AND status = $2", w.sql())
	assert.Equal(t, " LIMIT $3 OFFSET $4", page)
	assert.Equal(t, []any{"u1", "Pendiente", 20, 40}, w.args)

	var none whereBuilder
	assert.Empty(t, none.limitOffset(0, 10))
	assert.Empty(t, none.args)
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	assert.Equal(t, "prj-1", derefString(nullIfEmpty("prj-1")))
	assert.Equal(t, "", derefString(nil))
}
