package postgres

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsEmbebidas(t *testing.T) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "migrations/001_init.sql", names[0])

	sql, err := migrationsFS.ReadFile(names[0])
	require.NoError(t, err)
	for _, table := range []string{"products", "stock_levels", "orders", "order_items", "investments", "audit_logs"} {
		assert.Contains(t, string(sql), "CREATE TABLE IF NOT EXISTS "+table+" ")
	}
	assert.Equal(t, 2, strings.Count(string(sql), "ON DELETE CASCADE"))
}

func TestErroresPg(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(errors.New("otro")))
	assert.True(t, isCheckViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, isCheckViolation(&pgconn.PgError{Code: "23505"}))
}

func TestHelpersDeNulos(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	require.NotNil(t, nullIfEmpty("x"))
	assert.Equal(t, "x", *nullIfEmpty("x"))
	assert.Equal(t, []string{}, nonNil(nil))
}
