package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_DollarPlaceholders(t *testing.T) {
	query, args, err := Select("id").
		From("appointments").
		Where(squirrel.Eq{"service_type": "MEASUREMENT"}).
		Where(squirrel.NotEq{"status": "CANCELLED"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM appointments WHERE service_type = $1 AND status <> $2", query)
	assert.Equal(t, []interface{}{"MEASUREMENT", "CANCELLED"}, args)
}

func TestDelete(t *testing.T) {
	query, _, err := Delete("blocked_dates").Where(squirrel.Eq{"day": "2026-12-25"}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM blocked_dates WHERE day = $1", query)
}
