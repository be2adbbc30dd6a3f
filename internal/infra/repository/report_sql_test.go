package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/report"
)

func TestStatusQuery(t *testing.T) {
	query, args, err := statusQuery(report.Range{ShopID: 3, From: "2026-01-01", To: "2026-01-31"}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT status, COUNT(*) AS total, COALESCE(SUM(total_amount), 0) AS amount FROM bookings "+
			"WHERE shop_id = $1 AND date >= $2 AND date <= $3 GROUP BY status ORDER BY status",
		query,
	)
	assert.Equal(t, []any{uint(3), "2026-01-01", "2026-01-31"}, args)
}

func TestTopServicesQuery(t *testing.T) {
	query, args, err := topServicesQuery(report.Range{ShopID: 3, From: "2026-01-01", To: "2026-01-31"}, 5).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "JOIN bookings b ON b.id = bs.booking_id")
	assert.Contains(t, query, "LIMIT 5")
	assert.Len(t, args, 4)
}
