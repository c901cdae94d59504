package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	common "mihrab/internal/domain/common"
)

func TestBuildSalesWhere(t *testing.T) {
	t.Run("empty filter has no WHERE clause", func(t *testing.T) {
		where, args := buildSalesWhere(SalesFilter{})
		assert.Equal(t, "", where)
		assert.Empty(t, args)
	})

	t.Run("full filter numbers placeholders in order", func(t *testing.T) {
		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		min := 5000
		where, args := buildSalesWhere(SalesFilter{
			Created:     common.TimeRange{From: &from, To: &to},
			MinSubtotal: &min,
		})
		assert.Equal(t, "WHERE created_at >= $1 AND created_at < $2 AND subtotal >= $3", where)
		assert.Equal(t, []any{from, to, min}, args)
	})

	t.Run("min subtotal alone starts at $1", func(t *testing.T) {
		min := 100
		where, args := buildSalesWhere(SalesFilter{MinSubtotal: &min})
		assert.Equal(t, "WHERE subtotal >= $1", where)
		assert.Equal(t, []any{min}, args)
	})
}

func TestBuildSalesOrderBy(t *testing.T) {
	t.Run("default is created_at desc", func(t *testing.T) {
		assert.Equal(t, "ORDER BY created_at DESC, order_id DESC", buildSalesOrderBy(common.Sort{}))
	})

	t.Run("unknown column falls back to default", func(t *testing.T) {
		got := buildSalesOrderBy(common.Sort{Column: "email; DROP TABLE sales_ledger", Order: common.SortAsc})
		assert.Equal(t, "ORDER BY created_at DESC, order_id DESC", got)
	})

	t.Run("camelCase aliases map to columns", func(t *testing.T) {
		assert.Equal(t, "ORDER BY item_count ASC, order_id DESC", buildSalesOrderBy(common.Sort{Column: "itemCount", Order: common.SortAsc}))
		assert.Equal(t, "ORDER BY created_at ASC, order_id DESC", buildSalesOrderBy(common.Sort{Column: "createdAt", Order: common.SortAsc}))
	})

	t.Run("desc order", func(t *testing.T) {
		assert.Equal(t, "ORDER BY subtotal DESC, order_id DESC", buildSalesOrderBy(common.Sort{Column: "subtotal", Order: common.SortDesc}))
	})
}
