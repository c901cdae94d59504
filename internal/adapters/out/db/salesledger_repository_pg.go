package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	common "mihrab/internal/domain/common"
	orderdom "mihrab/internal/domain/order"
)

// SalesEntry is one row of the reporting ledger: a flattened order summary.
type SalesEntry struct {
	OrderID    string
	SessionID  string
	Email      string
	ProductIDs []string
	ItemCount  int
	Subtotal   int
	CreatedAt  time.Time
}

// SalesFilter narrows ledger listings.
type SalesFilter struct {
	Created     common.TimeRange
	MinSubtotal *int
}

// SalesLedgerRepositoryPG is the Postgres reporting ledger behind the
// checkout usecase's SalesLedger port and the console sales report.
//
// Schema:
//
//	CREATE TABLE sales_ledger (
//	  order_id    text PRIMARY KEY,
//	  session_id  text NOT NULL,
//	  email       text NOT NULL,
//	  product_ids text[] NOT NULL,
//	  item_count  integer NOT NULL,
//	  subtotal    integer NOT NULL,
//	  created_at  timestamptz NOT NULL
//	);
type SalesLedgerRepositoryPG struct {
	db *sql.DB
}

func NewSalesLedgerRepositoryPG(db *sql.DB) *SalesLedgerRepositoryPG {
	return &SalesLedgerRepositoryPG{db: db}
}

// Append implements usecase.SalesLedger. Re-appending the same order id is a
// no-op (checkout retries must not double-count revenue).
func (r *SalesLedgerRepositoryPG) Append(ctx context.Context, o *orderdom.Order) error {
	if r == nil || r.db == nil {
		return errors.New("salesledger_repository_pg: db is nil")
	}
	if o == nil {
		return errors.New("salesledger_repository_pg: order is nil")
	}

	productIDs := make([]string, 0, len(o.Items))
	itemCount := 0
	for _, it := range o.Items {
		productIDs = append(productIDs, it.ProductID)
		itemCount += it.Qty
	}

	const q = `
INSERT INTO sales_ledger (order_id, session_id, email, product_ids, item_count, subtotal, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (order_id) DO NOTHING
`
	_, err := r.db.ExecContext(ctx, q,
		o.ID, o.SessionID, o.Email, pq.Array(productIDs), itemCount, o.Subtotal, o.CreatedAt,
	)
	return err
}

// List returns ledger entries with filter/sort/paging for the sales report.
func (r *SalesLedgerRepositoryPG) List(ctx context.Context, filter SalesFilter, sort common.Sort, page common.Page) (common.PageResult[SalesEntry], error) {
	if r == nil || r.db == nil {
		return common.PageResult[SalesEntry]{}, errors.New("salesledger_repository_pg: db is nil")
	}

	where, args := buildSalesWhere(filter)
	orderBy := buildSalesOrderBy(sort)

	limit := page.PerPage
	if limit <= 0 {
		limit = 20
	}
	number := page.Number
	if number <= 0 {
		number = 1
	}
	offset := (number - 1) * limit

	q := fmt.Sprintf(`
SELECT order_id, session_id, email, product_ids, item_count, subtotal, created_at
FROM sales_ledger
%s
%s
LIMIT %d OFFSET %d
`, where, orderBy, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return common.PageResult[SalesEntry]{}, err
	}
	defer rows.Close()

	var items []SalesEntry
	for rows.Next() {
		var e SalesEntry
		if err := rows.Scan(&e.OrderID, &e.SessionID, &e.Email, pq.Array(&e.ProductIDs), &e.ItemCount, &e.Subtotal, &e.CreatedAt); err != nil {
			return common.PageResult[SalesEntry]{}, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return common.PageResult[SalesEntry]{}, err
	}

	var total int
	countQ := `SELECT COUNT(*) FROM sales_ledger ` + where
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return common.PageResult[SalesEntry]{}, err
	}

	totalPages := (total + limit - 1) / limit
	return common.PageResult[SalesEntry]{
		Items:      items,
		TotalCount: total,
		TotalPages: totalPages,
		Page:       number,
		PerPage:    limit,
	}, nil
}

// ========== query builders ==========

func buildSalesWhere(filter SalesFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Created.From != nil {
		add("created_at >= $%d", *filter.Created.From)
	}
	if filter.Created.To != nil {
		add("created_at < $%d", *filter.Created.To)
	}
	if filter.MinSubtotal != nil {
		add("subtotal >= $%d", *filter.MinSubtotal)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// buildSalesOrderBy validates sort.Column against the allow-list and falls
// back to created_at desc for anything else.
func buildSalesOrderBy(sort common.Sort) string {
	col := ""
	switch strings.TrimSpace(sort.Column) {
	case "created_at", "createdAt":
		col = "created_at"
	case "subtotal":
		col = "subtotal"
	case "item_count", "itemCount":
		col = "item_count"
	}
	if col == "" {
		return "ORDER BY created_at DESC, order_id DESC"
	}

	dir := "ASC"
	if sort.Order == common.SortDesc {
		dir = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s, order_id DESC", col, dir)
}
