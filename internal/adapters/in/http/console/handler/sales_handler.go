package consoleHandler

import (
	"context"
	"log"
	"net/http"
	"strings"

	"mihrab/internal/adapters/out/db"
	common "mihrab/internal/domain/common"
)

// SalesLister abstracts the Postgres ledger for the report endpoint.
type SalesLister interface {
	List(ctx context.Context, filter db.SalesFilter, sort common.Sort, page common.Page) (common.PageResult[db.SalesEntry], error)
}

// SalesHandler serves the sales report from the ledger.
//
//	GET /console/sales?from=&to=&minSubtotal=&sortBy=&order=&page=&perPage=
//
// from/to are RFC3339. The ledger is optional infrastructure; without a
// DATABASE_URL the handler reports 503.
type SalesHandler struct {
	ledger SalesLister
}

func NewSalesHandler(ledger SalesLister) http.Handler {
	return &SalesHandler{ledger: ledger}
}

func (h *SalesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	if h.ledger == nil {
		writeErr(w, http.StatusServiceUnavailable, "sales ledger is not configured")
		return
	}

	qp := r.URL.Query()

	filter := db.SalesFilter{
		Created: common.TimeRange{
			From: parseTimePtr(qp.Get("from")),
			To:   parseTimePtr(qp.Get("to")),
		},
	}
	if v := strings.TrimSpace(qp.Get("minSubtotal")); v != "" {
		min := parseIntDefault(v, 0)
		filter.MinSubtotal = &min
	}

	sort := common.Sort{Column: qp.Get("sortBy"), Order: common.SortOrder(strings.TrimSpace(qp.Get("order")))}
	page := common.Page{
		Number:  parseIntDefault(qp.Get("page"), 1),
		PerPage: parseIntDefault(qp.Get("perPage"), 20),
	}

	res, err := h.ledger.List(r.Context(), filter, sort, page)
	if err != nil {
		log.Printf("[console_sales_handler] list error err=%v", err)
		writeErr(w, http.StatusInternalServerError, "failed to load sales report")
		return
	}
	if res.Items == nil {
		res.Items = []db.SalesEntry{}
	}

	writeJSON(w, http.StatusOK, res)
}
