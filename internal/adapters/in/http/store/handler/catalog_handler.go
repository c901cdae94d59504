package storeHandler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"mihrab/internal/application/catalog"
	storeQuery "mihrab/internal/application/query/store"
)

// CatalogHandler serves the storefront listing.
//
//	GET /store/catalog?category=&sizes=&colors=&sleeves=&priceMin=&priceMax=&sort=
//
// Facet params are comma separated sets. priceMin/priceMax default to the
// full range, which disables the price predicate.
type CatalogHandler struct {
	q *storeQuery.CatalogQuery
}

func NewCatalogHandler(q *storeQuery.CatalogQuery) http.Handler {
	return &CatalogHandler{q: q}
}

func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	if h.q == nil {
		writeErr(w, http.StatusInternalServerError, "catalog handler is not configured")
		return
	}

	qp := r.URL.Query()
	scope := strings.TrimSpace(qp.Get("category"))

	full := catalog.FullPriceRange()
	f := catalog.NewFilterState()
	f.Categories = parseCSV(qp.Get("categories"))
	f.Sizes = parseCSV(qp.Get("sizes"))
	f.Colors = parseCSV(qp.Get("colors"))
	f.Sleeves = parseCSV(qp.Get("sleeves"))
	f.Price.Min = parseIntDefault(qp.Get("priceMin"), full.Min)
	f.Price.Max = parseIntDefault(qp.Get("priceMax"), full.Max)

	sortBy := catalog.ParseSortOption(qp.Get("sort"))

	out, err := h.q.List(r.Context(), scope, f, sortBy)
	if err != nil {
		log.Printf("[store_catalog_handler] list error scope=%q err=%v", scope, err)
		writeErr(w, http.StatusInternalServerError, "failed to load catalog")
		return
	}

	log.Printf("[store_catalog_handler] list ok scope=%q sort=%s total=%d elapsed=%s", scope, sortBy, out.Total, time.Since(start))
	writeJSON(w, http.StatusOK, out)
}
