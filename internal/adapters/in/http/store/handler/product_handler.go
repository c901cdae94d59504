package storeHandler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	storeQuery "mihrab/internal/application/query/store"
)

// ProductHandler serves the product page view.
//
//	GET /store/products/{slug}
type ProductHandler struct {
	q *storeQuery.CatalogQuery
}

func NewProductHandler(q *storeQuery.CatalogQuery) http.Handler {
	return &ProductHandler{q: q}
}

func (h *ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	if h.q == nil {
		writeErr(w, http.StatusInternalServerError, "product handler is not configured")
		return
	}

	slug := strings.Trim(strings.TrimPrefix(r.URL.Path, "/store/products"), "/")
	if slug == "" || strings.Contains(slug, "/") {
		badRequest(w, "slug is required")
		return
	}

	out, err := h.q.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, storeQuery.ErrNotFound) {
			notFound(w)
			return
		}
		log.Printf("[store_product_handler] getBySlug error slug=%q err=%v", slug, err)
		writeErr(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	writeJSON(w, http.StatusOK, out)
}
