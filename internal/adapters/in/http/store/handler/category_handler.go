package storeHandler

import (
	"log"
	"net/http"

	categorydom "mihrab/internal/domain/category"
)

// CategoryHandler serves the storefront navigation list.
//
//	GET /store/categories
type CategoryHandler struct {
	repo categorydom.Repository
}

func NewCategoryHandler(repo categorydom.Repository) http.Handler {
	return &CategoryHandler{repo: repo}
}

func (h *CategoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	if h.repo == nil {
		writeErr(w, http.StatusInternalServerError, "category handler is not configured")
		return
	}

	cats, err := h.repo.List(r.Context())
	if err != nil {
		log.Printf("[store_category_handler] list error err=%v", err)
		writeErr(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	if cats == nil {
		cats = []categorydom.Category{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": cats, "total": len(cats)})
}
