package consoleHandler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	usecase "mihrab/internal/application/usecase"
	categorydom "mihrab/internal/domain/category"
)

// CategoryHandler is the back-office category CRUD.
//
//	GET    /console/categories
//	POST   /console/categories
//	GET    /console/categories/{id}
//	PATCH  /console/categories/{id}
//	DELETE /console/categories/{id}
type CategoryHandler struct {
	uc *usecase.CategoryAdminUsecase
}

func NewCategoryHandler(uc *usecase.CategoryAdminUsecase) http.Handler {
	return &CategoryHandler{uc: uc}
}

func (h *CategoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "category handler is not configured")
		return
	}

	id := pathID(r.URL.Path, "/console/categories")

	switch {
	case r.Method == http.MethodGet && id == "":
		h.handleList(w, r)
	case r.Method == http.MethodPost && id == "":
		h.handleCreate(w, r)
	case r.Method == http.MethodGet:
		h.handleGet(w, r, id)
	case r.Method == http.MethodPatch:
		h.handleUpdate(w, r, id)
	case r.Method == http.MethodDelete:
		h.handleDelete(w, r, id)
	default:
		methodNotAllowed(w)
	}
}

func (h *CategoryHandler) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.List(r.Context())
	if err != nil {
		log.Printf("[console_category_handler] list error err=%v", err)
		writeErr(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	if items == nil {
		items = []categorydom.Category{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

type categoryCreateReq struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

func (h *CategoryHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryCreateReq
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	c, err := h.uc.Create(r.Context(), strings.TrimSpace(req.Slug), strings.TrimSpace(req.Name))
	if err != nil {
		h.writeCategoryErr(w, err)
		return
	}

	log.Printf("[console_category_handler] create ok id=%s slug=%q", c.ID, c.Slug)
	writeJSON(w, http.StatusCreated, c)
}

func (h *CategoryHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.uc.Get(r.Context(), id)
	if err != nil {
		h.writeCategoryErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type categoryPatchReq struct {
	Slug         *string `json:"slug"`
	Name         *string `json:"name"`
	Image        *string `json:"image"`
	DisplayOrder *int    `json:"displayOrder"`
}

func (h *CategoryHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var req categoryPatchReq
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	c, err := h.uc.Update(r.Context(), id, categorydom.Patch{
		Slug:         req.Slug,
		Name:         req.Name,
		Image:        req.Image,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		h.writeCategoryErr(w, err)
		return
	}

	log.Printf("[console_category_handler] update ok id=%s", id)
	writeJSON(w, http.StatusOK, c)
}

func (h *CategoryHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.uc.Delete(r.Context(), id); err != nil {
		h.writeCategoryErr(w, err)
		return
	}
	log.Printf("[console_category_handler] delete ok id=%s", id)
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": "deleted"})
}

func (h *CategoryHandler) writeCategoryErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, categorydom.ErrNotFound):
		notFound(w)
	case errors.Is(err, categorydom.ErrInvalid), errors.Is(err, usecase.ErrCategoryInvalidArgument):
		badRequest(w, err.Error())
	default:
		log.Printf("[console_category_handler] error err=%v", err)
		writeErr(w, http.StatusInternalServerError, "category operation failed")
	}
}
