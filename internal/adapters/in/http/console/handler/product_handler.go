package consoleHandler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	usecase "mihrab/internal/application/usecase"
	productdom "mihrab/internal/domain/product"
)

// ProductHandler is the back-office product CRUD.
//
//	GET    /console/products          list
//	POST   /console/products          create
//	GET    /console/products/{id}     read
//	PATCH  /console/products/{id}     partial update
//	DELETE /console/products/{id}     delete
type ProductHandler struct {
	uc *usecase.ProductAdminUsecase
}

func NewProductHandler(uc *usecase.ProductAdminUsecase) http.Handler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "product handler is not configured")
		return
	}

	id := pathID(r.URL.Path, "/console/products")

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

func (h *ProductHandler) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.List(r.Context())
	if err != nil {
		log.Printf("[console_product_handler] list error err=%v", err)
		writeErr(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	if items == nil {
		items = []productdom.Product{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

type productCreateReq struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Images      []string `json:"images"`

	Price          int `json:"price"`
	CompareAtPrice int `json:"compareAtPrice"`

	Sizes  []string `json:"sizes"`
	Colors []string `json:"colors"`
	Sleeve string   `json:"sleeve"`

	Category string `json:"category"`
	Featured bool   `json:"featured"`
	InStock  bool   `json:"inStock"`
}

func (h *ProductHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req productCreateReq
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	p, err := h.uc.Create(r.Context(), productdom.Product{
		Slug:           strings.TrimSpace(req.Slug),
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		Images:         req.Images,
		Price:          req.Price,
		CompareAtPrice: req.CompareAtPrice,
		Sizes:          req.Sizes,
		Colors:         req.Colors,
		Sleeve:         productdom.Sleeve(strings.TrimSpace(req.Sleeve)),
		Category:       strings.TrimSpace(req.Category),
		Featured:       req.Featured,
		InStock:        req.InStock,
	})
	if err != nil {
		h.writeProductErr(w, err)
		return
	}

	log.Printf("[console_product_handler] create ok id=%s slug=%q", p.ID, p.Slug)
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.uc.Get(r.Context(), id)
	if err != nil {
		h.writeProductErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type productPatchReq struct {
	Slug        *string   `json:"slug"`
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Images      *[]string `json:"images"`

	Price          *int `json:"price"`
	CompareAtPrice *int `json:"compareAtPrice"`

	Sizes  *[]string `json:"sizes"`
	Colors *[]string `json:"colors"`
	Sleeve *string   `json:"sleeve"`

	Category *string `json:"category"`
	Featured *bool   `json:"featured"`
	InStock  *bool   `json:"inStock"`
}

func (h *ProductHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var req productPatchReq
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	patch := productdom.Patch{
		Slug:           req.Slug,
		Name:           req.Name,
		Description:    req.Description,
		Images:         req.Images,
		Price:          req.Price,
		CompareAtPrice: req.CompareAtPrice,
		Sizes:          req.Sizes,
		Colors:         req.Colors,
		Category:       req.Category,
		Featured:       req.Featured,
		InStock:        req.InStock,
	}
	if req.Sleeve != nil {
		s := productdom.Sleeve(strings.TrimSpace(*req.Sleeve))
		patch.Sleeve = &s
	}

	p, err := h.uc.Update(r.Context(), id, patch)
	if err != nil {
		h.writeProductErr(w, err)
		return
	}

	log.Printf("[console_product_handler] update ok id=%s", id)
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.uc.Delete(r.Context(), id); err != nil {
		h.writeProductErr(w, err)
		return
	}
	log.Printf("[console_product_handler] delete ok id=%s", id)
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": "deleted"})
}

func (h *ProductHandler) writeProductErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, productdom.ErrNotFound):
		notFound(w)
	case errors.Is(err, productdom.ErrConflict):
		writeErr(w, http.StatusConflict, err.Error())
	case errors.Is(err, productdom.ErrInvalid), errors.Is(err, usecase.ErrProductInvalidArgument):
		badRequest(w, err.Error())
	default:
		log.Printf("[console_product_handler] error err=%v", err)
		writeErr(w, http.StatusInternalServerError, "product operation failed")
	}
}
