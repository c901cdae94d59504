package storeHandler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	usecase "mihrab/internal/application/usecase"
	cartdom "mihrab/internal/domain/cart"
)

// CartHandler serves the server side cart.
//
//	GET    /store/cart           current cart (empty cart if absent)
//	DELETE /store/cart           clear
//	POST   /store/cart/items     add (merges into an existing line)
//	PUT    /store/cart/items     set qty (<= 0 removes the line)
//	DELETE /store/cart/items     remove a line
//
// The session id comes from ?sessionId=, the X-Session-Id header, or the
// body, in that order.
type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) http.Handler {
	return &CartHandler{uc: uc}
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := strings.TrimRight(r.URL.Path, "/")

	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "cart handler is not configured")
		return
	}

	isItems := strings.HasSuffix(path, "/cart/items")

	switch {
	case r.Method == http.MethodGet && !isItems:
		h.handleGet(w, r, start)
	case r.Method == http.MethodDelete && !isItems:
		h.handleClear(w, r, start)
	case r.Method == http.MethodPost && isItems:
		h.handleAddItem(w, r, start)
	case r.Method == http.MethodPut && isItems:
		h.handleSetItemQty(w, r, start)
	case r.Method == http.MethodDelete && isItems:
		h.handleRemoveItem(w, r, start)
	default:
		log.Printf("[store_cart_handler] exit status=404 method=%s path=%q", r.Method, path)
		notFound(w)
	}
}

func (h *CartHandler) handleGet(w http.ResponseWriter, r *http.Request, start time.Time) {
	sid := readSessionID(r, "")
	if sid == "" {
		badRequest(w, "sessionId is required")
		return
	}

	c, err := h.uc.Get(r.Context(), sid)
	if err != nil {
		if errors.Is(err, usecase.ErrCartNotFound) {
			// stable UX: an absent cart reads as an empty one
			writeJSON(w, http.StatusOK, emptyCartDTO(sid))
			return
		}
		h.writeCartErr(w, sid, err)
		return
	}

	log.Printf("[store_cart_handler] GET ok sessionId=%q items=%d elapsed=%s", sid, len(c.Items), time.Since(start))
	writeJSON(w, http.StatusOK, toCartDTO(c))
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request, start time.Time) {
	var req cartItemReq
	if err := readJSON(r, &req); err != nil {
		log.Printf("[store_cart_handler] POST add-item exit status=400 reason=invalid json err=%v", err)
		badRequest(w, "invalid json body")
		return
	}

	sid := readSessionID(r, req.SessionID)
	if sid == "" || strings.TrimSpace(req.ProductID) == "" || req.Qty <= 0 {
		badRequest(w, "sessionId, productId, qty(>=1) are required")
		return
	}

	c, err := h.uc.AddItem(r.Context(), sid, cartdom.LineItem{
		ProductID: strings.TrimSpace(req.ProductID),
		Name:      strings.TrimSpace(req.Name),
		Image:     strings.TrimSpace(req.Image),
		Slug:      strings.TrimSpace(req.Slug),
		Price:     req.Price,
		Size:      strings.TrimSpace(req.Size),
		Color:     strings.TrimSpace(req.Color),
		Sleeve:    strings.TrimSpace(req.Sleeve),
		Qty:       req.Qty,
	})
	if err != nil {
		h.writeCartErr(w, sid, err)
		return
	}

	log.Printf("[store_cart_handler] POST add-item ok sessionId=%q productId=%q qty=%d elapsed=%s", sid, req.ProductID, req.Qty, time.Since(start))
	writeJSON(w, http.StatusOK, toCartDTO(c))
}

func (h *CartHandler) handleSetItemQty(w http.ResponseWriter, r *http.Request, start time.Time) {
	var req cartLineReq
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	sid := readSessionID(r, req.SessionID)
	lineID := strings.TrimSpace(req.LineID)
	if sid == "" || lineID == "" {
		badRequest(w, "sessionId and lineId are required")
		return
	}

	c, err := h.uc.SetItemQty(r.Context(), sid, lineID, req.Qty)
	if err != nil {
		h.writeCartErr(w, sid, err)
		return
	}

	log.Printf("[store_cart_handler] PUT set-qty ok sessionId=%q lineId=%q qty=%d elapsed=%s", sid, lineID, req.Qty, time.Since(start))
	writeJSON(w, http.StatusOK, toCartDTO(c))
}

func (h *CartHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request, start time.Time) {
	var req cartLineReq
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	sid := readSessionID(r, req.SessionID)
	lineID := strings.TrimSpace(req.LineID)
	if sid == "" || lineID == "" {
		badRequest(w, "sessionId and lineId are required")
		return
	}

	c, err := h.uc.RemoveItem(r.Context(), sid, lineID)
	if err != nil {
		h.writeCartErr(w, sid, err)
		return
	}

	log.Printf("[store_cart_handler] DELETE remove-item ok sessionId=%q lineId=%q elapsed=%s", sid, lineID, time.Since(start))
	writeJSON(w, http.StatusOK, toCartDTO(c))
}

func (h *CartHandler) handleClear(w http.ResponseWriter, r *http.Request, start time.Time) {
	sid := readSessionID(r, "")
	if sid == "" {
		badRequest(w, "sessionId is required")
		return
	}

	if err := h.uc.Clear(r.Context(), sid); err != nil {
		h.writeCartErr(w, sid, err)
		return
	}

	log.Printf("[store_cart_handler] DELETE clear ok sessionId=%q elapsed=%s", sid, time.Since(start))
	writeJSON(w, http.StatusOK, emptyCartDTO(sid))
}

func (h *CartHandler) writeCartErr(w http.ResponseWriter, sid string, err error) {
	log.Printf("[store_cart_handler] uc error sessionId=%q err=%v", sid, err)
	switch {
	case errors.Is(err, usecase.ErrCartInvalidArgument), errors.Is(err, cartdom.ErrInvalidCart):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrCartNotFound):
		notFound(w)
	default:
		writeErr(w, http.StatusInternalServerError, "cart operation failed")
	}
}

// -------------------------
// request / response DTO
// -------------------------

type cartItemReq struct {
	SessionID string `json:"sessionId"`
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Slug      string `json:"slug"`
	Price     int    `json:"price"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Sleeve    string `json:"sleeve"`
	Qty       int    `json:"qty"`
}

type cartLineReq struct {
	SessionID string `json:"sessionId"`
	LineID    string `json:"lineId"`
	Qty       int    `json:"qty"`
}

type cartDTO struct {
	SessionID string             `json:"sessionId"`
	Items     []cartdom.LineItem `json:"items"`
	Subtotal  int                `json:"subtotal"`
	Count     int                `json:"count"`
	UpdatedAt string             `json:"updatedAt,omitempty"`
}

func toCartDTO(c *cartdom.Cart) cartDTO {
	if c == nil {
		return cartDTO{Items: []cartdom.LineItem{}}
	}
	dto := cartDTO{
		SessionID: c.ID,
		Items:     c.Items,
		Subtotal:  cartdom.Subtotal(c.Items),
		Count:     cartdom.Count(c.Items),
	}
	if dto.Items == nil {
		dto.Items = []cartdom.LineItem{}
	}
	if !c.UpdatedAt.IsZero() {
		dto.UpdatedAt = c.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func emptyCartDTO(sid string) cartDTO {
	return cartDTO{SessionID: sid, Items: []cartdom.LineItem{}}
}
