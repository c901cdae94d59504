package storeHandler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	usecase "mihrab/internal/application/usecase"
	orderdom "mihrab/internal/domain/order"
)

// CheckoutHandler submits the session cart as an order.
//
//	POST /store/checkout
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) http.Handler {
	return &CheckoutHandler{uc: uc}
}

type checkoutReq struct {
	SessionID string                    `json:"sessionId"`
	Email     string                    `json:"email"`
	Shipping  orderdom.ShippingSnapshot `json:"shipping"`
}

func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "checkout handler is not configured")
		return
	}

	var req checkoutReq
	if err := readJSON(r, &req); err != nil {
		log.Printf("[store_checkout_handler] exit status=400 reason=invalid json err=%v", err)
		badRequest(w, "invalid json body")
		return
	}

	sid := readSessionID(r, req.SessionID)
	if sid == "" {
		badRequest(w, "sessionId is required")
		return
	}

	o, err := h.uc.Submit(r.Context(), usecase.CheckoutInput{
		SessionID: sid,
		Email:     strings.TrimSpace(req.Email),
		Shipping:  req.Shipping,
	})
	if err != nil {
		log.Printf("[store_checkout_handler] submit error sessionId=%q err=%v", sid, err)
		switch {
		case errors.Is(err, usecase.ErrCheckoutEmptyCart):
			writeErr(w, http.StatusConflict, "cart is empty")
		case errors.Is(err, usecase.ErrCheckoutInvalidArgument),
			errors.Is(err, orderdom.ErrInvalidEmail),
			errors.Is(err, orderdom.ErrInvalidShipping),
			errors.Is(err, orderdom.ErrInvalidItems):
			badRequest(w, err.Error())
		default:
			writeErr(w, http.StatusInternalServerError, "checkout failed")
		}
		return
	}

	log.Printf("[store_checkout_handler] submit ok sessionId=%q orderId=%s subtotal=%d elapsed=%s", sid, o.ID, o.Subtotal, time.Since(start))
	writeJSON(w, http.StatusCreated, o)
}
