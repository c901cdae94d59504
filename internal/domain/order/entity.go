package order

import (
	"errors"
	"strings"
	"time"

	cartdom "mihrab/internal/domain/cart"
)

// ========================================
// Snapshot structs (stored in Order)
// ========================================

type ShippingSnapshot struct {
	Name    string `json:"name" firestore:"name"`
	Phone   string `json:"phone" firestore:"phone"`
	City    string `json:"city" firestore:"city"`
	Street  string `json:"street" firestore:"street"`
	Street2 string `json:"street2,omitempty" firestore:"street2"`
	Country string `json:"country" firestore:"country"`
}

// ItemSnapshot is stored inside Order.Items. It is a frozen copy of a cart
// line at checkout time; later product edits never change past orders.
type ItemSnapshot struct {
	LineID    string `json:"lineId" firestore:"lineId"`
	ProductID string `json:"productId" firestore:"productId"`
	Name      string `json:"name" firestore:"name"`
	Slug      string `json:"slug" firestore:"slug"`
	Size      string `json:"size,omitempty" firestore:"size"`
	Color     string `json:"color,omitempty" firestore:"color"`
	Sleeve    string `json:"sleeve,omitempty" firestore:"sleeve"`
	Qty       int    `json:"qty" firestore:"qty"`
	Price     int    `json:"price" firestore:"price"`
}

// ========================================
// Entity
// ========================================

type Order struct {
	ID        string `json:"id" firestore:"id"`
	SessionID string `json:"sessionId" firestore:"sessionId"`
	Email     string `json:"email" firestore:"email"`

	ShippingSnapshot ShippingSnapshot `json:"shipping" firestore:"shipping"`

	Items []ItemSnapshot `json:"items" firestore:"items"`

	// Subtotal is Σ price * qty over Items, minor currency units.
	Subtotal int `json:"subtotal" firestore:"subtotal"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

// ========================================
// Errors
// ========================================

var (
	ErrNotFound         = errors.New("order: not found")
	ErrInvalidID        = errors.New("order: invalid id")
	ErrInvalidSessionID = errors.New("order: invalid sessionId")
	ErrInvalidEmail     = errors.New("order: invalid email")
	ErrInvalidShipping  = errors.New("order: invalid shippingSnapshot")
	ErrInvalidItems     = errors.New("order: invalid items")
)

// New builds an order from a consumed cart snapshot.
// lines must be non-empty; every line must carry a product id and qty >= 1.
func New(id, sessionID, email string, shipping ShippingSnapshot, lines []cartdom.LineItem, now time.Time) (*Order, error) {
	o := &Order{
		ID:               strings.TrimSpace(id),
		SessionID:        strings.TrimSpace(sessionID),
		Email:            strings.TrimSpace(email),
		ShippingSnapshot: shipping,
		Items:            itemsFromLines(lines),
		CreatedAt:        now,
	}
	o.Subtotal = cartdom.Subtotal(lines)
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func itemsFromLines(lines []cartdom.LineItem) []ItemSnapshot {
	out := make([]ItemSnapshot, 0, len(lines))
	for _, l := range lines {
		out = append(out, ItemSnapshot{
			LineID:    l.ID,
			ProductID: l.ProductID,
			Name:      l.Name,
			Slug:      l.Slug,
			Size:      l.Size,
			Color:     l.Color,
			Sleeve:    l.Sleeve,
			Qty:       l.Qty,
			Price:     l.Price,
		})
	}
	return out
}

func (o *Order) Validate() error {
	if o == nil || strings.TrimSpace(o.ID) == "" {
		return ErrInvalidID
	}
	if strings.TrimSpace(o.SessionID) == "" {
		return ErrInvalidSessionID
	}
	if !strings.Contains(o.Email, "@") {
		return ErrInvalidEmail
	}
	s := o.ShippingSnapshot
	if strings.TrimSpace(s.Name) == "" || strings.TrimSpace(s.City) == "" || strings.TrimSpace(s.Street) == "" || strings.TrimSpace(s.Country) == "" {
		return ErrInvalidShipping
	}
	if len(o.Items) == 0 {
		return ErrInvalidItems
	}
	for _, it := range o.Items {
		if strings.TrimSpace(it.ProductID) == "" || it.Qty <= 0 || it.Price < 0 {
			return ErrInvalidItems
		}
	}
	return nil
}
