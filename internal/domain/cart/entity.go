package cart

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidCart = errors.New("cart: invalid")
)

// DefaultCartTTL is the inactivity window after which the cart becomes eligible for auto deletion
// (Firestore TTL should be configured on expiresAt).
const DefaultCartTTL = 7 * 24 * time.Hour

// DefaultFacet is the placeholder stored in the line key for an unset facet.
const DefaultFacet = "default"

// LineItem represents "one line item" in a cart.
//
// ID is a deterministic composite key of (productId, size, color, sleeve),
// so adding the same configured product twice merges into one line.
// Name/Image/Slug/Price are a display snapshot captured at add time and are
// NOT re-captured on later merges (they may go stale if the product changes).
// Price is the unit price in minor currency units (cents).
type LineItem struct {
	ID        string `json:"id" firestore:"id"`
	ProductID string `json:"productId" firestore:"productId"`

	Name  string `json:"name" firestore:"name"`
	Image string `json:"image" firestore:"image"`
	Slug  string `json:"slug" firestore:"slug"`
	Price int    `json:"price" firestore:"price"`

	Size   string `json:"size,omitempty" firestore:"size"`
	Color  string `json:"color,omitempty" firestore:"color"`
	Sleeve string `json:"sleeve,omitempty" firestore:"sleeve"`

	Qty int `json:"qty" firestore:"qty"`
}

// LineKey builds the composite line key for (productId, size, color, sleeve).
// Unset facets are replaced with DefaultFacet so the key shape is constant.
func LineKey(productID, size, color, sleeve string) string {
	return strings.Join([]string{
		strings.TrimSpace(productID),
		facetOrDefault(size),
		facetOrDefault(color),
		facetOrDefault(sleeve),
	}, "__")
}

func facetOrDefault(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return DefaultFacet
	}
	return v
}

// ----------------------------
// Pure line transitions
// ----------------------------
//
// These are reducer-style functions over a line list: they never mutate the
// input slice and always return a fresh one, so the session store and the
// Cart aggregate share the same transition logic.

// AddLine merges it into items by composite key.
// Existing line: qty is summed, the display snapshot of the existing line wins.
// New line: appended at the end (ID filled from LineKey).
// Lines with productId missing or qty <= 0 are returned unchanged.
func AddLine(items []LineItem, it LineItem) []LineItem {
	pid := strings.TrimSpace(it.ProductID)
	if pid == "" || it.Qty <= 0 {
		return cloneLines(items)
	}

	it.ProductID = pid
	it.ID = LineKey(pid, it.Size, it.Color, it.Sleeve)

	out := cloneLines(items)
	if idx := findLineIndex(out, it.ID); idx >= 0 {
		out[idx].Qty += it.Qty
		return out
	}
	return append(out, it)
}

// SetLineQty sets qty for the line with the given composite key.
// qty <= 0 removes the line. Unknown id is a no-op (not an error).
func SetLineQty(items []LineItem, id string, qty int) []LineItem {
	out := cloneLines(items)
	idx := findLineIndex(out, strings.TrimSpace(id))
	if idx < 0 {
		return out
	}
	if qty <= 0 {
		return removeIndex(out, idx)
	}
	out[idx].Qty = qty
	return out
}

// RemoveLine removes the line with the given composite key (no-op if absent).
func RemoveLine(items []LineItem, id string) []LineItem {
	return SetLineQty(items, id, 0)
}

// Subtotal is Σ price * qty over items, in minor currency units.
func Subtotal(items []LineItem) int {
	total := 0
	for _, it := range items {
		total += it.Price * it.Qty
	}
	return total
}

// Count is Σ qty over items.
func Count(items []LineItem) int {
	n := 0
	for _, it := range items {
		n += it.Qty
	}
	return n
}

// ----------------------------
// Aggregate (server-side cart document)
// ----------------------------

// Cart represents "a cart document".
//   - docId = sessionId (Firestore)
//   - Items: ordered list of line items, at most one per composite key
//   - ExpiresAt: for Firestore TTL (auto deletion), refreshed on each mutation
type Cart struct {
	// ID is Firestore docId (= sessionId).
	ID string `json:"id" firestore:"id"`

	Items []LineItem `json:"items" firestore:"items"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`

	// ExpiresAt is used for Firestore TTL.
	ExpiresAt time.Time `json:"expiresAt" firestore:"expiresAt"`
}

// NewCart creates a new cart doc.
// id is the Firestore docId (sessionId). items can be nil (treated as empty).
func NewCart(id string, items []LineItem, now time.Time) (*Cart, error) {
	c := &Cart{
		ID:        strings.TrimSpace(id),
		Items:     normalizeLines(items),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(DefaultCartTTL),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Add merges it into the cart (qty must be >= 1).
func (c *Cart) Add(it LineItem, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	if strings.TrimSpace(it.ProductID) == "" || it.Qty <= 0 {
		return ErrInvalidCart
	}
	c.Items = AddLine(c.Items, it)
	c.touch(now)
	return c.validate()
}

// SetQty sets quantity for the line with the composite key id.
// If qty <= 0, the line is removed. Unknown id is a no-op.
func (c *Cart) SetQty(id string, qty int, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	c.Items = SetLineQty(c.Items, id, qty)
	c.touch(now)
	return c.validate()
}

// Remove removes the line with the composite key id.
func (c *Cart) Remove(id string, now time.Time) error {
	return c.SetQty(id, 0, now)
}

// Clear empties the cart.
func (c *Cart) Clear(now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	c.Items = []LineItem{}
	c.touch(now)
	return c.validate()
}

// ConsumeAll clears items for order creation and returns a snapshot of items.
//
// Flow:
// 1) create the order from the snapshot (orders collection)
// 2) in the same request, persist the now-empty cart
func (c *Cart) ConsumeAll(now time.Time) ([]LineItem, error) {
	if c == nil {
		return nil, ErrInvalidCart
	}
	snap := cloneLines(c.Items)
	c.Items = []LineItem{}
	c.touch(now)
	if err := c.validate(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Subtotal is Σ price * qty over the cart lines.
func (c *Cart) Subtotal() int {
	if c == nil {
		return 0
	}
	return Subtotal(c.Items)
}

// Count is Σ qty over the cart lines.
func (c *Cart) Count() int {
	if c == nil {
		return 0
	}
	return Count(c.Items)
}

func (c *Cart) touch(now time.Time) {
	c.UpdatedAt = now
	c.ExpiresAt = now.Add(DefaultCartTTL)
}

func (c *Cart) validate() error {
	if c == nil {
		return ErrInvalidCart
	}

	// docId (= sessionId) must exist
	if strings.TrimSpace(c.ID) == "" {
		return ErrInvalidCart
	}

	if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() || c.ExpiresAt.IsZero() {
		return ErrInvalidCart
	}
	if c.UpdatedAt.Before(c.CreatedAt) {
		return ErrInvalidCart
	}
	if c.ExpiresAt.Before(c.UpdatedAt) {
		return ErrInvalidCart
	}

	for _, it := range c.Items {
		if strings.TrimSpace(it.ProductID) == "" || strings.TrimSpace(it.ID) == "" || it.Qty <= 0 {
			return ErrInvalidCart
		}
	}
	return nil
}

// ----------------------------
// Helpers
// ----------------------------

func findLineIndex(items []LineItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func removeIndex(items []LineItem, idx int) []LineItem {
	if idx < 0 || idx >= len(items) {
		return items
	}
	// preserve order
	return append(items[:idx], items[idx+1:]...)
}

func cloneLines(src []LineItem) []LineItem {
	out := make([]LineItem, len(src))
	copy(out, src)
	return out
}

// normalizeLines drops invalid lines, recomputes keys and merges duplicates
// while preserving first-seen order. Used when rehydrating untrusted input
// (persisted payloads, Firestore docs).
func normalizeLines(src []LineItem) []LineItem {
	out := make([]LineItem, 0, len(src))
	for _, it := range src {
		pid := strings.TrimSpace(it.ProductID)
		if pid == "" || it.Qty <= 0 {
			continue
		}
		it.ProductID = pid
		it.ID = LineKey(pid, it.Size, it.Color, it.Sleeve)

		if idx := findLineIndex(out, it.ID); idx >= 0 {
			out[idx].Qty += it.Qty
			continue
		}
		out = append(out, it)
	}
	return out
}

// NormalizeLines is the exported entry point for boundary adapters.
func NormalizeLines(src []LineItem) []LineItem {
	return normalizeLines(src)
}
