package store

import (
	"encoding/json"
	"log"
	"strings"
	"sync"

	cartdom "mihrab/internal/domain/cart"
)

// DefaultStorageKey is the KV key the cart payload is stored under.
const DefaultStorageKey = "mihrab-cart"

// Listener receives the full line list after every state change.
type Listener func(items []cartdom.LineItem)

// CartStore is the session cart: an in-memory line list with write-through
// persistence to a KV port.
//
// State transitions are the pure functions in the cart domain; persistence
// runs as a subscriber on state changes, so transitions stay testable
// without a storage dependency. Persistence failures are logged, never
// surfaced - in-memory state stays authoritative for the session (it just
// won't survive a reload).
//
// Construct one store per session; there is no package-level instance.
type CartStore struct {
	mu    sync.Mutex
	items []cartdom.LineItem

	subs   map[int]Listener
	nextID int
}

// NewCartStore builds a store rehydrated from kv (nil kv = memory only).
// A corrupt persisted payload is discarded and logged, never an error.
func NewCartStore(kv KV, key string) *CartStore {
	key = strings.TrimSpace(key)
	if key == "" {
		key = DefaultStorageKey
	}

	s := &CartStore{subs: map[int]Listener{}}
	s.items = rehydrate(kv, key)

	if kv != nil {
		// persistence is just another subscriber
		s.Subscribe(func(items []cartdom.LineItem) {
			if err := persist(kv, key, items); err != nil {
				log.Printf("[cart_store] WARN: persist failed key=%s err=%v (in-memory state kept)", key, err)
			}
		})
	}
	return s
}

// ----------------------------
// Reads
// ----------------------------

// Items returns a copy of the current lines.
func (s *CartStore) Items() []cartdom.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]cartdom.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Subtotal is Σ price * qty in minor currency units.
func (s *CartStore) Subtotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartdom.Subtotal(s.items)
}

// Count is Σ qty.
func (s *CartStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartdom.Count(s.items)
}

// Subscribe registers fn for state changes and returns an unsubscribe func.
// fn receives a copy; it must not be re-entrant into the store.
func (s *CartStore) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// ----------------------------
// Mutations
// ----------------------------

// Add merges item into the cart by composite key (qty summed on merge, the
// existing display snapshot wins). Lines without a product id or with
// qty <= 0 are ignored.
func (s *CartStore) Add(item cartdom.LineItem) {
	s.dispatch(func(items []cartdom.LineItem) []cartdom.LineItem {
		return cartdom.AddLine(items, item)
	})
}

// SetQty sets the qty for the line with the composite key id.
// qty <= 0 removes the line; an unknown id is a no-op.
func (s *CartStore) SetQty(id string, qty int) {
	s.dispatch(func(items []cartdom.LineItem) []cartdom.LineItem {
		return cartdom.SetLineQty(items, id, qty)
	})
}

// Remove removes the line with the composite key id (no-op if absent).
func (s *CartStore) Remove(id string) {
	s.dispatch(func(items []cartdom.LineItem) []cartdom.LineItem {
		return cartdom.RemoveLine(items, id)
	})
}

// Clear empties the cart. Called by the checkout flow only after order
// creation succeeded.
func (s *CartStore) Clear() {
	s.dispatch(func([]cartdom.LineItem) []cartdom.LineItem {
		return []cartdom.LineItem{}
	})
}

func (s *CartStore) dispatch(transition func([]cartdom.LineItem) []cartdom.LineItem) {
	s.mu.Lock()
	s.items = transition(s.items)

	snapshot := make([]cartdom.LineItem, len(s.items))
	copy(snapshot, s.items)
	listeners := make([]Listener, 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

// ----------------------------
// Persistence codec
// ----------------------------

type cartPayload struct {
	Items []cartdom.LineItem `json:"items"`
}

func rehydrate(kv KV, key string) []cartdom.LineItem {
	if kv == nil {
		return []cartdom.LineItem{}
	}

	raw, ok, err := kv.Get(key)
	if err != nil {
		log.Printf("[cart_store] WARN: rehydrate read failed key=%s err=%v (starting empty)", key, err)
		return []cartdom.LineItem{}
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []cartdom.LineItem{}
	}

	var p cartPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		// corrupt payload: discard, never throw
		log.Printf("[cart_store] WARN: discarding corrupt payload key=%s err=%v", key, err)
		return []cartdom.LineItem{}
	}

	// untrusted input: recompute keys, merge duplicates, drop invalid lines
	return cartdom.NormalizeLines(p.Items)
}

func persist(kv KV, key string, items []cartdom.LineItem) error {
	b, err := json.Marshal(cartPayload{Items: items})
	if err != nil {
		return err
	}
	return kv.Set(key, string(b))
}
