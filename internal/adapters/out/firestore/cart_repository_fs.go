package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "mihrab/internal/domain/cart"
)

// CartRepositoryFS implements cart.Repository using Firestore.
//
// Collection design:
// - collection: carts
// - docId: sessionId (docId is the source of truth)
// - fields: items(array), createdAt, updatedAt, expiresAt
//
// TTL:
// - Configure Firestore TTL on "expiresAt".
type CartRepositoryFS struct {
	Client *firestore.Client
}

func NewCartRepositoryFS(client *firestore.Client) *CartRepositoryFS {
	return &CartRepositoryFS{Client: client}
}

func (r *CartRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("carts")
}

// GetBySessionID returns (nil, nil) if not found (nil policy).
func (r *CartRepositoryFS) GetBySessionID(ctx context.Context, sessionID string) (*cartdom.Cart, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("cart_repository_fs: firestore client is nil")
	}

	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, errors.New("cart_repository_fs: sessionID is empty")
	}

	snap, err := r.col().Doc(sid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	// NOTE: older docs stored items as map[lineKey]qty. DataTo on a typed
	// struct would 500 on those, so parse snap.Data() with backward compat.
	doc := cartDocFromData(snap.Data())

	d := doc.toDomain()
	// docId is the source of truth even when the doc has no id field
	d.ID = sid
	return d, nil
}

// Upsert saves the cart by docId=cart.ID (= sessionId). Full-doc overwrite,
// simple and predictable.
func (r *CartRepositoryFS) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	if c == nil {
		return errors.New("cart_repository_fs: cart is nil")
	}

	sid := strings.TrimSpace(c.ID)
	if sid == "" {
		return errors.New("cart_repository_fs: Upsert requires cart.ID (= sessionId) as docId")
	}

	_, err := r.col().Doc(sid).Set(ctx, cartDocFromDomain(c))
	return err
}

func (r *CartRepositoryFS) DeleteBySessionID(ctx context.Context, sessionID string) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}

	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return errors.New("cart_repository_fs: sessionID is empty")
	}

	_, err := r.col().Doc(sid).Delete(ctx)
	return err
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type cartDoc struct {
	Items []cartItemDoc `firestore:"items"`

	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
	ExpiresAt time.Time `firestore:"expiresAt"`
}

type cartItemDoc struct {
	ID        string `firestore:"id"`
	ProductID string `firestore:"productId"`
	Name      string `firestore:"name"`
	Image     string `firestore:"image"`
	Slug      string `firestore:"slug"`
	Price     int    `firestore:"price"`
	Size      string `firestore:"size"`
	Color     string `firestore:"color"`
	Sleeve    string `firestore:"sleeve"`
	Qty       int    `firestore:"qty"`
}

// cartDocFromData parses raw document data with backward compatibility.
//
// Supported shapes:
// 1) items: [] of {id, productId, name, image, slug, price, size, color, sleeve, qty}
// 2) items: map[lineKey] = qty (legacy) - productId recovered from the key
func cartDocFromData(raw map[string]any) cartDoc {
	out := cartDoc{Items: []cartItemDoc{}}
	if raw == nil {
		return out
	}

	if t, ok := asTime(raw["createdAt"]); ok {
		out.CreatedAt = t
	}
	if t, ok := asTime(raw["updatedAt"]); ok {
		out.UpdatedAt = t
	}
	if t, ok := asTime(raw["expiresAt"]); ok {
		out.ExpiresAt = t
	}

	switch items := raw["items"].(type) {
	case []any:
		for _, v := range items {
			mv, ok := v.(map[string]any)
			if !ok {
				continue
			}
			it := cartItemDoc{
				ID:        strings.TrimSpace(asString(mv["id"])),
				ProductID: strings.TrimSpace(asString(mv["productId"])),
				Name:      asString(mv["name"]),
				Image:     asString(mv["image"]),
				Slug:      asString(mv["slug"]),
				Price:     asInt(mv["price"]),
				Size:      strings.TrimSpace(asString(mv["size"])),
				Color:     strings.TrimSpace(asString(mv["color"])),
				Sleeve:    strings.TrimSpace(asString(mv["sleeve"])),
				Qty:       asInt(mv["qty"]),
			}
			if it.ProductID == "" || it.Qty <= 0 {
				continue
			}
			out.Items = append(out.Items, it)
		}
	case map[string]any:
		// legacy: lineKey -> qty; the key's first segment is the productId
		for k, v := range items {
			key := strings.TrimSpace(k)
			qty := asInt(v)
			if key == "" || qty <= 0 {
				continue
			}
			out.Items = append(out.Items, cartItemDoc{
				ID:        key,
				ProductID: strings.SplitN(key, "__", 2)[0],
				Qty:       qty,
			})
		}
	}

	return out
}

func cartDocFromDomain(c *cartdom.Cart) cartDoc {
	items := make([]cartItemDoc, 0, len(c.Items))
	for _, it := range c.Items {
		if strings.TrimSpace(it.ProductID) == "" || it.Qty <= 0 {
			continue
		}
		items = append(items, cartItemDoc{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Image:     it.Image,
			Slug:      it.Slug,
			Price:     it.Price,
			Size:      it.Size,
			Color:     it.Color,
			Sleeve:    it.Sleeve,
			Qty:       it.Qty,
		})
	}

	return cartDoc{
		Items:     items,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		ExpiresAt: c.ExpiresAt,
	}
}

func (d cartDoc) toDomain() *cartdom.Cart {
	lines := make([]cartdom.LineItem, 0, len(d.Items))
	for _, it := range d.Items {
		lines = append(lines, cartdom.LineItem{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Image:     it.Image,
			Slug:      it.Slug,
			Price:     it.Price,
			Size:      it.Size,
			Color:     it.Color,
			Sleeve:    it.Sleeve,
			Qty:       it.Qty,
		})
	}

	return &cartdom.Cart{
		// ID is filled by the caller (docId)
		Items:     cartdom.NormalizeLines(lines),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		ExpiresAt: d.ExpiresAt,
	}
}
