package firestore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartDocFromData_CurrentShape(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	raw := map[string]any{
		"createdAt": now,
		"updatedAt": now,
		"expiresAt": now.Add(24 * time.Hour),
		"items": []any{
			map[string]any{
				"id": "p1__M__default__default", "productId": "p1",
				"name": "Classic Thobe", "price": int64(5000), "size": "M", "qty": int64(2),
			},
			map[string]any{"productId": "", "qty": int64(3)},  // dropped: no product
			map[string]any{"productId": "p2", "qty": int64(0)}, // dropped: zero qty
		},
	}

	doc := cartDocFromData(raw)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "p1", doc.Items[0].ProductID)
	assert.Equal(t, 5000, doc.Items[0].Price)
	assert.Equal(t, now, doc.CreatedAt)

	d := doc.toDomain()
	require.Len(t, d.Items, 1)
	assert.Equal(t, "p1__M__default__default", d.Items[0].ID)
}

func TestCartDocFromData_LegacyMapShape(t *testing.T) {
	raw := map[string]any{
		"items": map[string]any{
			"p1__M__default__default": int64(2),
			"junk":                    int64(0), // dropped
		},
	}

	doc := cartDocFromData(raw)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "p1", doc.Items[0].ProductID)
	assert.Equal(t, 2, doc.Items[0].Qty)
}

func TestCartDocFromData_NilAndEmpty(t *testing.T) {
	doc := cartDocFromData(nil)
	assert.Empty(t, doc.Items)

	doc = cartDocFromData(map[string]any{})
	assert.Empty(t, doc.Items)
}

func TestProductFromData_NormalizesTimestampShapes(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// native timestamp
	p := productFromData("p1", map[string]any{"name": "A", "createdAt": now})
	assert.Equal(t, now.UnixMilli(), p.CreatedAtMillis)

	// server timestamp map {seconds, nanos}
	p = productFromData("p2", map[string]any{
		"createdAt": map[string]any{"seconds": int64(1_700_000_000), "nanos": int64(500_000_000)},
	})
	assert.Equal(t, int64(1_700_000_000_500), p.CreatedAtMillis)

	// bare millis
	p = productFromData("p3", map[string]any{"createdAt": int64(1234)})
	assert.Equal(t, int64(1234), p.CreatedAtMillis)

	// absent
	p = productFromData("p4", map[string]any{})
	assert.Equal(t, int64(0), p.CreatedAtMillis)
}

func TestProductFromData_FieldsAndLegacyBasePrice(t *testing.T) {
	raw := map[string]any{
		"slug": " classic-thobe ", "name": "Classic Thobe",
		"basePrice": int64(30000),
		"sizes":     []any{"M", "L", " "},
		"colors":    []any{"white"},
		"sleeve":    "long",
		"category":  "men",
		"inStock":   true,
	}
	p := productFromData("p1", raw)

	assert.Equal(t, "classic-thobe", p.Slug)
	assert.Equal(t, 0, p.Price)
	assert.Equal(t, 30000, p.CompareAtPrice)
	assert.Equal(t, 30000, p.EffectivePrice())
	assert.Equal(t, []string{"M", "L"}, p.Sizes)
	assert.True(t, p.InStock)
}
