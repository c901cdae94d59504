package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineKey(t *testing.T) {
	assert.Equal(t, "p1__M__white__long", LineKey("p1", "M", "white", "long"))
	assert.Equal(t, "p1__default__default__default", LineKey("p1", "", "", ""))
	assert.Equal(t, "p1__M__default__default", LineKey(" p1 ", " M ", "", ""))
}

func TestAddLine_MergesByCompositeKey(t *testing.T) {
	items := AddLine(nil, LineItem{ProductID: "p1", Size: "M", Price: 5000, Qty: 1, Name: "Classic Thobe"})
	items = AddLine(items, LineItem{ProductID: "p1", Size: "M", Price: 5000, Qty: 2, Name: "Renamed Later"})

	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Qty)
	// snapshot is captured at first add, not re-captured on merge
	assert.Equal(t, "Classic Thobe", items[0].Name)
	assert.Equal(t, "p1__M__default__default", items[0].ID)
}

func TestAddLine_DistinctFacetsDistinctLines(t *testing.T) {
	items := AddLine(nil, LineItem{ProductID: "p1", Size: "M", Qty: 1})
	items = AddLine(items, LineItem{ProductID: "p1", Size: "L", Qty: 1})
	items = AddLine(items, LineItem{ProductID: "p1", Size: "M", Color: "white", Qty: 1})
	assert.Len(t, items, 3)
}

func TestAddLine_RejectsInvalid(t *testing.T) {
	items := AddLine(nil, LineItem{ProductID: "", Qty: 1})
	assert.Empty(t, items)
	items = AddLine(items, LineItem{ProductID: "p1", Qty: 0})
	assert.Empty(t, items)
}

func TestAddLine_DoesNotMutateInput(t *testing.T) {
	orig := []LineItem{{ID: "p1__default__default__default", ProductID: "p1", Qty: 1}}
	_ = AddLine(orig, LineItem{ProductID: "p1", Qty: 5})
	assert.Equal(t, 1, orig[0].Qty)
}

func TestSetLineQty(t *testing.T) {
	items := AddLine(nil, LineItem{ProductID: "p1", Size: "M", Price: 5000, Qty: 3})
	id := items[0].ID

	items = SetLineQty(items, id, 7)
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Qty)

	// unknown id is a no-op
	same := SetLineQty(items, "nope", 2)
	assert.Equal(t, items, same)

	// qty <= 0 removes
	assert.Empty(t, SetLineQty(items, id, 0))
	assert.Empty(t, SetLineQty(items, id, -5))
}

func TestSubtotalAndCount(t *testing.T) {
	var items []LineItem
	items = AddLine(items, LineItem{ProductID: "p1", Price: 5000, Qty: 2})
	items = AddLine(items, LineItem{ProductID: "p2", Price: 1250, Qty: 3})

	assert.Equal(t, 5000*2+1250*3, Subtotal(items))
	assert.Equal(t, 5, Count(items))

	assert.Equal(t, 0, Subtotal(nil))
	assert.Equal(t, 0, Count(nil))
}

func TestCartFlow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	c, err := NewCart("sess-1", nil, now)
	require.NoError(t, err)

	require.NoError(t, c.Add(LineItem{ProductID: "p1", Size: "M", Price: 5000, Qty: 1}, now))
	require.NoError(t, c.Add(LineItem{ProductID: "p1", Size: "M", Price: 5000, Qty: 2}, now.Add(time.Minute)))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Qty)
	assert.Equal(t, 15000, c.Subtotal())
	assert.Equal(t, 3, c.Count())

	require.NoError(t, c.SetQty(c.Items[0].ID, 0, now.Add(2*time.Minute)))
	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.Subtotal())
	assert.Equal(t, 0, c.Count())
}

func TestCart_TouchRefreshesTTL(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c, err := NewCart("sess-1", nil, now)
	require.NoError(t, err)

	later := now.Add(3 * time.Hour)
	require.NoError(t, c.Add(LineItem{ProductID: "p1", Qty: 1}, later))
	assert.Equal(t, later, c.UpdatedAt)
	assert.Equal(t, later.Add(DefaultCartTTL), c.ExpiresAt)
}

func TestNewCart_RequiresID(t *testing.T) {
	_, err := NewCart("  ", nil, time.Now())
	assert.ErrorIs(t, err, ErrInvalidCart)
}

func TestNormalizeLines_MergesAndDropsInvalid(t *testing.T) {
	in := []LineItem{
		{ProductID: "p1", Size: "M", Qty: 1},
		{ProductID: "", Qty: 4},               // dropped: no product
		{ProductID: "p2", Qty: 0},             // dropped: non-positive qty
		{ProductID: "p1", Size: "M", Qty: 2},  // merged into first
		{ProductID: "p1", Size: "L", Qty: 1},  // kept, distinct facet
	}
	out := NormalizeLines(in)
	require.Len(t, out, 2)
	assert.Equal(t, 3, out[0].Qty)
	assert.Equal(t, "p1__M__default__default", out[0].ID)
	assert.Equal(t, "p1__L__default__default", out[1].ID)
}
