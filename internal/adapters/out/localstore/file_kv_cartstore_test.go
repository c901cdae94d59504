package localstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mihrab/internal/adapters/out/localstore"
	appstore "mihrab/internal/application/store"
	cartdom "mihrab/internal/domain/cart"
)

// Cart state written through the file KV must survive a "reload" (a fresh
// store over the same directory).
func TestFileKV_CartStoreSurvivesReload(t *testing.T) {
	dir := t.TempDir()

	kv, err := localstore.NewFileKV(dir)
	require.NoError(t, err)

	s := appstore.NewCartStore(kv, "")
	s.Add(cartdom.LineItem{ProductID: "p1", Name: "Classic White Thobe", Price: 5000, Size: "56", Qty: 2})
	s.Add(cartdom.LineItem{ProductID: "p2", Name: "Shemagh", Price: 1800, Qty: 1})

	kv2, err := localstore.NewFileKV(dir)
	require.NoError(t, err)

	reloaded := appstore.NewCartStore(kv2, "")
	items := reloaded.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 11800, reloaded.Subtotal())
	assert.Equal(t, 3, reloaded.Count())
	assert.Equal(t, items[0].ID, s.Items()[0].ID)
}
