package storeHandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usecase "mihrab/internal/application/usecase"
	cartdom "mihrab/internal/domain/cart"
)

type fakeCartRepo struct {
	carts map[string]*cartdom.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]*cartdom.Cart{}}
}

func (f *fakeCartRepo) GetBySessionID(ctx context.Context, sessionID string) (*cartdom.Cart, error) {
	c, ok := f.carts[sessionID]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Items = append([]cartdom.LineItem(nil), c.Items...)
	return &cp, nil
}

func (f *fakeCartRepo) Upsert(ctx context.Context, c *cartdom.Cart) error {
	cp := *c
	cp.Items = append([]cartdom.LineItem(nil), c.Items...)
	f.carts[c.ID] = &cp
	return nil
}

func (f *fakeCartRepo) DeleteBySessionID(ctx context.Context, sessionID string) error {
	delete(f.carts, sessionID)
	return nil
}

func newCartTestHandler() (http.Handler, *fakeCartRepo) {
	repo := newFakeCartRepo()
	return NewCartHandler(usecase.NewCartUsecase(repo)), repo
}

func addItemBody(productID string, price, qty int, size string) string {
	b, _ := json.Marshal(map[string]any{
		"productId": productID,
		"name":      "Classic White Thobe",
		"slug":      "classic-white",
		"price":     price,
		"size":      size,
		"qty":       qty,
	})
	return string(b)
}

func doCart(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartDTO {
	t.Helper()
	var out cartDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestCartHandler_GetAbsentCartIsEmpty(t *testing.T) {
	h, _ := newCartTestHandler()

	rec := doCart(t, h, http.MethodGet, "/store/cart?sessionId=s1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeCart(t, rec)
	assert.Equal(t, "s1", out.SessionID)
	assert.Empty(t, out.Items)
	assert.Equal(t, 0, out.Subtotal)
}

func TestCartHandler_AddMergesSameLine(t *testing.T) {
	h, _ := newCartTestHandler()

	rec := doCart(t, h, http.MethodPost, "/store/cart/items?sessionId=s1", addItemBody("p1", 5000, 1, "56"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doCart(t, h, http.MethodPost, "/store/cart/items?sessionId=s1", addItemBody("p1", 5000, 2, "56"))
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeCart(t, rec)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 3, out.Items[0].Qty)
	assert.Equal(t, 15000, out.Subtotal)
	assert.Equal(t, 3, out.Count)
}

func TestCartHandler_SetQtyZeroRemovesLine(t *testing.T) {
	h, _ := newCartTestHandler()

	rec := doCart(t, h, http.MethodPost, "/store/cart/items?sessionId=s1", addItemBody("p1", 5000, 1, "56"))
	require.Equal(t, http.StatusOK, rec.Code)
	lineID := decodeCart(t, rec).Items[0].ID

	body, _ := json.Marshal(map[string]any{"lineId": lineID, "qty": 0})
	rec = doCart(t, h, http.MethodPut, "/store/cart/items?sessionId=s1", string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeCart(t, rec)
	assert.Empty(t, out.Items)
	assert.Equal(t, 0, out.Subtotal)
}

func TestCartHandler_RemoveLine(t *testing.T) {
	h, _ := newCartTestHandler()

	rec := doCart(t, h, http.MethodPost, "/store/cart/items?sessionId=s1", addItemBody("p1", 5000, 1, "56"))
	require.Equal(t, http.StatusOK, rec.Code)
	lineID := decodeCart(t, rec).Items[0].ID

	body, _ := json.Marshal(map[string]any{"lineId": lineID})
	rec = doCart(t, h, http.MethodDelete, "/store/cart/items?sessionId=s1", string(body))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, rec).Items)
}

func TestCartHandler_Clear(t *testing.T) {
	h, repo := newCartTestHandler()

	rec := doCart(t, h, http.MethodPost, "/store/cart/items?sessionId=s1", addItemBody("p1", 5000, 2, "56"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doCart(t, h, http.MethodDelete, "/store/cart?sessionId=s1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, rec).Items)

	persisted, err := repo.GetBySessionID(context.Background(), "s1")
	require.NoError(t, err)
	if persisted != nil {
		assert.Empty(t, persisted.Items)
	}
}

func TestCartHandler_ValidationErrors(t *testing.T) {
	h, _ := newCartTestHandler()

	t.Run("missing sessionId", func(t *testing.T) {
		rec := doCart(t, h, http.MethodGet, "/store/cart", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("qty below one", func(t *testing.T) {
		rec := doCart(t, h, http.MethodPost, "/store/cart/items?sessionId=s1", addItemBody("p1", 5000, 0, "56"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		rec := doCart(t, h, http.MethodPost, "/store/cart/items?sessionId=s1", "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCartHandler_SessionIDFromHeader(t *testing.T) {
	h, _ := newCartTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/store/cart", nil)
	req.Header.Set("X-Session-Id", "s9")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "s9", decodeCart(t, rec).SessionID)
}
