package storeHandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storeQuery "mihrab/internal/application/query/store"
	dto "mihrab/internal/application/query/store/dto"
	productdom "mihrab/internal/domain/product"
)

type fakeProductRepo struct {
	products []productdom.Product
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*productdom.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) GetBySlug(ctx context.Context, slug string) (*productdom.Product, error) {
	for _, p := range f.products {
		if p.Slug == slug {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) List(ctx context.Context) ([]productdom.Product, error) {
	return append([]productdom.Product(nil), f.products...), nil
}

func (f *fakeProductRepo) ListByCategory(ctx context.Context, category string) ([]productdom.Product, error) {
	var out []productdom.Product
	for _, p := range f.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Create(ctx context.Context, p productdom.Product) error { return nil }

func (f *fakeProductRepo) Update(ctx context.Context, id string, patch productdom.Patch) (*productdom.Product, error) {
	return nil, productdom.ErrNotFound
}

func (f *fakeProductRepo) Delete(ctx context.Context, id string) error { return nil }

func catalogFixture() []productdom.Product {
	return []productdom.Product{
		{ID: "p1", Slug: "classic-white", Name: "Classic White Thobe", Price: 4500, Sizes: []string{"54", "56"}, Colors: []string{"white"}, Sleeve: productdom.SleeveLong, Category: "men", InStock: true, CreatedAtMillis: 100},
		{ID: "p2", Slug: "emirati-beige", Name: "Emirati Beige Thobe", Price: 6200, Sizes: []string{"56"}, Colors: []string{"beige"}, Sleeve: productdom.SleeveLong, Category: "men", InStock: true, CreatedAtMillis: 200},
		{ID: "p3", Slug: "boys-grey", Name: "Boys Grey Thobe", Price: 3200, Sizes: []string{"34"}, Colors: []string{"grey"}, Sleeve: productdom.SleeveShort, Category: "boys", InStock: true, CreatedAtMillis: 300},
	}
}

func newCatalogTestHandler() http.Handler {
	repo := &fakeProductRepo{products: catalogFixture()}
	return NewCatalogHandler(storeQuery.NewCatalogQuery(repo))
}

func TestCatalogHandler_ListAll(t *testing.T) {
	h := newCatalogTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/store/catalog", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out dto.CatalogDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 3, out.Total)
	// featured sort preserves the repository baseline order
	assert.Equal(t, "p1", out.Items[0].ID)
	assert.Equal(t, "p3", out.Items[2].ID)
}

func TestCatalogHandler_FilterAndSort(t *testing.T) {
	h := newCatalogTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/store/catalog?category=men&sort=price-desc", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out dto.CatalogDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, 2, out.Total)
	assert.Equal(t, "p2", out.Items[0].ID)
	assert.Equal(t, "p1", out.Items[1].ID)
}

func TestCatalogHandler_FacetParams(t *testing.T) {
	h := newCatalogTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/store/catalog?colors=white,grey&sizes=54", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out dto.CatalogDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "p1", out.Items[0].ID)
}

func TestCatalogHandler_PriceRange(t *testing.T) {
	h := newCatalogTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/store/catalog?priceMin=4000&priceMax=5000", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out dto.CatalogDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "p1", out.Items[0].ID)
}

func TestCatalogHandler_MethodNotAllowed(t *testing.T) {
	h := newCatalogTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/store/catalog", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestProductHandler_BySlug(t *testing.T) {
	repo := &fakeProductRepo{products: catalogFixture()}
	h := NewProductHandler(storeQuery.NewCatalogQuery(repo))

	req := httptest.NewRequest(http.MethodGet, "/store/products/emirati-beige", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out dto.ProductDetailDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "p2", out.ID)
	assert.Equal(t, 6200, out.Price)
}

func TestProductHandler_NotFound(t *testing.T) {
	repo := &fakeProductRepo{products: catalogFixture()}
	h := NewProductHandler(storeQuery.NewCatalogQuery(repo))

	req := httptest.NewRequest(http.MethodGet, "/store/products/no-such-slug", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
