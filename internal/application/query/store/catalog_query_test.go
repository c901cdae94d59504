package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mihrab/internal/application/catalog"
	productdom "mihrab/internal/domain/product"
)

// fakeProductRepo serves a fixed catalog in insertion order.
type fakeProductRepo struct {
	products []productdom.Product
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*productdom.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) GetBySlug(_ context.Context, slug string) (*productdom.Product, error) {
	for _, p := range f.products {
		if p.Slug == slug {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) List(_ context.Context) ([]productdom.Product, error) {
	out := make([]productdom.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeProductRepo) ListByCategory(_ context.Context, category string) ([]productdom.Product, error) {
	var out []productdom.Product
	for _, p := range f.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Create(_ context.Context, p productdom.Product) error {
	f.products = append(f.products, p)
	return nil
}

func (f *fakeProductRepo) Update(_ context.Context, _ string, _ productdom.Patch) (*productdom.Product, error) {
	return nil, productdom.ErrNotFound
}

func (f *fakeProductRepo) Delete(_ context.Context, _ string) error { return nil }

func testRepo() *fakeProductRepo {
	return &fakeProductRepo{products: []productdom.Product{
		{ID: "p1", Slug: "classic-thobe", Name: "Classic Thobe", Category: "men", Price: 25000, Colors: []string{"white"}, Images: []string{"https://img/p1.jpg"}, CreatedAtMillis: 100},
		{ID: "p2", Slug: "boys-thobe", Name: "Boys Thobe", Category: "boys", Price: 15000, Colors: []string{"beige"}, CreatedAtMillis: 200},
		{ID: "p3", Slug: "red-shemagh", Name: "Red Shemagh", Category: "shemagh", Price: 9000, Colors: []string{"red"}, CreatedAtMillis: 300},
	}}
}

func TestCatalogQuery_ListWholeShop(t *testing.T) {
	q := NewCatalogQuery(testRepo())

	got, err := q.List(context.Background(), "", catalog.NewFilterState(), catalog.SortFeatured)
	require.NoError(t, err)
	require.Equal(t, 3, got.Total)
	assert.Equal(t, "p1", got.Items[0].ID)
	assert.Equal(t, "https://img/p1.jpg", got.Items[0].Image)
}

func TestCatalogQuery_ListScopedAndFiltered(t *testing.T) {
	q := NewCatalogQuery(testRepo())

	f := catalog.NewFilterState()
	f.Colors = []string{"red"}
	got, err := q.List(context.Background(), "shemagh", f, catalog.SortNewest)
	require.NoError(t, err)
	require.Equal(t, 1, got.Total)
	assert.Equal(t, "p3", got.Items[0].ID)
}

func TestCatalogQuery_ListEmptyScope(t *testing.T) {
	q := NewCatalogQuery(testRepo())

	got, err := q.List(context.Background(), "no-such-category", catalog.NewFilterState(), catalog.SortFeatured)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Total)
	assert.Empty(t, got.Items)
}

func TestCatalogQuery_GetBySlug(t *testing.T) {
	q := NewCatalogQuery(testRepo())

	got, err := q.GetBySlug(context.Background(), "classic-thobe")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, []string{"https://img/p1.jpg"}, got.Images)

	_, err = q.GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = q.GetBySlug(context.Background(), strings.Repeat(" ", 3))
	assert.ErrorIs(t, err, ErrNotFound)
}
