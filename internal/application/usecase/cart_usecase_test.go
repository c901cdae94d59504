package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "mihrab/internal/domain/cart"
)

// fakeCartRepo is an in-memory cart.Repository.
type fakeCartRepo struct {
	carts  map[string]*cartdom.Cart
	getErr error
	putErr error
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]*cartdom.Cart{}}
}

func (f *fakeCartRepo) GetBySessionID(_ context.Context, sessionID string) (*cartdom.Cart, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	c, ok := f.carts[sessionID]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCartRepo) Upsert(_ context.Context, c *cartdom.Cart) error {
	if f.putErr != nil {
		return f.putErr
	}
	cp := *c
	f.carts[c.ID] = &cp
	return nil
}

func (f *fakeCartRepo) DeleteBySessionID(_ context.Context, sessionID string) error {
	delete(f.carts, sessionID)
	return nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestCartUsecase_AddItemCreatesAndMerges(t *testing.T) {
	repo := newFakeCartRepo()
	uc := NewCartUsecaseWithClock(repo, fixedClock{testNow})
	ctx := context.Background()

	c, err := uc.AddItem(ctx, "sess-1", cartdom.LineItem{ProductID: "p1", Size: "M", Price: 5000, Qty: 1})
	require.NoError(t, err)
	require.Len(t, c.Items, 1)

	c, err = uc.AddItem(ctx, "sess-1", cartdom.LineItem{ProductID: "p1", Size: "M", Price: 5000, Qty: 2})
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Qty)
	assert.Equal(t, 15000, c.Subtotal())

	// persisted
	saved, err := uc.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 3, saved.Count())
}

func TestCartUsecase_AddItemInvalid(t *testing.T) {
	uc := NewCartUsecase(newFakeCartRepo())
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "", cartdom.LineItem{ProductID: "p1", Qty: 1})
	assert.ErrorIs(t, err, ErrCartInvalidArgument)
	_, err = uc.AddItem(ctx, "sess-1", cartdom.LineItem{ProductID: "", Qty: 1})
	assert.ErrorIs(t, err, ErrCartInvalidArgument)
	_, err = uc.AddItem(ctx, "sess-1", cartdom.LineItem{ProductID: "p1", Qty: 0})
	assert.ErrorIs(t, err, ErrCartInvalidArgument)
}

func TestCartUsecase_SetItemQtyRemovesOnZero(t *testing.T) {
	repo := newFakeCartRepo()
	uc := NewCartUsecaseWithClock(repo, fixedClock{testNow})
	ctx := context.Background()

	c, err := uc.AddItem(ctx, "sess-1", cartdom.LineItem{ProductID: "p1", Price: 100, Qty: 2})
	require.NoError(t, err)
	id := c.Items[0].ID

	c, err = uc.SetItemQty(ctx, "sess-1", id, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Items[0].Qty)

	c, err = uc.SetItemQty(ctx, "sess-1", id, 0)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestCartUsecase_RemoveUnknownLineIsNoop(t *testing.T) {
	repo := newFakeCartRepo()
	uc := NewCartUsecaseWithClock(repo, fixedClock{testNow})
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "sess-1", cartdom.LineItem{ProductID: "p1", Price: 100, Qty: 1})
	require.NoError(t, err)

	c, err := uc.RemoveItem(ctx, "sess-1", "does-not-exist")
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)
}

func TestCartUsecase_GetNotFound(t *testing.T) {
	uc := NewCartUsecase(newFakeCartRepo())
	_, err := uc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestCartUsecase_GetOrCreate(t *testing.T) {
	repo := newFakeCartRepo()
	uc := NewCartUsecaseWithClock(repo, fixedClock{testNow})
	ctx := context.Background()

	c, err := uc.GetOrCreate(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	// second call returns the persisted cart, not a new one
	c2, err := uc.GetOrCreate(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, c.ID, c2.ID)
}

func TestCartUsecase_RepoErrorPropagates(t *testing.T) {
	repo := newFakeCartRepo()
	repo.getErr = errors.New("firestore down")
	uc := NewCartUsecase(repo)

	_, err := uc.Get(context.Background(), "sess-1")
	assert.EqualError(t, err, "firestore down")
}

func TestCartUsecase_Clear(t *testing.T) {
	repo := newFakeCartRepo()
	uc := NewCartUsecaseWithClock(repo, fixedClock{testNow})
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "sess-1", cartdom.LineItem{ProductID: "p1", Price: 100, Qty: 1})
	require.NoError(t, err)

	require.NoError(t, uc.Clear(ctx, "sess-1"))
	_, err = uc.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrCartNotFound)
}
