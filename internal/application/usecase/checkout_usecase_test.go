package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "mihrab/internal/domain/cart"
	orderdom "mihrab/internal/domain/order"
)

type fakeOrderRepo struct {
	orders    map[string]*orderdom.Order
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*orderdom.Order{}}
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*orderdom.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, orderdom.ErrNotFound
	}
	return o, nil
}

func (f *fakeOrderRepo) Create(_ context.Context, o *orderdom.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.orders[o.ID] = o
	return nil
}

func (f *fakeOrderRepo) ListBySessionID(_ context.Context, sessionID string) ([]orderdom.Order, error) {
	var out []orderdom.Order
	for _, o := range f.orders {
		if o.SessionID == sessionID {
			out = append(out, *o)
		}
	}
	return out, nil
}

type fakeMail struct {
	sent []string
	err  error
}

func (f *fakeMail) Send(_ context.Context, _, to, subject, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to+": "+subject)
	return nil
}

type fakeLedger struct {
	appended []*orderdom.Order
	err      error
}

func (f *fakeLedger) Append(_ context.Context, o *orderdom.Order) error {
	if f.err != nil {
		return f.err
	}
	f.appended = append(f.appended, o)
	return nil
}

type seqIDGen struct{ n int }

func (g *seqIDGen) NewID() string {
	g.n++
	return fmt.Sprintf("ord-%d", g.n)
}

func seedCart(t *testing.T, repo *fakeCartRepo, sessionID string) {
	t.Helper()
	c, err := cartdom.NewCart(sessionID, []cartdom.LineItem{
		{ProductID: "p1", Name: "Classic Thobe", Size: "M", Price: 5000, Qty: 2},
		{ProductID: "p2", Name: "Shemagh", Price: 2000, Qty: 1},
	}, testNow)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(context.Background(), c))
}

func testShipping() orderdom.ShippingSnapshot {
	return orderdom.ShippingSnapshot{Name: "A. Rahman", City: "Riyadh", Street: "King Fahd Rd", Country: "SA"}
}

func TestCheckout_Submit(t *testing.T) {
	carts := newFakeCartRepo()
	orders := newFakeOrderRepo()
	mail := &fakeMail{}
	ledger := &fakeLedger{}
	seedCart(t, carts, "sess-1")

	uc := NewCheckoutUsecaseWithClock(carts, orders, mail, ledger, &seqIDGen{}, "shop@example.com", fixedClock{testNow})

	o, err := uc.Submit(context.Background(), CheckoutInput{
		SessionID: "sess-1",
		Email:     "buyer@example.com",
		Shipping:  testShipping(),
	})
	require.NoError(t, err)

	assert.Equal(t, "ord-1", o.ID)
	assert.Len(t, o.Items, 2)
	assert.Equal(t, 12000, o.Subtotal)

	// cart cleared after order creation
	c, err := carts.GetBySessionID(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	// best-effort side effects ran
	require.Len(t, ledger.appended, 1)
	require.Len(t, mail.sent, 1)
	assert.Contains(t, mail.sent[0], "buyer@example.com")
}

func TestCheckout_EmptyCart(t *testing.T) {
	carts := newFakeCartRepo()
	orders := newFakeOrderRepo()
	uc := NewCheckoutUsecaseWithClock(carts, orders, nil, nil, &seqIDGen{}, "", fixedClock{testNow})

	_, err := uc.Submit(context.Background(), CheckoutInput{SessionID: "sess-1", Email: "b@example.com", Shipping: testShipping()})
	assert.ErrorIs(t, err, ErrCheckoutEmptyCart)
}

func TestCheckout_OrderCreateFailureKeepsCart(t *testing.T) {
	carts := newFakeCartRepo()
	orders := newFakeOrderRepo()
	orders.createErr = errors.New("firestore down")
	seedCart(t, carts, "sess-1")

	uc := NewCheckoutUsecaseWithClock(carts, orders, nil, nil, &seqIDGen{}, "", fixedClock{testNow})
	_, err := uc.Submit(context.Background(), CheckoutInput{SessionID: "sess-1", Email: "b@example.com", Shipping: testShipping()})
	require.Error(t, err)

	// the persisted cart was NOT cleared
	c, err := carts.GetBySessionID(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Len(t, c.Items, 2)
}

func TestCheckout_BestEffortFailuresDoNotFailOrder(t *testing.T) {
	carts := newFakeCartRepo()
	orders := newFakeOrderRepo()
	mail := &fakeMail{err: errors.New("sendgrid 500")}
	ledger := &fakeLedger{err: errors.New("pg down")}
	seedCart(t, carts, "sess-1")

	uc := NewCheckoutUsecaseWithClock(carts, orders, mail, ledger, &seqIDGen{}, "shop@example.com", fixedClock{testNow})
	o, err := uc.Submit(context.Background(), CheckoutInput{SessionID: "sess-1", Email: "b@example.com", Shipping: testShipping()})
	require.NoError(t, err)
	assert.NotNil(t, o)
}

func TestCheckout_InvalidInput(t *testing.T) {
	uc := NewCheckoutUsecaseWithClock(newFakeCartRepo(), newFakeOrderRepo(), nil, nil, &seqIDGen{}, "", fixedClock{testNow})

	_, err := uc.Submit(context.Background(), CheckoutInput{SessionID: "", Email: "b@example.com"})
	assert.ErrorIs(t, err, ErrCheckoutInvalidArgument)
}
