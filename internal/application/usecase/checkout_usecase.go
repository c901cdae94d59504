package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	cartdom "mihrab/internal/domain/cart"
	orderdom "mihrab/internal/domain/order"
)

var (
	ErrCheckoutInvalidArgument = errors.New("checkout_usecase: invalid argument")
	ErrCheckoutEmptyCart       = errors.New("checkout_usecase: cart is empty")
)

// EmailSender sends the order confirmation mail (best-effort).
type EmailSender interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// SalesLedger appends a confirmed order to the reporting ledger (best-effort).
type SalesLedger interface {
	Append(ctx context.Context, o *orderdom.Order) error
}

// IDGenerator mints order ids (for testability).
type IDGenerator interface {
	NewID() string
}

// CheckoutInput is the order submission payload.
type CheckoutInput struct {
	SessionID string
	Email     string
	Shipping  orderdom.ShippingSnapshot
}

// CheckoutUsecase turns the session cart into an order.
//
// Flow (order matters):
// 1. load cart; empty/absent -> ErrCheckoutEmptyCart
// 2. consume cart items into an order snapshot
// 3. create the order (strict: failure aborts, the cart stays intact)
// 4. persist the now-empty cart - the cart is cleared ONLY after order
//    creation succeeded
// 5. best-effort: sales ledger append, confirmation mail (log, don't fail)
type CheckoutUsecase struct {
	carts  cartdom.Repository
	orders orderdom.Repository

	mail   EmailSender // optional
	ledger SalesLedger // optional

	clock    Clock
	idgen    IDGenerator
	mailFrom string
}

func NewCheckoutUsecase(
	carts cartdom.Repository,
	orders orderdom.Repository,
	mail EmailSender,
	ledger SalesLedger,
	idgen IDGenerator,
	mailFrom string,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		carts:    carts,
		orders:   orders,
		mail:     mail,
		ledger:   ledger,
		clock:    systemClock{},
		idgen:    idgen,
		mailFrom: strings.TrimSpace(mailFrom),
	}
}

// NewCheckoutUsecaseWithClock is useful for tests.
func NewCheckoutUsecaseWithClock(
	carts cartdom.Repository,
	orders orderdom.Repository,
	mail EmailSender,
	ledger SalesLedger,
	idgen IDGenerator,
	mailFrom string,
	clock Clock,
) *CheckoutUsecase {
	uc := NewCheckoutUsecase(carts, orders, mail, ledger, idgen, mailFrom)
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

// Submit creates an order from the session cart.
func (uc *CheckoutUsecase) Submit(ctx context.Context, in CheckoutInput) (*orderdom.Order, error) {
	sid := strings.TrimSpace(in.SessionID)
	if sid == "" || uc.idgen == nil {
		return nil, ErrCheckoutInvalidArgument
	}

	c, err := uc.carts.GetBySessionID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if c == nil || len(c.Items) == 0 {
		return nil, ErrCheckoutEmptyCart
	}

	now := uc.clock.Now()
	lines, err := c.ConsumeAll(now)
	if err != nil {
		return nil, err
	}

	o, err := orderdom.New(uc.idgen.NewID(), sid, in.Email, in.Shipping, lines, now)
	if err != nil {
		return nil, err
	}

	if err := uc.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	// order exists -> now (and only now) clear the persisted cart
	if err := uc.carts.Upsert(ctx, c); err != nil {
		// the order stands; the stale cart self-heals on TTL
		log.Printf("[checkout] WARN: cart clear failed orderId=%s sessionId=%s err=%v", o.ID, sid, err)
	}

	if uc.ledger != nil {
		if err := uc.ledger.Append(ctx, o); err != nil {
			log.Printf("[checkout] WARN: ledger append failed orderId=%s err=%v", o.ID, err)
		}
	}

	if uc.mail != nil && uc.mailFrom != "" {
		subject := fmt.Sprintf("Order %s confirmed", o.ID)
		if err := uc.mail.Send(ctx, uc.mailFrom, o.Email, subject, confirmationBody(o)); err != nil {
			log.Printf("[checkout] WARN: confirmation mail failed orderId=%s err=%v", o.ID, err)
		}
	}

	log.Printf("[checkout] order created orderId=%s items=%d subtotal=%d", o.ID, len(o.Items), o.Subtotal)
	return o, nil
}

func confirmationBody(o *orderdom.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order %s.\n\n", o.ID)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "%d x %s", it.Qty, it.Name)
		if it.Size != "" {
			fmt.Fprintf(&b, " (%s)", it.Size)
		}
		fmt.Fprintf(&b, " - %d\n", it.Price*it.Qty)
	}
	fmt.Fprintf(&b, "\nSubtotal: %d\n", o.Subtotal)
	return b.String()
}
