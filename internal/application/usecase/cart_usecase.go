package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	cartdom "mihrab/internal/domain/cart"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
	ErrCartNotFound        = errors.New("cart_usecase: not found")
)

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// CartUsecase coordinates server-side cart operations for a session.
type CartUsecase struct {
	repo  cartdom.Repository
	clock Clock
}

func NewCartUsecase(repo cartdom.Repository) *CartUsecase {
	return &CartUsecase{
		repo:  repo,
		clock: systemClock{},
	}
}

// NewCartUsecaseWithClock is useful for tests.
func NewCartUsecaseWithClock(repo cartdom.Repository, clock Clock) *CartUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &CartUsecase{repo: repo, clock: clock}
}

// Get returns the cart for sessionID.
// If the cart does not exist, returns (nil, ErrCartNotFound).
func (uc *CartUsecase) Get(ctx context.Context, sessionID string) (*cartdom.Cart, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.repo.GetBySessionID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}
	return c, nil
}

// GetOrCreate returns an existing cart; if absent, creates an empty one and persists it.
func (uc *CartUsecase) GetOrCreate(ctx context.Context, sessionID string) (*cartdom.Cart, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.repo.GetBySessionID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}

	now := uc.clock.Now()
	newCart, err := cartdom.NewCart(sid, nil, now)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, newCart); err != nil {
		return nil, err
	}
	return newCart, nil
}

// AddItem merges item into the session cart (qty must be >= 1).
// An absent cart is created first.
func (uc *CartUsecase) AddItem(ctx context.Context, sessionID string, item cartdom.LineItem) (*cartdom.Cart, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" || strings.TrimSpace(item.ProductID) == "" || item.Qty <= 0 {
		return nil, ErrCartInvalidArgument
	}

	now := uc.clock.Now()

	c, err := uc.repo.GetBySessionID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c, err = cartdom.NewCart(sid, nil, now)
		if err != nil {
			return nil, err
		}
	}

	if err := c.Add(item, now); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetItemQty sets qty for the line with the composite key lineID.
// If qty <= 0, the line is removed.
func (uc *CartUsecase) SetItemQty(ctx context.Context, sessionID, lineID string, qty int) (*cartdom.Cart, error) {
	sid := strings.TrimSpace(sessionID)
	lid := strings.TrimSpace(lineID)
	if sid == "" || lid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.repo.GetBySessionID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		// policy: cart absent -> create (then apply; unknown line is a no-op)
		now := uc.clock.Now()
		c, err = cartdom.NewCart(sid, nil, now)
		if err != nil {
			return nil, err
		}
	}

	now := uc.clock.Now()
	if err := c.SetQty(lid, qty, now); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem removes the line with the composite key lineID.
func (uc *CartUsecase) RemoveItem(ctx context.Context, sessionID, lineID string) (*cartdom.Cart, error) {
	return uc.SetItemQty(ctx, sessionID, lineID, 0)
}

// Clear deletes the cart doc (used for "empty cart" UX).
func (uc *CartUsecase) Clear(ctx context.Context, sessionID string) error {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return ErrCartInvalidArgument
	}
	return uc.repo.DeleteBySessionID(ctx, sid)
}
