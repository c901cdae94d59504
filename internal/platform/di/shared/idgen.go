package shared

import "github.com/google/uuid"

// UUIDGenerator mints ids for orders, products and categories.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }
