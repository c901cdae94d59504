package product

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound = errors.New("product: not found")
	ErrConflict = errors.New("product: conflict")
	ErrInvalid  = errors.New("product: invalid")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }
func IsInvalid(err error) bool  { return errors.Is(err, ErrInvalid) }

func WrapInvalid(err error, msg string) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrInvalid, msg)
	}
	return fmt.Errorf("%w: %s: %v", ErrInvalid, msg, err)
}

// ======================================
// Enums (Sleeve)
// ======================================

type Sleeve string

const (
	SleeveLong  Sleeve = "long"
	SleeveShort Sleeve = "short"
	SleeveNone  Sleeve = "" // not applicable (e.g., shemaghs)
)

func IsValidSleeve(v Sleeve) bool {
	switch v {
	case SleeveLong, SleeveShort, SleeveNone:
		return true
	default:
		return false
	}
}

// ======================================
// Entity
// ======================================

// Product is one catalog item (a thobe, shemagh, etc).
//
// Price / CompareAtPrice are in minor currency units (cents). Price is the
// selling price; CompareAtPrice is the base ("was") price shown struck
// through. Either may be 0 (unset).
//
// CreatedAtMillis is epoch milliseconds. Creation timestamps arrive from the
// data source in more than one shape (native timestamp, seconds-based server
// timestamp); adapters normalize to millis BEFORE the value reaches sorting.
type Product struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`

	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`

	Price          int `json:"price"`
	CompareAtPrice int `json:"compareAtPrice,omitempty"`

	Sizes  []string `json:"sizes,omitempty"`
	Colors []string `json:"colors,omitempty"`
	Sleeve Sleeve   `json:"sleeve,omitempty"`

	// Category is the audience/category tag (e.g., "men", "boys", "shemagh").
	Category string `json:"category"`

	Featured bool `json:"featured,omitempty"`
	InStock  bool `json:"inStock"`

	CreatedAtMillis int64 `json:"createdAtMillis"`
}

// EffectivePrice is the price used for filtering and sorting: Price when set,
// falling back to CompareAtPrice.
func (p Product) EffectivePrice() int {
	if p.Price > 0 {
		return p.Price
	}
	return p.CompareAtPrice
}

// PrimaryImage returns the first image URL (empty string when none).
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Validate checks the fields required to publish a product.
func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return WrapInvalid(nil, "id is required")
	}
	if strings.TrimSpace(p.Slug) == "" {
		return WrapInvalid(nil, "slug is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return WrapInvalid(nil, "name is required")
	}
	if strings.TrimSpace(p.Category) == "" {
		return WrapInvalid(nil, "category is required")
	}
	if p.Price < 0 || p.CompareAtPrice < 0 {
		return WrapInvalid(nil, "price must not be negative")
	}
	if !IsValidSleeve(p.Sleeve) {
		return WrapInvalid(nil, fmt.Sprintf("unknown sleeve %q", p.Sleeve))
	}
	return nil
}

// Patch represents partial updates to Product fields. A nil field means "no change".
type Patch struct {
	Slug        *string
	Name        *string
	Description *string
	Images      *[]string

	Price          *int
	CompareAtPrice *int

	Sizes  *[]string
	Colors *[]string
	Sleeve *Sleeve

	Category *string
	Featured *bool
	InStock  *bool
}
