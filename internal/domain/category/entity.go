package category

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("category: not found")
	ErrInvalid  = errors.New("category: invalid")
)

// Category is a browsing scope for the storefront (e.g., "men", "boys",
// "shemagh"). Slug is the URL segment and the value products carry in their
// category field.
type Category struct {
	ID   string `json:"id" firestore:"id"`
	Slug string `json:"slug" firestore:"slug"`
	Name string `json:"name" firestore:"name"`

	Image        string `json:"image,omitempty" firestore:"image"`
	DisplayOrder int    `json:"displayOrder" firestore:"displayOrder"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

func New(id, slug, name string, now time.Time) (*Category, error) {
	c := &Category{
		ID:        strings.TrimSpace(id),
		Slug:      strings.TrimSpace(slug),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Category) Validate() error {
	if c == nil {
		return ErrInvalid
	}
	if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Slug) == "" || strings.TrimSpace(c.Name) == "" {
		return ErrInvalid
	}
	return nil
}

// Patch represents partial updates. A nil field means "no change".
type Patch struct {
	Slug         *string
	Name         *string
	Image        *string
	DisplayOrder *int
}
