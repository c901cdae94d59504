package dto

// CatalogItemDTO is one card on a listing page.
type CatalogItemDTO struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`

	Price          int `json:"price"`
	CompareAtPrice int `json:"compareAtPrice,omitempty"`

	Sizes  []string `json:"sizes,omitempty"`
	Colors []string `json:"colors,omitempty"`
	Sleeve string   `json:"sleeve,omitempty"`

	Category string `json:"category"`
	Featured bool   `json:"featured,omitempty"`
	InStock  bool   `json:"inStock"`

	CreatedAtMillis int64 `json:"createdAtMillis"`
}

// CatalogDTO is the listing-page response.
type CatalogDTO struct {
	Items []CatalogItemDTO `json:"items"`
	Total int              `json:"total"`
}

// ProductDetailDTO is the product-page response.
type ProductDetailDTO struct {
	CatalogItemDTO
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
}
