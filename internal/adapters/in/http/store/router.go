package store

import (
	"log"
	"net/http"
)

// Deps is the buyer-facing (store) handler set.
type Deps struct {
	Catalog  http.Handler
	Product  http.Handler
	Category http.Handler
	Cart     http.Handler
	Checkout http.Handler
}

// handleSafe registers pattern with h.
// If h is nil, it logs and registers NotFoundHandler instead (so a half
// configured container cannot crash the server).
func handleSafe(mux *http.ServeMux, pattern string, h http.Handler, name string) {
	if h == nil {
		log.Printf("[store.router] WARN: nil handler: %s pattern=%s (registering NotFoundHandler)", name, pattern)
		h = http.NotFoundHandler()
	}
	mux.Handle(pattern, h)
}

// Register registers buyer-facing routes onto mux (store only).
func Register(mux *http.ServeMux, deps Deps) {
	if mux == nil {
		return
	}

	// catalog listing
	handleSafe(mux, "/store/catalog", deps.Catalog, "Catalog")
	handleSafe(mux, "/store/catalog/", deps.Catalog, "Catalog")

	// product page
	handleSafe(mux, "/store/products/", deps.Product, "Product")

	// navigation
	handleSafe(mux, "/store/categories", deps.Category, "Category")
	handleSafe(mux, "/store/categories/", deps.Category, "Category")

	// cart
	handleSafe(mux, "/store/cart", deps.Cart, "Cart")
	handleSafe(mux, "/store/cart/", deps.Cart, "Cart")

	// checkout
	handleSafe(mux, "/store/checkout", deps.Checkout, "Checkout")
	handleSafe(mux, "/store/checkout/", deps.Checkout, "Checkout")
}
