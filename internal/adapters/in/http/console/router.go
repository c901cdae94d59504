package console

import (
	"log"
	"net/http"
)

// Deps is the back-office (console) handler set.
type Deps struct {
	Product  http.Handler
	Category http.Handler
	Image    http.Handler
	Sales    http.Handler
}

// handleSafe registers pattern with h.
// If h is nil, it logs and registers NotFoundHandler instead (so a half
// configured container cannot crash the server).
func handleSafe(mux *http.ServeMux, pattern string, h http.Handler, name string) {
	if h == nil {
		log.Printf("[console.router] WARN: nil handler: %s pattern=%s (registering NotFoundHandler)", name, pattern)
		h = http.NotFoundHandler()
	}
	mux.Handle(pattern, h)
}

// Register registers back-office routes onto mux (console only).
func Register(mux *http.ServeMux, deps Deps) {
	if mux == nil {
		return
	}

	// products
	handleSafe(mux, "/console/products", deps.Product, "Product")
	handleSafe(mux, "/console/products/", deps.Product, "Product")

	// categories
	handleSafe(mux, "/console/categories", deps.Category, "Category")
	handleSafe(mux, "/console/categories/", deps.Category, "Category")

	// image upload
	handleSafe(mux, "/console/product-images", deps.Image, "Image")
	handleSafe(mux, "/console/product-images/", deps.Image, "Image")

	// sales report
	handleSafe(mux, "/console/sales", deps.Sales, "Sales")
	handleSafe(mux, "/console/sales/", deps.Sales, "Sales")
}
