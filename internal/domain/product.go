package domain

// Product represents a catalog product as served by the backend.
// Products are read-only on the storefront side: they are fetched on a
// catalog query and never mutated locally.
type Product struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Category string  `json:"category,omitempty"`
	Brand    string  `json:"brand,omitempty"`
	Image    string  `json:"image,omitempty"`
}

// Category represents a catalog category.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
