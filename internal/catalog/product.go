package catalog

// Product is the catalog's unit of stock. UUID is assigned by the loader
// when the catalog is (re)loaded and is stable for the session; ID is
// whatever identifier the upstream feed carries and is not guaranteed
// unique.
type Product struct {
	UUID            string `json:"uuid"`
	ID              string `json:"id"`
	Name            string `json:"name"`
	Img             string `json:"img"`
	PriceCents      int64  `json:"price_cents"`
	AvailableAmount int    `json:"available_amount"`
	MinOrderAmount  int    `json:"min_order_amount"`
	// OrderAmount tracks the net quantity committed to carts. Collaborators
	// may read it for analytics; totals never depend on it.
	OrderAmount int `json:"order_amount"`
}
