package catalog

// ValidOrder reports whether quantity is orderable for p. It is the one
// predicate every ordering gate shares: Reserve and the cart's quantity
// updates must never diverge on the bounds.
func ValidOrder(p Product, quantity int) bool {
	return quantity >= p.MinOrderAmount && quantity <= p.AvailableAmount
}
