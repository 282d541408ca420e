package order

import "strings"

// Filter returns the subsequence of orders where the search term appears
// as a case-insensitive substring in at least one of: orderId, buyer,
// product, address, status. An empty or whitespace-only term is a no-op
// returning the input unchanged.
//
// The relational source pushes the same predicate into SQL as
// LOWER(col) LIKE '%term%' over the same five fields; the two paths must
// stay equivalent.
func Filter(orders []Order, term string) []Order {
	term = strings.TrimSpace(term)
	if term == "" {
		return orders
	}

	needle := strings.ToLower(term)
	matched := make([]Order, 0, len(orders))
	for _, o := range orders {
		if o.Matches(needle) {
			matched = append(matched, o)
		}
	}
	return matched
}

// Matches reports whether the lowercase needle occurs in any of the
// order's searchable fields. The needle must already be lowercase.
func (o Order) Matches(needle string) bool {
	return strings.Contains(strings.ToLower(o.OrderID), needle) ||
		strings.Contains(strings.ToLower(o.Buyer), needle) ||
		strings.Contains(strings.ToLower(o.Product), needle) ||
		strings.Contains(strings.ToLower(o.Address), needle) ||
		strings.Contains(strings.ToLower(string(o.Status)), needle)
}
