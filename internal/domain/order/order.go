package order

import (
	"sort"
	"strings"
)

// Status represents the normalized fulfillment status of an order.
// Every source must produce one of these values at its boundary.
type Status string

const (
	StatusDelivered     Status = "DELIVERED"
	StatusShipped       Status = "SHIPPED"
	StatusReadyToShip   Status = "READY_TO_SHIP"
	StatusWaitingPickup Status = "WAITING_PICKUP"
)

// IsValid checks if the status is part of the fixed vocabulary
func (s Status) IsValid() bool {
	switch s {
	case StatusDelivered, StatusShipped, StatusReadyToShip, StatusWaitingPickup:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsPending reports whether the status counts toward the pending summary
func (s Status) IsPending() bool {
	return s == StatusReadyToShip || s == StatusWaitingPickup
}

// NormalizeStatus maps a raw source status onto the fixed vocabulary.
// Relational sources store lowercase values, so input is upper-cased first.
// Unrecognized values (including the relational default "pending") map to
// READY_TO_SHIP rather than propagating arbitrary strings.
func NormalizeStatus(raw string) Status {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if s.IsValid() {
		return s
	}
	return StatusReadyToShip
}

// MarketplaceInfo carries denormalized display metadata, attached to
// orders only in multi-marketplace contexts
type MarketplaceInfo struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Order is the canonical purchase record normalized across sources.
// Field values are never null; absent data renders as an empty string.
// OrderID is unique only within a marketplace; unified results key on
// the (marketplace, orderId) pair.
type Order struct {
	OrderID         string           `json:"orderId"`
	Buyer           string           `json:"buyer"`
	Product         string           `json:"product"`
	Status          Status           `json:"status"`
	Address         string           `json:"address"`
	Marketplace     string           `json:"marketplace,omitempty"`
	MarketplaceInfo *MarketplaceInfo `json:"marketplaceInfo,omitempty"`
}

// Tag returns a copy of the order carrying marketplace identity and
// display metadata for unified result sets
func (o Order) Tag(slug string, info MarketplaceInfo) Order {
	o.Marketplace = slug
	o.MarketplaceInfo = &info
	return o
}

// SortByOrderID orders a merged set ascending by orderId using plain
// lexicographic comparison. This is a stable tie-break across sources,
// not a business-meaningful order.
func SortByOrderID(orders []Order) {
	// stable so equal IDs keep marketplace-enumeration order
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderID < orders[j].OrderID
	})
}
