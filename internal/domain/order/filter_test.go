package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func filterFixture() []Order {
	return []Order{
		{OrderID: "SPE-001", Buyer: "Ana Carolina", Product: "Fone Bluetooth", Status: StatusDelivered, Address: "Rua das Acácias, 120 - Jardim Paulista - São Paulo, SP"},
		{OrderID: "ML-101", Buyer: "Bruno Lima", Product: "Cafeteira", Status: StatusShipped, Address: "Avenida Paulista, 1000 - Bela Vista - São Paulo, SP"},
		{OrderID: "SHN-201", Buyer: "Carla Mendes", Product: "Vestido Floral", Status: StatusReadyToShip, Address: "Rua das Flores, 78 - Centro - Curitiba, PR"},
	}
}

func TestFilter(t *testing.T) {
	t.Run("empty term is a no-op", func(t *testing.T) {
		orders := filterFixture()
		assert.Len(t, Filter(orders, ""), 3)
		assert.Len(t, Filter(orders, "   "), 3)
	})

	t.Run("matches orderId case-insensitively", func(t *testing.T) {
		got := Filter(filterFixture(), "spe-001")
		assert.Len(t, got, 1)
		assert.Equal(t, "SPE-001", got[0].OrderID)
	})

	t.Run("matches buyer substring", func(t *testing.T) {
		got := Filter(filterFixture(), "carolina")
		assert.Len(t, got, 1)
		assert.Equal(t, "Ana Carolina", got[0].Buyer)
	})

	t.Run("matches product", func(t *testing.T) {
		got := Filter(filterFixture(), "cafeteira")
		assert.Len(t, got, 1)
		assert.Equal(t, "ML-101", got[0].OrderID)
	})

	t.Run("matches address", func(t *testing.T) {
		got := Filter(filterFixture(), "curitiba")
		assert.Len(t, got, 1)
		assert.Equal(t, "SHN-201", got[0].OrderID)
	})

	t.Run("matches status", func(t *testing.T) {
		got := Filter(filterFixture(), "ready_to_ship")
		assert.Len(t, got, 1)
		assert.Equal(t, "SHN-201", got[0].OrderID)
	})

	t.Run("term matching several fields returns each order once", func(t *testing.T) {
		// "paulista" hits the address of SPE-001 and of ML-101
		got := Filter(filterFixture(), "paulista")
		assert.Len(t, got, 2)
	})

	t.Run("no match returns empty non-nil slice", func(t *testing.T) {
		got := Filter(filterFixture(), "nonexistent")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestMatches(t *testing.T) {
	o := Order{OrderID: "SPE-001", Buyer: "O'Reilly", Status: StatusDelivered}
	assert.True(t, o.Matches("o'reilly"))
	assert.True(t, o.Matches("delivered"))
	assert.False(t, o.Matches("shipped"))
}
