package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{OrderPending, OrderProcessing, true},
		{OrderPending, OrderCancelled, true},
		{OrderProcessing, OrderShipped, true},
		{OrderProcessing, OrderDelivered, true},
		{OrderProcessing, OrderCancelled, true},
		{OrderShipped, OrderDelivered, true},

		{OrderPending, OrderShipped, false},
		{OrderPending, OrderDelivered, false},
		{OrderShipped, OrderCancelled, false},
		{OrderDelivered, OrderCancelled, false},
		{OrderDelivered, OrderShipped, false},
		{OrderCancelled, OrderProcessing, false},
		{OrderProcessing, OrderProcessing, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to),
			"%s → %s", tc.from, tc.to)
	}
}

func TestMapProviderStatus(t *testing.T) {
	assert.Equal(t, OrderProcessing, MapProviderStatus("approved"))
	assert.Equal(t, OrderProcessing, MapProviderStatus("accredited"))
	assert.Equal(t, OrderPending, MapProviderStatus("pending"))
	assert.Equal(t, OrderPending, MapProviderStatus("in_process"))
	assert.Equal(t, OrderCancelled, MapProviderStatus("cancelled"))
	assert.Equal(t, OrderCancelled, MapProviderStatus("rejected"))

	// statut inconnu → chaîne vide, l'événement est ignoré
	assert.Equal(t, "", MapProviderStatus("charged_back"))
	assert.Equal(t, "", MapProviderStatus(""))
}

func TestIsOrderStatus(t *testing.T) {
	assert.True(t, IsOrderStatus(OrderPending))
	assert.True(t, IsOrderStatus(OrderDelivered))
	assert.False(t, IsOrderStatus("paid"))
	assert.False(t, IsOrderStatus(""))
}

func TestIsItemStatus(t *testing.T) {
	assert.True(t, IsItemStatus(ItemPreparing))
	assert.True(t, IsItemStatus(ItemDelivered))
	assert.False(t, IsItemStatus(OrderShipped))
}

func TestDistinctSellers(t *testing.T) {
	items := []OrderItem{
		{SellerID: "a"},
		{SellerID: "b"},
		{SellerID: "a"},
		{SellerID: ""},
		{SellerID: "c"},
		{SellerID: "b"},
	}

	sellers := DistinctSellers(items)
	assert.Equal(t, []string{"a", "b", "c"}, sellers)
}

func TestDistinctSellersEmpty(t *testing.T) {
	assert.Empty(t, DistinctSellers(nil))
}
