package checkout

import (
	"fmt"
	"testing"

	"tienda_backend/internal/models"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeLookup(products map[string]*models.Product) ProductLookup {
	return func(productID string) (*models.Product, error) {
		p, ok := products[productID]
		if !ok {
			return nil, fmt.Errorf("produit introuvable: %s", productID)
		}
		return p, nil
	}
}

func TestBuildSnapshot(t *testing.T) {
	lookup := fakeLookup(map[string]*models.Product{
		"p1": {
			ID:        gocql.TimeUUID(),
			SellerID:  "seller-1",
			Name:      "Fernet",
			Price:     100,
			Stock:     8,
			ImageURLs: []string{"http://img/fernet.png"},
		},
		"p2": {
			ID:       gocql.TimeUUID(),
			SellerID: "seller-2",
			Name:     "Cerveza",
			Price:    33.33,
			Stock:    50,
		},
	})

	items := []models.CartItem{
		// le prix Redis est périmé exprès : le snapshot relit le produit
		{ProductID: "p1", Price: 42, Quantity: 2},
		{ProductID: "p2", Price: 33.33, Quantity: 3},
	}

	snapshot, err := BuildSnapshot(items, lookup)
	require.NoError(t, err)
	require.Len(t, snapshot.Lines, 2)

	assert.Equal(t, 100.0, snapshot.Lines[0].UnitPrice)
	assert.Equal(t, "seller-1", snapshot.Lines[0].SellerID)
	assert.Equal(t, 8, snapshot.Lines[0].Stock)
	assert.Equal(t, 200.0, snapshot.Lines[0].Subtotal)
	assert.Equal(t, "http://img/fernet.png", snapshot.Lines[0].ImageURL)

	assert.Equal(t, 99.99, snapshot.Lines[1].Subtotal)
	assert.Equal(t, 299.99, snapshot.Total)
}

func TestBuildSnapshotMissingProduct(t *testing.T) {
	lookup := fakeLookup(map[string]*models.Product{})

	_, err := BuildSnapshot([]models.CartItem{{ProductID: "ghost", Quantity: 1}}, lookup)
	assert.Error(t, err)
}

func TestBuildSnapshotEmptyCart(t *testing.T) {
	snapshot, err := BuildSnapshot(nil, fakeLookup(nil))
	require.NoError(t, err)
	assert.Empty(t, snapshot.Lines)
	assert.Equal(t, 0.0, snapshot.Total)
}

func TestBuildGatewayItems(t *testing.T) {
	lines := []models.CartLine{
		{Name: "Fernet", UnitPrice: 100, Quantity: 2},
		{Name: "Vino", UnitPrice: 2000, Quantity: 1},
	}

	items := BuildGatewayItems(lines, 10, 1500)
	require.Len(t, items, 3)

	assert.Equal(t, "Fernet", items[0].Title)
	assert.Equal(t, 90.0, items[0].UnitPrice)
	assert.Equal(t, 2, items[0].Quantity)

	assert.Equal(t, 1800.0, items[1].UnitPrice)

	// la livraison est une ligne à part
	assert.Equal(t, "Envío", items[2].Title)
	assert.Equal(t, 1, items[2].Quantity)
	assert.Equal(t, 1500.0, items[2].UnitPrice)
}

func TestBuildGatewayItemsNoShippingLine(t *testing.T) {
	lines := []models.CartLine{{Name: "Fernet", UnitPrice: 100, Quantity: 1}}

	// retiro : frais nuls, pas de ligne Envío
	items := BuildGatewayItems(lines, 0, 0)
	require.Len(t, items, 1)
	assert.Equal(t, "Fernet", items[0].Title)
}
