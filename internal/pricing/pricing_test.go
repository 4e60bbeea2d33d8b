package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tienda_backend/internal/models"
)

func TestDiscountedUnitPrice(t *testing.T) {
	assert.Equal(t, 90.0, DiscountedUnitPrice(100, 10))
	assert.Equal(t, 100.0, DiscountedUnitPrice(100, 0))
	assert.Equal(t, 0.0, DiscountedUnitPrice(100, 100))
	// arrondi à 2 décimales
	assert.Equal(t, 33.33, DiscountedUnitPrice(49.99, 33.33))
	// pct négatif traité comme absence de réduction
	assert.Equal(t, 100.0, DiscountedUnitPrice(100, -5))
}

func TestLineSubtotal(t *testing.T) {
	assert.Equal(t, 180.0, LineSubtotal(90, 2))
	assert.Equal(t, 0.3, LineSubtotal(0.1, 3))
}

func TestCheckoutTotal(t *testing.T) {
	// Scénario de référence : 100 × 0.9 × 2 + 1500 = 1680.00
	lines := []models.CartLine{
		{ProductID: "a", UnitPrice: 100, Quantity: 2},
	}
	assert.Equal(t, 1680.0, CheckoutTotal(lines, 10, 1500))
}

func TestCheckoutTotal_NoDiscountNoShipping(t *testing.T) {
	lines := []models.CartLine{
		{UnitPrice: 100, Quantity: 2},
		{UnitPrice: 50.5, Quantity: 1},
	}
	assert.Equal(t, 250.5, CheckoutTotal(lines, 0, 0))
}

func TestCheckoutTotal_EmptyCart(t *testing.T) {
	assert.Equal(t, 0.0, CheckoutTotal(nil, 10, 0))
	// les frais de livraison s'appliquent quand même (le checkout rejette
	// le panier vide bien avant ce calcul)
	assert.Equal(t, 1500.0, CheckoutTotal(nil, 0, 1500))
}

func TestCheckoutTotal_RoundsPerUnit(t *testing.T) {
	// La réduction s'applique au prix unitaire arrondi, pas au sous-total :
	// 66.67 × 0.5001 = 33.3417 → 33.34, × 3 = 100.02
	lines := []models.CartLine{
		{UnitPrice: 66.67, Quantity: 3},
	}
	assert.Equal(t, 100.02, CheckoutTotal(lines, 49.99, 0))
}

func TestCartTotal(t *testing.T) {
	lines := []models.CartLine{
		{UnitPrice: 10, Quantity: 2},
		{UnitPrice: 5, Quantity: 3},
	}
	assert.Equal(t, 35.0, CartTotal(lines))
	assert.Equal(t, 0.0, CartTotal(nil))
}
