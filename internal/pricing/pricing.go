// Package pricing centralise le calcul des montants du checkout.
// Tout le calcul passe par decimal pour éviter les dérives float,
// les float64 ne servent qu'aux modèles et au JSON.
package pricing

import (
	"github.com/shopspring/decimal"

	"tienda_backend/internal/models"
)

var hundred = decimal.NewFromInt(100)

// DiscountedUnitPrice applique un pourcentage de réduction à un prix unitaire,
// arrondi à 2 décimales : round(prix × (100 − pct) / 100, 2).
func DiscountedUnitPrice(price, pct float64) float64 {
	p := decimal.NewFromFloat(price)
	if pct <= 0 {
		return p.Round(2).InexactFloat64()
	}
	factor := hundred.Sub(decimal.NewFromFloat(pct)).Div(hundred)
	return p.Mul(factor).Round(2).InexactFloat64()
}

// LineSubtotal = prix unitaire × quantité, arrondi à 2 décimales.
func LineSubtotal(unitPrice float64, quantity int) float64 {
	return decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(int64(quantity))).
		Round(2).InexactFloat64()
}

// CheckoutTotal = Σ(prix unitaire réduit × quantité) + frais de livraison.
// C'est LE calcul du total, utilisé par les deux branches du checkout et
// par la réconciliation au retour de la passerelle.
func CheckoutTotal(lines []models.CartLine, pct, shippingFee float64) float64 {
	sum := decimal.Zero
	for _, line := range lines {
		unit := decimal.NewFromFloat(DiscountedUnitPrice(line.UnitPrice, pct))
		sum = sum.Add(unit.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	sum = sum.Add(decimal.NewFromFloat(shippingFee))
	if sum.IsNegative() {
		sum = decimal.Zero
	}
	return sum.Round(2).InexactFloat64()
}

// CartTotal = Σ(prix unitaire courant × quantité), sans réduction ni livraison.
func CartTotal(lines []models.CartLine) float64 {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(decimal.NewFromFloat(line.UnitPrice).
			Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return sum.Round(2).InexactFloat64()
}
