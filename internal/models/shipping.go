package models

// Modes de livraison et frais fixes (en pesos)
const (
	ShippingPickup   = "retiro"
	ShippingStandard = "estandar"
	ShippingExpress  = "express"
)

var shippingFees = map[string]float64{
	ShippingPickup:   0,
	ShippingStandard: 1500,
	ShippingExpress:  3000,
}

// ShippingFee retourne le tarif du mode demandé.
// Mode inconnu → ok=false, le checkout rejette la requête.
func ShippingFee(method string) (float64, bool) {
	fee, ok := shippingFees[method]
	return fee, ok
}

type ShippingOption struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	EstimatedDays int     `json:"estimated_days"`
}
