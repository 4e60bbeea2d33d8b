package payment

import "context"

// Item : une ligne facturée sur la page de paiement hébergée
// (produits à prix réduit + éventuelle ligne de livraison).
type Item struct {
	Title     string
	Quantity  int
	UnitPrice float64
}

// CheckoutRequest : ce que le checkout transmet à la passerelle.
type CheckoutRequest struct {
	Items             []Item
	PayerName         string
	PayerEmail        string
	ExternalReference string
	Metadata          map[string]any
}

// Session : la session de paiement hébergée créée chez le fournisseur.
type Session struct {
	PreferenceID string
	RedirectURL  string
}

// Gateway : interface explicite vers la passerelle de paiement,
// pour que le checkout et les tests ne dépendent pas du SDK.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*Session, error)
}

// Default : passerelle globale, initialisée au démarrage
var Default Gateway
