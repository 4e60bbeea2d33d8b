package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Statuts de commande
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// Statuts par ligne (côté vendeur, indépendants du statut de la commande)
const (
	ItemPreparing = "preparando"
	ItemReady     = "listo"
	ItemShipped   = "enviado"
	ItemDelivered = "entregado"
)

// Méthodes de paiement
const (
	PaymentMercadoPago = "mercadopago"
	PaymentSimulated   = "simulacion"
)

type Order struct {
	ID            gocql.UUID  `json:"id"`
	UserID        string      `json:"user_id"`
	Total         float64     `json:"total"`
	Status        string      `json:"status"`
	PaymentMethod string      `json:"payment_method"`
	ContactName   string      `json:"contact_name"`
	ContactEmail  string      `json:"contact_email"`
	Address       string      `json:"address"`
	Phone         string      `json:"phone"`
	Shipping      string      `json:"shipping"`
	ShippingFee   float64     `json:"shipping_fee"`
	PaymentID     string      `json:"payment_id,omitempty"`
	PreferenceID  string      `json:"preference_id,omitempty"`
	PickupQR      string      `json:"pickup_qr,omitempty"`
	Items         []OrderItem `json:"items,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// OrderItem : snapshot dénormalisé d'un produit au moment de l'achat.
// ProductID peut pointer vers un produit supprimé, le nom et le prix survivent.
type OrderItem struct {
	ItemID    gocql.UUID `json:"item_id"`
	ProductID string     `json:"product_id"`
	SellerID  string     `json:"seller_id"`
	Name      string     `json:"name"`
	UnitPrice float64    `json:"unit_price"`
	Quantity  int        `json:"quantity"`
	Status    string     `json:"status"`
}

// orderTransitions : machine à états des commandes.
// pending → processing → shipped → delivered ; cancelled depuis pending/processing.
var orderTransitions = map[string][]string{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderDelivered, OrderCancelled},
	OrderShipped:    {OrderDelivered},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

// CanTransition indique si le passage from → to est autorisé.
// Une transition vers le statut courant est un no-op toléré (webhooks rejoués).
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

func IsItemStatus(s string) bool {
	switch s {
	case ItemPreparing, ItemReady, ItemShipped, ItemDelivered:
		return true
	}
	return false
}

// MapProviderStatus traduit un statut MercadoPago en statut de commande.
// Statut inconnu → chaîne vide (l'appelant ignore l'événement).
func MapProviderStatus(provider string) string {
	switch provider {
	case "approved", "accredited":
		return OrderProcessing
	case "pending", "in_process":
		return OrderPending
	case "cancelled", "rejected":
		return OrderCancelled
	}
	return ""
}

// DistinctSellers retourne les vendeurs distincts parmi les lignes d'une commande.
func DistinctSellers(items []OrderItem) []string {
	seen := make(map[string]bool)
	var sellers []string
	for _, item := range items {
		if item.SellerID != "" && !seen[item.SellerID] {
			seen[item.SellerID] = true
			sellers = append(sellers, item.SellerID)
		}
	}
	return sellers
}
