// Package checkout porte la logique partagée entre l'initiation du paiement
// et la réconciliation webhook/retour : snapshot du panier, intention de
// checkout en session Redis et construction des lignes pour la passerelle.
package checkout

import (
	"context"
	"encoding/json"
	"fmt"

	"tienda_backend/internal/database"
	"tienda_backend/internal/models"
	"tienda_backend/internal/payment"
	"tienda_backend/internal/pricing"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ErrEmptyCart bloque tout checkout sur panier vide.
var ErrEmptyCart = fmt.Errorf("le panier est vide")

// ProductLookup résout un produit par son id (prix et stock courants).
type ProductLookup func(productID string) (*models.Product, error)

// LoadCartItems lit le panier Redis de l'utilisateur (vide si absent).
func LoadCartItems(ctx context.Context, userID string) ([]models.CartItem, error) {
	data, err := database.Redis.Get(ctx, "cart:"+userID).Result()
	if err != nil || data == "" {
		return nil, nil
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("erreur lecture panier: %v", err)
	}
	return items, nil
}

// ScyllaProductLookup résout les produits dans le keyspace products.
func ScyllaProductLookup(productID string) (*models.Product, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("ID produit invalide: %s", productID)
	}

	var p models.Product
	err = session.Query(`SELECT product_id, seller_id, name, price, stock, image_urls
	                     FROM products WHERE product_id = ?`, gocql.UUID(pid)).
		Scan(&p.ID, &p.SellerID, &p.Name, &p.Price, &p.Stock, &p.ImageURLs)
	if err != nil {
		return nil, fmt.Errorf("produit introuvable: %s", productID)
	}
	return &p, nil
}

// BuildSnapshot joint les lignes du panier aux prix/stocks courants.
// Lecture seule : les sous-totaux utilisent le prix courant du produit,
// jamais le prix aperçu stocké dans Redis.
func BuildSnapshot(items []models.CartItem, lookup ProductLookup) (*models.CartSnapshot, error) {
	snapshot := &models.CartSnapshot{Lines: []models.CartLine{}}

	for _, item := range items {
		product, err := lookup(item.ProductID)
		if err != nil {
			return nil, err
		}

		imageURL := ""
		if len(product.ImageURLs) > 0 {
			imageURL = product.ImageURLs[0]
		}

		snapshot.Lines = append(snapshot.Lines, models.CartLine{
			ProductID: item.ProductID,
			SellerID:  product.SellerID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  item.Quantity,
			Stock:     product.Stock,
			Subtotal:  pricing.LineSubtotal(product.Price, item.Quantity),
			ImageURL:  imageURL,
		})
	}

	snapshot.Total = pricing.CartTotal(snapshot.Lines)
	return snapshot, nil
}

// BuildGatewayItems construit les lignes envoyées à la passerelle :
// prix unitaires déjà réduits, plus une ligne de livraison seulement
// si les frais sont non nuls.
func BuildGatewayItems(lines []models.CartLine, pct, shippingFee float64) []payment.Item {
	items := make([]payment.Item, 0, len(lines)+1)
	for _, line := range lines {
		items = append(items, payment.Item{
			Title:     line.Name,
			Quantity:  line.Quantity,
			UnitPrice: pricing.DiscountedUnitPrice(line.UnitPrice, pct),
		})
	}
	if shippingFee > 0 {
		items = append(items, payment.Item{
			Title:     "Envío",
			Quantity:  1,
			UnitPrice: shippingFee,
		})
	}
	return items
}
