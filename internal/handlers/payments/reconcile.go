package payments

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"tienda_backend/internal/checkout"
	"tienda_backend/internal/database"
	"tienda_backend/internal/models"
	"tienda_backend/internal/notify"
	"tienda_backend/internal/utils"

	"github.com/gocql/gocql"
)

// remplacé dans les tests
var timeNow = time.Now

// orderStore isole les accès Scylla du reconciliateur, remplacé dans
// les tests comme checkout.ProductLookup côté panier.
type orderStore interface {
	FindByReference(preferenceID, paymentID string) (*models.Order, bool)
	UpdateStatus(order *models.Order, newStatus, paymentID string) error
	LoadItems(orderID gocql.UUID) []models.OrderItem
}

type scyllaOrderStore struct{}

var orders orderStore = scyllaOrderStore{}

// FindByReference cherche une commande déjà matérialisée pour cet
// événement, d'abord par preference_id puis par payment_id.
func (scyllaOrderStore) FindByReference(preferenceID, paymentID string) (*models.Order, bool) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, false
	}

	scan := func(column, value string) (*models.Order, bool) {
		if value == "" {
			return nil, false
		}
		var o models.Order
		err := session.Query(fmt.Sprintf(`
			SELECT order_id, user_id, total, status, payment_method, contact_name,
				contact_email, address, phone, shipping, shipping_fee,
				payment_id, preference_id, pickup_qr, created_at
			FROM orders WHERE %s = ? LIMIT 1 ALLOW FILTERING`, column), value).
			Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.PaymentMethod,
				&o.ContactName, &o.ContactEmail, &o.Address, &o.Phone,
				&o.Shipping, &o.ShippingFee, &o.PaymentID, &o.PreferenceID,
				&o.PickupQR, &o.CreatedAt)
		if err != nil {
			return nil, false
		}
		return &o, true
	}

	if o, ok := scan("preference_id", preferenceID); ok {
		return o, true
	}
	return scan("payment_id", paymentID)
}

func (scyllaOrderStore) LoadItems(orderID gocql.UUID) []models.OrderItem {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil
	}

	var items []models.OrderItem
	iter := session.Query(`
		SELECT item_id, product_id, seller_id, name, unit_price, quantity, status
		FROM order_items WHERE order_id = ?`, orderID).Iter()

	var item models.OrderItem
	for iter.Scan(&item.ItemID, &item.ProductID, &item.SellerID,
		&item.Name, &item.UnitPrice, &item.Quantity, &item.Status) {
		items = append(items, item)
	}
	iter.Close()
	return items
}

// UpdateStatus applique une transition déjà validée et attache le
// payment_id si l'événement en porte un.
func (scyllaOrderStore) UpdateStatus(order *models.Order, newStatus, paymentID string) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	if paymentID == "" {
		paymentID = order.PaymentID
	}

	err = session.Query("UPDATE orders SET status = ?, payment_id = ? WHERE order_id = ?",
		newStatus, paymentID, order.ID).Exec()
	if err != nil {
		return err
	}

	order.Status = newStatus
	order.PaymentID = paymentID
	return nil
}

// buyerFromReference extrait l'acheteur d'une référence externe
// au format <userID>:<ref de passage en caisse>.
func buyerFromReference(externalRef string) string {
	if externalRef == "" {
		return ""
	}
	return strings.SplitN(externalRef, ":", 2)[0]
}

// Reconcile traite un événement de paiement, quelle que soit sa source
// (webhook ou URL de retour). Idempotent : un événement rejoué sur une
// commande déjà à jour est un no-op.
func Reconcile(ctx context.Context, externalRef, providerStatus, paymentID, preferenceID string) (*models.Order, error) {
	userID := buyerFromReference(externalRef)
	mapped := models.MapProviderStatus(providerStatus)
	if mapped == "" {
		return nil, fmt.Errorf("statut fournisseur inconnu: %s", providerStatus)
	}

	// Commande déjà matérialisée → simple transition
	if order, ok := orders.FindByReference(preferenceID, paymentID); ok {
		if order.Status == mapped {
			return order, nil // événement rejoué
		}
		if !models.CanTransition(order.Status, mapped) {
			log.Printf("⚠️ Transition ignorée pour %s: %s → %s", order.ID, order.Status, mapped)
			return order, nil
		}
		if err := orders.UpdateStatus(order, mapped, paymentID); err != nil {
			return nil, err
		}

		order.Items = orders.LoadItems(order.ID)
		notify.OrderStatusChanged(*order, utils.StatusMessage(mapped))
		if mapped == models.OrderProcessing {
			notify.NewSale(*order)
			go utils.SendOrderStatusEmail(*order, order.ContactEmail, mapped)
		}
		return order, nil
	}

	// Paiement refusé avant toute commande → rien à matérialiser
	if mapped == models.OrderCancelled {
		return nil, fmt.Errorf("paiement refusé, aucune commande à créer")
	}

	// Première nouvelle du paiement : matérialiser depuis l'intention
	if userID == "" {
		return nil, fmt.Errorf("référence externe manquante, impossible de matérialiser")
	}

	intent, err := checkout.Intents.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Les URLs de retour ne sont pas authentifiées : la référence doit être
	// exactement celle émise au départ du checkout, sinon n'importe qui
	// pourrait faire passer le panier d'autrui pour payé.
	if intent.Reference != externalRef {
		return nil, fmt.Errorf("référence externe inconnue pour %s", userID)
	}

	items, err := checkout.LoadCartItems(ctx, userID)
	if err != nil || len(items) == 0 {
		return nil, fmt.Errorf("panier introuvable pour %s", userID)
	}

	snapshot, err := checkout.BuildSnapshot(items, checkout.ScyllaProductLookup)
	if err != nil {
		return nil, err
	}

	shippingFee, _ := models.ShippingFee(intent.Shipping)
	pct := checkout.ResolveCouponPercent(intent.CouponCode, timeNow())

	order, err := checkout.MaterializeOrder(ctx, checkout.OrderInput{
		UserID:        userID,
		Lines:         snapshot.Lines,
		DiscountPct:   pct,
		Shipping:      intent.Shipping,
		ShippingFee:   shippingFee,
		PaymentMethod: models.PaymentMercadoPago,
		Status:        mapped,
		ContactName:   intent.ContactName,
		ContactEmail:  intent.ContactEmail,
		Address:       intent.Address,
		Phone:         intent.Phone,
		PaymentID:     paymentID,
		PreferenceID:  preferenceID,
	})
	if err != nil {
		return nil, err
	}

	checkout.Intents.Clear(ctx, userID)

	if mapped == models.OrderProcessing {
		afterOrderConfirmed(*order)
	}

	return order, nil
}
