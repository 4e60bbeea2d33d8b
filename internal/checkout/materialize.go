package checkout

import (
	"context"
	"fmt"
	"log"
	"time"

	"tienda_backend/internal/database"
	"tienda_backend/internal/models"
	"tienda_backend/internal/pricing"
	"tienda_backend/internal/utils"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// OrderInput : tout ce qu'il faut pour matérialiser une commande,
// quelle que soit la branche (paiement local, retour passerelle).
type OrderInput struct {
	UserID        string
	Lines         []models.CartLine
	DiscountPct   float64
	Shipping      string
	ShippingFee   float64
	PaymentMethod string
	Status        string
	ContactName   string
	ContactEmail  string
	Address       string
	Phone         string
	PaymentID     string
	PreferenceID  string
}

// MaterializeOrder crée la commande et ses lignes en un seul batch loggé,
// décrémente les stocks (plancher à zéro) puis vide le panier Redis.
// La commande et ses lignes sont tout-ou-rien ; les stocks suivent juste
// après, Scylla n'offrant pas de transaction inter-partitions.
func MaterializeOrder(ctx context.Context, in OrderInput) (*models.Order, error) {
	if len(in.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	total := pricing.CheckoutTotal(in.Lines, in.DiscountPct, in.ShippingFee)
	orderID := gocql.TimeUUID()
	now := time.Now()

	order := models.Order{
		ID:            orderID,
		UserID:        in.UserID,
		Total:         total,
		Status:        in.Status,
		PaymentMethod: in.PaymentMethod,
		ContactName:   in.ContactName,
		ContactEmail:  in.ContactEmail,
		Address:       in.Address,
		Phone:         in.Phone,
		Shipping:      in.Shipping,
		ShippingFee:   in.ShippingFee,
		PaymentID:     in.PaymentID,
		PreferenceID:  in.PreferenceID,
		CreatedAt:     now,
	}

	// QR de retrait pour les commandes à retirer sur place
	if in.Shipping == models.ShippingPickup {
		if qr, err := utils.GeneratePickupQR(orderID.String()); err == nil {
			order.PickupQR = qr
		} else {
			log.Printf("⚠️ Erreur génération QR retrait: %v", err)
		}
	}

	batch := ordersSession.NewBatch(gocql.LoggedBatch)
	batch.Query(`
		INSERT INTO orders (order_id, user_id, total, status, payment_method,
			contact_name, contact_email, address, phone, shipping, shipping_fee,
			payment_id, preference_id, pickup_qr, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.UserID, order.Total, order.Status, order.PaymentMethod,
		order.ContactName, order.ContactEmail, order.Address, order.Phone,
		order.Shipping, order.ShippingFee, order.PaymentID, order.PreferenceID,
		order.PickupQR, order.CreatedAt)

	for _, line := range in.Lines {
		item := models.OrderItem{
			ItemID:    gocql.TimeUUID(),
			ProductID: line.ProductID,
			SellerID:  line.SellerID,
			Name:      line.Name,
			UnitPrice: pricing.DiscountedUnitPrice(line.UnitPrice, in.DiscountPct),
			Quantity:  line.Quantity,
			Status:    models.ItemPreparing,
		}
		order.Items = append(order.Items, item)

		batch.Query(`
			INSERT INTO order_items (order_id, item_id, product_id, seller_id,
				name, unit_price, quantity, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			order.ID, item.ItemID, item.ProductID, item.SellerID,
			item.Name, item.UnitPrice, item.Quantity, item.Status)
	}

	if err := ordersSession.ExecuteBatch(batch); err != nil {
		return nil, fmt.Errorf("erreur création commande: %v", err)
	}

	// Décrément des stocks, plancher à zéro
	productsSession, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	for _, line := range in.Lines {
		newStock := line.Stock - line.Quantity
		if newStock < 0 {
			newStock = 0
		}
		pid, err := uuid.Parse(line.ProductID)
		if err != nil {
			continue
		}
		if err := productsSession.Query(
			"UPDATE products SET stock = ?, updated_at = ? WHERE product_id = ?",
			newStock, now, gocql.UUID(pid)).Exec(); err != nil {
			log.Printf("⚠️ Erreur décrément stock produit %s: %v", line.ProductID, err)
		}
	}

	// Le panier est vidé APRÈS la commande
	if err := database.Redis.Del(ctx, "cart:"+in.UserID).Err(); err == nil {
		log.Printf("🧹 Panier vidé pour %s", in.UserID)
	}

	log.Printf("✅ Commande %s créée (%.2f, %s) pour %s",
		orderID, total, in.PaymentMethod, in.UserID)

	return &order, nil
}
