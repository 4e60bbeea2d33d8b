// Package order : historique, suivi et transitions de statut des commandes.
package order

import (
	"log"
	"net/http"
	"sort"

	"tienda_backend/internal/database"
	"tienda_backend/internal/models"
	"tienda_backend/internal/notify"
	"tienda_backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

func loadOrder(orderID string) (*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	oid, err := gocql.ParseUUID(orderID)
	if err != nil {
		return nil, err
	}

	var o models.Order
	err = session.Query(`
		SELECT order_id, user_id, total, status, payment_method, contact_name,
			contact_email, address, phone, shipping, shipping_fee,
			payment_id, preference_id, pickup_qr, created_at
		FROM orders WHERE order_id = ?`, oid).
		Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.PaymentMethod,
			&o.ContactName, &o.ContactEmail, &o.Address, &o.Phone,
			&o.Shipping, &o.ShippingFee, &o.PaymentID, &o.PreferenceID,
			&o.PickupQR, &o.CreatedAt)
	if err != nil {
		return nil, err
	}

	o.Items = loadItems(o.ID)
	return &o, nil
}

func loadItems(orderID gocql.UUID) []models.OrderItem {
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

func isSellerOnOrder(order *models.Order, userID string) bool {
	for _, item := range order.Items {
		if item.SellerID == userID {
			return true
		}
	}
	return false
}

// 🟢 GET /api/orders
// Les commandes de l'acheteur, plus récentes d'abord.
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	var orders []models.Order
	iter := session.Query(`
		SELECT order_id, user_id, total, status, payment_method, shipping,
			shipping_fee, pickup_qr, created_at
		FROM orders WHERE user_id = ? ALLOW FILTERING`, userID).Iter()

	var o models.Order
	for iter.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.PaymentMethod,
		&o.Shipping, &o.ShippingFee, &o.PickupQR, &o.CreatedAt) {
		orders = append(orders, o)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	c.JSON(http.StatusOK, orders)
}

// 🟢 GET /api/orders/sales
// Les ventes du vendeur : ses lignes, regroupées par commande.
func GetMySales(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	type saleLine struct {
		OrderID string           `json:"order_id"`
		Item    models.OrderItem `json:"item"`
	}

	var sales []saleLine
	iter := session.Query(`
		SELECT order_id, item_id, product_id, seller_id, name, unit_price, quantity, status
		FROM order_items WHERE seller_id = ? ALLOW FILTERING`, userID).Iter()

	var orderID gocql.UUID
	var item models.OrderItem
	for iter.Scan(&orderID, &item.ItemID, &item.ProductID, &item.SellerID,
		&item.Name, &item.UnitPrice, &item.Quantity, &item.Status) {
		sales = append(sales, saleLine{OrderID: orderID.String(), Item: item})
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sales)
}

// 🟢 GET /api/orders/:id
// Visible par l'acheteur et par tout vendeur présent sur la commande.
func GetOrder(c *gin.Context) {
	userID := c.GetString("user_id")

	order, err := loadOrder(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if order.UserID != userID && !isSellerOnOrder(order, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès refusé"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// 🟢 PUT /api/orders/:id/status
// L'acheteur peut annuler tant que rien n'est expédié, un vendeur de la
// commande peut la marquer expédiée. Toute autre transition est refusée
// par la machine à états.
func UpdateOrderStatus(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.IsOrderStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu"})
		return
	}

	order, err := loadOrder(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	isBuyer := order.UserID == userID
	isSeller := isSellerOnOrder(order, userID)

	switch input.Status {
	case models.OrderCancelled:
		if !isBuyer {
			c.JSON(http.StatusForbidden, gin.H{"error": "Seul l'acheteur peut annuler"})
			return
		}
	case models.OrderShipped:
		if !isSeller {
			c.JSON(http.StatusForbidden, gin.H{"error": "Seul un vendeur peut expédier"})
			return
		}
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "Transition réservée"})
		return
	}

	if !models.CanTransition(order.Status, input.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Transition impossible depuis " + order.Status,
		})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	err = session.Query("UPDATE orders SET status = ? WHERE order_id = ?",
		input.Status, order.ID).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	order.Status = input.Status
	notify.OrderStatusChanged(*order, utils.StatusMessage(input.Status))
	go utils.SendOrderStatusEmail(*order, order.ContactEmail, input.Status)

	log.Printf("✅ Commande %s → %s", order.ID, input.Status)
	c.JSON(http.StatusOK, order)
}

// 🟢 PUT /api/orders/:id/items/:itemId/status
// Statut par ligne, réservé au vendeur de la ligne.
func UpdateItemStatus(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.IsItemStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut de ligne inconnu"})
		return
	}

	order, err := loadOrder(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	itemID, err := gocql.ParseUUID(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de ligne invalide"})
		return
	}

	var target *models.OrderItem
	for i := range order.Items {
		if order.Items[i].ItemID == itemID {
			target = &order.Items[i]
			break
		}
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ligne introuvable"})
		return
	}
	if target.SellerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cette ligne ne vous appartient pas"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	err = session.Query("UPDATE order_items SET status = ? WHERE order_id = ? AND item_id = ?",
		input.Status, order.ID, itemID).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	target.Status = input.Status
	c.JSON(http.StatusOK, target)
}

// 🟢 POST /api/orders/:id/confirmar
// L'acheteur confirme la réception : la commande passe à delivered et
// chaque vendeur distinct reçoit exactement une notification.
func ConfirmDelivery(c *gin.Context) {
	userID := c.GetString("user_id")

	order, err := loadOrder(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	if order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Seul l'acheteur peut confirmer"})
		return
	}

	if order.Status == models.OrderDelivered {
		c.JSON(http.StatusOK, order) // déjà confirmée
		return
	}
	if !models.CanTransition(order.Status, models.OrderDelivered) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Confirmation impossible depuis " + order.Status,
		})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	err = session.Query("UPDATE orders SET status = ? WHERE order_id = ?",
		models.OrderDelivered, order.ID).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	order.Status = models.OrderDelivered

	// Une notification par vendeur distinct, jamais deux
	for _, sellerID := range models.DistinctSellers(order.Items) {
		notify.Create(sellerID, models.NotifOrderStatus,
			"L'acheteur a confirmé la réception de la commande.", order.ID.String())
	}
	notify.OrderStatusChanged(*order, utils.StatusMessage(models.OrderDelivered))
	go utils.SendOrderStatusEmail(*order, order.ContactEmail, models.OrderDelivered)

	log.Printf("🎉 Réception confirmée pour la commande %s", order.ID)
	c.JSON(http.StatusOK, order)
}

// 🟢 GET /api/orders/:id/qr
// QR de retrait, réservé à l'acheteur des commandes en retiro.
func GetPickupQR(c *gin.Context) {
	userID := c.GetString("user_id")

	order, err := loadOrder(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	if order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès refusé"})
		return
	}
	if order.PickupQR == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cette commande n'est pas en retrait"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order_id": order.ID.String(), "qr": order.PickupQR})
}
