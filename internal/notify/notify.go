// Package notify persiste les notifications et les pousse en temps réel.
// Appelé explicitement par les handlers après leurs écritures, jamais
// implicitement : une notification perdue ne doit pas annuler une commande.
package notify

import (
	"log"
	"time"

	"tienda_backend/internal/database"
	"tienda_backend/internal/models"
	"tienda_backend/internal/ws"

	"github.com/gocql/gocql"
)

// Create enregistre une notification et la pousse sur le WebSocket.
// Les erreurs sont loggées, jamais propagées.
func Create(userID, notifType, message, orderID string) {
	session, err := database.GetUsersSession()
	if err != nil {
		log.Printf("❌ Erreur création notification: %v", err)
		return
	}

	notif := models.Notification{
		ID:        gocql.TimeUUID(),
		UserID:    userID,
		Type:      notifType,
		Message:   message,
		OrderID:   orderID,
		Read:      false,
		CreatedAt: time.Now(),
	}

	err = session.Query(`
		INSERT INTO notifications (notification_id, user_id, type, message, order_id, read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		notif.ID, notif.UserID, notif.Type, notif.Message,
		notif.OrderID, notif.Read, notif.CreatedAt).Exec()
	if err != nil {
		log.Printf("❌ Erreur insertion notification pour %s: %v", userID, err)
		return
	}

	ws.Push(userID, notif)
}

// OrderStatusChanged prévient l'acheteur d'un changement de statut.
func OrderStatusChanged(order models.Order, message string) {
	Create(order.UserID, models.NotifOrderStatus, message, order.ID.String())
}

// OrderConfirmed prévient l'acheteur que sa commande est confirmée.
func OrderConfirmed(order models.Order) {
	Create(order.UserID, models.NotifOrderConfirm,
		"Votre commande a été confirmée.", order.ID.String())
}

// NewSale prévient chaque vendeur distinct de la commande, une seule fois.
func NewSale(order models.Order) {
	for _, sellerID := range models.DistinctSellers(order.Items) {
		Create(sellerID, models.NotifNewSale,
			"Nouvelle vente ! Vous avez des produits à préparer.", order.ID.String())
	}
}

// NewMessage prévient le destinataire d'un message privé.
func NewMessage(toID, fromName string) {
	Create(toID, models.NotifNewMessage,
		"Nouveau message de "+fromName, "")
}
