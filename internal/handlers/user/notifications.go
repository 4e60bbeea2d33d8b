package user

import (
	"net/http"
	"sort"

	"tienda_backend/internal/database"
	"tienda_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// 🟢 GET /api/notifications
func GetNotifications(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	var notifications []models.Notification
	iter := session.Query(`
		SELECT notification_id, user_id, type, message, order_id, read, created_at
		FROM notifications WHERE user_id = ? ALLOW FILTERING`, userID).Iter()

	var n models.Notification
	for iter.Scan(&n.ID, &n.UserID, &n.Type, &n.Message, &n.OrderID, &n.Read, &n.CreatedAt) {
		notifications = append(notifications, n)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})

	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread":        unread,
	})
}

// 🟢 PUT /api/notifications/:id/read
func MarkNotificationRead(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	notifID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID invalide"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	var owner string
	if err := session.Query("SELECT user_id FROM notifications WHERE notification_id = ?",
		notifID).Scan(&owner); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification introuvable"})
		return
	}
	if owner != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès refusé"})
		return
	}

	err = session.Query("UPDATE notifications SET read = true WHERE notification_id = ?",
		notifID).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification lue"})
}

// 🟢 PUT /api/notifications/read-all
func MarkAllNotificationsRead(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	var ids []gocql.UUID
	iter := session.Query(`SELECT notification_id FROM notifications
		WHERE user_id = ? AND read = false ALLOW FILTERING`, userID).Iter()
	var id gocql.UUID
	for iter.Scan(&id) {
		ids = append(ids, id)
	}
	iter.Close()

	for _, id := range ids {
		session.Query("UPDATE notifications SET read = true WHERE notification_id = ?", id).Exec()
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notifications lues", "count": len(ids)})
}
