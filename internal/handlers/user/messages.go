package user

import (
	"net/http"
	"sort"
	"time"

	"tienda_backend/internal/cache"
	"tienda_backend/internal/database"
	"tienda_backend/internal/models"
	"tienda_backend/internal/notify"
	"tienda_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// 🟢 POST /api/messages
func SendMessage(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ToID string `json:"to_id" binding:"required"`
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.ToID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Impossible de s'écrire à soi-même"})
		return
	}

	// Le destinataire doit exister
	if _, err := cache.GetUserFromCache(input.ToID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Destinataire introuvable"})
		return
	}

	fromName := ""
	if u, err := cache.GetUserFromCache(userID); err == nil {
		fromName = u.Name
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	msg := models.Message{
		ID:        gocql.TimeUUID(),
		FromID:    userID,
		FromName:  fromName,
		ToID:      input.ToID,
		Body:      input.Body,
		Read:      false,
		CreatedAt: time.Now(),
	}

	err = session.Query(`
		INSERT INTO messages (message_id, from_id, from_name, to_id, body, read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.FromID, msg.FromName, msg.ToID, msg.Body, msg.Read, msg.CreatedAt).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ws.Push(input.ToID, msg)
	notify.NewMessage(input.ToID, fromName)

	c.JSON(http.StatusCreated, msg)
}

func loadMessagesFor(userID string) ([]models.Message, error) {
	session, err := database.GetUsersSession()
	if err != nil {
		return nil, err
	}

	var messages []models.Message
	var m models.Message

	iter := session.Query(`
		SELECT message_id, from_id, from_name, to_id, body, read, created_at
		FROM messages WHERE to_id = ? ALLOW FILTERING`, userID).Iter()
	for iter.Scan(&m.ID, &m.FromID, &m.FromName, &m.ToID, &m.Body, &m.Read, &m.CreatedAt) {
		messages = append(messages, m)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	iter = session.Query(`
		SELECT message_id, from_id, from_name, to_id, body, read, created_at
		FROM messages WHERE from_id = ? ALLOW FILTERING`, userID).Iter()
	for iter.Scan(&m.ID, &m.FromID, &m.FromName, &m.ToID, &m.Body, &m.Read, &m.CreatedAt) {
		messages = append(messages, m)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

// 🟢 GET /api/messages/conversations
// Boîte de réception : un résumé par interlocuteur, plus récent d'abord.
func GetConversations(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	messages, err := loadMessagesFor(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	byPeer := make(map[string]*models.Conversation)
	for _, m := range messages {
		peerID := m.FromID
		peerName := m.FromName
		if m.FromID == userID {
			peerID = m.ToID
			peerName = ""
		}

		conv, ok := byPeer[peerID]
		if !ok {
			conv = &models.Conversation{PeerID: peerID}
			byPeer[peerID] = conv
		}
		if peerName != "" {
			conv.PeerName = peerName
		}
		// les messages sont triés par date croissante
		conv.LastMessage = m.Body
		conv.LastAt = m.CreatedAt
		if m.ToID == userID && !m.Read {
			conv.Unread++
		}
	}

	conversations := make([]models.Conversation, 0, len(byPeer))
	for _, conv := range byPeer {
		conversations = append(conversations, *conv)
	}
	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].LastAt.After(conversations[j].LastAt)
	})

	c.JSON(http.StatusOK, conversations)
}

// 🟢 GET /api/messages/:peerId
// Le fil avec un interlocuteur, marqué lu au passage.
func GetThread(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}
	peerID := c.Param("peerId")

	messages, err := loadMessagesFor(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	thread := []models.Message{}
	for _, m := range messages {
		if m.FromID == peerID || m.ToID == peerID {
			if m.ToID == userID && !m.Read {
				session.Query("UPDATE messages SET read = true WHERE message_id = ?", m.ID).Exec()
				m.Read = true
			}
			thread = append(thread, m)
		}
	}

	c.JSON(http.StatusOK, thread)
}
