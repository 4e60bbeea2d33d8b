package user

import (
	"log"
	"net/http"

	"tienda_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Le CORS est géré en amont par le middleware
	CheckOrigin: func(r *http.Request) bool { return true },
}

// 🔌 GET /api/ws
// Canal temps réel pour les notifications. Le serveur ne lit rien,
// la boucle de lecture ne sert qu'à détecter la fermeture.
func Connect(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}

	ws.Register(userID, conn)

	go func() {
		defer func() {
			ws.Unregister(userID, conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
