// Package ws pousse les notifications en temps réel aux clients connectés.
// Un utilisateur peut avoir plusieurs connexions (plusieurs onglets).
package ws

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// client sérialise les écritures : gorilla n'autorise qu'un écrivain
// à la fois par connexion, et Push arrive de plusieurs goroutines.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (cl *client) writeJSON(payload any) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.conn.WriteJSON(payload)
}

type Hub struct {
	mu    sync.RWMutex
	conns map[string][]*client
}

var hub = &Hub{conns: make(map[string][]*client)}

// Register attache une connexion à un utilisateur.
func Register(userID string, conn *websocket.Conn) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	hub.conns[userID] = append(hub.conns[userID], &client{conn: conn})
	log.Printf("🔌 WebSocket connecté: %s (%d connexions)", userID, len(hub.conns[userID]))
}

// Unregister détache une connexion (appelé à la fermeture).
func Unregister(userID string, conn *websocket.Conn) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	conns := hub.conns[userID]
	for i, cl := range conns {
		if cl.conn == conn {
			hub.conns[userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(hub.conns[userID]) == 0 {
		delete(hub.conns, userID)
	}
}

// Push envoie un payload JSON à toutes les connexions d'un utilisateur.
// Utilisateur hors ligne → no-op, la notification persistée suffit.
func Push(userID string, payload any) {
	hub.mu.RLock()
	clients := append([]*client(nil), hub.conns[userID]...)
	hub.mu.RUnlock()

	for _, cl := range clients {
		if err := cl.writeJSON(payload); err != nil {
			log.Printf("⚠️ Erreur push WebSocket vers %s: %v", userID, err)
			cl.conn.Close()
			Unregister(userID, cl.conn)
		}
	}
}
