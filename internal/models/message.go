package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Message struct {
	ID        gocql.UUID `json:"id"`
	FromID    string     `json:"from_id"`
	FromName  string     `json:"from_name,omitempty"`
	ToID      string     `json:"to_id"`
	Body      string     `json:"body"`
	Read      bool       `json:"read"`
	CreatedAt time.Time  `json:"created_at"`
}

// Conversation : résumé d'un fil de discussion pour la boîte de réception
type Conversation struct {
	PeerID      string    `json:"peer_id"`
	PeerName    string    `json:"peer_name,omitempty"`
	LastMessage string    `json:"last_message"`
	LastAt      time.Time `json:"last_at"`
	Unread      int       `json:"unread"`
}
