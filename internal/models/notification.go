package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Types de notification
const (
	NotifOrderStatus  = "order_status"
	NotifOrderConfirm = "order_confirmed"
	NotifNewSale      = "new_sale"
	NotifNewMessage   = "new_message"
)

type Notification struct {
	ID        gocql.UUID `json:"id"`
	UserID    string     `json:"user_id"`
	Type      string     `json:"type"`
	Message   string     `json:"message"`
	OrderID   string     `json:"order_id,omitempty"`
	Read      bool       `json:"read"`
	CreatedAt time.Time  `json:"created_at"`
}
