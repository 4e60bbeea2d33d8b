package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tienda_backend/internal/database"
)

// Durée de vie de l'intention de checkout : assez pour finir le paiement
// chez le fournisseur, assez court pour ne pas resservir au checkout suivant.
const IntentTTL = 1 * time.Hour

// Intent : les données de checkout conservées en session entre la
// redirection vers la passerelle et la matérialisation de la commande.
type Intent struct {
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Shipping     string `json:"shipping"`
	CouponCode   string `json:"coupon_code,omitempty"`
	// Reference est la référence externe transmise à la passerelle ;
	// seul un retour portant cette référence peut matérialiser la commande.
	Reference string `json:"reference"`
}

// IntentStore : session courte durée, une intention par acheteur.
type IntentStore interface {
	Save(ctx context.Context, userID string, intent Intent) error
	Load(ctx context.Context, userID string) (*Intent, error)
	Clear(ctx context.Context, userID string) error
}

// RedisIntentStore stocke l'intention sous checkout:<userID>, comme le panier.
type RedisIntentStore struct{}

func (RedisIntentStore) Save(ctx context.Context, userID string, intent Intent) error {
	data, err := json.Marshal(intent)
	if err != nil {
		return err
	}
	return database.Redis.Set(ctx, "checkout:"+userID, data, IntentTTL).Err()
}

func (RedisIntentStore) Load(ctx context.Context, userID string) (*Intent, error) {
	data, err := database.Redis.Get(ctx, "checkout:"+userID).Result()
	if err != nil {
		return nil, fmt.Errorf("intention de checkout introuvable")
	}

	var intent Intent
	if err := json.Unmarshal([]byte(data), &intent); err != nil {
		return nil, fmt.Errorf("intention de checkout illisible: %v", err)
	}
	return &intent, nil
}

func (RedisIntentStore) Clear(ctx context.Context, userID string) error {
	return database.Redis.Del(ctx, "checkout:"+userID).Err()
}

// Intents : store global utilisé par les handlers
var Intents IntentStore = RedisIntentStore{}
