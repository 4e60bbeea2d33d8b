package cache

import (
	"context"
	"encoding/json"
	"time"

	"tienda_backend/internal/database"
	"tienda_backend/internal/models"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

const UserCacheTTL = 5 * time.Minute

// GetUserFromCache récupère un utilisateur depuis Redis ou ScyllaDB
func GetUserFromCache(userID string) (*models.User, error) {
	ctx := context.Background()
	key := "user:" + userID

	// 1. Essayer le cache Redis
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var user models.User
		if json.Unmarshal([]byte(data), &user) == nil {
			return &user, nil
		}
	}

	// 2. Récupérer de ScyllaDB
	session, err := database.GetUsersSession()
	if err != nil {
		return nil, err
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}

	var email, name, phone, role string
	err = session.Query(`SELECT email, name, phone, role
		FROM users WHERE user_id = ?`, gocql.UUID(uid)).Scan(
		&email, &name, &phone, &role)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:    userID,
		Email: email,
		Name:  name,
		Phone: phone,
		Role:  role,
	}

	// 3. Mettre en cache
	jsonData, _ := json.Marshal(user)
	database.Redis.Set(ctx, key, jsonData, UserCacheTTL)

	return user, nil
}

// InvalidateUserCache invalide le cache d'un utilisateur
func InvalidateUserCache(userID string) {
	ctx := context.Background()
	database.Redis.Del(ctx, "user:"+userID)
}
