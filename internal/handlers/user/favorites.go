// Package user : favoris, messagerie et notifications.
package user

import (
	"net/http"
	"time"

	"tienda_backend/internal/database"
	"tienda_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// 🟢 GET /api/favorites
// Retourne les produits favoris encore existants. Un favori dont le
// produit a disparu est ignoré silencieusement.
func GetFavorites(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	usersSession, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	var productIDs []gocql.UUID
	iter := usersSession.Query("SELECT product_id FROM favorites WHERE user_id = ?", userID).Iter()
	var pid gocql.UUID
	for iter.Scan(&pid) {
		productIDs = append(productIDs, pid)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	productsSession, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	favorites := models.Favorites{UserID: userID, Items: []models.Product{}}
	for _, pid := range productIDs {
		var p models.Product
		err := productsSession.Query(`
			SELECT product_id, seller_id, name, description, price, stock, category,
				image_urls, created_at, updated_at
			FROM products WHERE product_id = ?`, pid).
			Scan(&p.ID, &p.SellerID, &p.Name, &p.Description, &p.Price, &p.Stock,
				&p.Category, &p.ImageURLs, &p.CreatedAt, &p.UpdatedAt)
		if err == nil {
			favorites.Items = append(favorites.Items, p)
		}
	}

	c.JSON(http.StatusOK, favorites)
}

// 🟢 POST /api/favorites/:productId
func AddFavorite(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	pid, err := gocql.ParseUUID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	// Le produit doit exister
	productsSession, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}
	var name string
	if err := productsSession.Query("SELECT name FROM products WHERE product_id = ?", pid).Scan(&name); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	usersSession, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	err = usersSession.Query(`
		INSERT INTO favorites (user_id, product_id, added_at) VALUES (?, ?, ?)`,
		userID, pid, time.Now()).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Ajouté aux favoris", "product_id": pid.String()})
}

// 🟢 DELETE /api/favorites/:productId
func RemoveFavorite(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	pid, err := gocql.ParseUUID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	usersSession, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	err = usersSession.Query("DELETE FROM favorites WHERE user_id = ? AND product_id = ?",
		userID, pid).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Retiré des favoris"})
}
