package product

import (
	"net/http"
	"sort"
	"time"

	"tienda_backend/internal/cache"
	"tienda_backend/internal/database"
	"tienda_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// ⭐ POST /api/products/:id/reviews
// Une note de 1 à 5, un avis par utilisateur et par produit.
func CreateReview(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Note entre 1 et 5 requise"})
		return
	}

	p, err := loadProduct(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if p.SellerID == userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Impossible de noter son propre produit"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	// Un seul avis par acheteur
	var existing gocql.UUID
	err = session.Query(`SELECT review_id FROM reviews
		WHERE product_id = ? AND user_id = ? LIMIT 1 ALLOW FILTERING`,
		p.ID, userID).Scan(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Vous avez déjà noté ce produit"})
		return
	}

	userName := ""
	if u, err := cache.GetUserFromCache(userID); err == nil {
		userName = u.Name
	}

	review := models.Review{
		ID:        gocql.TimeUUID(),
		ProductID: p.ID,
		UserID:    userID,
		UserName:  userName,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	}

	err = session.Query(`
		INSERT INTO reviews (review_id, product_id, user_id, user_name, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		review.ID, review.ProductID, review.UserID, review.UserName,
		review.Rating, review.Comment, review.CreatedAt).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, review)
}

// 🟢 GET /api/products/:id/reviews
func GetReviews(c *gin.Context) {
	p, err := loadProduct(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	var reviews []models.Review
	iter := session.Query(`
		SELECT review_id, product_id, user_id, user_name, rating, comment, created_at
		FROM reviews WHERE product_id = ? ALLOW FILTERING`, p.ID).Iter()

	var r models.Review
	for iter.Scan(&r.ID, &r.ProductID, &r.UserID, &r.UserName, &r.Rating, &r.Comment, &r.CreatedAt) {
		reviews = append(reviews, r)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})

	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	avg := 0.0
	if len(reviews) > 0 {
		avg = float64(total) / float64(len(reviews))
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"rating": models.ProductRating{
			ProductID:     p.ID,
			AverageRating: avg,
			TotalReviews:  len(reviews),
		},
	})
}

// 🟢 GET /api/sellers/:id/rating
// Note vendeur : moyenne de tous les avis sur tous ses produits.
func GetSellerRating(c *gin.Context) {
	sellerID := c.Param("id")

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	// Les produits du vendeur d'abord, puis leurs avis
	var productIDs []gocql.UUID
	iter := session.Query(`SELECT product_id FROM products
		WHERE seller_id = ? ALLOW FILTERING`, sellerID).Iter()
	var pid gocql.UUID
	for iter.Scan(&pid) {
		productIDs = append(productIDs, pid)
	}
	iter.Close()

	total, count := 0, 0
	for _, pid := range productIDs {
		reviewIter := session.Query(`SELECT rating FROM reviews
			WHERE product_id = ? ALLOW FILTERING`, pid).Iter()
		var rating int
		for reviewIter.Scan(&rating) {
			total += rating
			count++
		}
		reviewIter.Close()
	}

	avg := 0.0
	if count > 0 {
		avg = float64(total) / float64(count)
	}

	c.JSON(http.StatusOK, models.SellerRating{
		SellerID:      sellerID,
		AverageRating: avg,
		TotalReviews:  count,
	})
}
