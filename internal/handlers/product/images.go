package product

import (
	"net/http"
	"time"

	"tienda_backend/internal/database"
	"tienda_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// 🔒 POST /api/products/:id/images
// Upload multipart vers MinIO, l'URL est ajoutée à la liste du produit.
func UploadProductImage(c *gin.Context) {
	userID := c.GetString("user_id")

	p, err := loadProduct(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if p.SellerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce produit ne vous appartient pas"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier image requis"})
		return
	}

	url, err := services.UploadProductImage(p.ID.String(), file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	p.ImageURLs = append(p.ImageURLs, url)
	p.UpdatedAt = time.Now()

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	err = session.Query("UPDATE products SET image_urls = ?, updated_at = ? WHERE product_id = ?",
		p.ImageURLs, p.UpdatedAt, p.ID).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	go services.IndexProduct(*p)

	c.JSON(http.StatusCreated, gin.H{"url": url, "image_urls": p.ImageURLs})
}
