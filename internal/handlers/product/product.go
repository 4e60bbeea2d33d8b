// Package product : catalogue, recherche, avis et images.
package product

import (
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"tienda_backend/internal/database"
	"tienda_backend/internal/models"
	"tienda_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

func loadProduct(productID string) (*models.Product, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	pid, err := gocql.ParseUUID(productID)
	if err != nil {
		return nil, err
	}

	var p models.Product
	err = session.Query(`
		SELECT product_id, seller_id, name, description, price, stock, category,
			image_urls, latitude, longitude, created_at, updated_at
		FROM products WHERE product_id = ?`, pid).
		Scan(&p.ID, &p.SellerID, &p.Name, &p.Description, &p.Price, &p.Stock,
			&p.Category, &p.ImageURLs, &p.Latitude, &p.Longitude,
			&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// 🟢 GET /api/products
// Filtres: category, min_price, max_price, seller_id.
// Tri: sort=price_asc|price_desc|newest (défaut newest).
func ListProducts(c *gin.Context) {
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	category := c.Query("category")
	sellerID := c.Query("seller_id")
	minPrice, _ := strconv.ParseFloat(c.DefaultQuery("min_price", "0"), 64)
	maxPrice, _ := strconv.ParseFloat(c.DefaultQuery("max_price", "0"), 64)

	if category != "" && !models.IsValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie inconnue"})
		return
	}

	var products []models.Product
	iter := session.Query(`
		SELECT product_id, seller_id, name, description, price, stock, category,
			image_urls, latitude, longitude, created_at, updated_at
		FROM products`).Iter()

	var p models.Product
	for iter.Scan(&p.ID, &p.SellerID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.Category, &p.ImageURLs, &p.Latitude, &p.Longitude,
		&p.CreatedAt, &p.UpdatedAt) {
		if category != "" && p.Category != category {
			continue
		}
		if sellerID != "" && p.SellerID != sellerID {
			continue
		}
		if minPrice > 0 && p.Price < minPrice {
			continue
		}
		if maxPrice > 0 && p.Price > maxPrice {
			continue
		}
		products = append(products, p)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	switch c.DefaultQuery("sort", "newest") {
	case "price_asc":
		sort.Slice(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case "price_desc":
		sort.Slice(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	default:
		sort.Slice(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	}

	c.JSON(http.StatusOK, products)
}

// 🟢 GET /api/products/:id
func GetProduct(c *gin.Context) {
	p, err := loadProduct(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// 🔒 POST /api/products
func CreateProduct(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price" binding:"required,gt=0"`
		Stock       int     `json:"stock" binding:"gte=0"`
		Category    string  `json:"category" binding:"required"`
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.IsValidCategory(input.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie inconnue"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	now := time.Now()
	p := models.Product{
		ID:          gocql.TimeUUID(),
		SellerID:    userID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    input.Category,
		ImageURLs:   []string{},
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = session.Query(`
		INSERT INTO products (product_id, seller_id, name, description, price, stock,
			category, image_urls, latitude, longitude, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.SellerID, p.Name, p.Description, p.Price, p.Stock,
		p.Category, p.ImageURLs, p.Latitude, p.Longitude, p.CreatedAt, p.UpdatedAt).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	go services.IndexProduct(p)

	log.Printf("✅ Produit créé: %s (%s)", p.Name, p.ID)
	c.JSON(http.StatusCreated, p)
}

// 🔒 PUT /api/products/:id
// Seul le vendeur propriétaire peut modifier son produit.
func UpdateProduct(c *gin.Context) {
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

	var input struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Stock       *int     `json:"stock"`
		Category    *string  `json:"category"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Prix invalide"})
			return
		}
		p.Price = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock invalide"})
			return
		}
		p.Stock = *input.Stock
	}
	if input.Category != nil {
		if !models.IsValidCategory(*input.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie inconnue"})
			return
		}
		p.Category = *input.Category
	}
	p.UpdatedAt = time.Now()

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	err = session.Query(`
		UPDATE products SET name = ?, description = ?, price = ?, stock = ?,
			category = ?, updated_at = ?
		WHERE product_id = ?`,
		p.Name, p.Description, p.Price, p.Stock, p.Category, p.UpdatedAt, p.ID).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	go services.IndexProduct(*p)

	c.JSON(http.StatusOK, p)
}

// 🔒 DELETE /api/products/:id
func DeleteProduct(c *gin.Context) {
	userID := c.GetString("user_id")

	p, err := loadProduct(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if p.SellerID != userID && c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce produit ne vous appartient pas"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	if err := session.Query("DELETE FROM products WHERE product_id = ?", p.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	go services.RemoveProductFromIndex(p.ID.String())

	log.Printf("🗑️ Produit supprimé: %s", p.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}
