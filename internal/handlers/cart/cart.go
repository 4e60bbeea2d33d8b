package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tienda_backend/internal/checkout"
	"tienda_backend/internal/database"
	"tienda_backend/internal/models"

	"github.com/gin-gonic/gin"
)

const cartTTL = 30 * 24 * time.Hour

func saveCart(ctx context.Context, userID string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return database.Redis.Set(ctx, "cart:"+userID, data, cartTTL).Err()
}

// 🟢 GET /api/cart
// Retourne le snapshot complet : prix et stocks relus au moment de l'appel.
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	items, err := checkout.LoadCartItems(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	snapshot, err := checkout.BuildSnapshot(items, checkout.ScyllaProductLookup)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// 🟢 POST /api/cart/add
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	// Le produit doit exister, la quantité est plafonnée au stock
	product, err := checkout.ScyllaProductLookup(input.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if product.Stock <= 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Produit en rupture de stock"})
		return
	}

	ctx := c.Request.Context()
	items, _ := checkout.LoadCartItems(ctx, userID)

	found := false
	for i := range items {
		if items[i].ProductID == input.ProductID {
			items[i].Quantity += input.Quantity
			if items[i].Quantity > product.Stock {
				items[i].Quantity = product.Stock
			}
			found = true
			break
		}
	}
	if !found {
		qty := input.Quantity
		if qty > product.Stock {
			qty = product.Stock
		}
		imageURL := ""
		if len(product.ImageURLs) > 0 {
			imageURL = product.ImageURLs[0]
		}
		items = append(items, models.CartItem{
			ProductID: input.ProductID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  qty,
			ImageURL:  imageURL,
		})
	}

	if err := saveCart(ctx, userID, items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// 🟢 PUT /api/cart/quantity
// action: "sumar" ou "restar". Un incrément qui dépasserait le stock
// est refusé en bloc, jamais appliqué partiellement.
func UpdateQuantity(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"product_id" binding:"required"`
		Action    string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Action != "sumar" && input.Action != "restar" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Action invalide (sumar ou restar)"})
		return
	}

	ctx := c.Request.Context()
	items, _ := checkout.LoadCartItems(ctx, userID)

	idx := -1
	for i := range items {
		if items[i].ProductID == input.ProductID {
			idx = i
			break
		}
	}
	if idx == -1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit absent du panier"})
		return
	}

	if input.Action == "sumar" {
		product, err := checkout.ScyllaProductLookup(input.ProductID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}
		if items[idx].Quantity+1 > product.Stock {
			c.JSON(http.StatusConflict, gin.H{"error": "Stock insuffisant"})
			return
		}
		items[idx].Quantity++
	} else {
		items[idx].Quantity--
		if items[idx].Quantity <= 0 {
			items = append(items[:idx], items[idx+1:]...)
		}
	}

	if err := saveCart(ctx, userID, items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// 🟢 DELETE /api/cart/:productId
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	productID := c.Param("productId")
	ctx := c.Request.Context()

	items, _ := checkout.LoadCartItems(ctx, userID)
	if len(items) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Panier vide"})
		return
	}

	newItems := []models.CartItem{}
	for _, item := range items {
		if item.ProductID != productID {
			newItems = append(newItems, item)
		}
	}

	if err := saveCart(ctx, userID, newItems); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, newItems)
}

// 🟢 DELETE /api/cart
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	database.Redis.Del(c.Request.Context(), "cart:"+userID)
	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé"})
}
