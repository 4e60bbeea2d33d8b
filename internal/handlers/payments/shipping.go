package payments

import (
	"net/http"

	"tienda_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// 🟢 GET /api/shipping/options
func GetShippingOptions(c *gin.Context) {
	options := []models.ShippingOption{
		{
			ID:            models.ShippingPickup,
			Name:          "Retiro en tienda",
			Description:   "Retirez votre commande chez le vendeur avec le QR de retrait",
			Price:         0,
			EstimatedDays: 0,
		},
		{
			ID:            models.ShippingStandard,
			Name:          "Envío estándar",
			Description:   "Livraison à domicile sous 3 à 5 jours",
			Price:         1500,
			EstimatedDays: 5,
		},
		{
			ID:            models.ShippingExpress,
			Name:          "Envío express",
			Description:   "Livraison à domicile sous 24 à 48 heures",
			Price:         3000,
			EstimatedDays: 2,
		},
	}

	c.JSON(http.StatusOK, gin.H{"options": options})
}
