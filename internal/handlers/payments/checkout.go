// Package payments porte l'initiation du checkout et la réconciliation
// des paiements (webhook et URLs de retour de la passerelle).
package payments

import (
	"log"
	"net/http"

	"tienda_backend/internal/checkout"
	"tienda_backend/internal/models"
	"tienda_backend/internal/notify"
	"tienda_backend/internal/payment"
	"tienda_backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// 💳 POST /api/checkout
// Deux branches : paiement simulé (commande créée immédiatement) ou
// MercadoPago (intention sauvée, redirection vers la page hébergée,
// la commande n'existe pas tant que la passerelle n'a pas répondu).
func Checkout(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ContactName   string `json:"contact_name" binding:"required"`
		ContactEmail  string `json:"contact_email" binding:"required,email"`
		Address       string `json:"address"`
		Phone         string `json:"phone" binding:"required"`
		Shipping      string `json:"shipping" binding:"required"`
		CouponCode    string `json:"coupon_code"`
		PaymentMethod string `json:"payment_method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shippingFee, ok := models.ShippingFee(input.Shipping)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mode de livraison inconnu"})
		return
	}
	if input.Shipping != models.ShippingPickup && input.Address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Adresse requise pour la livraison"})
		return
	}
	if input.PaymentMethod != models.PaymentMercadoPago && input.PaymentMethod != models.PaymentSimulated {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Méthode de paiement inconnue"})
		return
	}

	ctx := c.Request.Context()

	items, err := checkout.LoadCartItems(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le panier est vide"})
		return
	}

	snapshot, err := checkout.BuildSnapshot(items, checkout.ScyllaProductLookup)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	// Contrôle de stock avant tout engagement
	for _, line := range snapshot.Lines {
		if line.Quantity > line.Stock {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Stock insuffisant pour " + line.Name,
				"product": line.ProductID,
				"stock":   line.Stock,
			})
			return
		}
	}

	pct := checkout.ResolveCouponPercent(input.CouponCode, timeNow())

	// --- Branche paiement simulé : commande immédiate ---
	if input.PaymentMethod == models.PaymentSimulated {
		order, err := checkout.MaterializeOrder(ctx, checkout.OrderInput{
			UserID:        userID,
			Lines:         snapshot.Lines,
			DiscountPct:   pct,
			Shipping:      input.Shipping,
			ShippingFee:   shippingFee,
			PaymentMethod: models.PaymentSimulated,
			Status:        models.OrderProcessing,
			ContactName:   input.ContactName,
			ContactEmail:  input.ContactEmail,
			Address:       input.Address,
			Phone:         input.Phone,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		afterOrderConfirmed(*order)
		c.JSON(http.StatusCreated, order)
		return
	}

	// --- Branche MercadoPago : intention + redirection ---
	if payment.Default == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Passerelle de paiement non configurée"})
		return
	}

	// La référence externe identifie l'acheteur ET ce passage en caisse
	externalRef := userID + ":" + uuid.NewString()

	intent := checkout.Intent{
		ContactName:  input.ContactName,
		ContactEmail: input.ContactEmail,
		Address:      input.Address,
		Phone:        input.Phone,
		Shipping:     input.Shipping,
		CouponCode:   input.CouponCode,
		Reference:    externalRef,
	}
	if err := checkout.Intents.Save(ctx, userID, intent); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde checkout"})
		return
	}

	session, err := payment.Default.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		Items:             checkout.BuildGatewayItems(snapshot.Lines, pct, shippingFee),
		PayerName:         input.ContactName,
		PayerEmail:        input.ContactEmail,
		ExternalReference: externalRef,
		Metadata:          map[string]any{"user_id": userID},
	})
	if err != nil {
		// Le panier et l'intention restent intacts, l'acheteur peut réessayer
		log.Printf("❌ Erreur passerelle pour %s: %v", userID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "La passerelle de paiement est indisponible"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"preference_id": session.PreferenceID,
		"redirect_url":  session.RedirectURL,
	})
}

// afterOrderConfirmed : notifications et email, jamais bloquants.
func afterOrderConfirmed(order models.Order) {
	notify.OrderConfirmed(order)
	notify.NewSale(order)

	go func() {
		html := utils.GeneratePickupHTML(order)
		if err := utils.SendEmail(order.ContactEmail, "✅ Commande confirmée - Tienda", html); err != nil {
			log.Printf("⚠️ Erreur envoi email confirmation: %v", err)
		}
	}()
}
