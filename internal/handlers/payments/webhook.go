package payments

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// 📥 POST /api/pagos/webhook
// Toujours répondre 200 une fois l'événement lu : un non-200 ferait
// rejouer l'événement indéfiniment par la passerelle. La passerelle
// livre en JSON, en query string (IPN), ou les deux ; seul un body
// présent mais malformé vaut un 400.
func Webhook(c *gin.Context) {
	var input struct {
		Type              string `json:"type"`
		Status            string `json:"status"`
		PaymentID         string `json:"payment_id"`
		PreferenceID      string `json:"preference_id"`
		ExternalReference string `json:"external_reference"`
		Data              struct {
			ID string `json:"id"`
		} `json:"data"`
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body illisible"})
		return
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Body illisible"})
			return
		}
	}

	// Les champs absents du body viennent de l'URL
	if input.Type == "" {
		input.Type = c.Query("type")
	}
	if input.Status == "" {
		input.Status = c.Query("status")
	}
	if input.PaymentID == "" {
		input.PaymentID = c.Query("payment_id")
	}
	if input.PreferenceID == "" {
		input.PreferenceID = c.Query("preference_id")
	}
	if input.ExternalReference == "" {
		input.ExternalReference = c.Query("external_reference")
	}

	paymentID := input.PaymentID
	if paymentID == "" {
		paymentID = input.Data.ID
	}
	if paymentID == "" {
		paymentID = c.Query("data.id")
	}

	log.Printf("📥 Webhook reçu: type=%s status=%s payment=%s preference=%s",
		input.Type, input.Status, paymentID, input.PreferenceID)

	order, err := Reconcile(c.Request.Context(), input.ExternalReference,
		input.Status, paymentID, input.PreferenceID)
	if err != nil {
		log.Printf("⚠️ Webhook non réconcilié: %v", err)
		c.JSON(http.StatusOK, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "order_id": order.ID.String()})
}

// 🟢 GET /api/pagos/retorno/exito
func ReturnSuccess(c *gin.Context) {
	handleReturn(c, "approved")
}

// 🟡 GET /api/pagos/retorno/pendiente
func ReturnPending(c *gin.Context) {
	handleReturn(c, "pending")
}

// 🔴 GET /api/pagos/retorno/fallo
// Aucune commande n'est créée, le panier et l'intention restent en place.
func ReturnFailure(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "fallo",
		"message": "Le paiement a échoué ou a été annulé. Votre panier est intact.",
	})
}

// handleReturn matérialise (ou retrouve) la commande au retour de la
// page de paiement. Le webhook peut être passé avant : Reconcile est
// idempotent et les deux chemins convergent.
func handleReturn(c *gin.Context, fallbackStatus string) {
	status := c.Query("status")
	if status == "" {
		status = fallbackStatus
	}

	order, err := Reconcile(c.Request.Context(),
		c.Query("external_reference"),
		status,
		c.Query("payment_id"),
		c.Query("preference_id"))
	if err != nil {
		log.Printf("⚠️ Retour passerelle non réconcilié: %v", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": order.Status,
		"order":  order,
	})
}
