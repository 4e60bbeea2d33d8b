package utils

import (
	"fmt"
	"log"

	"tienda_backend/internal/models"
)

// SendOrderStatusEmail envoie un email de notification de changement de statut
func SendOrderStatusEmail(order models.Order, userEmail string, newStatus string) error {
	subject := getStatusEmailSubject(newStatus)
	html := generateStatusEmailHTML(order, newStatus)

	err := SendEmail(userEmail, subject, html)
	if err != nil {
		log.Printf("❌ Erreur envoi email statut: %v", err)
		return err
	}

	log.Printf("📧 Email de statut envoyé: %s → %s", newStatus, userEmail)
	return nil
}

func getStatusEmailSubject(status string) string {
	switch status {
	case models.OrderProcessing:
		return "✅ Paiement confirmé - Tienda"
	case models.OrderShipped:
		return "📦 Votre commande a été expédiée - Tienda"
	case models.OrderDelivered:
		return "🎉 Votre commande a été livrée - Tienda"
	case models.OrderCancelled:
		return "❌ Commande annulée - Tienda"
	default:
		return "📋 Mise à jour de votre commande - Tienda"
	}
}

// StatusMessage : le message affiché dans les notifications et les emails
func StatusMessage(status string) string {
	switch status {
	case models.OrderPending:
		return "Votre commande est en attente de confirmation du paiement."
	case models.OrderProcessing:
		return "Votre paiement a été confirmé. Les vendeurs préparent votre commande."
	case models.OrderShipped:
		return "Bonne nouvelle ! Votre commande a été expédiée et est en route vers vous."
	case models.OrderDelivered:
		return "Votre commande a été livrée avec succès. Nous espérons que vous en êtes satisfait !"
	case models.OrderCancelled:
		return "Votre commande a été annulée. Si vous avez des questions, n'hésitez pas à nous contacter."
	default:
		return "Le statut de votre commande a été mis à jour."
	}
}

func getStatusIcon(status string) string {
	switch status {
	case models.OrderProcessing:
		return "✅"
	case models.OrderShipped:
		return "📦"
	case models.OrderDelivered:
		return "🎉"
	case models.OrderCancelled:
		return "❌"
	default:
		return "📋"
	}
}

func getStatusColor(status string) string {
	switch status {
	case models.OrderProcessing:
		return "#10b981" // Green
	case models.OrderShipped:
		return "#3b82f6" // Blue
	case models.OrderDelivered:
		return "#8b5cf6" // Purple
	case models.OrderCancelled:
		return "#ef4444" // Red
	default:
		return "#6b7280" // Gray
	}
}

func generateStatusEmailHTML(order models.Order, status string) string {
	statusMessage := StatusMessage(status)
	statusIcon := getStatusIcon(status)
	statusColor := getStatusColor(status)

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Mise à jour de commande</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f5f5f5;">
    <table role="presentation" style="width: 100%%; border-collapse: collapse; background-color: #f5f5f5;">
        <tr>
            <td style="padding: 40px 20px;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; box-shadow: 0 4px 6px rgba(0,0,0,0.1);">
                    <tr>
                        <td style="background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); padding: 40px 30px; text-align: center; border-radius: 12px 12px 0 0;">
                            <h1 style="margin: 0; color: #ffffff; font-size: 28px; font-weight: 600;">
                                %s Tienda
                            </h1>
                            <p style="margin: 10px 0 0 0; color: #ffffff; font-size: 16px; opacity: 0.9;">
                                Mise à jour de votre commande
                            </p>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 30px 30px 0 30px; text-align: center;">
                            <div style="display: inline-block; padding: 12px 24px; background-color: %s; color: #ffffff; border-radius: 25px; font-weight: 600; font-size: 14px; text-transform: uppercase; letter-spacing: 0.5px;">
                                %s %s
                            </div>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 30px;">
                            <p style="margin: 0 0 20px 0; color: #333333; font-size: 16px; line-height: 1.6;">
                                %s
                            </p>
                            <table role="presentation" style="width: 100%%; border-collapse: collapse; background-color: #f8f9fa; border-radius: 8px; margin: 20px 0;">
                                <tr>
                                    <td style="padding: 20px;">
                                        <table role="presentation" style="width: 100%%; border-collapse: collapse;">
                                            <tr>
                                                <td style="padding: 8px 0; color: #666666; font-size: 14px;">
                                                    <strong style="color: #333333;">Numéro de commande:</strong>
                                                </td>
                                                <td style="padding: 8px 0; color: #333333; font-size: 14px; text-align: right;">
                                                    #%s
                                                </td>
                                            </tr>
                                            <tr>
                                                <td style="padding: 8px 0; color: #666666; font-size: 14px;">
                                                    <strong style="color: #333333;">Montant total:</strong>
                                                </td>
                                                <td style="padding: 8px 0; color: #333333; font-size: 14px; text-align: right; font-weight: 600;">
                                                    $%.2f
                                                </td>
                                            </tr>
                                        </table>
                                    </td>
                                </tr>
                            </table>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 30px; background-color: #f8f9fa; border-radius: 0 0 12px 12px; text-align: center;">
                            <p style="margin: 0; color: #999999; font-size: 12px;">
                                Cet email a été envoyé automatiquement, merci de ne pas y répondre.
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`, statusIcon, statusColor, statusIcon, status, statusMessage, order.ID.String()[:8], order.Total)
}

// SendWelcomeEmail envoie un email de bienvenue
func SendWelcomeEmail(userEmail, userName string) error {
	subject := "🎉 Bienvenue sur Tienda !"

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
        .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>🎉 Bienvenue %s !</h1>
        </div>
        <div class="content">
            <p>Merci de vous être inscrit sur Tienda, votre marketplace de boissons.</p>
            <p>Découvrez dès maintenant les produits des vendeurs proches de chez vous !</p>
        </div>
    </div>
</body>
</html>
`, userName)

	return SendEmail(userEmail, subject, html)
}
