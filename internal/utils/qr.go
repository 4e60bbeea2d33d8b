package utils

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// GeneratePickupQR génère le QR de retrait d'une commande en PNG base64,
// prêt à être affiché dans une balise <img>.
func GeneratePickupQR(orderID string) (string, error) {
	payload := fmt.Sprintf("tienda:retiro:%s", orderID)

	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("erreur génération QR: %v", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
