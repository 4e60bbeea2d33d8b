package payment

import (
	"context"
	"fmt"
	"log"
	"os"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// MercadoPago crée des préférences de paiement (page hébergée) via le SDK.
type MercadoPago struct {
	client   preference.Client
	baseURL  string
	currency string
}

// InitMercadoPago initialise la passerelle globale depuis l'environnement.
func InitMercadoPago() error {
	token := os.Getenv("MP_ACCESS_TOKEN")
	if token == "" {
		return fmt.Errorf("MP_ACCESS_TOKEN manquant")
	}

	cfg, err := mpconfig.New(token)
	if err != nil {
		return fmt.Errorf("erreur initialisation MercadoPago: %v", err)
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	currency := os.Getenv("MP_CURRENCY")
	if currency == "" {
		currency = "ARS"
	}

	Default = &MercadoPago{
		client:   preference.NewClient(cfg),
		baseURL:  baseURL,
		currency: currency,
	}
	log.Println("✅ MercadoPago initialisé")
	return nil
}

// CreateCheckoutSession crée une préférence et retourne l'URL de redirection.
func (m *MercadoPago) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*Session, error) {
	items := make([]preference.ItemRequest, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, preference.ItemRequest{
			Title:      it.Title,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			CurrencyID: m.currency,
		})
	}

	pref := preference.Request{
		Items: items,
		Payer: &preference.PayerRequest{
			Name:  req.PayerName,
			Email: req.PayerEmail,
		},
		BackURLs: &preference.BackURLsRequest{
			Success: m.baseURL + "/api/pagos/retorno/exito",
			Pending: m.baseURL + "/api/pagos/retorno/pendiente",
			Failure: m.baseURL + "/api/pagos/retorno/fallo",
		},
		NotificationURL:   m.baseURL + "/api/pagos/webhook",
		ExternalReference: req.ExternalReference,
		Metadata:          req.Metadata,
	}

	resp, err := m.client.Create(ctx, pref)
	if err != nil {
		return nil, fmt.Errorf("erreur création préférence: %v", err)
	}
	if resp.InitPoint == "" {
		return nil, fmt.Errorf("la passerelle n'a pas retourné d'URL de paiement")
	}

	log.Printf("💳 Préférence créée: %s", resp.ID)

	return &Session{
		PreferenceID: resp.ID,
		RedirectURL:  resp.InitPoint,
	}, nil
}
