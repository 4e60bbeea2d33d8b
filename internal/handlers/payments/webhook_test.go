package payments

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienda_backend/internal/models"
)

func postWebhook(target, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req

	Webhook(c)
	return w
}

// La passerelle livre aussi en query string pure (IPN, body vide) :
// ce n'est pas un body malformé, la réponse reste un 200.
func TestWebhookQueryOnlyDelivery(t *testing.T) {
	store := &fakeOrderStore{order: &models.Order{
		ID:           gocql.TimeUUID(),
		UserID:       "u1",
		Status:       models.OrderPending,
		PreferenceID: "pref-ipn",
	}}
	orders = store
	defer func() { orders = scyllaOrderStore{} }()

	w := postWebhook("/api/pagos/webhook?type=payment&status=approved&payment_id=123&preference_id=pref-ipn", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
	assert.Equal(t, 1, store.updates)
	assert.Equal(t, models.OrderProcessing, store.order.Status)
}

func TestWebhookMalformedBody(t *testing.T) {
	w := postWebhook("/api/pagos/webhook", "{pas du json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Un événement non réconciliable reste un 200 : un non-200 ferait
// rejouer l'événement indéfiniment.
func TestWebhookUnreconciledStays200(t *testing.T) {
	orders = &fakeOrderStore{}
	defer func() { orders = scyllaOrderStore{} }()

	w := postWebhook("/api/pagos/webhook", `{"type":"payment","status":"charged_back","payment_id":"1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
}

// Le payment_id peut arriver sous data.id (body) ou data.id (query).
func TestWebhookPaymentIDFromData(t *testing.T) {
	store := &fakeOrderStore{order: &models.Order{
		ID:        gocql.TimeUUID(),
		UserID:    "u1",
		Status:    models.OrderPending,
		PaymentID: "789",
	}}
	orders = store
	defer func() { orders = scyllaOrderStore{} }()

	w := postWebhook("/api/pagos/webhook", `{"type":"payment","status":"approved","data":{"id":"789"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, store.updates)
}
