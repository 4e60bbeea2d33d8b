package payments

import (
	"context"
	"fmt"
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienda_backend/internal/checkout"
	"tienda_backend/internal/models"
)

// fakeOrderStore : une commande au plus, compte les transitions appliquées.
type fakeOrderStore struct {
	order   *models.Order
	updates int
}

func (s *fakeOrderStore) FindByReference(preferenceID, paymentID string) (*models.Order, bool) {
	if s.order == nil {
		return nil, false
	}
	if preferenceID != "" && s.order.PreferenceID == preferenceID {
		return s.order, true
	}
	if paymentID != "" && s.order.PaymentID == paymentID {
		return s.order, true
	}
	return nil, false
}

func (s *fakeOrderStore) UpdateStatus(order *models.Order, newStatus, paymentID string) error {
	order.Status = newStatus
	if paymentID != "" {
		order.PaymentID = paymentID
	}
	s.updates++
	return nil
}

func (s *fakeOrderStore) LoadItems(gocql.UUID) []models.OrderItem { return nil }

type fakeIntentStore struct {
	intent *checkout.Intent
}

func (s fakeIntentStore) Save(context.Context, string, checkout.Intent) error { return nil }

func (s fakeIntentStore) Load(context.Context, string) (*checkout.Intent, error) {
	if s.intent == nil {
		return nil, fmt.Errorf("intention de checkout introuvable")
	}
	return s.intent, nil
}

func (s fakeIntentStore) Clear(context.Context, string) error { return nil }

func TestBuyerFromReference(t *testing.T) {
	assert.Equal(t, "user-42", buyerFromReference("user-42:abc-def"))
	assert.Equal(t, "user-42", buyerFromReference("user-42"))
	assert.Equal(t, "", buyerFromReference(""))

	// un UUID de passage en caisse contenant lui-même des ":" ne casse rien
	assert.Equal(t, "u1", buyerFromReference("u1:a:b:c"))
}

// Un webhook livré deux fois ne produit qu'une seule transition.
func TestReconcileReplayedEvent(t *testing.T) {
	store := &fakeOrderStore{order: &models.Order{
		ID:           gocql.TimeUUID(),
		UserID:       "u1",
		Status:       models.OrderPending,
		PreferenceID: "pref-1",
	}}
	orders = store
	defer func() { orders = scyllaOrderStore{} }()

	first, err := Reconcile(context.Background(), "u1:ref", "approved", "pay-1", "pref-1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderProcessing, first.Status)
	assert.Equal(t, 1, store.updates)

	second, err := Reconcile(context.Background(), "u1:ref", "approved", "pay-1", "pref-1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderProcessing, second.Status)
	assert.Equal(t, 1, store.updates)
}

// Un événement en retard ne fait jamais reculer une commande.
func TestReconcileIgnoresBackwardTransition(t *testing.T) {
	store := &fakeOrderStore{order: &models.Order{
		ID:           gocql.TimeUUID(),
		UserID:       "u1",
		Status:       models.OrderDelivered,
		PreferenceID: "pref-2",
	}}
	orders = store
	defer func() { orders = scyllaOrderStore{} }()

	got, err := Reconcile(context.Background(), "u1:ref", "pending", "", "pref-2")
	require.NoError(t, err)
	assert.Equal(t, models.OrderDelivered, got.Status)
	assert.Zero(t, store.updates)
}

func TestReconcileUnknownProviderStatus(t *testing.T) {
	orders = &fakeOrderStore{}
	defer func() { orders = scyllaOrderStore{} }()

	_, err := Reconcile(context.Background(), "u1:ref", "charged_back", "pay-1", "pref-1")
	require.Error(t, err)
}

// Paiement refusé avant toute commande : rien n'est matérialisé.
func TestReconcileRejectedPaymentCreatesNothing(t *testing.T) {
	store := &fakeOrderStore{}
	orders = store
	defer func() { orders = scyllaOrderStore{} }()

	_, err := Reconcile(context.Background(), "u1:ref", "rejected", "pay-1", "pref-1")
	require.Error(t, err)
	assert.Zero(t, store.updates)
}

// Les URLs de retour ne sont pas authentifiées : une référence qui ne
// correspond pas à celle émise au checkout ne matérialise rien.
func TestReconcileForgedReferenceRejected(t *testing.T) {
	orders = &fakeOrderStore{}
	defer func() { orders = scyllaOrderStore{} }()

	checkout.Intents = fakeIntentStore{intent: &checkout.Intent{
		Reference: "u1:emis-au-checkout",
		Shipping:  models.ShippingPickup,
	}}
	defer func() { checkout.Intents = checkout.RedisIntentStore{} }()

	_, err := Reconcile(context.Background(), "u1:forge", "approved", "pay-9", "pref-9")
	require.Error(t, err)
}
