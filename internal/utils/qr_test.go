package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePickupQR(t *testing.T) {
	qr, err := GeneratePickupQR("3f1e8a2c-0000-1111-2222-333344445555")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(qr, "data:image/png;base64,"))
	assert.Greater(t, len(qr), 100)
}

func TestGeneratePickupQRDistinctOrders(t *testing.T) {
	a, err := GeneratePickupQR("order-a")
	require.NoError(t, err)
	b, err := GeneratePickupQR("order-b")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
