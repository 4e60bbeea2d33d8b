package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCouponDiscountPercent(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	valid := Coupon{
		Code:      "PROMO10",
		Percent:   10,
		IsActive:  true,
		StartsAt:  now.AddDate(0, 0, -1),
		ExpiresAt: now.AddDate(0, 0, 1),
	}
	assert.Equal(t, 10.0, valid.DiscountPercent(now))

	inactive := valid
	inactive.IsActive = false
	assert.Equal(t, 0.0, inactive.DiscountPercent(now))

	notStarted := valid
	notStarted.StartsAt = now.AddDate(0, 0, 1)
	assert.Equal(t, 0.0, notStarted.DiscountPercent(now))

	expired := valid
	expired.ExpiresAt = now.AddDate(0, 0, -1)
	assert.Equal(t, 0.0, expired.DiscountPercent(now))

	// pourcentage hors bornes → jamais appliqué
	tooBig := valid
	tooBig.Percent = 150
	assert.Equal(t, 0.0, tooBig.DiscountPercent(now))

	negative := valid
	negative.Percent = -5
	assert.Equal(t, 0.0, negative.DiscountPercent(now))
}

func TestCouponWithoutWindow(t *testing.T) {
	// dates zéro = pas de fenêtre, seul is_active compte
	c := Coupon{Code: "SIEMPRE", Percent: 25, IsActive: true}
	assert.Equal(t, 25.0, c.DiscountPercent(time.Now()))
}

func TestShippingFee(t *testing.T) {
	fee, ok := ShippingFee(ShippingPickup)
	assert.True(t, ok)
	assert.Equal(t, 0.0, fee)

	fee, ok = ShippingFee(ShippingStandard)
	assert.True(t, ok)
	assert.Equal(t, 1500.0, fee)

	fee, ok = ShippingFee(ShippingExpress)
	assert.True(t, ok)
	assert.Equal(t, 3000.0, fee)

	_, ok = ShippingFee("drone")
	assert.False(t, ok)
}
