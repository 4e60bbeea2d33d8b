package checkout

import (
	"strings"
	"time"

	"tienda_backend/internal/database"
	"tienda_backend/internal/models"
)

// ResolveCouponPercent retourne le pourcentage de réduction d'un code.
// Code absent, inconnu, inactif ou hors fenêtre de validité → 0, jamais
// d'erreur : un mauvais coupon ne bloque pas un checkout.
func ResolveCouponPercent(code string, now time.Time) float64 {
	if code == "" {
		return 0
	}

	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		return 0
	}

	var coupon models.Coupon
	err = ordersSession.Query(`
		SELECT code, percent, is_active, starts_at, expires_at
		FROM coupons WHERE code = ? LIMIT 1`, strings.ToUpper(code)).
		Scan(&coupon.Code, &coupon.Percent, &coupon.IsActive,
			&coupon.StartsAt, &coupon.ExpiresAt)
	if err != nil {
		return 0
	}

	return coupon.DiscountPercent(now)
}
