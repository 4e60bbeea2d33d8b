package models

import "time"

type Coupon struct {
	Code      string    `json:"code"`
	Percent   float64   `json:"percent"`
	IsActive  bool      `json:"is_active"`
	StartsAt  time.Time `json:"starts_at"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// DiscountPercent retourne le pourcentage applicable à l'instant donné.
// Coupon inactif, pas encore valide ou expiré → 0, jamais d'erreur.
func (c Coupon) DiscountPercent(now time.Time) float64 {
	if !c.IsActive {
		return 0
	}
	if !c.StartsAt.IsZero() && now.Before(c.StartsAt) {
		return 0
	}
	if !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt) {
		return 0
	}
	if c.Percent <= 0 || c.Percent > 100 {
		return 0
	}
	return c.Percent
}
