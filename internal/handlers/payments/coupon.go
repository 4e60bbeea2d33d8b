package payments

import (
	"net/http"
	"strings"
	"time"

	"tienda_backend/internal/database"
	"tienda_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// 🟢 POST /api/coupons/validate
// Valide un code avant le checkout. Un code invalide n'est pas une
// erreur serveur : la réponse dit juste valid=false.
func ValidateCoupon(c *gin.Context) {
	var input struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code requis"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	var coupon models.Coupon
	err = session.Query(`
		SELECT code, percent, is_active, starts_at, expires_at
		FROM coupons WHERE code = ? LIMIT 1`, strings.ToUpper(input.Code)).
		Scan(&coupon.Code, &coupon.Percent, &coupon.IsActive,
			&coupon.StartsAt, &coupon.ExpiresAt)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false})
		return
	}

	pct := coupon.DiscountPercent(timeNow())
	if pct == 0 {
		c.JSON(http.StatusOK, gin.H{"valid": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":   true,
		"code":    coupon.Code,
		"percent": pct,
	})
}

// 🔒 POST /api/admin/coupons
func CreateCoupon(c *gin.Context) {
	if c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Réservé aux administrateurs"})
		return
	}

	var input struct {
		Code      string  `json:"code" binding:"required"`
		Percent   float64 `json:"percent" binding:"required,gt=0,lte=100"`
		StartsAt  string  `json:"starts_at"`
		ExpiresAt string  `json:"expires_at"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var startsAt, expiresAt time.Time
	if input.StartsAt != "" {
		t, err := time.Parse(time.RFC3339, input.StartsAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "starts_at invalide (RFC3339)"})
			return
		}
		startsAt = t
	}
	if input.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, input.ExpiresAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expires_at invalide (RFC3339)"})
			return
		}
		expiresAt = t
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	code := strings.ToUpper(input.Code)
	err = session.Query(`
		INSERT INTO coupons (code, percent, is_active, starts_at, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		code, input.Percent, true, startsAt, expiresAt, time.Now()).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"code": code, "percent": input.Percent})
}

// 🔒 GET /api/admin/coupons
func ListCoupons(c *gin.Context) {
	if c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Réservé aux administrateurs"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	var coupons []models.Coupon
	iter := session.Query(`
		SELECT code, percent, is_active, starts_at, expires_at, created_at
		FROM coupons`).Iter()

	var cp models.Coupon
	for iter.Scan(&cp.Code, &cp.Percent, &cp.IsActive, &cp.StartsAt, &cp.ExpiresAt, &cp.CreatedAt) {
		coupons = append(coupons, cp)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, coupons)
}

// 🔒 DELETE /api/admin/coupons/:code
// Désactivation, pas suppression : les commandes passées gardent leur trace.
func DeactivateCoupon(c *gin.Context) {
	if c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Réservé aux administrateurs"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	code := strings.ToUpper(c.Param("code"))
	err = session.Query("UPDATE coupons SET is_active = false WHERE code = ?", code).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coupon désactivé", "code": code})
}
