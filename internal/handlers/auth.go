package handlers

import (
	"log"
	"net/http"
	"time"

	"tienda_backend/internal/cache"
	"tienda_backend/internal/database"
	"tienda_backend/internal/models"
	"tienda_backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// ================== AUTH LOCALE ==================

// POST /api/auth/register
func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Phone    string `json:"phone"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	// Vérifier si l'email existe déjà
	var existingID gocql.UUID
	err = session.Query("SELECT user_id FROM users WHERE email = ? LIMIT 1 ALLOW FILTERING",
		input.Email).Scan(&existingID)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Un compte avec cet email existe déjà",
			"email": input.Email,
		})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur hash mot de passe"})
		return
	}

	userID := gocql.TimeUUID()
	err = session.Query(`
		INSERT INTO users (user_id, name, email, phone, password, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, input.Name, input.Email, input.Phone,
		hashedPassword, "customer", time.Now()).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Email de bienvenue en arrière-plan
	go func() {
		if err := utils.SendWelcomeEmail(input.Email, input.Name); err != nil {
			log.Printf("⚠️ Erreur envoi email bienvenue: %v", err)
		}
	}()

	c.JSON(http.StatusCreated, gin.H{
		"id":    userID.String(),
		"email": input.Email,
		"role":  "customer",
	})
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	var (
		userID               gocql.UUID
		name, password, role string
	)
	err = session.Query(`SELECT user_id, name, password, role
		FROM users WHERE email = ? LIMIT 1 ALLOW FILTERING`, input.Email).
		Scan(&userID, &name, &password, &role)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Mot de passe incorrect"})
		return
	}

	user := models.User{
		ID:    userID.String(),
		Name:  name,
		Email: input.Email,
		Role:  role,
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	log.Printf("✅ Connexion réussie: %s", input.Email)

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"userId": user.ID,
		"name":   user.Name,
		"email":  user.Email,
		"role":   user.Role,
	})
}

// GET /api/auth/me
func Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	user, err := cache.GetUserFromCache(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// PUT /api/auth/me
func UpdateMe(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		Name  *string `json:"name"`
		Phone *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := cache.GetUserFromCache(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	if input.Name != nil && *input.Name != "" {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	uid, err := gocql.ParseUUID(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID utilisateur invalide"})
		return
	}

	err = session.Query("UPDATE users SET name = ?, phone = ? WHERE user_id = ?",
		user.Name, user.Phone, uid).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.InvalidateUserCache(userID)
	c.JSON(http.StatusOK, user)
}
