package main

import (
	"context"
	"log"
	"os"

	"tienda_backend/internal/config"
	"tienda_backend/internal/database"
	"tienda_backend/internal/payment"
	"tienda_backend/internal/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	database.ConnectDatabases()

	// Pré-chauffer la connexion Redis
	if err := database.Redis.Ping(context.Background()).Err(); err == nil {
		log.Println("✅ Cache Redis pré-chauffé")
	}

	// La passerelle est optionnelle en dev : sans token, seule la
	// branche de paiement simulé est disponible
	if err := payment.InitMercadoPago(); err != nil {
		log.Println("⚠️ Passerelle de paiement désactivée:", err)
	}

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Tienda lancé sur le port", port)
	r.Run(":" + port)
}
