package routes

import (
	"os"
	"strings"
	"time"

	"tienda_backend/internal/handlers"
	"tienda_backend/internal/handlers/cart"
	"tienda_backend/internal/handlers/order"
	"tienda_backend/internal/handlers/payments"
	"tienda_backend/internal/handlers/product"
	"tienda_backend/internal/handlers/user"
	"tienda_backend/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	origins := strings.Split(os.Getenv("CORS_ORIGINS"), ",")
	if len(origins) == 1 && origins[0] == "" {
		origins = []string{"http://localhost:5173"}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// --- Auth ---
	api.POST("/auth/register", middleware.RegisterRateLimit(), handlers.Register)
	api.POST("/auth/login", middleware.LoginRateLimit(), handlers.Login)
	api.GET("/auth/me", middleware.AuthRequired(), handlers.Me)
	api.PUT("/auth/me", middleware.AuthRequired(), handlers.UpdateMe)

	// --- Catalogue (public) ---
	api.GET("/products", product.ListProducts)
	api.GET("/products/search", middleware.SearchRateLimit(), product.SearchProducts)
	api.GET("/products/:id", product.GetProduct)
	api.GET("/products/:id/reviews", product.GetReviews)
	api.GET("/sellers/:id/rating", product.GetSellerRating)

	// --- Livraison (public) ---
	api.GET("/shipping/options", payments.GetShippingOptions)

	// --- Webhook et retours passerelle (appelés par MercadoPago, pas de JWT) ---
	api.POST("/pagos/webhook", payments.Webhook)
	api.GET("/pagos/retorno/exito", payments.ReturnSuccess)
	api.GET("/pagos/retorno/pendiente", payments.ReturnPending)
	api.GET("/pagos/retorno/fallo", payments.ReturnFailure)

	// --- Routes authentifiées ---
	auth := api.Group("")
	auth.Use(middleware.AuthRequired())
	{
		// Catalogue (vendeur)
		auth.POST("/products", product.CreateProduct)
		auth.PUT("/products/:id", product.UpdateProduct)
		auth.DELETE("/products/:id", product.DeleteProduct)
		auth.POST("/products/:id/images", product.UploadProductImage)
		auth.POST("/products/:id/reviews", product.CreateReview)

		// Panier
		auth.GET("/cart", cart.GetCart)
		auth.POST("/cart/add", middleware.CartRateLimit(), cart.AddToCart)
		auth.PUT("/cart/quantity", cart.UpdateQuantity)
		auth.DELETE("/cart/:productId", cart.RemoveFromCart)
		auth.DELETE("/cart", cart.ClearCart)

		// Checkout et coupons
		auth.POST("/checkout", payments.Checkout)
		auth.POST("/coupons/validate", payments.ValidateCoupon)
		auth.GET("/admin/coupons", payments.ListCoupons)
		auth.POST("/admin/coupons", payments.CreateCoupon)
		auth.DELETE("/admin/coupons/:code", payments.DeactivateCoupon)

		// Commandes
		auth.GET("/orders", order.GetMyOrders)
		auth.GET("/orders/sales", order.GetMySales)
		auth.GET("/orders/:id", order.GetOrder)
		auth.GET("/orders/:id/qr", order.GetPickupQR)
		auth.PUT("/orders/:id/status", order.UpdateOrderStatus)
		auth.PUT("/orders/:id/items/:itemId/status", order.UpdateItemStatus)
		auth.POST("/orders/:id/confirmar", order.ConfirmDelivery)

		// Favoris
		auth.GET("/favorites", user.GetFavorites)
		auth.POST("/favorites/:productId", user.AddFavorite)
		auth.DELETE("/favorites/:productId", user.RemoveFavorite)

		// Messagerie
		auth.POST("/messages", user.SendMessage)
		auth.GET("/messages/conversations", user.GetConversations)
		auth.GET("/messages/:peerId", user.GetThread)

		// Notifications
		auth.GET("/notifications", user.GetNotifications)
		auth.PUT("/notifications/read-all", user.MarkAllNotificationsRead)
		auth.PUT("/notifications/:id/read", user.MarkNotificationRead)
		auth.GET("/notifications/ws", user.Connect)
	}
}
