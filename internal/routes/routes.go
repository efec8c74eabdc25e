package routes

import (
	"net/http"
	"time"

	"github.com/01moynul/taptosell-storefront/internal/auth"
	"github.com/01moynul/taptosell-storefront/internal/handlers"
	"github.com/01moynul/taptosell-storefront/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options configures the router around the handlers.
type Options struct {
	Signer         *auth.Signer
	VisitorCookie  string
	SecureCookie   bool
	AllowedOrigins []string
}

// CORSMiddleware lets the storefront frontend call us with its cookies.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept", "Accept-Encoding", "Authorization", "Cache-Control", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func SetupRouter(h *handlers.Handlers, opts Options) *gin.Engine {
	router := gin.Default()

	// --- APPLY THE CORS GUARD ---
	// Must run before the visitor cookie so preflights are answered first.
	router.Use(CORSMiddleware(opts.AllowedOrigins))

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// Everything else knows who the visitor is.
		shop := v1.Group("/")
		shop.Use(middleware.VisitorMiddleware(opts.Signer, opts.VisitorCookie, opts.SecureCookie))
		shop.Use(middleware.SessionMiddleware(h.Sessions))

		// --- Session & Auth Routes (Public) ---
		shop.GET("/session", h.GetSession)
		shop.POST("/auth/login", h.Login)
		shop.POST("/auth/logout", h.Logout)
		shop.POST("/auth/register", h.Register)
		shop.POST("/auth/verify", h.VerifyEmail)
		shop.POST("/auth/resend-code", h.ResendVerificationEmail)
		shop.POST("/auth/forgot-password", h.ForgotPassword)
		shop.POST("/auth/reset-password", h.ResetPassword)

		// --- Catalog Routes (Public) ---
		shop.GET("/categories", h.GetAllCategories)
		shop.GET("/categories/:id", h.GetCategory)
		shop.GET("/categories/:id/products", h.GetCategoryProducts)
		shop.GET("/products/featured", h.GetFeaturedProducts)
		shop.GET("/products/search", h.SearchProducts)
		shop.GET("/products/:id", h.GetProduct)
		shop.GET("/products/:id/related", h.GetRelatedProducts)

		// --- Cart Routes (Guests and Customers) ---
		shop.GET("/cart", h.GetCart)
		shop.POST("/cart/items", h.AddToCart)
		shop.PATCH("/cart/items/:id", h.UpdateCartItem)
		shop.DELETE("/cart/items/:id", h.RemoveCartItem)
		shop.DELETE("/cart", h.ClearCart)

		shop.GET("/order-confirmation", h.GetOrderConfirmation)

		// --- Protected Routes (Login Required) ---
		customer := shop.Group("/")
		customer.Use(middleware.AuthRequired())
		{
			customer.GET("/wishlist", h.GetWishlist)
			customer.POST("/wishlist", h.AddToWishlist)
			customer.DELETE("/wishlist/:productId", h.RemoveFromWishlist)
			customer.POST("/wishlist/:productId/toggle", h.ToggleWishlist)

			customer.GET("/checkout", h.GetCheckout)
			customer.POST("/checkout", h.PlaceOrder)

			customer.GET("/orders", h.GetMyOrders)
			customer.PATCH("/orders/:id/cancel", h.CancelOrder)
		}

		// --- Admin-Only Routes ---
		admin := shop.Group("/admin")
		admin.Use(middleware.AdminOnly())
		{
			admin.GET("/dashboard", h.AdminDashboard)

			admin.GET("/categories", h.AdminGetCategories)
			admin.POST("/categories", h.AdminCreateCategory)
			admin.PATCH("/categories/:id", h.AdminUpdateCategory)
			admin.DELETE("/categories/:id", h.AdminDeleteCategory)

			admin.GET("/products", h.AdminGetProducts)
			admin.POST("/products", h.AdminCreateProduct)
			admin.PATCH("/products/:id", h.AdminUpdateProduct)
			admin.PATCH("/products/:id/images", h.AdminUpdateProductImages)
			admin.DELETE("/products/:id", h.AdminDeleteProduct)
			admin.POST("/products/:id/attributes", h.AdminAssignAttributes)
			admin.GET("/products/:id/variants/preview", h.AdminPreviewVariants)
			admin.POST("/products/:id/variants", h.AdminGenerateVariants)

			admin.GET("/attributes", h.AdminGetAttributes)
			admin.POST("/attributes", h.AdminCreateAttribute)
			admin.DELETE("/attributes/:id", h.AdminDeleteAttribute)

			admin.GET("/orders", h.AdminGetOrders)
			admin.PATCH("/orders/:id/status", h.AdminUpdateOrderStatus)

			admin.GET("/users", h.AdminGetUsers)
		}
	}

	return router
}
