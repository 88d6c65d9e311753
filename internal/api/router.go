package api

import (
	"net/http" // HTTP status codes
	"time"     // CORS max age

	"ecommerce_api/internal/config"     // Application configuration
	"ecommerce_api/internal/metrics"    // Prometheus instrumentation
	"ecommerce_api/internal/middleware" // Custom middleware
	"ecommerce_api/internal/session"    // Cookie sessions
	"ecommerce_api/internal/shop"       // Services

	"github.com/gin-contrib/cors" // CORS middleware
	"github.com/gin-gonic/gin"    // Gin web framework
)

// Deps are the explicitly constructed handles the router wires into handlers
type Deps struct {
	Config   *config.Config      // Application configuration
	Auth     *shop.Authenticator // Credential verifier and principal resolver
	Sessions *session.Manager    // Cookie sessions
	Carts    *shop.CartManager   // Cart manager
	Checkout *shop.Checkout      // Checkout workflow
	Catalog  *shop.Catalog       // Products
	Orders   *shop.Orders        // Orders
}

// NewRouter assembles the gin engine with middleware and every route
func NewRouter(d Deps) *gin.Engine {
	r := gin.New() // Gin router instance
	r.Use(middleware.RequestLogger(), gin.Recovery(), metrics.Middleware(), corsMiddleware(d.Config))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) }) // Liveness probe
	r.GET("/metrics", gin.WrapH(metrics.Handler()))                                          // Prometheus scrape endpoint

	api := r.Group("/api")
	authed := middleware.SessionAuth(d.Sessions, d.Auth) // Session guard
	adminOnly := middleware.AdminOnly()                  // Role guard

	// User routes
	users := api.Group("/users")
	users.POST("/register", RegisterHandler(d.Auth))         // Registration endpoint
	users.POST("/login", LoginHandler(d.Auth, d.Sessions))   // Login endpoint
	users.POST("/logout", authed, LogoutHandler(d.Sessions)) // Logout endpoint
	users.GET("/me", authed, MeHandler())                    // Current user endpoint

	// Product routes, writes are admin only
	products := api.Group("/products")
	products.GET("", ListProductsHandler(d.Catalog))                            // List products
	products.GET("/:id", GetProductHandler(d.Catalog))                          // Get product
	products.POST("", authed, adminOnly, CreateProductHandler(d.Catalog))       // Create product
	products.PUT("/:id", authed, adminOnly, UpdateProductHandler(d.Catalog))    // Update product
	products.DELETE("/:id", authed, adminOnly, DeleteProductHandler(d.Catalog)) // Delete product

	// Order routes
	orders := api.Group("/orders", authed)
	orders.GET("", ListOrdersHandler(d.Orders))                    // List visible orders
	orders.GET("/:id", GetOrderHandler(d.Orders))                  // Get order
	orders.POST("", adminOnly, CreateOrderHandler(d.Orders))       // Create order manually
	orders.PUT("/:id", adminOnly, UpdateOrderHandler(d.Orders))    // Update order
	orders.DELETE("/:id", adminOnly, DeleteOrderHandler(d.Orders)) // Delete order

	// Cart routes, protected by session and ownership checks
	cart := api.Group("/cart", authed)
	owner := middleware.CartOwner(d.Carts)
	cart.POST("", CreateCartHandler(d.Carts))                          // Create cart
	cart.POST("/:cartId", owner, AddItemHandler(d.Carts))              // Add item
	cart.GET("/:cartId", owner, GetCartHandler(d.Carts))               // List items
	cart.DELETE("/:cartId", owner, DeleteCartHandler(d.Carts))         // Delete cart
	cart.POST("/:cartId/checkout", owner, CheckoutHandler(d.Checkout)) // Checkout

	return r
}

// corsMiddleware allows the configured origins; credentials are only
// allowed for an explicit origin list.
func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = cfg.CORSOrigins
		cc.AllowCredentials = true
	}
	return cors.New(cc)
}
