package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/metrics"
	"storefront/internal/pricing"
	catalogsvc "storefront/internal/service/catalog"
	"storefront/internal/service/checkout"
	"storefront/internal/service/order"
	"storefront/internal/service/session"
)

type catalogService interface {
	Browse(f catalog.Filter) []domain.Product
	Get(ctx context.Context, ref string) (*domain.Product, error)
	Refresh(ctx context.Context) error
	Status() catalogsvc.Status
}

type checkoutService interface {
	Place(ctx context.Context, userID string, shop *session.Shop, in checkout.PlaceInput) (domain.Order, error)
	Quote(shop *session.Shop, coupon string) pricing.Totals
}

type orderBook interface {
	For(ctx context.Context, userID string) *order.Recorder
}

type addressService interface {
	List(ctx context.Context, userID string) ([]domain.Address, error)
	Get(ctx context.Context, userID, id string) (domain.Address, error)
	Add(ctx context.Context, userID string, a domain.Address) (domain.Address, error)
	Update(ctx context.Context, userID, id string, a domain.Address) (domain.Address, error)
	Delete(ctx context.Context, userID, id string) error
}

// Deps are the services behind the routes. Metrics may be nil. The address book routes
// are mounted only when Addresses is set.
type Deps struct {
	Catalog   catalogService
	Sessions  *session.Registry
	Checkout  checkoutService
	Orders    orderBook
	Addresses addressService
	Metrics   *metrics.Metrics
}

// Options configures cross-cutting middleware.
type Options struct {
	JWTSecret      string
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

type handlers struct {
	deps   Deps
	logger *zap.Logger
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps, opts Options) (*gin.Engine, error) {
	if deps.Catalog == nil || deps.Sessions == nil || deps.Checkout == nil || deps.Orders == nil {
		return nil, errors.New("httpserver: catalog, sessions, checkout and orders are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())
	if deps.Metrics != nil {
		router.Use(metricsMiddleware(deps.Metrics))
	}
	router.Use(cors.New(corsConfig(opts.CORSOrigins)))
	if opts.RateLimitRPS > 0 {
		router.Use(newRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst).middleware())
	}
	router.Use(authMiddleware(opts.JWTSecret, logger))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db, deps.Catalog))
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	h := &handlers{deps: deps, logger: logger}
	api := router.Group("/api")

	api.GET("/products", h.listProducts)
	api.GET("/products/:slug", h.getProduct)
	api.POST("/catalog/refresh", requireUser(), h.refreshCatalog)

	api.POST("/sessions", h.createSession)
	sessions := api.Group("/sessions/:id", sessionMiddleware(deps.Sessions))
	{
		sessions.DELETE("", h.deleteSession)
		sessions.GET("/cart", h.getCart)
		sessions.DELETE("/cart", h.clearCart)
		sessions.POST("/cart/items", h.addCartItem)
		sessions.DELETE("/cart/items", h.removeCartItem)
		sessions.POST("/cart/items/increase", h.increaseCartItem)
		sessions.POST("/cart/items/decrease", h.decreaseCartItem)
		sessions.GET("/wishlist", h.getWishlist)
		sessions.POST("/wishlist", h.toggleWishlist)
		sessions.GET("/wishlist/:productId", h.wishlistMembership)
		sessions.PUT("/search", h.setSearch)
		sessions.GET("/products", h.browseSession)
		sessions.GET("/notification", h.getNotification)
		sessions.GET("/notifications/ws", h.streamNotifications)
		sessions.POST("/checkout", requireUser(), h.placeOrder)
	}

	orders := api.Group("/orders", requireUser())
	orders.GET("", h.listOrders)
	orders.GET("/:orderId", h.getOrder)

	if deps.Addresses != nil {
		addresses := api.Group("/addresses", requireUser())
		addresses.GET("", h.listAddresses)
		addresses.POST("", h.addAddress)
		addresses.GET("/:addressId", h.getAddress)
		addresses.PUT("/:addressId", h.updateAddress)
		addresses.DELETE("/:addressId", h.deleteAddress)
	}

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
