package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"bakery-storefront/internal/catalog"
	"bakery-storefront/internal/service"
	"bakery-storefront/internal/session"
	"bakery-storefront/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	sessionCookie = "qisti_session"
	sessionKey    = "session"
)

// Pinger is a dependency checked by the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler contains HTTP handlers
type Handler struct {
	catalog         *catalog.Catalog
	registry        *session.Registry
	checkoutService *service.CheckoutService
	readiness       map[string]Pinger
	cookieMaxAge    int
	secureCookie    bool
	logger          *zap.Logger
}

// Options tune the session cookie and readiness probe
type Options struct {
	CookieMaxAge time.Duration
	SecureCookie bool
	Readiness    map[string]Pinger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	cat *catalog.Catalog,
	registry *session.Registry,
	checkoutService *service.CheckoutService,
	opts Options,
) *Handler {
	return &Handler{
		catalog:         cat,
		registry:        registry,
		checkoutService: checkoutService,
		readiness:       opts.Readiness,
		cookieMaxAge:    int(opts.CookieMaxAge.Seconds()),
		secureCookie:    opts.SecureCookie,
		logger:          util.GetLogger(),
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.GET("/menu", h.getMenu)
	v1.GET("/menu/filters", h.getMenuFilters)
	v1.GET("/booking/whatsapp", h.getWhatsAppLink)
	v1.POST("/booking/link", h.createBookingLink)

	visitor := v1.Group("", h.sessionMiddleware())
	{
		visitor.GET("/cart", h.getCart)
		visitor.POST("/cart/items", h.addCartItem)
		visitor.PATCH("/cart/items/:id", h.updateCartItem)
		visitor.DELETE("/cart/items/:id", h.removeCartItem)
		visitor.DELETE("/cart", h.clearCart)
		visitor.PUT("/cart/open", h.setCartOpen)

		visitor.POST("/checkout", h.checkout)

		visitor.GET("/view", h.getView)
		visitor.POST("/view", h.navigate)
		visitor.GET("/receipt", h.getReceipt)

		visitor.GET("/concierge/messages", h.getMessages)
		visitor.POST("/concierge/messages", h.sendMessage)
		visitor.POST("/concierge/designs", h.createDesign)
		visitor.GET("/concierge/designs/latest", h.getLatestDesign)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck pings every configured dependency
func (h *Handler) readinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	failed := gin.H{}
	for name, p := range h.readiness {
		if err := p.Ping(ctx); err != nil {
			failed[name] = err.Error()
		}
	}

	if len(failed) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"failed": failed,
			"time":   time.Now().Unix(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// sessionMiddleware resolves the visitor session from its cookie, issuing
// a new one when the cookie is missing or malformed.
func (h *Handler) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil || !session.ValidID(id) {
			id = session.NewID()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, id, h.cookieMaxAge, "/", "", h.secureCookie, true)

		c.Set(sessionKey, h.registry.Get(c.Request.Context(), id))
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
