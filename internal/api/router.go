package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/vehicle-booking-board/internal/booking"
	bookingHttp "github.com/nekogravitycat/vehicle-booking-board/internal/booking/http"
	"github.com/nekogravitycat/vehicle-booking-board/internal/user"
	userHttp "github.com/nekogravitycat/vehicle-booking-board/internal/user/http"
)

// RouterConfig holds the HTTP-level settings of the router.
type RouterConfig struct {
	IsProduction bool
	ProdOrigins  []string
	// TrustedProxies lists the proxy IPs or CIDRs whose X-Forwarded-For is
	// believed. Empty means the peer address is the client IP.
	TrustedProxies []string
	// RegisterLimiter throttles account creation. Nil disables throttling.
	RegisterLimiter *RateLimiter
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (Request ID, Logger, CORS) and registering routes for various modules.
func NewRouter(
	cfg RouterConfig,
	userService user.Service,
	bookingService booking.Service,
) *gin.Engine {

	r := gin.New()

	// Match routes on the escaped path so a username containing "/" (sent as
	// %2F) stays inside its :username segment.
	r.UseRawPath = true
	r.UnescapePathValues = true

	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Printf("ignoring trusted proxies %v: %v", cfg.TrustedProxies, err)
		_ = r.SetTrustedProxies(nil)
	}

	// Global Middleware:
	// - RequestID: Tags every request so log lines can be correlated.
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(RequestID(), gin.LoggerWithFormatter(logFormatter), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	// Production without PROD_ORIGINS serves same-origin clients only.
	if !cfg.IsProduction || len(cfg.ProdOrigins) > 0 {
		config := cors.DefaultConfig()
		if cfg.IsProduction {
			config.AllowOrigins = cfg.ProdOrigins
		} else {
			config.AllowAllOrigins = true
		}
		config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
		config.AllowHeaders = []string{"Origin", "Content-Type", requestIDHeader}
		config.ExposeHeaders = []string{requestIDHeader}
		r.Use(cors.New(config))
	}

	registerLimiter := func(c *gin.Context) { c.Next() }
	if cfg.RegisterLimiter != nil {
		registerLimiter = cfg.RegisterLimiter.Middleware()
	}

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(userService)
	bookingHandler := bookingHttp.NewHandler(bookingService)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, registerLimiter)
		bookingHttp.RegisterRoutes(v1, bookingHandler)
	}

	return r
}

func logFormatter(p gin.LogFormatterParams) string {
	id, _ := p.Keys[requestIDHeader].(string)
	return fmt.Sprintf("[GIN] %s | %s | %3d | %13v | %15s | %-7s %#v\n%s",
		p.TimeStamp.Format(time.RFC3339),
		id,
		p.StatusCode,
		p.Latency,
		p.ClientIP,
		p.Method,
		p.Path,
		p.ErrorMessage,
	)
}
