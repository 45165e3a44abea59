package app

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/vehicle-booking-board/internal/api"
	"github.com/nekogravitycat/vehicle-booking-board/internal/booking"
	"github.com/nekogravitycat/vehicle-booking-board/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction   bool
	ProdOrigins    []string
	TrustedProxies []string
	Repository     user.Repository
	// Location is the zone booking dates and times are read in. Nil means time.Local.
	Location *time.Location
	// Now overrides the clock, mainly for tests. Its result is converted to Location.
	Now        func() time.Time
	PhoneRules user.PhoneRules
	// RegisterRate is the registrations allowed per second per client IP. Zero disables throttling.
	RegisterRate  float64
	RegisterBurst int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	UserService    user.Service
	BookingService booking.Service

	limiter *api.RateLimiter
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	clock := func() time.Time { return now().In(loc) }

	// User Module
	// Profile changes persist the same swept state as booking changes.
	userService := user.NewService(cfg.Repository, cfg.PhoneRules, user.WithSweep(func(records []user.Record) []user.Record {
		return booking.Sweep(records, clock())
	}))

	// Booking Module
	bookingService := booking.NewService(cfg.Repository, clock)

	var limiter *api.RateLimiter
	if cfg.RegisterRate > 0 {
		limiter = api.NewRateLimiter(cfg.RegisterRate, cfg.RegisterBurst)
	}

	// Router
	router := api.NewRouter(api.RouterConfig{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		TrustedProxies:  cfg.TrustedProxies,
		RegisterLimiter: limiter,
	}, userService, bookingService)

	return &Container{
		Router:         router,
		UserService:    userService,
		BookingService: bookingService,
		limiter:        limiter,
	}
}

// Close releases background resources held by the container.
func (c *Container) Close() {
	if c.limiter != nil {
		c.limiter.Close()
	}
}
