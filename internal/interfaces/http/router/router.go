// Package router wires handlers into the storefront HTTP surface.
package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turkmasale/backend/internal/infrastructure/auth"
	"github.com/turkmasale/backend/internal/interfaces/http/handler"
	"github.com/turkmasale/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		registrars: make([]RouteRegistrar, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)

	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// StorefrontRoutes registers the public storefront endpoints: catalog
// reads, checkout and the contact form.
type StorefrontRoutes struct {
	Products *handler.ProductHandler
	Checkout *handler.CheckoutHandler
	Contact  *handler.ContactHandler
	System   *handler.SystemHandler
}

// RegisterRoutes implements RouteRegistrar
func (s *StorefrontRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	catalog := rg.Group("/catalog")
	{
		catalog.GET("/products", s.Products.List)
		catalog.GET("/products/:slug", s.Products.GetBySlug)
	}

	rg.POST("/orders", s.Checkout.Submit)
	rg.POST("/contact", s.Contact.Submit)

	system := rg.Group("/system")
	{
		system.GET("/ping", s.System.Ping)
	}
}

// AdminRoutes registers the cookie-gated admin endpoints. Login is the
// only exempt route and sits behind its own per-IP rate limiter.
type AdminRoutes struct {
	Auth     *handler.AuthHandler
	Products *handler.ProductHandler
	Orders   *handler.AdminOrderHandler
	Uploads  *handler.UploadHandler
	Sessions *auth.SessionService

	// LoginLimiter guards the login endpoint. When nil a default of
	// 5 attempts per minute per IP is used.
	LoginLimiter *middleware.RateLimiter
}

// RegisterRoutes implements RouteRegistrar
func (a *AdminRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	limiter := a.LoginLimiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(5, time.Minute)
	}

	admin := rg.Group("/admin")

	admin.POST("/login", middleware.AuthRateLimit(limiter), a.Auth.Login)

	gated := admin.Group("")
	gated.Use(middleware.AdminAuth(a.Sessions))
	{
		gated.POST("/logout", a.Auth.Logout)

		gated.GET("/orders", a.Orders.List)
		gated.GET("/orders/:id", a.Orders.Get)
		gated.PUT("/orders/:id/status", a.Orders.SetStatus)

		gated.POST("/products", a.Products.Create)
		gated.GET("/products/:id", a.Products.GetByID)
		gated.PUT("/products/:id", a.Products.Update)
		gated.DELETE("/products/:id", a.Products.Delete)

		gated.POST("/uploads", a.Uploads.Upload)
	}
}
