package router

import (
	"github.com/gin-gonic/gin"
	"github.com/marketplace/backend/internal/interfaces/http/api"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// Route binds a declared endpoint to its handler
type Route struct {
	Endpoint api.Endpoint
	Handler  gin.HandlerFunc
}

// RouteRegistrar is implemented by every API handler
type RouteRegistrar interface {
	Routes() []Route
}

// Router registers API routes under api.BasePath behind authentication
type Router struct {
	engine     *gin.Engine
	auth       []gin.HandlerFunc
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAuth sets the middleware that establishes the session, followed by any
// middleware that needs it (tracing attributes, per-user rate limits)
func WithAuth(handlers ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.auth = append(r.auth, handlers...)
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds registrars to be wired by Setup
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup registers every route with its role guard
func (r *Router) Setup() {
	group := r.engine.Group(api.BasePath)
	group.Use(r.auth...)

	for _, registrar := range r.registrars {
		for _, route := range registrar.Routes() {
			group.Handle(route.Endpoint.Method, route.Endpoint.Path,
				middleware.RequireRoles(route.Endpoint.Roles...), route.Handler)
		}
	}
}
