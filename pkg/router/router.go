package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vriksha-lab/backend/config"
	"github.com/vriksha-lab/backend/pkg/logger"
)

const (
	UserIDHeader    = "X-User-ID"
	SessionIDHeader = "X-Session-ID"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. A returned error aborts the request
// with the usual error envelope.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

type Router struct {
	Inner  gin.IRouter
	cfg    config.Configs
	logger logger.Logger

	middlewares []MiddlewareFunc
}

func New(cfg config.Configs, logger logger.Logger) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), metricsMiddleware(), loggerMiddleware(logger))

	return &Router{
		Inner:  engine,
		cfg:    cfg,
		logger: logger,
	}
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

// Handle registers a plain gin handler, for endpoints that do not speak the
// JSON envelope such as websocket upgrades and metrics.
func (r *Router) Handle(method, pattern string, handler gin.HandlerFunc) {
	r.Inner.Handle(method, pattern, handler)
}

func (r *Router) Use(middleware MiddlewareFunc) {
	r.middlewares = append(r.middlewares, middleware)
}

// Group returns a router whose routes share the prefix and the middlewares
// registered so far.
func (r *Router) Group(pattern string) *Router {
	return &Router{
		Inner:       r.Inner.Group(pattern),
		cfg:         r.cfg,
		logger:      r.logger,
		middlewares: append([]MiddlewareFunc{}, r.middlewares...),
	}
}

func (r *Router) Handler() http.Handler {
	return r.Inner.(*gin.Engine)
}
