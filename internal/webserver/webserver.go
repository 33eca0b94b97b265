package webserver

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/restokit/restopos/internal/app"
	"go.uber.org/zap"
)

// AppContextKey is the echo context key under which the application
// context is injected for every request.
const AppContextKey = "restopos_app"

var server *WebServer

type WebServer struct {
	root   *echo.Echo
	api    *echo.Group
	appCtx app.AppContext
}

// Init builds the echo server, registers the shared middleware stack and
// creates the authenticated /api group. Handlers register themselves
// afterwards through ApiGET/ApiPOST/ApiPUT/ApiDELETE and PubPOST.
func Init(appCtx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = NewJSONSerializer()
	e.Validator = NewAPIValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(injectAppContext(appCtx))
	e.Use(requestLogger())

	api := e.Group("/api")
	api.Use(JwtMiddleware(appCtx.Config().Web.Secret))

	server = &WebServer{root: e, api: api, appCtx: appCtx}
	return server
}

// Listen starts the HTTP listener and blocks.
func Listen() error {
	cfg := server.appCtx.Config().Web
	zap.S().Infof("Starting web server on %s:%d", cfg.Host, cfg.Port)
	return server.root.Start(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port))
}

// injectAppContext makes the application context available to handlers.
func injectAppContext(appCtx app.AppContext) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppContextKey, appCtx)
			return next(c)
		}
	}
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			)
			return err
		}
	}
}

// ApiGET registers an authenticated GET route under /api
func ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.GET(path, h, m...)
}

// ApiPOST registers an authenticated POST route under /api
func ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.POST(path, h, m...)
}

// ApiPUT registers an authenticated PUT route under /api
func ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.PUT(path, h, m...)
}

// ApiDELETE registers an authenticated DELETE route under /api
func ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.DELETE(path, h, m...)
}

// PubPOST registers an unauthenticated POST route under /api
func PubPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.root.POST("/api"+path, h, m...)
}
