package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const apiPrefix = "/api/v1"

// RouterConfig collects what NewRouter needs. Metrics may be nil.
type RouterConfig struct {
	Server      *Server
	API         *API
	Metrics     http.Handler
	Logger      *slog.Logger
	ServiceName string
}

// NewRouter builds the echo instance with every route registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	e.HTTPErrorHandler = NewErrorHandler(cfg.Logger)

	e.Use(middleware.Recover())
	e.Use(echo.WrapMiddleware(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, cfg.ServiceName,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.json", cfg.API.ServeDocument)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if cfg.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.Metrics))
	}

	s := cfg.Server
	api := e.Group(apiPrefix, cfg.API.ValidateRequests(), ResolveActor())
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:orderId", s.GetOrder)
	api.GET("/orders/:orderId/capabilities", s.GetOrderCapabilities)
	api.POST("/orders/:orderId/transitions", s.TransitionOrder)
	api.POST("/orders/:orderId/accept", s.AcceptOrder)
	api.POST("/orders/:orderId/deliveries", s.SubmitDelivery)
	api.POST("/orders/:orderId/revisions", s.RequestRevision)
	api.POST("/orders/:orderId/revisions/:revisionId/resolution", s.ResolveRevision)
	api.POST("/orders/:orderId/complete", s.CompleteOrder)
	api.POST("/orders/:orderId/cancel", s.CancelOrder)
	api.POST("/orders/:orderId/refund", s.RefundEscrow)
	api.GET("/orders/:orderId/audit", s.ListAuditRecords)

	return e
}
