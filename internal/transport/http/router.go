package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/cozythreads/storefront/internal/handlers"
	"github.com/cozythreads/storefront/internal/logging"
)

type Deps struct {
	Log             *slog.Logger
	ProductHandler  *handlers.ProductHandler
	CartHandler     *handlers.CartHandler
	CheckoutHandler *handlers.CheckoutHandler
	SearchHandler   *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.Use(requestLogger(d.Log))

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	products := v1.Group("/products")
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.GET("", d.ProductHandler.GetProducts)

	if d.SearchHandler != nil {
		v1.GET("/search", d.SearchHandler.Search)
	}

	cart := v1.Group("/cart")
	cart.GET("", d.CartHandler.GetCart)
	cart.PUT("/items/:id", d.CartHandler.SetQuantity)
	cart.DELETE("/items/:id", d.CartHandler.RemoveItem)
	cart.POST("/toggle/:id", d.CartHandler.Toggle)
	cart.DELETE("", d.CartHandler.ClearCart)

	co := v1.Group("/checkout")
	co.POST("/payment-intent", d.CheckoutHandler.CreateIntent)
	co.POST("/complete", d.CheckoutHandler.Complete)
}

// requestLogger puts the application logger into the request context, tagged
// with the request id when one is present, so handlers log through
// logging.FromContext.
func requestLogger(log *slog.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = slog.Default()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := log
			if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
				l = l.With("request_id", id)
			}
			req := c.Request()
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))
			return next(c)
		}
	}
}
