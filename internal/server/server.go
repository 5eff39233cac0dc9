package server

import (
	"net/http"

	"shopapi/internal/config"
	"shopapi/internal/handler"
	"shopapi/internal/infra/metrics"
	appmw "shopapi/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Handlers は各APIハンドラをまとめてルーティングへ渡す。
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Brand    *handler.BrandHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Wishlist *handler.WishlistHandler
}

func New(cfg config.Config, m *metrics.AppMetrics, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(appmw.Metrics(m))

	RegisterRoutes(e, cfg, h)
	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
