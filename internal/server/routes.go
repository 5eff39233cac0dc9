package server

import (
	"net/http"

	"shopapi/internal/config"
	appmw "shopapi/internal/middleware"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	jwt := appmw.AuthJWT(cfg)
	admin := appmw.AdminRoleGuard()

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello world")
	})

	//認証
	e.POST("/auth/register", h.Auth.Register)
	e.POST("/auth/login", h.Auth.Login)
	e.GET("/auth/role", h.Auth.Role, jwt)

	//ユーザ
	e.POST("/api/users", h.User.Create)
	e.GET("/api/users/:id", h.User.Detail, jwt)
	e.PATCH("/api/users/:id", h.User.Update, jwt)
	e.DELETE("/api/users/:id", h.User.Delete, jwt)
	e.GET("/users", h.User.List, jwt, admin)

	//商品
	e.GET("/api/products", h.Product.List)
	e.GET("/api/products/:id", h.Product.Detail)
	e.POST("/api/products", h.Product.Create, jwt, admin)
	e.PATCH("/api/products/:id", h.Product.Update, jwt, admin)
	e.DELETE("/api/products/:id", h.Product.Delete, jwt, admin)
	e.GET("/api/products/export", h.Product.Export, jwt, admin)

	//カテゴリ
	e.GET("/api/categories", h.Category.List)
	e.GET("/api/categories/:id", h.Category.Detail)
	e.POST("/api/categories", h.Category.Create, jwt, admin)
	e.PATCH("/api/categories/:id", h.Category.Update, jwt, admin)
	e.DELETE("/api/categories/:id", h.Category.Delete, jwt, admin)

	//ブランド
	e.GET("/api/brands", h.Brand.List)
	e.GET("/api/brands/:id", h.Brand.Detail)
	e.POST("/api/brands", h.Brand.Create, jwt, admin)
	e.PATCH("/api/brands/:id", h.Brand.Update, jwt, admin)
	e.DELETE("/api/brands/:id", h.Brand.Delete, jwt, admin)

	//カート
	e.POST("/carts", h.Cart.Add, jwt)
	e.GET("/carts", h.Cart.List, jwt)
	e.PUT("/carts/:id", h.Cart.Update, jwt)
	e.DELETE("/carts/:id", h.Cart.Remove, jwt)

	//注文
	e.POST("/orders", h.Order.Checkout, jwt)
	e.GET("/orders", h.Order.List, jwt)
	e.DELETE("/orders/:id", h.Order.Delete, jwt)

	//ウィッシュリスト
	e.POST("/wishlist", h.Wishlist.Add, jwt)
	e.GET("/wishlist", h.Wishlist.List, jwt)
	e.DELETE("/wishlist/:id", h.Wishlist.Remove, jwt)
}
