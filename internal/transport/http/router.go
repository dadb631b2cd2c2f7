package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/nebulashop/storefront/internal/handlers"
	"github.com/nebulashop/storefront/internal/service/token"
)

type Deps struct {
	DB             *gorm.DB
	AuthHandler    *handlers.AuthHandler
	OrderHandler   *handlers.OrderHandler
	CommentHandler *handlers.CommentHandler
	ProfileHandler *handlers.ProfileHandler
	ProductHandler *handlers.ProductHandler
	SearchHandler  *handlers.SearchHandler
	TokenService   *token.TokenService
}

// ErrorHandler renders every handler error as {"error": message} with the
// matching status. Nothing escapes the boundary.
func ErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	msg := "Internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	}

	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, echo.Map{"error": msg})
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.LogOut)
	v1.POST("/forgot-password", d.AuthHandler.ForgotPassword)
	v1.POST("/reset-password", d.AuthHandler.ResetPassword)

	v1.GET("/products", d.ProductHandler.GetProducts)
	v1.GET("/products/:id", d.ProductHandler.GetProduct)
	v1.GET("/search", d.SearchHandler.Search)

	// Order creation allows guests; list/delete/status check the session
	// inside the handlers (an anonymous list is an empty list, not a 401).
	orders := v1.Group("/orders")
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("", d.OrderHandler.ListOrders)
	orders.DELETE("", d.OrderHandler.DeleteOrder)
	orders.PATCH("/:id/status", d.OrderHandler.UpdateStatus)

	comments := v1.Group("/comments")
	comments.GET("", d.CommentHandler.ListComments)
	comments.POST("", d.CommentHandler.CreateComment)
	comments.DELETE("/:id", d.CommentHandler.DeleteComment)

	account := v1.Group("", d.TokenService.AutoRefreshMiddleware)
	account.GET("/profile", d.ProfileHandler.GetProfile)
	account.PUT("/profile", d.ProfileHandler.UpdateProfile)
	account.GET("/settings", d.ProfileHandler.GetSettings)
	account.PUT("/settings", d.ProfileHandler.UpdateSettings)
}
