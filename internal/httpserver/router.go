package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skirsanov/gadgetshop/internal/middleware"
)

type Deps struct {
	Auth    *AuthHTTP
	Cart    *CartHTTP
	Product *ProductHTTP
	Order   *OrderHTTP
	Upload  *UploadHTTP
	Payment *PaymentHTTP
	AuthMW  *middleware.Auth
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "API is running...") })

	e.POST("/create-user", d.Auth.CreateUser)
	e.POST("/login", d.Auth.Login)
	e.POST("/token", d.Auth.Token)
	e.POST("/logout", d.Auth.Logout)
	e.PUT("/change-password", d.Auth.ChangePassword)
	e.PUT("/update-email", d.Auth.UpdateEmail)
	e.POST("/google-signup", d.Auth.GoogleSignup)
	e.POST("/google-login", d.Auth.GoogleLogin)

	e.GET("/get-data", d.Product.GetData)
	e.GET("/search", d.Product.Search)
	e.DELETE("/delete-product/:id", d.Product.Delete)
	e.POST("/admin-management", d.Product.Create,
		d.AuthMW.RequireAuth, d.AuthMW.RequireRole("admin"))

	e.POST("/upload", d.Upload.Upload)

	e.POST("/order-now", d.Payment.OrderNow)
	e.POST("/verify", d.Payment.Verify)

	cart := e.Group("/cart")
	cart.POST("/addtocart", d.Cart.AddToCart)
	cart.POST("/increase", d.Cart.Increase)
	cart.GET("/:UserId", d.Cart.GetCart)
	cart.GET("/:UserId/quantity", d.Cart.GetQuantities)
	cart.PUT("/decrease-cart", d.Cart.Decrease)
	cart.DELETE("/remove", d.Cart.Remove)
	cart.PUT("/clear-cart", d.Cart.Clear)

	order := e.Group("/order")
	order.POST("/place-order", d.Order.PlaceOrder)
	order.GET("/history/:userId", d.Order.History)
}
