package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/skirsanov/gadgetshop/internal/logging"
	"github.com/skirsanov/gadgetshop/internal/service"
)

type CartHTTP struct {
	Svc *service.CartService
}

type cartRequest struct {
	UserID    uuid.UUID `json:"UserId"`
	ProductID uuid.UUID `json:"productId"`
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_add")

	var req cartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	cart, err := h.Svc.AddToCart(ctx, req.UserID, req.ProductID)
	if err != nil {
		l.Error("cart_add_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, cart)
}

// Increase shares the add path: increment when present, append otherwise.
func (h *CartHTTP) Increase(c echo.Context) error {
	return h.AddToCart(c)
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_get")

	userID, err := uuid.Parse(c.Param("UserId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
	}

	items, err := h.Svc.Hydrate(ctx, userID)
	if err != nil {
		l.Error("cart_get_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

func (h *CartHTTP) GetQuantities(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_quantity")

	userID, err := uuid.Parse(c.Param("UserId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
	}

	items, err := h.Svc.Quantities(ctx, userID)
	if err != nil {
		l.Error("cart_quantity_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Decrease answers missing cart or item with a soft message, not an error
// status. The quantity itself has no floor at zero.
func (h *CartHTTP) Decrease(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_decrease")

	var req cartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	cart, err := h.Svc.Decrease(ctx, req.UserID, req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartNotFound):
			return c.JSON(http.StatusOK, echo.Map{"message": "Cart not found!"})
		case errors.Is(err, service.ErrItemNotFound):
			return c.JSON(http.StatusOK, echo.Map{"message": "Item not found in cart!"})
		default:
			l.Error("cart_decrease_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
		}
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) Remove(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_remove")

	var req cartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	cart, err := h.Svc.Remove(ctx, req.UserID, req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrCartNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"message": "Cart not found!"})
		}
		l.Error("cart_remove_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_clear")

	var req struct {
		UserID uuid.UUID `json:"UserId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	if err := h.Svc.Clear(ctx, req.UserID); err != nil {
		if errors.Is(err, service.ErrCartNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Cart not found!"})
		}
		l.Error("cart_clear_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to clear cart"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Cart cleared after order placed"})
}
