package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/skirsanov/gadgetshop/internal/events"
	"github.com/skirsanov/gadgetshop/internal/logging"
	"github.com/skirsanov/gadgetshop/internal/service"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Producer *events.Producer
}

func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "place_order")

	var req struct {
		UserID uuid.UUID                `json:"UsrId"`
		Items  []service.OrderItemInput `json:"Items"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	order, err := h.Svc.PlaceOrder(ctx, req.UserID, req.Items)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
		l.Error("place_order_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to place order"})
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(pubCtx, events.TopicOrderEvents, order.UserID.String(), map[string]any{
		"type":     "order_placed",
		"order_id": order.ID,
		"user_id":  order.UserID,
	}); err != nil {
		l.Error("kafka publish error", "error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Order placed successfully"})
}

func (h *OrderHTTP) History(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order_history")

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
	}

	orders, err := h.Svc.History(ctx, userID)
	if err != nil {
		l.Error("order_history_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch order history"})
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}
