package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skirsanov/gadgetshop/internal/logging"
	"github.com/skirsanov/gadgetshop/internal/payment"
)

type PaymentHTTP struct {
	Client *payment.Client
}

func (h *PaymentHTTP) OrderNow(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order_now")

	var req struct {
		Amount int64 `json:"amount"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	order, err := h.Client.CreateOrder(ctx, req.Amount)
	if err != nil {
		l.Error("payment_order_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Order Creation Failed!"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": order})
}

// Verify checks the gateway callback signature. Field names follow the
// gateway's wire contract.
func (h *PaymentHTTP) Verify(c echo.Context) error {
	var req struct {
		PaymentID string `json:"razorpay_payment_id"`
		OrderID   string `json:"razorpay_order_id"`
		Signature string `json:"razorpay_signature"`
	}
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "Failure")
	}

	if h.Client.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		return c.String(http.StatusOK, "Success")
	}
	return c.String(http.StatusBadRequest, "Failure")
}
