package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skirsanov/gadgetshop/internal/events"
	"github.com/skirsanov/gadgetshop/internal/logging"
	"github.com/skirsanov/gadgetshop/internal/service"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *events.Producer
}

func (h *AuthHTTP) publish(c echo.Context, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *AuthHTTP) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create_user")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("create_user_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid body"})
	}

	res, err := h.Svc.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "User already exists"})
		}
		l.Error("create_user_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}

	h.publish(c, events.TopicUserEvents, res.User.ID.String(), map[string]any{
		"type":    "user_created",
		"user_id": res.User.ID,
		"email":   res.User.Email,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"success":      true,
		"message":      "User Created Successfully",
		"accessToken":  res.AccessToken,
		"refreshToken": res.RefreshToken,
		"user":         echo.Map{"id": res.User.ID, "email": res.User.Email},
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid body"})
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "User does not exist!"})
		case errors.Is(err, service.ErrWrongPassword):
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Incorrect password!"})
		default:
			l.Error("login_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Server error"})
		}
	}

	h.publish(c, events.TopicUserEvents, res.User.ID.String(), map[string]any{
		"type":    "user_logged_in",
		"user_id": res.User.ID,
		"email":   res.User.Email,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"message":      "Login successfully!",
		"accessToken":  res.AccessToken,
		"refreshToken": res.RefreshToken,
		"user":         echo.Map{"id": res.User.ID, "email": res.User.Email, "role": res.User.Role},
	})
}

func (h *AuthHTTP) Token(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "token")

	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Refresh token required"})
	}

	accessToken, err := h.Svc.Refresh(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrForbiddenToken) {
			l.Warn("token_refresh_rejected", "status", 403)
			return c.JSON(http.StatusForbidden, echo.Map{"message": "Invalid or expired refresh token"})
		}
		l.Error("token_refresh_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"accessToken": accessToken})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "logout")

	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Refresh token required"})
	}

	if err := h.Svc.Logout(ctx, req.RefreshToken); err != nil {
		if errors.Is(err, service.ErrBadToken) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid refresh token"})
		}
		l.Error("logout_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}

func (h *AuthHTTP) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "change_password")

	var req struct {
		Email       string `json:"email"`
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.Email == "" || req.OldPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "All fields are required"})
	}

	if err := h.Svc.ChangePassword(ctx, req.Email, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		case errors.Is(err, service.ErrWrongPassword):
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Old password is incorrect"})
		default:
			l.Error("change_password_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Password changed successfully"})
}

func (h *AuthHTTP) UpdateEmail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update_email")

	var req struct {
		OldEmail string `json:"oldEmail"`
		NewEmail string `json:"newEmail"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.OldEmail == "" || req.NewEmail == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Old and new email required"})
	}

	if err := h.Svc.UpdateEmail(ctx, req.OldEmail, req.NewEmail); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		case errors.Is(err, service.ErrEmailTaken):
			return c.JSON(http.StatusConflict, echo.Map{"message": "Email already in use"})
		default:
			l.Error("update_email_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Email updated successfully. Please Login again!",
		"email":   service.NormalizeEmail(req.NewEmail),
	})
}

// GoogleSignup only probes for existence, trusting the caller's claim that the
// email was verified upstream. Response bodies mirror the public contract.
func (h *AuthHTTP) GoogleSignup(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid body"})
	}

	exists, err := h.Svc.GoogleUserExists(ctx, req.Email)
	if err != nil {
		logging.FromContext(ctx).Error("google_signup_error", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Server error"})
	}
	if exists {
		return c.JSON(http.StatusOK, echo.Map{"success": false, "message": "User exist. Please Login"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "error": "User not exists!"})
}

func (h *AuthHTTP) GoogleLogin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "google_login")

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid body"})
	}

	res, err := h.Svc.GoogleLogin(ctx, req.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "User not exists!"})
		}
		l.Error("google_login_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Server error"})
	}

	h.publish(c, events.TopicUserEvents, res.User.ID.String(), map[string]any{
		"type":    "user_logged_in",
		"user_id": res.User.ID,
		"email":   res.User.Email,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"message":      "Login Successfully!",
		"accessToken":  res.AccessToken,
		"refreshToken": res.RefreshToken,
		"user":         echo.Map{"id": res.User.ID, "email": res.User.Email, "role": res.User.Role},
	})
}
