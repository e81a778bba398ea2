package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ikhfad/sporton-backend/internal/logging"
	"github.com/ikhfad/sporton-backend/internal/service"
	"github.com/ikhfad/sporton-backend/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) SignIn(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.sign_in")

	var req transport.SignInRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("sign_in_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	token, user, err := h.Svc.SignIn(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("sign_in_failed", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("sign_in_failed", "status", 401, "reason", "invalid credentials")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		l.Error("sign_in_failed", "status", 500, "reason", "cannot sign in", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot sign in")
	}

	l.Info("sign_in_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user": echo.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

func (h *AuthHTTP) InitiateAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.initiate_admin")

	var req transport.InitiateAdminRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("initiate_admin_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.InitiateAdmin(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("initiate_admin_failed", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "name, email and password are required")
		}
		if errors.Is(err, service.ErrConflict) {
			l.Warn("initiate_admin_failed", "status", 409, "reason", "admin already exists")
			return echo.NewHTTPError(http.StatusConflict,
				"only one admin user is allowed; delete the existing user manually to create a new one")
		}
		l.Error("initiate_admin_failed", "status", 500, "reason", "cannot create admin", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create admin user")
	}

	l.Info("initiate_admin_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, echo.Map{"message": "admin user created successfully"})
}
