package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ikhfad/sporton-backend/internal/logging"
	"github.com/ikhfad/sporton-backend/internal/service"
	"github.com/ikhfad/sporton-backend/internal/transport"
)

type BankHTTP struct {
	Svc *service.BankService
}

func (h *BankHTTP) GetBank(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "bank.get_bank")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_bank_failed", "status", 400, "reason", "invalid id format", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid bank id format")
	}

	bank, err := h.Svc.GetBank(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_bank_failed", "status", 404, "reason", "bank not found")
			return echo.NewHTTPError(http.StatusNotFound, "bank not found")
		}
		l.Error("get_bank_failed", "status", 500, "reason", "cannot get bank", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get bank")
	}

	return c.JSON(http.StatusOK, bank)
}

func (h *BankHTTP) GetBanks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "bank.get_banks")

	page, offset, limit := pagination(c)

	total, items, err := h.Svc.GetBanks(ctx, offset, limit)
	if err != nil {
		l.Error("get_banks_failed", "status", 500, "reason", "cannot list banks", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list banks")
	}

	return listResponse(c, page, limit, offset, total, items)
}

func (h *BankHTTP) CreateBank(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "bank.create_bank")

	var req transport.CreateBankRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("bank_create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	bank, err := h.Svc.CreateBank(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("bank_create_failed", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("bank_create_failed", "status", 500, "reason", "cannot create bank", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create bank")
	}

	l.Info("create_bank_success", "bank_id", bank.ID)
	return c.JSON(http.StatusCreated, bank)
}

func (h *BankHTTP) UpdateBank(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "bank.update_bank")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("bank_update_failed", "status", 400, "reason", "invalid id format", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid bank id format")
	}

	var req transport.UpdateBankRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("bank_update_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	bank, err := h.Svc.UpdateBank(ctx, id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("bank_update_failed", "status", 404, "reason", "bank not found")
			return echo.NewHTTPError(http.StatusNotFound, "bank not found")
		}
		l.Error("bank_update_failed", "status", 500, "reason", "cannot update bank", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update bank")
	}

	l.Info("update_bank_success", "bank_id", bank.ID)
	return c.JSON(http.StatusOK, bank)
}

func (h *BankHTTP) DeleteBank(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "bank.delete_bank")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("bank_delete_failed", "status", 400, "reason", "invalid id format", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid bank id format")
	}

	if err := h.Svc.DeleteBank(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("bank_delete_failed", "status", 404, "reason", "bank not found")
			return echo.NewHTTPError(http.StatusNotFound, "bank not found")
		}
		l.Error("bank_delete_failed", "status", 500, "reason", "cannot delete bank", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete bank")
	}

	l.Info("delete_bank_success", "bank_id", id)
	return c.JSON(http.StatusOK, echo.Map{"message": "bank deleted successfully"})
}
