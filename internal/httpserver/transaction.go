package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ikhfad/sporton-backend/internal/logging"
	"github.com/ikhfad/sporton-backend/internal/mykafka"
	"github.com/ikhfad/sporton-backend/internal/repo"
	"github.com/ikhfad/sporton-backend/internal/service"
	"github.com/ikhfad/sporton-backend/internal/storage"
	"github.com/ikhfad/sporton-backend/internal/transport"
)

type TransactionHTTP struct {
	Svc      *service.TransactionService
	Assets   *storage.Store
	Producer *mykafka.Producer
}

func (h *TransactionHTTP) GetTransaction(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "transaction.get_transaction")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_transaction_failed", "status", 400, "reason", "invalid id format", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid transaction id format")
	}

	trx, err := h.Svc.GetTransaction(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_transaction_failed", "status", 404, "reason", "transaction not found")
			return echo.NewHTTPError(http.StatusNotFound, "transaction not found")
		}
		l.Error("get_transaction_failed", "status", 500, "reason", "cannot get transaction", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get transaction")
	}

	return c.JSON(http.StatusOK, trx)
}

func (h *TransactionHTTP) GetTransactions(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "transaction.get_transactions")

	page, offset, limit := pagination(c)

	total, items, err := h.Svc.GetTransactions(ctx, offset, limit)
	if err != nil {
		l.Error("get_transactions_failed", "status", 500, "reason", "cannot list transactions", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list transactions")
	}

	return listResponse(c, page, limit, offset, total, items)
}

// CreateTransaction takes the checkout form: customer fields, the purchased
// items as a JSON text field, and the payment proof file. The file is
// rejected up front when absent; once stored, every failure path ends with
// the service removing it again.
func (h *TransactionHTTP) CreateTransaction(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "transaction.create_transaction")

	var req transport.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("transaction_create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	fh, err := formImage(c, "payment_proof")
	if err != nil {
		l.Warn("transaction_create_failed", "status", 400, "reason", "invalid upload", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid upload")
	}
	if fh == nil {
		l.Warn("transaction_create_failed", "status", 400, "reason", "payment proof missing")
		return echo.NewHTTPError(http.StatusBadRequest, "payment proof is required")
	}

	proofRef, err := saveUpload(c, h.Assets, storage.KindTransactions, fh)
	if err != nil {
		return err
	}

	trx, err := h.Svc.CreateTransaction(ctx, req, proofRef)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("transaction_create_failed", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("transaction_create_failed", "status", 500, "reason", "cannot create transaction", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create transaction")
	}

	publish(c, h.Producer, trx.ID.String(), map[string]any{
		"type":          "transaction_created",
		"transactionID": trx.ID,
		"customer":      trx.CustomerName,
		"total":         trx.TotalPayment,
	})

	l.Info("create_transaction_success", "transaction_id", trx.ID)
	return c.JSON(http.StatusCreated, trx)
}

// UpdateStatus is the approval endpoint: {"status": "paid"} decrements
// stock for every purchased item or fails as a whole, {"status":
// "rejected"} just finalizes. Both are one-way.
func (h *TransactionHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "transaction.update_status")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("transaction_status_failed", "status", 400, "reason", "invalid id format", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid transaction id format")
	}

	var req transport.UpdateTransactionStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("transaction_status_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	trx, err := h.Svc.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		var stockErr *repo.StockError
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("transaction_status_failed", "status", 400, "reason", "invalid status value", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			l.Warn("transaction_status_failed", "status", 404, "reason", "transaction not found")
			return echo.NewHTTPError(http.StatusNotFound, "transaction not found")
		case errors.Is(err, repo.ErrNotPending):
			l.Warn("transaction_status_failed", "status", 409, "reason", "transaction already finalized")
			return echo.NewHTTPError(http.StatusConflict, "transaction has already been finalized")
		case errors.As(err, &stockErr):
			l.Warn("transaction_status_failed", "status", 400,
				"reason", "stock validation failed",
				"missing", stockErr.Missing, "insufficient", stockErr.Insufficient)
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf(
				"cannot approve transaction: %d missing products, %d with insufficient stock",
				stockErr.Missing, stockErr.Insufficient))
		default:
			l.Error("transaction_status_failed", "status", 500, "reason", "cannot update status", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update transaction status")
		}
	}

	publish(c, h.Producer, trx.ID.String(), map[string]any{
		"type":          "transaction_status_updated",
		"transactionID": trx.ID,
		"status":        trx.Status,
	})

	l.Info("update_status_success", "transaction_id", trx.ID, "new_status", trx.Status)
	return c.JSON(http.StatusOK, trx)
}
