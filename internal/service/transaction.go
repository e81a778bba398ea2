package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/ikhfad/sporton-backend/internal/models"
	"github.com/ikhfad/sporton-backend/internal/repo"
	"github.com/ikhfad/sporton-backend/internal/transport"
)

// TransactionService owns the order lifecycle: creation with a mandatory
// payment proof, then a single transition from pending to paid or rejected.
type TransactionService struct {
	Repo   *repo.GormRepo
	Assets AssetStore
}

func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	return s.Repo.GetTransaction(ctx, id)
}

func (s *TransactionService) GetTransactions(ctx context.Context, offset, limit int) (int64, []models.Transaction, error) {
	return s.Repo.GetTransactions(ctx, offset, limit)
}

// CreateTransaction persists a new pending order. proofRef is the already
// stored payment-proof asset; any failure past that point removes it so no
// orphaned file survives a rejected request. Status is always pending no
// matter what the client sent, and product ids are only checked for shape
// here: existence is settled at approval time.
func (s *TransactionService) CreateTransaction(ctx context.Context, req transport.CreateTransactionRequest, proofRef string) (*models.Transaction, error) {
	if proofRef == "" {
		return nil, fmt.Errorf("%w: payment proof is required", ErrValidation)
	}

	trx, err := s.buildTransaction(req, proofRef)
	if err != nil {
		s.Assets.Remove(ctx, proofRef)
		return nil, err
	}

	if err := s.Repo.CreateTransaction(ctx, trx); err != nil {
		s.Assets.Remove(ctx, proofRef)
		return nil, err
	}

	return trx, nil
}

func (s *TransactionService) buildTransaction(req transport.CreateTransactionRequest, proofRef string) (*models.Transaction, error) {
	if req.CustomerName == "" || req.CustomerContact == "" || req.CustomerAddress == "" {
		return nil, fmt.Errorf("%w: customer name, contact and address are required", ErrValidation)
	}

	var purchased []transport.PurchasedItem
	if err := json.Unmarshal([]byte(req.PurchasedItems), &purchased); err != nil {
		return nil, fmt.Errorf("%w: invalid format for purchased_items", ErrValidation)
	}
	if len(purchased) == 0 {
		return nil, fmt.Errorf("%w: purchased_items must not be empty", ErrValidation)
	}

	items := make([]models.TransactionItem, 0, len(purchased))
	for _, p := range purchased {
		productID, err := uuid.Parse(p.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: productId %q is not a uuid", ErrValidation, p.ProductID)
		}
		if p.Qty == 0 {
			return nil, fmt.Errorf("%w: qty must be positive", ErrValidation)
		}
		items = append(items, models.TransactionItem{
			ProductID: productID,
			Qty:       p.Qty,
		})
	}

	return &models.Transaction{
		CustomerName:    req.CustomerName,
		CustomerContact: req.CustomerContact,
		CustomerAddress: req.CustomerAddress,
		TotalPayment:    req.TotalPayment,
		PaymentProof:    proofRef,
		Status:          models.StatusPending,
		Items:           items,
	}, nil
}

// UpdateStatus transitions a pending transaction to paid or rejected. Any
// other target is a validation error; a transaction that already left
// pending surfaces repo.ErrNotPending, and a failed stock check surfaces
// *repo.StockError with the aggregate counts.
func (s *TransactionService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Transaction, error) {
	switch status {
	case models.StatusPaid:
		return s.Repo.ApproveTransaction(ctx, id)
	case models.StatusRejected:
		return s.Repo.RejectTransaction(ctx, id)
	default:
		return nil, fmt.Errorf("%w: status must be %q or %q", ErrValidation, models.StatusPaid, models.StatusRejected)
	}
}
