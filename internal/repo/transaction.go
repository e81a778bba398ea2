package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ikhfad/sporton-backend/internal/models"
)

// ErrNotPending is returned when a status change targets a transaction that
// already left the pending state. Paid and rejected are terminal.
var ErrNotPending = errors.New("transaction is not pending")

// StockError aggregates the per-item failures of one approval attempt. The
// whole approval is rejected, nothing is decremented.
type StockError struct {
	Missing      int
	Insufficient int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("stock validation failed: %d missing products, %d with insufficient stock", e.Missing, e.Insufficient)
}

func (r *GormRepo) GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	trx := models.Transaction{}
	if err := r.DB.WithContext(ctx).Preload("Items").
		Where("id = ?", id).First(&trx).Error; err != nil {
		return nil, err
	}
	return &trx, nil
}

func (r *GormRepo) GetTransactions(ctx context.Context, offset, limit int) (int64, []models.Transaction, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Transaction{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Transaction
	if err := r.DB.WithContext(ctx).Model(&models.Transaction{}).Preload("Items").
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) CreateTransaction(ctx context.Context, trx *models.Transaction) error {
	return r.DB.WithContext(ctx).Create(trx).Error
}

// ApproveTransaction moves a pending transaction to paid and decrements the
// stock of every purchased product, all inside one DB transaction.
//
// The status flip is a conditional update on status=pending, so of two
// concurrent approvals only one proceeds; the loser gets ErrNotPending and
// never touches stock. Stock is validated for every item before any
// decrement, and each decrement is itself conditional on stock >= qty, so a
// write that raced past the validation still aborts and rolls the whole
// approval back. Either every product is decremented and the transaction is
// paid, or nothing changed.
func (r *GormRepo) ApproveTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var trx models.Transaction

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").Where("id = ?", id).First(&trx).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND status = ?", id, models.StatusPending).
			Update("status", models.StatusPaid)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}

		// validate the whole item set before mutating anything
		var check StockError
		for _, item := range trx.Items {
			var product models.Product
			err := tx.Select("id", "stock").Where("id = ?", item.ProductID).First(&product).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					check.Missing++
					continue
				}
				return err
			}
			if product.Stock < item.Qty {
				check.Insufficient++
			}
		}
		if check.Missing > 0 || check.Insufficient > 0 {
			return &check
		}

		for _, item := range trx.Items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Qty).
				Update("stock", gorm.Expr("stock - ?", item.Qty))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// lost a race since the validation pass; abort and roll
				// back the decrements already applied
				return &StockError{Insufficient: 1}
			}
		}

		trx.Status = models.StatusPaid
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &trx, nil
}

// RejectTransaction moves a pending transaction to rejected. Stock was never
// reserved at creation, so there is nothing to release.
func (r *GormRepo) RejectTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var trx models.Transaction

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").Where("id = ?", id).First(&trx).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND status = ?", id, models.StatusPending).
			Update("status", models.StatusRejected)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}

		trx.Status = models.StatusRejected
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &trx, nil
}
