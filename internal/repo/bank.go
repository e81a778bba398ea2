package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ikhfad/sporton-backend/internal/models"
)

func (r *GormRepo) GetBank(ctx context.Context, id uuid.UUID) (*models.Bank, error) {
	bank := models.Bank{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&bank).Error; err != nil {
		return nil, err
	}
	return &bank, nil
}

func (r *GormRepo) GetBanks(ctx context.Context, offset, limit int) (int64, []models.Bank, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Bank{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Bank
	if err := r.DB.WithContext(ctx).Model(&models.Bank{}).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) CreateBank(ctx context.Context, bank *models.Bank) error {
	return r.DB.WithContext(ctx).Create(bank).Error
}

func (r *GormRepo) SaveBank(ctx context.Context, bank *models.Bank) error {
	return r.DB.WithContext(ctx).Save(bank).Error
}

func (r *GormRepo) DeleteBank(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Bank{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
